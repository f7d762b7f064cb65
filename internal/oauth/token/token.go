/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package token provides the OAuth2 token value object and its persisted form.
package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"golang.org/x/oauth2"

	"github.com/campuslink/authkit/internal/oauth/constants"
)

var (
	// ErrIncompleteToken is returned when a token lacks an access token or a token type.
	ErrIncompleteToken = errors.New("incomplete token: access_token and token_type are required")
	// ErrMalformedToken is returned when a token field holds a value of the wrong type.
	ErrMalformedToken = errors.New("malformed token")
)

// Token is an OAuth2 access token issued by the token endpoint. A Token is treated as
// immutable: refreshing produces a new value through Merge.
type Token struct {
	AccessToken  string
	TokenType    string
	ExpiresIn    int64
	ExpiresAt    time.Time
	RefreshToken string
	Scope        string
	// Extra holds any other field returned by the server.
	Extra map[string]interface{}
}

// FromResponse builds a token from the fields of a token endpoint response.
func FromResponse(fields map[string]interface{}, now time.Time) (*Token, error) {
	return (&Token{}).Merge(fields, now)
}

// Merge returns a copy of the token overlaid with every field present in fields. The
// expiry is recomputed from the merged expires_in relative to now. The receiver is not
// modified.
func (t *Token) Merge(fields map[string]interface{}, now time.Time) (*Token, error) {
	merged := t.Clone()
	if merged == nil {
		merged = &Token{}
	}

	for key, value := range fields {
		if err := merged.setField(key, value); err != nil {
			return nil, err
		}
	}
	if merged.AccessToken == "" || merged.TokenType == "" {
		return nil, ErrIncompleteToken
	}

	merged.ExpiresAt = ComputeExpiry(now, merged.ExpiresIn)
	return merged, nil
}

// Clone returns a deep copy of the token.
func (t *Token) Clone() *Token {
	if t == nil {
		return nil
	}
	clone := *t
	if t.Extra != nil {
		clone.Extra = make(map[string]interface{}, len(t.Extra))
		for k, v := range t.Extra {
			clone.Extra[k] = v
		}
	}
	return &clone
}

// IsExpired reports whether the token is absent or its expiry lies before now.
func (t *Token) IsExpired(now time.Time) bool {
	if t == nil {
		return true
	}
	return now.After(t.ExpiresAt)
}

// ExpiresInDuration returns the time left until the token expires. The token must not be nil.
func (t *Token) ExpiresInDuration(now time.Time) time.Duration {
	return t.ExpiresAt.Sub(now)
}

// IsBearer reports whether the token type is bearer, ignoring case.
func (t *Token) IsBearer() bool {
	return t != nil && strings.EqualFold(t.TokenType, constants.TokenTypeBearer)
}

// ComputeExpiry returns the instant lying the given number of seconds after now.
func ComputeExpiry(now time.Time, seconds int64) time.Time {
	return now.Add(time.Duration(seconds) * time.Second)
}

// OAuth2 converts the token into its golang.org/x/oauth2 representation.
func (t *Token) OAuth2() *oauth2.Token {
	if t == nil {
		return nil
	}
	extra := make(map[string]interface{}, len(t.Extra)+1)
	for k, v := range t.Extra {
		extra[k] = v
	}
	if t.Scope != "" {
		extra[constants.Scope] = t.Scope
	}

	tok := &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
		Expiry:       t.ExpiresAt,
		ExpiresIn:    t.ExpiresIn,
	}
	return tok.WithExtra(extra)
}

// MarshalJSON encodes the token in its persisted form. Extra fields are written at the
// top level next to the standard ones and expires_at is an RFC 3339 UTC timestamp.
func (t Token) MarshalJSON() ([]byte, error) {
	data := []byte("{}")
	var err error

	keys := make([]string, 0, len(t.Extra))
	for k := range t.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if data, err = sjson.SetBytes(data, gjson.Escape(k), t.Extra[k]); err != nil {
			return nil, fmt.Errorf("failed to encode token field %s: %w", k, err)
		}
	}

	standard := []struct {
		key   string
		value interface{}
	}{
		{constants.AccessToken, t.AccessToken},
		{constants.TokenType, t.TokenType},
		{constants.ExpiresIn, t.ExpiresIn},
		{constants.RefreshToken, t.RefreshToken},
		{constants.Scope, t.Scope},
		{constants.ExpiresAt, t.ExpiresAt.UTC().Format(time.RFC3339Nano)},
	}
	for _, f := range standard {
		if data, err = sjson.SetBytes(data, f.key, f.value); err != nil {
			return nil, fmt.Errorf("failed to encode token field %s: %w", f.key, err)
		}
	}
	return data, nil
}

// UnmarshalJSON decodes a token from its persisted form.
func (t *Token) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: invalid JSON", ErrMalformedToken)
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return fmt.Errorf("%w: expected a JSON object", ErrMalformedToken)
	}

	decoded := Token{}
	var fieldErr error
	parsed.ForEach(func(key, value gjson.Result) bool {
		if key.String() == constants.ExpiresAt {
			if value.Type != gjson.String {
				fieldErr = fmt.Errorf("%w: %s must be a string", ErrMalformedToken, constants.ExpiresAt)
				return false
			}
			expiresAt, err := time.Parse(time.RFC3339Nano, value.String())
			if err != nil {
				fieldErr = fmt.Errorf("%w: %s: %w", ErrMalformedToken, constants.ExpiresAt, err)
				return false
			}
			decoded.ExpiresAt = expiresAt
			return true
		}
		fieldErr = decoded.setField(key.String(), value.Value())
		return fieldErr == nil
	})
	if fieldErr != nil {
		return fieldErr
	}
	if !parsed.Get(gjson.Escape(constants.ExpiresAt)).Exists() {
		return fmt.Errorf("%w: %s is missing", ErrMalformedToken, constants.ExpiresAt)
	}
	if decoded.AccessToken == "" || decoded.TokenType == "" {
		return ErrIncompleteToken
	}

	*t = decoded
	return nil
}

// setField assigns a single response field to the token.
func (t *Token) setField(key string, value interface{}) error {
	switch key {
	case constants.AccessToken:
		return assignString(&t.AccessToken, key, value)
	case constants.TokenType:
		return assignString(&t.TokenType, key, value)
	case constants.RefreshToken:
		return assignString(&t.RefreshToken, key, value)
	case constants.Scope:
		return assignString(&t.Scope, key, value)
	case constants.ExpiresIn:
		seconds, ok := toInt64(value)
		if !ok {
			return fmt.Errorf("%w: %s must be numeric", ErrMalformedToken, key)
		}
		t.ExpiresIn = seconds
	case constants.ExpiresAt:
		// Always derived from expires_in.
	default:
		if t.Extra == nil {
			t.Extra = make(map[string]interface{})
		}
		t.Extra[key] = value
	}
	return nil
}

func assignString(dst *string, key string, value interface{}) error {
	switch v := value.(type) {
	case string:
		*dst = v
	case nil:
		*dst = ""
	default:
		return fmt.Errorf("%w: %s must be a string", ErrMalformedToken, key)
	}
	return nil
}

// toInt64 accepts JSON numbers in any of their decoded forms as well as numeric strings.
func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case float64:
		return int64(v), true
	case float32:
		return int64(v), true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true
		}
		f, err := v.Float64()
		return int64(f), err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return int64(f), err == nil
	}
	return 0, false
}
