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

// Package client provides the OAuth2 resource owner password credentials client.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/campuslink/authkit/internal/oauth/constants"
	"github.com/campuslink/authkit/internal/oauth/store"
	"github.com/campuslink/authkit/internal/oauth/token"
	"github.com/campuslink/authkit/internal/oauth/transport"
	sysconst "github.com/campuslink/authkit/internal/system/constants"
	"github.com/campuslink/authkit/internal/system/log"
	"github.com/campuslink/authkit/internal/system/utils"
)

const (
	loggerComponentName = "OAuthClient"
	refreshGroupKey     = "refresh"
)

// OAuthClientInterface defines the operations of the OAuth2 client.
type OAuthClientInterface interface {
	GetToken(ctx context.Context, username, password string) (*token.Token, error)
	RefreshToken(ctx context.Context) (*token.Token, error)
	RefreshTokenStrict(ctx context.Context) (*token.Token, error)
	LoadToken(ctx context.Context) error
	SaveToken(ctx context.Context) error
	EraseToken(ctx context.Context) error
	Sign(req *RequestDescriptor) (*RequestDescriptor, error)
	SignHTTPRequest(req *http.Request) error
	IsExpired() bool
	ExpiresIn() time.Duration
	Token() *token.Token
	SetToken(tok *token.Token)
}

// OAuthClient acquires, refreshes, persists and applies a single bearer token.
// The token is held behind a lock and only ever replaced as a whole.
type OAuthClient struct {
	config       Config
	transport    transport.TransportInterface
	store        store.KeyValueStoreInterface
	storageKey   string
	now          func() time.Time
	logger       *log.Logger
	refreshGroup singleflight.Group

	mu    sync.RWMutex
	token *token.Token
}

// NewOAuthClient creates a client for the given configuration, sending token requests
// through tr and persisting the token in kv.
func NewOAuthClient(config Config, tr transport.TransportInterface, kv store.KeyValueStoreInterface,
	opts ...Option) *OAuthClient {
	c := &OAuthClient{
		config:     config,
		transport:  tr,
		store:      kv,
		storageKey: store.TokenStorageKey,
		now:        time.Now,
		logger:     log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetToken exchanges the user's credentials for a token. On success the token replaces
// the current one and is persisted. On failure the current token is left as it was.
func (c *OAuthClient) GetToken(ctx context.Context, username, password string) (*token.Token, error) {
	logger := c.logger.With(log.String("username", log.MaskString(username)))

	body := c.tokenRequestBody(constants.GrantTypePassword)
	body[constants.Username] = username
	body[constants.Password] = password

	fields, err := c.requestToken(ctx, body)
	if err != nil {
		logger.Error("Failed to obtain token", log.Error(err))
		return nil, err
	}

	tok, err := token.FromResponse(fields, c.now())
	if err != nil {
		logger.Error("Token endpoint returned an unusable token", log.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidTokenResponse, err)
	}

	c.SetToken(tok)
	if err := c.persist(ctx, tok); err != nil {
		logger.Error("Failed to persist token", log.Error(err))
		return nil, err
	}

	logger.Debug("Token obtained", log.Duration("expiresIn", tok.ExpiresInDuration(c.now())))
	return tok, nil
}

// RefreshToken obtains a new access token with the refresh token of the current token.
// The new token keeps every field the response does not carry.
//
// A missing refresh token is reported as ErrNoRefreshToken. Any other failure is logged
// and reported as a nil token with a nil error; use RefreshTokenStrict to receive the error.
func (c *OAuthClient) RefreshToken(ctx context.Context) (*token.Token, error) {
	tok, err := c.RefreshTokenStrict(ctx)
	if errors.Is(err, ErrNoRefreshToken) {
		return nil, err
	}
	if err != nil {
		c.logger.Error("Failed to refresh token", log.Error(err))
		return nil, nil
	}
	return tok, nil
}

// RefreshTokenStrict behaves as RefreshToken but returns every failure to the caller.
func (c *OAuthClient) RefreshTokenStrict(ctx context.Context) (*token.Token, error) {
	current := c.Token()
	if current == nil || current.RefreshToken == "" {
		return nil, ErrNoRefreshToken
	}

	if !c.config.SingleFlightRefresh {
		return c.refresh(ctx, current)
	}

	result, err, shared := c.refreshGroup.Do(refreshGroupKey, func() (interface{}, error) {
		return c.refresh(ctx, c.Token())
	})
	if shared {
		c.logger.Debug("Joined an in-flight token refresh")
	}
	tok, _ := result.(*token.Token)
	return tok, err
}

func (c *OAuthClient) refresh(ctx context.Context, current *token.Token) (*token.Token, error) {
	if current == nil || current.RefreshToken == "" {
		return nil, ErrNoRefreshToken
	}

	body := c.tokenRequestBody(constants.GrantTypeRefreshToken)
	body[constants.RefreshToken] = current.RefreshToken

	fields, err := c.requestToken(ctx, body)
	if err != nil {
		return nil, err
	}

	merged, err := current.Merge(fields, c.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTokenResponse, err)
	}

	c.SetToken(merged)
	if err := c.persist(ctx, merged); err != nil {
		return nil, err
	}

	c.logger.Debug("Token refreshed", log.Duration("expiresIn", merged.ExpiresInDuration(c.now())))
	return merged, nil
}

// LoadToken replaces the current token with the persisted one. When nothing is stored
// ErrNoStoredToken is returned and the current token is left as it was.
func (c *OAuthClient) LoadToken(ctx context.Context) error {
	logger := c.logger.With(log.String(log.LoggerKeyStorageKey, c.storageKey))

	value, ok, err := c.store.GetItem(ctx, c.storageKey)
	if err != nil {
		logger.Error("Failed to read stored token", log.Error(err))
		return fmt.Errorf("%w: %w", ErrTokenPersistence, err)
	}
	if !ok {
		logger.Info("No stored token found")
		return ErrNoStoredToken
	}

	var tok token.Token
	if err := json.Unmarshal([]byte(value), &tok); err != nil {
		logger.Error("Failed to parse stored token", log.Error(err))
		return fmt.Errorf("%w: %w", ErrInvalidStoredToken, err)
	}

	c.SetToken(&tok)
	logger.Debug("Stored token loaded", log.Bool("expired", tok.IsExpired(c.now())))
	return nil
}

// SaveToken persists the current token.
func (c *OAuthClient) SaveToken(ctx context.Context) error {
	tok := c.Token()
	if tok == nil {
		c.logger.Error("No token to save")
		return ErrNoToken
	}
	if err := c.persist(ctx, tok); err != nil {
		c.logger.Error("Failed to save token", log.Error(err))
		return err
	}
	return nil
}

// EraseToken removes the persisted token and then clears the current one.
func (c *OAuthClient) EraseToken(ctx context.Context) error {
	if err := c.store.RemoveItem(ctx, c.storageKey); err != nil {
		c.logger.Error("Failed to erase stored token", log.Error(err))
		return fmt.Errorf("%w: %w", ErrTokenPersistence, err)
	}
	c.SetToken(nil)
	return nil
}

// Sign sets the Authorization header of req to the current bearer token, keeping the
// other headers. A nil req is treated as an empty descriptor. Sign performs no I/O.
func (c *OAuthClient) Sign(req *RequestDescriptor) (*RequestDescriptor, error) {
	header, err := c.authorizationHeader()
	if err != nil {
		return nil, err
	}

	if req == nil {
		req = &RequestDescriptor{}
	}
	if req.Headers == nil {
		req.Headers = make(map[string]string, 1)
	}
	req.Headers[sysconst.AuthorizationHeaderName] = header
	return req, nil
}

// SignHTTPRequest sets the Authorization header of req to the current bearer token.
func (c *OAuthClient) SignHTTPRequest(req *http.Request) error {
	header, err := c.authorizationHeader()
	if err != nil {
		return err
	}
	req.Header.Set(sysconst.AuthorizationHeaderName, header)
	return nil
}

// IsExpired reports whether there is no current token or it has expired.
func (c *OAuthClient) IsExpired() bool {
	return c.Token().IsExpired(c.now())
}

// ExpiresIn returns the time left until the current token expires. A token must be loaded.
func (c *OAuthClient) ExpiresIn() time.Duration {
	return c.Token().ExpiresInDuration(c.now())
}

// Token returns the current token, or nil when there is none.
func (c *OAuthClient) Token() *token.Token {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the current token. A nil token clears it.
func (c *OAuthClient) SetToken(tok *token.Token) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = tok
}

// SanitizeScope flattens a scope value: a list is joined with single spaces, a string is
// returned as is and anything else gives an empty string.
func SanitizeScope(scope interface{}) string {
	switch v := scope.(type) {
	case []string:
		return utils.StringifyStringArray(v, " ")
	case string:
		return v
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, p := range v {
			parts = append(parts, fmt.Sprint(p))
		}
		return utils.StringifyStringArray(parts, " ")
	default:
		return ""
	}
}

func (c *OAuthClient) authorizationHeader() (string, error) {
	tok := c.Token()
	if tok == nil || tok.AccessToken == "" {
		return "", ErrUnableToSign
	}
	if !tok.IsBearer() {
		return "", ErrUnsupportedTokenType
	}
	return sysconst.TokenTypeBearer + " " + tok.AccessToken, nil
}

func (c *OAuthClient) tokenRequestBody(grantType string) map[string]string {
	return map[string]string{
		constants.ClientID:     c.config.ClientID,
		constants.ClientSecret: c.config.ClientSecret,
		constants.GrantType:    grantType,
		constants.Scope:        SanitizeScope(c.config.Scopes),
	}
}

func (c *OAuthClient) requestToken(ctx context.Context, body map[string]string) (map[string]interface{}, error) {
	if c.config.TokenEndpoint == "" {
		return nil, ErrMissingTokenEndpoint
	}
	return c.transport.Do(ctx, transport.Request{
		Method: http.MethodPost,
		URL:    c.config.TokenEndpoint,
		Body:   body,
		Headers: map[string]string{
			sysconst.AcceptHeaderName:        constants.TokenRequestAcceptHeader,
			sysconst.ContentTypeHeaderName:   sysconst.ContentTypeFormURLEncoded,
			sysconst.AuthorizationHeaderName: utils.BuildBasicAuthHeader(c.config.ClientID, c.config.ClientSecret),
		},
	})
}

func (c *OAuthClient) persist(ctx context.Context, tok *token.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTokenPersistence, err)
	}
	if err := c.store.SetItem(ctx, c.storageKey, string(data)); err != nil {
		return fmt.Errorf("%w: %w", ErrTokenPersistence, err)
	}
	return nil
}
