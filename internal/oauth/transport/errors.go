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

package transport

import (
	"fmt"

	"github.com/campuslink/authkit/internal/oauth/constants"
)

// ErrorCode classifies a transport failure.
type ErrorCode string

// Transport error codes.
const (
	// CodeAuth marks a response carrying an OAuth2 error field, whatever its status.
	CodeAuth ErrorCode = "EAUTH"
	// CodeStatus marks a response whose status lies outside [200, 399).
	CodeStatus ErrorCode = "ESTATUS"
	// CodeJSON marks a response body that is not a JSON object.
	CodeJSON ErrorCode = "EJSON"
	// CodeNetwork marks a request that did not produce a response.
	CodeNetwork ErrorCode = "ENETWORK"
)

// Sentinel errors for use with errors.Is. Matching is by code only.
var (
	ErrAuth    = &Error{Code: CodeAuth}
	ErrStatus  = &Error{Code: CodeStatus}
	ErrJSON    = &Error{Code: CodeJSON}
	ErrNetwork = &Error{Code: CodeNetwork}
)

// Error is a classified failure of a token endpoint call.
type Error struct {
	Code ErrorCode
	// Status is the HTTP status code, zero when no response was received.
	Status int
	// Body is the parsed response body, nil unless the body was a JSON object.
	Body map[string]interface{}
	// RawBody is the unparsed response body.
	RawBody []byte
	cause   error
}

// Error returns a readable description of the failure.
func (e *Error) Error() string {
	switch e.Code {
	case CodeAuth:
		if desc := e.OAuthErrorDescription(); desc != "" {
			return fmt.Sprintf("%s: %s: %s", e.Code, e.OAuthError(), desc)
		}
		return fmt.Sprintf("%s: %s", e.Code, e.OAuthError())
	case CodeStatus:
		return fmt.Sprintf("%s: unexpected status %d", e.Code, e.Status)
	case CodeJSON:
		return fmt.Sprintf("%s: invalid JSON oauth response", e.Code)
	default:
		if e.cause != nil {
			return fmt.Sprintf("%s: %v", e.Code, e.cause)
		}
		return string(e.Code)
	}
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is a transport error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// OAuthError returns the error field of the response body.
func (e *Error) OAuthError() string {
	return e.bodyString(constants.Error)
}

// OAuthErrorDescription returns the error_description field of the response body.
func (e *Error) OAuthErrorDescription() string {
	return e.bodyString(constants.ErrorDescription)
}

func (e *Error) bodyString(key string) string {
	if e.Body == nil {
		return ""
	}
	switch v := e.Body[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
