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

package client

import "github.com/campuslink/authkit/internal/system/error/serviceerror"

// Client errors for the OAuth2 client.
var (
	// ErrNoRefreshToken is returned when a refresh is attempted without a refresh token.
	ErrNoRefreshToken = &serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AUTH-OAUTH-1001",
		Message:          "No refresh token provided",
		ErrorDescription: "A token with a refresh token must be loaded before refreshing",
	}
	// ErrNoStoredToken is returned when the store holds no token.
	ErrNoStoredToken = &serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AUTH-OAUTH-1002",
		Message:          "No stored token",
		ErrorDescription: "No token has been persisted for this session",
	}
	// ErrNoToken is returned when an operation needs a token and none is loaded.
	ErrNoToken = &serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AUTH-OAUTH-1003",
		Message:          "No token loaded",
		ErrorDescription: "The client does not hold a token",
	}
	// ErrUnableToSign is returned when signing without an access token.
	ErrUnableToSign = &serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AUTH-OAUTH-1004",
		Message:          "Unable to sign without access token",
		ErrorDescription: "A token with an access token must be loaded before signing requests",
	}
	// ErrUnsupportedTokenType is returned when signing with a token that is not a bearer token.
	ErrUnsupportedTokenType = &serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AUTH-OAUTH-1005",
		Message:          "Only Bearer token type supported",
		ErrorDescription: "The loaded token type cannot be used to sign requests",
	}
	// ErrMissingTokenEndpoint is returned when the client has no token endpoint configured.
	ErrMissingTokenEndpoint = &serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AUTH-OAUTH-1006",
		Message:          "Missing token endpoint",
		ErrorDescription: "The token endpoint URL must be configured",
	}
)

// Server errors for the OAuth2 client.
var (
	// ErrInvalidTokenResponse is returned when the token endpoint response does not hold a usable token.
	ErrInvalidTokenResponse = &serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "AUTH-OAUTH-5001",
		Message:          "Invalid token response",
		ErrorDescription: "The token endpoint returned an incomplete or malformed token",
	}
	// ErrInvalidStoredToken is returned when the stored token cannot be parsed.
	ErrInvalidStoredToken = &serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "AUTH-OAUTH-5002",
		Message:          "Invalid stored token",
		ErrorDescription: "The persisted token could not be parsed",
	}
	// ErrTokenPersistence is returned when the token store fails.
	ErrTokenPersistence = &serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "AUTH-OAUTH-5003",
		Message:          "Token persistence failed",
		ErrorDescription: "The token store could not be read or written",
	}
)
