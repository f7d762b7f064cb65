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

// Package constants defines constants used across the OAuth2 client module.
package constants

// OAuth2 request and response parameters.
const (
	GrantType        = "grant_type"
	ClientID         = "client_id"
	ClientSecret     = "client_secret"
	Username         = "username"
	Password         = "password"
	Scope            = "scope"
	RefreshToken     = "refresh_token"
	AccessToken      = "access_token"
	TokenType        = "token_type"
	ExpiresIn        = "expires_in"
	ExpiresAt        = "expires_at"
	Error            = "error"
	ErrorDescription = "error_description"
)

// OAuth2 grant types.
const (
	GrantTypePassword     = "password"
	GrantTypeRefreshToken = "refresh_token"
)

// OAuth2 token types.
const (
	TokenTypeBearer = "bearer"
)

// OAuth2 error codes.
const (
	ErrorInvalidRequest       = "invalid_request"
	ErrorInvalidClient        = "invalid_client"
	ErrorInvalidGrant         = "invalid_grant"
	ErrorUnauthorizedClient   = "unauthorized_client"
	ErrorUnsupportedGrantType = "unsupported_grant_type"
	ErrorInvalidScope         = "invalid_scope"
	ErrorServerError          = "server_error"
)

// TokenRequestAcceptHeader is the Accept header value sent to the token endpoint.
const TokenRequestAcceptHeader = "application/json, application/x-www-form-urlencoded"
