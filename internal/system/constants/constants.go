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

// Package constants defines global constants used across the system module.
package constants

const (
	// LogLevelEnvironmentVariable is the environment variable name for the log level.
	LogLevelEnvironmentVariable = "LOG_LEVEL"
	// LogFileEnvironmentVariable is the environment variable name for the log file path.
	LogFileEnvironmentVariable = "LOG_FILE"
	// DefaultLogLevel is the default log level used if not specified.
	DefaultLogLevel = "info"
)

// Environment variables that override values read from the configuration file.
const (
	ClientIDEnvironmentVariable      = "AUTHKIT_CLIENT_ID"
	ClientSecretEnvironmentVariable  = "AUTHKIT_CLIENT_SECRET"
	TokenEndpointEnvironmentVariable = "AUTHKIT_TOKEN_ENDPOINT"
	HomeEnvironmentVariable          = "AUTHKIT_HOME"
)

// AuthorizationHeaderName is the name of the authorization header used in HTTP requests.
const AuthorizationHeaderName = "Authorization"

// AcceptHeaderName is the name of the accept header used in HTTP requests.
const AcceptHeaderName = "Accept"

// ContentTypeHeaderName is the name of the content type header used in HTTP requests.
const ContentTypeHeaderName = "Content-Type"

// TokenTypeBearer is the token type used in bearer authentication.
const TokenTypeBearer = "Bearer"

// TokenTypeBasic is the scheme used for client authentication against the token endpoint.
const TokenTypeBasic = "Basic"

// ContentTypeJSON is the content type for JSON data.
const ContentTypeJSON = "application/json"

// ContentTypeFormURLEncoded is the content type for form-urlencoded data.
const ContentTypeFormURLEncoded = "application/x-www-form-urlencoded"

// DefaultHTTPTimeoutSeconds is the outbound HTTP timeout used when none is configured.
const DefaultHTTPTimeoutSeconds = 30

// UserAgentHeaderName is the name of the user agent header used in HTTP requests.
const UserAgentHeaderName = "User-Agent"

// DefaultUserAgent identifies outbound requests made by authctl.
const DefaultUserAgent = "authctl/1.0"
