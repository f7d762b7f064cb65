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

import (
	"time"

	"github.com/campuslink/authkit/internal/system/config"
)

// Config holds the token endpoint and client credentials. It is not modified after
// the client is created.
type Config struct {
	TokenEndpoint string
	ClientID      string
	ClientSecret  string
	Scopes        []string
	// SingleFlightRefresh coalesces concurrent refreshes into one token endpoint call.
	SingleFlightRefresh bool
}

// ConfigFromOAuthConfig builds a client Config from the oauth section of the configuration file.
func ConfigFromOAuthConfig(cfg config.OAuthConfig) Config {
	scopes := make([]string, len(cfg.Scopes))
	copy(scopes, cfg.Scopes)
	return Config{
		TokenEndpoint:       cfg.TokenEndpoint,
		ClientID:            cfg.ClientID,
		ClientSecret:        cfg.ClientSecret,
		Scopes:              scopes,
		SingleFlightRefresh: cfg.SingleFlightRefresh,
	}
}

// RequestDescriptor describes an outgoing request to be signed.
type RequestDescriptor struct {
	Method  string            `json:"method,omitempty"`
	URL     string            `json:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    []byte            `json:"body,omitempty"`
}

// Option configures an OAuthClient.
type Option func(*OAuthClient)

// WithClock replaces the clock used for expiry computations.
func WithClock(now func() time.Time) Option {
	return func(c *OAuthClient) {
		if now != nil {
			c.now = now
		}
	}
}

// WithStorageKey replaces the key under which the token is persisted.
func WithStorageKey(key string) Option {
	return func(c *OAuthClient) {
		if key != "" {
			c.storageKey = key
		}
	}
}
