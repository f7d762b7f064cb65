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
	"context"

	"golang.org/x/oauth2"
)

// tokenSource adapts an OAuthClient to oauth2.TokenSource.
type tokenSource struct {
	ctx    context.Context
	client *OAuthClient
}

// TokenSource returns an oauth2.TokenSource serving the current token and refreshing it
// once it has expired. Refresh failures are returned to the caller.
func (c *OAuthClient) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, client: c}
}

// Token implements oauth2.TokenSource.
func (ts *tokenSource) Token() (*oauth2.Token, error) {
	tok := ts.client.Token()
	if tok == nil {
		return nil, ErrNoToken
	}
	if !tok.IsExpired(ts.client.now()) {
		return tok.OAuth2(), nil
	}

	refreshed, err := ts.client.RefreshTokenStrict(ts.ctx)
	if err != nil {
		return nil, err
	}
	return refreshed.OAuth2(), nil
}
