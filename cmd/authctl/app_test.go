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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/campuslink/authkit/internal/oauth/client"
	"github.com/campuslink/authkit/internal/oauth/token"
	"github.com/campuslink/authkit/internal/system/config"
	"github.com/campuslink/authkit/tests/mocks/oauthserver"
)

type AppTestSuite struct {
	suite.Suite
	ctx    context.Context
	home   string
	server *oauthserver.MockOAuthServer
	cfg    *config.Config
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func (suite *AppTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.home = suite.T().TempDir()
	suite.server = oauthserver.NewMockOAuthServer("app-mobile", "mobile-secret")
	suite.server.AddUser("alice", "secret1")
	suite.server.Start()
	suite.T().Cleanup(suite.server.Stop)

	suite.cfg = &config.Config{
		OAuth: config.OAuthConfig{
			TokenEndpoint: suite.server.GetTokenURL(),
			ClientID:      "app-mobile",
			ClientSecret:  "mobile-secret",
			Scopes:        []string{"userinfo"},
		},
		Platform:   config.PlatformConfig{BaseURL: "https://school.example.com"},
		TokenStore: config.TokenStoreConfig{Type: config.TokenStoreTypeFile, Path: "tokens", Namespace: "default"},
		HTTP:       config.HTTPConfig{Timeout: 5},
	}
}

// invoke runs one command with a fresh app, the way separate CLI invocations would.
func (suite *AppTestSuite) invoke(args ...string) (string, error) {
	var out bytes.Buffer
	a, err := newApp(suite.ctx, suite.cfg, suite.home, &out)
	require.NoError(suite.T(), err)
	defer a.close()

	err = a.run(suite.ctx, args)
	return out.String(), err
}

func (suite *AppTestSuite) TestSessionLifecycle() {
	out, err := suite.invoke("login", "-u", "alice", "-p", "secret1")
	require.NoError(suite.T(), err)
	assert.Contains(suite.T(), out, "Logged in as alice")
	assert.Contains(suite.T(), out, "Granted scope: userinfo")

	out, err = suite.invoke("status")
	require.NoError(suite.T(), err)
	assert.Contains(suite.T(), out, "Token type:    bearer")
	assert.Contains(suite.T(), out, "valid for")
	assert.Contains(suite.T(), out, "Refreshable:   true")
	assert.NotContains(suite.T(), out, suite.server.LastIssued().AccessToken)

	out, err = suite.invoke("sign", "/userbook/avatar/42", "workspace/document/7")
	require.NoError(suite.T(), err)
	var requests []client.RequestDescriptor
	require.NoError(suite.T(), json.Unmarshal([]byte(out), &requests))
	require.Len(suite.T(), requests, 2)
	assert.Equal(suite.T(), "https://school.example.com/userbook/avatar/42", requests[0].URL)
	assert.Equal(suite.T(), "https://school.example.com/workspace/document/7", requests[1].URL)
	assert.Equal(suite.T(), http.MethodGet, requests[0].Method)
	assert.Equal(suite.T(), "Bearer "+suite.server.LastIssued().AccessToken, requests[0].Headers["Authorization"])

	firstAccessToken := suite.server.LastIssued().AccessToken
	out, err = suite.invoke("refresh")
	require.NoError(suite.T(), err)
	assert.Contains(suite.T(), out, "Token refreshed")
	refreshedAccessToken := suite.server.LastIssued().AccessToken
	assert.NotEqual(suite.T(), firstAccessToken, refreshedAccessToken)

	out, err = suite.invoke("sign", "/userbook/avatar/42")
	require.NoError(suite.T(), err)
	assert.Contains(suite.T(), out, "Bearer "+refreshedAccessToken)
	assert.Equal(suite.T(), 2, suite.server.TokenRequestCount())

	out, err = suite.invoke("logout")
	require.NoError(suite.T(), err)
	assert.Contains(suite.T(), out, "Logged out.")

	out, err = suite.invoke("status")
	require.NoError(suite.T(), err)
	assert.Contains(suite.T(), out, "Not logged in.")
}

func (suite *AppTestSuite) TestLoginWithWrongPassword() {
	_, err := suite.invoke("login", "-u", "alice", "-p", "wrong")
	assert.Error(suite.T(), err)

	out, err := suite.invoke("status")
	require.NoError(suite.T(), err)
	assert.Contains(suite.T(), out, "Not logged in.")
}

func (suite *AppTestSuite) TestSignRefreshesExpiredToken() {
	_, err := suite.invoke("login", "-u", "alice", "-p", "secret1")
	require.NoError(suite.T(), err)
	refreshToken := suite.server.LastIssued().RefreshToken

	var out bytes.Buffer
	a, err := newApp(suite.ctx, suite.cfg, suite.home, &out)
	require.NoError(suite.T(), err)
	a.client.SetToken(&token.Token{
		AccessToken:  "OLD",
		TokenType:    "bearer",
		ExpiresIn:    3600,
		ExpiresAt:    time.Now().Add(-time.Minute),
		RefreshToken: refreshToken,
	})
	require.NoError(suite.T(), a.client.SaveToken(suite.ctx))
	a.close()

	signed, err := suite.invoke("sign", "/userbook/avatar/42")
	require.NoError(suite.T(), err)
	assert.Contains(suite.T(), signed, "Bearer "+suite.server.LastIssued().AccessToken)
	assert.NotContains(suite.T(), signed, "OLD")
	assert.Equal(suite.T(), 2, suite.server.TokenRequestCount())
}

func (suite *AppTestSuite) TestCommandsWithoutSession() {
	_, err := suite.invoke("refresh")
	assert.ErrorIs(suite.T(), err, client.ErrNoStoredToken)

	_, err = suite.invoke("sign", "/userbook/avatar/42")
	assert.ErrorIs(suite.T(), err, client.ErrNoStoredToken)

	_, err = suite.invoke("logout")
	assert.NoError(suite.T(), err)
}

func (suite *AppTestSuite) TestUsageErrors() {
	testCases := []struct {
		name string
		args []string
	}{
		{"NoCommand", nil},
		{"UnknownCommand", []string{"whoami"}},
		{"LoginWithoutPassword", []string{"login", "-u", "alice"}},
		{"LoginUnknownFlag", []string{"login", "-x"}},
		{"SignWithoutPaths", []string{"sign"}},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			_, err := suite.invoke(tc.args...)
			assert.ErrorIs(t, err, errUsage)
		})
	}
}

func (suite *AppTestSuite) TestDatabaseTokenStore() {
	suite.cfg.TokenStore = config.TokenStoreConfig{Type: config.TokenStoreTypeDatabase, Namespace: "alice"}
	suite.cfg.Database.Token = config.DataSource{
		Type:    "sqlite",
		Path:    "token.db",
		Options: "_pragma=busy_timeout(5000)",
	}

	_, err := suite.invoke("login", "-u", "alice", "-p", "secret1")
	require.NoError(suite.T(), err)

	out, err := suite.invoke("status")
	require.NoError(suite.T(), err)
	assert.Contains(suite.T(), out, "valid for")
	assert.FileExists(suite.T(), suite.home+"/token.db")
}

func (suite *AppTestSuite) TestUnsupportedTokenStore() {
	suite.cfg.TokenStore.Type = "redis"

	_, err := newApp(suite.ctx, suite.cfg, suite.home, &bytes.Buffer{})
	assert.Error(suite.T(), err)
}
