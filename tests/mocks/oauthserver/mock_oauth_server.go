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

// Package oauthserver provides a mock OAuth 2.0 authorization server issuing tokens with the
// resource owner password credentials and refresh token grants, and serving bearer-protected
// resources.
package oauthserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/campuslink/authkit/internal/system/utils"
)

const (
	tokenPath      = "/auth/oauth2/token"
	resourcePrefix = "/resources/"
)

// TokenData stores information about an issued token.
type TokenData struct {
	AccessToken  string
	RefreshToken string
	Username     string
	Scope        string
	ExpiresAt    time.Time
}

// MockOAuthServer is a mock OAuth 2.0 server backed by an httptest server.
type MockOAuthServer struct {
	server        *httptest.Server
	mutex         sync.RWMutex
	users         map[string]string
	accessTokens  map[string]*TokenData
	refreshTokens map[string]*TokenData
	lastIssued    *TokenData
	tokenRequests int
	clientID      string
	clientSecret  string
	expiresIn     int
}

// NewMockOAuthServer creates a mock server accepting the given client credentials.
func NewMockOAuthServer(clientID, clientSecret string) *MockOAuthServer {
	return &MockOAuthServer{
		users:         make(map[string]string),
		accessTokens:  make(map[string]*TokenData),
		refreshTokens: make(map[string]*TokenData),
		clientID:      clientID,
		clientSecret:  clientSecret,
		expiresIn:     3600,
	}
}

// Start starts the mock server on a random local port.
func (m *MockOAuthServer) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc(tokenPath, m.handleToken)
	mux.HandleFunc(resourcePrefix, m.handleResource)
	m.server = httptest.NewServer(mux)
}

// Stop stops the mock server.
func (m *MockOAuthServer) Stop() {
	if m.server != nil {
		m.server.Close()
	}
}

// GetURL returns the base URL.
func (m *MockOAuthServer) GetURL() string {
	return m.server.URL
}

// GetTokenURL returns the token endpoint URL.
func (m *MockOAuthServer) GetTokenURL() string {
	return m.server.URL + tokenPath
}

// AddUser registers a resource owner.
func (m *MockOAuthServer) AddUser(username, password string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.users[username] = password
}

// SetExpiresIn sets the lifetime in seconds of the tokens issued from now on.
func (m *MockOAuthServer) SetExpiresIn(seconds int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.expiresIn = seconds
}

// RevokeRefreshTokens invalidates every refresh token issued so far.
func (m *MockOAuthServer) RevokeRefreshTokens() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.refreshTokens = make(map[string]*TokenData)
}

// LastIssued returns a copy of the most recently issued token, or nil.
func (m *MockOAuthServer) LastIssued() *TokenData {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.lastIssued == nil {
		return nil
	}
	issued := *m.lastIssued
	return &issued
}

// TokenRequestCount returns the number of requests received by the token endpoint.
func (m *MockOAuthServer) TokenRequestCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.tokenRequests
}

// handleToken handles the token endpoint.
func (m *MockOAuthServer) handleToken(w http.ResponseWriter, r *http.Request) {
	m.mutex.Lock()
	m.tokenRequests++
	m.mutex.Unlock()

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeOAuthTokenError(w, http.StatusBadRequest, "invalid_request", "Failed to parse form")
		return
	}

	if !m.authenticateClient(r) {
		writeOAuthTokenError(w, http.StatusUnauthorized, "invalid_client", "Invalid client credentials")
		return
	}

	switch r.PostForm.Get("grant_type") {
	case "password":
		m.handlePasswordGrant(w, r)
	case "refresh_token":
		m.handleRefreshGrant(w, r)
	default:
		writeOAuthTokenError(w, http.StatusBadRequest, "unsupported_grant_type", "Grant type not supported")
	}
}

// authenticateClient accepts client credentials from the Basic header or the form body.
func (m *MockOAuthServer) authenticateClient(r *http.Request) bool {
	clientID, clientSecret := r.PostForm.Get("client_id"), r.PostForm.Get("client_secret")
	if header := r.Header.Get("Authorization"); header != "" {
		id, secret, err := utils.ExtractBasicAuthCredentials(header)
		if err != nil {
			return false
		}
		clientID, clientSecret = id, secret
	}
	return clientID == m.clientID && clientSecret == m.clientSecret
}

func (m *MockOAuthServer) handlePasswordGrant(w http.ResponseWriter, r *http.Request) {
	username := r.PostForm.Get("username")

	m.mutex.Lock()
	password, exists := m.users[username]
	if !exists || password != r.PostForm.Get("password") {
		m.mutex.Unlock()
		writeOAuthTokenError(w, http.StatusBadRequest, "invalid_grant", "Invalid resource owner credentials")
		return
	}
	issued, expiresIn := m.issueToken(username, r.PostForm.Get("scope"))
	m.mutex.Unlock()

	writeJSON(w, map[string]interface{}{
		"access_token":  issued.AccessToken,
		"token_type":    "bearer",
		"expires_in":    expiresIn,
		"refresh_token": issued.RefreshToken,
		"scope":         issued.Scope,
	})
}

// handleRefreshGrant answers with the new access token and its lifetime only, so clients
// keep the remaining fields of their current token.
func (m *MockOAuthServer) handleRefreshGrant(w http.ResponseWriter, r *http.Request) {
	m.mutex.Lock()
	previous, exists := m.refreshTokens[r.PostForm.Get("refresh_token")]
	if !exists {
		m.mutex.Unlock()
		writeOAuthTokenError(w, http.StatusBadRequest, "invalid_grant", "Invalid refresh token")
		return
	}
	delete(m.accessTokens, previous.AccessToken)

	issued := &TokenData{
		AccessToken:  "access_" + utils.GenerateUUID(),
		RefreshToken: previous.RefreshToken,
		Username:     previous.Username,
		Scope:        previous.Scope,
		ExpiresAt:    time.Now().Add(time.Duration(m.expiresIn) * time.Second),
	}
	m.accessTokens[issued.AccessToken] = issued
	m.refreshTokens[issued.RefreshToken] = issued
	m.lastIssued = issued
	expiresIn := m.expiresIn
	m.mutex.Unlock()

	writeJSON(w, map[string]interface{}{
		"access_token": issued.AccessToken,
		"expires_in":   expiresIn,
	})
}

// issueToken must be called with the mutex held.
func (m *MockOAuthServer) issueToken(username, scope string) (*TokenData, int) {
	issued := &TokenData{
		AccessToken:  "access_" + utils.GenerateUUID(),
		RefreshToken: "refresh_" + utils.GenerateUUID(),
		Username:     username,
		Scope:        scope,
		ExpiresAt:    time.Now().Add(time.Duration(m.expiresIn) * time.Second),
	}
	m.accessTokens[issued.AccessToken] = issued
	m.refreshTokens[issued.RefreshToken] = issued
	m.lastIssued = issued
	return issued, m.expiresIn
}

// handleResource serves any path under the resource prefix to holders of a valid bearer token.
func (m *MockOAuthServer) handleResource(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		http.Error(w, "Invalid authorization header", http.StatusUnauthorized)
		return
	}

	m.mutex.RLock()
	tokenData, exists := m.accessTokens[parts[1]]
	m.mutex.RUnlock()
	if !exists {
		http.Error(w, "Invalid access token", http.StatusUnauthorized)
		return
	}
	if time.Now().After(tokenData.ExpiresAt) {
		http.Error(w, "Access token expired", http.StatusUnauthorized)
		return
	}

	writeJSON(w, map[string]interface{}{
		"path":     strings.TrimPrefix(r.URL.Path, resourcePrefix),
		"username": tokenData.Username,
	})
}

func writeJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(body)
}

// writeOAuthTokenError writes a token error response.
func writeOAuthTokenError(w http.ResponseWriter, status int, errorCode, errorDescription string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             errorCode,
		"error_description": errorDescription,
	})
}
