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

package log

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type AccessLogTestSuite struct {
	suite.Suite
}

func TestAccessLogSuite(t *testing.T) {
	suite.Run(t, new(AccessLogTestSuite))
}

type failingRoundTripper struct{}

func (failingRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func (suite *AccessLogTestSuite) TestAccessLogTransport() {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &Logger{internal: zap.New(core)}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := &http.Client{Transport: AccessLogTransport(log, nil)}
	resp, err := client.Get(server.URL + "/oauth2/token?secret=value")
	assert.NoError(suite.T(), err)
	_ = resp.Body.Close()

	entries := logs.All()
	assert.Len(suite.T(), entries, 1)
	assert.Contains(suite.T(), entries[0].Message, "GET "+server.URL+"/oauth2/token")
	assert.Contains(suite.T(), entries[0].Message, "201")
	assert.NotContains(suite.T(), entries[0].Message, "secret=value")
}

func (suite *AccessLogTestSuite) TestAccessLogTransportFailure() {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &Logger{internal: zap.New(core)}

	client := &http.Client{Transport: AccessLogTransport(log, failingRoundTripper{})}
	_, err := client.Get("http://example.invalid/path")
	assert.Error(suite.T(), err)

	entries := logs.All()
	assert.Len(suite.T(), entries, 1)
	assert.Equal(suite.T(), zapcore.WarnLevel, entries[0].Level)
	assert.Contains(suite.T(), entries[0].Message, "failed")
}
