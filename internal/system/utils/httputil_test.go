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

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type HTTPUtilTestSuite struct {
	suite.Suite
}

func TestHTTPUtilSuite(t *testing.T) {
	suite.Run(t, new(HTTPUtilTestSuite))
}

func (suite *HTTPUtilTestSuite) TestBuildBasicAuthHeader() {
	header := BuildBasicAuthHeader("app", "s3cret")
	assert.Equal(suite.T(), "Basic YXBwOnMzY3JldA==", header)

	id, secret, err := ExtractBasicAuthCredentials(header)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "app", id)
	assert.Equal(suite.T(), "s3cret", secret)
}

func (suite *HTTPUtilTestSuite) TestBuildBasicAuthHeaderEmptyCredentials() {
	header := BuildBasicAuthHeader("", "")
	id, secret, err := ExtractBasicAuthCredentials(header)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), id)
	assert.Empty(suite.T(), secret)
}

func (suite *HTTPUtilTestSuite) TestExtractBasicAuthCredentials() {
	testCases := []struct {
		name        string
		header      string
		expectError bool
	}{
		{"MissingPrefix", "Bearer abc", true},
		{"InvalidBase64", "Basic !!!", true},
		{"MissingColon", "Basic dXNlcg==", true},
		{"Valid", "Basic dXNlcjpwYXNz", false},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			_, _, err := ExtractBasicAuthCredentials(tc.header)
			if tc.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func (suite *HTTPUtilTestSuite) TestAppendQueryParams() {
	testCases := []struct {
		name        string
		uri         string
		queryParams map[string]string
		expected    string
	}{
		{
			name:        "NoQueryParams",
			uri:         "https://example.com/token",
			queryParams: map[string]string{},
			expected:    "https://example.com/token",
		},
		{
			name:        "SingleQueryParam",
			uri:         "https://example.com/token",
			queryParams: map[string]string{"locale": "fr"},
			expected:    "https://example.com/token?locale=fr",
		},
		{
			name:        "MultipleQueryParamsSorted",
			uri:         "https://example.com/token",
			queryParams: map[string]string{"b": "2", "a": "1"},
			expected:    "https://example.com/token?a=1&b=2",
		},
		{
			name:        "ExistingQueryString",
			uri:         "https://example.com/token?tenant=school",
			queryParams: map[string]string{"locale": "fr"},
			expected:    "https://example.com/token?tenant=school&locale=fr",
		},
		{
			name:        "EscapedValues",
			uri:         "https://example.com/token",
			queryParams: map[string]string{"scope": "a b"},
			expected:    "https://example.com/token?scope=a+b",
		},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, AppendQueryParams(tc.uri, tc.queryParams))
		})
	}
}

func (suite *HTTPUtilTestSuite) TestResolveURL() {
	testCases := []struct {
		name        string
		base        string
		path        string
		expected    string
		expectError bool
	}{
		{"RelativeWithSlash", "https://school.example.com", "/userbook/avatar/42", "https://school.example.com/userbook/avatar/42", false},
		{"RelativeWithoutSlash", "https://school.example.com/", "userbook/avatar/42", "https://school.example.com/userbook/avatar/42", false},
		{"KeepsQuery", "https://school.example.com", "/workspace/document/1?thumbnail=120x120", "https://school.example.com/workspace/document/1?thumbnail=120x120", false},
		{"AbsolutePath", "https://school.example.com", "https://cdn.example.com/a.png", "https://cdn.example.com/a.png", false},
		{"RelativeBase", "school.example.com", "/a.png", "", true},
		{"InvalidPath", "https://school.example.com", "://bad", "", true},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			result, err := ResolveURL(tc.base, tc.path)
			if tc.expectError {
				assert.Error(t, err)
				assert.Empty(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, result)
			}
		})
	}
}
