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

package signer

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/campuslink/authkit/internal/oauth/client"
	"github.com/campuslink/authkit/internal/oauth/store"
	"github.com/campuslink/authkit/internal/oauth/token"
	"github.com/campuslink/authkit/internal/oauth/transport"
	"github.com/campuslink/authkit/tests/mocks/oauth/signermock"
)

const testBaseURL = "https://school.example.com"

// signWith returns a Sign implementation that adds a bearer header for the given access token.
func signWith(accessToken string) func(*client.RequestDescriptor) (*client.RequestDescriptor, error) {
	return func(req *client.RequestDescriptor) (*client.RequestDescriptor, error) {
		if req.Headers == nil {
			req.Headers = map[string]string{}
		}
		req.Headers["Authorization"] = "Bearer " + accessToken
		return req, nil
	}
}

type URLSignerTestSuite struct {
	suite.Suite
	mockSigner *signermock.RequestSignerInterfaceMock
	urlSigner  *URLSigner
}

func TestURLSignerSuite(t *testing.T) {
	suite.Run(t, new(URLSignerTestSuite))
}

func (suite *URLSignerTestSuite) SetupTest() {
	suite.mockSigner = signermock.NewRequestSignerInterfaceMock(suite.T())
	suite.urlSigner = NewURLSigner(testBaseURL, suite.mockSigner)
}

func (suite *URLSignerTestSuite) TestSignURL() {
	suite.mockSigner.On("Sign", mock.MatchedBy(func(req *client.RequestDescriptor) bool {
		return req.Method == http.MethodGet && req.URL == testBaseURL+"/userbook/avatar/42"
	})).Return(signWith("AAA")).Once()

	signed, err := suite.urlSigner.SignURL("/userbook/avatar/42")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.MethodGet, signed.Method)
	assert.Equal(suite.T(), testBaseURL+"/userbook/avatar/42", signed.URL)
	assert.Equal(suite.T(), map[string]string{"Authorization": "Bearer AAA"}, signed.Headers)
}

func (suite *URLSignerTestSuite) TestSignURLKeepsAbsoluteURL() {
	suite.mockSigner.On("Sign", mock.Anything).Return(signWith("AAA")).Once()

	signed, err := suite.urlSigner.SignURL("https://cdn.example.com/a.png")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "https://cdn.example.com/a.png", signed.URL)
}

func (suite *URLSignerTestSuite) TestSignURLInvalidPath() {
	_, err := suite.urlSigner.SignURL("://bad")

	assert.ErrorIs(suite.T(), err, ErrInvalidResourcePath)
	suite.mockSigner.AssertNotCalled(suite.T(), "Sign", mock.Anything)
}

func (suite *URLSignerTestSuite) TestSignURLSignerFailure() {
	suite.mockSigner.On("Sign", mock.Anything).Return(nil, client.ErrUnableToSign).Once()

	signed, err := suite.urlSigner.SignURL("/userbook/avatar/42")

	assert.Nil(suite.T(), signed)
	assert.ErrorIs(suite.T(), err, client.ErrUnableToSign)
}

func (suite *URLSignerTestSuite) TestSignImagesURLs() {
	suite.mockSigner.On("Sign", mock.Anything).Return(signWith("AAA")).Times(3)
	images := []Image{
		{Src: "/workspace/document/1", Alt: "first"},
		{Src: "/workspace/document/2", Alt: "second"},
		{Src: "/workspace/document/1", Alt: "again"},
	}

	signed, err := suite.urlSigner.SignImagesURLs(images)

	require.NoError(suite.T(), err)
	require.Len(suite.T(), signed, 3)
	for i, image := range images {
		assert.Equal(suite.T(), image.Alt, signed[i].Alt)
		assert.Equal(suite.T(), testBaseURL+image.Src, signed[i].Src.URL)
		assert.Equal(suite.T(), "Bearer AAA", signed[i].Src.Headers["Authorization"])
	}
	assert.NotSame(suite.T(), signed[0].Src, signed[2].Src)
}

func (suite *URLSignerTestSuite) TestSignImagesURLsEmpty() {
	signed, err := suite.urlSigner.SignImagesURLs(nil)

	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), signed)
}

func (suite *URLSignerTestSuite) TestSignImagesURLsStopsAtFirstFailure() {
	suite.mockSigner.On("Sign", mock.MatchedBy(func(req *client.RequestDescriptor) bool {
		return req.URL == testBaseURL+"/a.png"
	})).Return(signWith("AAA")).Once()
	suite.mockSigner.On("Sign", mock.MatchedBy(func(req *client.RequestDescriptor) bool {
		return req.URL == testBaseURL+"/b.png"
	})).Return(nil, errors.New("signing failed")).Once()

	signed, err := suite.urlSigner.SignImagesURLs([]Image{
		{Src: "/a.png", Alt: "a"},
		{Src: "/b.png", Alt: "b"},
		{Src: "/c.png", Alt: "c"},
	})

	assert.Nil(suite.T(), signed)
	assert.EqualError(suite.T(), err, "signing failed")
	suite.mockSigner.AssertNumberOfCalls(suite.T(), "Sign", 2)
}

func (suite *URLSignerTestSuite) TestSignWithOAuthClient() {
	oauthClient := client.NewOAuthClient(client.Config{}, transport.NewTransport(nil), store.NewMemoryStore())
	urlSigner := NewURLSigner(testBaseURL+"/", oauthClient)

	_, err := urlSigner.SignURL("userbook/avatar/42")
	assert.ErrorIs(suite.T(), err, client.ErrUnableToSign)

	oauthClient.SetToken(&token.Token{AccessToken: "AAA", TokenType: "bearer"})
	signed, err := urlSigner.SignImagesURLs([]Image{{Src: "userbook/avatar/42", Alt: "avatar"}})

	require.NoError(suite.T(), err)
	require.Len(suite.T(), signed, 1)
	assert.Equal(suite.T(), testBaseURL+"/userbook/avatar/42", signed[0].Src.URL)
	assert.Equal(suite.T(), "Bearer AAA", signed[0].Src.Headers["Authorization"])
	assert.Equal(suite.T(), "avatar", signed[0].Alt)
}
