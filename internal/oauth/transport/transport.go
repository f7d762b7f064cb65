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

// Package transport performs token endpoint calls and classifies their failures.
package transport

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/campuslink/authkit/internal/oauth/constants"
	sysconst "github.com/campuslink/authkit/internal/system/constants"
	httpservice "github.com/campuslink/authkit/internal/system/http"
	"github.com/campuslink/authkit/internal/system/log"
	"github.com/campuslink/authkit/internal/system/utils"
)

const loggerComponentName = "OAuthTransport"

// Request describes a call to the token endpoint.
type Request struct {
	// Method defaults to POST.
	Method string
	URL    string
	// Query is appended to URL, after any query string the URL already has.
	Query map[string]string
	// Body is sent form-url-encoded.
	Body    map[string]string
	Headers map[string]string
}

// TransportInterface defines a token endpoint call returning the parsed JSON body.
type TransportInterface interface {
	Do(ctx context.Context, req Request) (map[string]interface{}, error)
}

// Transport is the HTTP implementation of TransportInterface.
type Transport struct {
	httpClient httpservice.HTTPClientInterface
}

// NewTransport creates a Transport sending requests through the given HTTP client, or the
// shared default client when httpClient is nil.
func NewTransport(httpClient httpservice.HTTPClientInterface) *Transport {
	if httpClient == nil {
		httpClient = httpservice.GetHTTPClient()
	}
	return &Transport{httpClient: httpClient}
}

// Do sends the request and returns the parsed response body. A body that is not a JSON
// object fails with CodeJSON. A body carrying an error field fails with CodeAuth before
// the status is looked at. A status outside [200, 399) fails with CodeStatus.
func (t *Transport) Do(ctx context.Context, req Request) (map[string]interface{}, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String(log.LoggerKeyCorrelationID, utils.GenerateUUID()))

	method := req.Method
	if method == "" {
		method = http.MethodPost
	}
	target := utils.AppendQueryParams(req.URL, req.Query)

	var bodyReader io.Reader
	headers := req.Headers
	if len(req.Body) > 0 {
		form := url.Values{}
		for key, value := range req.Body {
			form.Set(key, value)
		}
		bodyReader = strings.NewReader(form.Encode())
		headers = utils.MergeStringMaps(map[string]string{
			sysconst.ContentTypeHeaderName: sysconst.ContentTypeFormURLEncoded,
		}, req.Headers)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		logger.Error("Failed to create token request", log.Error(err))
		return nil, &Error{Code: CodeNetwork, cause: err}
	}
	for key, value := range headers {
		httpReq.Header.Set(key, value)
	}

	logger.Debug("Sending token request", log.String("method", method), log.String("url", req.URL))
	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		logger.Error("Token request failed", log.Error(err))
		return nil, &Error{Code: CodeNetwork, cause: err}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("Failed to close response body", log.Error(closeErr))
		}
	}()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("Failed to read token response", log.Error(err))
		return nil, &Error{Code: CodeNetwork, Status: resp.StatusCode, cause: err}
	}

	if !gjson.ValidBytes(rawBody) {
		logger.Error("Invalid JSON in token response", log.Int("status", resp.StatusCode))
		return nil, &Error{Code: CodeJSON, Status: resp.StatusCode, RawBody: rawBody}
	}
	parsed := gjson.ParseBytes(rawBody)
	if !parsed.IsObject() {
		logger.Error("Token response is not a JSON object", log.Int("status", resp.StatusCode))
		return nil, &Error{Code: CodeJSON, Status: resp.StatusCode, RawBody: rawBody}
	}
	body, _ := parsed.Value().(map[string]interface{})

	if isSet(parsed.Get(constants.Error)) {
		authErr := &Error{Code: CodeAuth, Status: resp.StatusCode, Body: body, RawBody: rawBody}
		logger.Error("Token endpoint returned an error", log.Int("status", resp.StatusCode),
			log.String("oauthError", authErr.OAuthError()))
		if logger.IsDebugEnabled() {
			logger.Debug("Token endpoint error description",
				log.String("description", authErr.OAuthErrorDescription()))
		}
		return nil, authErr
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= 399 {
		logger.Error("Token endpoint returned an unexpected status", log.Int("status", resp.StatusCode))
		return nil, &Error{Code: CodeStatus, Status: resp.StatusCode, Body: body, RawBody: rawBody}
	}

	logger.Debug("Token request succeeded", log.Int("status", resp.StatusCode))
	return body, nil
}

// isSet reports whether a field holds a value other than null, false, zero or an empty string.
func isSet(field gjson.Result) bool {
	if !field.Exists() {
		return false
	}
	switch field.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.String:
		return field.Str != ""
	case gjson.Number:
		return field.Num != 0
	default:
		return true
	}
}
