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

// Package utils provides utility functions for HTTP and string operations.
package utils

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strings"

	"github.com/campuslink/authkit/internal/system/constants"
)

// BuildBasicAuthHeader returns the value of a Basic authorization header for the given credentials.
func BuildBasicAuthHeader(username, password string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return constants.TokenTypeBasic + " " + encoded
}

// ExtractBasicAuthCredentials extracts the credentials from a Basic authorization header value.
func ExtractBasicAuthCredentials(authHeader string) (string, string, error) {
	if !strings.HasPrefix(authHeader, constants.TokenTypeBasic+" ") {
		return "", "", errors.New("invalid authorization header")
	}

	encodedCredentials := strings.TrimPrefix(authHeader, constants.TokenTypeBasic+" ")
	decodedCredentials, err := base64.StdEncoding.DecodeString(encodedCredentials)
	if err != nil {
		return "", "", errors.New("failed to decode authorization header")
	}

	credentials := strings.SplitN(string(decodedCredentials), ":", 2)
	if len(credentials) != 2 {
		return "", "", errors.New("invalid authorization header format")
	}

	return credentials[0], credentials[1], nil
}

// AppendQueryParams appends the given parameters to the URI, joining with "&" when the URI
// already carries a query string and with "?" otherwise. Parameters are encoded in key order.
func AppendQueryParams(uri string, queryParams map[string]string) string {
	if len(queryParams) == 0 {
		return uri
	}

	values := url.Values{}
	for key, value := range queryParams {
		values.Set(key, value)
	}

	separator := "?"
	if strings.Contains(uri, "?") {
		separator = "&"
	}
	return uri + separator + values.Encode()
}

// ResolveURL joins a relative path onto a base URL. Absolute URLs are returned unchanged.
func ResolveURL(baseURL, path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	if !base.IsAbs() {
		return "", errors.New("base URL must be absolute")
	}

	return strings.TrimSuffix(base.String(), "/") + "/" + strings.TrimPrefix(ref.String(), "/"), nil
}
