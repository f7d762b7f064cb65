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

// Package signer builds signed request descriptors for platform resources such as images.
package signer

import (
	"fmt"
	"net/http"

	"github.com/campuslink/authkit/internal/oauth/client"
	"github.com/campuslink/authkit/internal/system/error/serviceerror"
	"github.com/campuslink/authkit/internal/system/log"
	"github.com/campuslink/authkit/internal/system/utils"
)

const loggerComponentName = "URLSigner"

// RequestSignerInterface signs request descriptors.
type RequestSignerInterface interface {
	Sign(req *client.RequestDescriptor) (*client.RequestDescriptor, error)
}

// Image is an image reference found in platform content.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// SignedImage is an image whose source has been turned into a signed request.
type SignedImage struct {
	Src *client.RequestDescriptor `json:"src"`
	Alt string                    `json:"alt"`
}

// URLSignerInterface defines the operations of the URL signer.
type URLSignerInterface interface {
	SignURL(path string) (*client.RequestDescriptor, error)
	SignImagesURLs(images []Image) ([]SignedImage, error)
}

// URLSigner resolves platform paths and signs them with the current token.
type URLSigner struct {
	baseURL string
	signer  RequestSignerInterface
	logger  *log.Logger
}

// NewURLSigner creates a signer resolving paths against baseURL.
func NewURLSigner(baseURL string, signer RequestSignerInterface) *URLSigner {
	return &URLSigner{
		baseURL: baseURL,
		signer:  signer,
		logger:  log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)),
	}
}

// SignURL returns a signed GET request for the given path. Absolute URLs are kept as is.
func (s *URLSigner) SignURL(path string) (*client.RequestDescriptor, error) {
	absoluteURL, err := utils.ResolveURL(s.baseURL, path)
	if err != nil {
		s.logger.Debug("Failed to resolve resource path", log.String("path", path), log.Error(err))
		svcErr := serviceerror.CustomServiceError(*ErrInvalidResourcePath,
			fmt.Sprintf("Cannot resolve %q against %q", path, s.baseURL))
		return nil, fmt.Errorf("%w: %w", svcErr, err)
	}

	return s.signer.Sign(&client.RequestDescriptor{
		Method: http.MethodGet,
		URL:    absoluteURL,
	})
}

// SignImagesURLs signs the source of every image, keeping order and alt text.
// The first failure aborts and is returned.
func (s *URLSigner) SignImagesURLs(images []Image) ([]SignedImage, error) {
	signed := make([]SignedImage, 0, len(images))
	for i, image := range images {
		src, err := s.SignURL(image.Src)
		if err != nil {
			s.logger.Error("Failed to sign image", log.Int("index", i), log.Error(err))
			return nil, err
		}
		signed = append(signed, SignedImage{Src: src, Alt: image.Alt})
	}
	return signed, nil
}
