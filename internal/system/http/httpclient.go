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

// Package http builds the outbound HTTP clients used to talk to the token endpoint and the platform.
package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/campuslink/authkit/internal/system/constants"
	"github.com/campuslink/authkit/internal/system/log"
)

var (
	sharedClient     HTTPClientInterface
	sharedClientOnce sync.Once
)

// HTTPClientInterface is the subset of *http.Client the rest of the module depends on.
type HTTPClientInterface interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPClient wraps an *http.Client built from a set of Options.
type HTTPClient struct {
	client *http.Client
}

type clientOptions struct {
	timeout         time.Duration
	userAgent       string
	base            http.RoundTripper
	followRedirects bool
	accessLog       bool
}

// Option customizes a client built by NewHTTPClient.
type Option func(*clientOptions)

// WithTimeout sets the overall request timeout. Non-positive values keep the default.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithUserAgent sets the User-Agent on requests that do not carry one.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithRoundTripper replaces http.DefaultTransport as the innermost transport.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(o *clientOptions) {
		o.base = rt
	}
}

// WithoutRedirects hands 3xx responses back to the caller instead of following them.
func WithoutRedirects() Option {
	return func(o *clientOptions) {
		o.followRedirects = false
	}
}

// WithoutAccessLog disables the outbound access log.
func WithoutAccessLog() Option {
	return func(o *clientOptions) {
		o.accessLog = false
	}
}

// NewHTTPClient creates a client with a 30 second timeout, redirect following and access
// logging, adjusted by opts.
func NewHTTPClient(opts ...Option) HTTPClientInterface {
	o := &clientOptions{
		timeout:         constants.DefaultHTTPTimeoutSeconds * time.Second,
		base:            http.DefaultTransport,
		followRedirects: true,
		accessLog:       true,
	}
	for _, opt := range opts {
		opt(o)
	}

	rt := o.base
	if rt == nil {
		rt = http.DefaultTransport
	}
	if o.userAgent != "" {
		rt = &userAgentTransport{userAgent: o.userAgent, next: rt}
	}
	if o.accessLog {
		logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "HTTPClient"))
		rt = log.AccessLogTransport(logger, rt)
	}

	c := &http.Client{Timeout: o.timeout, Transport: rt}
	if !o.followRedirects {
		c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return &HTTPClient{client: c}
}

// GetHTTPClient returns the process-wide client built with the default options.
func GetHTTPClient() HTTPClientInterface {
	sharedClientOnce.Do(func() {
		sharedClient = NewHTTPClient(WithUserAgent(constants.DefaultUserAgent))
	})
	return sharedClient
}

// Do sends the request.
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}

type userAgentTransport struct {
	userAgent string
	next      http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(constants.UserAgentHeaderName) != "" {
		return t.next.RoundTrip(req)
	}
	// RoundTrippers must not modify the caller's request.
	clone := req.Clone(req.Context())
	clone.Header.Set(constants.UserAgentHeaderName, t.userAgent)
	return t.next.RoundTrip(clone)
}
