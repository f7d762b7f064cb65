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
	"fmt"
	"net/http"
	"time"
)

// AccessLogTransport logs every outbound request passing through next in a CLF-like line
// with the response time. Query strings are never logged.
func AccessLogTransport(logger *Logger, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &accessLogRoundTripper{logger: logger, next: next}
}

// accessLogRoundTripper wraps an http.RoundTripper to log the outcome of each request.
type accessLogRoundTripper struct {
	logger *Logger
	next   http.RoundTripper
}

// RoundTrip executes the request and logs the method, target, status and elapsed time.
func (a *accessLogRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := a.next.RoundTrip(req)
	elapsedMs := time.Since(start).Milliseconds()

	target := req.URL.Scheme + "://" + req.URL.Host + req.URL.Path
	if err != nil {
		a.logger.Warn(fmt.Sprintf(`[%s] "%s %s" failed %d`,
			start.Format("02/Jan/2006:15:04:05 -0700"), req.Method, target, elapsedMs), Error(err))
		return resp, err
	}

	a.logger.Info(fmt.Sprintf(`[%s] "%s %s %s" %d %d`,
		start.Format("02/Jan/2006:15:04:05 -0700"),
		req.Method,
		target,
		req.Proto,
		resp.StatusCode,
		elapsedMs,
	))
	return resp, nil
}
