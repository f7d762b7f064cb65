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

import "github.com/campuslink/authkit/internal/system/error/serviceerror"

// ErrInvalidResourcePath is returned when a path cannot be resolved against the platform base URL.
var ErrInvalidResourcePath = &serviceerror.ServiceError{
	Type:             serviceerror.ClientErrorType,
	Code:             "AUTH-SIGN-1001",
	Message:          "Invalid resource path",
	ErrorDescription: "The resource path could not be resolved against the platform base URL",
}
