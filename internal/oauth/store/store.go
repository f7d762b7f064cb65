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

// Package store provides key-value persistence for OAuth2 tokens.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/campuslink/authkit/internal/system/config"
	"github.com/campuslink/authkit/internal/system/database/provider"
)

// TokenStorageKey is the key under which the serialized token is persisted.
const TokenStorageKey = "token"

// defaultFileStorePath is used for the file store when no path is configured.
const defaultFileStorePath = "repository/data/tokens"

var (
	// ErrEmptyKey is returned when an operation is attempted with an empty key.
	ErrEmptyKey = errors.New("store key cannot be empty")
	// ErrUnsupportedStoreType is returned by NewStore for an unknown store type.
	ErrUnsupportedStoreType = errors.New("unsupported token store type")
)

// KeyValueStoreInterface defines a string key-value store. A missing key is reported
// through the boolean result of GetItem and is not an error.
type KeyValueStoreInterface interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// NewStore creates the store selected by the token store configuration. Relative file
// paths are resolved against home. The database store requires a database provider.
func NewStore(ctx context.Context, cfg config.TokenStoreConfig, home string,
	dbProvider provider.DBProviderInterface) (KeyValueStoreInterface, error) {
	switch cfg.Type {
	case config.TokenStoreTypeMemory, "":
		return NewMemoryStore(), nil
	case config.TokenStoreTypeFile:
		dir := cfg.Path
		if dir == "" {
			dir = defaultFileStorePath
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(home, dir)
		}
		return NewFileStore(dir), nil
	case config.TokenStoreTypeDatabase:
		if dbProvider == nil {
			return nil, errors.New("database token store requires a database provider")
		}
		dbStore := NewDBStore(dbProvider, cfg.Namespace)
		if err := dbStore.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("failed to prepare database token store: %w", err)
		}
		return dbStore, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedStoreType, cfg.Type)
	}
}
