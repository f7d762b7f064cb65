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

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/campuslink/authkit/internal/system/database/provider"
	"github.com/campuslink/authkit/internal/system/log"
)

const defaultNamespace = "default"

// DBStore keeps items in the KEY_VALUE_STORE table, scoped by a namespace so that several
// sessions can share one database.
type DBStore struct {
	dbProvider provider.DBProviderInterface
	namespace  string
	logger     *log.Logger
}

// NewDBStore creates a DBStore using the given database provider and namespace.
func NewDBStore(dbProvider provider.DBProviderInterface, namespace string) *DBStore {
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &DBStore{
		dbProvider: dbProvider,
		namespace:  namespace,
		logger:     log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBStore")),
	}
}

// EnsureSchema creates the key-value table when it does not exist.
func (s *DBStore) EnsureSchema(ctx context.Context) error {
	dbClient, err := s.dbProvider.GetDBClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}
	if _, err := dbClient.Execute(ctx, QueryCreateKeyValueTable); err != nil {
		return fmt.Errorf("failed to create key-value table: %w", err)
	}
	return nil
}

// GetItem returns the value stored under key.
func (s *DBStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	dbClient, err := s.dbProvider.GetDBClient(ctx)
	if err != nil {
		return "", false, fmt.Errorf("failed to get database client: %w", err)
	}

	row, found, err := dbClient.QueryOne(ctx, QueryGetItem, s.namespace, key)
	if err != nil {
		return "", false, fmt.Errorf("failed to read item %s: %w", key, err)
	}
	if !found {
		return "", false, nil
	}

	value, ok := row.String("item_value")
	if !ok {
		return "", false, fmt.Errorf("failed to read item %s: value is null or not text", key)
	}
	return value, true, nil
}

// SetItem stores value under key, replacing any previous value.
func (s *DBStore) SetItem(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	dbClient, err := s.dbProvider.GetDBClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	if _, err := dbClient.Execute(ctx, QueryUpsertItem, s.namespace, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to store item %s: %w", key, err)
	}
	s.logger.Debug("Stored item", log.String(log.LoggerKeyStorageKey, key), log.String("namespace", s.namespace))
	return nil
}

// RemoveItem deletes the value stored under key. Removing a missing key is not an error.
func (s *DBStore) RemoveItem(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	dbClient, err := s.dbProvider.GetDBClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	rows, err := dbClient.Execute(ctx, QueryDeleteItem, s.namespace, key)
	if err != nil {
		return fmt.Errorf("failed to remove item %s: %w", key, err)
	}
	s.logger.Debug("Removed item", log.String(log.LoggerKeyStorageKey, key), log.Int64("rowsAffected", rows))
	return nil
}
