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

// Package client runs catalogued queries against the token database.
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/campuslink/authkit/internal/system/database/model"
	"github.com/campuslink/authkit/internal/system/log"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// ErrMultipleRows is returned by QueryOne when the query matches more than one row.
var ErrMultipleRows = errors.New("query returned more than one row")

// DBClientInterface runs DBQuery statements using the dialect of the connected database.
type DBClientInterface interface {
	// Query returns every row produced by the query.
	Query(ctx context.Context, query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error)
	// QueryOne returns the only row produced by the query. found is false when there is none.
	QueryOne(ctx context.Context, query model.DBQuery, args ...interface{}) (row model.Row, found bool, err error)
	// Execute runs a statement and returns the number of affected rows.
	Execute(ctx context.Context, query model.DBQuery, args ...interface{}) (int64, error)
	Ping(ctx context.Context) error
	GetDBType() string
	Close() error
}

// DBClient implements DBClientInterface over a DBInterface.
type DBClient struct {
	db     model.DBInterface
	dbType string
	logger *log.Logger
}

// NewDBClient creates a DBClient for a connection of the given database type.
func NewDBClient(db model.DBInterface, dbType string) DBClientInterface {
	return &DBClient{
		db:     db,
		dbType: dbType,
		logger: log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBClient"),
			log.String("dbType", dbType)),
	}
}

// Query returns every row produced by the query.
func (c *DBClient) Query(ctx context.Context, query model.DBQuery,
	args ...interface{}) ([]map[string]interface{}, error) {
	rows, err := c.collect(ctx, query, 0, args)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		return nil, nil
	}
	results := make([]map[string]interface{}, len(rows))
	for i, row := range rows {
		results[i] = row
	}
	return results, nil
}

// QueryOne returns the only row produced by the query.
func (c *DBClient) QueryOne(ctx context.Context, query model.DBQuery,
	args ...interface{}) (model.Row, bool, error) {
	// Reading two rows is enough to detect an ambiguous match.
	rows, err := c.collect(ctx, query, 2, args)
	if err != nil {
		return nil, false, err
	}
	switch len(rows) {
	case 0:
		return nil, false, nil
	case 1:
		return rows[0], true, nil
	default:
		return nil, false, fmt.Errorf("query %s: %w", query.GetID(), ErrMultipleRows)
	}
}

// collect scans up to limit rows, or all rows when limit is zero.
func (c *DBClient) collect(ctx context.Context, query model.DBQuery, limit int,
	args []interface{}) ([]model.Row, error) {
	c.logger.Debug("Running query", log.String("queryID", query.GetID()))

	rows, err := c.db.QueryContext(ctx, query.GetQuery(c.dbType), args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", query.GetID(), err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			c.logger.Error("Failed to close result set", log.String("queryID", query.GetID()),
				log.Error(closeErr))
		}
	}()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", query.GetID(), err)
	}
	// Postgres folds unquoted identifiers to lower case, SQLite keeps them as declared.
	keys := make([]string, len(columns))
	for i, col := range columns {
		keys[i] = strings.ToLower(col)
	}

	var results []model.Row
	values := make([]interface{}, len(columns))
	targets := make([]interface{}, len(columns))
	for rows.Next() {
		for i := range values {
			values[i] = nil
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("query %s: %w", query.GetID(), err)
		}
		row := make(model.Row, len(keys))
		for i, key := range keys {
			row[key] = values[i]
		}
		results = append(results, row)
		if limit > 0 && len(results) == limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query %s: %w", query.GetID(), err)
	}
	return results, nil
}

// Execute runs a statement and returns the number of affected rows.
func (c *DBClient) Execute(ctx context.Context, query model.DBQuery, args ...interface{}) (int64, error) {
	c.logger.Debug("Running statement", log.String("queryID", query.GetID()))

	res, err := c.db.ExecContext(ctx, query.GetQuery(c.dbType), args...)
	if err != nil {
		return 0, fmt.Errorf("statement %s: %w", query.GetID(), err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("statement %s: %w", query.GetID(), err)
	}
	return affected, nil
}

// Ping checks that the connection is still usable.
func (c *DBClient) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// GetDBType returns the database type the client was created for.
func (c *DBClient) GetDBType() string {
	return c.dbType
}

// Close closes the underlying connection pool.
func (c *DBClient) Close() error {
	return c.db.Close()
}
