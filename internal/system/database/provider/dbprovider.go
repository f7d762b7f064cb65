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

// Package provider provides functionality for managing database connections and clients.
package provider

import (
	"context"
	"database/sql"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/campuslink/authkit/internal/system/config"
	"github.com/campuslink/authkit/internal/system/database/client"
	"github.com/campuslink/authkit/internal/system/database/model"
	"github.com/campuslink/authkit/internal/system/log"
)

// dbConfig represents the local database configuration.
type dbConfig struct {
	dsn        string
	driverName string
}

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient(ctx context.Context) (client.DBClientInterface, error)
	Close() error
}

// DBProvider is the implementation of DBProviderInterface. It lazily opens a single
// connection pool for the configured data source.
type DBProvider struct {
	dataSource config.DataSource
	home       string
	dbClient   client.DBClientInterface
	mutex      sync.RWMutex
}

// NewDBProvider creates a new DBProvider for the given data source. Relative SQLite
// paths are resolved against home.
func NewDBProvider(dataSource config.DataSource, home string) *DBProvider {
	return &DBProvider{
		dataSource: dataSource,
		home:       home,
	}
}

// GetDBClient returns the database client, opening the connection on first use.
// Not required to close the returned client manually since the provider owns it.
func (d *DBProvider) GetDBClient(ctx context.Context) (client.DBClientInterface, error) {
	d.mutex.RLock()
	if d.dbClient != nil {
		dbClient := d.dbClient
		d.mutex.RUnlock()
		return dbClient, nil
	}
	d.mutex.RUnlock()

	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.dbClient != nil {
		return d.dbClient, nil
	}

	dbClient, err := d.initializeClient(ctx)
	if err != nil {
		return nil, err
	}
	d.dbClient = dbClient

	return d.dbClient, nil
}

// initializeClient opens and verifies a database connection.
func (d *DBProvider) initializeClient(ctx context.Context) (client.DBClientInterface, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBProvider"))

	dbConfig, err := d.getDBConfig()
	if err != nil {
		return nil, err
	}
	dbName := d.dataSource.Name
	if dbName == "" {
		dbName = d.dataSource.Path
	}

	db, err := sql.Open(dbConfig.driverName, dbConfig.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", dbName, err)
	}

	if d.dataSource.MaxOpenConns > 0 {
		db.SetMaxOpenConns(d.dataSource.MaxOpenConns)
	}
	if d.dataSource.MaxIdleConns > 0 {
		db.SetMaxIdleConns(d.dataSource.MaxIdleConns)
	}
	if d.dataSource.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(d.dataSource.ConnMaxLifetime) * time.Second)
	}

	dbClient := client.NewDBClient(db, dbConfig.driverName)
	if err := dbClient.Ping(ctx); err != nil {
		if closeErr := dbClient.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to ping database %s: %w (close error: %w)", dbName, err, closeErr)
		}
		return nil, fmt.Errorf("failed to ping database %s: %w", dbName, err)
	}

	logger.Debug("Database connection established", log.String("type", dbConfig.driverName),
		log.String("database", dbName))
	return dbClient, nil
}

// getDBConfig returns the database configuration based on the data source.
func (d *DBProvider) getDBConfig() (dbConfig, error) {
	var cfg dbConfig

	switch d.dataSource.Type {
	case model.DBTypePostgres:
		cfg.driverName = model.DBTypePostgres
		cfg.dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.dataSource.Hostname, d.dataSource.Port, d.dataSource.Username, d.dataSource.Password,
			d.dataSource.Name, d.dataSource.SSLMode)
	case model.DBTypeSQLite, "":
		cfg.driverName = model.DBTypeSQLite
		options := d.dataSource.Options
		if options != "" && options[0] != '?' {
			options = "?" + options
		}
		dbPath := d.dataSource.Path
		if !path.IsAbs(dbPath) {
			dbPath = path.Join(d.home, dbPath)
		}
		cfg.dsn = fmt.Sprintf("%s%s", dbPath, options)
	default:
		return cfg, fmt.Errorf("unsupported database type: %s", d.dataSource.Type)
	}

	return cfg, nil
}

// Close closes the database connection, if one was opened.
func (d *DBProvider) Close() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.dbClient == nil {
		return nil
	}
	if err := d.dbClient.Close(); err != nil {
		return fmt.Errorf("failed to close database client: %w", err)
	}
	d.dbClient = nil
	return nil
}
