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

package provider

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/campuslink/authkit/internal/system/config"
	"github.com/campuslink/authkit/internal/system/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type DBProviderTestSuite struct {
	suite.Suite
}

func TestDBProviderSuite(t *testing.T) {
	suite.Run(t, new(DBProviderTestSuite))
}

func (suite *DBProviderTestSuite) TestGetDBConfigPostgres() {
	provider := NewDBProvider(config.DataSource{
		Type:     "postgres",
		Hostname: "db.example.com",
		Port:     5432,
		Name:     "authkit",
		Username: "user",
		Password: "pass",
		SSLMode:  "disable",
	}, "/home")

	cfg, err := provider.getDBConfig()

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "postgres", cfg.driverName)
	assert.Equal(suite.T(), "host=db.example.com port=5432 user=user password=pass dbname=authkit sslmode=disable",
		cfg.dsn)
}

func (suite *DBProviderTestSuite) TestGetDBConfigSQLite() {
	testCases := []struct {
		name     string
		source   config.DataSource
		expected string
	}{
		{
			name:     "RelativePath",
			source:   config.DataSource{Type: "sqlite", Path: "repository/database/token.db"},
			expected: "/opt/authkit/repository/database/token.db",
		},
		{
			name:     "AbsolutePath",
			source:   config.DataSource{Type: "sqlite", Path: "/var/lib/token.db"},
			expected: "/var/lib/token.db",
		},
		{
			name:     "WithOptions",
			source:   config.DataSource{Type: "sqlite", Path: "token.db", Options: "_pragma=busy_timeout(5000)"},
			expected: "/opt/authkit/token.db?_pragma=busy_timeout(5000)",
		},
		{
			name:     "WithPrefixedOptions",
			source:   config.DataSource{Type: "sqlite", Path: "token.db", Options: "?mode=ro"},
			expected: "/opt/authkit/token.db?mode=ro",
		},
		{
			name:     "DefaultType",
			source:   config.DataSource{Path: "token.db"},
			expected: "/opt/authkit/token.db",
		},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			cfg, err := NewDBProvider(tc.source, "/opt/authkit").getDBConfig()
			assert.NoError(t, err)
			assert.Equal(t, "sqlite", cfg.driverName)
			assert.Equal(t, tc.expected, cfg.dsn)
		})
	}
}

func (suite *DBProviderTestSuite) TestGetDBConfigUnsupportedType() {
	_, err := NewDBProvider(config.DataSource{Type: "oracle"}, "").getDBConfig()

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "unsupported database type")
}

func (suite *DBProviderTestSuite) TestGetDBClientSQLite() {
	home := suite.T().TempDir()
	provider := NewDBProvider(config.DataSource{Type: "sqlite", Path: "token.db", MaxOpenConns: 1}, home)
	defer func() {
		assert.NoError(suite.T(), provider.Close())
	}()

	ctx := context.Background()
	dbClient, err := provider.GetDBClient(ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), model.DBTypeSQLite, dbClient.GetDBType())
	assert.FileExists(suite.T(), filepath.Join(home, "token.db"))

	again, err := provider.GetDBClient(ctx)
	require.NoError(suite.T(), err)
	assert.Same(suite.T(), dbClient, again)

	_, err = dbClient.Execute(ctx, model.DBQuery{ID: "create", Query: "CREATE TABLE T (V TEXT)"})
	require.NoError(suite.T(), err)
	rows, err := dbClient.Query(ctx, model.DBQuery{ID: "select", Query: "SELECT COUNT(*) AS N FROM T"})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(0), rows[0]["n"])
}

func (suite *DBProviderTestSuite) TestGetDBClientUnsupportedType() {
	provider := NewDBProvider(config.DataSource{Type: "oracle"}, "")

	dbClient, err := provider.GetDBClient(context.Background())

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), dbClient)
}

func (suite *DBProviderTestSuite) TestCloseWithoutClient() {
	provider := NewDBProvider(config.DataSource{Type: "sqlite", Path: "unused.db"}, suite.T().TempDir())

	assert.NoError(suite.T(), provider.Close())
}
