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

// Package config provides structures and functions for loading and managing client configurations.
package config

import (
	"os"
	"path/filepath"

	"github.com/campuslink/authkit/internal/system/constants"
	"github.com/campuslink/authkit/internal/system/log"

	yaml "gopkg.in/yaml.v3"
)

// Token store types.
const (
	TokenStoreTypeMemory   = "memory"
	TokenStoreTypeFile     = "file"
	TokenStoreTypeDatabase = "database"
)

// OAuthConfig holds the token endpoint and client credential details.
type OAuthConfig struct {
	TokenEndpoint       string   `yaml:"token_endpoint"`
	ClientID            string   `yaml:"client_id"`
	ClientSecret        string   `yaml:"client_secret"`
	Scopes              []string `yaml:"scopes"`
	SingleFlightRefresh bool     `yaml:"single_flight_refresh"`
}

// PlatformConfig holds the details of the platform serving protected resources.
type PlatformConfig struct {
	BaseURL string `yaml:"base_url"`
}

// TokenStoreConfig holds the token persistence configuration.
type TokenStoreConfig struct {
	Type      string `yaml:"type"`
	Path      string `yaml:"path"`
	Namespace string `yaml:"namespace"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type            string `yaml:"type"`
	Hostname        string `yaml:"hostname"`
	Port            int    `yaml:"port"`
	Name            string `yaml:"name"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	SSLMode         string `yaml:"sslmode"`
	Path            string `yaml:"path"`
	Options         string `yaml:"options"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
}

// DatabaseConfig holds the different database configuration details.
type DatabaseConfig struct {
	Token DataSource `yaml:"token"`
}

// HTTPConfig holds the outbound HTTP client configuration.
type HTTPConfig struct {
	Timeout int `yaml:"timeout"`
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Config holds the complete configuration details of the client.
type Config struct {
	OAuth      OAuthConfig      `yaml:"oauth"`
	Platform   PlatformConfig   `yaml:"platform"`
	TokenStore TokenStoreConfig `yaml:"token_store"`
	Database   DatabaseConfig   `yaml:"database"`
	HTTP       HTTPConfig       `yaml:"http"`
	Log        LogConfig        `yaml:"log"`
}

// LoadConfig loads the configurations from the specified YAML file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if ferr := file.Close(); ferr != nil {
			log.GetLogger().Error("Failed to close config file", log.Error(ferr))
		}
	}()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// ApplyEnvOverrides overrides the client credentials and token endpoint with the values
// of the corresponding environment variables, when set.
func ApplyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv(constants.ClientIDEnvironmentVariable); ok && v != "" {
		cfg.OAuth.ClientID = v
	}
	if v, ok := os.LookupEnv(constants.ClientSecretEnvironmentVariable); ok && v != "" {
		cfg.OAuth.ClientSecret = v
	}
	if v, ok := os.LookupEnv(constants.TokenEndpointEnvironmentVariable); ok && v != "" {
		cfg.OAuth.TokenEndpoint = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.TokenStore.Type == "" {
		cfg.TokenStore.Type = TokenStoreTypeMemory
	}
	if cfg.TokenStore.Namespace == "" {
		cfg.TokenStore.Namespace = "default"
	}
	if cfg.HTTP.Timeout <= 0 {
		cfg.HTTP.Timeout = constants.DefaultHTTPTimeoutSeconds
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = constants.DefaultLogLevel
	}
}
