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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/campuslink/authkit/internal/system/config"
	"github.com/campuslink/authkit/internal/system/constants"
	"github.com/campuslink/authkit/internal/system/log"
)

const configFilePath = "repository/conf/deployment.yaml"

func main() {
	logger := log.GetLogger()

	homeFlag := flag.String("home", "", "Path to the authctl home directory")
	flag.Usage = func() {
		_, _ = fmt.Fprintln(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	home := getHome(logger, *homeFlag)
	loadEnvFile(logger, home)

	initConfigurations(logger, home)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, flag.Args())
	stop()
	log.Sync()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	logger := log.GetLogger()
	rt := config.GetRuntime()

	app, err := newApp(ctx, &rt.Config, rt.Home, os.Stdout)
	if err != nil {
		logger.Error("Failed to initialize the client", log.Error(err))
		return 1
	}
	defer app.close()

	if err := app.run(ctx, args); err != nil {
		if errors.Is(err, errUsage) {
			_, _ = fmt.Fprintln(os.Stderr, usage)
			return 2
		}
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// getHome resolves the home directory from the command line, the environment or the
// current working directory, in that order.
func getHome(logger *log.Logger, homeFlag string) string {
	if homeFlag != "" {
		logger.Debug("Using home from command line argument", log.String("home", homeFlag))
		return homeFlag
	}
	if home := os.Getenv(constants.HomeEnvironmentVariable); home != "" {
		logger.Debug("Using home from environment", log.String("home", home))
		return home
	}

	dir, err := os.Getwd()
	if err != nil {
		logger.Fatal("Failed to get current working directory", log.Error(err))
	}
	return dir
}

// loadEnvFile loads <home>/.env into the environment. Variables already set win.
func loadEnvFile(logger *log.Logger, home string) {
	envFile := filepath.Join(home, ".env")
	if err := godotenv.Load(envFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return
		}
		logger.Warn("Failed to load environment file", log.String("path", envFile), log.Error(err))
	}
}

func initConfigurations(logger *log.Logger, home string) {
	cfg, err := config.LoadConfig(filepath.Join(home, configFilePath))
	if err != nil {
		logger.Fatal("Failed to load configurations", log.Error(err))
	}
	config.ApplyEnvOverrides(cfg)

	if err := config.InitializeRuntime(home, cfg); err != nil {
		logger.Fatal("Failed to initialize runtime", log.Error(err))
	}
	if err := log.Configure(cfg.Log.Level, config.GetRuntime().ResolvePath(cfg.Log.File)); err != nil {
		logger.Fatal("Failed to configure logger", log.Error(err))
	}
}
