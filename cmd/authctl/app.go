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
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/campuslink/authkit/internal/oauth/client"
	"github.com/campuslink/authkit/internal/oauth/signer"
	"github.com/campuslink/authkit/internal/oauth/store"
	"github.com/campuslink/authkit/internal/oauth/transport"
	"github.com/campuslink/authkit/internal/system/config"
	"github.com/campuslink/authkit/internal/system/constants"
	"github.com/campuslink/authkit/internal/system/database/provider"
	httpservice "github.com/campuslink/authkit/internal/system/http"
	"github.com/campuslink/authkit/internal/system/log"
)

const usage = `Usage: authctl [-home <dir>] <command> [arguments]

Commands:
  login -u <username> -p <password>   obtain and store a token
  refresh                             refresh the stored token
  status                              show the stored token
  logout                              erase the stored token
  sign <path>...                      print signed requests for platform paths`

var errUsage = errors.New("invalid usage")

// app wires the OAuth client, its token store and the URL signer for one invocation.
type app struct {
	client     *client.OAuthClient
	urlSigner  *signer.URLSigner
	dbProvider provider.DBProviderInterface
	out        io.Writer
	logger     *log.Logger
}

func newApp(ctx context.Context, cfg *config.Config, home string, out io.Writer) (*app, error) {
	var dbProvider provider.DBProviderInterface
	if cfg.TokenStore.Type == config.TokenStoreTypeDatabase {
		dbProvider = provider.NewDBProvider(cfg.Database.Token, home)
	}

	kv, err := store.NewStore(ctx, cfg.TokenStore, home, dbProvider)
	if err != nil {
		if dbProvider != nil {
			_ = dbProvider.Close()
		}
		return nil, err
	}

	httpClient := httpservice.NewHTTPClient(
		httpservice.WithTimeout(time.Duration(cfg.HTTP.Timeout)*time.Second),
		httpservice.WithUserAgent(constants.DefaultUserAgent))
	oauthClient := client.NewOAuthClient(client.ConfigFromOAuthConfig(cfg.OAuth),
		transport.NewTransport(httpClient), kv)

	return &app{
		client:     oauthClient,
		urlSigner:  signer.NewURLSigner(cfg.Platform.BaseURL, oauthClient),
		dbProvider: dbProvider,
		out:        out,
		logger:     log.GetLogger().With(log.String(log.LoggerKeyComponentName, "authctl")),
	}, nil
}

func (a *app) close() {
	if a.dbProvider == nil {
		return
	}
	if err := a.dbProvider.Close(); err != nil {
		a.logger.Error("Failed to close database provider", log.Error(err))
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "login":
		return a.login(ctx, args[1:])
	case "refresh":
		return a.refresh(ctx)
	case "status":
		return a.status(ctx)
	case "logout":
		return a.logout(ctx)
	case "sign":
		return a.sign(ctx, args[1:])
	default:
		return errUsage
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil || *username == "" || *password == "" {
		return errUsage
	}

	tok, err := a.client.GetToken(ctx, *username, *password)
	if err != nil {
		return err
	}
	a.printf("Logged in as %s. Token expires in %s.\n", *username, a.client.ExpiresIn().Round(time.Second))
	if tok.Scope != "" {
		a.printf("Granted scope: %s\n", tok.Scope)
	}
	return nil
}

func (a *app) refresh(ctx context.Context) error {
	if err := a.client.LoadToken(ctx); err != nil {
		return err
	}
	if _, err := a.client.RefreshTokenStrict(ctx); err != nil {
		return err
	}
	a.printf("Token refreshed. Expires in %s.\n", a.client.ExpiresIn().Round(time.Second))
	return nil
}

func (a *app) status(ctx context.Context) error {
	if err := a.client.LoadToken(ctx); err != nil {
		if errors.Is(err, client.ErrNoStoredToken) {
			a.printf("Not logged in.\n")
			return nil
		}
		return err
	}

	tok := a.client.Token()
	a.printf("Access token:  %s\n", log.MaskString(tok.AccessToken))
	a.printf("Token type:    %s\n", tok.TokenType)
	a.printf("Scope:         %s\n", tok.Scope)
	a.printf("Expires at:    %s\n", tok.ExpiresAt.Local().Format(time.RFC1123))
	if a.client.IsExpired() {
		a.printf("Status:        expired\n")
	} else {
		a.printf("Status:        valid for %s\n", a.client.ExpiresIn().Round(time.Second))
	}
	a.printf("Refreshable:   %t\n", tok.RefreshToken != "")
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.client.EraseToken(ctx); err != nil {
		return err
	}
	a.printf("Logged out.\n")
	return nil
}

// sign prints a signed request for every path, refreshing an expired token first.
func (a *app) sign(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return errUsage
	}
	if err := a.client.LoadToken(ctx); err != nil {
		return err
	}
	if a.client.IsExpired() {
		a.logger.Debug("Stored token expired, refreshing before signing")
		if _, err := a.client.RefreshTokenStrict(ctx); err != nil {
			return err
		}
	}

	images := make([]signer.Image, 0, len(paths))
	for _, p := range paths {
		images = append(images, signer.Image{Src: p})
	}
	signed, err := a.urlSigner.SignImagesURLs(images)
	if err != nil {
		return err
	}

	requests := make([]*client.RequestDescriptor, 0, len(signed))
	for _, s := range signed {
		requests = append(requests, s.Src)
	}
	encoder := json.NewEncoder(a.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(requests)
}

func (a *app) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}
