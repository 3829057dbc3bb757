// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-arcade/authcenter/internal/authcenter/authz"
	"github.com/go-arcade/authcenter/internal/authcenter/config"
	"github.com/go-arcade/authcenter/internal/authcenter/repo"
	"github.com/go-arcade/authcenter/internal/authcenter/router"
	"github.com/go-arcade/authcenter/internal/authcenter/service"
	"github.com/go-arcade/authcenter/pkg/cache"
	"github.com/go-arcade/authcenter/pkg/ctx"
	"github.com/go-arcade/authcenter/pkg/database"
	"github.com/go-arcade/authcenter/pkg/log"
)

// Run wires the whole service and blocks until SIGINT/SIGTERM.
func Run(configPath string) error {
	cfg, err := config.NewConfig(configPath, nil)
	if err != nil {
		return err
	}

	log.MustInit(&cfg.Log)
	defer func() { _ = log.GetLogger().Sync() }()

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	rdb, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect redis: %w", err)
	}

	appCtx := ctx.NewContext(context.Background(), db, rdb, log.GetLogger())

	gormDB := database.NewGormDB(db)
	tenantRepo := repo.NewTenantRepo(gormDB)
	userRepo := repo.NewUserRepo(gormDB)
	roleRepo := repo.NewRoleRepo(gormDB)
	settingRepo := repo.NewPermissionSettingRepo(gormDB)
	unitRepo := repo.NewOrganizationUnitRepo(gormDB)
	kvRepo := repo.NewSettingRepo(gormDB)
	editionRepo := repo.NewEditionRepo(gormDB)

	// the catalog must be built before the first resolver call is served
	catalog, err := authz.NewCatalog(authz.DefaultDefinitions())
	if err != nil {
		return fmt.Errorf("invalid permission catalog: %w", err)
	}
	resolver := authz.NewResolver(catalog, userRepo, roleRepo, settingRepo, unitRepo, tenantRepo)

	userService := service.NewUserService(userRepo, roleRepo)
	if cfg.Authz.LockoutThreshold > 0 {
		userService.LockoutThreshold = cfg.Authz.LockoutThreshold
	}
	if cfg.Authz.LockoutMinutes > 0 {
		userService.LockoutDuration = time.Duration(cfg.Authz.LockoutMinutes) * time.Minute
	}

	authzService := service.NewAuthzService(resolver)
	authzService.Options = authz.ResolveOptions{
		InheritAncestorRoles: cfg.Authz.InheritAncestorRoles,
		ApplyDefaultRoles:    cfg.Authz.ApplyDefaultRoles,
	}

	services := &router.Services{
		Tenant:           service.NewTenantService(tenantRepo, roleRepo, userRepo),
		User:             userService,
		Role:             service.NewRoleService(roleRepo),
		Permission:       service.NewPermissionService(catalog, settingRepo, roleRepo, userRepo),
		OrganizationUnit: service.NewOrganizationUnitService(unitRepo, userRepo, roleRepo, rdb),
		Authz:            authzService,
		Setting:          service.NewSettingService(kvRepo),
		Edition:          service.NewEditionService(editionRepo),
	}

	app := router.NewRouter(&cfg.Http, appCtx, services).Router()

	addr := fmt.Sprintf("%s:%d", cfg.Http.Host, cfg.Http.Port)
	errCh := make(chan error, 1)
	go func() {
		if cfg.Http.TLS.CertFile != "" && cfg.Http.TLS.KeyFile != "" {
			errCh <- app.ListenTLS(addr, cfg.Http.TLS.CertFile, cfg.Http.TLS.KeyFile)
			return
		}
		errCh <- app.Listen(addr)
	}()
	log.Infow("authcenter started", "addr", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Infow("shutting down", "signal", sig.String())
	}

	shutdownTimeout := time.Duration(cfg.Http.ShutdownTimeout) * time.Second
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Errorw("graceful shutdown failed", "error", err)
	}
	if err := rdb.Close(); err != nil {
		log.Warnw("failed to close redis client", "error", err)
	}
	if sqlDB, derr := db.DB(); derr == nil {
		_ = sqlDB.Close()
	}
	return nil
}
