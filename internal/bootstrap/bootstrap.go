// Copyright 2025 Aperture Team
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

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"

	"github.com/go-aperture/aperture/internal/portal/conf"
	"github.com/go-aperture/aperture/internal/portal/router"
	"github.com/go-aperture/aperture/internal/portal/service"
	"github.com/go-aperture/aperture/pkg/ctx"
	"github.com/go-aperture/aperture/pkg/log"
	"github.com/go-aperture/aperture/pkg/runner"
	"github.com/go-aperture/aperture/pkg/safe"
	"github.com/go-aperture/aperture/pkg/storage"
)

const defaultScanSpec = "0 3 * * *" // daily at 03:00

type App struct {
	HttpApp *fiber.App
	Cron    *cron.Cron
	Logger  *log.Logger
	Storage storage.StorageProvider
	AppConf conf.AppConfig
}

// InitAppFunc init app function type
type InitAppFunc func(configPath string) (*App, func(), error)

func NewApp(
	rt *router.Router,
	logger *log.Logger,
	services *service.Services,
	provider storage.StorageProvider,
	appCtx *ctx.Context,
	appConf conf.AppConfig,
) (*App, func(), error) {
	httpApp := rt.Router()

	app := &App{
		HttpApp: httpApp,
		Logger:  logger,
		Storage: provider,
		AppConf: appConf,
	}

	// 定时存储对账
	if appConf.Reconcile.Enabled {
		spec := appConf.Reconcile.CronSpec
		if spec == "" {
			spec = defaultScanSpec
		}
		scheduler := cron.New()
		if _, err := scheduler.AddFunc(spec, func() {
			safe.Do(func() {
				services.Reconcile.Scan(appConf.Reconcile.AutoTidy)
			})
		}); err != nil {
			return nil, nil, fmt.Errorf("register storage scan job: %w", err)
		}
		app.Cron = scheduler
	}

	cleanup := func() {
		if app.Cron != nil {
			cronCtx := app.Cron.Stop()
			<-cronCtx.Done()
		}
	}

	return app, cleanup, nil
}

// ProvideContext 提供全局上下文
func ProvideContext(logger *log.Logger) *ctx.Context {
	return ctx.NewContext(context.Background(), logger.Log)
}

// Bootstrap init app, return App instance and cleanup function
func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), conf.AppConfig, error) {
	app, cleanup, err := initApp(configFile)
	if err != nil {
		return nil, nil, conf.AppConfig{}, err
	}
	return app, cleanup, app.AppConf, nil
}

// Run start app and wait for exit signal, then gracefully shutdown
func Run(app *App, cleanup func()) {
	logger := app.Logger.Log
	appConf := app.AppConf

	logger.Infow("runner info", "hostname", runner.Hostname, "pwd", runner.Pwd)

	if app.Cron != nil {
		app.Cron.Start()
		logger.Infow("storage scan scheduler started", "spec", appConf.Reconcile.CronSpec)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	safe.Go(func() {
		addr := fmt.Sprintf("%s:%d", appConf.Http.Host, appConf.Http.Port)
		logger.Infow("HTTP listener started", "address", addr)
		if err := app.HttpApp.Listen(addr); err != nil {
			logger.Errorw("HTTP listener failed", "address", addr, "error", err)
		}
	})

	sig := <-quit
	logger.Infof("received signal: %v, shutting down gracefully...", sig)

	shutdownTimeout := time.Duration(appConf.Http.ShutdownTimeout) * time.Second
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := app.HttpApp.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Errorf("HTTP server shutdown error: %v", err)
	} else {
		logger.Info("HTTP server shut down gracefully")
	}

	if cleanup != nil {
		cleanup()
	}
	logger.Info("shutdown complete")
}
