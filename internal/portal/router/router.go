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

package router

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/go-aperture/aperture/internal/portal/constant"
	"github.com/go-aperture/aperture/internal/portal/service"
	"github.com/go-aperture/aperture/pkg/cache"
	"github.com/go-aperture/aperture/pkg/ctx"
	httpx "github.com/go-aperture/aperture/pkg/http"
	"github.com/go-aperture/aperture/pkg/http/middleware"
	"github.com/go-aperture/aperture/pkg/id"
	"github.com/go-aperture/aperture/pkg/metrics"
	"github.com/go-aperture/aperture/pkg/runner"
	"github.com/go-aperture/aperture/pkg/storage"
	"github.com/go-aperture/aperture/pkg/version"
)

type Router struct {
	Http     *httpx.Http
	Ctx      *ctx.Context
	Services *service.Services
	Sessions cache.ICache
	Provider storage.StorageProvider
}

func NewRouter(
	httpConf *httpx.Http,
	ctx *ctx.Context,
	services *service.Services,
	sessions cache.ICache,
	provider storage.StorageProvider,
) *Router {
	return &Router{
		Http:     httpConf,
		Ctx:      ctx,
		Services: services,
		Sessions: sessions,
		Provider: provider,
	}
}

func (rt *Router) Router() *fiber.App {
	bodyLimit := rt.Http.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = 25 * 1024 * 1024 // 上传接口需要放大默认请求体限制
	}

	app := fiber.New(fiber.Config{
		AppName:      "Aperture",
		ReadTimeout:  time.Duration(rt.Http.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(rt.Http.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(rt.Http.IdleTimeout) * time.Second,
		BodyLimit:    bodyLimit,
	})

	app.Use(requestid.New(requestid.Config{Generator: id.GetUlid}))

	if rt.Http.AccessLog {
		app.Use(middleware.AccessLogMiddleware(rt.Http))
	}

	app.Use(
		middleware.ExceptionMiddleware,
		middleware.CorsMiddleware(),
		middleware.UnifiedResponseMiddleware(),
	)

	// 健康检查
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"hostname": runner.Hostname,
			"uptime":   runner.Uptime().String(),
		})
	})

	// 版本信息
	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	if rt.Http.PProf {
		app.Use(pprof.New(pprof.Config{Prefix: "/debug"}))
	}
	if rt.Http.ExposeMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	}

	contextPath := rt.Http.ContextPath
	if contextPath == "" {
		contextPath = "/api/v1"
	}

	public := app.Group(contextPath)
	rt.publicRouter(public)
	rt.authRouter(public)

	keyPrefix := rt.Http.Auth.RedisKeyPrefix
	if keyPrefix == "" {
		keyPrefix = constant.SessionKeyPrefix
	}
	auth := middleware.AuthorizationMiddleware(rt.Http.Auth.SecretKey, keyPrefix, rt.Sessions)
	admin := app.Group(contextPath + "/admin")
	rt.navigationRouter(admin, auth)
	rt.categoryRouter(admin, auth)
	rt.imageRouter(admin, auth)
	rt.uploadRouter(admin, auth)
	rt.reconcileRouter(admin, auth)
	rt.settingRouter(admin, auth)

	// 找不到路径时的处理 - 必须在所有路由注册之后
	app.Use(func(c *fiber.Ctx) error {
		return httpx.WithRepErrMsg(c, httpx.NotFound.Code, "request path not found", c.Path())
	})

	return app
}

// replyErr 将业务错误映射为统一响应码
func replyErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return httpx.WithRepErrMsg(c, httpx.NotFound.Code, err.Error(), c.Path())
	case errors.Is(err, service.ErrInvalid):
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, err.Error(), c.Path())
	case errors.Is(err, service.ErrBadCredentials):
		return httpx.WithRepErrMsg(c, httpx.AuthenticationFailed.Code, err.Error(), c.Path())
	default:
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}
}
