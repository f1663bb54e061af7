//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/go-aperture/aperture/internal/bootstrap"
	"github.com/go-aperture/aperture/internal/portal/conf"
	"github.com/go-aperture/aperture/internal/portal/repo"
	"github.com/go-aperture/aperture/internal/portal/router"
	"github.com/go-aperture/aperture/internal/portal/service"
	"github.com/go-aperture/aperture/pkg/cache"
	"github.com/go-aperture/aperture/pkg/database"
	"github.com/go-aperture/aperture/pkg/log"
	"github.com/go-aperture/aperture/pkg/storage"
)

func initApp(configPath string) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		// 配置层
		conf.ProviderSet,
		// 基础设施
		log.ProviderSet,
		database.ProviderSet,
		cache.ProviderSet,
		storage.ProviderSet,
		bootstrap.ProvideContext,
		// 仓储层
		repo.ProviderSet,
		// 业务层
		service.ProviderSet,
		// 路由层
		router.ProviderSet,
		// 应用层
		bootstrap.NewApp,
	))
}
