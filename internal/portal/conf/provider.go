package conf

import (
	"github.com/google/wire"

	"github.com/go-aperture/aperture/pkg/cache"
	"github.com/go-aperture/aperture/pkg/database"
	"github.com/go-aperture/aperture/pkg/http"
	"github.com/go-aperture/aperture/pkg/log"
	"github.com/go-aperture/aperture/pkg/storage"
)

// ProviderSet 提供配置相关的依赖
var ProviderSet = wire.NewSet(
	ProvideConf,
	ProvideLogConf,
	ProvideHttpConf,
	ProvideDatabaseConf,
	ProvideRedisConf,
	ProvideStorageConf,
)

// ProvideConf 提供完整配置实例
func ProvideConf(configFile string) AppConfig {
	return NewConf(configFile)
}

// ProvideLogConf 提供日志配置
func ProvideLogConf(appConf AppConfig) *log.Conf {
	logConf := appConf.Log
	return &logConf
}

// ProvideHttpConf 提供 HTTP 配置
func ProvideHttpConf(appConf AppConfig) *http.Http {
	httpConf := appConf.Http
	return &httpConf
}

// ProvideDatabaseConf 提供数据库配置
func ProvideDatabaseConf(appConf AppConfig) database.Database {
	return appConf.Database
}

// ProvideRedisConf 提供 Redis 配置
func ProvideRedisConf(appConf AppConfig) cache.Redis {
	return appConf.Redis
}

// ProvideStorageConf 提供存储配置
func ProvideStorageConf(appConf AppConfig) *storage.Storage {
	storageConf := appConf.Storage
	return &storageConf
}
