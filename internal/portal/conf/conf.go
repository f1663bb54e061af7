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

package conf

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/go-aperture/aperture/pkg/cache"
	"github.com/go-aperture/aperture/pkg/database"
	"github.com/go-aperture/aperture/pkg/http"
	"github.com/go-aperture/aperture/pkg/log"
	"github.com/go-aperture/aperture/pkg/storage"
)

type AppConfig struct {
	Log       log.Conf
	Http      http.Http
	Database  database.Database
	Redis     cache.Redis
	Storage   storage.Storage
	Upload    Upload
	Reconcile Reconcile
}

// Upload 上传管道配置
type Upload struct {
	MaxSize          int64    `mapstructure:"maxSize"` // 单文件大小上限（字节）
	AllowedTypes     []string `mapstructure:"allowedTypes"`
	BaseURL          string   `mapstructure:"baseUrl"` // 对外访问地址前缀
	ThumbnailWidth   int      `mapstructure:"thumbnailWidth"`
	ThumbnailHeight  int      `mapstructure:"thumbnailHeight"`
	ThumbnailQuality int      `mapstructure:"thumbnailQuality"`
	FetchTimeout     int      `mapstructure:"fetchTimeout"` // 远程导入超时（秒）
}

// Reconcile 存储对账配置
type Reconcile struct {
	Enabled  bool   `mapstructure:"enabled"`
	CronSpec string `mapstructure:"cronSpec"` // 定时扫描表达式
	AutoTidy bool   `mapstructure:"autoTidy"` // 定时扫描时是否直接删除孤儿文件
}

var (
	cfg  AppConfig
	once sync.Once
)

func NewConf(confDir string) AppConfig {
	once.Do(func() {
		var err error
		cfg, err = LoadConfigFile(confDir)
		if err != nil {
			panic(fmt.Sprintf("load conf file error: %s", err))
		}
	})
	return cfg
}

// LoadConfigFile load conf file
func LoadConfigFile(confDir string) (AppConfig, error) {

	config := viper.New()
	config.SetConfigFile(confDir)
	config.AddConfigPath("./conf.d")
	config.SetConfigName("config")
	config.SetConfigType("toml")
	if err := config.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("failed to read configuration file: %v", err)
	}

	config.WatchConfig()
	config.OnConfigChange(func(e fsnotify.Event) {
		log.Infof("configuration changed, reloading: %s", e.Name)
		if err := config.Unmarshal(&cfg); err != nil {
			log.Errorf("failed to unmarshal configuration file: %v", err)
		}
	})
	if err := config.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal configuration file: %v", err)
	}

	return cfg, nil
}
