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

package service

import (
	"github.com/go-aperture/aperture/internal/portal/conf"
	"github.com/go-aperture/aperture/internal/portal/repo"
	"github.com/go-aperture/aperture/pkg/cache"
	"github.com/go-aperture/aperture/pkg/ctx"
	"github.com/go-aperture/aperture/pkg/storage"
)

// Services 统一管理所有 service
type Services struct {
	Auth       *AuthService
	Navigation *NavigationService
	Category   *CategoryService
	Image      *ImageService
	Upload     *UploadService
	Reconcile  *ReconcileService
	Setting    *SettingService
}

// NewServices 初始化所有 service
func NewServices(
	ctx *ctx.Context,
	appConf conf.AppConfig,
	repos *repo.Repositories,
	sessions cache.ICache,
	provider storage.StorageProvider,
) *Services {
	return &Services{
		Auth:       NewAuthService(&appConf.Http.Auth, sessions),
		Navigation: NewNavigationService(repos.Navigation, repos.Category),
		Category:   NewCategoryService(repos.Category, repos.Navigation),
		Image:      NewImageService(ctx, repos.Image, repos.Category, provider),
		Upload:     NewUploadService(ctx, provider, appConf.Upload),
		Reconcile:  NewReconcileService(ctx, repos.Image, provider),
		Setting:    NewSettingService(repos.Setting),
	}
}
