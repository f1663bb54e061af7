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
	"github.com/go-aperture/aperture/internal/portal/model"
	"github.com/go-aperture/aperture/internal/portal/repo"
	"github.com/go-aperture/aperture/pkg/log"
)

// SettingService 站点配置服务
type SettingService struct {
	settingRepo repo.ISettingRepository
}

func NewSettingService(settingRepo repo.ISettingRepository) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
	}
}

// GetSettings 按前缀获取配置，前缀为空返回全部
func (s *SettingService) GetSettings(prefix string) (map[string]string, error) {
	var (
		settings []model.Setting
		err      error
	)
	if prefix == "" {
		settings, err = s.settingRepo.GetAllSettings()
	} else {
		if !model.IsValidSettingKey(prefix + "x") {
			return nil, invalidf("unknown setting prefix: %s", prefix)
		}
		settings, err = s.settingRepo.GetSettingsByPrefix(prefix)
	}
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(settings))
	for _, setting := range settings {
		result[setting.Key] = setting.Value
	}
	return result, nil
}

// UpsertSettings 批量写入配置，所有键先校验，写入走单事务
func (s *SettingService) UpsertSettings(req *model.UpsertSettingReq) error {
	if len(req.Settings) == 0 {
		return invalidf("settings cannot be empty")
	}
	for key := range req.Settings {
		if !model.IsValidSettingKey(key) {
			return invalidf("setting key %s is not allowed", key)
		}
	}
	if err := s.settingRepo.UpsertSettings(req.Settings); err != nil {
		log.Errorw("failed to upsert settings batch", "error", err)
		return err
	}
	return nil
}

// DeleteSetting 删除配置键
func (s *SettingService) DeleteSetting(key string) error {
	if !model.IsValidSettingKey(key) {
		return invalidf("setting key %s is not allowed", key)
	}
	if _, err := s.settingRepo.GetSetting(key); err != nil {
		return wrapNotFound(err, "setting %s", key)
	}
	return s.settingRepo.DeleteSetting(key)
}
