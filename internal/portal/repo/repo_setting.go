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

package repo

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/go-aperture/aperture/internal/portal/model"
	"github.com/go-aperture/aperture/pkg/database"
)

type ISettingRepository interface {
	GetSetting(key string) (*model.Setting, error)
	GetSettingsByPrefix(prefix string) ([]model.Setting, error)
	GetAllSettings() ([]model.Setting, error)
	UpsertSetting(key, value string) error
	UpsertSettings(settings map[string]string) error
	DeleteSetting(key string) error
}

type SettingRepo struct {
	database.IDatabase
}

func NewSettingRepo(db database.IDatabase) ISettingRepository {
	return &SettingRepo{
		IDatabase: db,
	}
}

// GetSetting 获取单个配置
func (r *SettingRepo) GetSetting(key string) (*model.Setting, error) {
	var setting model.Setting
	err := r.Database().Where("`key` = ?", key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// GetSettingsByPrefix 按前缀获取配置
func (r *SettingRepo) GetSettingsByPrefix(prefix string) ([]model.Setting, error) {
	var settings []model.Setting
	err := r.Database().Where("`key` LIKE ?", prefix+"%").Find(&settings).Error
	return settings, err
}

// GetAllSettings 获取全部配置
func (r *SettingRepo) GetAllSettings() ([]model.Setting, error) {
	var settings []model.Setting
	err := r.Database().Find(&settings).Error
	return settings, err
}

// UpsertSetting 写入配置，已存在则更新
func (r *SettingRepo) UpsertSetting(key, value string) error {
	setting := model.Setting{Key: key, Value: value}
	return r.Database().Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}

// UpsertSettings 批量写入配置，单事务执行，任一键失败整体回滚
func (r *SettingRepo) UpsertSettings(settings map[string]string) error {
	return r.Database().Transaction(func(tx *gorm.DB) error {
		for key, value := range settings {
			setting := model.Setting{Key: key, Value: value}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&setting).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteSetting 删除配置
func (r *SettingRepo) DeleteSetting(key string) error {
	return r.Database().Where("`key` = ?", key).Delete(&model.Setting{}).Error
}
