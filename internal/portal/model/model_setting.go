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

package model

import "strings"

// Setting 站点配置表，key-value 存储
type Setting struct {
	BaseModel
	Key   string `gorm:"column:key;not null;uniqueIndex" json:"key"` // 配置键
	Value string `gorm:"column:value;type:text" json:"value"`        // 配置值
}

func (Setting) TableName() string {
	return "t_setting"
}

// 配置键前缀，写入时校验
const (
	SettingPrefixSite    = "site_"
	SettingPrefixAbout   = "about_"
	SettingPrefixContact = "contact_"
)

// IsValidSettingKey 校验配置键是否在允许的前缀范围内
func IsValidSettingKey(key string) bool {
	if key == "" {
		return false
	}
	for _, prefix := range []string{SettingPrefixSite, SettingPrefixAbout, SettingPrefixContact} {
		if strings.HasPrefix(key, prefix) && len(key) > len(prefix) {
			return true
		}
	}
	return false
}

// UpsertSettingReq 批量写入配置请求
type UpsertSettingReq struct {
	Settings map[string]string `json:"settings"`
}
