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

// Category 图集分类表
type Category struct {
	BaseModel
	CategoryId  string `gorm:"column:category_id;not null;uniqueIndex" json:"categoryId"` // 分类唯一标识
	Name        string `gorm:"column:name;not null" json:"name"`                          // 分类名称
	Slug        string `gorm:"column:slug;not null;uniqueIndex" json:"slug"`              // 分类别名（URL 片段）
	Description string `gorm:"column:description" json:"description"`                     // 分类描述
	Order       int    `gorm:"column:order;default:0" json:"order"`                       // 排序（数值越小越靠前）
	IsActive    int    `gorm:"column:is_active;default:1" json:"isActive"`                // 是否启用：0-停用，1-启用
}

func (Category) TableName() string {
	return "t_category"
}

// 分类启用状态常量
const (
	CategoryActive   = 1 // 启用
	CategoryInactive = 0 // 停用
)

// CreateCategoryReq 创建分类请求
type CreateCategoryReq struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	IsActive    *int   `json:"isActive"`
}

// UpdateCategoryReq 更新分类请求
type UpdateCategoryReq struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
	IsActive    *int    `json:"isActive"`
}
