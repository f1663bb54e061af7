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

// NavigationItem 导航菜单表，两级树结构
type NavigationItem struct {
	BaseModel
	NavId       string `gorm:"column:nav_id;not null;uniqueIndex" json:"navId"`   // 导航唯一标识
	Title       string `gorm:"column:title;not null" json:"title"`                // 导航名称
	Slug        string `gorm:"column:slug;not null;uniqueIndex" json:"slug"`      // 导航别名（URL 片段）
	Type        string `gorm:"column:type;not null" json:"type"`                  // 导航类型：LINK/CATEGORY/PARENT/EXTERNAL
	Order       int    `gorm:"column:order;default:0" json:"order"`               // 排序（数值越小越靠前）
	IsVisible   int    `gorm:"column:is_visible;default:1" json:"isVisible"`      // 是否可见：0-隐藏，1-显示
	ParentId    string `gorm:"column:parent_id;index" json:"parentId"`            // 父导航ID（为空表示顶级导航）
	CategoryId  string `gorm:"column:category_id;index" json:"categoryId"`        // 绑定的分类ID（CATEGORY 类型）
	ExternalUrl string `gorm:"column:external_url" json:"externalUrl"`            // 外部链接（EXTERNAL 类型）
	Description string `gorm:"column:description" json:"description"`             // 导航描述
}

func (NavigationItem) TableName() string {
	return "t_navigation"
}

// 导航类型常量
const (
	NavTypeLink     = "LINK"
	NavTypeCategory = "CATEGORY"
	NavTypeParent   = "PARENT"
	NavTypeExternal = "EXTERNAL"
)

// 导航可见性常量
const (
	NavVisible   = 1 // 可见
	NavInvisible = 0 // 不可见
)

// IsValidNavType 校验导航类型
func IsValidNavType(t string) bool {
	switch t {
	case NavTypeLink, NavTypeCategory, NavTypeParent, NavTypeExternal:
		return true
	}
	return false
}

// CreateNavigationReq 创建导航请求
type CreateNavigationReq struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Type        string `json:"type"`
	Order       int    `json:"order"`
	IsVisible   *int   `json:"isVisible"`
	ParentId    string `json:"parentId"`
	CategoryId  string `json:"categoryId"`
	ExternalUrl string `json:"externalUrl"`
	Description string `json:"description"`
}

// UpdateNavigationReq 更新导航请求
type UpdateNavigationReq struct {
	Title       *string `json:"title"`
	Slug        *string `json:"slug"`
	Order       *int    `json:"order"`
	IsVisible   *int    `json:"isVisible"`
	CategoryId  *string `json:"categoryId"`
	ExternalUrl *string `json:"externalUrl"`
	Description *string `json:"description"`
}

// NavigationTree 对外返回的导航树节点
type NavigationTree struct {
	NavigationItem
	Children []NavigationTree `json:"children,omitempty"`
}
