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
	"github.com/go-aperture/aperture/internal/portal/model"
	"github.com/go-aperture/aperture/pkg/database"
)

type INavigationRepository interface {
	GetNavigation(navId string) (*model.NavigationItem, error)
	GetNavigationBySlug(slug string) (*model.NavigationItem, error)
	GetAllNavigations() ([]model.NavigationItem, error)
	GetVisibleNavigations() ([]model.NavigationItem, error)
	GetNavigationsByParentId(parentId string) ([]model.NavigationItem, error)
	CountChildren(navId string) (int64, error)
	CountByCategoryId(categoryId string) (int64, error)
	CreateNavigation(nav *model.NavigationItem) error
	UpdateNavigation(navId string, updates map[string]interface{}) error
	DeleteNavigation(navId string) error
}

type NavigationRepo struct {
	database.IDatabase
}

func NewNavigationRepo(db database.IDatabase) INavigationRepository {
	return &NavigationRepo{
		IDatabase: db,
	}
}

// GetNavigation 获取导航项
func (r *NavigationRepo) GetNavigation(navId string) (*model.NavigationItem, error) {
	var nav model.NavigationItem
	err := r.Database().Where("nav_id = ?", navId).First(&nav).Error
	if err != nil {
		return nil, err
	}
	return &nav, nil
}

// GetNavigationBySlug 根据 slug 获取导航项
func (r *NavigationRepo) GetNavigationBySlug(slug string) (*model.NavigationItem, error) {
	var nav model.NavigationItem
	err := r.Database().Where("slug = ?", slug).First(&nav).Error
	if err != nil {
		return nil, err
	}
	return &nav, nil
}

// GetAllNavigations 获取所有导航项（管理端）
func (r *NavigationRepo) GetAllNavigations() ([]model.NavigationItem, error) {
	var navs []model.NavigationItem
	err := r.Database().Order("`order` ASC").Find(&navs).Error
	return navs, err
}

// GetVisibleNavigations 获取所有可见导航项（公开端）
func (r *NavigationRepo) GetVisibleNavigations() ([]model.NavigationItem, error) {
	var navs []model.NavigationItem
	err := r.Database().Where("is_visible = ?", model.NavVisible).
		Order("`order` ASC").Find(&navs).Error
	return navs, err
}

// GetNavigationsByParentId 根据父导航ID获取子导航
func (r *NavigationRepo) GetNavigationsByParentId(parentId string) ([]model.NavigationItem, error) {
	var navs []model.NavigationItem
	err := r.Database().Where("parent_id = ?", parentId).
		Order("`order` ASC").Find(&navs).Error
	return navs, err
}

// CountChildren 统计子导航数量
func (r *NavigationRepo) CountChildren(navId string) (int64, error) {
	var count int64
	err := r.Database().Model(&model.NavigationItem{}).
		Where("parent_id = ?", navId).Count(&count).Error
	return count, err
}

// CountByCategoryId 统计引用某分类的导航数量
func (r *NavigationRepo) CountByCategoryId(categoryId string) (int64, error) {
	var count int64
	err := r.Database().Model(&model.NavigationItem{}).
		Where("category_id = ?", categoryId).Count(&count).Error
	return count, err
}

// CreateNavigation 创建导航项
func (r *NavigationRepo) CreateNavigation(nav *model.NavigationItem) error {
	return r.Database().Create(nav).Error
}

// UpdateNavigation 更新导航项
func (r *NavigationRepo) UpdateNavigation(navId string, updates map[string]interface{}) error {
	return r.Database().Model(&model.NavigationItem{}).
		Where("nav_id = ?", navId).Updates(updates).Error
}

// DeleteNavigation 删除导航项
func (r *NavigationRepo) DeleteNavigation(navId string) error {
	return r.Database().Where("nav_id = ?", navId).Delete(&model.NavigationItem{}).Error
}
