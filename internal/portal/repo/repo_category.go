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

type ICategoryRepository interface {
	GetCategory(categoryId string) (*model.Category, error)
	GetCategoryBySlug(slug string) (*model.Category, error)
	GetAllCategories() ([]model.Category, error)
	GetActiveCategories() ([]model.Category, error)
	CreateCategory(category *model.Category) error
	UpdateCategory(categoryId string, updates map[string]interface{}) error
	DeleteCategory(categoryId string) error
	CountImages(categoryId string) (int64, error)
	DeleteCategoryAssociations(categoryId string) error
}

type CategoryRepo struct {
	database.IDatabase
}

func NewCategoryRepo(db database.IDatabase) ICategoryRepository {
	return &CategoryRepo{
		IDatabase: db,
	}
}

// GetCategory 获取分类
func (r *CategoryRepo) GetCategory(categoryId string) (*model.Category, error) {
	var category model.Category
	err := r.Database().Where("category_id = ?", categoryId).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetCategoryBySlug 根据 slug 获取分类
func (r *CategoryRepo) GetCategoryBySlug(slug string) (*model.Category, error) {
	var category model.Category
	err := r.Database().Where("slug = ?", slug).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetAllCategories 获取所有分类（管理端）
func (r *CategoryRepo) GetAllCategories() ([]model.Category, error) {
	var categories []model.Category
	err := r.Database().Order("`order` ASC").Find(&categories).Error
	return categories, err
}

// GetActiveCategories 获取所有启用的分类（公开端）
func (r *CategoryRepo) GetActiveCategories() ([]model.Category, error) {
	var categories []model.Category
	err := r.Database().Where("is_active = ?", model.CategoryActive).
		Order("`order` ASC").Find(&categories).Error
	return categories, err
}

// CreateCategory 创建分类
func (r *CategoryRepo) CreateCategory(category *model.Category) error {
	return r.Database().Create(category).Error
}

// UpdateCategory 更新分类
func (r *CategoryRepo) UpdateCategory(categoryId string, updates map[string]interface{}) error {
	return r.Database().Model(&model.Category{}).
		Where("category_id = ?", categoryId).Updates(updates).Error
}

// DeleteCategory 删除分类
func (r *CategoryRepo) DeleteCategory(categoryId string) error {
	return r.Database().Where("category_id = ?", categoryId).Delete(&model.Category{}).Error
}

// CountImages 统计分类下关联的图片数量
func (r *CategoryRepo) CountImages(categoryId string) (int64, error) {
	var count int64
	err := r.Database().Model(&model.CategoryImage{}).
		Where("category_id = ?", categoryId).Count(&count).Error
	return count, err
}

// DeleteCategoryAssociations 删除分类下的所有图片关联，图片本身保留
func (r *CategoryRepo) DeleteCategoryAssociations(categoryId string) error {
	return r.Database().Where("category_id = ?", categoryId).Delete(&model.CategoryImage{}).Error
}
