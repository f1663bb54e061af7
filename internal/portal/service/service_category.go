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
	"errors"

	"gorm.io/gorm"

	"github.com/go-aperture/aperture/internal/portal/model"
	"github.com/go-aperture/aperture/internal/portal/repo"
	"github.com/go-aperture/aperture/pkg/id"
	"github.com/go-aperture/aperture/pkg/log"
)

// CategoryService 图集分类服务
type CategoryService struct {
	categoryRepo repo.ICategoryRepository
	navRepo      repo.INavigationRepository
}

func NewCategoryService(categoryRepo repo.ICategoryRepository, navRepo repo.INavigationRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		navRepo:      navRepo,
	}
}

// CreateCategory 创建分类
func (s *CategoryService) CreateCategory(req *model.CreateCategoryReq) (*model.Category, error) {
	if req.Name == "" || req.Slug == "" {
		return nil, invalidf("name and slug are required")
	}
	if err := s.checkSlugFree(req.Slug, ""); err != nil {
		return nil, err
	}

	isActive := model.CategoryActive
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	category := &model.Category{
		CategoryId:  id.GetUUIDWithoutDashes(),
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Order:       req.Order,
		IsActive:    isActive,
	}
	if err := s.categoryRepo.CreateCategory(category); err != nil {
		log.Errorw("failed to create category", "error", err)
		return nil, err
	}
	return category, nil
}

// UpdateCategory 部分更新分类
func (s *CategoryService) UpdateCategory(categoryId string, req *model.UpdateCategoryReq) (*model.Category, error) {
	category, err := s.categoryRepo.GetCategory(categoryId)
	if err != nil {
		return nil, wrapNotFound(err, "category %s", categoryId)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		if *req.Name == "" {
			return nil, invalidf("name cannot be empty")
		}
		updates["name"] = *req.Name
	}
	if req.Slug != nil {
		if *req.Slug == "" {
			return nil, invalidf("slug cannot be empty")
		}
		if *req.Slug != category.Slug {
			if err := s.checkSlugFree(*req.Slug, categoryId); err != nil {
				return nil, err
			}
		}
		updates["slug"] = *req.Slug
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Order != nil {
		updates["order"] = *req.Order
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.categoryRepo.UpdateCategory(categoryId, updates); err != nil {
			log.Errorw("failed to update category", "categoryId", categoryId, "error", err)
			return nil, err
		}
	}
	return s.categoryRepo.GetCategory(categoryId)
}

// DeleteCategory 删除分类
// 默认非空分类拒绝删除；force 时仅解除图片关联，图片记录保留
// 被导航引用的分类始终拒绝删除
func (s *CategoryService) DeleteCategory(categoryId string, force bool) error {
	if _, err := s.categoryRepo.GetCategory(categoryId); err != nil {
		return wrapNotFound(err, "category %s", categoryId)
	}

	navCount, err := s.navRepo.CountByCategoryId(categoryId)
	if err != nil {
		return err
	}
	if navCount > 0 {
		return invalidf("category %s is referenced by %d navigation items", categoryId, navCount)
	}

	imageCount, err := s.categoryRepo.CountImages(categoryId)
	if err != nil {
		return err
	}
	if imageCount > 0 {
		if !force {
			return invalidf("category %s still contains %d images, pass force=true to detach them", categoryId, imageCount)
		}
		if err := s.categoryRepo.DeleteCategoryAssociations(categoryId); err != nil {
			log.Errorw("failed to detach category images", "categoryId", categoryId, "error", err)
			return err
		}
	}

	return s.categoryRepo.DeleteCategory(categoryId)
}

// GetCategory 获取单个分类
func (s *CategoryService) GetCategory(categoryId string) (*model.Category, error) {
	category, err := s.categoryRepo.GetCategory(categoryId)
	if err != nil {
		return nil, wrapNotFound(err, "category %s", categoryId)
	}
	return category, nil
}

// GetCategoryBySlug 根据 slug 获取启用的分类（公开端）
func (s *CategoryService) GetCategoryBySlug(slug string) (*model.Category, error) {
	category, err := s.categoryRepo.GetCategoryBySlug(slug)
	if err != nil {
		return nil, wrapNotFound(err, "category %s", slug)
	}
	if category.IsActive != model.CategoryActive {
		return nil, notFoundf("category %s", slug)
	}
	return category, nil
}

// ListCategories 获取分类列表，管理端含停用分类
func (s *CategoryService) ListCategories(includeInactive bool) ([]model.Category, error) {
	if includeInactive {
		return s.categoryRepo.GetAllCategories()
	}
	return s.categoryRepo.GetActiveCategories()
}

func (s *CategoryService) checkSlugFree(slug, selfCategoryId string) error {
	existing, err := s.categoryRepo.GetCategoryBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.CategoryId != selfCategoryId {
		return invalidf("slug %s is already in use", slug)
	}
	return nil
}
