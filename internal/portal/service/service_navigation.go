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

// NavigationService 导航菜单服务
type NavigationService struct {
	navRepo      repo.INavigationRepository
	categoryRepo repo.ICategoryRepository
}

func NewNavigationService(navRepo repo.INavigationRepository, categoryRepo repo.ICategoryRepository) *NavigationService {
	return &NavigationService{
		navRepo:      navRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateNavigation 创建导航项，按类型校验引用
func (s *NavigationService) CreateNavigation(req *model.CreateNavigationReq) (*model.NavigationItem, error) {
	if req.Title == "" || req.Slug == "" {
		return nil, invalidf("title and slug are required")
	}
	if !model.IsValidNavType(req.Type) {
		return nil, invalidf("unknown navigation type: %s", req.Type)
	}

	if err := s.checkSlugFree(req.Slug, ""); err != nil {
		return nil, err
	}
	if err := s.validateTypeRefs(req.Type, req.CategoryId, req.ExternalUrl); err != nil {
		return nil, err
	}
	if err := s.validateParent(req.ParentId, req.Type); err != nil {
		return nil, err
	}

	isVisible := model.NavVisible
	if req.IsVisible != nil {
		isVisible = *req.IsVisible
	}

	nav := &model.NavigationItem{
		NavId:       id.GetUUIDWithoutDashes(),
		Title:       req.Title,
		Slug:        req.Slug,
		Type:        req.Type,
		Order:       req.Order,
		IsVisible:   isVisible,
		ParentId:    req.ParentId,
		CategoryId:  req.CategoryId,
		ExternalUrl: req.ExternalUrl,
		Description: req.Description,
	}
	if err := s.navRepo.CreateNavigation(nav); err != nil {
		log.Errorw("failed to create navigation", "error", err)
		return nil, err
	}
	return nav, nil
}

// UpdateNavigation 部分更新导航项，类型不可修改
func (s *NavigationService) UpdateNavigation(navId string, req *model.UpdateNavigationReq) (*model.NavigationItem, error) {
	nav, err := s.navRepo.GetNavigation(navId)
	if err != nil {
		return nil, wrapNotFound(err, "navigation %s", navId)
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		if *req.Title == "" {
			return nil, invalidf("title cannot be empty")
		}
		updates["title"] = *req.Title
	}
	if req.Slug != nil {
		if *req.Slug == "" {
			return nil, invalidf("slug cannot be empty")
		}
		if *req.Slug != nav.Slug {
			if err := s.checkSlugFree(*req.Slug, navId); err != nil {
				return nil, err
			}
		}
		updates["slug"] = *req.Slug
	}
	if req.Order != nil {
		updates["order"] = *req.Order
	}
	if req.IsVisible != nil {
		updates["is_visible"] = *req.IsVisible
	}
	if req.CategoryId != nil {
		if nav.Type != model.NavTypeCategory {
			return nil, invalidf("categoryId only applies to %s navigations", model.NavTypeCategory)
		}
		if err := s.validateTypeRefs(nav.Type, *req.CategoryId, nav.ExternalUrl); err != nil {
			return nil, err
		}
		updates["category_id"] = *req.CategoryId
	}
	if req.ExternalUrl != nil {
		if nav.Type != model.NavTypeExternal {
			return nil, invalidf("externalUrl only applies to %s navigations", model.NavTypeExternal)
		}
		if err := s.validateTypeRefs(nav.Type, nav.CategoryId, *req.ExternalUrl); err != nil {
			return nil, err
		}
		updates["external_url"] = *req.ExternalUrl
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) > 0 {
		if err := s.navRepo.UpdateNavigation(navId, updates); err != nil {
			log.Errorw("failed to update navigation", "navId", navId, "error", err)
			return nil, err
		}
	}
	return s.navRepo.GetNavigation(navId)
}

// DeleteNavigation 删除导航项，存在子导航时拒绝
func (s *NavigationService) DeleteNavigation(navId string) error {
	if _, err := s.navRepo.GetNavigation(navId); err != nil {
		return wrapNotFound(err, "navigation %s", navId)
	}
	count, err := s.navRepo.CountChildren(navId)
	if err != nil {
		return err
	}
	if count > 0 {
		return invalidf("navigation %s still has %d children", navId, count)
	}
	return s.navRepo.DeleteNavigation(navId)
}

// GetNavigation 获取单个导航项
func (s *NavigationService) GetNavigation(navId string) (*model.NavigationItem, error) {
	nav, err := s.navRepo.GetNavigation(navId)
	if err != nil {
		return nil, wrapNotFound(err, "navigation %s", navId)
	}
	return nav, nil
}

// ListNavigations 获取全部导航项（管理端平铺列表）
func (s *NavigationService) ListNavigations() ([]model.NavigationItem, error) {
	return s.navRepo.GetAllNavigations()
}

// GetNavigationTree 构建公开导航树，只含可见项
// 父项不可见时整个子树都不出现
func (s *NavigationService) GetNavigationTree() ([]model.NavigationTree, error) {
	navs, err := s.navRepo.GetVisibleNavigations()
	if err != nil {
		return nil, err
	}
	navs, err = s.dropDanglingCategoryRefs(navs)
	if err != nil {
		return nil, err
	}
	return BuildNavigationTree(navs), nil
}

// dropDanglingCategoryRefs 过滤指向已删除或已停用分类的 CATEGORY 导航项
func (s *NavigationService) dropDanglingCategoryRefs(navs []model.NavigationItem) ([]model.NavigationItem, error) {
	hasCategoryNav := false
	for _, nav := range navs {
		if nav.Type == model.NavTypeCategory {
			hasCategoryNav = true
			break
		}
	}
	if !hasCategoryNav {
		return navs, nil
	}

	active, err := s.categoryRepo.GetActiveCategories()
	if err != nil {
		return nil, err
	}
	activeSet := make(map[string]struct{}, len(active))
	for _, category := range active {
		activeSet[category.CategoryId] = struct{}{}
	}

	filtered := make([]model.NavigationItem, 0, len(navs))
	for _, nav := range navs {
		if nav.Type == model.NavTypeCategory {
			if _, ok := activeSet[nav.CategoryId]; !ok {
				log.Warnw("dropping navigation with dangling category ref",
					"navId", nav.NavId, "categoryId", nav.CategoryId)
				continue
			}
		}
		filtered = append(filtered, nav)
	}
	return filtered, nil
}

// BuildNavigationTree 将平铺导航列表组装为两级树
func BuildNavigationTree(navs []model.NavigationItem) []model.NavigationTree {
	nodeMap := make(map[string]*model.NavigationTree, len(navs))
	for _, nav := range navs {
		nodeMap[nav.NavId] = &model.NavigationTree{
			NavigationItem: nav,
			Children:       []model.NavigationTree{},
		}
	}

	roots := make([]model.NavigationTree, 0, len(navs))
	for _, nav := range navs {
		node := nodeMap[nav.NavId]
		if nav.ParentId == "" {
			roots = append(roots, *node)
			continue
		}
		if parent, ok := nodeMap[nav.ParentId]; ok {
			parent.Children = append(parent.Children, *node)
		}
		// 父项不可见或不存在时，子项被一并隐藏
	}

	// 子节点在父节点之后追加，重建根节点切片保证 children 完整
	result := make([]model.NavigationTree, 0, len(roots))
	for _, root := range roots {
		result = append(result, *nodeMap[root.NavId])
	}
	return result
}

func (s *NavigationService) checkSlugFree(slug, selfNavId string) error {
	existing, err := s.navRepo.GetNavigationBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.NavId != selfNavId {
		return invalidf("slug %s is already in use", slug)
	}
	return nil
}

// validateTypeRefs 校验类型所需的引用字段，无关字段一律拒绝
func (s *NavigationService) validateTypeRefs(navType, categoryId, externalUrl string) error {
	switch navType {
	case model.NavTypeCategory:
		if categoryId == "" {
			return invalidf("%s navigation requires categoryId", model.NavTypeCategory)
		}
		if externalUrl != "" {
			return invalidf("%s navigation cannot carry externalUrl", model.NavTypeCategory)
		}
		if _, err := s.categoryRepo.GetCategory(categoryId); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invalidf("category %s does not exist", categoryId)
			}
			return err
		}
	case model.NavTypeExternal:
		if externalUrl == "" {
			return invalidf("%s navigation requires externalUrl", model.NavTypeExternal)
		}
		if categoryId != "" {
			return invalidf("%s navigation cannot carry categoryId", model.NavTypeExternal)
		}
	default:
		if categoryId != "" || externalUrl != "" {
			return invalidf("%s navigation cannot carry categoryId or externalUrl", navType)
		}
	}
	return nil
}

// validateParent 校验父导航必须存在且为 PARENT 类型，且不允许三级嵌套
func (s *NavigationService) validateParent(parentId, childType string) error {
	if parentId == "" {
		return nil
	}
	if childType == model.NavTypeParent {
		return invalidf("%s navigation cannot be nested", model.NavTypeParent)
	}
	parent, err := s.navRepo.GetNavigation(parentId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalidf("parent navigation %s does not exist", parentId)
		}
		return err
	}
	if parent.Type != model.NavTypeParent {
		return invalidf("parent navigation must be of type %s", model.NavTypeParent)
	}
	return nil
}
