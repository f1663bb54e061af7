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
	"net/url"

	"gorm.io/gorm"

	"github.com/go-aperture/aperture/internal/portal/model"
	"github.com/go-aperture/aperture/internal/portal/repo"
	"github.com/go-aperture/aperture/pkg/ctx"
	"github.com/go-aperture/aperture/pkg/id"
	"github.com/go-aperture/aperture/pkg/log"
	"github.com/go-aperture/aperture/pkg/storage"
)

// ImageService 图片服务，含分类关联与轮播管理
type ImageService struct {
	ctx          *ctx.Context
	imageRepo    repo.IImageRepository
	categoryRepo repo.ICategoryRepository
	provider     storage.StorageProvider
}

func NewImageService(ctx *ctx.Context, imageRepo repo.IImageRepository,
	categoryRepo repo.ICategoryRepository, provider storage.StorageProvider) *ImageService {
	return &ImageService{
		ctx:          ctx,
		imageRepo:    imageRepo,
		categoryRepo: categoryRepo,
		provider:     provider,
	}
}

// CreateImage 创建图片记录
func (s *ImageService) CreateImage(req *model.CreateImageReq) (*model.Image, error) {
	if req.Alt == "" {
		return nil, invalidf("alt text is required")
	}
	if req.OriginalUrl == "" {
		return nil, invalidf("originalUrl is required")
	}
	if _, err := url.ParseRequestURI(req.OriginalUrl); err != nil {
		return nil, invalidf("originalUrl is not a valid URL")
	}

	isVisible := model.ImageVisible
	if req.IsVisible != nil {
		isVisible = *req.IsVisible
	}

	image := &model.Image{
		ImageId:      id.GetUUIDWithoutDashes(),
		Title:        req.Title,
		Alt:          req.Alt,
		Description:  req.Description,
		OriginalUrl:  req.OriginalUrl,
		ThumbnailUrl: req.ThumbnailUrl,
		Width:        req.Width,
		Height:       req.Height,
		Size:         req.Size,
		MimeType:     req.MimeType,
		Order:        req.Order,
		IsVisible:    isVisible,
	}
	if err := s.imageRepo.CreateImage(image); err != nil {
		log.Errorw("failed to create image", "error", err)
		return nil, err
	}
	return image, nil
}

// UpdateImage 部分更新图片元数据
func (s *ImageService) UpdateImage(imageId string, req *model.UpdateImageReq) (*model.Image, error) {
	if _, err := s.imageRepo.GetImage(imageId); err != nil {
		return nil, wrapNotFound(err, "image %s", imageId)
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Alt != nil {
		if *req.Alt == "" {
			return nil, invalidf("alt text cannot be empty")
		}
		updates["alt"] = *req.Alt
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Order != nil {
		updates["order"] = *req.Order
	}
	if req.IsVisible != nil {
		updates["is_visible"] = *req.IsVisible
	}

	if len(updates) > 0 {
		if err := s.imageRepo.UpdateImage(imageId, updates); err != nil {
			log.Errorw("failed to update image", "imageId", imageId, "error", err)
			return nil, err
		}
	}
	return s.imageRepo.GetImage(imageId)
}

// DeleteImage 删除图片记录及其分类关联，存储文件尽力删除
// 存储删除失败只记录日志，残留文件由对账任务回收
func (s *ImageService) DeleteImage(imageId string) error {
	image, err := s.imageRepo.GetImage(imageId)
	if err != nil {
		return wrapNotFound(err, "image %s", imageId)
	}

	if err := s.imageRepo.DeleteImageAssociations(imageId); err != nil {
		return err
	}
	if err := s.imageRepo.DeleteImage(imageId); err != nil {
		return err
	}

	for _, u := range []string{image.OriginalUrl, image.ThumbnailUrl} {
		name := objectNameFromURL(u)
		if name == "" {
			continue
		}
		if err := s.provider.Delete(s.ctx, name); err != nil {
			log.Warnw("failed to delete storage object", "object", name, "error", err)
		}
	}
	return nil
}

// GetImage 获取单个图片
func (s *ImageService) GetImage(imageId string) (*model.Image, error) {
	image, err := s.imageRepo.GetImage(imageId)
	if err != nil {
		return nil, wrapNotFound(err, "image %s", imageId)
	}
	return image, nil
}

// ListImages 获取全部图片（管理端）
func (s *ImageService) ListImages() ([]model.Image, error) {
	return s.imageRepo.GetAllImages()
}

// ListCategoryImages 获取分类下的图片
// 公开端只返回可见图片，管理端返回全部
func (s *ImageService) ListCategoryImages(categoryId string, adminView bool) ([]model.CategoryImageDetail, error) {
	if _, err := s.categoryRepo.GetCategory(categoryId); err != nil {
		return nil, wrapNotFound(err, "category %s", categoryId)
	}
	return s.imageRepo.GetImagesByCategory(categoryId, !adminView)
}

// ListCarouselImages 获取分类轮播图片（公开端）
func (s *ImageService) ListCarouselImages(categoryId string) ([]model.CategoryImageDetail, error) {
	if _, err := s.categoryRepo.GetCategory(categoryId); err != nil {
		return nil, wrapNotFound(err, "category %s", categoryId)
	}
	return s.imageRepo.GetCarouselImages(categoryId)
}

// AssociateImage 将图片关联到分类，轮播位冲突时拒绝
func (s *ImageService) AssociateImage(categoryId string, req *model.AssociateImageReq) (*model.CategoryImage, error) {
	if req.ImageId == "" {
		return nil, invalidf("imageId is required")
	}
	if _, err := s.categoryRepo.GetCategory(categoryId); err != nil {
		return nil, wrapNotFound(err, "category %s", categoryId)
	}
	if _, err := s.imageRepo.GetImage(req.ImageId); err != nil {
		return nil, wrapNotFound(err, "image %s", req.ImageId)
	}

	if _, err := s.imageRepo.GetAssociation(categoryId, req.ImageId); err == nil {
		return nil, invalidf("image %s is already associated with category %s", req.ImageId, categoryId)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if req.IsCarousel == model.InCarousel {
		if err := s.checkCarouselSlot(categoryId, req.CarouselOrder, ""); err != nil {
			return nil, err
		}
	}

	assoc := &model.CategoryImage{
		CategoryId:    categoryId,
		ImageId:       req.ImageId,
		Order:         req.Order,
		IsCarousel:    req.IsCarousel,
		CarouselOrder: req.CarouselOrder,
	}
	if err := s.imageRepo.CreateAssociation(assoc); err != nil {
		log.Errorw("failed to associate image", "categoryId", categoryId, "imageId", req.ImageId, "error", err)
		return nil, err
	}
	return assoc, nil
}

// UpdateAssociation 更新分类内排序与轮播设置
func (s *ImageService) UpdateAssociation(categoryId, imageId string, req *model.AssociateImageReq) (*model.CategoryImage, error) {
	if _, err := s.imageRepo.GetAssociation(categoryId, imageId); err != nil {
		return nil, wrapNotFound(err, "image %s in category %s", imageId, categoryId)
	}

	if req.IsCarousel == model.InCarousel {
		if err := s.checkCarouselSlot(categoryId, req.CarouselOrder, imageId); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{
		"order":          req.Order,
		"is_carousel":    req.IsCarousel,
		"carousel_order": req.CarouselOrder,
	}
	if err := s.imageRepo.UpdateAssociation(categoryId, imageId, updates); err != nil {
		return nil, err
	}
	return s.imageRepo.GetAssociation(categoryId, imageId)
}

// DissociateImage 解除图片与分类的关联，图片记录保留
func (s *ImageService) DissociateImage(categoryId, imageId string) error {
	if _, err := s.imageRepo.GetAssociation(categoryId, imageId); err != nil {
		return wrapNotFound(err, "image %s in category %s", imageId, categoryId)
	}
	return s.imageRepo.DeleteAssociation(categoryId, imageId)
}

func (s *ImageService) checkCarouselSlot(categoryId string, carouselOrder int, excludeImageId string) error {
	count, err := s.imageRepo.CountCarouselOrder(categoryId, carouselOrder, excludeImageId)
	if err != nil {
		return err
	}
	if count > 0 {
		return invalidf("carousel position %d is already taken in category %s", carouselOrder, categoryId)
	}
	return nil
}
