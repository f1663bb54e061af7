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

type IImageRepository interface {
	GetImage(imageId string) (*model.Image, error)
	GetAllImages() ([]model.Image, error)
	GetImagesByCategory(categoryId string, visibleOnly bool) ([]model.CategoryImageDetail, error)
	GetCarouselImages(categoryId string) ([]model.CategoryImageDetail, error)
	ListImageURLs() ([]string, error)
	CreateImage(image *model.Image) error
	UpdateImage(imageId string, updates map[string]interface{}) error
	DeleteImage(imageId string) error
	GetAssociation(categoryId, imageId string) (*model.CategoryImage, error)
	CreateAssociation(assoc *model.CategoryImage) error
	UpdateAssociation(categoryId, imageId string, updates map[string]interface{}) error
	DeleteAssociation(categoryId, imageId string) error
	DeleteImageAssociations(imageId string) error
	CountCarouselOrder(categoryId string, carouselOrder int, excludeImageId string) (int64, error)
}

type ImageRepo struct {
	database.IDatabase
}

func NewImageRepo(db database.IDatabase) IImageRepository {
	return &ImageRepo{
		IDatabase: db,
	}
}

// GetImage 获取图片
func (r *ImageRepo) GetImage(imageId string) (*model.Image, error) {
	var image model.Image
	err := r.Database().Where("image_id = ?", imageId).First(&image).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// GetAllImages 获取所有图片（管理端）
func (r *ImageRepo) GetAllImages() ([]model.Image, error) {
	var images []model.Image
	err := r.Database().Order("`order` ASC, id DESC").Find(&images).Error
	return images, err
}

// GetImagesByCategory 获取分类下的图片，含关联信息，按分类内排序
func (r *ImageRepo) GetImagesByCategory(categoryId string, visibleOnly bool) ([]model.CategoryImageDetail, error) {
	var assocs []model.CategoryImage
	err := r.Database().Where("category_id = ?", categoryId).
		Order("`order` ASC").Find(&assocs).Error
	if err != nil {
		return nil, err
	}
	return r.attachImages(assocs, visibleOnly)
}

// GetCarouselImages 获取分类轮播图片，按轮播排序
func (r *ImageRepo) GetCarouselImages(categoryId string) ([]model.CategoryImageDetail, error) {
	var assocs []model.CategoryImage
	err := r.Database().Where("category_id = ? AND is_carousel = ?", categoryId, model.InCarousel).
		Order("carousel_order ASC").Find(&assocs).Error
	if err != nil {
		return nil, err
	}
	return r.attachImages(assocs, true)
}

func (r *ImageRepo) attachImages(assocs []model.CategoryImage, visibleOnly bool) ([]model.CategoryImageDetail, error) {
	if len(assocs) == 0 {
		return []model.CategoryImageDetail{}, nil
	}
	imageIds := make([]string, 0, len(assocs))
	for _, a := range assocs {
		imageIds = append(imageIds, a.ImageId)
	}
	query := r.Database().Where("image_id IN ?", imageIds)
	if visibleOnly {
		query = query.Where("is_visible = ?", model.ImageVisible)
	}
	var images []model.Image
	if err := query.Find(&images).Error; err != nil {
		return nil, err
	}
	byId := make(map[string]model.Image, len(images))
	for _, img := range images {
		byId[img.ImageId] = img
	}
	details := make([]model.CategoryImageDetail, 0, len(assocs))
	for _, a := range assocs {
		img, ok := byId[a.ImageId]
		if !ok {
			continue
		}
		details = append(details, model.CategoryImageDetail{Image: img, CategoryImage: a})
	}
	return details, nil
}

// ListImageURLs 获取全部图片的原图与缩略图地址，用于存储对账
func (r *ImageRepo) ListImageURLs() ([]string, error) {
	var images []model.Image
	err := r.Database().Select("original_url", "thumbnail_url").Find(&images).Error
	if err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(images)*2)
	for _, img := range images {
		if img.OriginalUrl != "" {
			urls = append(urls, img.OriginalUrl)
		}
		if img.ThumbnailUrl != "" {
			urls = append(urls, img.ThumbnailUrl)
		}
	}
	return urls, nil
}

// CreateImage 创建图片记录
func (r *ImageRepo) CreateImage(image *model.Image) error {
	return r.Database().Create(image).Error
}

// UpdateImage 更新图片记录
func (r *ImageRepo) UpdateImage(imageId string, updates map[string]interface{}) error {
	return r.Database().Model(&model.Image{}).
		Where("image_id = ?", imageId).Updates(updates).Error
}

// DeleteImage 删除图片记录
func (r *ImageRepo) DeleteImage(imageId string) error {
	return r.Database().Where("image_id = ?", imageId).Delete(&model.Image{}).Error
}

// GetAssociation 获取分类-图片关联
func (r *ImageRepo) GetAssociation(categoryId, imageId string) (*model.CategoryImage, error) {
	var assoc model.CategoryImage
	err := r.Database().Where("category_id = ? AND image_id = ?", categoryId, imageId).
		First(&assoc).Error
	if err != nil {
		return nil, err
	}
	return &assoc, nil
}

// CreateAssociation 创建分类-图片关联
func (r *ImageRepo) CreateAssociation(assoc *model.CategoryImage) error {
	return r.Database().Create(assoc).Error
}

// UpdateAssociation 更新分类-图片关联
func (r *ImageRepo) UpdateAssociation(categoryId, imageId string, updates map[string]interface{}) error {
	return r.Database().Model(&model.CategoryImage{}).
		Where("category_id = ? AND image_id = ?", categoryId, imageId).
		Updates(updates).Error
}

// DeleteAssociation 删除分类-图片关联
func (r *ImageRepo) DeleteAssociation(categoryId, imageId string) error {
	return r.Database().Where("category_id = ? AND image_id = ?", categoryId, imageId).
		Delete(&model.CategoryImage{}).Error
}

// DeleteImageAssociations 删除图片的所有分类关联
func (r *ImageRepo) DeleteImageAssociations(imageId string) error {
	return r.Database().Where("image_id = ?", imageId).Delete(&model.CategoryImage{}).Error
}

// CountCarouselOrder 统计分类内某轮播位是否已被其它图片占用
func (r *ImageRepo) CountCarouselOrder(categoryId string, carouselOrder int, excludeImageId string) (int64, error) {
	var count int64
	query := r.Database().Model(&model.CategoryImage{}).
		Where("category_id = ? AND is_carousel = ? AND carousel_order = ?",
			categoryId, model.InCarousel, carouselOrder)
	if excludeImageId != "" {
		query = query.Where("image_id != ?", excludeImageId)
	}
	err := query.Count(&count).Error
	return count, err
}
