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

// Image 图片表
type Image struct {
	BaseModel
	ImageId      string `gorm:"column:image_id;not null;uniqueIndex" json:"imageId"` // 图片唯一标识
	Title        string `gorm:"column:title" json:"title"`                           // 图片标题
	Alt          string `gorm:"column:alt;not null" json:"alt"`                      // 替代文本（无障碍必填）
	Description  string `gorm:"column:description" json:"description"`               // 图片描述
	OriginalUrl  string `gorm:"column:original_url;not null" json:"originalUrl"`     // 原图地址
	ThumbnailUrl string `gorm:"column:thumbnail_url" json:"thumbnailUrl"`            // 缩略图地址
	Width        int    `gorm:"column:width" json:"width"`                           // 原图宽度（像素）
	Height       int    `gorm:"column:height" json:"height"`                         // 原图高度（像素）
	Size         int64  `gorm:"column:size" json:"size"`                             // 文件大小（字节）
	MimeType     string `gorm:"column:mime_type" json:"mimeType"`                    // MIME 类型
	Order        int    `gorm:"column:order;default:0" json:"order"`                 // 排序（数值越小越靠前）
	IsVisible    int    `gorm:"column:is_visible;default:1" json:"isVisible"`        // 是否可见：0-隐藏，1-显示
}

func (Image) TableName() string {
	return "t_image"
}

// 图片可见性常量
const (
	ImageVisible   = 1 // 可见
	ImageInvisible = 0 // 不可见
)

// CategoryImage 分类-图片关联表（多对多）
type CategoryImage struct {
	BaseModel
	CategoryId    string `gorm:"column:category_id;not null;index:idx_cat_img,unique" json:"categoryId"` // 分类ID
	ImageId       string `gorm:"column:image_id;not null;index:idx_cat_img,unique" json:"imageId"`       // 图片ID
	Order         int    `gorm:"column:order;default:0" json:"order"`                                    // 分类内排序
	IsCarousel    int    `gorm:"column:is_carousel;default:0" json:"isCarousel"`                         // 是否在轮播中：0-否，1-是
	CarouselOrder int    `gorm:"column:carousel_order;default:0" json:"carouselOrder"`                   // 轮播排序（仅 isCarousel=1 时有意义）
}

func (CategoryImage) TableName() string {
	return "t_category_image"
}

// 轮播标记常量
const (
	InCarousel    = 1
	NotInCarousel = 0
)

// CreateImageReq 创建图片请求
type CreateImageReq struct {
	Title        string `json:"title"`
	Alt          string `json:"alt"`
	Description  string `json:"description"`
	OriginalUrl  string `json:"originalUrl"`
	ThumbnailUrl string `json:"thumbnailUrl"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimeType"`
	Order        int    `json:"order"`
	IsVisible    *int   `json:"isVisible"`
}

// UpdateImageReq 更新图片请求
type UpdateImageReq struct {
	Title       *string `json:"title"`
	Alt         *string `json:"alt"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
	IsVisible   *int    `json:"isVisible"`
}

// AssociateImageReq 图片关联到分类的请求
type AssociateImageReq struct {
	ImageId       string `json:"imageId"`
	Order         int    `json:"order"`
	IsCarousel    int    `json:"isCarousel"`
	CarouselOrder int    `json:"carouselOrder"`
}

// CategoryImageDetail 分类下的图片及其关联信息
type CategoryImageDetail struct {
	Image         Image         `json:"image"`
	CategoryImage CategoryImage `json:"categoryImage"`
}

// UploadResult 上传管道的返回元数据
type UploadResult struct {
	OriginalUrl  string `json:"originalUrl"`
	ThumbnailUrl string `json:"thumbnailUrl"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimeType"`
}
