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
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/go-aperture/aperture/internal/pkg/fetch"
	"github.com/go-aperture/aperture/internal/pkg/thumbnail"
	"github.com/go-aperture/aperture/internal/portal/conf"
	"github.com/go-aperture/aperture/internal/portal/model"
	"github.com/go-aperture/aperture/pkg/ctx"
	"github.com/go-aperture/aperture/pkg/log"
	"github.com/go-aperture/aperture/pkg/metrics"
	"github.com/go-aperture/aperture/pkg/storage"
)

const (
	defaultMaxUploadSize = 20 * 1024 * 1024 // 20MB
	thumbPrefix          = "thumb_"
)

var defaultAllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

var extByMime = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadService 图片上传管道
// 原图与缩略图成对写入存储，任一步骤失败则整体失败并回收已写入的对象
type UploadService struct {
	ctx      *ctx.Context
	provider storage.StorageProvider
	fetcher  *fetch.Fetcher
	cfg      conf.Upload
}

func NewUploadService(ctx *ctx.Context, provider storage.StorageProvider, cfg conf.Upload) *UploadService {
	timeout := time.Duration(cfg.FetchTimeout) * time.Second
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = defaultMaxUploadSize
	}
	return &UploadService{
		ctx:      ctx,
		provider: provider,
		fetcher:  fetch.NewFetcher(timeout, maxSize),
		cfg:      cfg,
	}
}

// Upload 处理表单文件上传
func (s *UploadService) Upload(file *multipart.FileHeader) (res *model.UploadResult, err error) {
	defer func() { observeIngest(metrics.SourceFile, err) }()

	if file == nil {
		return nil, invalidf("file is required")
	}
	if file.Size == 0 {
		return nil, invalidf("file is empty")
	}
	if file.Size > s.maxSize() {
		return nil, invalidf("file size %d exceeds limit of %d bytes", file.Size, s.maxSize())
	}

	contentType := file.Header.Get("Content-Type")
	if err := s.checkContentType(contentType); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(src); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	return s.store(buf.Bytes(), contentType)
}

// ImportFromURL 从远程地址导入图片，走同一条存储管道
func (s *UploadService) ImportFromURL(rawURL string) (res *model.UploadResult, err error) {
	defer func() { observeIngest(metrics.SourceURL, err) }()

	if rawURL == "" {
		return nil, invalidf("url is required")
	}
	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, invalidf("url must be a valid http or https address")
	}

	result, err := s.fetcher.Get(s.ctx.Ctx, rawURL)
	if err != nil {
		if errors.Is(err, fetch.ErrTooLarge) {
			return nil, invalidf("remote file exceeds limit of %d bytes", s.maxSize())
		}
		return nil, fmt.Errorf("fetch remote image: %w", err)
	}
	if int64(len(result.Data)) > s.maxSize() {
		return nil, invalidf("remote file size %d exceeds limit of %d bytes", len(result.Data), s.maxSize())
	}

	contentType := result.ContentType
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if err := s.checkContentType(contentType); err != nil {
		return nil, err
	}

	return s.store(result.Data, contentType)
}

// store 写入原图与缩略图，生成访问地址
func (s *UploadService) store(data []byte, contentType string) (*model.UploadResult, error) {
	ext := extByMime[contentType]
	baseName := uuid.New().String()
	originalName := baseName + ext
	thumbName := thumbPrefix + baseName + ".jpg"

	thumb, err := thumbnail.Generate(bytes.NewReader(data), thumbnail.Options{
		Width:   s.cfg.ThumbnailWidth,
		Height:  s.cfg.ThumbnailHeight,
		Quality: s.cfg.ThumbnailQuality,
	})
	if err != nil {
		return nil, invalidf("file is not a decodable image: %v", err)
	}

	if _, err := s.provider.PutObject(s.ctx, originalName,
		bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return nil, fmt.Errorf("store original: %w", err)
	}

	if _, err := s.provider.PutObject(s.ctx, thumbName,
		bytes.NewReader(thumb.Data), int64(len(thumb.Data)), "image/jpeg"); err != nil {
		// 缩略图失败时回收原图，避免孤儿文件
		if delErr := s.provider.Delete(s.ctx, originalName); delErr != nil {
			log.Warnw("failed to roll back original after thumbnail failure",
				"object", originalName, "error", delErr)
		}
		return nil, fmt.Errorf("store thumbnail: %w", err)
	}

	return &model.UploadResult{
		OriginalUrl:  s.publicURL(originalName),
		ThumbnailUrl: s.publicURL(thumbName),
		Width:        thumb.OriginalWidth,
		Height:       thumb.OriginalHeight,
		Size:         int64(len(data)),
		MimeType:     contentType,
	}, nil
}

// observeIngest 按来源与结果记录一次图片入库
func observeIngest(source string, err error) {
	result := metrics.ResultAccepted
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalid):
		result = metrics.ResultRejected
	default:
		result = metrics.ResultFailed
	}
	metrics.IngestsTotal.WithLabelValues(source, result).Inc()
}

func (s *UploadService) checkContentType(contentType string) error {
	allowed := s.cfg.AllowedTypes
	if len(allowed) == 0 {
		allowed = defaultAllowedTypes
	}
	for _, t := range allowed {
		if strings.EqualFold(contentType, t) {
			return nil
		}
	}
	return invalidf("unsupported content type: %s", contentType)
}

func (s *UploadService) maxSize() int64 {
	if s.cfg.MaxSize > 0 {
		return s.cfg.MaxSize
	}
	return defaultMaxUploadSize
}

func (s *UploadService) publicURL(objectName string) string {
	base := strings.TrimSuffix(s.cfg.BaseURL, "/")
	return base + "/" + objectName
}

// objectNameFromURL 从访问地址还原对象名，忽略查询串与锚点
func objectNameFromURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	target := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		target = u.Path
	}
	name := filepath.Base(target)
	if name == "." || name == "/" {
		return ""
	}
	return name
}
