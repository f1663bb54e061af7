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
	"github.com/go-aperture/aperture/internal/portal/repo"
	"github.com/go-aperture/aperture/pkg/ctx"
	"github.com/go-aperture/aperture/pkg/id"
	"github.com/go-aperture/aperture/pkg/log"
	"github.com/go-aperture/aperture/pkg/metrics"
	"github.com/go-aperture/aperture/pkg/storage"
)

// ReconcileService 存储对账，找出数据库不再引用的存储文件
type ReconcileService struct {
	ctx       *ctx.Context
	imageRepo repo.IImageRepository
	provider  storage.StorageProvider
}

func NewReconcileService(ctx *ctx.Context, imageRepo repo.IImageRepository,
	provider storage.StorageProvider) *ReconcileService {
	return &ReconcileService{
		ctx:       ctx,
		imageRepo: imageRepo,
		provider:  provider,
	}
}

// ReconcileReport 对账结果
type ReconcileReport struct {
	Orphans []string `json:"orphans"`
	Deleted []string `json:"deleted,omitempty"`
	Failed  []string `json:"failed,omitempty"`
}

// ListOrphans 列出存储中存在但数据库未引用的文件
// 引用集合包含每条图片记录的原图与缩略图
func (s *ReconcileService) ListOrphans() ([]string, error) {
	objects, err := s.provider.ListObjects(s.ctx)
	if err != nil {
		return nil, err
	}

	urls, err := s.imageRepo.ListImageURLs()
	if err != nil {
		return nil, err
	}
	referenced := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if name := objectNameFromURL(u); name != "" {
			referenced[name] = struct{}{}
		}
	}

	orphans := make([]string, 0)
	for _, obj := range objects {
		if _, ok := referenced[obj]; !ok {
			orphans = append(orphans, obj)
		}
	}
	metrics.ReconcileOrphans.Set(float64(len(orphans)))
	return orphans, nil
}

// DeleteOrphans 批量删除孤儿文件，逐个尽力执行
// 单个失败不中断，失败项记入结果
func (s *ReconcileService) DeleteOrphans(names []string) *ReconcileReport {
	report := &ReconcileReport{
		Deleted: make([]string, 0, len(names)),
		Failed:  make([]string, 0),
	}
	for _, name := range names {
		if !storage.IsSafeObjectName(name) {
			log.Warnw("rejected unsafe object name", "object", name)
			report.Failed = append(report.Failed, name)
			continue
		}
		if err := s.provider.Delete(s.ctx, name); err != nil {
			log.Warnw("failed to delete orphan object", "object", name, "error", err)
			report.Failed = append(report.Failed, name)
			continue
		}
		report.Deleted = append(report.Deleted, name)
	}
	metrics.ReconcileDeletedTotal.Add(float64(len(report.Deleted)))
	return report
}

// Scan 定时任务入口：扫描孤儿文件，tidy 时顺带删除
func (s *ReconcileService) Scan(tidy bool) {
	runId := id.GetXid()
	orphans, err := s.ListOrphans()
	if err != nil {
		log.Errorw("storage scan failed", "runId", runId, "error", err)
		return
	}
	if len(orphans) == 0 {
		log.Debugw("storage scan clean", "runId", runId)
		return
	}
	log.Infow("storage scan found orphans", "runId", runId, "count", len(orphans))
	if tidy {
		report := s.DeleteOrphans(orphans)
		log.Infow("storage scan tidied orphans", "runId", runId,
			"deleted", len(report.Deleted), "failed", len(report.Failed))
	}
}
