package storage

import (
	"io"

	"github.com/go-aperture/aperture/pkg/ctx"
)

// StorageProvider 对象存储抽象，上传管道与孤儿文件清理只依赖这四个操作
type StorageProvider interface {
	PutObject(ctx *ctx.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	GetObject(ctx *ctx.Context, objectName string) ([]byte, error)
	Delete(ctx *ctx.Context, objectName string) error
	ListObjects(ctx *ctx.Context) ([]string, error)
}
