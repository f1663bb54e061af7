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

package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-aperture/aperture/pkg/ctx"
)

// LocalStorage 本地磁盘存储，文件平铺在 LocalDir 下
type LocalStorage struct {
	root string
	s    *Storage
}

func newLocal(s *Storage) (*LocalStorage, error) {
	root := s.LocalDir
	if root == "" {
		return nil, fmt.Errorf("local storage requires a directory")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create local storage dir: %w", err)
	}
	return &LocalStorage{root: root, s: s}, nil
}

// IsSafeObjectName 拒绝包含路径分隔符或上级目录片段的对象名，防止路径穿越
func IsSafeObjectName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	if strings.Contains(name, "..") {
		return false
	}
	return true
}

func (l *LocalStorage) path(objectName string) (string, error) {
	if !IsSafeObjectName(objectName) {
		return "", fmt.Errorf("illegal object name: %q", objectName)
	}
	return filepath.Join(l.root, objectName), nil
}

func (l *LocalStorage) PutObject(ctx *ctx.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	path, err := l.path(objectName)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		os.Remove(path)
		return "", err
	}
	return objectName, nil
}

func (l *LocalStorage) GetObject(ctx *ctx.Context, objectName string) ([]byte, error) {
	path, err := l.path(objectName)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func (l *LocalStorage) Delete(ctx *ctx.Context, objectName string) error {
	path, err := l.path(objectName)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

func (l *LocalStorage) ListObjects(ctx *ctx.Context) ([]string, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
