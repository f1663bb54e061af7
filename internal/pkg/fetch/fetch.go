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

package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/go-aperture/aperture/pkg/retry"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxAttempts = 3
)

// ErrTooLarge 响应体超过大小限制
var ErrTooLarge = errors.New("response body exceeds size limit")

// Fetcher 远程图片拉取客户端
type Fetcher struct {
	client      *resty.Client
	maxAttempts int
	maxBytes    int64
}

func NewFetcher(timeout time.Duration, maxBytes int64) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	// 自行读取响应体，边下载边限流
	client := resty.New().
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)).
		SetDoNotParseResponse(true)
	return &Fetcher{
		client:      client,
		maxAttempts: defaultMaxAttempts,
		maxBytes:    maxBytes,
	}
}

// Result 拉取到的远程资源
type Result struct {
	Data        []byte
	ContentType string
}

// Get 拉取远程资源，瞬时失败按指数退避重试
// maxBytes > 0 时在下载过程中强制大小上限，超限立即终止
func (f *Fetcher) Get(ctx context.Context, url string) (*Result, error) {
	var result *Result
	err := retry.Do(ctx, func(ctx context.Context) error {
		resp, err := f.client.R().SetContext(ctx).Get(url)
		if err != nil {
			return err
		}
		body := resp.RawBody()
		defer body.Close()

		if resp.StatusCode() != http.StatusOK {
			err := fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode())
			if resp.StatusCode() >= 500 {
				return err
			}
			// 4xx 不重试
			return retry.Unrecoverable(err)
		}

		// 响应头声明超限时不读正文直接拒绝
		if f.maxBytes > 0 {
			if cl := resp.Header().Get("Content-Length"); cl != "" {
				if n, perr := strconv.ParseInt(cl, 10, 64); perr == nil && n > f.maxBytes {
					return retry.Unrecoverable(
						fmt.Errorf("fetch %s: %w (%d > %d bytes)", url, ErrTooLarge, n, f.maxBytes))
				}
			}
		}

		reader := io.Reader(body)
		if f.maxBytes > 0 {
			reader = io.LimitReader(body, f.maxBytes+1)
		}
		data, err := io.ReadAll(reader)
		if err != nil {
			return fmt.Errorf("fetch %s: read body: %w", url, err)
		}
		if f.maxBytes > 0 && int64(len(data)) > f.maxBytes {
			return retry.Unrecoverable(
				fmt.Errorf("fetch %s: %w (over %d bytes)", url, ErrTooLarge, f.maxBytes))
		}

		result = &Result{
			Data:        data,
			ContentType: resp.Header().Get("Content-Type"),
		}
		return nil
	},
		retry.WithMaxAttempts(f.maxAttempts),
		retry.WithBackoff(retry.Exponential(500*time.Millisecond, 5*time.Second)),
		retry.WithJitter(retry.FullJitter),
	)
	if err != nil {
		return nil, err
	}
	return result, nil
}
