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
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/go-aperture/aperture/internal/portal/constant"
	"github.com/go-aperture/aperture/internal/portal/model"
	"github.com/go-aperture/aperture/pkg/cache"
	"github.com/go-aperture/aperture/pkg/http"
	"github.com/go-aperture/aperture/pkg/http/jwt"
	"github.com/go-aperture/aperture/pkg/log"
)

var ErrBadCredentials = errors.New("invalid username or password")

// AuthService 管理员认证，凭据来自配置文件，会话存 redis
type AuthService struct {
	auth     *http.Auth
	sessions cache.ICache
}

func NewAuthService(auth *http.Auth, sessions cache.ICache) *AuthService {
	return &AuthService{
		auth:     auth,
		sessions: sessions,
	}
}

// Login 校验配置凭据，签发令牌并写入会话
func (s *AuthService) Login(ctx context.Context, req *model.LoginReq) (*model.LoginResp, error) {
	if req.Username == "" || req.Password == "" {
		return nil, invalidf("username and password are required")
	}

	userMatch := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.auth.Username))
	passMatch := subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.auth.Password))
	if userMatch != 1 || passMatch != 1 {
		log.Warnw("login rejected", "username", req.Username)
		return nil, ErrBadCredentials
	}

	aToken, rToken, err := jwt.GenToken(s.auth.Username, []byte(s.auth.SecretKey),
		s.auth.AccessExpire, s.auth.RefreshExpire)
	if err != nil {
		return nil, err
	}

	sessionTTL := s.auth.AccessExpire * time.Minute
	if err := s.sessions.Set(ctx, s.sessionKey(s.auth.Username), aToken, sessionTTL); err != nil {
		log.Errorw("failed to store session", "error", err)
		return nil, err
	}

	return &model.LoginResp{
		AccessToken:  aToken,
		RefreshToken: rToken,
		ExpiresIn:    int64(sessionTTL / time.Second),
	}, nil
}

// Logout 删除会话，令牌立即失效
func (s *AuthService) Logout(ctx context.Context, userId string) error {
	return s.sessions.Del(ctx, s.sessionKey(userId))
}

// Refresh 用 refresh token 换发新令牌并续期会话
func (s *AuthService) Refresh(ctx context.Context, req *model.RefreshTokenReq) (*model.LoginResp, error) {
	if req.RefreshToken == "" {
		return nil, invalidf("refreshToken is required")
	}

	tokens, err := jwt.RefreshToken(s.auth, s.auth.Username, req.RefreshToken)
	if err != nil {
		return nil, err
	}

	sessionTTL := s.auth.AccessExpire * time.Minute
	if err := s.sessions.Set(ctx, s.sessionKey(s.auth.Username), tokens["accessToken"], sessionTTL); err != nil {
		log.Errorw("failed to refresh session", "error", err)
		return nil, err
	}

	return &model.LoginResp{
		AccessToken:  tokens["accessToken"],
		RefreshToken: tokens["refreshToken"],
		ExpiresIn:    int64(sessionTTL / time.Second),
	}, nil
}

func (s *AuthService) sessionKey(userId string) string {
	prefix := s.auth.RedisKeyPrefix
	if prefix == "" {
		prefix = constant.SessionKeyPrefix
	}
	return prefix + userId
}
