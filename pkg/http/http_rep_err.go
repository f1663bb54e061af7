package http

import (
	"github.com/gofiber/fiber/v2"
)

/**
 * @author: aperture
 * @file: http_rep_err.go
 * @description: error response helpers
 */

type ResponseErr struct {
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
	ErrMsg any    `json:"err,omitempty"`
	Path   string `json:"path,omitempty"`
}

// statusOf 业务码到 HTTP 状态码的映射
func statusOf(code int) int {
	switch {
	case code == BadRequest.Code || code == RequestParameterParsingFailed.Code:
		return fiber.StatusBadRequest
	case code == NotFound.Code:
		return fiber.StatusNotFound
	case code >= 4400 && code < 4500:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// WithRepErr 返回错误json数据，附带错误详情
func WithRepErr(c *fiber.Ctx, code int, errMsg any, path string) error {
	return c.Status(statusOf(code)).JSON(ResponseErr{
		Code:   code,
		Msg:    Failed.Msg,
		ErrMsg: errMsg,
		Path:   path,
	})
}

// WithRepErrMsg 返回错误json数据
func WithRepErrMsg(c *fiber.Ctx, code int, msg string, path string) error {
	return c.Status(statusOf(code)).JSON(ResponseErr{
		Code: code,
		Msg:  msg,
		Path: path,
	})
}
