package router

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/go-aperture/aperture/internal/portal/constant"
	"github.com/go-aperture/aperture/internal/portal/model"
	"github.com/go-aperture/aperture/internal/portal/service"
	httpx "github.com/go-aperture/aperture/pkg/http"
	"github.com/go-aperture/aperture/pkg/http/jwt"
	"github.com/go-aperture/aperture/pkg/http/middleware"
)

func (rt *Router) authRouter(r fiber.Router) {
	authGroup := r.Group("/auth")
	{
		authGroup.Post("/login", rt.login)     // POST /auth/login - admin login
		authGroup.Post("/refresh", rt.refresh) // POST /auth/refresh - exchange refresh token
		auth := middleware.AuthorizationMiddleware(rt.Http.Auth.SecretKey, rt.sessionKeyPrefix(), rt.Sessions)
		authGroup.Post("/logout", auth, rt.logout) // POST /auth/logout - drop session
	}
}

func (rt *Router) sessionKeyPrefix() string {
	if rt.Http.Auth.RedisKeyPrefix != "" {
		return rt.Http.Auth.RedisKeyPrefix
	}
	return constant.SessionKeyPrefix
}

// login authenticates the configured admin account
func (rt *Router) login(c *fiber.Ctx) error {
	var req model.LoginReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "invalid request parameters", c.Path())
	}

	resp, err := rt.Services.Auth.Login(c.UserContext(), &req)
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, resp)
	return nil
}

// logout invalidates the current session
func (rt *Router) logout(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*jwt.AuthClaims)
	if !ok {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, httpx.Unauthorized.Msg, c.Path())
	}

	if err := rt.Services.Auth.Logout(c.UserContext(), claims.UserId); err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.OPERATION, "logout")
	return nil
}

// refresh exchanges a refresh token for a new token pair
func (rt *Router) refresh(c *fiber.Ctx) error {
	var req model.RefreshTokenReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "invalid request parameters", c.Path())
	}

	resp, err := rt.Services.Auth.Refresh(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalid) {
			return replyErr(c, err)
		}
		return httpx.WithRepErrMsg(c, httpx.InvalidToken.Code, err.Error(), c.Path())
	}

	c.Locals(constant.DETAIL, resp)
	return nil
}
