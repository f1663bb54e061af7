package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-aperture/aperture/internal/portal/constant"
	"github.com/go-aperture/aperture/internal/portal/model"
	httpx "github.com/go-aperture/aperture/pkg/http"
)

func (rt *Router) settingRouter(r fiber.Router, auth fiber.Handler) {
	settingGroup := r.Group("/settings")
	{
		settingGroup.Get("/", auth, rt.listSettingsAdmin) // GET /settings?prefix= - read settings
		settingGroup.Put("/", auth, rt.upsertSettings)    // PUT /settings - batch write
		settingGroup.Delete("/:key", auth, rt.deleteSetting) // DELETE /settings/:key
	}
}

// listSettingsAdmin reads settings, optionally narrowed by prefix
func (rt *Router) listSettingsAdmin(c *fiber.Ctx) error {
	settings, err := rt.Services.Setting.GetSettings(c.Query("prefix"))
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, settings)
	return nil
}

// upsertSettings writes a batch of settings, the whole batch is validated first
func (rt *Router) upsertSettings(c *fiber.Ctx) error {
	var req model.UpsertSettingReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "invalid request parameters", c.Path())
	}

	if err := rt.Services.Setting.UpsertSettings(&req); err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.OPERATION, "upsert settings")
	return nil
}

// deleteSetting removes one setting key
func (rt *Router) deleteSetting(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "key is required", c.Path())
	}

	if err := rt.Services.Setting.DeleteSetting(key); err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.OPERATION, "delete setting")
	return nil
}
