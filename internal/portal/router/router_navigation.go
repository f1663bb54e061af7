package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-aperture/aperture/internal/portal/constant"
	"github.com/go-aperture/aperture/internal/portal/model"
	httpx "github.com/go-aperture/aperture/pkg/http"
)

func (rt *Router) navigationRouter(r fiber.Router, auth fiber.Handler) {
	navGroup := r.Group("/navigations")
	{
		navGroup.Get("/", auth, rt.listNavigations)           // GET /navigations - flat admin list
		navGroup.Post("/", auth, rt.createNavigation)         // POST /navigations - create item
		navGroup.Get("/:navId", auth, rt.getNavigation)       // GET /navigations/:navId - item details
		navGroup.Put("/:navId", auth, rt.updateNavigation)    // PUT /navigations/:navId - partial update
		navGroup.Delete("/:navId", auth, rt.deleteNavigation) // DELETE /navigations/:navId - delete item
	}
}

// listNavigations returns all navigation items, hidden ones included
func (rt *Router) listNavigations(c *fiber.Ctx) error {
	navs, err := rt.Services.Navigation.ListNavigations()
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, navs)
	return nil
}

// createNavigation creates a navigation item
func (rt *Router) createNavigation(c *fiber.Ctx) error {
	var req model.CreateNavigationReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "invalid request parameters", c.Path())
	}

	nav, err := rt.Services.Navigation.CreateNavigation(&req)
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, nav)
	return nil
}

// getNavigation returns one navigation item
func (rt *Router) getNavigation(c *fiber.Ctx) error {
	navId := c.Params("navId")
	if navId == "" {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "navId is required", c.Path())
	}

	nav, err := rt.Services.Navigation.GetNavigation(navId)
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, nav)
	return nil
}

// updateNavigation partially updates a navigation item
func (rt *Router) updateNavigation(c *fiber.Ctx) error {
	navId := c.Params("navId")
	if navId == "" {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "navId is required", c.Path())
	}

	var req model.UpdateNavigationReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "invalid request parameters", c.Path())
	}

	nav, err := rt.Services.Navigation.UpdateNavigation(navId, &req)
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, nav)
	return nil
}

// deleteNavigation deletes a navigation item without children
func (rt *Router) deleteNavigation(c *fiber.Ctx) error {
	navId := c.Params("navId")
	if navId == "" {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "navId is required", c.Path())
	}

	if err := rt.Services.Navigation.DeleteNavigation(navId); err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.OPERATION, "delete navigation")
	return nil
}
