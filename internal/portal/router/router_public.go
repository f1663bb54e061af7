package router

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/go-aperture/aperture/internal/portal/constant"
	httpx "github.com/go-aperture/aperture/pkg/http"
	"github.com/go-aperture/aperture/pkg/storage"
)

// publicRouter registers the unauthenticated read-only surface
func (rt *Router) publicRouter(r fiber.Router) {
	r.Get("/navigations", rt.getNavigationTree)            // GET /navigations - visible menu tree
	r.Get("/categories", rt.listCategoriesPublic)          // GET /categories - active categories
	r.Get("/categories/:slug", rt.getCategoryPublic)       // GET /categories/:slug - category details
	r.Get("/categories/:slug/images", rt.listCategoryImagesPublic) // GET - visible images in order
	r.Get("/categories/:slug/carousel", rt.listCarouselPublic)     // GET - carousel images in order
	r.Get("/settings", rt.listSettingsPublic)              // GET /settings?prefix= - site settings
	r.Get("/files/:name", rt.serveFile)                    // GET /files/:name - stored objects
}

// getNavigationTree returns the two-level menu of visible items
func (rt *Router) getNavigationTree(c *fiber.Ctx) error {
	tree, err := rt.Services.Navigation.GetNavigationTree()
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, tree)
	return nil
}

// listCategoriesPublic returns active categories only
func (rt *Router) listCategoriesPublic(c *fiber.Ctx) error {
	categories, err := rt.Services.Category.ListCategories(false)
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, categories)
	return nil
}

// getCategoryPublic resolves an active category by slug
func (rt *Router) getCategoryPublic(c *fiber.Ctx) error {
	category, err := rt.Services.Category.GetCategoryBySlug(c.Params("slug"))
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, category)
	return nil
}

// listCategoryImagesPublic returns visible images of an active category
func (rt *Router) listCategoryImagesPublic(c *fiber.Ctx) error {
	category, err := rt.Services.Category.GetCategoryBySlug(c.Params("slug"))
	if err != nil {
		return replyErr(c, err)
	}

	details, err := rt.Services.Image.ListCategoryImages(category.CategoryId, false)
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, details)
	return nil
}

// listCarouselPublic returns carousel images of an active category
func (rt *Router) listCarouselPublic(c *fiber.Ctx) error {
	category, err := rt.Services.Category.GetCategoryBySlug(c.Params("slug"))
	if err != nil {
		return replyErr(c, err)
	}

	details, err := rt.Services.Image.ListCarouselImages(category.CategoryId)
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, details)
	return nil
}

// listSettingsPublic reads settings for the public site
func (rt *Router) listSettingsPublic(c *fiber.Ctx) error {
	settings, err := rt.Services.Setting.GetSettings(c.Query("prefix"))
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, settings)
	return nil
}

// serveFile streams a stored object; object names never contain path separators
func (rt *Router) serveFile(c *fiber.Ctx) error {
	name := c.Params("name")
	if !storage.IsSafeObjectName(name) {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "invalid object name", c.Path())
	}

	data, err := rt.Provider.GetObject(rt.Ctx, name)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.NotFound.Code, "object not found", c.Path())
	}

	if ext := strings.TrimPrefix(filepath.Ext(name), "."); ext != "" {
		c.Type(ext)
	}
	return c.Send(data)
}
