package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-aperture/aperture/internal/portal/constant"
	"github.com/go-aperture/aperture/internal/portal/model"
	httpx "github.com/go-aperture/aperture/pkg/http"
)

func (rt *Router) categoryRouter(r fiber.Router, auth fiber.Handler) {
	categoryGroup := r.Group("/categories")
	{
		categoryGroup.Get("/", auth, rt.listCategoriesAdmin)        // GET /categories - all categories
		categoryGroup.Post("/", auth, rt.createCategory)            // POST /categories - create category
		categoryGroup.Get("/:categoryId", auth, rt.getCategory)     // GET /categories/:categoryId - details
		categoryGroup.Put("/:categoryId", auth, rt.updateCategory)  // PUT /categories/:categoryId - partial update
		categoryGroup.Delete("/:categoryId", auth, rt.deleteCategory) // DELETE /categories/:categoryId?force=true

		// image association management
		categoryGroup.Get("/:categoryId/images", auth, rt.listCategoryImagesAdmin)        // GET - all images incl. hidden
		categoryGroup.Post("/:categoryId/images", auth, rt.associateImage)                // POST - attach image
		categoryGroup.Put("/:categoryId/images/:imageId", auth, rt.updateAssociation)     // PUT - reorder / carousel
		categoryGroup.Delete("/:categoryId/images/:imageId", auth, rt.dissociateImage)    // DELETE - detach image
	}
}

// listCategoriesAdmin returns every category, inactive ones included
func (rt *Router) listCategoriesAdmin(c *fiber.Ctx) error {
	categories, err := rt.Services.Category.ListCategories(true)
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, categories)
	return nil
}

// createCategory creates a category
func (rt *Router) createCategory(c *fiber.Ctx) error {
	var req model.CreateCategoryReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "invalid request parameters", c.Path())
	}

	category, err := rt.Services.Category.CreateCategory(&req)
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, category)
	return nil
}

// getCategory returns one category
func (rt *Router) getCategory(c *fiber.Ctx) error {
	categoryId := c.Params("categoryId")
	if categoryId == "" {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "categoryId is required", c.Path())
	}

	category, err := rt.Services.Category.GetCategory(categoryId)
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, category)
	return nil
}

// updateCategory partially updates a category
func (rt *Router) updateCategory(c *fiber.Ctx) error {
	categoryId := c.Params("categoryId")
	if categoryId == "" {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "categoryId is required", c.Path())
	}

	var req model.UpdateCategoryReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "invalid request parameters", c.Path())
	}

	category, err := rt.Services.Category.UpdateCategory(categoryId, &req)
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, category)
	return nil
}

// deleteCategory deletes a category; force=true detaches its images first
func (rt *Router) deleteCategory(c *fiber.Ctx) error {
	categoryId := c.Params("categoryId")
	if categoryId == "" {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "categoryId is required", c.Path())
	}
	force := c.QueryBool("force")

	if err := rt.Services.Category.DeleteCategory(categoryId, force); err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.OPERATION, "delete category")
	return nil
}

// listCategoryImagesAdmin returns all images of a category for the admin view
func (rt *Router) listCategoryImagesAdmin(c *fiber.Ctx) error {
	categoryId := c.Params("categoryId")
	if categoryId == "" {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "categoryId is required", c.Path())
	}

	details, err := rt.Services.Image.ListCategoryImages(categoryId, true)
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, details)
	return nil
}

// associateImage attaches an image to a category
func (rt *Router) associateImage(c *fiber.Ctx) error {
	categoryId := c.Params("categoryId")
	if categoryId == "" {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "categoryId is required", c.Path())
	}

	var req model.AssociateImageReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "invalid request parameters", c.Path())
	}

	assoc, err := rt.Services.Image.AssociateImage(categoryId, &req)
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, assoc)
	return nil
}

// updateAssociation updates in-category ordering and carousel flags
func (rt *Router) updateAssociation(c *fiber.Ctx) error {
	categoryId := c.Params("categoryId")
	imageId := c.Params("imageId")
	if categoryId == "" || imageId == "" {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "categoryId and imageId are required", c.Path())
	}

	var req model.AssociateImageReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "invalid request parameters", c.Path())
	}

	assoc, err := rt.Services.Image.UpdateAssociation(categoryId, imageId, &req)
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, assoc)
	return nil
}

// dissociateImage detaches an image from a category, the image itself stays
func (rt *Router) dissociateImage(c *fiber.Ctx) error {
	categoryId := c.Params("categoryId")
	imageId := c.Params("imageId")
	if categoryId == "" || imageId == "" {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "categoryId and imageId are required", c.Path())
	}

	if err := rt.Services.Image.DissociateImage(categoryId, imageId); err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.OPERATION, "dissociate image")
	return nil
}
