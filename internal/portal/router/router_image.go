package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-aperture/aperture/internal/portal/constant"
	"github.com/go-aperture/aperture/internal/portal/model"
	httpx "github.com/go-aperture/aperture/pkg/http"
)

func (rt *Router) imageRouter(r fiber.Router, auth fiber.Handler) {
	imageGroup := r.Group("/images")
	{
		imageGroup.Get("/", auth, rt.listImages)            // GET /images - all images
		imageGroup.Post("/", auth, rt.createImage)          // POST /images - register image metadata
		imageGroup.Get("/:imageId", auth, rt.getImage)      // GET /images/:imageId - details
		imageGroup.Put("/:imageId", auth, rt.updateImage)   // PUT /images/:imageId - partial update
		imageGroup.Delete("/:imageId", auth, rt.deleteImage) // DELETE /images/:imageId - record + files
	}
}

// listImages returns all images for the admin view
func (rt *Router) listImages(c *fiber.Ctx) error {
	images, err := rt.Services.Image.ListImages()
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, images)
	return nil
}

// createImage registers an image record, usually after an upload
func (rt *Router) createImage(c *fiber.Ctx) error {
	var req model.CreateImageReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "invalid request parameters", c.Path())
	}

	image, err := rt.Services.Image.CreateImage(&req)
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, image)
	return nil
}

// getImage returns one image record
func (rt *Router) getImage(c *fiber.Ctx) error {
	imageId := c.Params("imageId")
	if imageId == "" {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "imageId is required", c.Path())
	}

	image, err := rt.Services.Image.GetImage(imageId)
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, image)
	return nil
}

// updateImage partially updates image metadata
func (rt *Router) updateImage(c *fiber.Ctx) error {
	imageId := c.Params("imageId")
	if imageId == "" {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "imageId is required", c.Path())
	}

	var req model.UpdateImageReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "invalid request parameters", c.Path())
	}

	image, err := rt.Services.Image.UpdateImage(imageId, &req)
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, image)
	return nil
}

// deleteImage removes the record, its associations and its stored files
func (rt *Router) deleteImage(c *fiber.Ctx) error {
	imageId := c.Params("imageId")
	if imageId == "" {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "imageId is required", c.Path())
	}

	if err := rt.Services.Image.DeleteImage(imageId); err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.OPERATION, "delete image")
	return nil
}
