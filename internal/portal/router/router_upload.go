package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-aperture/aperture/internal/portal/constant"
	httpx "github.com/go-aperture/aperture/pkg/http"
)

func (rt *Router) uploadRouter(r fiber.Router, auth fiber.Handler) {
	uploadGroup := r.Group("/upload")
	{
		uploadGroup.Post("/", auth, rt.upload)             // POST /upload - multipart image upload
		uploadGroup.Post("/import", auth, rt.importByURL)  // POST /upload/import - import from remote URL
	}
}

// upload runs the upload pipeline for a multipart file
func (rt *Router) upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "file field is required", c.Path())
	}

	result, err := rt.Services.Upload.Upload(file)
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}

type importReq struct {
	Url string `json:"url"`
}

// importByURL fetches a remote image and runs it through the same pipeline
func (rt *Router) importByURL(c *fiber.Ctx) error {
	var req importReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "invalid request parameters", c.Path())
	}

	result, err := rt.Services.Upload.ImportFromURL(req.Url)
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}
