package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-aperture/aperture/internal/portal/constant"
	"github.com/go-aperture/aperture/internal/portal/service"
	httpx "github.com/go-aperture/aperture/pkg/http"
)

func (rt *Router) reconcileRouter(r fiber.Router, auth fiber.Handler) {
	storageGroup := r.Group("/storage")
	{
		storageGroup.Get("/orphans", auth, rt.listOrphans)     // GET /storage/orphans - objects no record references
		storageGroup.Post("/orphans/purge", auth, rt.purgeOrphans) // POST /storage/orphans/purge - best-effort delete
	}
}

// listOrphans reports stored objects that no image record references
func (rt *Router) listOrphans(c *fiber.Ctx) error {
	orphans, err := rt.Services.Reconcile.ListOrphans()
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, service.ReconcileReport{Orphans: orphans})
	return nil
}

type purgeReq struct {
	// Names limits the purge to the given objects; empty purges every orphan
	Names []string `json:"names"`
}

// purgeOrphans deletes orphan objects one by one, failures are reported not fatal
func (rt *Router) purgeOrphans(c *fiber.Ctx) error {
	var req purgeReq
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "invalid request parameters", c.Path())
		}
	}

	names := req.Names
	if len(names) == 0 {
		orphans, err := rt.Services.Reconcile.ListOrphans()
		if err != nil {
			return replyErr(c, err)
		}
		names = orphans
	}

	report := rt.Services.Reconcile.DeleteOrphans(names)
	report.Orphans = names

	c.Locals(constant.DETAIL, report)
	return nil
}
