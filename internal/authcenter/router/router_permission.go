package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-arcade/authcenter/internal/authcenter/authz"
	httpx "github.com/go-arcade/authcenter/pkg/http"
)

func (rt *Router) permissionRouter(r fiber.Router, auth fiber.Handler) {
	permGroup := r.Group("/permissions")
	{
		permGroup.Get("/", auth, rt.listPermissions)
		permGroup.Get("/:name/children", auth, rt.permissionChildren)
	}

	authzGroup := r.Group("/authz")
	{
		authzGroup.Post("/check", auth, rt.checkPermission)
	}
}

func (rt *Router) listPermissions(c *fiber.Ctx) error {
	return httpx.WithRepJSON(c, rt.Services.Permission.CatalogNames())
}

func (rt *Router) permissionChildren(c *fiber.Ctx) error {
	children, err := rt.Services.Permission.CatalogChildren(c.Params("name"))
	if err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepJSON(c, children)
}

type checkPermissionRequest struct {
	UserId     int64  `json:"userId"`
	Permission string `json:"permission"`
	// InheritAncestorRoles falls back to the configured policy when omitted.
	InheritAncestorRoles *bool `json:"inheritAncestorRoles,omitempty"`
}

type checkPermissionResponse struct {
	Granted bool `json:"granted"`
}

// checkPermission resolves one permission for one principal in the caller's
// tenant partition.
func (rt *Router) checkPermission(c *fiber.Ctx) error {
	var req checkPermissionRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	var opts *authz.ResolveOptions
	if req.InheritAncestorRoles != nil {
		o := rt.Services.Authz.Options
		o.InheritAncestorRoles = *req.InheritAncestorRoles
		opts = &o
	}
	granted, err := rt.Services.Authz.IsGranted(c.UserContext(), tenantOf(c), req.UserId, req.Permission, opts)
	if err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepJSON(c, checkPermissionResponse{Granted: granted})
}
