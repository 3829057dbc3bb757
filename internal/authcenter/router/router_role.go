package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-arcade/authcenter/internal/authcenter/model"
	httpx "github.com/go-arcade/authcenter/pkg/http"
)

func (rt *Router) roleRouter(r fiber.Router, auth fiber.Handler) {
	roleGroup := r.Group("/roles")
	{
		roleGroup.Get("/", auth, rt.listRoles)
		roleGroup.Post("/", auth, rt.createRole)
		roleGroup.Get("/:roleId", auth, rt.getRole)
		roleGroup.Put("/:roleId", auth, rt.updateRole)
		roleGroup.Delete("/:roleId", auth, rt.deleteRole)

		roleGroup.Get("/:roleId/permissions", auth, rt.listRolePermissions)
		roleGroup.Put("/:roleId/permissions", auth, rt.setRolePermission)
		roleGroup.Delete("/:roleId/permissions/:name", auth, rt.unsetRolePermission)
	}
}

func (rt *Router) createRole(c *fiber.Ctx) error {
	var req model.CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	role, err := rt.Services.Role.CreateRole(tenantOf(c), &req, callerOf(c))
	if err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepJSON(c, role)
}

func (rt *Router) getRole(c *fiber.Ctx) error {
	id, err := paramId(c, "roleId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	role, err := rt.Services.Role.GetRole(tenantOf(c), id)
	if err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepJSON(c, role)
}

func (rt *Router) listRoles(c *fiber.Ctx) error {
	pageNum := queryInt(c, "pageNum", 1)
	pageSize := queryInt(c, "pageSize", 20)
	roles, count, err := rt.Services.Role.ListRoles(tenantOf(c), pageNum, pageSize)
	if err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepJSON(c, fiber.Map{"items": roles, "total": count})
}

func (rt *Router) updateRole(c *fiber.Ctx) error {
	id, err := paramId(c, "roleId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	var req model.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	if err := rt.Services.Role.UpdateRole(tenantOf(c), id, &req, callerOf(c)); err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) deleteRole(c *fiber.Ctx) error {
	id, err := paramId(c, "roleId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	if err := rt.Services.Role.DeleteRole(tenantOf(c), id, callerOf(c)); err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) listRolePermissions(c *fiber.Ctx) error {
	id, err := paramId(c, "roleId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	settings, err := rt.Services.Permission.ListRolePermissions(tenantOf(c), id)
	if err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepJSON(c, settings)
}

func (rt *Router) setRolePermission(c *fiber.Ctx) error {
	id, err := paramId(c, "roleId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	var req model.SetPermissionRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	if err := rt.Services.Permission.SetRolePermission(tenantOf(c), id, &req, callerOf(c)); err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) unsetRolePermission(c *fiber.Ctx) error {
	id, err := paramId(c, "roleId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	if err := rt.Services.Permission.UnsetRolePermission(tenantOf(c), id, c.Params("name")); err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}
