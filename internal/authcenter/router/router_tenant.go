package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-arcade/authcenter/internal/authcenter/model"
	httpx "github.com/go-arcade/authcenter/pkg/http"
)

func (rt *Router) tenantRouter(r fiber.Router, auth fiber.Handler) {
	tenantGroup := r.Group("/tenants")
	{
		tenantGroup.Get("/", auth, rt.listTenants)
		tenantGroup.Post("/", auth, rt.createTenant)
		tenantGroup.Get("/:tenantId", auth, rt.getTenant)
		tenantGroup.Put("/:tenantId", auth, rt.updateTenant)
		tenantGroup.Delete("/:tenantId", auth, rt.deleteTenant)
	}
}

// createTenant provisions a tenant with its admin role and admin user
func (rt *Router) createTenant(c *fiber.Ctx) error {
	var req model.CreateTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	tenant, err := rt.Services.Tenant.CreateTenant(&req, callerOf(c))
	if err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepJSON(c, tenant)
}

func (rt *Router) getTenant(c *fiber.Ctx) error {
	id, err := paramId(c, "tenantId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	tenant, err := rt.Services.Tenant.GetTenant(id)
	if err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepJSON(c, tenant)
}

func (rt *Router) listTenants(c *fiber.Ctx) error {
	pageNum := queryInt(c, "pageNum", 1)
	pageSize := queryInt(c, "pageSize", 20)
	tenants, count, err := rt.Services.Tenant.ListTenants(pageNum, pageSize)
	if err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepJSON(c, fiber.Map{"items": tenants, "total": count})
}

func (rt *Router) updateTenant(c *fiber.Ctx) error {
	id, err := paramId(c, "tenantId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	var req model.UpdateTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	if err := rt.Services.Tenant.UpdateTenant(id, &req, callerOf(c)); err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) deleteTenant(c *fiber.Ctx) error {
	id, err := paramId(c, "tenantId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	if err := rt.Services.Tenant.DeleteTenant(id, callerOf(c)); err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}
