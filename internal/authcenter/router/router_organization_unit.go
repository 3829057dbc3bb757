package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-arcade/authcenter/internal/authcenter/model"
	httpx "github.com/go-arcade/authcenter/pkg/http"
)

func (rt *Router) organizationUnitRouter(r fiber.Router, auth fiber.Handler) {
	unitGroup := r.Group("/organization-units")
	{
		unitGroup.Get("/", auth, rt.listUnits)
		unitGroup.Post("/", auth, rt.createUnit)
		unitGroup.Get("/:unitId", auth, rt.getUnit)
		unitGroup.Put("/:unitId", auth, rt.renameUnit)
		unitGroup.Put("/:unitId/move", auth, rt.moveUnit)
		unitGroup.Delete("/:unitId", auth, rt.deleteUnit)
		unitGroup.Get("/:unitId/descendants", auth, rt.descendantsOfUnit)

		unitGroup.Get("/:unitId/members", auth, rt.membersOfUnit)
		unitGroup.Post("/:unitId/members/:userId", auth, rt.addUnitMember)
		unitGroup.Delete("/:unitId/members/:userId", auth, rt.removeUnitMember)

		unitGroup.Get("/:unitId/roles", auth, rt.rolesOfUnit)
		unitGroup.Post("/:unitId/roles/:roleId", auth, rt.attachUnitRole)
		unitGroup.Delete("/:unitId/roles/:roleId", auth, rt.detachUnitRole)
	}
}

func (rt *Router) createUnit(c *fiber.Ctx) error {
	var req model.CreateOrganizationUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	unit, err := rt.Services.OrganizationUnit.CreateUnit(tenantOf(c), &req, callerOf(c))
	if err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepJSON(c, unit)
}

func (rt *Router) getUnit(c *fiber.Ctx) error {
	id, err := paramId(c, "unitId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	unit, err := rt.Services.OrganizationUnit.GetUnit(tenantOf(c), id)
	if err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepJSON(c, unit)
}

// listUnits returns the whole tree in depth-first code order; a parentId
// query narrows it to direct children.
func (rt *Router) listUnits(c *fiber.Ctx) error {
	if c.Query("parentId") != "" {
		parentId := int64(queryInt(c, "parentId", 0))
		units, err := rt.Services.OrganizationUnit.ChildrenOf(tenantOf(c), &parentId)
		if err != nil {
			return withErr(c, err)
		}
		return httpx.WithRepJSON(c, units)
	}
	units, err := rt.Services.OrganizationUnit.ListUnits(tenantOf(c))
	if err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepJSON(c, units)
}

func (rt *Router) renameUnit(c *fiber.Ctx) error {
	id, err := paramId(c, "unitId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	var req struct {
		DisplayName string `json:"displayName"`
	}
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	if err := rt.Services.OrganizationUnit.RenameUnit(tenantOf(c), id, req.DisplayName, callerOf(c)); err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) moveUnit(c *fiber.Ctx) error {
	id, err := paramId(c, "unitId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	var req model.MoveOrganizationUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	if err := rt.Services.OrganizationUnit.MoveUnit(c.UserContext(), tenantOf(c), id, &req, callerOf(c)); err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) deleteUnit(c *fiber.Ctx) error {
	id, err := paramId(c, "unitId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	if err := rt.Services.OrganizationUnit.DeleteUnit(tenantOf(c), id, callerOf(c)); err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) descendantsOfUnit(c *fiber.Ctx) error {
	id, err := paramId(c, "unitId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	units, err := rt.Services.OrganizationUnit.DescendantsOf(tenantOf(c), id)
	if err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepJSON(c, units)
}

func (rt *Router) membersOfUnit(c *fiber.Ctx) error {
	id, err := paramId(c, "unitId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	userIds, err := rt.Services.OrganizationUnit.MembersOfUnit(tenantOf(c), id)
	if err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepJSON(c, userIds)
}

func (rt *Router) addUnitMember(c *fiber.Ctx) error {
	unitId, err := paramId(c, "unitId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	userId, err := paramId(c, "userId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	if err := rt.Services.OrganizationUnit.AddMember(tenantOf(c), unitId, userId, callerOf(c)); err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) removeUnitMember(c *fiber.Ctx) error {
	unitId, err := paramId(c, "unitId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	userId, err := paramId(c, "userId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	if err := rt.Services.OrganizationUnit.RemoveMember(tenantOf(c), unitId, userId); err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) rolesOfUnit(c *fiber.Ctx) error {
	id, err := paramId(c, "unitId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	includeAncestors := c.Query("includeAncestors") == "true"
	roles, err := rt.Services.OrganizationUnit.RolesOfUnit(tenantOf(c), id, includeAncestors)
	if err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepJSON(c, roles)
}

func (rt *Router) attachUnitRole(c *fiber.Ctx) error {
	unitId, err := paramId(c, "unitId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	roleId, err := paramId(c, "roleId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	if err := rt.Services.OrganizationUnit.AttachRole(tenantOf(c), unitId, roleId, callerOf(c)); err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) detachUnitRole(c *fiber.Ctx) error {
	unitId, err := paramId(c, "unitId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	roleId, err := paramId(c, "roleId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	if err := rt.Services.OrganizationUnit.DetachRole(tenantOf(c), unitId, roleId); err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}
