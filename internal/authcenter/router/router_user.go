package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-arcade/authcenter/internal/authcenter/model"
	httpx "github.com/go-arcade/authcenter/pkg/http"
)

func (rt *Router) userRouter(r fiber.Router, auth fiber.Handler) {
	userGroup := r.Group("/users")
	{
		userGroup.Get("/", auth, rt.listUsers)
		userGroup.Post("/", auth, rt.addUser)
		userGroup.Get("/:userId", auth, rt.getUser)
		userGroup.Put("/:userId", auth, rt.updateUser)
		userGroup.Delete("/:userId", auth, rt.deleteUser)
		userGroup.Post("/:userId/unlock", auth, rt.unlockUser)

		userGroup.Get("/:userId/roles", auth, rt.rolesOfUser)
		userGroup.Post("/:userId/roles/:roleId", auth, rt.assignRole)
		userGroup.Delete("/:userId/roles/:roleId", auth, rt.revokeRole)

		userGroup.Get("/:userId/permissions", auth, rt.listUserPermissions)
		userGroup.Put("/:userId/permissions", auth, rt.setUserPermission)
		userGroup.Delete("/:userId/permissions/:name", auth, rt.unsetUserPermission)
	}
}

func (rt *Router) addUser(c *fiber.Ctx) error {
	var req model.AddUserRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	user, err := rt.Services.User.AddUser(tenantOf(c), &req, callerOf(c))
	if err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepJSON(c, model.UserInfo{
		Id:       user.ID,
		TenantId: user.TenantId,
		UserName: user.UserName,
		Name:     user.Name,
		Email:    user.Email,
		IsActive: user.IsActive,
	})
}

func (rt *Router) getUser(c *fiber.Ctx) error {
	id, err := paramId(c, "userId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	user, err := rt.Services.User.GetUser(tenantOf(c), id)
	if err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepJSON(c, user)
}

func (rt *Router) listUsers(c *fiber.Ctx) error {
	pageNum := queryInt(c, "pageNum", 1)
	pageSize := queryInt(c, "pageSize", 20)
	users, count, err := rt.Services.User.ListUsers(tenantOf(c), pageNum, pageSize)
	if err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepJSON(c, fiber.Map{"items": users, "total": count})
}

func (rt *Router) updateUser(c *fiber.Ctx) error {
	id, err := paramId(c, "userId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	var req model.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	if err := rt.Services.User.UpdateUser(tenantOf(c), id, &req, callerOf(c)); err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) deleteUser(c *fiber.Ctx) error {
	id, err := paramId(c, "userId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	if err := rt.Services.User.DeleteUser(tenantOf(c), id, callerOf(c)); err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) unlockUser(c *fiber.Ctx) error {
	id, err := paramId(c, "userId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	if err := rt.Services.User.UnlockUser(tenantOf(c), id); err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) rolesOfUser(c *fiber.Ctx) error {
	id, err := paramId(c, "userId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	roles, err := rt.Services.User.RolesOfUser(tenantOf(c), id)
	if err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepJSON(c, roles)
}

func (rt *Router) assignRole(c *fiber.Ctx) error {
	userId, err := paramId(c, "userId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	roleId, err := paramId(c, "roleId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	if err := rt.Services.User.AssignRole(tenantOf(c), userId, roleId, callerOf(c)); err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) revokeRole(c *fiber.Ctx) error {
	userId, err := paramId(c, "userId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	roleId, err := paramId(c, "roleId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	if err := rt.Services.User.RevokeRole(tenantOf(c), userId, roleId); err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) listUserPermissions(c *fiber.Ctx) error {
	id, err := paramId(c, "userId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	settings, err := rt.Services.Permission.ListUserPermissions(tenantOf(c), id)
	if err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepJSON(c, settings)
}

func (rt *Router) setUserPermission(c *fiber.Ctx) error {
	id, err := paramId(c, "userId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	var req model.SetPermissionRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	if err := rt.Services.Permission.SetUserPermission(tenantOf(c), id, &req, callerOf(c)); err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) unsetUserPermission(c *fiber.Ctx) error {
	id, err := paramId(c, "userId")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, httpx.BadRequest.Msg, c.Path())
	}
	if err := rt.Services.Permission.UnsetUserPermission(tenantOf(c), id, c.Params("name")); err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}
