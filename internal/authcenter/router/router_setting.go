package router

import (
	"github.com/gofiber/fiber/v2"

	httpx "github.com/go-arcade/authcenter/pkg/http"
)

func (rt *Router) settingRouter(r fiber.Router, auth fiber.Handler) {
	settingGroup := r.Group("/settings")
	{
		settingGroup.Get("/", auth, rt.listSettings)
		settingGroup.Get("/:name", auth, rt.getSetting)
		settingGroup.Put("/:name", auth, rt.setSetting)
		settingGroup.Delete("/:name", auth, rt.deleteSetting)
	}

	editionGroup := r.Group("/editions")
	{
		editionGroup.Get("/", auth, rt.listEditions)
		editionGroup.Post("/", auth, rt.createEdition)
	}
}

// settingUserScope returns the user scope of the request when the caller
// asked for its own settings (scope=user), nil for the tenant scope.
func settingUserScope(c *fiber.Ctx) *int64 {
	if c.Query("scope") == "user" {
		return callerOf(c)
	}
	return nil
}

func (rt *Router) listSettings(c *fiber.Ctx) error {
	settings, err := rt.Services.Setting.List(tenantOf(c), settingUserScope(c))
	if err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepJSON(c, settings)
}

// getSetting resolves one setting with scope fallback: user, tenant, host
func (rt *Router) getSetting(c *fiber.Ctx) error {
	value, err := rt.Services.Setting.GetValue(tenantOf(c), callerOf(c), c.Params("name"))
	if err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepJSON(c, fiber.Map{"name": c.Params("name"), "value": value})
}

func (rt *Router) setSetting(c *fiber.Ctx) error {
	var req struct {
		Value string `json:"value"`
	}
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	if err := rt.Services.Setting.SetValue(tenantOf(c), settingUserScope(c), c.Params("name"), req.Value); err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) deleteSetting(c *fiber.Ctx) error {
	if err := rt.Services.Setting.Delete(tenantOf(c), settingUserScope(c), c.Params("name")); err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) listEditions(c *fiber.Ctx) error {
	editions, err := rt.Services.Edition.ListEditions()
	if err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepJSON(c, editions)
}

func (rt *Router) createEdition(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		DisplayName string `json:"displayName"`
	}
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	edition, err := rt.Services.Edition.CreateEdition(req.Name, req.DisplayName, callerOf(c))
	if err != nil {
		return withErr(c, err)
	}
	return httpx.WithRepJSON(c, edition)
}
