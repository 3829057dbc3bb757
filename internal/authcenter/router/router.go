package router

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-arcade/authcenter/internal/authcenter/authz"
	"github.com/go-arcade/authcenter/internal/authcenter/repo"
	"github.com/go-arcade/authcenter/internal/authcenter/service"
	"github.com/go-arcade/authcenter/pkg/ctx"
	httpx "github.com/go-arcade/authcenter/pkg/http"
	"github.com/go-arcade/authcenter/pkg/http/jwt"
	"github.com/go-arcade/authcenter/pkg/id"
	"github.com/go-arcade/authcenter/pkg/http/middleware"
	"github.com/go-arcade/authcenter/pkg/version"
)

/**
 * @file: router.go
 * @description: admin api router
 */

type Services struct {
	Tenant           *service.TenantService
	User             *service.UserService
	Role             *service.RoleService
	Permission       *service.PermissionService
	OrganizationUnit *service.OrganizationUnitService
	Authz            *service.AuthzService
	Setting          *service.SettingService
	Edition          *service.EditionService
}

type Router struct {
	Http     *httpx.Http
	Ctx      *ctx.Context
	Services *Services
}

func NewRouter(httpConf *httpx.Http, appCtx *ctx.Context, services *Services) *Router {
	return &Router{
		Http:     httpConf,
		Ctx:      appCtx,
		Services: services,
	}
}

func (rt *Router) Router() *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(rt.Http.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(rt.Http.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(rt.Http.IdleTimeout) * time.Second,
	})

	app.Use(fiberrecover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: id.GetULID,
	}))
	if rt.Http.AccessLog {
		app.Use(fiberlogger.New())
	}

	if rt.Http.ExposeMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	auth := middleware.AuthorizationMiddleware(rt.Http.Auth.SecretKey)

	api := app.Group(rt.Http.ContextPath)
	{
		rt.tenantRouter(api, auth)
		rt.userRouter(api, auth)
		rt.roleRouter(api, auth)
		rt.organizationUnitRouter(api, auth)
		rt.permissionRouter(api, auth)
		rt.settingRouter(api, auth)
	}

	return app
}

// claimsOf returns the verified claims set by the authorization middleware.
func claimsOf(c *fiber.Ctx) *jwt.AuthClaims {
	claims, _ := c.Locals(middleware.ClaimsKey).(*jwt.AuthClaims)
	return claims
}

// tenantOf returns the tenant partition of the request: nil for host-side
// principals.
func tenantOf(c *fiber.Ctx) *int64 {
	claims := claimsOf(c)
	if claims == nil {
		return nil
	}
	return claims.TenantId
}

// callerOf returns the caller's user id for audit fields.
func callerOf(c *fiber.Ctx) *int64 {
	claims := claimsOf(c)
	if claims == nil {
		return nil
	}
	return &claims.UserId
}

func paramId(c *fiber.Ctx, name string) (int64, error) {
	return strconv.ParseInt(c.Params(name), 10, 64)
}

func queryInt(c *fiber.Ctx, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// failureOf maps service and store errors onto the response code table.
func failureOf(err error) *httpx.Response {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return httpx.NotFound
	case errors.Is(err, repo.ErrStaleWrite):
		return httpx.StaleWrite
	case errors.Is(err, repo.ErrDuplicateAssignment):
		return httpx.DuplicateAssignment
	case errors.Is(err, service.ErrCyclicHierarchy):
		return httpx.CyclicHierarchy
	case errors.Is(err, service.ErrStaticRoleImmutable):
		return httpx.StaticRoleImmutable
	case errors.Is(err, service.ErrAdminUserProtected):
		return httpx.AdminUserProtected
	case errors.Is(err, service.ErrAlreadyExists):
		return httpx.BadRequest
	case errors.Is(err, service.ErrInvalidTenancyName),
		errors.Is(err, service.ErrMaxDepthExceeded),
		errors.Is(err, service.ErrUnitNotEmpty):
		return httpx.BadRequest
	case errors.Is(err, authz.ErrUnknownPermission):
		return httpx.PermissionNotExist
	case errors.Is(err, authz.ErrUnknownPrincipal):
		return httpx.UserNotExist
	case errors.Is(err, authz.ErrUnknownTenant):
		return httpx.TenantNotExist
	case errors.Is(err, authz.ErrTenantNotActive):
		return httpx.TenantInactive
	case errors.Is(err, authz.ErrUserNotActive):
		return httpx.AccountInactive
	case errors.Is(err, authz.ErrUserLockedOut):
		return httpx.AccountLocked
	default:
		return httpx.Failed
	}
}

func withErr(c *fiber.Ctx, err error) error {
	f := failureOf(err)
	msg := f.Msg
	if f == httpx.Failed || f == httpx.BadRequest {
		msg = err.Error()
	}
	return httpx.WithRepErrMsg(c, f.Code, msg, c.Path())
}
