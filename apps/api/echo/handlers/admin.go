package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/darasani/shule/core"
	"github.com/darasani/shule/storage/inmem"
)

var errHttpForbidden = echo.NewHTTPError(http.StatusForbidden, "forbidden")

type adminApi struct {
	registry *inmem.DB
	conf     *core.Config
}

func RegisterAdminAPI(g *echo.Group, registry *inmem.DB, conf *core.Config) {
	api := adminApi{registry: registry, conf: conf}

	g.POST("/admin/reset", api.adminReset)
}

// adminReset clears every store. Guarded by the configured admin token,
// when one is set.
func (api *adminApi) adminReset(ctx echo.Context) error {
	if token := api.conf.AdminToken; token != "" {
		provided := ctx.Request().Header.Get("X-Admin-Token")
		if provided == "" {
			provided = ctx.QueryParam("token")
		}
		if provided != token {
			return errHttpForbidden
		}
	}

	// a server without its registry cannot keep the stores consistent
	if api.registry == nil {
		return core.NewShutdownError("storage registry is not wired")
	}

	api.registry.Reset()
	return ctx.JSON(http.StatusOK, echo.Map{"message": "all data cleared"})
}
