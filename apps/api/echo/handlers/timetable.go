package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/darasani/shule/core/timetable"
)

type timetableApi struct {
	service *timetable.Service
}

func RegisterTimetableAPI(g *echo.Group, svc *timetable.Service) {
	api := timetableApi{service: svc}

	tg := g.Group("/timetable")
	tg.POST("", api.timetableBuild)
	tg.POST("/:grade/finalize", api.timetableFinalize)
	tg.GET("/:grade", api.timetableRetrieve)
	tg.GET("/:grade/:day", api.timetableRetrieveDay)
}

func (api *timetableApi) timetableBuild(ctx echo.Context) error {
	data := new(timetable.NewTimetable)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	tt, err := api.service.Build(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, tt)
}

func (api *timetableApi) timetableFinalize(ctx echo.Context) error {
	tt, err := api.service.Finalize(ctx.Param("grade"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tt)
}

func (api *timetableApi) timetableRetrieve(ctx echo.Context) error {
	tt, err := api.service.Get(ctx.Param("grade"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tt)
}

func (api *timetableApi) timetableRetrieveDay(ctx echo.Context) error {
	slots, err := api.service.GetDay(ctx.Param("grade"), ctx.Param("day"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, slots)
}
