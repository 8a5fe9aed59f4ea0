package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/darasani/shule/core/attendance"
)

type attendanceApi struct {
	service *attendance.Service
}

func RegisterAttendanceAPI(g *echo.Group, svc *attendance.Service) {
	api := attendanceApi{service: svc}

	ag := g.Group("/attendance")
	ag.POST("/seed", api.attendanceSeed)
	ag.POST("/mark", api.attendanceMark)
	ag.GET("/:roll_no", api.attendanceList)
}

func (api *attendanceApi) attendanceSeed(ctx echo.Context) error {
	data := new(attendance.SeedRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	seeded, err := api.service.Seed(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, seeded)
}

func (api *attendanceApi) attendanceMark(ctx echo.Context) error {
	data := new(attendance.StatusUpdate)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	rec, err := api.service.UpdateStatus(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *attendanceApi) attendanceList(ctx echo.Context) error {
	recs, err := api.service.List(ctx.Param("roll_no"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, recs)
}
