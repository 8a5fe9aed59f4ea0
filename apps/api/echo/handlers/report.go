package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/darasani/shule/core/report"
)

type reportApi struct {
	service *report.Service
}

func RegisterReportAPI(g *echo.Group, svc *report.Service) {
	api := reportApi{service: svc}

	g.POST("/report/log", api.reportLog)
	g.GET("/report/:roll_no", api.reportList)
}

func (api *reportApi) reportLog(ctx echo.Context) error {
	data := new(report.NewReport)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	rep, err := api.service.Log(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, rep)
}

func (api *reportApi) reportList(ctx echo.Context) error {
	reps, err := api.service.List(ctx.Param("roll_no"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, reps)
}
