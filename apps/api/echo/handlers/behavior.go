package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/darasani/shule/core/behavior"
)

type behaviorApi struct {
	service *behavior.Service
}

func RegisterBehaviorAPI(g *echo.Group, svc *behavior.Service) {
	api := behaviorApi{service: svc}

	g.POST("/behavior/record", api.behaviorRecord)
	g.GET("/behavior/:roll_no", api.behaviorList)
}

func (api *behaviorApi) behaviorRecord(ctx echo.Context) error {
	data := new(behavior.NewNote)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	note, err := api.service.Record(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, note)
}

func (api *behaviorApi) behaviorList(ctx echo.Context) error {
	notes, err := api.service.List(ctx.Param("roll_no"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, notes)
}
