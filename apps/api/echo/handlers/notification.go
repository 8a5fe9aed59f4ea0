package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/darasani/shule/core"
	"github.com/darasani/shule/core/notification"
)

type notificationApi struct {
	service *notification.Service
}

// NotifyRequest is the payload of POST /notify/parents.
type NotifyRequest struct {
	RollNo      string   `json:"roll_no" validate:"required"`
	Day         string   `json:"day"`
	Date        string   `json:"date"`
	To          []string `json:"to"`
	PreviewOnly bool     `json:"preview_only"`
}

func (nr *NotifyRequest) Validate() error {
	nr.RollNo = core.CleanString(nr.RollNo)
	return core.Validate.Struct(nr)
}

func RegisterNotificationAPI(g *echo.Group, svc *notification.Service) {
	api := notificationApi{service: svc}

	g.POST("/notify/parents", api.notifyParents)
}

func (api *notificationApi) notifyParents(ctx echo.Context) error {
	data := new(NotifyRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	opts := notification.Options{
		Day:         data.Day,
		Date:        data.Date,
		To:          data.To,
		PreviewOnly: data.PreviewOnly,
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	n, err := api.service.Notify(data.RollNo, opts)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, n)
}
