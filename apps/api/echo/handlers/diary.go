package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/darasani/shule/core/diary"
)

type diaryApi struct {
	service *diary.Service
}

func RegisterDiaryAPI(g *echo.Group, svc *diary.Service) {
	api := diaryApi{service: svc}

	g.POST("/homework/set", api.homeworkSet)
	g.POST("/homework/mark", api.homeworkMark)
	g.GET("/diary/:roll_no", api.diaryRetrieve)
	g.GET("/diary/:roll_no/:day", api.diaryRetrieveDay)
}

func (api *diaryApi) homeworkSet(ctx echo.Context) error {
	data := new(diary.NewHomework)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	tasks, err := api.service.SetHomework(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"day": data.Day, "tasks": tasks})
}

func (api *diaryApi) homeworkMark(ctx echo.Context) error {
	data := new(diary.MarkHomework)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	tasks, err := api.service.MarkHomework(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"day": data.Day, "tasks": tasks})
}

func (api *diaryApi) diaryRetrieve(ctx echo.Context) error {
	days, err := api.service.Get(ctx.Param("roll_no"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, days)
}

func (api *diaryApi) diaryRetrieveDay(ctx echo.Context) error {
	tasks, err := api.service.GetDay(ctx.Param("roll_no"), ctx.Param("day"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tasks)
}
