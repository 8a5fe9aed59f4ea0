package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/darasani/shule/core/student"
)

type studentApi struct {
	service *student.Service
}

func RegisterStudentAPI(g *echo.Group, svc *student.Service) {
	api := studentApi{service: svc}

	sg := g.Group("/students")
	sg.POST("", api.studentRegister)
	sg.GET("", api.studentQuery)
	sg.GET("/:roll_no", api.studentRetrieve)
	sg.GET("/:roll_no/contacts", api.studentContacts)
	sg.POST("/:roll_no/contacts", api.studentSetContacts)
}

func (api *studentApi) studentRegister(ctx echo.Context) error {
	data := new(student.NewStudent)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.service); err != nil {
		return err
	}

	stu, err := api.service.Register(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, stu)
}

func (api *studentApi) studentQuery(ctx echo.Context) error {
	if grade := ctx.QueryParam("grade"); grade != "" {
		studs, err := api.service.FilterByGrade(grade)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, studs)
	}

	studs, err := api.service.QueryAll()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, studs)
}

func (api *studentApi) studentRetrieve(ctx echo.Context) error {
	stu, err := api.service.GetByRollNo(ctx.Param("roll_no"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, stu)
}

func (api *studentApi) studentContacts(ctx echo.Context) error {
	stu, err := api.service.GetByRollNo(ctx.Param("roll_no"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"parent_emails": stu.ParentEmails})
}

func (api *studentApi) studentSetContacts(ctx echo.Context) error {
	data := new(student.UpdateContacts)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	stu, err := api.service.SetParentContacts(ctx.Param("roll_no"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"parent_emails": stu.ParentEmails})
}
