package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ieltszone/davomat/core/group"
)

type groupApi struct {
	svc      group.Service
	validate *validator.Validate
}

func registerGroupAPI(g *echo.Group, svc group.Service, validate *validator.Validate) {
	api := groupApi{
		svc:      svc,
		validate: validate,
	}

	gg := g.Group("/groups")
	gg.GET("", api.query)
	gg.GET("/:id/students", api.queryStudents)

	g.PUT("/students/:id", api.renameStudent)
}

// Handlers

func (api *groupApi) query(ctx echo.Context) error {
	groups, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying groups")
	}
	return ctx.JSON(http.StatusOK, groups)
}

func (api *groupApi) queryStudents(ctx echo.Context) error {
	// an unknown group yields an empty roster, not an error
	students, err := api.svc.QueryStudents(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *groupApi) renameStudent(ctx echo.Context) error {
	var data group.RenameStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RenameStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if err := api.svc.Rename(ctx.Request().Context(), ctx.Param("id"), data); err != nil {
		return errors.Wrap(err, "renaming student")
	}

	return ctx.JSON(http.StatusOK, ackResponse{Success: true})
}
