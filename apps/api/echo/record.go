package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ieltszone/davomat/core"
	"github.com/ieltszone/davomat/core/record"
)

var errStudentNotFound = "student not found"

type recordApi struct {
	svc      record.Service
	validate *validator.Validate
}

func registerRecordAPI(g *echo.Group, svc record.Service, validate *validator.Validate) {
	api := recordApi{
		svc:      svc,
		validate: validate,
	}

	g.GET("/grid", api.grid)
	g.POST("/records", api.upsert)
}

// Handlers

func (api *recordApi) grid(ctx echo.Context) error {
	var data record.GridQuery
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GridQuery")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	grid, err := api.svc.Grid(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "assembling grid")
	}

	return ctx.JSON(http.StatusOK, grid)
}

func (api *recordApi) upsert(ctx echo.Context) error {
	var data record.UpsertRecord
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpsertRecord")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if _, err := api.svc.Upsert(ctx.Request().Context(), data); err != nil {
		if errors.Cause(err) == record.ErrStudentNotFound {
			return core.NewValidationError(nil, core.FieldError{Field: "student_id", Error: errStudentNotFound})
		}
		return errors.Wrap(err, "upserting record")
	}

	return ctx.JSON(http.StatusOK, ackResponse{Success: true})
}
