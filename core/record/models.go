package record

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/ieltszone/davomat/core"
	"github.com/ieltszone/davomat/core/group"
)

// Record is the attendance/homework/note state for one Student on one
// calendar date. At most one Record exists per (student, date) pair.
// Attendance and Homework hold free-form short tokens; "" means unset.
type Record struct {
	ID         string    `json:"id" db:"id"`
	StudentID  string    `json:"student_id" db:"student_id"`
	Date       string    `json:"date" db:"date"` // ISO YYYY-MM-DD
	Attendance string    `json:"attendance" db:"attendance"`
	Homework   string    `json:"homework" db:"homework"`
	Note       string    `json:"note" db:"note"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// UpsertRecord contains one cell edit for a student on a date.
// Status fields are nullable on purpose: a field absent from the request
// keeps the previously stored value, while a field explicitly set
// (including to "") overwrites it.
type UpsertRecord struct {
	StudentID  string      `json:"student_id" validate:"required"`
	Date       string      `json:"date" validate:"required,isodate"`
	Attendance null.String `json:"attendance"`
	Homework   null.String `json:"homework"`
	Note       null.String `json:"note"`
}

func (ur *UpsertRecord) Validate(validate *validator.Validate) error {
	ur.StudentID = core.CleanString(ur.StudentID)
	ur.Date = core.CleanString(ur.Date)
	return validate.Struct(ur)
}

// GridQuery bounds a grid fetch: one group over an inclusive date window.
// All fields are required; an inverted window is allowed and yields no records.
type GridQuery struct {
	GroupID   string `json:"group_id" query:"group_id" validate:"required"`
	StartDate string `json:"start_date" query:"start_date" validate:"required,isodate"`
	EndDate   string `json:"end_date" query:"end_date" validate:"required,isodate"`
}

func (gq *GridQuery) Validate(validate *validator.Validate) error {
	gq.GroupID = core.CleanString(gq.GroupID)
	gq.StartDate = core.CleanString(gq.StartDate)
	gq.EndDate = core.CleanString(gq.EndDate)
	return validate.Struct(gq)
}

// Grid pairs a group's full roster with the sparse record set stored for it
// within a window. Callers reconstruct the dense student×date view, treating
// missing (student, date) pairs as nothing-recorded-yet.
type Grid struct {
	Students []group.Student `json:"students"`
	Records  []Record        `json:"records"`
}
