package group

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ieltszone/davomat/core"
)

// Group is a named cohort of students sharing a tracking grid.
type Group struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// Student is a tracked individual belonging to exactly one Group.
type Student struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	GroupID   string    `json:"group_id" db:"group_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// NewGroup contains information needed to create a new Group.
type NewGroup struct {
	Name string `json:"name" validate:"required"`
}

func (ng *NewGroup) Validate(validate *validator.Validate) error {
	ng.Name = core.CleanString(ng.Name)
	return validate.Struct(ng)
}

// NewStudent contains information needed to create a new Student.
// GroupID must reference an existing Group.
type NewStudent struct {
	Name    string `json:"name" validate:"required"`
	GroupID string `json:"group_id" validate:"required"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.GroupID = core.CleanString(ns.GroupID)
	return validate.Struct(ns)
}

// RenameStudent defines what information may be provided to rename an existing Student.
type RenameStudent struct {
	Name string `json:"name" validate:"required"`
}

func (rs *RenameStudent) Validate(validate *validator.Validate) error {
	rs.Name = core.CleanString(rs.Name)
	return validate.Struct(rs)
}
