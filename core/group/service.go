package group

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	// errors
	ErrNotFound = errors.New("group not found")
)

type (
	Repository interface {
		CreateGroup(ctx context.Context, grp Group) (Group, error)
		// QueryAllGroups returns all groups in insertion order.
		QueryAllGroups(ctx context.Context) ([]Group, error)
		// CreateStudent fails with ErrNotFound if the referenced group does not exist.
		CreateStudent(ctx context.Context, std Student) (Student, error)
		// QueryStudentsByGroup returns an empty slice for an unknown group; not an error.
		QueryStudentsByGroup(ctx context.Context, groupID string) ([]Student, error)
		// RenameStudent is a silent no-op for an unknown student.
		RenameStudent(ctx context.Context, studentID, name string) error
	}

	Service interface {
		CreateGroup(ctx context.Context, ng NewGroup) (Group, error)
		QueryAll(ctx context.Context) ([]Group, error)
		CreateStudent(ctx context.Context, ns NewStudent) (Student, error)
		QueryStudents(ctx context.Context, groupID string) ([]Student, error)
		Rename(ctx context.Context, studentID string, rs RenameStudent) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil) // interface compliance check

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) CreateGroup(ctx context.Context, ng NewGroup) (Group, error) {
	now := time.Now().UTC()
	grp := Group{
		Name:      ng.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateGroup(ctx, grp)
}

func (svc *service) QueryAll(ctx context.Context) ([]Group, error) {
	return svc.repo.QueryAllGroups(ctx)
}

func (svc *service) CreateStudent(ctx context.Context, ns NewStudent) (Student, error) {
	now := time.Now().UTC()
	std := Student{
		Name:      ns.Name,
		GroupID:   ns.GroupID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateStudent(ctx, std)
}

func (svc *service) QueryStudents(ctx context.Context, groupID string) ([]Student, error) {
	return svc.repo.QueryStudentsByGroup(ctx, groupID)
}

func (svc *service) Rename(ctx context.Context, studentID string, rs RenameStudent) error {
	return svc.repo.RenameStudent(ctx, studentID, rs.Name)
}
