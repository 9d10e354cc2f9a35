package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/ieltszone/davomat/core/group"
)

type groupRepository struct {
	db *sqlx.DB
}

var _ group.Repository = (*groupRepository)(nil) // interface compliance check

func NewGroupRepository(db *sqlx.DB) *groupRepository {
	return &groupRepository{db: db}
}

func (repo groupRepository) CreateGroup(ctx context.Context, grp group.Group) (group.Group, error) {
	grp.ID = uuid.New().String()
	const q = `INSERT INTO "group" (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`
	if _, err := repo.db.ExecContext(ctx, q, grp.ID, grp.Name, grp.CreatedAt, grp.UpdatedAt); err != nil {
		return group.Group{}, errors.Wrap(err, "inserting group")
	}
	return grp, nil
}

func (repo groupRepository) QueryAllGroups(ctx context.Context) ([]group.Group, error) {
	groups := make([]group.Group, 0)
	const q = `SELECT * FROM "group" ORDER BY created_at, id`
	if err := repo.db.SelectContext(ctx, &groups, q); err != nil {
		return nil, errors.Wrap(err, "querying groups")
	}
	return groups, nil
}

func (repo groupRepository) CreateStudent(ctx context.Context, std group.Student) (group.Student, error) {
	std.ID = uuid.New().String()
	const q = `INSERT INTO student (id, name, group_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := repo.db.ExecContext(ctx, q, std.ID, std.Name, std.GroupID, std.CreatedAt, std.UpdatedAt); err != nil {
		return group.Student{}, trapFKViolation(err, group.ErrNotFound, "inserting student")
	}
	return std, nil
}

func (repo groupRepository) QueryStudentsByGroup(ctx context.Context, groupID string) ([]group.Student, error) {
	students := make([]group.Student, 0)
	const q = `SELECT * FROM student WHERE group_id = $1 ORDER BY created_at, id`
	if err := repo.db.SelectContext(ctx, &students, q, groupID); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return students, nil
}

func (repo groupRepository) RenameStudent(ctx context.Context, studentID, name string) error {
	// a vanished student is not an error; the update simply touches no row
	const q = `UPDATE student SET name = $2, updated_at = now() WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, q, studentID, name); err != nil {
		return errors.Wrap(err, "renaming student")
	}
	return nil
}

// pg error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation = pq.ErrorCode("23505")
	pgFKViolation     = pq.ErrorCode("23503")
)

// trapFKViolation maps a psql foreign-key violation to target.
func trapFKViolation(err, target error, msg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgFKViolation {
		return target
	}
	return errors.Wrap(err, msg)
}
