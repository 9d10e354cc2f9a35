package inmemdb

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ieltszone/davomat/core/group"
)

type groupRepository struct {
	db *DB
}

var _ group.Repository = (*groupRepository)(nil) // interface compliance check

func NewGroupRepository(db *DB) *groupRepository {
	return &groupRepository{db: db}
}

func (repo groupRepository) CreateGroup(_ context.Context, grp group.Group) (group.Group, error) {
	tbl := repo.db.group
	tbl.Lock()
	defer tbl.Unlock()

	grp.ID = uuid.New().String()
	tbl.table[grp.ID] = &grp
	tbl.order = append(tbl.order, grp.ID)
	return grp, nil
}

func (repo groupRepository) QueryAllGroups(_ context.Context) ([]group.Group, error) {
	tbl := repo.db.group
	tbl.RLock()
	defer tbl.RUnlock()

	groups := make([]group.Group, 0, len(tbl.order))
	for _, id := range tbl.order {
		groups = append(groups, *tbl.table[id])
	}
	return groups, nil
}

func (repo groupRepository) CreateStudent(_ context.Context, std group.Student) (group.Student, error) {
	repo.db.group.RLock()
	_, groupExists := repo.db.group.table[std.GroupID]
	repo.db.group.RUnlock()
	if !groupExists {
		return group.Student{}, group.ErrNotFound
	}

	tbl := repo.db.student
	tbl.Lock()
	defer tbl.Unlock()

	std.ID = uuid.New().String()
	tbl.table[std.ID] = &std
	tbl.order = append(tbl.order, std.ID)
	return std, nil
}

func (repo groupRepository) QueryStudentsByGroup(_ context.Context, groupID string) ([]group.Student, error) {
	tbl := repo.db.student
	tbl.RLock()
	defer tbl.RUnlock()

	students := make([]group.Student, 0)
	for _, id := range tbl.order {
		if std := tbl.table[id]; std.GroupID == groupID {
			students = append(students, *std)
		}
	}
	return students, nil
}

func (repo groupRepository) RenameStudent(_ context.Context, studentID, name string) error {
	tbl := repo.db.student
	tbl.Lock()
	defer tbl.Unlock()

	// an unknown student is not an error; nothing to touch
	if std, ok := tbl.table[studentID]; ok {
		std.Name = name
		std.UpdatedAt = time.Now().UTC()
	}
	return nil
}
