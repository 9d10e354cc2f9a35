package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/ieltszone/davomat/core/group"
	"github.com/ieltszone/davomat/core/record"
)

func CreateGroup(t *testing.T, repo group.Repository, name string) group.Group {
	now := time.Now().UTC()
	grp, err := repo.CreateGroup(context.Background(), group.Group{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("createGroup() failed: %v", err)
	}
	return grp
}

func CreateStudent(t *testing.T, repo group.Repository, name, groupID string) group.Student {
	now := time.Now().UTC()
	std, err := repo.CreateStudent(context.Background(), group.Student{
		Name:      name,
		GroupID:   groupID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return std
}

func CreateRecord(t *testing.T, repo record.Repository, studentID, date, attendance, homework, note string) record.Record {
	now := time.Now().UTC()
	rec, err := repo.CreateRecord(context.Background(), record.Record{
		StudentID:  studentID,
		Date:       date,
		Attendance: attendance,
		Homework:   homework,
		Note:       note,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		t.Fatalf("createRecord() failed: %v", err)
	}
	return rec
}
