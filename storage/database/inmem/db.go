// Package inmemdb is a mutex-guarded in-memory storage engine implementing
// the same repository contracts as the SQL engine. It backs the tests and
// serves as a zero-dependency run mode.
package inmemdb

import (
	"sync"

	"github.com/ieltszone/davomat/core/group"
	"github.com/ieltszone/davomat/core/record"
)

type (
	DB struct {
		group   *groupTable
		student *studentTable
		record  *recordTable
	}

	groupTable struct {
		sync.RWMutex
		table map[string]*group.Group
		order []string // insertion order
	}

	studentTable struct {
		sync.RWMutex
		table map[string]*group.Student
		order []string
	}

	recordTable struct {
		sync.RWMutex
		table map[string]*record.Record
		order []string
		// unique (student, date) index; guarded by the table lock so a
		// check-then-insert is atomic per pair
		byStudentDate map[string]string
	}
)

func Open() *DB {
	return &DB{
		group:   &groupTable{table: make(map[string]*group.Group)},
		student: &studentTable{table: make(map[string]*group.Student)},
		record: &recordTable{
			table:         make(map[string]*record.Record),
			byStudentDate: make(map[string]string),
		},
	}
}

func pairKey(studentID, date string) string {
	return studentID + "\x00" + date
}
