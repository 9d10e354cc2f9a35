package inmemdb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/ieltszone/davomat/core/record"
)

type recordRepository struct {
	db *DB
}

var _ record.Repository = (*recordRepository)(nil) // interface compliance check

func NewRecordRepository(db *DB) *recordRepository {
	return &recordRepository{db: db}
}

func (repo recordRepository) GetRecordByStudentDate(_ context.Context, studentID, date string) (record.Record, error) {
	tbl := repo.db.record
	tbl.RLock()
	defer tbl.RUnlock()

	id, ok := tbl.byStudentDate[pairKey(studentID, date)]
	if !ok {
		return record.Record{}, record.ErrNotFound
	}
	return *tbl.table[id], nil
}

func (repo recordRepository) CreateRecord(_ context.Context, rec record.Record) (record.Record, error) {
	repo.db.student.RLock()
	_, studentExists := repo.db.student.table[rec.StudentID]
	repo.db.student.RUnlock()
	if !studentExists {
		return record.Record{}, record.ErrStudentNotFound
	}

	tbl := repo.db.record
	tbl.Lock()
	defer tbl.Unlock()

	key := pairKey(rec.StudentID, rec.Date)
	if _, exists := tbl.byStudentDate[key]; exists {
		return record.Record{}, record.ErrRecordExists
	}

	rec.ID = uuid.New().String()
	tbl.table[rec.ID] = &rec
	tbl.order = append(tbl.order, rec.ID)
	tbl.byStudentDate[key] = rec.ID
	return rec, nil
}

func (repo recordRepository) UpdateRecordFields(_ context.Context, id string, attendance, homework, note null.String) (record.Record, error) {
	tbl := repo.db.record
	tbl.Lock()
	defer tbl.Unlock()

	rec, ok := tbl.table[id]
	if !ok {
		return record.Record{}, record.ErrNotFound
	}

	// unset fields keep their stored value; set fields (even "") overwrite
	if attendance.Valid {
		rec.Attendance = attendance.String
	}
	if homework.Valid {
		rec.Homework = homework.String
	}
	if note.Valid {
		rec.Note = note.String
	}
	rec.UpdatedAt = time.Now().UTC()
	return *rec, nil
}

func (repo recordRepository) FilterRecords(_ context.Context, groupID, startDate, endDate string) ([]record.Record, error) {
	roster := make(map[string]bool)
	repo.db.student.RLock()
	for id, std := range repo.db.student.table {
		if std.GroupID == groupID {
			roster[id] = true
		}
	}
	repo.db.student.RUnlock()

	tbl := repo.db.record
	tbl.RLock()
	defer tbl.RUnlock()

	// ISO dates compare lexicographically; an inverted window matches nothing
	records := make([]record.Record, 0)
	for _, id := range tbl.order {
		rec := tbl.table[id]
		if roster[rec.StudentID] && startDate <= rec.Date && rec.Date <= endDate {
			records = append(records, *rec)
		}
	}
	return records, nil
}
