package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/ieltszone/davomat/core/record"
)

type recordRepository struct {
	db *sqlx.DB
}

var _ record.Repository = (*recordRepository)(nil) // interface compliance check

func NewRecordRepository(db *sqlx.DB) *recordRepository {
	return &recordRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to record.ErrNotFound
func (repo recordRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return record.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo recordRepository) GetRecordByStudentDate(ctx context.Context, studentID, date string) (record.Record, error) {
	var rec record.Record
	const q = `SELECT * FROM record WHERE student_id = $1 AND date = $2`
	if err := repo.db.GetContext(ctx, &rec, q, studentID, date); err != nil {
		return record.Record{}, repo.trapNoRowsErr(err, "getting record")
	}
	return rec, nil
}

func (repo recordRepository) CreateRecord(ctx context.Context, rec record.Record) (record.Record, error) {
	rec.ID = uuid.New().String()
	const q = `
		INSERT INTO record (id, student_id, date, attendance, homework, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := repo.db.ExecContext(ctx, q, rec.ID, rec.StudentID, rec.Date, rec.Attendance, rec.Homework, rec.Note, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case pgFKViolation:
				return record.Record{}, record.ErrStudentNotFound
			case pgUniqueViolation:
				return record.Record{}, record.ErrRecordExists
			}
		}
		return record.Record{}, errors.Wrap(err, "inserting record")
	}
	return rec, nil
}

func (repo recordRepository) UpdateRecordFields(ctx context.Context, id string, attendance, homework, note null.String) (record.Record, error) {
	var rec record.Record
	// NULL params (unset fields) keep the stored value; "" overwrites
	const q = `
		UPDATE record
		SET attendance = COALESCE($2, attendance),
		    homework   = COALESCE($3, homework),
		    note       = COALESCE($4, note),
		    updated_at = $5
		WHERE id = $1
		RETURNING *`
	if err := repo.db.GetContext(ctx, &rec, q, id, attendance, homework, note, time.Now().UTC()); err != nil {
		return record.Record{}, repo.trapNoRowsErr(err, "updating record")
	}
	return rec, nil
}

func (repo recordRepository) FilterRecords(ctx context.Context, groupID, startDate, endDate string) ([]record.Record, error) {
	records := make([]record.Record, 0)
	const q = `
		SELECT * FROM record
		WHERE student_id IN (SELECT id FROM student WHERE group_id = $1)
		AND date BETWEEN $2 AND $3
		ORDER BY date, student_id`
	if err := repo.db.SelectContext(ctx, &records, q, groupID, startDate, endDate); err != nil {
		return nil, errors.Wrap(err, "filtering records")
	}
	return records, nil
}
