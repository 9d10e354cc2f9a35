package record

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/ieltszone/davomat/core/group"
)

var (
	// errors
	ErrNotFound        = errors.New("record not found")
	ErrRecordExists    = errors.New("a record for this student and date already exists")
	ErrStudentNotFound = errors.New("student not found")
)

type (
	Repository interface {
		// GetRecordByStudentDate fails with ErrNotFound when nothing has been
		// recorded for the pair yet.
		GetRecordByStudentDate(ctx context.Context, studentID, date string) (Record, error)
		// CreateRecord fails with ErrRecordExists when a row for the
		// (student, date) pair exists, and ErrStudentNotFound when the
		// referenced student does not exist.
		CreateRecord(ctx context.Context, rec Record) (Record, error)
		// UpdateRecordFields merges the provided fields into the stored row:
		// an invalid (unset) null.String leaves the stored value unchanged.
		UpdateRecordFields(ctx context.Context, id string, attendance, homework, note null.String) (Record, error)
		// FilterRecords returns records of the group's students whose date lies
		// in [startDate, endDate] inclusive. An inverted range matches nothing.
		FilterRecords(ctx context.Context, groupID, startDate, endDate string) ([]Record, error)
	}

	Service interface {
		Upsert(ctx context.Context, ur UpsertRecord) (Record, error)
		Grid(ctx context.Context, gq GridQuery) (Grid, error)
	}

	service struct {
		repo   Repository
		groups group.Service
	}
)

var _ Service = (*service)(nil) // interface compliance check

func NewService(repo Repository, groups group.Service) Service {
	return &service{
		repo:   repo,
		groups: groups,
	}
}

// Upsert writes one (student, date) cell edit: a field-wise merge when a row
// already exists for the pair, an insert with ""-defaults otherwise.
func (svc *service) Upsert(ctx context.Context, ur UpsertRecord) (Record, error) {
	rec, err := svc.repo.GetRecordByStudentDate(ctx, ur.StudentID, ur.Date)
	switch errors.Cause(err) {
	case nil:
		return svc.repo.UpdateRecordFields(ctx, rec.ID, ur.Attendance, ur.Homework, ur.Note)
	case ErrNotFound:
		now := time.Now().UTC()
		rec = Record{
			StudentID:  ur.StudentID,
			Date:       ur.Date,
			Attendance: ur.Attendance.String, // "" when unset
			Homework:   ur.Homework.String,
			Note:       ur.Note.String,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		created, err := svc.repo.CreateRecord(ctx, rec)
		if errors.Cause(err) == ErrRecordExists {
			// lost a concurrent first-write for the pair; merge into the winning row
			winner, err := svc.repo.GetRecordByStudentDate(ctx, ur.StudentID, ur.Date)
			if err != nil {
				return Record{}, errors.Wrap(err, "getting winning record")
			}
			return svc.repo.UpdateRecordFields(ctx, winner.ID, ur.Attendance, ur.Homework, ur.Note)
		}
		return created, err
	default:
		return Record{}, errors.Wrap(err, "getting record")
	}
}

// Grid assembles the full roster of a group plus all records stored for its
// students within the window. Reads hit storage directly every time so an
// upsert is visible to the next grid fetch.
func (svc *service) Grid(ctx context.Context, gq GridQuery) (Grid, error) {
	students, err := svc.groups.QueryStudents(ctx, gq.GroupID)
	if err != nil {
		return Grid{}, errors.Wrap(err, "querying roster")
	}
	records, err := svc.repo.FilterRecords(ctx, gq.GroupID, gq.StartDate, gq.EndDate)
	if err != nil {
		return Grid{}, errors.Wrap(err, "filtering records")
	}
	return Grid{Students: students, Records: records}, nil
}
