package record_test

import (
	"context"
	"testing"

	"github.com/volatiletech/null/v8"

	"github.com/ieltszone/davomat/core/group"
	"github.com/ieltszone/davomat/core/record"
	inmemdb "github.com/ieltszone/davomat/storage/database/inmem"
	testutil "github.com/ieltszone/davomat/tests"
)

func setup() (record.Service, group.Repository, record.Repository) {
	db := inmemdb.Open()
	groupRepo := inmemdb.NewGroupRepository(db)
	recordRepo := inmemdb.NewRecordRepository(db)
	svc := record.NewService(recordRepo, group.NewService(groupRepo))
	return svc, groupRepo, recordRepo
}

func getRecord(t *testing.T, repo record.Repository, studentID, date string) record.Record {
	rec, err := repo.GetRecordByStudentDate(context.Background(), studentID, date)
	if err != nil {
		t.Fatalf("GetRecordByStudentDate() failed: %v", err)
	}
	return rec
}

func checkFields(t *testing.T, rec record.Record, attendance, homework, note string) {
	if rec.Attendance != attendance || rec.Homework != homework || rec.Note != note {
		t.Errorf(
			"record fields = (%q, %q, %q); want (%q, %q, %q)",
			rec.Attendance, rec.Homework, rec.Note, attendance, homework, note,
		)
	}
}

func Test_service_Upsert(t *testing.T) {
	svc, groupRepo, recordRepo := setup()
	ctx := context.Background()

	grp := testutil.CreateGroup(t, groupRepo, "Group A (Morning)")
	std := testutil.CreateStudent(t, groupRepo, "Aziza", grp.ID)
	date := "2024-01-03"

	t.Run("first write defaults omitted fields to empty", func(t *testing.T) {
		rec, err := svc.Upsert(ctx, record.UpsertRecord{
			StudentID:  std.ID,
			Date:       date,
			Attendance: null.StringFrom("Keldi"),
		})
		if err != nil {
			t.Fatalf("Upsert() failed: %v", err)
		}
		checkFields(t, rec, "Keldi", "", "")
		checkFields(t, getRecord(t, recordRepo, std.ID, date), "Keldi", "", "")
	})

	t.Run("idempotence", func(t *testing.T) {
		before := getRecord(t, recordRepo, std.ID, date)
		if _, err := svc.Upsert(ctx, record.UpsertRecord{
			StudentID:  std.ID,
			Date:       date,
			Attendance: null.StringFrom("Keldi"),
		}); err != nil {
			t.Fatalf("Upsert() failed: %v", err)
		}
		after := getRecord(t, recordRepo, std.ID, date)
		if after.ID != before.ID {
			t.Errorf("Upsert() replaced the row: id %v -> %v", before.ID, after.ID)
		}
		checkFields(t, after, "Keldi", "", "")
	})

	t.Run("field independence", func(t *testing.T) {
		if _, err := svc.Upsert(ctx, record.UpsertRecord{
			StudentID: std.ID,
			Date:      date,
			Homework:  null.StringFrom("Topshirdi"),
		}); err != nil {
			t.Fatalf("Upsert() failed: %v", err)
		}
		// the homework-only write must not erase attendance
		checkFields(t, getRecord(t, recordRepo, std.ID, date), "Keldi", "Topshirdi", "")
	})

	t.Run("omitted field preserves stored value", func(t *testing.T) {
		if _, err := svc.Upsert(ctx, record.UpsertRecord{
			StudentID: std.ID,
			Date:      date,
			Note:      null.StringFrom("late by 10 min"),
		}); err != nil {
			t.Fatalf("Upsert() failed: %v", err)
		}
		checkFields(t, getRecord(t, recordRepo, std.ID, date), "Keldi", "Topshirdi", "late by 10 min")
	})

	t.Run("explicit empty clears stored value", func(t *testing.T) {
		if _, err := svc.Upsert(ctx, record.UpsertRecord{
			StudentID:  std.ID,
			Date:       date,
			Attendance: null.StringFrom(""),
		}); err != nil {
			t.Fatalf("Upsert() failed: %v", err)
		}
		checkFields(t, getRecord(t, recordRepo, std.ID, date), "", "Topshirdi", "late by 10 min")
	})

	t.Run("at most one record per (student, date)", func(t *testing.T) {
		grid, err := svc.Grid(ctx, record.GridQuery{GroupID: grp.ID, StartDate: date, EndDate: date})
		if err != nil {
			t.Fatalf("Grid() failed: %v", err)
		}
		if len(grid.Records) != 1 {
			t.Errorf("Grid() = %d records after repeated upserts; want 1", len(grid.Records))
		}
	})

	t.Run("different dates get their own rows", func(t *testing.T) {
		if _, err := svc.Upsert(ctx, record.UpsertRecord{
			StudentID:  std.ID,
			Date:       "2024-01-04",
			Attendance: null.StringFrom("Kelmadi"),
		}); err != nil {
			t.Fatalf("Upsert() failed: %v", err)
		}
		checkFields(t, getRecord(t, recordRepo, std.ID, "2024-01-04"), "Kelmadi", "", "")
		checkFields(t, getRecord(t, recordRepo, std.ID, date), "", "Topshirdi", "late by 10 min")
	})

	t.Run("unknown student", func(t *testing.T) {
		_, err := svc.Upsert(ctx, record.UpsertRecord{
			StudentID:  "lol",
			Date:       date,
			Attendance: null.StringFrom("Keldi"),
		})
		if err != record.ErrStudentNotFound {
			t.Errorf("Upsert(unknown student) error = %v; want %v", err, record.ErrStudentNotFound)
		}
	})
}

func Test_service_Upsert_raceAbsorbed(t *testing.T) {
	svc, groupRepo, _ := setup()
	ctx := context.Background()

	grp := testutil.CreateGroup(t, groupRepo, "Group A (Morning)")
	std := testutil.CreateStudent(t, groupRepo, "Aziza", grp.ID)

	// two concurrent first-writes to the same pair; the loser must retry as an
	// update instead of surfacing a duplicate-key error
	done := make(chan error, 2)
	upsert := func(ur record.UpsertRecord) {
		_, err := svc.Upsert(ctx, ur)
		done <- err
	}
	go upsert(record.UpsertRecord{StudentID: std.ID, Date: "2024-01-05", Attendance: null.StringFrom("Keldi")})
	go upsert(record.UpsertRecord{StudentID: std.ID, Date: "2024-01-05", Homework: null.StringFrom("Topshirdi")})
	for i := 0; i < 2; i++ {
		if err := <-done; err != nil {
			t.Errorf("concurrent Upsert() error = %v; want nil", err)
		}
	}

	grid, err := svc.Grid(ctx, record.GridQuery{GroupID: grp.ID, StartDate: "2024-01-05", EndDate: "2024-01-05"})
	if err != nil {
		t.Fatalf("Grid() failed: %v", err)
	}
	if len(grid.Records) != 1 {
		t.Fatalf("Grid() = %d records after concurrent upserts; want 1", len(grid.Records))
	}
	checkFields(t, grid.Records[0], "Keldi", "Topshirdi", "")
}

func Test_service_Grid(t *testing.T) {
	svc, groupRepo, recordRepo := setup()
	ctx := context.Background()

	g1 := testutil.CreateGroup(t, groupRepo, "Group A (Morning)")
	g2 := testutil.CreateGroup(t, groupRepo, "Group B (Afternoon)")
	s1 := testutil.CreateStudent(t, groupRepo, "Aziza", g1.ID)
	s2 := testutil.CreateStudent(t, groupRepo, "Bekzod", g1.ID)
	other := testutil.CreateStudent(t, groupRepo, "Dilnoza", g2.ID)

	inWindow1 := testutil.CreateRecord(t, recordRepo, s1.ID, "2024-01-01", "Keldi", "", "")
	inWindow2 := testutil.CreateRecord(t, recordRepo, s2.ID, "2024-01-07", "Kelmadi", "Topshirmadi", "")
	testutil.CreateRecord(t, recordRepo, s1.ID, "2024-01-08", "Keldi", "", "")       // past the window
	testutil.CreateRecord(t, recordRepo, s2.ID, "2023-12-31", "Keldi", "", "")       // before the window
	testutil.CreateRecord(t, recordRepo, other.ID, "2024-01-03", "Keldi", "", "")    // other group

	t.Run("window is inclusive and group-scoped", func(t *testing.T) {
		grid, err := svc.Grid(ctx, record.GridQuery{GroupID: g1.ID, StartDate: "2024-01-01", EndDate: "2024-01-07"})
		if err != nil {
			t.Fatalf("Grid() failed: %v", err)
		}
		if len(grid.Students) != 2 {
			t.Errorf("Grid() roster = %d students; want 2", len(grid.Students))
		}
		if len(grid.Records) != 2 {
			t.Fatalf("Grid() = %d records; want 2", len(grid.Records))
		}
		got := map[string]bool{grid.Records[0].ID: true, grid.Records[1].ID: true}
		if !got[inWindow1.ID] || !got[inWindow2.ID] {
			t.Errorf("Grid() records = %+v; want %v and %v", grid.Records, inWindow1.ID, inWindow2.ID)
		}
	})

	t.Run("inverted window yields empty records, full roster", func(t *testing.T) {
		grid, err := svc.Grid(ctx, record.GridQuery{GroupID: g1.ID, StartDate: "2024-01-10", EndDate: "2024-01-01"})
		if err != nil {
			t.Fatalf("Grid() failed: %v", err)
		}
		if len(grid.Records) != 0 {
			t.Errorf("Grid() = %d records; want 0", len(grid.Records))
		}
		if len(grid.Students) != 2 {
			t.Errorf("Grid() roster = %d students; want 2", len(grid.Students))
		}
	})

	t.Run("unknown group yields empty roster and records", func(t *testing.T) {
		grid, err := svc.Grid(ctx, record.GridQuery{GroupID: "lol", StartDate: "2024-01-01", EndDate: "2024-01-07"})
		if err != nil {
			t.Fatalf("Grid() failed: %v", err)
		}
		if len(grid.Students) != 0 || len(grid.Records) != 0 {
			t.Errorf("Grid(unknown group) = %+v; want empty", grid)
		}
	})

	t.Run("upserts are immediately visible", func(t *testing.T) {
		if _, err := svc.Upsert(ctx, record.UpsertRecord{
			StudentID: s1.ID,
			Date:      "2024-01-02",
			Homework:  null.StringFrom("Topshirdi"),
		}); err != nil {
			t.Fatalf("Upsert() failed: %v", err)
		}
		grid, err := svc.Grid(ctx, record.GridQuery{GroupID: g1.ID, StartDate: "2024-01-02", EndDate: "2024-01-02"})
		if err != nil {
			t.Fatalf("Grid() failed: %v", err)
		}
		if len(grid.Records) != 1 || grid.Records[0].Homework != "Topshirdi" {
			t.Errorf("Grid() after Upsert() = %+v; want the fresh record", grid.Records)
		}
	})
}
