package group_test

import (
	"context"
	"testing"

	"github.com/ieltszone/davomat/core/group"
	inmemdb "github.com/ieltszone/davomat/storage/database/inmem"
	testutil "github.com/ieltszone/davomat/tests"
)

func setup() (group.Service, group.Repository) {
	db := inmemdb.Open()
	repo := inmemdb.NewGroupRepository(db)
	return group.NewService(repo), repo
}

func Test_service_QueryAll(t *testing.T) {
	svc, repo := setup()
	ctx := context.Background()

	groups, err := svc.QueryAll(ctx)
	if err != nil {
		t.Fatalf("QueryAll() failed: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("QueryAll() = %d groups; want 0", len(groups))
	}

	g1 := testutil.CreateGroup(t, repo, "Group A (Morning)")
	g2 := testutil.CreateGroup(t, repo, "Group B (Afternoon)")
	g3 := testutil.CreateGroup(t, repo, "Group C (Evening)")

	groups, err = svc.QueryAll(ctx)
	if err != nil {
		t.Fatalf("QueryAll() failed: %v", err)
	}
	want := []string{g1.ID, g2.ID, g3.ID}
	if len(groups) != len(want) {
		t.Fatalf("QueryAll() = %d groups; want %d", len(groups), len(want))
	}
	// insertion order is preserved
	for i, grp := range groups {
		if grp.ID != want[i] {
			t.Errorf("QueryAll()[%d].ID = %v; want %v", i, grp.ID, want[i])
		}
	}
}

func Test_service_QueryStudents(t *testing.T) {
	svc, repo := setup()
	ctx := context.Background()

	g1 := testutil.CreateGroup(t, repo, "Group A (Morning)")
	g2 := testutil.CreateGroup(t, repo, "Group B (Afternoon)")
	s1 := testutil.CreateStudent(t, repo, "Aziza", g1.ID)
	s2 := testutil.CreateStudent(t, repo, "Bekzod", g1.ID)
	testutil.CreateStudent(t, repo, "Dilnoza", g2.ID)

	students, err := svc.QueryStudents(ctx, g1.ID)
	if err != nil {
		t.Fatalf("QueryStudents() failed: %v", err)
	}
	if len(students) != 2 || students[0].ID != s1.ID || students[1].ID != s2.ID {
		t.Errorf("QueryStudents() = %+v; want [%v %v]", students, s1.ID, s2.ID)
	}

	// an unknown group yields an empty roster, not an error
	students, err = svc.QueryStudents(ctx, "lol")
	if err != nil {
		t.Fatalf("QueryStudents() failed: %v", err)
	}
	if len(students) != 0 {
		t.Errorf("QueryStudents(unknown) = %d students; want 0", len(students))
	}
}

func Test_service_CreateStudent(t *testing.T) {
	svc, repo := setup()
	ctx := context.Background()

	grp := testutil.CreateGroup(t, repo, "Group A (Morning)")

	std, err := svc.CreateStudent(ctx, group.NewStudent{Name: "Aziza", GroupID: grp.ID})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	if std.ID == "" || std.GroupID != grp.ID {
		t.Errorf("CreateStudent() = %+v; want student in group %v", std, grp.ID)
	}

	// the referenced group must exist at creation time
	if _, err = svc.CreateStudent(ctx, group.NewStudent{Name: "Ghost", GroupID: "lol"}); err != group.ErrNotFound {
		t.Errorf("CreateStudent(unknown group) error = %v; want %v", err, group.ErrNotFound)
	}
}

func Test_service_Rename(t *testing.T) {
	svc, repo := setup()
	ctx := context.Background()

	grp := testutil.CreateGroup(t, repo, "Group A (Morning)")
	std := testutil.CreateStudent(t, repo, "Aziza", grp.ID)

	if err := svc.Rename(ctx, std.ID, group.RenameStudent{Name: "Aziza Karimova"}); err != nil {
		t.Fatalf("Rename() failed: %v", err)
	}
	students, _ := svc.QueryStudents(ctx, grp.ID)
	if len(students) != 1 || students[0].Name != "Aziza Karimova" {
		t.Errorf("Rename() did not stick; students = %+v", students)
	}

	// renaming an unknown student is a silent no-op
	if err := svc.Rename(ctx, "lol", group.RenameStudent{Name: "Nobody"}); err != nil {
		t.Errorf("Rename(unknown) error = %v; want nil", err)
	}
	students, _ = svc.QueryStudents(ctx, grp.ID)
	if len(students) != 1 || students[0].Name != "Aziza Karimova" {
		t.Errorf("Rename(unknown) touched the roster; students = %+v", students)
	}
}
