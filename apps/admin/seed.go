package main

import (
	"context"
	"fmt"

	"github.com/ieltszone/davomat/core/group"
)

// demo bootstrap data, matching the roster the frontend expects on first run
var (
	seedGroupNames       = []string{"Group A (Morning)", "Group B (Afternoon)", "Group C (Evening)"}
	seedStudentsPerGroup = 20
)

// seed populates demo groups and students once; it is a no-op when any
// group already exists.
func (cli *commandLine) seed() error {
	ctx := context.Background()

	groups, err := cli.groupSvc.QueryAll(ctx)
	if err != nil {
		return err
	}
	if len(groups) > 0 {
		logger.Println("groups already present; skipping seed")
		return nil
	}

	for _, name := range seedGroupNames {
		grp, err := cli.groupSvc.CreateGroup(ctx, group.NewGroup{Name: name})
		if err != nil {
			return err
		}
		for i := 1; i <= seedStudentsPerGroup; i++ {
			ns := group.NewStudent{Name: fmt.Sprintf("Student %d", i), GroupID: grp.ID}
			if _, err := cli.groupSvc.CreateStudent(ctx, ns); err != nil {
				return err
			}
		}
	}

	logger.Printf("seeded %d groups with %d students each\n", len(seedGroupNames), seedStudentsPerGroup)
	return nil
}
