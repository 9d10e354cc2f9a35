package main

import (
	"context"

	"github.com/ieltszone/davomat/core/group"
)

func (cli *commandLine) addStudent(name, groupID string) error {
	ns := group.NewStudent{Name: name, GroupID: groupID}
	if err := ns.Validate(cli.validate); err != nil {
		return err
	}

	std, err := cli.groupSvc.CreateStudent(context.Background(), ns)
	if err != nil {
		return err
	}

	logger.Printf("student %q created with id %s in group %s\n", std.Name, std.ID, std.GroupID)
	return nil
}
