package main

import (
	"context"

	"github.com/ieltszone/davomat/core/group"
)

func (cli *commandLine) addGroup(name string) error {
	ng := group.NewGroup{Name: name}
	if err := ng.Validate(cli.validate); err != nil {
		return err
	}

	grp, err := cli.groupSvc.CreateGroup(context.Background(), ng)
	if err != nil {
		return err
	}

	logger.Printf("group %q created with id %s\n", grp.Name, grp.ID)
	return nil
}
