package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/ieltszone/davomat/core/group"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db       *sqlx.DB
	groupSvc group.Service
	validate *validator.Validate
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run DB migrations (up|up-by-one|up-to|down|down-to|redo|reset|status|version|fix|create)")
	fmt.Println("  seed - load demo groups and students; skipped when groups already exist")
	fmt.Println("  addgroup -name NAME - create a group")
	fmt.Println("  addstudent -name NAME -group GROUP_ID - create a student in an existing group")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addGroupCmd := flag.NewFlagSet("addgroup", flag.ExitOnError)
	addGroupName := addGroupCmd.String("name", "", "The group's display name.")

	addStudentCmd := flag.NewFlagSet("addstudent", flag.ExitOnError)
	addStudentName := addStudentCmd.String("name", "", "The student's display name.")
	addStudentGroup := addStudentCmd.String("group", "", "The id of the group the student joins.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seed":
		return cli.seed()
	case "addgroup":
		if err := addGroupCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addGroupName == "" {
			addGroupCmd.Usage()
			return errHelp
		}
		return cli.addGroup(*addGroupName)
	case "addstudent":
		if err := addStudentCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addStudentName == "" || *addStudentGroup == "" {
			addStudentCmd.Usage()
			return errHelp
		}
		return cli.addStudent(*addStudentName, *addStudentGroup)
	default:
		cli.printUsage()
		return errHelp
	}
}
