package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/mwalimu/darasa/core/classroom"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	svc *classroom.Service
	db  *sql.DB // nil with the file store
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run goose database migrations (postgres store only)")
	fmt.Println("  createclass -name NAME -subject SUBJECT -teacher-id ID -teacher-name NAME [-grade GRADE] - create a classroom")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	createClassCmd := flag.NewFlagSet("createclass", flag.ExitOnError)
	createClassName := createClassCmd.String("name", "", "The classroom's name.")
	createClassSubject := createClassCmd.String("subject", "", "The classroom's subject.")
	createClassGrade := createClassCmd.String("grade", "", "The classroom's grade level.")
	createClassTeacherID := createClassCmd.String("teacher-id", "", "The owning teacher's id.")
	createClassTeacherName := createClassCmd.String("teacher-name", "", "The owning teacher's display name.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "createclass":
		if err := createClassCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *createClassName == "" || *createClassTeacherID == "" || *createClassTeacherName == "" {
			createClassCmd.Usage()
			return errHelp
		}
		return cli.createClass(classroom.NewClassroom{
			Name:        *createClassName,
			Subject:     *createClassSubject,
			Grade:       *createClassGrade,
			TeacherID:   *createClassTeacherID,
			TeacherName: *createClassTeacherName,
		})
	default:
		cli.printUsage()
		return errHelp
	}
}
