package main

import (
	"fmt"

	"github.com/mwalimu/darasa/core/classroom"
)

func (cli *commandLine) createClass(nc classroom.NewClassroom) error {
	room, err := cli.svc.CreateClassroom(nc)
	if err != nil {
		return err
	}
	fmt.Printf("classroom %q created; share the join code %s\n", room.Name, room.ID)
	return nil
}
