package main

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/mwalimu/darasa/bus/membus"
	"github.com/mwalimu/darasa/core/classroom"
	gradingsvc "github.com/mwalimu/darasa/services/grading"
	logsvc "github.com/mwalimu/darasa/services/logger"
	filestore "github.com/mwalimu/darasa/storage/document/file"
)

func setup(t *testing.T) *commandLine {
	t.Helper()
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags)

	logSvc := logsvc.NewConsoleLogger(logger)
	logSvc.Enable(false)
	store := filestore.New(filepath.Join(t.TempDir(), "darasa.json"), logSvc)
	svc := classroom.NewService(store, membus.New(), gradingsvc.NewDummyService(), logSvc)
	return &commandLine{svc: svc}
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
}

func Test_commandLine_run(t *testing.T) {
	tests := []cliTest{
		{name: "no args", args: nil, wantErr: errHelp},
		{name: "unknown command", args: []string{"dance"}, wantErr: errHelp},
		{name: "createclass missing flags", args: []string{"createclass", "-name", "Physics"}, wantErr: errHelp},
		{name: "createclass ok", args: []string{
			"createclass", "-name", "Physics", "-subject", "Science",
			"-teacher-id", "t1", "-teacher-name", "Mrs Otieno",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := setup(t)
			args := append([]string{"admin"}, tt.args...)
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_migrate_requires_postgres(t *testing.T) {
	cli := setup(t)
	if err := cli.run([]string{"admin", "migrate", "up"}); err == nil {
		t.Error("migrate ran without a database")
	}
}
