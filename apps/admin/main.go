package main

import (
	"log"
	"os"

	"github.com/mwalimu/darasa/bus/membus"
	"github.com/mwalimu/darasa/bus/pqbus"
	"github.com/mwalimu/darasa/core"
	"github.com/mwalimu/darasa/core/classroom"
	gradingsvc "github.com/mwalimu/darasa/services/grading"
	logsvc "github.com/mwalimu/darasa/services/logger"
	filestore "github.com/mwalimu/darasa/storage/document/file"
	sqlxstore "github.com/mwalimu/darasa/storage/document/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logSvc := logsvc.NewConsoleLogger(logger)

	cli := commandLine{}

	// set up the store & change bus
	switch core.Conf.Store.Backend {
	case "postgres":
		db, err := sqlxstore.Open(core.Conf)
		errAndDie(err)
		defer db.Close()
		cli.db = db.DB

		bus, err := pqbus.New(core.Conf.Database.DSN(), core.Conf.BusChannel, logSvc)
		errAndDie(err)
		defer bus.Close()

		cli.svc = classroom.NewService(
			sqlxstore.New(db, core.Conf.Store.Key, logSvc), bus,
			gradingsvc.NewDummyService(), logSvc,
		)
	default:
		cli.svc = classroom.NewService(
			filestore.New(core.Conf.Store.Path, logSvc), membus.New(),
			gradingsvc.NewDummyService(), logSvc,
		)
	}

	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
