package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kkurihara/planboard/internal/cli"
	"github.com/kkurihara/planboard/internal/config"
	"github.com/kkurihara/planboard/internal/db"
	"github.com/kkurihara/planboard/internal/logging"
	"github.com/kkurihara/planboard/internal/repository"
	"github.com/kkurihara/planboard/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	logger := logging.New(cfg.Debug)

	dbPath := cfg.DBPath
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".planboard", "planboard.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	projectRepo := repository.NewSQLiteProjectRepo(database)
	nodeRepo := repository.NewSQLiteNodeRepo(database)
	holidayRepo := repository.NewSQLiteHolidayRepo(database)
	counterRepo := repository.NewSQLiteCounterRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(logger)

	app := &cli.App{
		Projects:  service.NewProjectService(projectRepo, uow),
		Nodes:     service.NewNodeService(nodeRepo, uow),
		Progress:  service.NewProgressService(nodeRepo, uow, observer),
		Tree:      service.NewTreeService(uow, observer),
		Stats:     service.NewStatsService(projectRepo, nodeRepo, holidayRepo),
		Allocator: service.NewAllocatorService(counterRepo, observer),
		Holidays:  service.NewHolidayService(holidayRepo),

		Logger:   logger,
		HTTPAddr: cfg.HTTPAddr,
	}

	return cli.NewRootCmd(app).Execute()
}
