package api

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"

	"strengthgrid.dev/strength/internal/config"
	"strengthgrid.dev/strength/internal/db"
	"strengthgrid.dev/strength/internal/testutils"
)

var (
	testServer  *Server
	testDB      *sql.DB
	testCleanup func()
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	projectRoot, err := testutils.GetProjectRoot()
	if err != nil {
		panic("failed to get project root: " + err.Error())
	}

	originalDir, err := os.Getwd()
	if err != nil {
		panic("failed to get current directory: " + err.Error())
	}

	if err := os.Chdir(projectRoot); err != nil {
		panic("failed to change to project root: " + err.Error())
	}

	container, err := testutils.NewPostgresContainer(ctx)
	if err != nil {
		panic("failed to create postgres container: " + err.Error())
	}

	testCleanup = func() {
		os.Chdir(originalDir)
		if err := container.Terminate(ctx); err != nil {
			panic("failed to terminate container: " + err.Error())
		}
	}

	database, err := db.Connect(container.ConnStr)
	if err != nil {
		testCleanup()
		panic("failed to connect to database: " + err.Error())
	}

	if err := database.Migrate(ctx); err != nil {
		testCleanup()
		panic("failed to run migrations: " + err.Error())
	}

	if err := container.LoadFixtures(ctx); err != nil {
		testCleanup()
		panic("failed to load fixtures: " + err.Error())
	}

	testDB = database.DB
	cfg := &config.Config{
		Season: "2025-26",
		Odds: config.OddsConfig{
			HomeBoostAlpha: 0.15,
			DrawBeta:       0.35,
			DrawK:          1.0,
			DrawMin:        0.18,
			DrawMax:        0.32,
			Margin:         0.05,
		},
	}
	testServer = NewServer(database, nil, cfg)

	code := m.Run()

	testCleanup()

	os.Exit(code)
}
