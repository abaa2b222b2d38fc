package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"strengthgrid.dev/strength/internal/db"
	"strengthgrid.dev/strength/internal/echo"
)

// StatusCmd creates the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check database and cache connectivity and data coverage",
		Long:  "Display the state of the configured Postgres and Redis backends: row counts per table and per-competition coverage.",
		RunE:  status,
	}
}

func status(cmd *cobra.Command, args []string) error {
	echo.Header("Status")
	ctx := cmd.Context()

	echo.Info("Database:")

	database, err := db.Connect("")
	if err != nil {
		echo.Errorf("  ✗ Unable to connect: %v", err)
	} else {
		defer database.Close()
		echo.Success("  ✓ Connected")

		teamCount, teamErr := safeCount(ctx, database, `SELECT COUNT(*) FROM teams`)
		competitionCount, competitionErr := safeCount(ctx, database, `SELECT COUNT(*) FROM competitions`)
		ticCount, ticErr := safeCount(ctx, database, `SELECT COUNT(*) FROM team_in_competition`)
		matchCount, matchErr := safeCount(ctx, database, `SELECT COUNT(*) FROM matches`)

		if teamErr != nil {
			echo.Infof("  ⚠ Unable to read teams: %v", teamErr)
		} else {
			echo.Infof("  Teams: %d", teamCount)
		}
		if competitionErr != nil {
			echo.Infof("  ⚠ Unable to read competitions: %v", competitionErr)
		} else {
			echo.Infof("  Competitions: %d", competitionCount)
		}
		if ticErr != nil {
			echo.Infof("  ⚠ Unable to read team_in_competition: %v", ticErr)
		} else {
			echo.Infof("  Team-in-competition rows: %d", ticCount)
		}
		if matchErr != nil {
			echo.Infof("  ⚠ Unable to read matches: %v", matchErr)
		} else {
			echo.Infof("  Matches: %d", matchCount)
		}

		if ticCount > 0 {
			rows, err := database.QueryContext(ctx, `
				SELECT competition_id, season, COUNT(*),
				       COUNT(*) FILTER (WHERE overall_strength IS NOT NULL)
				FROM team_in_competition
				GROUP BY competition_id, season
				ORDER BY competition_id, season`)
			if err != nil {
				echo.Infof("  ⚠ Unable to read per-competition coverage: %v", err)
			} else {
				echo.Info("")
				echo.Info("  Coverage by competition+season:")
				for rows.Next() {
					var competitionID, season string
					var total, aggregated int64
					if err := rows.Scan(&competitionID, &season, &total, &aggregated); err != nil {
						continue
					}
					pct := 0.0
					if total > 0 {
						pct = float64(aggregated) / float64(total) * 100
					}
					echo.Infof("    %-16s %s  %d/%d aggregated (%.1f%%)", competitionID, season, aggregated, total, pct)
				}
				rows.Close()
			}
		}
	}

	echo.Info("")
	echo.Info("Cache:")
	if err := checkRedis(cmd); err != nil {
		echo.Errorf("  ✗ %v", err)
	} else {
		echo.Success("  ✓ Connected")
	}

	echo.Info("")
	echo.Success("✓ Status check completed")
	return nil
}

func checkRedis(cmd *cobra.Command) error {
	cfg, err := loadConfigForCmd(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("invalid Redis URL: %w", err)
	}

	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("unable to connect: %w", err)
	}
	return nil
}

func safeCount(ctx context.Context, database *db.DB, query string) (int64, error) {
	var count int64
	if err := database.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
