package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"strengthgrid.dev/strength/internal/db"
	"strengthgrid.dev/strength/internal/echo"
)

type deployOptions struct {
	registry    string
	tag         string
	push        bool
	skipBuild   bool
	skipMigrate bool
	skipCollect bool
	season      string
	dryRun      bool
}

// DeployCmd creates the deploy command group
func DeployCmd() *cobra.Command {
	var (
		registry    string
		tag         string
		push        bool
		skipBuild   bool
		skipMigrate bool
		skipCollect bool
		season      string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Build, push, and roll out the Strength Grid API",
		Long: `Build Docker image, push to registry, and run post-deploy steps.

This command helps with the deployment workflow:
  1. Build Docker image (unless --skip-build)
  2. Tag with version and latest
  3. Push to Docker registry (if --push)
  4. Run migrations (unless --skip-migrate)
  5. Run a collection cycle (unless --skip-collect)

Examples:
  # Dry run - see what would happen
  strength deploy --tag v1.0.0 --registry username --push --dry-run

  # Build, tag, and push to DockerHub
  strength deploy --tag v1.0.0 --registry username --push

  # Just push existing image (skip build)
  strength deploy --tag v1.0.0 --registry username --push --skip-build`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd, deployOptions{
				registry:    registry,
				tag:         tag,
				push:        push,
				skipBuild:   skipBuild,
				skipMigrate: skipMigrate,
				skipCollect: skipCollect,
				season:      season,
				dryRun:      dryRun,
			})
		},
	}

	cmd.Flags().StringVar(&registry, "registry", "", "Docker registry/username (e.g., 'username' for DockerHub)")
	cmd.Flags().StringVar(&tag, "tag", "latest", "Image tag/version (e.g., 'v1.0.0' or 'latest')")
	cmd.Flags().BoolVar(&push, "push", false, "Push image to Docker registry")
	cmd.Flags().BoolVar(&skipBuild, "skip-build", false, "Skip building the image")
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Skip running database migrations")
	cmd.Flags().BoolVar(&skipCollect, "skip-collect", false, "Skip running a collection cycle after migrating")
	cmd.Flags().StringVar(&season, "season", "", "Season to collect after deploy (defaults to config's season)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be executed without running commands")
	return cmd
}

func runDeploy(cmd *cobra.Command, opts deployOptions) error {
	if opts.dryRun {
		echo.Header("Strength Grid Deployment (DRY RUN)")
		echo.Info("Dry run mode - no commands will be executed")
		echo.Info("")
	} else {
		echo.Header("Strength Grid Deployment")
	}

	imageName := "strengthgrid-app"
	fullImageName := imageName

	if opts.registry != "" {
		fullImageName = opts.registry + "/" + imageName
	}

	taggedImage := fullImageName + ":" + opts.tag
	latestImage := fullImageName + ":latest"

	if !opts.skipBuild {
		echo.Info("Building Docker image...")
		echo.Infof("  Image: %s", taggedImage)

		buildCmd := fmt.Sprintf("docker build -t %s -t %s .", taggedImage, latestImage)
		echo.Infof("  Would run: %s", buildCmd)

		if !opts.dryRun {
			if err := runShellCommand(buildCmd); err != nil {
				return fmt.Errorf("error: failed to build Docker image: %w", err)
			}
			echo.Success("✓ Docker image built successfully")
		}
	} else {
		echo.Info("Skipping Docker build (--skip-build)")
	}

	if opts.push {
		if opts.registry == "" {
			return fmt.Errorf("error: --registry is required when using --push")
		}

		echo.Info("")
		echo.Info("Pushing images to Docker registry...")
		echo.Infof("  Registry: %s", opts.registry)

		if !opts.dryRun {
			echo.Info("  Checking Docker authentication...")
			checkCmd := "docker info --format '{{.RegistryConfig.IndexConfigs}}'"
			if err := runShellCommand(checkCmd); err != nil {
				echo.Info("")
				echo.Info("⚠ Docker authentication check failed")
				echo.Info("")
				echo.Info("To authenticate with DockerHub, run:")
				echo.Infof("  docker login -u %s", opts.registry)
				echo.Info("")
				return fmt.Errorf("error: Docker authentication required")
			}
			echo.Info("  ✓ Docker authenticated")
		}

		for _, img := range []string{taggedImage, latestImage} {
			pushCmd := fmt.Sprintf("docker push %s", img)
			echo.Infof("  Would run: %s", pushCmd)

			if !opts.dryRun {
				if err := runShellCommand(pushCmd); err != nil {
					echo.Info("")
					echo.Info("Push failed. Make sure you're logged in:")
					echo.Infof("  docker login -u %s", opts.registry)
					return fmt.Errorf("error: failed to push %s: %w", img, err)
				}
			}
		}

		if !opts.dryRun {
			echo.Success("✓ Images pushed successfully")
		}
	}

	if !opts.skipMigrate {
		echo.Info("")
		echo.Info("Running database migrations...")

		if opts.dryRun {
			echo.Info("  Would run: strength db migrate")
		} else {
			database, err := db.Connect("")
			if err != nil {
				return fmt.Errorf("error: failed to connect to database: %w", err)
			}

			if err := database.Migrate(cmd.Context()); err != nil {
				database.Close()
				return fmt.Errorf("error: failed to run migrations: %w", err)
			}
			database.Close()
			echo.Success("✓ Migrations applied")
		}
	} else {
		echo.Info("Skipping migrations (--skip-migrate)")
	}

	if !opts.skipCollect {
		echo.Info("")
		echo.Info("Running collection cycle...")

		if opts.dryRun {
			echo.Info("  Would run: strength collect")
		} else {
			if err := runCollect(cmd, opts.season, nil, nil); err != nil {
				return fmt.Errorf("error: collection cycle failed: %w", err)
			}
		}
	} else {
		echo.Info("Skipping collection cycle (--skip-collect)")
	}

	echo.Info("")
	if opts.dryRun {
		echo.Success("✓ Dry run complete - no changes made")
		echo.Info("")
		echo.Info("To execute for real, remove the --dry-run flag")
	} else {
		echo.Success("✓ Deployment complete")
		echo.Info("")
		echo.Info("Next steps for production deployment:")
		echo.Info("  1. Update docker-compose.yml on server")
		echo.Info("  2. Set environment variables (DATABASE_URL, REDIS_URL)")
		echo.Info("  3. Run: docker-compose pull && docker-compose up -d")
		echo.Info("  4. Monitor logs: docker-compose logs -f app")
	}

	return nil
}

// runShellCommand executes a shell command and streams output to stdout/stderr.
func runShellCommand(cmdStr string) error {
	shell := "/bin/sh"
	if runtime := os.Getenv("SHELL"); runtime != "" {
		shell = runtime
	}

	cmd := exec.Command(shell, "-c", cmdStr)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
