// Command migrate applies, inspects and rolls back the SkillShare schema.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"skillshare/internal/config"
	"skillshare/internal/database"
	"skillshare/internal/middleware"
)

const usageText = `usage: skillshare-migrate <command> [args]

commands:
  up              apply pending SQL migrations
  auto            run GORM AutoMigrate over every model
  status          show schema mode and applied/pending migrations
  down <version>  roll back one applied migration, e.g. down 1`

var errUsage = errors.New("invalid arguments")

func main() {
	flag.Usage = func() { fmt.Fprintln(flag.CommandLine.Output(), usageText) }
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	middleware.InitLogger(os.Stdout, cfg.Env, cfg.LogLevel, cfg.LogFormat)

	if err := run(context.Background(), cfg, flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usageText)
			os.Exit(2)
		}
		slog.Error("migrate failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// parseCommand validates args before any database connection is opened.
func parseCommand(args []string) (cmd string, version int, err error) {
	if len(args) < 1 {
		return "", 0, errUsage
	}
	cmd = strings.ToLower(strings.TrimSpace(args[0]))
	switch cmd {
	case "up", "auto", "status":
		return cmd, 0, nil
	case "down":
		if len(args) < 2 {
			return "", 0, errUsage
		}
		version, err = strconv.Atoi(args[1])
		if err != nil || version <= 0 {
			return "", 0, fmt.Errorf("%w: invalid version %q", errUsage, args[1])
		}
		return cmd, version, nil
	default:
		return "", 0, errUsage
	}
}

func run(ctx context.Context, cfg *config.Config, args []string) error {
	cmd, version, err := parseCommand(args)
	if err != nil {
		return err
	}

	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: false})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	switch cmd {
	case "up":
		if err := database.RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("sql migrations: %w", err)
		}
		slog.Info("sql migrations applied")
	case "auto":
		cfg.DBSchemaMode = database.SchemaModeAuto
		if err := database.ApplySchema(ctx, db, cfg); err != nil {
			return fmt.Errorf("auto schema apply: %w", err)
		}
		slog.Info("automigrate applied")
	case "status":
		status, err := database.GetSchemaStatus(ctx, db, cfg)
		if err != nil {
			return fmt.Errorf("schema status: %w", err)
		}
		all, err := database.GetMigrations()
		if err != nil {
			return err
		}
		printStatus(os.Stdout, status, all)
	case "down":
		if err := database.RollbackMigration(ctx, db, version); err != nil {
			return fmt.Errorf("rollback %d: %w", version, err)
		}
		slog.Info("migration rolled back", slog.Int("version", version))
	}
	return nil
}

// printStatus lists every embedded migration by name with its state.
func printStatus(w io.Writer, status *database.SchemaStatus, all []database.Migration) {
	fmt.Fprintf(w, "mode=%s env=%s run_sql=%t run_auto=%t\n",
		status.Mode, status.Environment, status.WillRunSQL, status.WillRunAutoMigrate)

	applied := make(map[int]bool, len(status.AppliedVersions))
	for _, v := range status.AppliedVersions {
		applied[v] = true
	}
	for i := range all {
		state := "pending"
		if applied[all[i].Version] {
			state = "applied"
		}
		fmt.Fprintf(w, "%-8s %s\n", state, all[i].String())
	}
}
