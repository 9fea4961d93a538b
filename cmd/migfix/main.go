// Command migfix fixes migration-data.sql for databases that generate their
// own ids, and writes a sample-data script next to it. It takes no arguments;
// see internal/config for the environment variables it reads.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/migfix/internal/apply"
	"github.com/JonMunkholm/migfix/internal/config"
	"github.com/JonMunkholm/migfix/internal/logging"
	"github.com/JonMunkholm/migfix/internal/migration"
	"github.com/JonMunkholm/migfix/internal/sample"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err == nil {
		slog.Debug("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	logger.Debug("configuration loaded", "config", cfg.String())

	os.Exit(run(context.Background(), cfg, os.Stdout, logger))
}

// run performs the fix and the sample emission and returns the exit code.
// A missing input is reported but is not a failure; the sample script is
// written either way.
func run(ctx context.Context, cfg *config.Config, out io.Writer, logger *slog.Logger) int {
	fmt.Fprintln(out, "🎯 Migration Data Fixer")
	fmt.Fprintln(out, "=====================================")

	code := 0
	fixed, err := fixMigration(cfg, out, logger)
	if err != nil {
		code = 1
	}

	sampled := true
	if err := sample.Write(cfg.Files.Sample); err != nil {
		logger.Error("sample script failed", "error", err)
		fmt.Fprintf(out, "❌ Could not write %s: %v\n", cfg.Files.Sample, err)
		sampled = false
		code = 1
	} else {
		fmt.Fprintf(out, "✅ Clean migration created: %s\n", cfg.Files.Sample)
		fmt.Fprintln(out, "🎯 This file contains sample data and is safe to run")
	}

	var created []string
	if fixed {
		created = append(created,
			cfg.Files.Backup+" - Original backup",
			cfg.Files.Output+" - Fixed version",
		)
	}
	if sampled {
		created = append(created, cfg.Files.Sample+" - Clean sample data")
	}
	fmt.Fprintln(out, "\n📋 Files created:")
	for i, f := range created {
		fmt.Fprintf(out, "%d. %s\n", i+1, f)
	}

	if fixed && cfg.Database.Apply {
		if err := applyFixed(ctx, cfg, out, logger); err != nil {
			return 1
		}
	}

	fmt.Fprintln(out, "\n🚀 Next steps:")
	fmt.Fprintln(out, "1. Run the schema script in your SQL editor")
	fmt.Fprintf(out, "2. Run %s for sample data\n", cfg.Files.Sample)
	fmt.Fprintf(out, "3. Or run %s for original data\n", cfg.Files.Output)

	return code
}

// fixMigration rewrites the input file. It reports whether the fixed output
// was written; a missing input returns false and a nil error.
func fixMigration(cfg *config.Config, out io.Writer, logger *slog.Logger) (bool, error) {
	fmt.Fprintf(out, "🔧 Fixing %s for UUID compatibility...\n", cfg.Files.Input)

	fixer, err := migration.NewFixerFromConfig(cfg.Rewrite, logger)
	if err != nil {
		fmt.Fprintf(out, "❌ %v\n", err)
		return false, err
	}

	stats, err := fixer.FixFile(migration.Paths{
		Input:  cfg.Files.Input,
		Backup: cfg.Files.Backup,
		Output: cfg.Files.Output,
	})
	if errors.Is(err, migration.ErrInputNotFound) {
		logger.Debug("input missing", "error", err)
		fmt.Fprintf(out, "❌ %s not found!\n", cfg.Files.Input)
		return false, nil
	}
	if err != nil {
		msg := apply.MapError(err)
		logger.Error("fix failed", "error", err, "code", msg.Code)
		fmt.Fprintf(out, "❌ %s (%s): %v\n", msg.Message, msg.Code, err)
		return false, err
	}

	fmt.Fprintf(out, "💾 Backup created: %s\n", cfg.Files.Backup)
	fmt.Fprintf(out, "✅ Fixed migration saved as: %s\n", cfg.Files.Output)
	fmt.Fprintf(out, "   %d INSERT lines, %d rewritten, %d ids removed, %d ids replaced, %d left unchanged\n",
		stats.Inserts, stats.Rewritten, stats.IDsRemoved, stats.IDsReplaced, stats.Unmatched)
	if stats.Mismatches > 0 {
		fmt.Fprintf(out, "⚠️  %d rows have mismatched column/value counts, check the log\n", stats.Mismatches)
	}
	fmt.Fprintln(out, "🎯 You can now run this file in Supabase SQL Editor")
	return true, nil
}

// applyFixed runs the fixed script against the configured database.
func applyFixed(ctx context.Context, cfg *config.Config, out io.Writer, logger *slog.Logger) error {
	fmt.Fprintf(out, "\n📤 Applying %s...\n", cfg.Files.Output)

	err := func() error {
		pool, err := apply.NewPool(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()

		return apply.NewApplier(pool, cfg.Database.ApplyTimeout, logger).ApplyFile(ctx, cfg.Files.Output)
	}()
	if err != nil {
		msg := apply.MapError(err)
		logger.Error("apply failed", "error", err, "code", msg.Code)
		fmt.Fprintf(out, "❌ %s (%s)\n   %s\n", msg.Message, msg.Code, msg.Action)
		return err
	}

	fmt.Fprintln(out, "✅ Fixed migration applied")
	return nil
}
