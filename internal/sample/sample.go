// Package sample holds the hand-written sample-data script that is emitted
// next to the fixed migration. Its content is independent of the input file.
package sample

import (
	_ "embed"
	"fmt"
	"os"
)

// DefaultPath is the file name the CLI writes the script to.
const DefaultPath = "migration-clean-data.sql"

//go:embed clean_data.sql
var script string

// Tables lists the tables the script seeds, in insertion order.
var Tables = []string{
	"apartments",
	"field_teams",
	"units",
	"team_apartment_assignments",
	"transactions",
	"daily_summary",
	"cs_summary",
	"config",
	"processed_messages",
}

// Script returns the sample-data SQL.
func Script() string {
	return script
}

// Write writes the script to path, replacing any existing file.
func Write(path string) error {
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		return fmt.Errorf("write sample script %s: %w", path, err)
	}
	return nil
}
