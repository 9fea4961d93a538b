// Package migration is the file driver around package sqlfix: it reads a
// migration script, keeps a verbatim backup, rewrites INSERT lines one by one
// and writes the fixed script.
package migration

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/JonMunkholm/migfix/internal/config"
	"github.com/JonMunkholm/migfix/internal/sqlfix"
)

// ErrInputNotFound is returned when the source script does not exist or
// cannot be read. No backup or output is written in that case.
var ErrInputNotFound = errors.New("migration input not found")

const insertPrefix = "INSERT INTO"

// Default file names, relative to the working directory.
const (
	DefaultInput  = "migration-data.sql"
	DefaultBackup = "migration-data.sql.backup"
	DefaultOutput = "migration-data-fixed.sql"
)

// Paths names the files touched by FixFile.
type Paths struct {
	Input  string
	Backup string
	Output string
}

// Stats summarizes one run.
type Stats struct {
	Lines       int   `json:"lines"`
	Inserts     int   `json:"inserts"`     // lines starting with INSERT INTO after trimming
	Rewritten   int   `json:"rewritten"`   // inserts that matched the single-line shape
	Unmatched   int   `json:"unmatched"`   // inserts passed through unchanged
	IDsRemoved  int   `json:"ids_removed"`
	IDsReplaced int   `json:"ids_replaced"`
	Mismatches  int   `json:"mismatches"`
	Bytes       int64 `json:"bytes"`
	HadBOM      bool  `json:"had_bom"`
}

// Result is the rewritten script plus its statistics.
type Result struct {
	Content string
	Stats   Stats
}

// Fixer applies a sqlfix.Rewriter to whole scripts.
type Fixer struct {
	rewriter *sqlfix.Rewriter
	logger   *slog.Logger
}

// NewFixer creates a Fixer. A nil logger uses slog.Default().
func NewFixer(rw *sqlfix.Rewriter, logger *slog.Logger) *Fixer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fixer{rewriter: rw, logger: logger}
}

// FixContent rewrites every INSERT line of content. Lines are split and
// rejoined on "\n" only, so the output has the same line count and any "\r"
// stays where it was.
func (f *Fixer) FixContent(content string) Result {
	lines := strings.Split(content, "\n")
	stats := Stats{Lines: len(lines)}

	for i, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), insertPrefix) {
			continue
		}
		stats.Inserts++

		fixed, change, err := f.rewriter.Rewrite(line)
		if err != nil {
			stats.Mismatches++
			f.logger.Warn("insert arity mismatch",
				"line", i+1,
				"table", change.Table,
				"error", err,
			)
		}
		if !change.Matched {
			stats.Unmatched++
			f.logger.Debug("insert left unchanged", "line", i+1)
			continue
		}

		stats.Rewritten++
		if change.IDRemoved {
			stats.IDsRemoved++
		}
		if change.IDReplaced {
			stats.IDsReplaced++
		}
		lines[i] = fixed
	}

	return Result{Content: strings.Join(lines, "\n"), Stats: stats}
}

// FixReader reads a whole script from r and rewrites it. A leading BOM is set
// aside while matching and restored in the returned content.
func (f *Fixer) FixReader(r io.Reader) (Result, error) {
	bom, counter := wrapInput(r)

	data, err := io.ReadAll(bom)
	if err != nil {
		return Result{}, fmt.Errorf("read script: %w", err)
	}
	if !utf8.Valid(data) {
		f.logger.Warn("script is not valid UTF-8, rewriting byte-for-byte")
	}

	res := f.FixContent(string(data))
	res.Stats.Bytes = counter.BytesRead
	res.Stats.HadBOM = bom.HadBOM()
	if res.Stats.HadBOM {
		res.Content = string(utf8BOM) + res.Content
	}
	return res, nil
}

// FixFile reads paths.Input, writes it verbatim to paths.Backup, then writes
// the rewritten script to paths.Output.
//
// A missing or unreadable input returns an error wrapping ErrInputNotFound
// before anything is written.
func (f *Fixer) FixFile(paths Paths) (Stats, error) {
	data, err := os.ReadFile(paths.Input)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %s: %w", ErrInputNotFound, paths.Input, err)
	}

	if err := os.WriteFile(paths.Backup, data, 0o644); err != nil {
		return Stats{}, fmt.Errorf("write backup %s: %w", paths.Backup, err)
	}
	f.logger.Info("backup written", "path", paths.Backup, "bytes", len(data))

	res, err := f.FixReader(bytes.NewReader(data))
	if err != nil {
		return Stats{}, err
	}

	if err := os.WriteFile(paths.Output, []byte(res.Content), 0o644); err != nil {
		return res.Stats, fmt.Errorf("write output %s: %w", paths.Output, err)
	}

	f.logger.Info("fixed script written",
		"path", paths.Output,
		"lines", res.Stats.Lines,
		"inserts", res.Stats.Inserts,
		"rewritten", res.Stats.Rewritten,
		"ids_removed", res.Stats.IDsRemoved,
		"ids_replaced", res.Stats.IDsReplaced,
		"mismatches", res.Stats.Mismatches,
	)
	return res.Stats, nil
}

// NewFixerFromConfig builds the rewriter described by cfg and wraps it in a Fixer.
func NewFixerFromConfig(cfg config.RewriteConfig, logger *slog.Logger) (*Fixer, error) {
	mode, err := sqlfix.ParseIDMode(cfg.IDMode)
	if err != nil {
		return nil, err
	}
	rw := sqlfix.NewRewriter(sqlfix.Options{IDMode: mode, StrictArity: cfg.StrictArity})
	return NewFixer(rw, logger), nil
}
