package sqlfix

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// insertPattern is anchored at the start of the line only. Column and value
// lists are any run of non-')' characters, so a value such as CONCAT('a', 'b')
// makes the line fall through unchanged.
var insertPattern = regexp.MustCompile(`^INSERT INTO (\w+) \(([^)]+)\) VALUES \(([^)]+)\);`)

// ErrArityMismatch reports an INSERT whose column and value counts differ.
var ErrArityMismatch = errors.New("column/value count mismatch")

// IDColumn is the column name that gets dropped. The comparison is exact and
// case-sensitive.
const IDColumn = "id"

// IDMode selects what happens to a leading id column.
type IDMode string

const (
	// IDModeDrop removes the id column and its value.
	IDModeDrop IDMode = "drop"

	// IDModeUUID keeps the id column and replaces its value with a new UUID literal.
	IDModeUUID IDMode = "uuid"
)

// ParseIDMode converts a configuration string to an IDMode.
// An empty string selects IDModeDrop.
func ParseIDMode(s string) (IDMode, error) {
	switch IDMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", IDModeDrop:
		return IDModeDrop, nil
	case IDModeUUID:
		return IDModeUUID, nil
	default:
		return "", fmt.Errorf("unknown id mode %q (want drop or uuid)", s)
	}
}

// Insert is one parsed single-line INSERT statement.
type Insert struct {
	Table   string
	Columns []string
	Values  []string

	// Suffix is whatever followed the terminating ");" on the line.
	Suffix string
}

// ParseInsert matches line against the INSERT shape. It reports false for
// anything else, including multi-line statements and lines with leading
// whitespace.
func ParseInsert(line string) (Insert, bool) {
	m := insertPattern.FindStringSubmatchIndex(line)
	if m == nil {
		return Insert{}, false
	}
	return Insert{
		Table:   line[m[2]:m[3]],
		Columns: SplitColumns(line[m[4]:m[5]]),
		Values:  SplitValues(line[m[6]:m[7]]),
		Suffix:  line[m[1]:],
	}, true
}

// HasLeadingID reports whether the first column is exactly IDColumn.
func (ins Insert) HasLeadingID() bool {
	return len(ins.Columns) > 0 && ins.Columns[0] == IDColumn
}

// String reassembles the statement with ", " separators. An insert left with
// no columns is written as DEFAULT VALUES.
func (ins Insert) String() string {
	if len(ins.Columns) == 0 && len(ins.Values) == 0 {
		return "INSERT INTO " + ins.Table + " DEFAULT VALUES;" + ins.Suffix
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);%s",
		ins.Table,
		strings.Join(ins.Columns, ", "),
		strings.Join(ins.Values, ", "),
		ins.Suffix,
	)
}

// Options configures a Rewriter.
type Options struct {
	// IDMode defaults to IDModeDrop.
	IDMode IDMode

	// StrictArity leaves lines with mismatched column/value counts unchanged
	// instead of rewriting them best-effort.
	StrictArity bool

	// NewID returns the raw (unquoted) identifier used by IDModeUUID.
	// Defaults to uuid.NewString.
	NewID func() string
}

// Change describes what Rewrite did to one line.
type Change struct {
	Table      string
	Matched    bool
	IDRemoved  bool
	IDReplaced bool
	Mismatch   bool

	// Columns and Values are the counts after rewriting.
	Columns int
	Values  int
}

// Rewriter rewrites INSERT lines. It holds no per-line state and is safe for
// concurrent use as long as Options.NewID is.
type Rewriter struct {
	opts Options
}

// NewRewriter creates a Rewriter, filling in defaults.
func NewRewriter(opts Options) *Rewriter {
	if opts.IDMode == "" {
		opts.IDMode = IDModeDrop
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Rewriter{opts: opts}
}

// Rewrite returns line with its leading id column handled according to the
// configured IDMode. Lines that do not match the INSERT shape come back
// unchanged with a zero Change.
//
// A column/value count mismatch is returned as an error wrapping
// ErrArityMismatch. In lenient mode the rewritten line is still returned
// alongside the error; in strict mode the original line is.
func (r *Rewriter) Rewrite(line string) (string, Change, error) {
	ins, ok := ParseInsert(line)
	if !ok {
		return line, Change{}, nil
	}

	change := Change{Table: ins.Table, Matched: true}

	var err error
	if len(ins.Columns) != len(ins.Values) {
		change.Mismatch = true
		err = fmt.Errorf("%w: table %s has %d columns and %d values",
			ErrArityMismatch, ins.Table, len(ins.Columns), len(ins.Values))
		if r.opts.StrictArity {
			change.Columns, change.Values = len(ins.Columns), len(ins.Values)
			return line, change, err
		}
	}

	if ins.HasLeadingID() {
		switch r.opts.IDMode {
		case IDModeUUID:
			if len(ins.Values) > 0 {
				ins.Values[0] = pq.QuoteLiteral(r.opts.NewID())
				change.IDReplaced = true
			}
		default:
			ins.Columns = ins.Columns[1:]
			if len(ins.Values) > 0 {
				ins.Values = ins.Values[1:]
			}
			change.IDRemoved = true
		}
	}

	change.Columns, change.Values = len(ins.Columns), len(ins.Values)
	return ins.String(), change, err
}

var defaultRewriter = NewRewriter(Options{})

// FixInsertLine drops a leading id column and its value from a single-line
// INSERT statement, returning any other line unchanged. Arity mismatches are
// rewritten best-effort.
func FixInsertLine(line string) string {
	out, _, _ := defaultRewriter.Rewrite(line)
	return out
}
