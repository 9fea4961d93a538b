package apply

// errors.go maps technical errors to user-facing messages with a code that
// can be quoted when asking for help.
//
// # Migration Errors (MIG001-MIG099)
//
//	MIG001 - Input not found: the migration script does not exist
//	MIG002 - Column count mismatch: a row has more columns than values or the reverse
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Duplicate key (SQLSTATE 23505)
//	DB003 - Foreign key violation (SQLSTATE 23503)
//	DB004 - Connection refused
//	DB006 - Timeout
//	DB008 - Type mismatch, typically an integer id sent to a UUID column (22P02)
//	DB009 - Unknown table or column (42P01, 42703)
//	DB010 - SQL syntax error (42601)
//
// # Default Error (ERR000)
//
// PostgreSQL errors are matched on SQLSTATE first. Everything else is matched
// case-insensitively on message patterns; the first match wins.

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JonMunkholm/migfix/internal/migration"
	"github.com/JonMunkholm/migfix/internal/sqlfix"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgInputNotFound = UserMessage{
		Message: "Migration script not found",
		Action:  "Place migration-data.sql in the working directory or set MIGRATION_INPUT",
		Code:    "MIG001",
	}
	msgArity = UserMessage{
		Message: "A row has a different number of columns and values",
		Action:  "Fix the row in the source script; it cannot be rewritten reliably",
		Code:    "MIG002",
	}
	msgDuplicate = UserMessage{
		Message: "A record with this key already exists",
		Action:  "Remove explicit ids or clear the table before applying",
		Code:    "DB001",
	}
	msgForeignKey = UserMessage{
		Message: "Referenced record does not exist",
		Action:  "Ensure parent rows are inserted first",
		Code:    "DB003",
	}
	msgConnRefused = UserMessage{
		Message: "Unable to connect to database",
		Action:  "Check DATABASE_URL and that the server is reachable",
		Code:    "DB004",
	}
	msgTimeout = UserMessage{
		Message: "Operation timed out",
		Action:  "Increase APPLY_TIMEOUT or apply a smaller script",
		Code:    "DB006",
	}
	msgTypeMismatch = UserMessage{
		Message: "A value does not match its column type",
		Action:  "Integer ids cannot go into UUID columns; rewrite with REWRITE_ID_MODE=drop",
		Code:    "DB008",
	}
	msgUndefined = UserMessage{
		Message: "Table or column does not exist",
		Action:  "Run the schema script before the data migration",
		Code:    "DB009",
	}
	msgSyntax = UserMessage{
		Message: "The script contains invalid SQL",
		Action:  "Check the statement reported in the logs",
		Code:    "DB010",
	}
	msgUnknown = UserMessage{
		Message: "An unexpected error occurred",
		Action:  "Check the logs for details",
		Code:    "ERR000",
	}
)

// sqlStates maps PostgreSQL SQLSTATE codes to messages.
var sqlStates = map[string]UserMessage{
	"23505": msgDuplicate,
	"23503": msgForeignKey,
	"22P02": msgTypeMismatch,
	"42P01": msgUndefined,
	"42703": msgUndefined,
	"42601": msgSyntax,
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns is ordered: more specific patterns come first.
var errorPatterns = []errorPattern{
	{"duplicate key", msgDuplicate},
	{"violates foreign key", msgForeignKey},
	{"invalid input syntax for type uuid", msgTypeMismatch},
	{"does not exist", msgUndefined},
	{"syntax error", msgSyntax},
	{"connection refused", msgConnRefused},
	{"deadline exceeded", msgTimeout},
	{"timeout", msgTimeout},
}

// MapError converts err to a UserMessage. A nil error returns the zero value.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	switch {
	case errors.Is(err, migration.ErrInputNotFound):
		return msgInputNotFound
	case errors.Is(err, sqlfix.ErrArityMismatch):
		return msgArity
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if msg, ok := sqlStates[pgErr.Code]; ok {
			return msg
		}
	}

	text := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(text, p.pattern) {
			return p.msg
		}
	}
	return msgUnknown
}
