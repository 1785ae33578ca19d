package aggregates

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/storefront-backend/internal/domain/aggregates"
)

// taggedError is a caller-facing failure raised inside a write; MapError turns
// it into a *domainagg.Error carrying the op.
type taggedError struct {
	code domainagg.ErrorCode
	msg  string
}

func (e *taggedError) Error() string { return e.msg }

func tagged(code domainagg.ErrorCode, msg string) error {
	return &taggedError{code: code, msg: strings.TrimSpace(msg)}
}

func ValidationError(msg string) error { return tagged(domainagg.CodeValidation, msg) }

// SQLSTATE codes with a meaning for callers. Anything else is internal.
var pgCodes = map[string]domainagg.ErrorCode{
	"23505": domainagg.CodeConflict,            // unique_violation
	"23503": domainagg.CodeReferentialConflict, // foreign_key_violation
	"40001": domainagg.CodeRetryable,           // serialization_failure
	"40P01": domainagg.CodeRetryable,           // deadlock_detected
	"55P03": domainagg.CodeRetryable,           // lock_not_available
}

// SQLite reports constraint and locking failures only through the message.
var messageCodes = []struct {
	fragment string
	code     domainagg.ErrorCode
}{
	{"foreign key constraint", domainagg.CodeReferentialConflict},
	{"duplicate key", domainagg.CodeConflict},
	{"unique constraint", domainagg.CodeConflict},
	{"already exists", domainagg.CodeConflict},
	{"deadlock", domainagg.CodeRetryable},
	{"serialization", domainagg.CodeRetryable},
	{"database is locked", domainagg.CodeRetryable},
	{"timeout", domainagg.CodeRetryable},
	{"temporar", domainagg.CodeRetryable},
}

// MapError maps store and caller failures into aggregate error codes.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var aggErr *domainagg.Error
	if errors.As(err, &aggErr) {
		return aggErr
	}
	var te *taggedError
	if errors.As(err, &te) {
		return domainagg.NewError(te.code, op, te.msg, err)
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainagg.Wrap(domainagg.CodeNotFound, op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domainagg.Wrap(domainagg.CodeRetryable, op, err)
	}
	return codeError(op, storeCode(err), err)
}

func storeCode(err error) domainagg.ErrorCode {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if code, ok := pgCodes[strings.TrimSpace(pgErr.Code)]; ok {
			return code
		}
		return domainagg.CodeInternal
	}
	msg := strings.ToLower(err.Error())
	for _, mc := range messageCodes {
		if strings.Contains(msg, mc.fragment) {
			return mc.code
		}
	}
	return domainagg.CodeInternal
}

// A foreign key failure that slips past the in-transaction guard still means "in use".
func codeError(op string, code domainagg.ErrorCode, err error) error {
	if code == domainagg.CodeReferentialConflict {
		return &domainagg.Error{
			Code:    code,
			Op:      op,
			Message: "row is still referenced by dependent rows",
			Cause:   err,
		}
	}
	return domainagg.Wrap(code, op, err)
}
