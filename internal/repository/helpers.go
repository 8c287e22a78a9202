package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lib/pq"

	"github.com/samrambhak/community-server-go/internal/model"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// HandleNotFound processes a database query result, converting sql.ErrNoRows
// to a nil result without error. This is a common pattern for Find* operations
// where a missing row is not an error condition.
//
// Usage:
//
//	var item model.Item
//	err := r.db.GetContext(ctx, &item, query, args...)
//	return HandleNotFound(&item, err)
func HandleNotFound[T any](result *T, err error) (*T, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint failure.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	return false
}

// buildUpdate renders "col = $n" pairs for the whitelisted keys of updates.
// Keys outside allowed are dropped. Columns are sorted so the generated SQL is
// stable. args continues numbering after the leading placeholders already used.
func buildUpdate(updates model.Updates, allowed map[string]bool, leading int) (string, []any) {
	cols := make([]string, 0, len(updates))
	for col := range updates {
		if allowed[col] {
			cols = append(cols, col)
		}
	}
	sort.Strings(cols)

	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for i, col := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, leading+i+1))
		args = append(args, updates[col])
	}
	return strings.Join(sets, ", "), args
}

// FilterUpdates keeps only whitelisted keys.
func FilterUpdates(updates model.Updates, allowed map[string]bool) model.Updates {
	out := make(model.Updates, len(updates))
	for k, v := range updates {
		if allowed[k] {
			out[k] = v
		}
	}
	return out
}
