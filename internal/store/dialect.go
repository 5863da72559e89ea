package store

import (
	"strconv"
	"strings"
)

// Dialect captures the few places where the supported backends disagree on SQL.
type Dialect struct {
	Name string
	// Numbered placeholders ($1, $2, ...) instead of '?'.
	Numbered bool
	// Now is the expression for the store's current time.
	Now string
	// Like is the case-insensitive LIKE operator.
	Like string
	// Returning means generated ids come back through INSERT ... RETURNING.
	Returning bool
}

var (
	MySQLDialect = Dialect{
		Name: DriverMySQL,
		Now:  "NOW()",
		Like: "LIKE",
	}
	PostgresDialect = Dialect{
		Name:      DriverPostgres,
		Numbered:  true,
		Now:       "NOW()",
		Like:      "ILIKE",
		Returning: true,
	}
	SQLiteDialect = Dialect{
		Name: DriverSQLite,
		Now:  "CURRENT_TIMESTAMP",
		Like: "LIKE",
	}
)

// Rebind rewrites '?' placeholders into the dialect's style. Question marks
// inside single-quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if !d.Numbered {
		return query
	}
	var (
		b       strings.Builder
		n       int
		inQuote bool
	)
	b.Grow(len(query) + 8)
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			inQuote = !inQuote
			b.WriteByte(ch)
		case ch == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}
