package order

import (
	"math"
	"strings"

	"github.com/MikeMC777/shop-orders/internal/store"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	columns = "order_id, order_no, user_name, product_name, quantity, total_price, order_status, create_time"

	// escapes LIKE wildcards in user keywords; '!' needs no quoting in any dialect
	likeEscape = '!'
)

// Query holds the list parameters.
type Query struct {
	Page     int
	PageSize int
	Status   string
	Keyword  string
}

// Normalize applies the defaults used when a parameter is missing or invalid.
func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	// keep (Page-1)*PageSize representable; such a page is past any real table
	if q.Page > math.MaxInt/q.PageSize {
		q.Page = math.MaxInt / q.PageSize
	}
	return q
}

// Offset is only meaningful on a normalized query.
func (q Query) Offset() int { return (q.Page - 1) * q.PageSize }

// selectBuilder composes a base SELECT with optional predicates. Every clause
// carries its own bound arguments; placeholders are written as '?' and
// rebound for the dialect in Build.
type selectBuilder struct {
	from    string
	where   []string
	args    []any
	orderBy string
	limit   int
	offset  int
}

func selectOrders() *selectBuilder {
	return &selectBuilder{from: "SELECT " + columns + " FROM orders"}
}

func (b *selectBuilder) Where(clause string, args ...any) *selectBuilder {
	b.where = append(b.where, clause)
	b.args = append(b.args, args...)
	return b
}

func (b *selectBuilder) OrderBy(expr string) *selectBuilder {
	b.orderBy = expr
	return b
}

func (b *selectBuilder) Page(limit, offset int) *selectBuilder {
	b.limit, b.offset = limit, offset
	return b
}

func (b *selectBuilder) Build(d store.Dialect) (string, []any) {
	var sb strings.Builder
	sb.WriteString(b.from)
	sb.WriteString(" WHERE 1=1")
	for _, w := range b.where {
		sb.WriteString(" AND ")
		sb.WriteString(w)
	}
	if b.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.orderBy)
	}
	args := append([]any(nil), b.args...)
	if b.limit > 0 {
		sb.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, b.limit, b.offset)
	}
	return d.Rebind(sb.String()), args
}

// listStatement renders the list query for q.
func listStatement(d store.Dialect, q Query) (string, []any) {
	q = q.Normalize()
	b := selectOrders()
	if q.Status != "" {
		b.Where("order_status = ?", q.Status)
	}
	if q.Keyword != "" {
		pattern := "%" + escapeLike(q.Keyword) + "%"
		b.Where("(order_no "+d.Like+" ? ESCAPE '!' OR user_name "+d.Like+" ? ESCAPE '!')", pattern, pattern)
	}
	return b.OrderBy("create_time DESC, order_id DESC").
		Page(q.PageSize, q.Offset()).
		Build(d)
}

func escapeLike(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == likeEscape {
			sb.WriteRune(likeEscape)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
