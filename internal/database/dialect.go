package database

import "strings"

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Rebind rewrites $N placeholders into the form the dialect expects.
// Queries are written once in postgres style; sqlite gets ?N so the
// numbering is kept.
func Rebind(dialect, query string) string {
	if dialect != DialectSQLite || !strings.Contains(query, "$") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query))
	inString := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		if ch == '\'' {
			inString = !inString
		}
		if ch == '$' && !inString && i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
			b.WriteByte('?')
			continue
		}
		b.WriteByte(ch)
	}
	return b.String()
}
