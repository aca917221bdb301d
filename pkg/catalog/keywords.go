package catalog

import "context"

// DefaultKeywords is the built-in keyword list used when no live connection
// is available to ask the server for its own via pg_get_keywords().
// Reserved words double as the quoting list for the identifier escaper.
var DefaultKeywords = []string{
	"ALL", "ANALYSE", "ANALYZE", "AND", "ANY", "ARRAY", "AS", "ASC",
	"ASYMMETRIC", "AUTHORIZATION", "BEGIN", "BETWEEN", "BIGINT", "BINARY",
	"BOOLEAN", "BOTH", "BY", "CASE", "CAST", "CHAR", "CHARACTER", "CHECK",
	"COALESCE", "COLLATE", "COLUMN", "COMMIT", "CONCURRENTLY", "CONSTRAINT",
	"CREATE", "CROSS", "CURRENT_CATALOG", "CURRENT_DATE", "CURRENT_ROLE",
	"CURRENT_SCHEMA", "CURRENT_TIME", "CURRENT_TIMESTAMP", "CURRENT_USER",
	"DEC", "DECIMAL", "DEFAULT", "DEFERRABLE", "DELETE", "DESC", "DISTINCT",
	"DO", "DROP", "ELSE", "END", "EXCEPT", "EXISTS", "EXTRACT", "FALSE",
	"FETCH", "FLOAT", "FOR", "FOREIGN", "FREEZE", "FROM", "FULL", "GRANT",
	"GREATEST", "GROUP", "GROUPING", "HAVING", "ILIKE", "IN", "INDEX",
	"INITIALLY", "INNER", "INOUT", "INSERT", "INT", "INTEGER", "INTERSECT",
	"INTERVAL", "INTO", "IS", "ISNULL", "JOIN", "LATERAL", "LEADING",
	"LEAST", "LEFT", "LIKE", "LIMIT", "LOCALTIME", "LOCALTIMESTAMP",
	"NATIONAL", "NATURAL", "NCHAR", "NONE", "NOT", "NOTNULL", "NULL",
	"NULLIF", "NUMERIC", "OFFSET", "ON", "ONLY", "OR", "ORDER", "OUT",
	"OUTER", "OVERLAPS", "OVERLAY", "PLACING", "POSITION", "PRECISION",
	"PRIMARY", "REAL", "REFERENCES", "RETURNING", "RIGHT", "ROLLBACK",
	"ROW", "SELECT", "SESSION_USER", "SETOF", "SIMILAR", "SMALLINT", "SOME",
	"SUBSTRING", "SYMMETRIC", "TABLE", "TABLESAMPLE", "THEN", "TIME",
	"TIMESTAMP", "TO", "TRAILING", "TREAT", "TRIM", "TRUE", "UNION",
	"UNIQUE", "UPDATE", "USER", "USING", "VALUES", "VARCHAR", "VARIADIC",
	"VERBOSE", "WHEN", "WHERE", "WINDOW", "WITH", "XMLATTRIBUTES",
	"XMLCONCAT", "XMLELEMENT", "XMLEXISTS", "XMLFOREST", "XMLPARSE",
	"XMLPI", "XMLROOT", "XMLSERIALIZE",
}

// DefaultKeywordSource serves DefaultKeywords, for offline use or as a
// fallback when the live keyword query fails.
type DefaultKeywordSource struct{}

// ListKeywords returns the built-in keyword list.
func (DefaultKeywordSource) ListKeywords(_ context.Context) ([]string, error) {
	out := make([]string, len(DefaultKeywords))
	copy(out, DefaultKeywords)
	return out, nil
}
