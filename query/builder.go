package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Cond is one AND-combined filter condition.
type Cond struct {
	Expr string
	Args []interface{}
}

// Query is the built filter/sort/pagination description. The caller applies
// it to a find and, independently, a count with the same conditions.
type Query struct {
	Conds   []Cond
	OrderBy string
	Page    int
	Limit   int
	Offset  int
}

// Synthetic sort aliases with a fixed direction. The "order" parameter is
// ignored for these, and an alias only applies when its column is sortable
// in the schema at hand.
var sortAliases = map[string]struct {
	column    string
	direction string
}{
	"price_low":  {"price", "ASC"},
	"price_high": {"price", "DESC"},
	"year_new":   {"year", "DESC"},
	"year_old":   {"year", "ASC"},
	"mileage":    {"mileage", "ASC"},
}

// Build translates decoded query-string values into a Query according to the
// schema. It never fails: malformed or unknown parameters simply add no
// constraint, and non-numeric page/limit fall back to their defaults.
func Build(values url.Values, schema Schema) *Query {
	q := &Query{
		Page:  parsePositiveInt(values.Get("page"), 1),
		Limit: parsePositiveInt(values.Get("limit"), schema.DefaultLimit),
	}
	q.Offset = (q.Page - 1) * q.Limit

	if schema.ActiveColumn != "" {
		q.where(quoteCol(schema.ActiveColumn)+" = ?", true)
	}

	for _, param := range sortedKeys(schema.Pattern) {
		items := splitCSV(values.Get(param))
		if len(items) == 0 {
			continue
		}
		column := quoteCol(schema.Pattern[param])
		exprs := make([]string, 0, len(items))
		args := make([]interface{}, 0, len(items))
		for _, item := range items {
			exprs = append(exprs, column+" LIKE ?")
			args = append(args, "%"+EscapeLike(item)+"%")
		}
		q.where("("+strings.Join(exprs, " OR ")+")", args...)
	}

	for _, param := range sortedKeys(schema.Exact) {
		items := splitCSV(values.Get(param))
		if len(items) == 0 {
			continue
		}
		q.where(quoteCol(schema.Exact[param])+" IN ?", items)
	}

	for _, param := range sortedKeys(schema.Equal) {
		if value := strings.TrimSpace(values.Get(param)); value != "" {
			q.where(quoteCol(schema.Equal[param])+" = ?", value)
		}
	}

	for _, r := range schema.Ranges {
		if bound, ok := parseInt(values.Get(r.Param)); ok {
			q.where(quoteCol(r.Column)+" "+r.Op+" ?", bound)
		}
	}

	for _, param := range sortedKeys(schema.Flags) {
		if values.Get(param) == "true" {
			q.where(quoteCol(schema.Flags[param])+" = ?", true)
		}
	}

	if term := strings.TrimSpace(values.Get("search")); term != "" && len(schema.SearchColumns) > 0 {
		pattern := "%" + EscapeLike(term) + "%"
		exprs := make([]string, 0, len(schema.SearchColumns))
		args := make([]interface{}, 0, len(schema.SearchColumns))
		for _, column := range schema.SearchColumns {
			exprs = append(exprs, quoteCol(column)+" LIKE ?")
			args = append(args, pattern)
		}
		q.where("("+strings.Join(exprs, " OR ")+")", args...)
	}

	q.OrderBy = buildOrderBy(values.Get("sort"), values.Get("order"), schema)

	return q
}

// Apply attaches the filter conditions and sort order to a gorm query.
func (q *Query) Apply(tx *gorm.DB) *gorm.DB {
	for _, cond := range q.Conds {
		tx = tx.Where(cond.Expr, cond.Args...)
	}
	return tx.Order(q.OrderBy)
}

// Paginate attaches conditions, sort and the pagination window.
func (q *Query) Paginate(tx *gorm.DB) *gorm.DB {
	return q.Apply(tx).Offset(q.Offset).Limit(q.Limit)
}

// Count attaches only the filter conditions, for the total-count query.
func (q *Query) Count(tx *gorm.DB) *gorm.DB {
	for _, cond := range q.Conds {
		tx = tx.Where(cond.Expr, cond.Args...)
	}
	return tx
}

func (q *Query) where(expr string, args ...interface{}) {
	q.Conds = append(q.Conds, Cond{Expr: expr, Args: args})
}

// PageMeta is the pagination metadata returned with every listing page.
type PageMeta struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

// NewPageMeta computes pagination metadata for a total match count.
func NewPageMeta(total int64, page, limit int) PageMeta {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return PageMeta{
		Total:   total,
		Page:    page,
		Limit:   limit,
		Pages:   pages,
		HasNext: int64(page)*int64(limit) < total,
		HasPrev: page > 1,
	}
}

func buildOrderBy(sortParam, orderParam string, schema Schema) string {
	if alias, ok := sortAliases[sortParam]; ok && schema.Sortable[alias.column] {
		return quoteCol(alias.column) + " " + alias.direction
	}
	column := schema.DefaultSort
	if schema.Sortable[sortParam] {
		column = sortParam
	}
	direction := "DESC"
	if orderParam == "asc" {
		direction = "ASC"
	}
	return quoteCol(column) + " " + direction
}

// quoteCol backtick-quotes an identifier; facet columns like condition
// collide with MySQL reserved words otherwise.
func quoteCol(name string) string {
	return "`" + name + "`"
}

// parsePositiveInt parses a positive integer, falling back to def for
// anything absent, malformed, zero or negative.
func parsePositiveInt(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// parseInt parses an integer bound; ok is false for absent or malformed
// values, which then add no constraint.
func parseInt(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// splitCSV splits a comma-separated parameter into trimmed non-empty items.
func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// EscapeLike escapes LIKE wildcards so user-supplied terms always match
// literally.
func EscapeLike(term string) string {
	term = strings.ReplaceAll(term, `\`, `\\`)
	term = strings.ReplaceAll(term, `%`, `\%`)
	term = strings.ReplaceAll(term, `_`, `\_`)
	return term
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
