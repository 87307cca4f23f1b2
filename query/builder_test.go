package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func params(kv map[string]string) url.Values {
	values := url.Values{}
	for k, v := range kv {
		values.Set(k, v)
	}
	return values
}

func findCond(q *Query, expr string) *Cond {
	for i := range q.Conds {
		if q.Conds[i].Expr == expr {
			return &q.Conds[i]
		}
	}
	return nil
}

func TestBuildDefaults(t *testing.T) {
	q := Build(url.Values{}, CarSchema())

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultLimit, q.Limit)
	assert.Equal(t, 0, q.Offset)
	assert.Equal(t, "`created_at` DESC", q.OrderBy)

	// public scope always pins active listings
	require.Len(t, q.Conds, 1)
	assert.Equal(t, "`is_active` = ?", q.Conds[0].Expr)
	assert.Equal(t, []interface{}{true}, q.Conds[0].Args)
}

func TestBuildPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       string
		limit      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"explicit", "3", "10", 3, 10, 20},
		{"absent", "", "", 1, DefaultLimit, 0},
		{"non-numeric", "abc", "xyz", 1, DefaultLimit, 0},
		{"negative", "-2", "-5", 1, DefaultLimit, 0},
		{"zero", "0", "0", 1, DefaultLimit, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Build(params(map[string]string{"page": tt.page, "limit": tt.limit}), CarSchema())
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantLimit, q.Limit)
			assert.Equal(t, tt.wantOffset, q.Offset)
		})
	}
}

func TestBuildAdminViewLimit(t *testing.T) {
	q := Build(url.Values{}, CarSchema().AdminView())

	assert.Equal(t, AdminDefaultLimit, q.Limit)
	// admin view must see inactive listings
	assert.Nil(t, findCond(q, "`is_active` = ?"))
}

func TestBuildPatternMultiValue(t *testing.T) {
	q := Build(params(map[string]string{"make": "Toyota,Honda"}), CarSchema())

	cond := findCond(q, "(`make` LIKE ? OR `make` LIKE ?)")
	require.NotNil(t, cond, "comma-separated make should build an OR group")
	assert.Equal(t, []interface{}{"%Toyota%", "%Honda%"}, cond.Args)
}

func TestBuildCombinesKeysWithAnd(t *testing.T) {
	q := Build(params(map[string]string{
		"make": "Toyota",
		"city": "Karachi,Lahore",
	}), CarSchema())

	// one AND condition per supplied key, plus the activity constraint
	require.Len(t, q.Conds, 3)
	assert.NotNil(t, findCond(q, "(`city` LIKE ? OR `city` LIKE ?)"))
	assert.NotNil(t, findCond(q, "(`make` LIKE ?)"))
}

func TestBuildExactEnumFilter(t *testing.T) {
	q := Build(params(map[string]string{"fuelType": "Petrol,Hybrid"}), CarSchema())

	cond := findCond(q, "`fuel_type` IN ?")
	require.NotNil(t, cond)
	assert.Equal(t, []interface{}{[]string{"Petrol", "Hybrid"}}, cond.Args)
}

func TestBuildConditionFacetQuoted(t *testing.T) {
	// condition is a MySQL reserved word; the rendered column must be
	// backtick-quoted or the statement fails to parse server-side
	q := Build(params(map[string]string{"condition": "New,Used"}), CarSchema())

	cond := findCond(q, "`condition` IN ?")
	require.NotNil(t, cond)
	assert.Equal(t, []interface{}{[]string{"New", "Used"}}, cond.Args)

	q = Build(params(map[string]string{"condition": "Used"}), PartSchema())
	assert.NotNil(t, findCond(q, "`condition` IN ?"))
}

func TestBuildRangeBounds(t *testing.T) {
	q := Build(params(map[string]string{"priceMin": "1000000"}), CarSchema())

	cond := findCond(q, "`price` >= ?")
	require.NotNil(t, cond, "a lone lower bound must become an inclusive >= constraint")
	assert.Equal(t, []interface{}{int64(1000000)}, cond.Args)
	assert.Nil(t, findCond(q, "`price` <= ?"), "absent upper bound adds no constraint")

	q = Build(params(map[string]string{
		"yearFrom":   "2018",
		"yearTo":     "2022",
		"mileageMax": "60000",
	}), CarSchema())
	assert.NotNil(t, findCond(q, "`year` >= ?"))
	assert.NotNil(t, findCond(q, "`year` <= ?"))
	assert.NotNil(t, findCond(q, "`mileage` <= ?"))
}

func TestBuildMalformedRangeIgnored(t *testing.T) {
	q := Build(params(map[string]string{"priceMax": "cheap"}), CarSchema())
	assert.Nil(t, findCond(q, "`price` <= ?"))
}

func TestBuildFeaturedFlag(t *testing.T) {
	q := Build(params(map[string]string{"featured": "true"}), CarSchema())
	require.NotNil(t, findCond(q, "`is_featured` = ?"))

	for _, value := range []string{"false", "1", "yes", ""} {
		q := Build(params(map[string]string{"featured": value}), CarSchema())
		assert.Nil(t, findCond(q, "`is_featured` = ?"), "featured=%q must add no constraint", value)
	}
}

func TestBuildSellerScope(t *testing.T) {
	q := Build(params(map[string]string{"seller": "user-42"}), CarSchema().OwnerView())

	cond := findCond(q, "`seller_id` = ?")
	require.NotNil(t, cond)
	assert.Equal(t, []interface{}{"user-42"}, cond.Args)
	assert.Nil(t, findCond(q, "`is_active` = ?"), "owner view shows inactive listings")
}

func TestBuildSearchGroup(t *testing.T) {
	q := Build(params(map[string]string{"search": "Civic"}), CarSchema())

	cond := findCond(q, "(`title` LIKE ? OR `make` LIKE ? OR `model` LIKE ? OR `description` LIKE ?)")
	require.NotNil(t, cond)
	for _, arg := range cond.Args {
		assert.Equal(t, "%Civic%", arg)
	}

	// parts search only spans title and description
	q = Build(params(map[string]string{"search": "bumper"}), PartSchema())
	assert.NotNil(t, findCond(q, "(`title` LIKE ? OR `description` LIKE ?)"))
}

func TestBuildSearchTermIsLiteral(t *testing.T) {
	q := Build(params(map[string]string{"search": `100%_civic\`}), CarSchema())

	cond := findCond(q, "(`title` LIKE ? OR `make` LIKE ? OR `model` LIKE ? OR `description` LIKE ?)")
	require.NotNil(t, cond)
	assert.Equal(t, `%100\%\_civic\\%`, cond.Args[0], "wildcards in user terms must be escaped")
}

func TestBuildSortAliases(t *testing.T) {
	tests := []struct {
		sort  string
		order string
		want  string
	}{
		{"price_low", "", "`price` ASC"},
		{"price_high", "asc", "`price` DESC"}, // alias direction wins over order
		{"year_new", "asc", "`year` DESC"},
		{"year_old", "desc", "`year` ASC"},
		{"mileage", "desc", "`mileage` ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			q := Build(params(map[string]string{"sort": tt.sort, "order": tt.order}), CarSchema())
			assert.Equal(t, tt.want, q.OrderBy)
		})
	}
}

func TestBuildSortAliasOutsideSchema(t *testing.T) {
	// parts have no year or mileage column; those aliases must degrade to
	// the default sort instead of referencing a missing column
	q := Build(params(map[string]string{"sort": "year_new"}), PartSchema())
	assert.Equal(t, "`created_at` DESC", q.OrderBy)

	q = Build(params(map[string]string{"sort": "mileage"}), PartSchema())
	assert.Equal(t, "`created_at` DESC", q.OrderBy)

	// price aliases stay valid for parts
	q = Build(params(map[string]string{"sort": "price_high"}), PartSchema())
	assert.Equal(t, "`price` DESC", q.OrderBy)
}

func TestBuildSortByColumn(t *testing.T) {
	q := Build(params(map[string]string{"sort": "year", "order": "asc"}), CarSchema())
	assert.Equal(t, "`year` ASC", q.OrderBy)

	q = Build(params(map[string]string{"sort": "year"}), CarSchema())
	assert.Equal(t, "`year` DESC", q.OrderBy, "direction defaults to desc")
}

func TestBuildSortUnknownColumnFallsBack(t *testing.T) {
	// arbitrary column names never reach ORDER BY
	q := Build(params(map[string]string{"sort": "password; DROP TABLE cars"}), CarSchema())
	assert.Equal(t, "`created_at` DESC", q.OrderBy)
}

func TestBuildPriceWindowScenario(t *testing.T) {
	// priceMax=7000000&sort=price_high over records priced 4.2M/6.5M/10.5M
	// must keep the two below the cap and order them descending
	q := Build(params(map[string]string{
		"priceMax": "7000000",
		"sort":     "price_high",
	}), CarSchema())

	cond := findCond(q, "`price` <= ?")
	require.NotNil(t, cond)
	assert.Equal(t, []interface{}{int64(7000000)}, cond.Args)
	assert.Equal(t, "`price` DESC", q.OrderBy)
	assert.NotNil(t, findCond(q, "`is_active` = ?"))
}

func TestNewPageMeta(t *testing.T) {
	meta := NewPageMeta(25, 1, 12)
	assert.Equal(t, 3, meta.Pages)
	assert.True(t, meta.HasNext)
	assert.False(t, meta.HasPrev)

	meta = NewPageMeta(25, 3, 12)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	meta = NewPageMeta(0, 1, 12)
	assert.Equal(t, 0, meta.Pages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}

func TestSplitCSV(t *testing.T) {
	assert.Nil(t, splitCSV(""))
	assert.Nil(t, splitCSV("  "))
	assert.Equal(t, []string{"a", "b"}, splitCSV(" a , b ,,"))
}
