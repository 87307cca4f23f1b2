// Package query turns the raw query string of a listing search request into
// a filter, sort and pagination description for the database layer. The same
// builder serves cars and parts; only the Schema differs.
package query

// Default page sizes
const (
	DefaultLimit      = 12 // public listing endpoints
	AdminDefaultLimit = 20 // admin and owner views
)

// RangeSpec binds one query parameter to an inclusive numeric bound.
type RangeSpec struct {
	Param  string // query parameter name, e.g. "priceMin"
	Column string // database column, e.g. "price"
	Op     string // ">=" or "<="
}

// Schema declares which query parameters are filterable for one listing kind
// and how each one maps onto the table. Matching is case-insensitive through
// the utf8mb4 collation the database connection is configured with.
type Schema struct {
	// Pattern params are comma-separated lists matched as substrings
	// (make, model, city and similar free-text-like fields). A record
	// matches when the column contains any of the listed values.
	Pattern map[string]string

	// Exact params are comma-separated lists matched against controlled
	// vocabularies (fuelType, transmission and similar enum fields).
	Exact map[string]string

	// Equal params are single exact-match values (seller scoping).
	Equal map[string]string

	// Flags add a constraint only for the literal value "true".
	Flags map[string]string

	// Ranges are the inclusive numeric bounds.
	Ranges []RangeSpec

	// SearchColumns participate in the free-text "search" OR-group.
	SearchColumns []string

	// Sortable whitelists the columns the "sort" parameter may name.
	// Anything else falls back to DefaultSort.
	Sortable map[string]bool

	// DefaultSort is the column used when "sort" is absent or unknown.
	DefaultSort string

	// DefaultLimit is the page size used when "limit" is absent or malformed.
	DefaultLimit int

	// ActiveColumn, when set, pins results to active listings. Owner and
	// admin views clear it so inactive listings remain visible.
	ActiveColumn string
}

// OwnerView returns a copy of the schema without the active-only constraint,
// for endpoints scoped to the caller's own listings.
func (s Schema) OwnerView() Schema {
	s.ActiveColumn = ""
	return s
}

// AdminView returns a copy of the schema without the active-only constraint
// and with the admin page size.
func (s Schema) AdminView() Schema {
	s.ActiveColumn = ""
	s.DefaultLimit = AdminDefaultLimit
	return s
}

// CarSchema describes the filterable surface of car listings.
func CarSchema() Schema {
	return Schema{
		Pattern: map[string]string{
			"make":  "make",
			"model": "model",
			"city":  "city",
			"color": "color",
		},
		Exact: map[string]string{
			"fuelType":     "fuel_type",
			"transmission": "transmission",
			"bodyType":     "body_type",
			"condition":    "condition",
			"assembly":     "assembly",
		},
		Equal: map[string]string{
			"seller": "seller_id",
		},
		Flags: map[string]string{
			"featured": "is_featured",
		},
		Ranges: []RangeSpec{
			{Param: "yearFrom", Column: "year", Op: ">="},
			{Param: "yearTo", Column: "year", Op: "<="},
			{Param: "priceMin", Column: "price", Op: ">="},
			{Param: "priceMax", Column: "price", Op: "<="},
			{Param: "mileageMax", Column: "mileage", Op: "<="},
		},
		SearchColumns: []string{"title", "make", "model", "description"},
		Sortable: map[string]bool{
			"created_at": true,
			"price":      true,
			"year":       true,
			"mileage":    true,
			"views":      true,
		},
		DefaultSort:  "created_at",
		DefaultLimit: DefaultLimit,
		ActiveColumn: "is_active",
	}
}

// PartSchema describes the filterable surface of part listings.
func PartSchema() Schema {
	return Schema{
		Pattern: map[string]string{
			"city": "city",
		},
		Exact: map[string]string{
			"category":  "category",
			"condition": "condition",
		},
		Equal: map[string]string{
			"seller": "seller_id",
		},
		Flags: map[string]string{
			"featured": "is_featured",
		},
		Ranges: []RangeSpec{
			{Param: "priceMin", Column: "price", Op: ">="},
			{Param: "priceMax", Column: "price", Op: "<="},
		},
		SearchColumns: []string{"title", "description"},
		Sortable: map[string]bool{
			"created_at": true,
			"price":      true,
			"views":      true,
		},
		DefaultSort:  "created_at",
		DefaultLimit: DefaultLimit,
		ActiveColumn: "is_active",
	}
}
