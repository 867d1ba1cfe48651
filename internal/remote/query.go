package remote

// Op is a filter operator supported by live and one-shot queries.
type Op int

const (
	// OpEqual matches documents whose field equals the value.
	OpEqual Op = iota
	// OpArrayContains matches documents whose array field holds the value.
	OpArrayContains
	// OpPrefix matches documents whose string field starts with the value.
	OpPrefix
)

// PrefixEnd is appended to a prefix to form the exclusive upper bound of
// a prefix range.
const PrefixEnd = "\uf8ff"

// Filter is one condition of a Query.
type Filter struct {
	Field string
	Op    Op
	Value any
}

// Query selects documents of one collection. Builder methods return a
// modified copy; a Query is never mutated in place.
type Query struct {
	Collection string
	Filters    []Filter
	OrderField string
	Descending bool
	MaxResults int64
}

// Collection starts a query over the named collection.
func Collection(name string) Query {
	return Query{Collection: name}
}

func (q Query) with(f Filter) Query {
	filters := make([]Filter, len(q.Filters), len(q.Filters)+1)
	copy(filters, q.Filters)
	q.Filters = append(filters, f)
	return q
}

// Where adds an equality filter.
func (q Query) Where(field string, value any) Query {
	return q.with(Filter{Field: field, Op: OpEqual, Value: value})
}

// WhereArrayContains adds an array membership filter.
func (q Query) WhereArrayContains(field string, value any) Query {
	return q.with(Filter{Field: field, Op: OpArrayContains, Value: value})
}

// WherePrefix adds a string prefix filter.
func (q Query) WherePrefix(field, prefix string) Query {
	return q.with(Filter{Field: field, Op: OpPrefix, Value: prefix})
}

// OrderBy sorts results by field.
func (q Query) OrderBy(field string, descending bool) Query {
	q.OrderField = field
	q.Descending = descending
	return q
}

// Limit caps the number of results; zero means no cap.
func (q Query) Limit(n int64) Query {
	q.MaxResults = n
	return q
}
