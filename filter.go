package grid

import (
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring"
	"golang.org/x/text/cases"
)

// SearchFilter derives the active dataset from per-column, case-insensitive
// substring queries. Every edit rescans the edited column linearly; there
// is no index. Match sets of untouched columns are reused from the previous
// pass.
type SearchFilter struct {
	queries map[int]string
	cache   map[int]columnMatch
	fold    cases.Caser
}

type columnMatch struct {
	query string
	rows  *roaring.Bitmap
}

// NewSearchFilter creates a filter with every query empty.
func NewSearchFilter() *SearchFilter {
	return &SearchFilter{
		queries: make(map[int]string),
		cache:   make(map[int]columnMatch),
		fold:    cases.Fold(),
	}
}

// Set replaces the query for column col. It reports whether the query
// changed.
func (f *SearchFilter) Set(col int, query string) bool {
	if f.queries[col] == query {
		return false
	}
	if query == "" {
		delete(f.queries, col)
	} else {
		f.queries[col] = query
	}
	return true
}

// Query returns the query for column col.
func (f *SearchFilter) Query(col int) string {
	return f.queries[col]
}

// Active reports whether any query is non-empty.
func (f *SearchFilter) Active() bool {
	return len(f.queries) > 0
}

// Clear empties every query.
func (f *SearchFilter) Clear() {
	clear(f.queries)
}

// Invalidate drops cached match sets. Call it when the source dataset is
// replaced.
func (f *SearchFilter) Invalidate() {
	clear(f.cache)
}

// Apply computes the active dataset of d under the current queries. With no
// query set the result is d itself in its original order.
func (f *SearchFilter) Apply(d Dataset) ActiveDataset {
	if !f.Active() {
		return ActiveDataset{src: d}
	}

	cols := make([]int, 0, len(f.queries))
	for col := range f.queries {
		cols = append(cols, col)
	}
	sort.Ints(cols)

	sets := make([]*roaring.Bitmap, 0, len(cols))
	for _, col := range cols {
		sets = append(sets, f.match(d, col, f.queries[col]))
	}
	for col := range f.cache {
		if _, ok := f.queries[col]; !ok {
			delete(f.cache, col)
		}
	}

	var result *roaring.Bitmap
	if len(sets) == 1 {
		result = sets[0]
	} else {
		result = roaring.FastAnd(sets...)
	}

	index := result.ToArray()
	if index == nil {
		index = []uint32{}
	}
	return ActiveDataset{src: d, index: index}
}

// match returns the rows of d whose column col contains query, reusing the
// cached set when the query is unchanged.
func (f *SearchFilter) match(d Dataset, col int, query string) *roaring.Bitmap {
	if m, ok := f.cache[col]; ok && m.query == query {
		return m.rows
	}
	needle := f.fold.String(query)
	rows := roaring.New()
	for i := range d {
		if strings.Contains(f.fold.String(d.Cell(i, col)), needle) {
			rows.Add(uint32(i))
		}
	}
	f.cache[col] = columnMatch{query: query, rows: rows}
	return rows
}
