package fastexcel

import (
	"strconv"
	"strings"

	"github.com/ukaji3/fastexcel-go/pkg/fastexcel/grid"
)

// unnamedPrefix names columns that have no header text.
const unnamedPrefix = "__UNNAMED__"

// ResolveColumnNames returns width column names for g under header h:
// the literal names of a HeaderWith header, the text of the header row of a
// HeaderAt header, and generated names otherwise. Blank names are replaced
// by __UNNAMED__<index> and repeated names get a _<n> suffix.
func ResolveColumnNames(h Header, g grid.Grid, width int) []string {
	names := make([]string, width)
	for col := range names {
		switch h.Kind() {
		case HeaderWith:
			if col < len(h.names) {
				names[col] = strings.TrimSpace(h.names[col])
			}
		case HeaderAt:
			if c, ok := g.Get(h.row, col); ok {
				if v, ok := c.AsString(); ok {
					names[col] = strings.TrimSpace(v)
				}
			}
		}
		if names[col] == "" {
			names[col] = unnamedPrefix + strconv.Itoa(col)
		}
	}
	return dedupeNames(names)
}

// dedupeNames suffixes repeated names in place: a, a, a -> a, a_1, a_2.
func dedupeNames(names []string) []string {
	seen := make(map[string]int, len(names))
	taken := make(map[string]bool, len(names))
	for _, name := range names {
		taken[name] = true
	}
	for i, name := range names {
		n, dup := seen[name]
		if !dup {
			seen[name] = 0
			continue
		}
		for {
			n++
			candidate := name + "_" + strconv.Itoa(n)
			if !taken[candidate] {
				names[i] = candidate
				taken[candidate] = true
				break
			}
		}
		seen[name] = n
	}
	return names
}

// ColumnNames returns the names of the sheet's columns as read from its
// header, one per grid column.
func (s *Sheet) ColumnNames() []string {
	return ResolveColumnNames(s.header, s.data, s.Width())
}
