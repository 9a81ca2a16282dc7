package fastexcel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ukaji3/fastexcel-go/pkg/fastexcel/grid"
)

func TestResolveColumnNames(t *testing.T) {
	g := grid.NewRange([][]grid.Cell{
		{grid.String(" id "), grid.Cell{}, grid.Int(2024), grid.String("id")},
		{grid.Int(1), grid.Int(2), grid.Int(3), grid.Int(4)},
	})

	tests := []struct {
		name   string
		header Header
		width  int
		want   []string
	}{
		{
			name:   "none",
			header: NoHeader(),
			width:  3,
			want:   []string{"__UNNAMED__0", "__UNNAMED__1", "__UNNAMED__2"},
		},
		{
			name:   "header row",
			header: HeaderRow(0),
			width:  4,
			want:   []string{"id", "__UNNAMED__1", "2024", "id_1"},
		},
		{
			name:   "header row wider than grid",
			header: HeaderRow(0),
			width:  5,
			want:   []string{"id", "__UNNAMED__1", "2024", "id_1", "__UNNAMED__4"},
		},
		{
			name:   "names padded",
			header: HeaderNames("x", "", "y"),
			width:  4,
			want:   []string{"x", "__UNNAMED__1", "y", "__UNNAMED__3"},
		},
		{
			name:   "names truncated",
			header: HeaderNames("x", "y", "z"),
			width:  2,
			want:   []string{"x", "y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveColumnNames(tt.header, g, tt.width))
		})
	}
}

func TestDedupeNames(t *testing.T) {
	tests := []struct {
		input []string
		want  []string
	}{
		{[]string{"a", "b"}, []string{"a", "b"}},
		{[]string{"a", "a", "a"}, []string{"a", "a_1", "a_2"}},
		{[]string{"a", "a_1", "a"}, []string{"a", "a_1", "a_2"}},
		{[]string{}, []string{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, dedupeNames(tt.input))
	}
}

func TestSheetColumnNames(t *testing.T) {
	s, err := NewSheet("s", nil, sampleGrid(), HeaderRow(0))
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, s.ColumnNames())
}
