package grid

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCellAsInt(t *testing.T) {
	tests := []struct {
		name   string
		cell   Cell
		want   int64
		wantOK bool
	}{
		{"Int", Int(42), 42, true},
		{"Negative int", Int(-7), -7, true},
		{"Whole float", Float(3.0), 3, true},
		{"Fractional float", Float(2.5), 0, false},
		{"NaN", Float(math.NaN()), 0, false},
		{"Too large float", Float(1e19), 0, false},
		{"Bool", Bool(true), 0, false},
		{"Numeric text", String("12"), 0, false},
		{"Empty", Cell{}, 0, false},
		{"Error", Error("#N/A"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.cell.AsInt()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCellAsFloat(t *testing.T) {
	tests := []struct {
		name   string
		cell   Cell
		want   float64
		wantOK bool
	}{
		{"Float", Float(1.25), 1.25, true},
		{"Int", Int(4), 4, true},
		{"Text", String("1.5"), 0, false},
		{"Bool", Bool(false), 0, false},
		{"DateTime", DateTime(time.Now()), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.cell.AsFloat()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCellAsString(t *testing.T) {
	tests := []struct {
		name   string
		cell   Cell
		want   string
		wantOK bool
	}{
		{"Text", String("a"), "a", true},
		{"Empty text", String(""), "", true},
		{"Int", Int(1), "1", true},
		{"Float", Float(200.5), "200.5", true},
		{"Whole float", Float(3), "3", true},
		{"Bool true", Bool(true), "true", true},
		{"Bool false", Bool(false), "false", true},
		{"DateTime", DateTime(time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)), "2024-03-01 08:30:00", true},
		{"DateTime millis", DateTime(time.Date(2024, 3, 1, 8, 30, 0, 250e6, time.UTC)), "2024-03-01 08:30:00.250", true},
		{"Int with leading zeros", Int(501).WithText("00501"), "00501", true},
		{"Float in exponent form", Float(1000).WithText("1e3"), "1e3", true},
		{"Bool as typed", Bool(true).WithText("TRUE"), "TRUE", true},
		{"Text ignores source text", String("a").WithText("b"), "a", true},
		{"Empty", Cell{}, "", false},
		{"Error", Error("#DIV/0!"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.cell.AsString()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCellWithTextKeepsValue(t *testing.T) {
	c := Int(501).WithText("00501")
	assert.Equal(t, KindInt, c.Kind())

	i, ok := c.AsInt()
	assert.True(t, ok)
	assert.Equal(t, int64(501), i)

	f, ok := c.AsFloat()
	assert.True(t, ok)
	assert.Equal(t, 501.0, f)
}

func TestCellAsBool(t *testing.T) {
	v, ok := Bool(true).AsBool()
	assert.True(t, ok)
	assert.True(t, v)

	_, ok = Int(1).AsBool()
	assert.False(t, ok)
	_, ok = String("true").AsBool()
	assert.False(t, ok)
}

func TestCellAsTime(t *testing.T) {
	want := time.Date(2005, 2, 23, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		cell   Cell
		want   time.Time
		wantOK bool
	}{
		{"DateTime", DateTime(want), want, true},
		{"Serial int", Int(38406), want, true},
		{"Serial float", Float(38406.5), want.Add(12 * time.Hour), true},
		{"ISO date", String("2005-02-23"), want, true},
		{"ISO datetime", String("2005-02-23T00:00:00"), want, true},
		{"RFC3339", String("2005-02-23T00:00:00Z"), want, true},
		{"Bad text", String("yesterday"), time.Time{}, false},
		{"Negative serial", Float(-1), time.Time{}, false},
		{"Bool", Bool(true), time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.cell.AsTime()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "empty", Cell{}.Kind().String())
	assert.Equal(t, "datetime", KindDateTime.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
