package fastexcel

import (
	"fmt"
	"os"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"gopkg.in/yaml.v3"
)

// ColumnType is the declared type of an output column.
type ColumnType uint8

const (
	// TypeBoolean materializes boolean cells.
	TypeBoolean ColumnType = iota
	// TypeInt64 materializes integer cells.
	TypeInt64
	// TypeFloat64 materializes numeric cells.
	TypeFloat64
	// TypeString materializes cells rendered as text.
	TypeString
	// TypeDatetime materializes date/time cells as epoch milliseconds.
	TypeDatetime
	// TypeNull materializes a column of nulls.
	TypeNull

	numColumnTypes
)

var columnTypeNames = [numColumnTypes]string{
	TypeBoolean:  "boolean",
	TypeInt64:    "int64",
	TypeFloat64:  "float64",
	TypeString:   "string",
	TypeDatetime: "datetime",
	TypeNull:     "null",
}

// datetimeType is a timezone-naive millisecond timestamp.
var datetimeType = &arrow.TimestampType{Unit: arrow.Millisecond}

func (t ColumnType) String() string {
	if t < numColumnTypes {
		return columnTypeNames[t]
	}
	return fmt.Sprintf("ColumnType(%d)", uint8(t))
}

// Valid reports whether t is one of the supported column types.
func (t ColumnType) Valid() bool { return t < numColumnTypes }

// ArrowType returns the Arrow data type a column of type t is built as.
func (t ColumnType) ArrowType() arrow.DataType {
	switch t {
	case TypeBoolean:
		return arrow.FixedWidthTypes.Boolean
	case TypeInt64:
		return arrow.PrimitiveTypes.Int64
	case TypeFloat64:
		return arrow.PrimitiveTypes.Float64
	case TypeString:
		return arrow.BinaryTypes.String
	case TypeDatetime:
		return datetimeType
	case TypeNull:
		return arrow.Null
	}
	panic(fmt.Sprintf("fastexcel: unsupported column type %v", t))
}

// ParseColumnType parses a column type name. Matching is case-insensitive.
func ParseColumnType(s string) (ColumnType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bool", "boolean":
		return TypeBoolean, nil
	case "int", "int64", "integer":
		return TypeInt64, nil
	case "float", "float64", "double":
		return TypeFloat64, nil
	case "str", "string", "text", "utf8":
		return TypeString, nil
	case "datetime", "timestamp", "date":
		return TypeDatetime, nil
	case "null":
		return TypeNull, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColumnType, s)
}

// Field is a named, typed output column.
type Field struct {
	Name string
	Type ColumnType
}

// Schema is the ordered list of columns to materialize from a sheet.
type Schema []Field

// Names returns the column names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Arrow returns the Arrow schema of the record built from s. All fields are
// nullable.
func (s Schema) Arrow() *arrow.Schema {
	fields := make([]arrow.Field, len(s))
	for i, f := range s {
		fields[i] = arrow.Field{Name: f.Name, Type: f.Type.ArrowType(), Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}

// Validate checks that every column type is supported.
func (s Schema) Validate() error {
	for i, f := range s {
		if !f.Type.Valid() {
			return fmt.Errorf("column %d (%q): %w: %d", i, f.Name, ErrUnknownColumnType, uint8(f.Type))
		}
	}
	return nil
}

// BuildSchema pairs names with types. Columns without a type are String.
func BuildSchema(names []string, types []ColumnType) Schema {
	schema := make(Schema, len(names))
	for i, name := range names {
		typ := TypeString
		if i < len(types) {
			typ = types[i]
		}
		schema[i] = Field{Name: name, Type: typ}
	}
	return schema
}

// ParseSchema parses the "name:type,name:type" form. A bare type without a
// name yields a field with an empty name, to be filled by ResolveColumnNames.
func ParseSchema(s string) (Schema, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var schema Schema
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("empty column in schema %q", s)
		}

		var name, typeName string
		if idx := strings.LastIndex(part, ":"); idx >= 0 {
			name, typeName = strings.TrimSpace(part[:idx]), part[idx+1:]
		} else {
			typeName = part
		}

		typ, err := ParseColumnType(typeName)
		if err != nil {
			return nil, err
		}
		schema = append(schema, Field{Name: name, Type: typ})
	}
	return schema, nil
}

// schemaFile is the on-disk layout read by LoadSchemaFile. Types are kept
// as nodes so that an unquoted null is read as the null type.
type schemaFile struct {
	Columns []struct {
		Name string    `yaml:"name"`
		Type yaml.Node `yaml:"type"`
	} `yaml:"columns"`
}

// LoadSchemaFile reads a schema from a YAML or JSON document of the form
// {"columns": [{"name": "a", "type": "int64"}, ...]}.
func LoadSchemaFile(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc schemaFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse schema file %s: %w", path, err)
	}
	if len(doc.Columns) == 0 {
		return nil, fmt.Errorf("schema file %s declares no columns", path)
	}

	schema := make(Schema, len(doc.Columns))
	for i, col := range doc.Columns {
		if col.Type.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("schema file %s: column %d (%q) has no type", path, i, col.Name)
		}
		typ, err := ParseColumnType(col.Type.Value)
		if err != nil {
			return nil, fmt.Errorf("schema file %s: column %d (%q): %w", path, i, col.Name, err)
		}
		schema[i] = Field{Name: col.Name, Type: typ}
	}
	return schema, nil
}
