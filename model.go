package forestdb

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gopsql/logger"
)

type (
	// Model describes how one entity struct maps to a database table. It is
	// created from a struct with NewModel and holds the table name, the
	// conflict policy and the ordered list of persisted fields. A field is
	// persisted iff it carries a "column" tag; all other tags on a field
	// without "column" are ignored. Column names default to the snake_case
	// form of the field name, table names to the snake_case form of the
	// struct name.
	//
	// Models are cheap to build and carry no mutable state, so deriving one
	// per call is fine; callers that generate many statements for the same
	// type may keep one around.
	Model struct {
		structType     reflect.Type
		typeName       string
		tableName      string
		conflictPolicy string
		fields         []Field

		connection Database
		logger     logger.Logger
		processors ProcessorMap
	}

	// Field is the column descriptor of a single persisted struct field.
	Field struct {
		Name          string       // struct field name
		ColumnName    string       // column name in database
		Type          reflect.Type // semantic type (pointer fields are dereferenced)
		Kind          Kind         // coarse semantic kind, drives SQL type and parsing
		PrimaryKey    bool         // "pk" tag
		Nullable      bool         // "nullable" tag
		Unique        bool         // "unique" tag
		AutoIncrement bool         // "auto" tag
		DataType      string       // "dataType" tag, overrides the kind mapping
		Length        int          // "length" tag for string fields, 0 means unset
	}

	// ModelWithTableName is implemented by entity structs that override the
	// derived table name.
	ModelWithTableName interface {
		TableName() string
	}

	// ModelWithConflictPolicy is implemented by entity structs that override
	// the conflict target of generated upserts. The returned value replaces
	// the computed primary-key column list inside ON CONFLICT (...).
	ModelWithConflictPolicy interface {
		ConflictPolicy() string
	}
)

// Kind is a coarse classification of a field's semantic type, computed once
// at extraction time. Generators and the row mapper dispatch on it instead of
// re-inspecting types.
type Kind int

const (
	KindOther Kind = iota
	KindString
	KindInt32 // 8/16/32-bit integers, signed or unsigned
	KindInt64 // int, int64, uint, uint64
	KindFloat
	KindBool
	KindUUID
	KindTime
	KindEnum // named string type
	KindSlice
)

var (
	uuidType = reflect.TypeOf(uuid.UUID{})
	timeType = reflect.TypeOf(time.Time{})
)

// NewModel derives a Model from an entity struct (or pointer to one). The
// walk is deterministic: embedded structs are flattened recursively in place,
// so embedding a parent type first yields its columns first, and remaining
// columns follow field declaration order. For available options, see
// SetOptions.
func NewModel(object interface{}, options ...interface{}) *Model {
	m := &Model{}
	rt := reflect.TypeOf(object)
	if rt != nil && rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt != nil && rt.Kind() == reflect.Struct {
		m.structType = rt
		m.typeName = rt.Name()
		m.tableName = toTableName(object, rt)
		m.fields = parseStruct(rt)
		if o, ok := object.(ModelWithConflictPolicy); ok {
			m.conflictPolicy = o.ConflictPolicy()
		}
	}
	m.SetOptions(options...)
	return m
}

func (m *Model) String() string {
	return `model (table: "` + m.tableName + `") has ` +
		strconv.Itoa(len(m.fields)) + " fields"
}

// TableName returns the resolved, unquoted table name. Empty means the name
// could not be resolved and every generator operation will fail with
// ErrNoTableName.
func (m *Model) TableName() string {
	return m.tableName
}

// TypeName returns the simple name of the entity struct.
func (m *Model) TypeName() string {
	return m.typeName
}

// Fields returns the ordered column descriptors.
func (m *Model) Fields() []Field {
	return m.fields
}

// FieldByName returns the descriptor for a struct field name, nil if the
// field is not persisted.
func (m *Model) FieldByName(name string) *Field {
	for i := range m.fields {
		if m.fields[i].Name == name {
			return &m.fields[i]
		}
	}
	return nil
}

// PrimaryKeys returns the column names of all primary-key fields in
// declaration order.
func (m *Model) PrimaryKeys() (out []string) {
	for _, f := range m.fields {
		if f.PrimaryKey {
			out = append(out, f.ColumnName)
		}
	}
	return
}

// ConflictTarget returns the column list used inside ON CONFLICT (...): the
// entity's explicit conflict policy if it declares one, otherwise the
// primary-key column list.
func (m *Model) ConflictTarget() string {
	if m.conflictPolicy != "" {
		return m.conflictPolicy
	}
	return strings.Join(m.PrimaryKeys(), ", ")
}

func (m *Model) quotedTableName() string {
	return `"` + m.tableName + `"`
}

// SetOptions sets the database connection, logger and/or processor map from
// variadic options, dispatching on type.
func (m *Model) SetOptions(options ...interface{}) *Model {
	for _, option := range options {
		switch o := option.(type) {
		case Database:
			m.SetConnection(o)
		case logger.Logger:
			m.SetLogger(o)
		case ProcessorMap:
			m.SetProcessors(o)
		}
	}
	return m
}

// SetConnection sets the database connection used by convenience executions.
func (m *Model) SetConnection(db Database) *Model {
	m.connection = db
	return m
}

// SetLogger sets the logger. Use logger.StandardLogger to print generated
// statements to the console; by default nothing is logged.
func (m *Model) SetLogger(l logger.Logger) *Model {
	m.logger = l
	return m
}

// SetProcessors sets the value-processor registry consulted for SQL types,
// literal formatting and parsing. Lookup is by exact semantic type.
func (m *Model) SetProcessors(p ProcessorMap) *Model {
	m.processors = p
	return m
}

// toTableName resolves the table name: the entity's TableName() override
// wins, otherwise the snake_case form of the struct's simple name. Anonymous
// structs resolve empty.
func toTableName(object interface{}, rt reflect.Type) string {
	if o, ok := object.(ModelWithTableName); ok {
		if name := o.TableName(); name != "" {
			return name
		}
	}
	return ToSnakeCase(rt.Name())
}

// parseStruct collects the column descriptors of every persisted field,
// recursing into embedded structs in place.
func parseStruct(rt reflect.Type) (fields []Field) {
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.Anonymous {
			ft := f.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				fields = append(fields, parseStruct(ft)...)
				continue
			}
		}
		if f.PkgPath != "" {
			continue // unexported fields cannot be read or written back
		}
		columnName, persisted := f.Tag.Lookup("column")
		if !persisted {
			continue
		}
		if idx := strings.Index(columnName, ","); idx != -1 {
			columnName = columnName[:idx]
		}
		if columnName == "" {
			columnName = ToSnakeCase(f.Name)
		}

		semantic := f.Type
		if semantic.Kind() == reflect.Ptr {
			semantic = semantic.Elem()
		}

		length := 0
		if s, ok := f.Tag.Lookup("length"); ok {
			if n, err := strconv.Atoi(s); err == nil {
				length = n
			}
		}

		_, pk := f.Tag.Lookup("pk")
		_, nullable := f.Tag.Lookup("nullable")
		_, unique := f.Tag.Lookup("unique")
		_, auto := f.Tag.Lookup("auto")

		fields = append(fields, Field{
			Name:          f.Name,
			ColumnName:    columnName,
			Type:          semantic,
			Kind:          kindOf(semantic),
			PrimaryKey:    pk,
			Nullable:      nullable,
			Unique:        unique,
			AutoIncrement: auto,
			DataType:      f.Tag.Get("dataType"),
			Length:        length,
		})
	}
	return
}

func kindOf(t reflect.Type) Kind {
	switch t {
	case uuidType:
		return KindUUID
	case timeType:
		return KindTime
	}
	switch t.Kind() {
	case reflect.String:
		if t.PkgPath() != "" {
			return KindEnum
		}
		return KindString
	case reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return KindInt32
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return KindInt64
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.Bool:
		return KindBool
	case reflect.Slice, reflect.Array:
		return KindSlice
	}
	return KindOther
}
