package forestdb

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoTableName = errors.New("no table name")
	ErrNotStruct   = errors.New("not a struct")
	ErrWrongType   = errors.New("instance type does not match model")
	ErrNoDatabase  = errors.New("no such database")
)

// timestampLayout is the textual form of time values in generated literals.
const timestampLayout = "2006-01-02 15:04:05.999999"

// execute logs and runs a generated statement on the model's connection.
func (m *Model) execute(ctx context.Context, query string, args ...interface{}) ([]Row, error) {
	if m.connection == nil {
		return nil, ErrNoDatabase
	}
	if m.logger != nil {
		m.logger.Debug("forestdb:", query)
	}
	return m.connection.Query(ctx, query, args...)
}

// instanceValue unwraps an entity instance (value or pointer) and checks it
// against the model's struct type.
func (m *Model) instanceValue(instance interface{}) (reflect.Value, error) {
	rv := reflect.ValueOf(instance)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return reflect.Value{}, ErrNotStruct
	}
	if m.structType != nil && rv.Type() != m.structType {
		return reflect.Value{}, fmt.Errorf("%w: have %s, want %s",
			ErrWrongType, rv.Type(), m.structType)
	}
	return rv, nil
}

// columnList returns every persisted column name in declaration order,
// joined by ",". Schema, UpsertSQL and valueList all iterate the same field
// slice, so column and value sequences always line up.
func (m *Model) columnList() string {
	names := make([]string, len(m.fields))
	for i, f := range m.fields {
		names[i] = f.ColumnName
	}
	return strings.Join(names, ",")
}

// valueList renders every persisted field of rv as an inlined literal, in
// the same order as columnList.
func (m *Model) valueList(rv reflect.Value) string {
	vals := make([]string, len(m.fields))
	for i, f := range m.fields {
		vals[i] = m.literal(f, rv.FieldByName(f.Name))
	}
	return strings.Join(vals, ",")
}

// literal renders one field value as SQL text. Absent values (nil pointers,
// slices, maps, interfaces) become unquoted NULL. Everything else is wrapped
// in single quotes with quotes doubled, numbers and booleans included; the
// existing schema convention quotes every literal and readers depend on it.
func (m *Model) literal(f Field, value reflect.Value) string {
	if isAbsent(value) {
		return "NULL"
	}
	value = reflect.Indirect(value)
	if p, ok := m.processors[f.Type]; ok {
		return quoteLiteral(p.Format(value.Interface()))
	}
	return quoteLiteral(formatValue(f.Kind, value))
}

func isAbsent(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return v.IsNil()
	}
	return false
}

func quoteLiteral(s string) string {
	return "'" + escapeString(s) + "'"
}

func formatValue(kind Kind, v reflect.Value) string {
	switch kind {
	case KindString, KindEnum:
		return v.String()
	case KindInt32, KindInt64:
		switch v.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return strconv.FormatUint(v.Uint(), 10)
		default:
			return strconv.FormatInt(v.Int(), 10)
		}
	case KindFloat:
		bitSize := 64
		if v.Kind() == reflect.Float32 {
			bitSize = 32
		}
		return strconv.FormatFloat(v.Float(), 'f', -1, bitSize)
	case KindBool:
		return strconv.FormatBool(v.Bool())
	case KindUUID:
		if id, ok := v.Interface().(uuid.UUID); ok {
			return id.String()
		}
	case KindTime:
		if t, ok := v.Interface().(time.Time); ok {
			return t.Format(timestampLayout)
		}
	}
	return fmt.Sprint(v.Interface())
}
