package forestdb

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ConvertToEntity builds a new T and populates its persisted fields from a
// row. Columns missing from the row leave the field untouched; NULL cells
// leave it at its zero value (zero for numeric and boolean fields, nil for
// pointers). Present cells are parsed by kind: uuid.UUID from its string
// form, named string types by conversion, registered processors by their
// Parse function, and everything else from the row's native value.
func ConvertToEntity[T any](m *Model, row Row) (T, error) {
	var entity T
	rv := reflect.ValueOf(&entity).Elem()
	if err := m.populate(rv, row); err != nil {
		return entity, err
	}
	return entity, nil
}

func (m *Model) populate(rv reflect.Value, row Row) error {
	if rv.Kind() != reflect.Struct {
		return ErrNotStruct
	}
	if m.structType != nil && rv.Type() != m.structType {
		return fmt.Errorf("%w: have %s, want %s", ErrWrongType, rv.Type(), m.structType)
	}
	for _, f := range m.fields {
		if !row.HasColumn(f.ColumnName) {
			continue
		}
		if err := m.setField(rv.FieldByName(f.Name), f, row); err != nil {
			return fmt.Errorf("column %s: %w", f.ColumnName, err)
		}
	}
	return nil
}

func (m *Model) setField(fv reflect.Value, f Field, row Row) error {
	if !fv.IsValid() || !fv.CanSet() {
		return nil
	}
	text, ok := row.Text(f.ColumnName)
	if !ok {
		// NULL cell: the zero value already matches the contract.
		return nil
	}

	target := fv
	if fv.Kind() == reflect.Ptr {
		target = reflect.New(fv.Type().Elem()).Elem()
	}

	switch {
	case f.Kind == KindUUID:
		id, err := uuid.Parse(text)
		if err != nil {
			return err
		}
		target.Set(reflect.ValueOf(id))
	case f.Kind == KindEnum:
		target.SetString(text)
	default:
		if p, ok := m.processors[f.Type]; ok {
			parsed, err := p.Parse(text)
			if err != nil {
				return err
			}
			if err := assignValue(target, parsed); err != nil {
				return err
			}
		} else {
			native, _ := row.Native(f.ColumnName)
			if err := assignValue(target, native); err != nil {
				// Drivers on TEXT-heavy schemas hand numbers back as text.
				if perr := parseText(target, f.Kind, text); perr != nil {
					return err
				}
			}
		}
	}

	if fv.Kind() == reflect.Ptr {
		fv.Set(target.Addr())
	}
	return nil
}

// assignValue sets value into target, converting between compatible types;
// drivers commonly hand back int64, float64 or []byte regardless of the
// column's declared width.
func assignValue(target reflect.Value, value interface{}) error {
	if value == nil {
		return nil
	}
	vv := reflect.ValueOf(value)
	if vv.Type().AssignableTo(target.Type()) {
		target.Set(vv)
		return nil
	}
	if vv.Type().ConvertibleTo(target.Type()) {
		target.Set(vv.Convert(target.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, target.Type())
}

// parseText converts a cell's text form into the field's kind.
func parseText(target reflect.Value, kind Kind, text string) error {
	switch kind {
	case KindString:
		target.SetString(text)
		return nil
	case KindInt32, KindInt64:
		switch target.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			n, err := strconv.ParseUint(text, 10, 64)
			if err != nil {
				return err
			}
			target.SetUint(n)
		default:
			n, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				return err
			}
			target.SetInt(n)
		}
		return nil
	case KindFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return err
		}
		target.SetFloat(f)
		return nil
	case KindBool:
		switch text {
		case "1":
			target.SetBool(true)
		case "0":
			target.SetBool(false)
		default:
			b, err := strconv.ParseBool(text)
			if err != nil {
				return err
			}
			target.SetBool(b)
		}
		return nil
	case KindTime:
		t, err := time.Parse(timestampLayout, text)
		if err != nil {
			return err
		}
		target.Set(reflect.ValueOf(t))
		return nil
	}
	return fmt.Errorf("no text form for %s", target.Type())
}

// backfillSerial copies a database-assigned auto-increment key from a
// returned row back into the instance. Best effort: it needs a pointer
// instance and a row containing the key column, and silently does nothing
// otherwise.
func (m *Model) backfillSerial(instance interface{}, row Row) {
	rv := reflect.ValueOf(instance)
	if rv.Kind() != reflect.Ptr {
		return
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return
	}
	for _, f := range m.fields {
		if !f.AutoIncrement || !row.HasColumn(f.ColumnName) {
			continue
		}
		if f.Kind != KindInt32 && f.Kind != KindInt64 {
			continue
		}
		fv := rv.FieldByName(f.Name)
		if !fv.IsValid() || !fv.CanSet() {
			continue
		}
		target := fv
		if fv.Kind() == reflect.Ptr {
			target = reflect.New(fv.Type().Elem()).Elem()
		}
		n := row.Int64(f.ColumnName)
		switch target.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			target.SetInt(n)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			target.SetUint(uint64(n))
		default:
			continue
		}
		if fv.Kind() == reflect.Ptr {
			fv.Set(target.Addr())
		}
	}
}
