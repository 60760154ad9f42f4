package forestdb

import (
	"fmt"
	"strings"
)

// maxVarcharLength is the largest length honored by the VARCHAR mapping;
// anything above it (or negative) falls back to TEXT.
const maxVarcharLength = 10485760

// Schema generates the CREATE TABLE IF NOT EXISTS statement for the Model.
//  | field kind                          | PostgreSQL data type |
//  |-------------------------------------|----------------------|
//  | string                              | VARCHAR(30), or VARCHAR(n) / TEXT with a "length" tag |
//  | int8 / int16 / int32 (and unsigned) | INTEGER              |
//  | int / int64 (and unsigned)          | BIGINT               |
//  | float32 / float64                   | DOUBLE PRECISION     |
//  | bool                                | BOOLEAN              |
//  | uuid.UUID                           | VARCHAR(36)          |
//  | time.Time                           | TIMESTAMP            |
//  | named string type                   | TEXT                 |
//  | slice                               | TEXT                 |
//  | other                               | TEXT                 |
// A registered value processor's SQLType wins over everything, then the
// "dataType" tag, then the "auto" marker (SERIAL), then the table above.
// NOT NULL is appended unless the field is marked nullable and is not a
// primary key; UNIQUE follows the "unique" marker. If at least one field is
// a primary key, a ", CONSTRAINT <TypeName>_pk PRIMARY KEY (...)" clause is
// appended.
func (m *Model) Schema() (string, error) {
	if m.tableName == "" {
		return "", ErrNoTableName
	}
	defs := make([]string, len(m.fields))
	for i, f := range m.fields {
		defs[i] = f.ColumnName + " " + m.columnDefinition(f)
	}
	return "CREATE TABLE IF NOT EXISTS " + m.quotedTableName() +
		" (" + strings.Join(defs, ",") + m.primaryKeyConstraint() + ");", nil
}

func (m *Model) columnDefinition(f Field) string {
	var b strings.Builder
	b.WriteString(m.sqlType(f))
	if f.PrimaryKey || !f.Nullable {
		b.WriteString(" NOT NULL")
	}
	if f.Unique {
		b.WriteString(" UNIQUE")
	}
	return b.String()
}

func (m *Model) sqlType(f Field) string {
	if p, ok := m.processors[f.Type]; ok {
		return p.SQLType()
	}
	if f.DataType != "" {
		return f.DataType
	}
	if f.AutoIncrement {
		return "SERIAL"
	}
	switch f.Kind {
	case KindString:
		if f.Length != 0 {
			if f.Length < 0 || f.Length > maxVarcharLength {
				return "TEXT"
			}
			return fmt.Sprintf("VARCHAR(%d)", f.Length)
		}
		return "VARCHAR(30)"
	case KindInt32:
		return "INTEGER"
	case KindInt64:
		return "BIGINT"
	case KindFloat:
		return "DOUBLE PRECISION"
	case KindBool:
		return "BOOLEAN"
	case KindUUID:
		return "VARCHAR(36)"
	case KindTime:
		return "TIMESTAMP"
	}
	return "TEXT"
}

func (m *Model) primaryKeyConstraint() string {
	pks := m.PrimaryKeys()
	if len(pks) == 0 {
		return ""
	}
	return ", CONSTRAINT " + m.typeName + "_pk PRIMARY KEY (" +
		strings.Join(pks, ", ") + ")"
}
