package forestdb

import "fmt"

// UpsertSQL generates the insert-or-update statement for one instance:
//  INSERT INTO "car" (id,brand_name) VALUES ('1','Toyota''s')
//  ON CONFLICT (id) DO UPDATE SET (id,brand_name) = ('1','Toyota''s');
// Columns and values cover every persisted field in declaration order, the
// same order Schema uses. The conflict target is the entity's explicit
// conflict policy, or the primary-key column list when none is declared.
func (m *Model) UpsertSQL(instance interface{}) (string, error) {
	if m.tableName == "" {
		return "", ErrNoTableName
	}
	rv, err := m.instanceValue(instance)
	if err != nil {
		return "", err
	}
	columns := m.columnList()
	values := m.valueList(rv)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET (%s) = (%s);",
		m.quotedTableName(), columns, values, m.ConflictTarget(), columns, values), nil
}

// autoColumns returns the column names of auto-increment fields, the ones
// whose database-assigned values are read back after an insert.
func (m *Model) autoColumns() (out []string) {
	for _, f := range m.fields {
		if f.AutoIncrement {
			out = append(out, f.ColumnName)
		}
	}
	return
}
