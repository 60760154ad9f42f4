package forestdb

// SelectAllSQL generates the statement reading every row of the Model's
// table:
//  SELECT * FROM "car";
func (m *Model) SelectAllSQL() (string, error) {
	if m.tableName == "" {
		return "", ErrNoTableName
	}
	return "SELECT * FROM " + m.quotedTableName() + ";", nil
}
