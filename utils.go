package forestdb

import (
	"regexp"
	"strings"
)

var snakeBoundary = regexp.MustCompile(`([a-z])([A-Z]+)`)

// ToSnakeCase converts a "camelCase" name to its "snake_case" form. For
// example, "BrandName" is converted to "brand_name". An underscore is
// inserted only between a lowercase letter and a following run of uppercase
// letters, so "ID" becomes "id" and "ID2Value" becomes "id2value". Table and
// column names derived from type and field names rely on exactly this
// boundary rule.
func ToSnakeCase(in string) string {
	return strings.ToLower(snakeBoundary.ReplaceAllString(in, "${1}_${2}"))
}

// escapeString doubles every single quote so the value can be inlined into a
// quoted SQL literal.
func escapeString(in string) string {
	return strings.ReplaceAll(in, "'", "''")
}
