package forestdb

import (
	"reflect"
	"sort"
	"strings"
)

type (
	// ValueProcessor converts between a semantic type and its textual SQL
	// representation. Processors are registered per exact semantic type on
	// the API (or passed to a Model as a ProcessorMap); there is no
	// inheritance-based fallback. A processor takes precedence over the
	// built-in formatting, parsing and SQL type mapping for its type.
	ValueProcessor interface {
		// Format renders a value of the processor's type as SQL literal
		// text. The result is quoted and escaped by the generator.
		Format(value interface{}) string
		// Parse converts stored text back into a value of the processor's
		// type.
		Parse(text string) (interface{}, error)
		// SQLType is the column type used when the field has no explicit
		// override.
		SQLType() string
	}

	// ProcessorMap is a value-processor registry keyed by semantic type.
	// It is populated during setup and treated as read-only afterwards.
	ProcessorMap map[reflect.Type]ValueProcessor
)

// StringSliceProcessor stores []string values as a ";"-joined TEXT column.
type StringSliceProcessor struct{}

func (StringSliceProcessor) Format(value interface{}) string {
	items, _ := value.([]string)
	return strings.Join(items, ";")
}

func (StringSliceProcessor) Parse(text string) (interface{}, error) {
	return strings.Split(text, ";"), nil
}

func (StringSliceProcessor) SQLType() string { return "TEXT" }

// StringMapProcessor stores map[string]string values as a "key:value"
// ";"-joined TEXT column. Entries are formatted in sorted key order so the
// output is deterministic.
type StringMapProcessor struct{}

func (StringMapProcessor) Format(value interface{}) string {
	entries, _ := value.(map[string]string)
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ":" + entries[k]
	}
	return strings.Join(parts, ";")
}

func (StringMapProcessor) Parse(text string) (interface{}, error) {
	entries := map[string]string{}
	for _, part := range strings.Split(text, ";") {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			continue
		}
		entries[kv[0]] = kv[1]
	}
	return entries, nil
}

func (StringMapProcessor) SQLType() string { return "TEXT" }
