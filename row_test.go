package forestdb

import (
	"testing"
	"time"
)

func TestRowText(t *testing.T) {
	t.Parallel()
	at := time.Date(2024, 4, 1, 12, 30, 45, 123456000, time.UTC)
	row := Row{
		"name":   "steve",
		"raw":    []byte("bytes"),
		"yes":    true,
		"no":     false,
		"count":  int64(42),
		"at":     at,
		"absent": nil,
	}

	tests := []struct {
		column string
		want   string
		ok     bool
	}{
		{"name", "steve", true},
		{"raw", "bytes", true},
		{"yes", "1", true},
		{"no", "0", true},
		{"count", "42", true},
		{"at", "2024-04-01 12:30:45.123456", true},
		{"absent", "", false},
		{"missing", "", false},
	}
	for _, tt := range tests {
		got, ok := row.Text(tt.column)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Text(%q) = %q, %v, want %q, %v", tt.column, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRowHasColumn(t *testing.T) {
	t.Parallel()
	row := Row{"name": "x", "absent": nil}
	if !row.HasColumn("name") {
		t.Error("HasColumn(name) = false")
	}
	if !row.HasColumn("absent") {
		t.Error("HasColumn(absent) = false, NULL cells still count")
	}
	if row.HasColumn("missing") {
		t.Error("HasColumn(missing) = true")
	}
}

func TestRowNative(t *testing.T) {
	t.Parallel()
	row := Row{"count": int64(42), "absent": nil}
	if v, ok := row.Native("count"); !ok || v != int64(42) {
		t.Errorf("Native(count) = %v, %v", v, ok)
	}
	if _, ok := row.Native("absent"); ok {
		t.Error("Native(absent) ok = true, want false")
	}
	if _, ok := row.Native("missing"); ok {
		t.Error("Native(missing) ok = true, want false")
	}
}

func TestRowInt64(t *testing.T) {
	t.Parallel()
	row := Row{
		"i64": int64(1),
		"i":   2,
		"i32": int32(3),
		"u64": uint64(4),
		"f64": 5.9,
		"s":   "6",
	}
	tests := []struct {
		column string
		want   int64
	}{
		{"i64", 1},
		{"i", 2},
		{"i32", 3},
		{"u64", 4},
		{"f64", 5},
		{"s", 0},
		{"missing", 0},
	}
	for _, tt := range tests {
		if got := row.Int64(tt.column); got != tt.want {
			t.Errorf("Int64(%q) = %d, want %d", tt.column, got, tt.want)
		}
	}
}
