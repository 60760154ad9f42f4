package forestdb

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
)

// Test structs for Model tests
type (
	car struct {
		ID          *int    `column:"" pk:"" auto:""`
		BrandName   string  `column:"" length:"50"`
		Price       float64 `column:""`
		Description *string `column:"" nullable:"" length:"-1"`
	}

	unmarkedFields struct {
		ID       int    `column:"" pk:""`
		Name     string `column:""`
		Internal string
		Ignored  int `pk:"" unique:""` // markers without column
	}

	baseEntity struct {
		ID        int       `column:"" pk:""`
		CreatedAt time.Time `column:""`
	}

	player struct {
		baseEntity
		Nickname string `column:"" unique:""`
	}

	renamedEntity struct {
		Lat float64 `column:"latitude"`
		Lng float64 `column:"longitude"`
	}

	customNamed struct {
		ID int `column:"" pk:""`
	}

	customConflict struct {
		ID    int    `column:"" pk:""`
		Email string `column:"" unique:""`
	}

	playerRank string

	kindTestStruct struct {
		S    string        `column:""`
		I8   int8          `column:""`
		U16  uint16        `column:""`
		I    int           `column:""`
		I64  int64         `column:""`
		F32  float32       `column:""`
		B    bool          `column:""`
		UID  uuid.UUID     `column:""`
		At   time.Time     `column:""`
		Rank playerRank    `column:""`
		Tags []string      `column:""`
		Misc time.Duration `column:""`
	}
)

func (customNamed) TableName() string { return "legacy_table" }

func (customConflict) ConflictPolicy() string { return "email" }

func TestNewModelFields(t *testing.T) {
	t.Parallel()
	m := NewModel(car{})

	if got, want := m.TableName(), "car"; got != want {
		t.Errorf("TableName() = %q, want %q", got, want)
	}
	if got, want := m.TypeName(), "car"; got != want {
		t.Errorf("TypeName() = %q, want %q", got, want)
	}

	wantColumns := []string{"id", "brand_name", "price", "description"}
	fields := m.Fields()
	if len(fields) != len(wantColumns) {
		t.Fatalf("len(Fields()) = %d, want %d", len(fields), len(wantColumns))
	}
	for i, want := range wantColumns {
		if fields[i].ColumnName != want {
			t.Errorf("field %d column = %q, want %q", i, fields[i].ColumnName, want)
		}
	}

	id := m.FieldByName("ID")
	if id == nil {
		t.Fatal("FieldByName(ID) = nil")
	}
	if !id.PrimaryKey || !id.AutoIncrement {
		t.Errorf("ID markers = pk %v auto %v, want both true", id.PrimaryKey, id.AutoIncrement)
	}
	if id.Type != reflect.TypeOf(0) {
		t.Errorf("ID semantic type = %s, want int", id.Type)
	}

	brand := m.FieldByName("BrandName")
	if brand.Length != 50 {
		t.Errorf("BrandName length = %d, want 50", brand.Length)
	}

	desc := m.FieldByName("Description")
	if !desc.Nullable {
		t.Error("Description not nullable")
	}
	if desc.Kind != KindString {
		t.Errorf("Description kind = %v, want KindString", desc.Kind)
	}
}

func TestNewModelUnmarkedFieldsExcluded(t *testing.T) {
	t.Parallel()
	m := NewModel(unmarkedFields{})
	if got, want := len(m.Fields()), 2; got != want {
		t.Fatalf("len(Fields()) = %d, want %d", got, want)
	}
	if m.FieldByName("Internal") != nil {
		t.Error("unmarked field Internal was persisted")
	}
	if m.FieldByName("Ignored") != nil {
		t.Error("field with markers but no column tag was persisted")
	}
	if got, want := len(m.PrimaryKeys()), 1; got != want {
		t.Errorf("len(PrimaryKeys()) = %d, want %d", got, want)
	}
}

func TestNewModelEmbeddedOrdering(t *testing.T) {
	t.Parallel()
	m := NewModel(player{})
	if got, want := m.TableName(), "player"; got != want {
		t.Errorf("TableName() = %q, want %q", got, want)
	}
	wantColumns := []string{"id", "created_at", "nickname"}
	fields := m.Fields()
	if len(fields) != len(wantColumns) {
		t.Fatalf("len(Fields()) = %d, want %d", len(fields), len(wantColumns))
	}
	for i, want := range wantColumns {
		if fields[i].ColumnName != want {
			t.Errorf("field %d column = %q, want %q", i, fields[i].ColumnName, want)
		}
	}
}

func TestNewModelColumnOverride(t *testing.T) {
	t.Parallel()
	m := NewModel(renamedEntity{})
	if f := m.FieldByName("Lat"); f == nil || f.ColumnName != "latitude" {
		t.Errorf("Lat column = %v, want latitude", f)
	}
}

func TestNewModelTableNameOverride(t *testing.T) {
	t.Parallel()
	m := NewModel(customNamed{})
	if got, want := m.TableName(), "legacy_table"; got != want {
		t.Errorf("TableName() = %q, want %q", got, want)
	}
}

func TestConflictTarget(t *testing.T) {
	t.Parallel()
	if got, want := NewModel(car{}).ConflictTarget(), "id"; got != want {
		t.Errorf("computed target = %q, want %q", got, want)
	}
	if got, want := NewModel(customConflict{}).ConflictTarget(), "email"; got != want {
		t.Errorf("explicit policy = %q, want %q", got, want)
	}
	if got, want := NewModel(baseEntity{
		ID: 1,
	}).ConflictTarget(), "id"; got != want {
		t.Errorf("single pk target = %q, want %q", got, want)
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()
	m := NewModel(kindTestStruct{})
	tests := []struct {
		field string
		want  Kind
	}{
		{"S", KindString},
		{"I8", KindInt32},
		{"U16", KindInt32},
		{"I", KindInt64},
		{"I64", KindInt64},
		{"F32", KindFloat},
		{"B", KindBool},
		{"UID", KindUUID},
		{"At", KindTime},
		{"Rank", KindEnum},
		{"Tags", KindSlice},
		{"Misc", KindInt64},
	}
	for _, tt := range tests {
		f := m.FieldByName(tt.field)
		if f == nil {
			t.Fatalf("FieldByName(%s) = nil", tt.field)
		}
		if f.Kind != tt.want {
			t.Errorf("%s kind = %v, want %v", tt.field, f.Kind, tt.want)
		}
	}
}

func TestNewModelNonStruct(t *testing.T) {
	t.Parallel()
	m := NewModel(42)
	if m.TableName() != "" {
		t.Errorf("TableName() = %q, want empty", m.TableName())
	}
	if _, err := m.Schema(); err != ErrNoTableName {
		t.Errorf("Schema() error = %v, want ErrNoTableName", err)
	}
	if _, err := m.SelectAllSQL(); err != ErrNoTableName {
		t.Errorf("SelectAllSQL() error = %v, want ErrNoTableName", err)
	}
}
