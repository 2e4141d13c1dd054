package utils

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type row struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Skipped   []string  `db:"-"`
	NoTag     string
	CreatedAt time.Time `db:"created_at"`
	hidden    string    `db:"hidden"`
}

func TestStructTagValues(t *testing.T) {
	got := StructTagValues(row{})
	want := []string{"id", "name", "created_at"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("StructTagValues = %v, want %v", got, want)
	}

	if got := StructTagValues(&row{}); len(got) != 3 {
		t.Errorf("pointer input: %v", got)
	}
}

func TestStructToMap(t *testing.T) {
	r := &row{ID: 7, Name: "B1", Skipped: []string{"x"}, hidden: "h"}
	got := StructToMap(r)

	if len(got) != 3 {
		t.Fatalf("expected 3 keys, got %v", got)
	}
	if got["id"] != int64(7) || got["name"] != "B1" {
		t.Errorf("unexpected map %v", got)
	}
	if _, ok := got["hidden"]; ok {
		t.Error("unexported field leaked into map")
	}
}

func TestStructToMapPanicsOnNonStruct(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	StructToMap(42)
}

func TestErrorWrapOrNil(t *testing.T) {
	if ErrorWrapOrNil(nil, "msg") != nil {
		t.Error("nil error should stay nil")
	}

	base := errors.New("boom")
	wrapped := ErrorWrapOrNil(base, "failed to save")
	if !errors.Is(wrapped, base) || wrapped.Error() != "failed to save: boom" {
		t.Errorf("unexpected wrap %v", wrapped)
	}
	if ErrorWrapOrNil(base, "") != base {
		t.Error("empty message should return the error unchanged")
	}
}

func TestNilIfBlank(t *testing.T) {
	if NilIfBlank("   ") != nil {
		t.Error("blank should be nil")
	}
	if got := NilIfBlank("  treinar equipe "); got == nil || *got != "treinar equipe" {
		t.Errorf("unexpected %v", got)
	}
	if PtrString(nil) != "" || PtrString(StringPtr("x")) != "x" {
		t.Error("PtrString mismatch")
	}
}

func TestNanoID(t *testing.T) {
	if len(NanoID()) != NanoidSize {
		t.Error("default size mismatch")
	}
	if len(NanoIDSize(8)) != 8 {
		t.Error("explicit size mismatch")
	}
	if NanoID() == NanoID() {
		t.Error("ids should differ")
	}
}
