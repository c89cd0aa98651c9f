package filter

import (
	"reflect"
	"testing"
	"time"

	"github.com/emberhatch/menagerie/internal/platform/errors"
)

func TestParseOutcomeFilter_KindEquals(t *testing.T) {
	cond, err := ParseOutcomeFilter(`kind = "hatch"`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "kind = ?" {
		t.Errorf("expected 'kind = ?', got %q", cond.Clause)
	}
	if len(cond.Params) != 1 {
		t.Fatalf("expected 1 param, got %d", len(cond.Params))
	}
	if cond.Params[0] != "hatch" {
		t.Errorf("expected 'hatch', got %v", cond.Params[0])
	}
}

func TestParseOutcomeFilter_Empty(t *testing.T) {
	cond, err := ParseOutcomeFilter(" ")
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "" || cond.Params != nil {
		t.Fatalf("expected empty condition, got %+v", cond)
	}
}

func TestParseOutcomeFilter_AndOr(t *testing.T) {
	cond, err := ParseOutcomeFilter(`kind = "hatch" AND egg_type = "BASIC"`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "(kind = ? AND egg_type = ?)" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
	if !reflect.DeepEqual(cond.Params, []any{"hatch", "BASIC"}) {
		t.Fatalf("Params = %v", cond.Params)
	}

	cond, err = ParseOutcomeFilter(`tier = "legendary" OR tier = "godly"`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "(tier = ? OR tier = ?)" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
}

func TestParseOutcomeFilter_BoolAndNumeric(t *testing.T) {
	cond, err := ParseOutcomeFilter(`success = true`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "success = ?" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
	if cond.Params[0] != true {
		t.Fatalf("success param = %v", cond.Params[0])
	}

	cond, err = ParseOutcomeFilter(`seed != 42`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "seed != ?" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
	if cond.Params[0] != int64(42) {
		t.Fatalf("seed param = %v (%T)", cond.Params[0], cond.Params[0])
	}
}

func TestParseOutcomeFilter_TimestampToMillis(t *testing.T) {
	cond, err := ParseOutcomeFilter(`created_at > timestamp("2026-03-01T00:00:00Z")`)
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cond.Clause != "created_at > ?" {
		t.Fatalf("Clause = %q", cond.Clause)
	}
	if len(cond.Params) != 1 {
		t.Fatalf("Params len = %d", len(cond.Params))
	}
	want := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	if cond.Params[0] != want {
		t.Fatalf("timestamp param = %v, want %d", cond.Params[0], want)
	}
}

func TestParseOutcomeFilter_InvalidField(t *testing.T) {
	_, err := ParseOutcomeFilter(`unknown = "x"`)
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	if !errors.IsCode(err, errors.CodeFilterInvalid) {
		t.Fatalf("code = %v, want %v", errors.GetCode(err), errors.CodeFilterInvalid)
	}
}

func TestParseOutcomeFilter_InvalidValueFunc(t *testing.T) {
	_, err := ParseOutcomeFilter(`created_at = duration("1h")`)
	if err == nil {
		t.Fatal("expected error for unsupported value function")
	}
	if !errors.IsCode(err, errors.CodeFilterInvalid) {
		t.Fatalf("code = %v, want %v", errors.GetCode(err), errors.CodeFilterInvalid)
	}
}

func TestParseOutcomeFilter_InvalidTimestamp(t *testing.T) {
	_, err := ParseOutcomeFilter(`created_at = timestamp("not-a-time")`)
	if err == nil {
		t.Fatal("expected error for invalid timestamp")
	}
	if !errors.IsCode(err, errors.CodeFilterInvalid) {
		t.Fatalf("code = %v, want %v", errors.GetCode(err), errors.CodeFilterInvalid)
	}
}
