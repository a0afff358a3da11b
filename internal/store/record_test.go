package store

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestRecord_UnmarshalPreservesOrder(t *testing.T) {
	raw := `{"codigo_cliente": 1, "nome": "Maria", "cidade": "Recife", "ativo": true}`
	rec := NewRecord()
	if err := json.Unmarshal([]byte(raw), rec); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := []string{"codigo_cliente", "nome", "cidade", "ativo"}
	if !reflect.DeepEqual(rec.Keys(), want) {
		t.Errorf("Keys() = %v, want %v", rec.Keys(), want)
	}
}

func TestRecord_MarshalRoundTrip(t *testing.T) {
	raw := `{"b":1,"a":2,"c":{"nested":true},"d":[1,2]}`
	rec := NewRecord()
	if err := json.Unmarshal([]byte(raw), rec); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	out, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != raw {
		t.Errorf("round trip = %s, want %s", out, raw)
	}
}

func TestRecord_UnmarshalRejectsNonObject(t *testing.T) {
	rec := NewRecord()
	if err := json.Unmarshal([]byte(`[1,2,3]`), rec); err == nil {
		t.Error("expected error for JSON array")
	}
}

func TestRecord_SetAndMerge(t *testing.T) {
	rec := NewRecord()
	rec.Set("a", 1)
	rec.Set("b", 2)
	rec.Set("a", 10) // overwrite keeps position

	other := NewRecord()
	other.Set("b", 20)
	other.Set("c", 30)
	rec.Merge(other)

	if !reflect.DeepEqual(rec.Keys(), []string{"a", "b", "c"}) {
		t.Errorf("Keys() = %v", rec.Keys())
	}
	if rec.Value("a") != 10 || rec.Value("b") != 20 || rec.Value("c") != 30 {
		t.Errorf("unexpected values after merge: %v %v %v",
			rec.Value("a"), rec.Value("b"), rec.Value("c"))
	}
}

func TestRecord_CloneIsIndependent(t *testing.T) {
	rec := NewRecord()
	rec.Set("a", 1)
	cl := rec.Clone()
	cl.Set("b", 2)
	if rec.Len() != 1 {
		t.Errorf("clone mutation leaked into original")
	}
}

func TestIsPrimaryKey(t *testing.T) {
	cases := []struct {
		field string
		want  bool
	}{
		{"codigo_cliente", true},
		{"codigo_produto", true},
		{"id", true},
		{"pk", true},
		{"cliente_id", true},
		{"fornecedor_id_ref", true},
		{"nome", false},
		{"codigo", false}, // bare codigo without underscore prefix form
		{"idade", false},
	}
	for _, tc := range cases {
		if got := IsPrimaryKey(tc.field); got != tc.want {
			t.Errorf("IsPrimaryKey(%q) = %v, want %v", tc.field, got, tc.want)
		}
	}
}

func TestRecordID(t *testing.T) {
	rec := NewRecord()
	rec.Set("nome", "Maria")
	if _, ok := RecordID(rec); ok {
		t.Error("record without pk should have no id")
	}

	rec.Set("codigo_cliente", float64(7))
	id, ok := RecordID(rec)
	if !ok || id != "7" {
		t.Errorf("RecordID = %q, %v; want 7, true", id, ok)
	}
}
