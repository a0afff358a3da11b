package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmorais/backoffice/internal/infer"
	"github.com/gmorais/backoffice/internal/store"
)

func sampleRecord(t *testing.T, raw string) *store.Record {
	t.Helper()
	rec := store.NewRecord()
	require.NoError(t, json.Unmarshal([]byte(raw), rec))
	return rec
}

func clienteSample(t *testing.T) *store.Record {
	return sampleRecord(t, `{
		"codigo_cliente": 1,
		"nome": "Maria Silva",
		"email": "maria@example.com",
		"cidade": "Recife",
		"estado": "PE",
		"valor_total": 0,
		"ativo": true,
		"data_cadastro": "25/12/2024"
	}`)
}

func TestBuildColumns_KeySetAndOrder(t *testing.T) {
	sample := clienteSample(t)
	cols := BuildColumns([]*store.Record{sample}, ColumnConfig{
		HiddenFields: []string{"email"},
	})

	var keys []string
	for _, c := range cols {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{
		"codigo_cliente", "nome", "cidade", "estado",
		"valor_total", "ativo", "data_cadastro",
	}, keys, "sample order preserved, hidden fields removed")
}

func TestBuildColumns_EmptySample(t *testing.T) {
	assert.Nil(t, BuildColumns(nil, ColumnConfig{}))
	assert.Nil(t, BuildColumns([]*store.Record{}, ColumnConfig{}))
	assert.Nil(t, BuildColumns([]*store.Record{store.NewRecord()}, ColumnConfig{}))
}

func TestBuildColumns_Widths(t *testing.T) {
	cols := BuildColumns([]*store.Record{clienteSample(t)}, ColumnConfig{})
	byKey := map[string]Column{}
	for _, c := range cols {
		byKey[c.Key] = c
	}

	assert.Equal(t, 100, byKey["codigo_cliente"].Width, "identifier")
	assert.Equal(t, 250, byKey["nome"].Width, "nome exception")
	assert.Equal(t, 200, byKey["email"].Width, "email exception")
	assert.Equal(t, 150, byKey["cidade"].Width, "cidade exception")
	assert.Equal(t, 80, byKey["estado"].Width, "estado exception")
	assert.Equal(t, 80, byKey["ativo"].Width, "boolean")
	assert.Equal(t, 120, byKey["data_cadastro"].Width, "date")
}

func TestBuildColumns_ExplicitWidthWins(t *testing.T) {
	cols := BuildColumns([]*store.Record{clienteSample(t)}, ColumnConfig{
		DefaultWidths: map[string]int{"nome": 99},
	})
	assert.Equal(t, 99, cols[1].Width)
}

func TestBuildColumns_RequiredFields(t *testing.T) {
	cols := BuildColumns([]*store.Record{clienteSample(t)}, ColumnConfig{
		RequiredFields: []string{"nome"},
	})
	byKey := map[string]Column{}
	for _, c := range cols {
		byKey[c.Key] = c
	}
	assert.True(t, byKey["codigo_cliente"].Required, "primary key")
	assert.True(t, byKey["nome"].Required, "configured")
	assert.False(t, byKey["cidade"].Required)
}

func TestBuildColumns_OverridePatchesWithoutReordering(t *testing.T) {
	label := "Cliente"
	width := 300
	sortable := false
	cols := BuildColumns([]*store.Record{clienteSample(t)}, ColumnConfig{
		FieldOverrides: map[string]ColumnPatch{
			"nome": {Label: &label, Width: &width, Sortable: &sortable},
		},
	})

	assert.Equal(t, "nome", cols[1].Key, "override must not move the column")
	assert.Equal(t, "Cliente", cols[1].Label)
	assert.Equal(t, 300, cols[1].Width)
	assert.False(t, cols[1].Sortable)
	assert.True(t, cols[0].Sortable, "other columns keep the default")
}

func TestBuildColumns_OverrideRenderWins(t *testing.T) {
	custom := func(any, *store.Record) string { return "X" }
	cols := BuildColumns([]*store.Record{clienteSample(t)}, ColumnConfig{
		FieldOverrides: map[string]ColumnPatch{"ativo": {Render: custom}},
	})
	for _, c := range cols {
		if c.Key == "ativo" {
			assert.Equal(t, "X", c.Render(true, nil))
			return
		}
	}
	t.Fatal("ativo column missing")
}

func TestBuildColumns_DefaultRenderers(t *testing.T) {
	cols := BuildColumns([]*store.Record{clienteSample(t)}, ColumnConfig{})
	byKey := map[string]Column{}
	for _, c := range cols {
		byKey[c.Key] = c
	}

	assert.Equal(t, "Sim", byKey["ativo"].Render(true, nil))
	assert.Equal(t, "Não", byKey["ativo"].Render(false, nil))
	assert.Equal(t, "25/12/2024", byKey["data_cadastro"].Render("25/12/2024", nil))
	assert.Equal(t, "-", byKey["data_cadastro"].Render("not a date", nil))
	assert.Equal(t, "R$ 1.234,50", byKey["valor_total"].Render(1234.5, nil),
		"number named valor_* renders as currency")
	assert.Equal(t, "-", byKey["nome"].Render(nil, nil))
	assert.Equal(t, "Maria", byKey["nome"].Render("Maria", nil))
}

func TestBuildColumns_TypeClassification(t *testing.T) {
	cols := BuildColumns([]*store.Record{clienteSample(t)}, ColumnConfig{})
	byKey := map[string]Column{}
	for _, c := range cols {
		byKey[c.Key] = c
	}
	assert.Equal(t, infer.FieldNumber, byKey["codigo_cliente"].Type)
	assert.Equal(t, infer.FieldBoolean, byKey["ativo"].Type)
	assert.Equal(t, infer.FieldDate, byKey["data_cadastro"].Type)
	assert.Equal(t, infer.FieldString, byKey["nome"].Type)
}
