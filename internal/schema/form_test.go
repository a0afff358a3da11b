package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmorais/backoffice/internal/infer"
	"github.com/gmorais/backoffice/internal/store"
)

func TestBuildForm_EmptySample(t *testing.T) {
	assert.Nil(t, BuildForm(nil, FormConfig{}))
	assert.Nil(t, BuildForm(store.NewRecord(), FormConfig{}))
}

func TestBuildForm_PrimaryKeyRequiredAndReadOnly(t *testing.T) {
	sample := sampleRecord(t, `{"codigo_cliente": 1, "nome": "Maria", "fornecedor_id": 3}`)
	fields := BuildForm(sample, FormConfig{})
	require.Len(t, fields, 3)

	byName := map[string]FormField{}
	for _, f := range fields {
		byName[f.Name] = f
	}
	for _, pk := range []string{"codigo_cliente", "fornecedor_id"} {
		assert.True(t, byName[pk].Required, pk)
		assert.True(t, byName[pk].ReadOnly, pk)
	}
	assert.False(t, byName["nome"].Required)
	assert.False(t, byName["nome"].ReadOnly)
}

func TestBuildForm_OverrideCanReenableKeyEditing(t *testing.T) {
	// The patch is applied after primary-key handling — a deliberate
	// escape hatch for screens that let users pick their own codes.
	editable := false
	sample := sampleRecord(t, `{"codigo_cliente": 1}`)
	fields := BuildForm(sample, FormConfig{
		FieldConfigs: map[string]FieldPatch{
			"codigo_cliente": {ReadOnly: &editable},
		},
	})
	require.Len(t, fields, 1)
	assert.False(t, fields[0].ReadOnly)
	assert.True(t, fields[0].Required, "required is untouched by this patch")
}

func TestBuildForm_NameHintBeatsSampleValue(t *testing.T) {
	sample := sampleRecord(t, `{"valor_total": 0, "observacao": "", "email_contato": ""}`)
	fields := BuildForm(sample, FormConfig{})
	byName := map[string]FormField{}
	for _, f := range fields {
		byName[f.Name] = f
	}
	assert.Equal(t, infer.InputNumber, byName["valor_total"].Type)
	assert.Equal(t, infer.InputTextarea, byName["observacao"].Type)
	assert.Equal(t, infer.InputEmail, byName["email_contato"].Type)
}

func TestBuildForm_Defaults(t *testing.T) {
	sample := sampleRecord(t, `{"nome": "Maria", "valor_frete": null, "ativo": true, "tipo": null}`)
	fields := BuildForm(sample, FormConfig{})
	byName := map[string]FormField{}
	for _, f := range fields {
		byName[f.Name] = f
	}
	assert.Equal(t, "Maria", byName["nome"].Default, "sample value wins")
	assert.Equal(t, float64(0), byName["valor_frete"].Default, "nil number defaults to zero")
	assert.Equal(t, true, byName["ativo"].Default, "sample bool kept")
	assert.Equal(t, "", byName["tipo"].Default, "nil select defaults to empty string")
}

func TestBuildForm_EstadoGetsFullOptionList(t *testing.T) {
	sample := sampleRecord(t, `{"estado": "PE"}`)
	fields := BuildForm(sample, FormConfig{})
	require.Len(t, fields, 1)
	assert.Equal(t, infer.InputSelect, fields[0].Type)
	assert.Len(t, fields[0].Options, 27)
}

func TestBuildForm_TipoOptions(t *testing.T) {
	sample := sampleRecord(t, `{"tipo": "PF"}`)
	fields := BuildForm(sample, FormConfig{})
	require.Len(t, fields, 1)
	require.Len(t, fields[0].Options, 2)
	assert.Equal(t, "PF", fields[0].Options[0].Value)
	assert.Equal(t, "PJ", fields[0].Options[1].Value)
}

func TestBuildForm_OverrideOptionsWin(t *testing.T) {
	sample := sampleRecord(t, `{"estado": "PE"}`)
	fields := BuildForm(sample, FormConfig{
		FieldConfigs: map[string]FieldPatch{
			"estado": {Options: []Option{{Value: "PE", Label: "Pernambuco"}}},
		},
	})
	require.Len(t, fields, 1)
	assert.Len(t, fields[0].Options, 1)
}

func TestBuildForm_UnknownSelectHasNoOptions(t *testing.T) {
	sample := sampleRecord(t, `{"status_entrega": "pendente"}`)
	fields := BuildForm(sample, FormConfig{})
	require.Len(t, fields, 1)
	assert.Equal(t, infer.InputSelect, fields[0].Type)
	assert.Empty(t, fields[0].Options)
}

func TestBuildForm_CatalogInjection(t *testing.T) {
	sample := sampleRecord(t, `{"status_entrega": "pendente"}`)
	fields := BuildForm(sample, FormConfig{
		Options: OptionCatalog{
			"status_entrega": {
				{Value: "pendente", Label: "Pendente"},
				{Value: "enviado", Label: "Enviado"},
			},
		},
	})
	require.Len(t, fields, 1)
	assert.Len(t, fields[0].Options, 2)
}

func TestBuildForm_HiddenAndReadOnlyConfig(t *testing.T) {
	sample := sampleRecord(t, `{"nome": "Maria", "saldo": 10, "interno": "x"}`)
	fields := BuildForm(sample, FormConfig{
		HiddenFields:   []string{"interno"},
		ReadOnlyFields: []string{"saldo"},
	})
	require.Len(t, fields, 2)
	assert.Equal(t, "nome", fields[0].Name)
	assert.Equal(t, "saldo", fields[1].Name)
	assert.True(t, fields[1].ReadOnly)
}
