package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmorais/backoffice/internal/store"
)

func TestResolveListResponse_BareArray(t *testing.T) {
	res := ResolveListResponse([]byte(`[{"codigo_cliente": 1}, {"codigo_cliente": 2}, {"codigo_cliente": 3}]`))
	assert.Equal(t, store.ShapeArray, res.Shape)
	require.Len(t, res.Items, 3)
	assert.Equal(t, 3, res.Total, "array totals come from length")
}

func TestResolveListResponse_PagedEnvelope(t *testing.T) {
	res := ResolveListResponse([]byte(`{"results": [{"nome": "Maria"}], "count": 41}`))
	assert.Equal(t, store.ShapePaged, res.Shape)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 41, res.Total, "envelope totals come from count")
}

func TestResolveListResponse_EnvelopeWithoutCount(t *testing.T) {
	res := ResolveListResponse([]byte(`{"results": [{"nome": "Maria"}, {"nome": "José"}]}`))
	assert.Equal(t, store.ShapePaged, res.Shape)
	assert.Equal(t, 2, res.Total)
}

func TestResolveListResponse_Unrecognized(t *testing.T) {
	for _, raw := range []string{``, `null`, `42`, `"oi"`, `{"items": []}`, `{bad json`} {
		res := ResolveListResponse([]byte(raw))
		assert.Equal(t, store.ShapeUnknown, res.Shape, raw)
		assert.Empty(t, res.Items, raw)
		assert.Zero(t, res.Total, raw)
	}
}

func TestResolveListResponse_PreservesFieldOrder(t *testing.T) {
	res := ResolveListResponse([]byte(`[{"zeta": 1, "alfa": 2, "media": 3}]`))
	require.Len(t, res.Items, 1)
	assert.Equal(t, []string{"zeta", "alfa", "media"}, res.Items[0].Keys())
}
