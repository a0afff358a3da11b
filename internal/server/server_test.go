package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmorais/backoffice/internal/audit"
	"github.com/gmorais/backoffice/internal/config"
	"github.com/gmorais/backoffice/internal/events"
	"github.com/gmorais/backoffice/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Memory) {
	t.Helper()
	backend := store.NewMemory()
	bus := events.NewBus(8)
	ctx, cancel := context.WithCancel(context.Background())
	bus.Start(ctx)
	t.Cleanup(func() {
		cancel()
		bus.Wait()
	})

	srv := httptest.NewServer(Router(Config{Backend: backend}, bus))
	t.Cleanup(srv.Close)
	return srv, backend
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	var req *http.Request
	var err error
	if body == "" {
		req, err = http.NewRequest(method, url, nil)
	} else {
		req, err = http.NewRequest(method, url, strings.NewReader(body))
		if err == nil {
			req.Header.Set("Content-Type", "application/json")
		}
	}
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf strings.Builder
	dec := json.NewDecoder(resp.Body)
	var raw json.RawMessage
	if err := dec.Decode(&raw); err == nil {
		buf.Write(raw)
	}
	return resp, []byte(buf.String())
}

func TestServer_CreateAssignsSequentialCode(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/v1/clientes/", `{"codigo_cliente": null, "nome": "Maria"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]any
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, float64(1), created["codigo_cliente"])

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/v1/clientes/proximo-codigo", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_ListEnvelope(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, nome := range []string{"Maria Silva", "José Silva", "Ana Souza"} {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/v1/clientes/", `{"codigo_cliente": null, "nome": "`+nome+`"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/v1/clientes/?search=silva&page_size=1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env struct {
		Results []json.RawMessage `json:"results"`
		Count   int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(body, &env))
	assert.Len(t, env.Results, 1, "page size caps the page")
	assert.Equal(t, 2, env.Count, "count reflects the full match set")
}

func TestServer_ListEmptyEntity(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/v1/produtos/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"results": [], "count": 0}`, string(body))
}

func TestServer_GetUpdateDelete(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/v1/clientes/", `{"codigo_cliente": 10, "nome": "Maria", "cidade": "Recife"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPut, srv.URL+"/v1/clientes/10", `{"cidade": "Olinda"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated map[string]any
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "Olinda", updated["cidade"])
	assert.Equal(t, "Maria", updated["nome"], "partial update merges")

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/v1/clientes/10", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/v1/clientes/10", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "NOT_FOUND", payload["code"])
	assert.NotEmpty(t, payload["message"])
}

func TestServer_BadBody(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/v1/clientes/", `[1, 2]`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "INVALID_BODY", payload["code"])
}

func TestServer_SchemaEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/v1/clientes/",
		`{"codigo_cliente": 1, "nome": "Maria", "estado": "PE", "valor_limite": 1000.5}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/v1/clientes/schema", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Entity  string `json:"entity"`
		Columns []struct {
			Key   string `json:"key"`
			Label string `json:"label"`
			Width int    `json:"width"`
		} `json:"columns"`
		Form []struct {
			Name     string `json:"name"`
			Type     string `json:"type"`
			ReadOnly bool   `json:"read_only"`
			Options  []any  `json:"options"`
		} `json:"form"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "clientes", payload.Entity)
	require.Len(t, payload.Columns, 4)
	assert.Equal(t, "codigo_cliente", payload.Columns[0].Key)
	assert.Equal(t, "Codigo Cliente", payload.Columns[0].Label)

	byName := map[string]int{}
	for i, f := range payload.Form {
		byName[f.Name] = i
	}
	assert.Equal(t, "select", payload.Form[byName["estado"]].Type)
	assert.Len(t, payload.Form[byName["estado"]].Options, 27)
	assert.True(t, payload.Form[byName["codigo_cliente"]].ReadOnly)
}

func TestServer_SchemaEmptyEntity(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/v1/vazio/schema", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"entity": "vazio", "columns": [], "form": []}`, string(body))
}

func TestServer_EntitiesList(t *testing.T) {
	srv, _ := newTestServer(t)

	doJSON(t, http.MethodPost, srv.URL+"/v1/clientes/", `{"codigo_cliente": 1}`)
	doJSON(t, http.MethodPost, srv.URL+"/v1/produtos/", `{"codigo_produto": 1}`)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/v1/entities", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"entities": ["clientes", "produtos"]}`, string(body))
}

func TestServer_AuditTrail(t *testing.T) {
	backend := store.NewMemory()
	bus := events.NewBus(8)
	trail := audit.NewTrail(100)
	bus.Subscribe("audit", trail)

	ctx, cancel := context.WithCancel(context.Background())
	bus.Start(ctx)
	t.Cleanup(func() {
		cancel()
		bus.Wait()
	})

	srv := httptest.NewServer(Router(Config{Backend: backend, Trail: trail}, bus))
	defer srv.Close()

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/v1/clientes/", `{"codigo_cliente": null, "nome": "Maria"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/v1/clientes/1", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Trail delivery is asynchronous.
	assert.Eventually(t, func() bool {
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/v1/audit?entity=clientes", "")
		if resp.StatusCode != http.StatusOK {
			return false
		}
		var payload struct {
			Results []events.Change `json:"results"`
			Count   int             `json:"count"`
		}
		if err := json.Unmarshal(body, &payload); err != nil || payload.Count != 2 {
			return false
		}
		return payload.Results[0].Action == events.ActionDeleted
	}, 2*time.Second, 10*time.Millisecond)
}

func TestServer_CatalogShapesSchema(t *testing.T) {
	backend := store.NewMemory()
	cat, err := config.ParseCatalog(`entities: clientes: {hidden: ["interno"], labels: {cpf_cnpj: "CPF/CNPJ"}}`)
	require.NoError(t, err)

	srv := httptest.NewServer(Router(Config{Backend: backend, Catalog: cat}, nil))
	defer srv.Close()

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/v1/clientes/",
		`{"codigo_cliente": 1, "cpf_cnpj": "123", "interno": "x"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/v1/clientes/schema", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Columns []struct {
			Key   string `json:"key"`
			Label string `json:"label"`
		} `json:"columns"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.Len(t, payload.Columns, 2, "hidden fields are dropped")
	assert.Equal(t, "CPF/CNPJ", payload.Columns[1].Label)
}
