package graph

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Query(t *testing.T) {
	router := NewRouter(setupSchema(t), zerolog.Nop())

	body := `{"query": "{ allSanityImageAsset { _id } }"}`
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	var resp struct {
		Data struct {
			All []struct {
				ID string `json:"_id"`
			} `json:"allSanityImageAsset"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data.All, 2)
	assert.Equal(t, idLandscape, resp.Data.All[0].ID)
}

func TestHandler_Variables(t *testing.T) {
	router := NewRouter(setupSchema(t), zerolog.Nop())

	body := `{
		"query": "query Get($id: String!) { sanityImageAsset(id: $id) { _id } }",
		"variables": {"id": "image-def"},
		"operationName": "Get"
	}`
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), idPortrait)
}

func TestHandler_QueryErrors(t *testing.T) {
	router := NewRouter(setupSchema(t), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query": "{ nope }"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"errors"`)
}

func TestHandler_BadRequest(t *testing.T) {
	router := NewRouter(setupSchema(t), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_KeepsRequestID(t *testing.T) {
	router := NewRouter(setupSchema(t), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
}

func TestHandler_Playground(t *testing.T) {
	router := NewRouter(setupSchema(t), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sanity Image GraphQL")
}
