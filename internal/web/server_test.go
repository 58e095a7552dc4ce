package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/czcorpus/kwic/internal/corpus"
	"github.com/czcorpus/kwic/internal/logging"
	"github.com/czcorpus/kwic/internal/search"
)

func testIndex(t *testing.T) *search.Index {
	t.Helper()
	docs := []corpus.RawDocument{
		{
			[]interface{}{"the", "quick", "fox", "runs"},
			[]interface{}{"a", "fox", "jumps"},
		},
	}
	idx, err := search.NewIndex(docs, corpus.Config{DefaultAttr: "word"})
	require.NoError(t, err)
	return idx
}

func TestHandleSearchReturnsMatches(t *testing.T) {
	idx := testIndex(t)
	logger := logging.Nop()
	router := NewRouter(idx, Config{}, logger, nil, nil)

	req := httptest.NewRequest(http.MethodGet, `/v1/search?q="fox"&left=2&right=2`, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 2, body.Total)
	require.Len(t, body.Records, 2)
	require.Equal(t, "fox", body.Records[0].Keyword[0]["word"])
}

func TestHandleSearchMissingQueryIsBadRequest(t *testing.T) {
	idx := testIndex(t)
	router := NewRouter(idx, Config{}, logging.Nop(), nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/search", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSearchInvalidQueryIsBadRequest(t *testing.T) {
	idx := testIndex(t)
	router := NewRouter(idx, Config{}, logging.Nop(), nil, nil)

	req := httptest.NewRequest(http.MethodGet, `/v1/search?q=[word=`, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSearchPagination(t *testing.T) {
	idx := testIndex(t)
	router := NewRouter(idx, Config{}, logging.Nop(), nil, nil)

	req := httptest.NewRequest(http.MethodGet, `/v1/search?q="fox"&limit=1&offset=1`, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 2, body.Total)
	require.Len(t, body.Records, 1)
}
