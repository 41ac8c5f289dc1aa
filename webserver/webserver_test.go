package webserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecashclient/storage"
)

func testWebServer(t *testing.T) *WebServer {
	t.Helper()

	s, err := storage.InitStorage(t.TempDir())
	require.NoError(t, err, "InitStorage")
	t.Cleanup(s.Close)

	return &WebServer{storage: s}
}

func testRouter(ws *WebServer) *mux.Router {

	router := mux.NewRouter()
	router.HandleFunc("/api/health", ws.health).Methods(http.MethodGet)
	router.HandleFunc("/api/puzzles", ws.listPuzzles).Methods(http.MethodGet)
	router.HandleFunc("/api/puzzles", ws.importPuzzle).Methods(http.MethodPost)
	router.HandleFunc("/api/guess", ws.tryGuess).Methods(http.MethodPost)
	router.HandleFunc("/api/commit", ws.createCommitment).Methods(http.MethodPost)
	router.HandleFunc("/api/commitments", ws.listCommitments).Methods(http.MethodGet)
	router.HandleFunc("/api/commitments/{id:[0-9]+}/reveal", ws.recordReveal).Methods(http.MethodPost)
	router.HandleFunc("/api/settings/address", ws.getAddress).Methods(http.MethodGet)
	router.HandleFunc("/api/settings/address", ws.setAddress).Methods(http.MethodPost)

	return router
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestHealth(t *testing.T) {

	router := testRouter(testWebServer(t))

	rec := doJSON(t, router, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestImportAndListPuzzles(t *testing.T) {

	router := testRouter(testWebServer(t))

	rec := doJSON(t, router, http.MethodPost, "/api/puzzles", map[string]interface{}{
		"puzzle_id": 3,
		"blob":      "00112233",
		"nonce":     "000102030405060708090a0b",
		"tag":       "000102030405060708090a0b0c0d0e0f",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Malformed blob is rejected at import time
	rec = doJSON(t, router, http.MethodPost, "/api/puzzles", map[string]interface{}{
		"puzzle_id": 4,
		"blob":      "00112233",
		"nonce":     "tooshort",
		"tag":       "000102030405060708090a0b0c0d0e0f",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/puzzles", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var listing struct {
		Puzzles map[string]interface{} `json:"puzzles"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Len(t, listing.Puzzles, 1)
}

func TestGuessUnknownPuzzle(t *testing.T) {

	router := testRouter(testWebServer(t))

	rec := doJSON(t, router, http.MethodPost, "/api/guess", map[string]interface{}{
		"puzzle_id": 12,
		"guess":     "anything",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSettingsAddress(t *testing.T) {

	router := testRouter(testWebServer(t))

	rec := doJSON(t, router, http.MethodGet, "/api/settings/address", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"address":""}`, rec.Body.String())

	// Short address is rejected, not truncated
	rec = doJSON(t, router, http.MethodPost, "/api/settings/address", map[string]string{
		"address": "0x1234",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/settings/address", map[string]string{
		"address": "0x1234567890123456789012345678901234567890",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/settings/address", nil)
	assert.JSONEq(t, `{"address":"0x1234567890123456789012345678901234567890"}`, rec.Body.String())
}

func TestCreateCommitment(t *testing.T) {

	ws := testWebServer(t)
	router := testRouter(ws)

	salt := "0x1234567890abcdef1234567890abcdef1234567890abcdef1234567890abcdef"

	// No player address configured yet
	rec := doJSON(t, router, http.MethodPost, "/api/commit", map[string]interface{}{
		"puzzle_id": 1,
		"answer":    "Example Answer",
		"salt":      salt,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	require.NoError(t, ws.storage.SetPlayerAddress("0x1234567890123456789012345678901234567890"))

	rec = doJSON(t, router, http.MethodPost, "/api/commit", map[string]interface{}{
		"puzzle_id": 1,
		"answer":    "Example Answer",
		"salt":      salt,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var commitment storage.Commitment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &commitment))
	assert.Equal(t, "example answer", commitment.Answer)
	assert.Regexp(t, `^0x[0-9a-f]{64}$`, commitment.CommitHash)
	assert.Regexp(t, `^0x[0-9a-f]{64}$`, commitment.Secret)

	// Second commitment for the same puzzle is refused
	rec = doJSON(t, router, http.MethodPost, "/api/commit", map[string]interface{}{
		"puzzle_id": 1,
		"answer":    "Example Answer",
		"salt":      salt,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Bad salt length is a validation error
	rec = doJSON(t, router, http.MethodPost, "/api/commit", map[string]interface{}{
		"puzzle_id": 2,
		"answer":    "Example Answer",
		"salt":      "0x1234",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Reveal flow
	rec = doJSON(t, router, http.MethodPost, "/api/commitments/1/reveal", map[string]string{
		"tx": "0xfeedbeef",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/commitments/99/reveal", map[string]string{
		"tx": "0xfeedbeef",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/commitments", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var listing struct {
		Commitments []storage.Commitment `json:"commitments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	require.Len(t, listing.Commitments, 1)
	assert.Equal(t, "0xfeedbeef", listing.Commitments[0].RevealTx)
}
