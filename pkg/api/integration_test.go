package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adfharrison1/go-qbe/pkg/codec"
	"github.com/adfharrison1/go-qbe/pkg/domain"
	"github.com/adfharrison1/go-qbe/pkg/storage"
)

// TestServer represents a test HTTP server for integration testing
type TestServer struct {
	Server  *httptest.Server
	Storage *storage.StorageEngine
	Handler *Handler
	BaseURL string
}

// NewTestServer creates a new test server backed by a fresh storage engine
func NewTestServer(t *testing.T, storageOptions ...storage.StorageOption) *TestServer {
	storageEngine := storage.NewStorageEngine(storageOptions...)
	handler := NewHandler(storageEngine)

	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	server := httptest.NewServer(router)

	return &TestServer{
		Server:  server,
		Storage: storageEngine,
		Handler: handler,
		BaseURL: server.URL,
	}
}

// Close shuts the test server down
func (ts *TestServer) Close() {
	ts.Server.Close()
}

// Helper methods for making HTTP requests

func (ts *TestServer) POST(path string, body interface{}) (*http.Response, error) {
	return ts.do("POST", path, body)
}

func (ts *TestServer) PATCH(path string, body interface{}) (*http.Response, error) {
	return ts.do("PATCH", path, body)
}

func (ts *TestServer) GET(path string) (*http.Response, error) {
	return http.Get(ts.BaseURL + path)
}

func (ts *TestServer) do(method, path string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(method, ts.BaseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return http.DefaultClient.Do(req)
}

// ReadResponseBody reads and returns the response body as a string
func ReadResponseBody(resp *http.Response) (string, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	return string(body), err
}

func decodeRecords(t *testing.T, resp *http.Response) []*domain.Record {
	t.Helper()
	body, err := ReadResponseBody(resp)
	require.NoError(t, err)
	var result struct {
		Records []*domain.Record `json:"records"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &result), body)
	return result.Records
}

// Integration Tests

func TestAPI_Integration_ModlogsScenario(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	resp, err := ts.POST("/collections/modlogs", map[string]interface{}{
		"indexes": []string{"channel", "user"},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	t.Run("Insert Records", func(t *testing.T) {
		resp, err := ts.POST("/collections/modlogs/batch", map[string]interface{}{
			"records": []map[string]interface{}{
				{"channel": "#a", "user": "u1", "action": "ban"},
				{"channel": "#a", "user": "u2", "action": "kick"},
				{"channel": "#b", "user": "u1", "action": "ban"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("Rename Channel", func(t *testing.T) {
		resp, err := ts.PATCH("/collections/modlogs/update", map[string]interface{}{
			"query": map[string]interface{}{"channel": "#a"},
			"patch": map[string]interface{}{"channel": "#c"},
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := ReadResponseBody(resp)
		require.NoError(t, err)
		var result UpdateResponse
		require.NoError(t, json.Unmarshal([]byte(body), &result))
		assert.Equal(t, 2, result.MatchedCount)
	})

	t.Run("Query After Update", func(t *testing.T) {
		resp, err := ts.GET("/collections/modlogs/get/channel?value=%23a")
		require.NoError(t, err)
		assert.Empty(t, decodeRecords(t, resp))

		resp, err = ts.GET("/collections/modlogs/get/channel?value=%23c")
		require.NoError(t, err)
		assert.Len(t, decodeRecords(t, resp), 2)

		resp, err = ts.GET("/collections/modlogs/find?channel=%23c&user=u1")
		require.NoError(t, err)
		recs := decodeRecords(t, resp)
		require.Len(t, recs, 1)
		assert.Equal(t, domain.String("ban"), recs[0].Get("action"))
	})
}

func TestAPI_Integration_FieldOrderPreserved(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	req, err := http.NewRequest("POST", ts.BaseURL+"/collections/users/records",
		strings.NewReader(`{"zeta":1,"alpha":"a","mid":2.0,"flag":false}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err = ts.GET("/collections/users/records")
	require.NoError(t, err)
	body, err := ReadResponseBody(resp)
	require.NoError(t, err)
	assert.Contains(t, body, `{"zeta":1,"alpha":"a","mid":2.0,"flag":false}`)

	resp, err = ts.GET("/collections/users/indexes")
	require.NoError(t, err)
	body, err = ReadResponseBody(resp)
	require.NoError(t, err)
	var indexes IndexesResponse
	require.NoError(t, json.Unmarshal([]byte(body), &indexes))
	assert.Equal(t, []string{"zeta", "alpha", "mid", "flag"}, indexes.Indexes)

	// 2.0 was stored as a float, so the int 2 does not match it
	resp, err = ts.GET("/collections/users/find?mid=2")
	require.NoError(t, err)
	assert.Empty(t, decodeRecords(t, resp))

	resp, err = ts.GET("/collections/users/find?flag=false")
	require.NoError(t, err)
	assert.Len(t, decodeRecords(t, resp), 1)
}

func TestAPI_Integration_MsgPack(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	mp := codec.MsgPack{}
	rec := domain.MustRecord("name", "Alice", "age", 30, "score", 9.5)
	payload, err := mp.Marshal(rec)
	require.NoError(t, err)

	req, err := http.NewRequest("POST", ts.BaseURL+"/collections/users/records", bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", mp.ContentType())
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	example, err := mp.Marshal(domain.MustRecord("age", 30))
	require.NoError(t, err)
	req, err = http.NewRequest("POST", ts.BaseURL+"/collections/users/qbe", bytes.NewReader(example))
	require.NoError(t, err)
	req.Header.Set("Content-Type", mp.ContentType())
	req.Header.Set("Accept", mp.ContentType())
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, mp.ContentType(), resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	var result domain.PaginationResult
	require.NoError(t, mp.Unmarshal(body, &result))
	require.Len(t, result.Records, 1)
	assert.True(t, rec.Equal(result.Records[0]), "got %s", result.Records[0])
	assert.Equal(t, []string{"name", "age", "score"}, result.Records[0].Fields())
}

func TestAPI_Integration_Stream(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	for i := 0; i < 20; i++ {
		require.NoError(t, ts.Storage.Insert("events", domain.MustRecord("seq", i, "odd", i%2 == 1)))
	}

	resp, err := ts.GET("/collections/events/find_with_stream?odd=true")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := ReadResponseBody(resp)
	require.NoError(t, err)

	var recs []*domain.Record
	require.NoError(t, json.Unmarshal([]byte(body), &recs), body)
	require.Len(t, recs, 10)
	for i, rec := range recs {
		assert.Equal(t, domain.Int(int64(2*i+1)), rec.Get("seq"))
	}

	resp, err = ts.GET("/collections/missing/find_with_stream")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_Integration_ConcurrentWriters(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	resp, err := ts.POST("/collections/jobs", map[string]interface{}{"indexes": []string{"worker", "state"}})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	const workers = 5
	const perWorker = 20

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				resp, err := ts.POST("/collections/jobs/records", map[string]interface{}{
					"worker": w, "seq": i, "state": "queued",
				})
				if assert.NoError(t, err) {
					assert.Equal(t, http.StatusCreated, resp.StatusCode)
					resp.Body.Close()
				}
			}
			resp, err := ts.PATCH("/collections/jobs/update", map[string]interface{}{
				"query": map[string]interface{}{"worker": w},
				"patch": map[string]interface{}{"state": "done"},
			})
			if assert.NoError(t, err) {
				assert.Equal(t, http.StatusOK, resp.StatusCode)
				resp.Body.Close()
			}
		}(w)
	}
	wg.Wait()

	resp, err = ts.GET("/collections/jobs/get/state?value=done")
	require.NoError(t, err)
	assert.Len(t, decodeRecords(t, resp), workers*perWorker)

	resp, err = ts.GET("/collections/jobs/get/state?value=queued")
	require.NoError(t, err)
	assert.Empty(t, decodeRecords(t, resp))
}
