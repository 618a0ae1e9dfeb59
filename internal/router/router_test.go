package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"items-api/internal/handler"
	"items-api/internal/model"
	"items-api/internal/repository"
	"items-api/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key"

// newTestServer wires the full stack over a fresh in-memory store.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := zerolog.Nop()
	repo := repository.NewMemoryItemRepository(logger)
	svc := service.NewItemService(repo, logger)
	h := handler.NewItemHandler(svc, logger)

	srv := httptest.NewServer(New(h, testAPIKey, logger))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, body string, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func createItem(t *testing.T, srv *httptest.Server, body string) model.Item {
	t.Helper()

	resp, data := doJSON(t, http.MethodPost, srv.URL+"/items", body, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var item model.Item
	require.NoError(t, json.Unmarshal(data, &item))
	return item
}

func TestRoot(t *testing.T) {
	srv := newTestServer(t)

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message": "Welcome to the items API"}`, string(data))
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status": "ok"}`, string(data))
}

func TestUnknownPathReturns404(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListItemsEmpty(t *testing.T) {
	srv := newTestServer(t)

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/items", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(data))
}

func TestListItemsPagination(t *testing.T) {
	srv := newTestServer(t)

	createItem(t, srv, `{"name": "A", "price": 1.0}`)
	createItem(t, srv, `{"name": "B", "price": 2.0}`)
	createItem(t, srv, `{"name": "C", "price": 3.0}`)

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/items?skip=1&limit=2", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var items []model.Item
	require.NoError(t, json.Unmarshal(data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "B", items[0].Name)
	assert.Equal(t, "C", items[1].Name)
}

func TestCreateItem(t *testing.T) {
	srv := newTestServer(t)

	item := createItem(t, srv, `{"name": "Widget", "description": "A nice widget", "price": 9.99}`)
	assert.Equal(t, int64(1), item.ID)
	assert.Equal(t, "Widget", item.Name)
	require.NotNil(t, item.Description)
	assert.Equal(t, "A nice widget", *item.Description)
	assert.Equal(t, 9.99, item.Price)
}

func TestCreateItemOptionalFields(t *testing.T) {
	srv := newTestServer(t)

	item := createItem(t, srv, `{"name": "Thing", "price": 5.0}`)
	assert.Nil(t, item.Description)
	assert.Nil(t, item.Category)
}

func TestCreateItemMissingRequiredField(t *testing.T) {
	srv := newTestServer(t)

	resp, data := doJSON(t, http.MethodPost, srv.URL+"/items", `{"name": "No price"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var errResp model.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &errResp))
	assert.Contains(t, errResp.Error, "price")
}

func TestGetItem(t *testing.T) {
	srv := newTestServer(t)

	created := createItem(t, srv, `{"name": "Widget", "price": 9.99}`)

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/items/1", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var item model.Item
	require.NoError(t, json.Unmarshal(data, &item))
	assert.Equal(t, created.ID, item.ID)
	assert.Equal(t, "Widget", item.Name)
}

func TestGetItemNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, data := doJSON(t, http.MethodGet, srv.URL+"/items/99", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var errResp model.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &errResp))
	assert.Equal(t, "item not found", errResp.Error)
}

func TestPartialUpdatePreservesUntouchedFields(t *testing.T) {
	srv := newTestServer(t)

	createItem(t, srv, `{"name": "Widget", "description": "A nice widget", "price": 9.99}`)

	resp, data := doJSON(t, http.MethodPatch, srv.URL+"/items/1", `{"price": 12.5}`, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var item model.Item
	require.NoError(t, json.Unmarshal(data, &item))
	assert.Equal(t, 12.5, item.Price)
	assert.Equal(t, "Widget", item.Name)
	require.NotNil(t, item.Description)
	assert.Equal(t, "A nice widget", *item.Description)
}

func TestUpdateItemNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPatch, srv.URL+"/items/99", `{"price": 1.0}`, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteItemRequiresAPIKey(t *testing.T) {
	srv := newTestServer(t)

	createItem(t, srv, `{"name": "Widget", "price": 9.99}`)

	t.Run("Missing key", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodDelete, srv.URL+"/items/1", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Wrong key", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodDelete, srv.URL+"/items/1", "",
			map[string]string{"X-API-Key": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Valid key", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodDelete, srv.URL+"/items/1", "",
			map[string]string{"X-API-Key": testAPIKey})
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		// The item is gone afterwards.
		getResp, _ := doJSON(t, http.MethodGet, srv.URL+"/items/1", "", nil)
		assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
	})
}

func TestDeleteItemNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodDelete, srv.URL+"/items/99", "",
		map[string]string{"X-API-Key": testAPIKey})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestItemStats(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Empty store", func(t *testing.T) {
		resp, data := doJSON(t, http.MethodGet, srv.URL+"/items/stats", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"total_items": 0, "average_price": 0, "min_price": null, "max_price": null}`, string(data))
	})

	t.Run("With items", func(t *testing.T) {
		createItem(t, srv, `{"name": "A", "price": 1.0}`)
		createItem(t, srv, `{"name": "B", "price": 2.0}`)
		createItem(t, srv, `{"name": "C", "price": 7.0}`)

		resp, data := doJSON(t, http.MethodGet, srv.URL+"/items/stats", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var stats model.ItemStats
		require.NoError(t, json.Unmarshal(data, &stats))
		assert.Equal(t, int64(3), stats.TotalItems)
		assert.InDelta(t, 3.33, stats.AveragePrice, 0.0001)
		require.NotNil(t, stats.MinPrice)
		assert.Equal(t, 1.0, *stats.MinPrice)
		require.NotNil(t, stats.MaxPrice)
		assert.Equal(t, 7.0, *stats.MaxPrice)
	})
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPut, srv.URL+"/items/1", `{"price": 1.0}`, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/health", "", nil)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
