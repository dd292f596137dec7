package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"graze/internal/resource"
	"graze/internal/store/sqlstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testStore *sqlstore.SQLStore
	testMux   *http.ServeMux
)

func TestMain(m *testing.M) {
	var err error
	testStore, err = sqlstore.New("sqlite3", "./api_test.db")
	if err != nil {
		panic(err)
	}

	testMux = http.NewServeMux()
	NewHandlers(testStore).Register(testMux, resource.Registry())

	code := m.Run()
	testStore.Close()
	os.Remove("./api_test.db")
	os.Exit(code)
}

func clearTables(t *testing.T) {
	t.Helper()
	for _, d := range []resource.Descriptor{resource.Notes, resource.PriceList, resource.Vendors, resource.Products, resource.Folders, resource.Markets} {
		records, err := testStore.ListAll(d)
		require.NoError(t, err)
		for _, rec := range records {
			_, err := testStore.Delete(d, rec["id"].(int64))
			require.NoError(t, err)
		}
	}
}

func doRequest(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	testMux.ServeHTTP(w, req)
	return w
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&m))
	return m
}

func insertFolder(t *testing.T) int64 {
	t.Helper()
	rec, err := testStore.Insert(resource.Folders, map[string]any{"folder_name": "Test Folder"})
	require.NoError(t, err)
	return rec["id"].(int64)
}

func TestListEmpty(t *testing.T) {
	clearTables(t)
	for _, path := range []string{"/api/markets", "/api/vendors", "/api/products", "/api/price_list", "/api/folders", "/api/notes"} {
		w := doRequest("GET", path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, "[]", w.Body.String(), path)
	}
}

func TestCreateNoteRoundTrip(t *testing.T) {
	clearTables(t)
	folderID := insertFolder(t)

	body := fmt.Sprintf(`{"note_title": "Test", "content": "Body", "folder_id": %d}`, folderID)
	w := doRequest("POST", "/api/notes", body)
	require.Equal(t, http.StatusCreated, w.Code)

	created := decodeMap(t, w)
	assert.Equal(t, "Test", created["note_title"])
	assert.Equal(t, "Body", created["content"])
	assert.Equal(t, float64(folderID), created["folder_id"])
	require.Contains(t, created, "id")

	id := int64(created["id"].(float64))
	assert.Equal(t, fmt.Sprintf("/api/notes/%d", id), w.Header().Get("Location"))

	modified, err := time.Parse(time.RFC3339, created["date_modified"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), modified, 5*time.Second)

	// A subsequent fetch returns the identical body.
	get := doRequest("GET", fmt.Sprintf("/api/notes/%d", id), "")
	require.Equal(t, http.StatusOK, get.Code)
	assert.Equal(t, created, decodeMap(t, get))
}

func TestCreateNoteMissingRequiredField(t *testing.T) {
	clearTables(t)
	folderID := insertFolder(t)

	complete := map[string]any{
		"note_title": "Test",
		"content":    "Body",
		"folder_id":  folderID,
	}

	// Declaration order decides the reported field, not payload order.
	for _, field := range []string{"content", "folder_id", "note_title"} {
		payload := map[string]any{}
		for k, v := range complete {
			if k != field {
				payload[k] = v
			}
		}
		body, _ := json.Marshal(payload)

		w := doRequest("POST", "/api/notes", string(body))
		assert.Equal(t, http.StatusBadRequest, w.Code, field)
		assert.JSONEq(t,
			fmt.Sprintf(`{"error":{"message":"Missing '%s' in request body"}}`, field),
			w.Body.String())
	}
}

func TestCreateFolderMissingName(t *testing.T) {
	clearTables(t)
	w := doRequest("POST", "/api/folders", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":{"message":"Missing 'folder_name' in request body"}}`, w.Body.String())
}

func TestCreateProductWithoutDescription(t *testing.T) {
	clearTables(t)
	w := doRequest("POST", "/api/products", `{"product_name": "Honeycrisp Apples", "product_category": "Fruit"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	created := decodeMap(t, w)
	assert.Equal(t, "Honeycrisp Apples", created["product_name"])
	assert.Equal(t, "Fruit", created["product_category"])
	assert.Nil(t, created["product_description"])
}

func TestCreateSanitizesResponse(t *testing.T) {
	clearTables(t)
	folderID := insertFolder(t)

	body := fmt.Sprintf(`{
		"note_title": "Naughty naughty very naughty <script>alert(\"xss\");</script>",
		"content": "Bad image <img src=\"https://url.to.file.which/does-not.exist\" onerror=\"alert(document.cookie);\">. But not <strong>all</strong> bad.",
		"folder_id": %d
	}`, folderID)
	w := doRequest("POST", "/api/notes", body)
	require.Equal(t, http.StatusCreated, w.Code)

	created := decodeMap(t, w)
	assert.Equal(t, `Naughty naughty very naughty &lt;script&gt;alert("xss");&lt;/script&gt;`, created["note_title"])
	assert.Equal(t, `Bad image <img src="https://url.to.file.which/does-not.exist">. But not <strong>all</strong> bad.`, created["content"])
}

func TestMaliciousMarketSanitizedOnRead(t *testing.T) {
	clearTables(t)

	// Inserted directly into the store: the raw payload is kept, only the
	// outward representation is cleansed.
	rec, err := testStore.Insert(resource.Markets, map[string]any{
		"market_name":        "Malicious Market",
		"hero_image":         "http://images.com/image2.png",
		"schedule":           "Tuesday 9am - 5pm",
		"market_location":    `Naughty naughty very naughty <script>alert("xss");</script>`,
		"summary":            `Bad image <img src="https://url.to.file.which/does-not.exist" onerror="alert(document.cookie);">. But not <strong>all</strong> bad.`,
		"market_description": "Lorem ipsum dolor sit amet.",
	})
	require.NoError(t, err)

	w := doRequest("GET", fmt.Sprintf("/api/markets/%d", rec["id"]), "")
	require.Equal(t, http.StatusOK, w.Code)

	got := decodeMap(t, w)
	assert.Equal(t, `Naughty naughty very naughty &lt;script&gt;alert("xss");&lt;/script&gt;`, got["market_location"])
	assert.Equal(t, `Bad image <img src="https://url.to.file.which/does-not.exist">. But not <strong>all</strong> bad.`, got["summary"])
	assert.Equal(t, "Malicious Market", got["market_name"])

	list := doRequest("GET", "/api/markets", "")
	require.Equal(t, http.StatusOK, list.Code)
	var all []map[string]any
	require.NoError(t, json.NewDecoder(list.Body).Decode(&all))
	require.Len(t, all, 1)
	assert.Equal(t, got, all[0])
}

func TestNotFoundMessages(t *testing.T) {
	clearTables(t)

	cases := map[string]string{
		"/api/markets/123456":    "Market doesn't exist",
		"/api/vendors/123456":    "Vendor doesn't exist",
		"/api/products/123456":   "Product doesn't exist",
		"/api/price_list/123456": "Price doesn't exist",
		"/api/folders/123456":    "Folder doesn't exist",
		"/api/notes/123456":      "Note doesn't exist",
	}
	for path, message := range cases {
		for _, method := range []string{"GET", "PATCH", "DELETE"} {
			body := ""
			if method == "PATCH" {
				body = `{"content": "x"}`
			}
			w := doRequest(method, path, body)
			assert.Equal(t, http.StatusNotFound, w.Code, "%s %s", method, path)
			assert.JSONEq(t, fmt.Sprintf(`{"error":{"message":"%s"}}`, message), w.Body.String())
		}
	}

	// A non-numeric id takes the same path.
	w := doRequest("GET", "/api/notes/not-a-number", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPatchUpdatesOnlySuppliedFields(t *testing.T) {
	clearTables(t)
	folderID := insertFolder(t)

	body := fmt.Sprintf(`{"note_title": "Original", "content": "Original content", "folder_id": %d}`, folderID)
	w := doRequest("POST", "/api/notes", body)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeMap(t, w)
	id := int64(created["id"].(float64))

	patch := doRequest("PATCH", fmt.Sprintf("/api/notes/%d", id), `{"content": "This note content has been updated"}`)
	assert.Equal(t, http.StatusNoContent, patch.Code)
	assert.Empty(t, patch.Body.String())

	get := doRequest("GET", fmt.Sprintf("/api/notes/%d", id), "")
	require.Equal(t, http.StatusOK, get.Code)
	after := decodeMap(t, get)
	assert.Equal(t, "This note content has been updated", after["content"])
	assert.Equal(t, created["note_title"], after["note_title"])
	assert.Equal(t, created["folder_id"], after["folder_id"])
	assert.Equal(t, created["date_modified"], after["date_modified"])
}

func TestPatchWithNoUpdatableFields(t *testing.T) {
	clearTables(t)
	folderID := insertFolder(t)

	body := fmt.Sprintf(`{"note_title": "Keep", "content": "Keep content", "folder_id": %d}`, folderID)
	created := decodeMap(t, doRequest("POST", "/api/notes", body))
	id := int64(created["id"].(float64))

	w := doRequest("PATCH", fmt.Sprintf("/api/notes/%d", id), `{"irrelevantField": "foo"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":{"message":"Request body must contain 'content'"}}`, w.Body.String())

	// The record is untouched.
	after := decodeMap(t, doRequest("GET", fmt.Sprintf("/api/notes/%d", id), ""))
	assert.Equal(t, created, after)
}

func TestPatchProductNamesPrimaryField(t *testing.T) {
	clearTables(t)
	created := decodeMap(t, doRequest("POST", "/api/products", `{"product_name": "Cheddar", "product_category": "Dairy"}`))
	id := int64(created["id"].(float64))

	w := doRequest("PATCH", fmt.Sprintf("/api/products/%d", id), `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":{"message":"Request body must contain 'product_description'"}}`, w.Body.String())
}

func TestDeleteRemovesRecord(t *testing.T) {
	clearTables(t)
	folderID := insertFolder(t)

	body := fmt.Sprintf(`{"note_title": "Doomed", "content": "x", "folder_id": %d}`, folderID)
	created := decodeMap(t, doRequest("POST", "/api/notes", body))
	id := int64(created["id"].(float64))

	w := doRequest("DELETE", fmt.Sprintf("/api/notes/%d", id), "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	get := doRequest("GET", fmt.Sprintf("/api/notes/%d", id), "")
	assert.Equal(t, http.StatusNotFound, get.Code)

	list := doRequest("GET", "/api/notes", "")
	assert.JSONEq(t, "[]", list.Body.String())
}

func TestCreateIgnoresClientSuppliedID(t *testing.T) {
	clearTables(t)
	w := doRequest("POST", "/api/folders", `{"id": 911, "folder_name": "Mine"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeMap(t, w)
	assert.NotEqual(t, float64(911), created["id"])
}

func TestInvalidJSONBody(t *testing.T) {
	clearTables(t)
	w := doRequest("POST", "/api/folders", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":{"message":"Invalid request body"}}`, w.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	clearTables(t)
	w := doRequest("PUT", "/api/folders", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	folderID := insertFolder(t)
	w = doRequest("POST", fmt.Sprintf("/api/folders/%d", folderID), `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
