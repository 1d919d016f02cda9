package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xraph/syllabus"
	"github.com/xraph/syllabus/api"
	"github.com/xraph/syllabus/store/memory"
)

// envelope decodes both the success and the failure envelope.
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Errors     json.RawMessage `json:"errors"`
	Timestamp  string          `json:"timestamp"`
}

type record struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	State       string `json:"state"`
}

// testServer creates a Handler backed by a memory store and returns the test server.
func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	sy, err := syllabus.New(
		syllabus.WithStore(memory.New()),
		syllabus.WithLogger(slog.Default()),
	)
	if err != nil {
		t.Fatalf("new syllabus: %v", err)
	}

	h := api.NewHandler(sy.Categories(), sy.SubCategories(), sy.Courses(), sy.Reports(), slog.Default())
	return httptest.NewServer(h)
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func decodeData(t *testing.T, env envelope, v any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

// create posts body and returns the id of the created record.
func create(t *testing.T, url string, body any) string {
	t.Helper()
	resp := doJSON(t, "POST", url, body)
	if resp.StatusCode != http.StatusCreated {
		var env envelope
		decodeBody(t, resp, &env)
		t.Fatalf("create %s: expected 201, got %d (%s)", url, resp.StatusCode, env.Message)
	}
	var env envelope
	decodeBody(t, resp, &env)
	var rec record
	decodeData(t, env, &rec)
	return rec.ID
}

// --- Categories ---

func TestCategories_CRUD(t *testing.T) {
	srv := testServer(t)
	defer srv.Close()

	// Create
	resp := doJSON(t, "POST", srv.URL+"/categories", map[string]any{
		"name":        "  Technology ",
		"description": "All things tech",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.StatusCode)
	}
	var env envelope
	decodeBody(t, resp, &env)
	if env.StatusCode != http.StatusCreated {
		t.Errorf("envelope statusCode = %d, want 201", env.StatusCode)
	}
	if env.Message != "Category created successfully" {
		t.Errorf("message = %q", env.Message)
	}
	var created record
	decodeData(t, env, &created)
	if created.Name != "Technology" {
		t.Errorf("name = %q, want trimmed %q", created.Name, "Technology")
	}
	if created.State != "active" {
		t.Errorf("state = %q, want active", created.State)
	}

	// Get
	resp = doJSON(t, "GET", srv.URL+"/categories/"+created.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", resp.StatusCode)
	}
	decodeBody(t, resp, &env)
	if env.Message != "Category retrieved successfully" {
		t.Errorf("message = %q", env.Message)
	}

	// Update
	resp = doJSON(t, "PUT", srv.URL+"/categories/"+created.ID, map[string]any{
		"description": "Updated",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", resp.StatusCode)
	}
	decodeBody(t, resp, &env)
	var updated record
	decodeData(t, env, &updated)
	if updated.Description != "Updated" || updated.Name != "Technology" {
		t.Errorf("updated = %+v", updated)
	}

	// Delete
	resp = doJSON(t, "DELETE", srv.URL+"/categories/"+created.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", resp.StatusCode)
	}
	decodeBody(t, resp, &env)
	if env.Message != "Category deleted successfully" {
		t.Errorf("message = %q", env.Message)
	}
	var deleted record
	decodeData(t, env, &deleted)
	if deleted.State != "deleted" {
		t.Errorf("state = %q, want deleted", deleted.State)
	}

	// Gone
	resp = doJSON(t, "GET", srv.URL+"/categories/"+created.ID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", resp.StatusCode)
	}
	decodeBody(t, resp, &env)
	if env.StatusCode != http.StatusNotFound || env.Timestamp == "" {
		t.Errorf("error envelope = %+v", env)
	}
}

func TestCategories_Validation(t *testing.T) {
	srv := testServer(t)
	defer srv.Close()

	resp := doJSON(t, "POST", srv.URL+"/categories", map[string]any{"name": "x"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var env envelope
	decodeBody(t, resp, &env)
	var fields map[string]string
	if err := json.Unmarshal(env.Errors, &fields); err != nil {
		t.Fatalf("decode errors: %v", err)
	}
	if _, ok := fields["name"]; !ok {
		t.Errorf("errors = %v, want a name entry", fields)
	}
}

func TestCategories_DuplicateName(t *testing.T) {
	srv := testServer(t)
	defer srv.Close()

	create(t, srv.URL+"/categories", map[string]any{"name": "Technology"})

	resp := doJSON(t, "POST", srv.URL+"/categories", map[string]any{"name": "Technology"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCategories_BadID(t *testing.T) {
	srv := testServer(t)
	defer srv.Close()

	resp := doJSON(t, "GET", srv.URL+"/categories/not-an-id", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCategories_ListPagination(t *testing.T) {
	srv := testServer(t)
	defer srv.Close()

	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		create(t, srv.URL+"/categories", map[string]any{"name": name})
	}

	resp := doJSON(t, "GET", srv.URL+"/categories?limit=2&sortBy=name&sortOrder=asc", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", resp.StatusCode)
	}
	var env envelope
	decodeBody(t, resp, &env)
	var page struct {
		Data    []record `json:"data"`
		Total   int64    `json:"total"`
		Skip    int      `json:"skip"`
		Limit   int      `json:"limit"`
		HasMore bool     `json:"hasMore"`
	}
	decodeData(t, env, &page)
	if page.Total != 3 || page.Limit != 2 || !page.HasMore {
		t.Errorf("page = %+v", page)
	}
	if len(page.Data) != 2 || page.Data[0].Name != "Alpha" || page.Data[1].Name != "Beta" {
		t.Errorf("data = %+v", page.Data)
	}

	for _, q := range []string{"limit=0", "limit=abc", "sortOrder=up"} {
		resp = doJSON(t, "GET", srv.URL+"/categories?"+q, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", q, resp.StatusCode)
		}
		resp.Body.Close()
	}
}

func TestCategories_WithSubCategoryCount(t *testing.T) {
	srv := testServer(t)
	defer srv.Close()

	catID := create(t, srv.URL+"/categories", map[string]any{"name": "Technology"})
	create(t, srv.URL+"/subcategories", map[string]any{"name": "Web", "categoryId": catID})
	create(t, srv.URL+"/subcategories", map[string]any{"name": "Mobile", "categoryId": catID})

	resp := doJSON(t, "GET", srv.URL+"/categories/with-subcategory-count", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var env envelope
	decodeBody(t, resp, &env)
	var rows []struct {
		ID               string `json:"id"`
		SubCategoryCount int64  `json:"subCategoryCount"`
	}
	decodeData(t, env, &rows)
	if len(rows) != 1 || rows[0].SubCategoryCount != 2 {
		t.Errorf("rows = %+v", rows)
	}
}

// --- Subcategories ---

func TestSubCategories_Hydrated(t *testing.T) {
	srv := testServer(t)
	defer srv.Close()

	catID := create(t, srv.URL+"/categories", map[string]any{"name": "Technology"})
	scID := create(t, srv.URL+"/subcategories", map[string]any{"name": "Web", "categoryId": catID})

	resp := doJSON(t, "GET", srv.URL+"/subcategories/"+scID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", resp.StatusCode)
	}
	var env envelope
	decodeBody(t, resp, &env)
	var sc struct {
		CategoryID string `json:"categoryId"`
		Category   *struct {
			Name string `json:"name"`
		} `json:"category"`
	}
	decodeData(t, env, &sc)
	if sc.CategoryID != catID || sc.Category == nil || sc.Category.Name != "Technology" {
		t.Errorf("subcategory = %+v", sc)
	}

	resp = doJSON(t, "GET", srv.URL+"/subcategories/by-category/"+catID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("by-category: expected 200, got %d", resp.StatusCode)
	}
	var rows []record
	decodeBody(t, resp, &env)
	decodeData(t, env, &rows)
	if len(rows) != 1 || rows[0].ID != scID {
		t.Errorf("rows = %+v", rows)
	}
}

func TestSubCategories_UnknownCategory(t *testing.T) {
	srv := testServer(t)
	defer srv.Close()

	catID := create(t, srv.URL+"/categories", map[string]any{"name": "Technology"})
	doJSON(t, "DELETE", srv.URL+"/categories/"+catID, nil).Body.Close()

	resp := doJSON(t, "POST", srv.URL+"/subcategories", map[string]any{"name": "Web", "categoryId": catID})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

// --- Courses ---

func TestCourses_Lifecycle(t *testing.T) {
	srv := testServer(t)
	defer srv.Close()

	tech := create(t, srv.URL+"/categories", map[string]any{"name": "Technology"})
	biz := create(t, srv.URL+"/categories", map[string]any{"name": "Business"})
	web := create(t, srv.URL+"/subcategories", map[string]any{"name": "Web", "categoryId": tech})
	mkt := create(t, srv.URL+"/subcategories", map[string]any{"name": "Marketing", "categoryId": biz})

	courseID := create(t, srv.URL+"/courses", map[string]any{
		"name":           "Go for the Web",
		"duration":       12.5,
		"level":          "beginner",
		"categoryIds":    []string{tech},
		"subCategoryIds": []string{web},
	})

	resp := doJSON(t, "GET", srv.URL+"/courses/"+courseID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", resp.StatusCode)
	}
	var env envelope
	decodeBody(t, resp, &env)
	var detail struct {
		Categories    []record `json:"categories"`
		SubCategories []record `json:"subCategories"`
	}
	decodeData(t, env, &detail)
	if len(detail.Categories) != 1 || detail.Categories[0].Name != "Technology" {
		t.Errorf("categories = %+v", detail.Categories)
	}
	if len(detail.SubCategories) != 1 || detail.SubCategories[0].Name != "Web" {
		t.Errorf("subCategories = %+v", detail.SubCategories)
	}

	// A subcategory outside the course's categories is rejected with its id.
	resp = doJSON(t, "PUT", srv.URL+"/courses/"+courseID, map[string]any{
		"subCategoryIds": []string{web, mkt},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("mismatch: expected 400, got %d", resp.StatusCode)
	}
	decodeBody(t, resp, &env)
	var mismatch map[string][]string
	if err := json.Unmarshal(env.Errors, &mismatch); err != nil {
		t.Fatalf("decode errors: %v", err)
	}
	if got := mismatch["subCategoryIds"]; len(got) != 1 || got[0] != mkt {
		t.Errorf("offending ids = %v, want [%s]", got, mkt)
	}

	for _, path := range []string{"/courses/by-category/" + tech, "/courses/by-subcategory/" + web} {
		resp = doJSON(t, "GET", srv.URL+path, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.StatusCode)
		}
		var rows []record
		decodeBody(t, resp, &env)
		decodeData(t, env, &rows)
		if len(rows) != 1 || rows[0].ID != courseID {
			t.Errorf("%s: rows = %+v", path, rows)
		}
	}

	resp = doJSON(t, "DELETE", srv.URL+"/courses/"+courseID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, "DELETE", srv.URL+"/courses/"+courseID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCourses_InvalidBody(t *testing.T) {
	srv := testServer(t)
	defer srv.Close()

	resp := doJSON(t, "POST", srv.URL+"/courses", map[string]any{
		"name":        "Go",
		"duration":    10,
		"level":       "beginner",
		"categoryIds": []string{"not-an-id"},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, "POST", srv.URL+"/courses", map[string]any{
		"name":     "Go",
		"duration": -1,
		"level":    "expert",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var env envelope
	decodeBody(t, resp, &env)
	var fields map[string]string
	if err := json.Unmarshal(env.Errors, &fields); err != nil {
		t.Fatalf("decode errors: %v", err)
	}
	for _, f := range []string{"duration", "level", "categoryIds", "subCategoryIds"} {
		if _, ok := fields[f]; !ok {
			t.Errorf("errors missing %q: %v", f, fields)
		}
	}
}

// --- Reports ---

func TestReports(t *testing.T) {
	srv := testServer(t)
	defer srv.Close()

	tech := create(t, srv.URL+"/categories", map[string]any{"name": "Technology"})
	web := create(t, srv.URL+"/subcategories", map[string]any{"name": "Web", "categoryId": tech})
	for i, name := range []string{"Go Basics", "Go Advanced"} {
		create(t, srv.URL+"/courses", map[string]any{
			"name":           name,
			"duration":       float64(10 * (i + 1)),
			"level":          "beginner",
			"categoryIds":    []string{tech},
			"subCategoryIds": []string{web},
		})
	}

	resp := doJSON(t, "GET", srv.URL+"/reports/statistics", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("statistics: expected 200, got %d", resp.StatusCode)
	}
	var env envelope
	decodeBody(t, resp, &env)
	var stats struct {
		TotalCategories int64   `json:"totalCategories"`
		TotalCourses    int64   `json:"totalCourses"`
		AverageDuration float64 `json:"averageDuration"`
		MaxDuration     float64 `json:"maxDuration"`
		MinDuration     float64 `json:"minDuration"`
	}
	decodeData(t, env, &stats)
	if stats.TotalCategories != 1 || stats.TotalCourses != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AverageDuration != 15 || stats.MaxDuration != 20 || stats.MinDuration != 10 {
		t.Errorf("durations = %+v", stats)
	}

	for _, path := range []string{
		"/reports/subcategories-by-category",
		"/reports/courses-by-level",
		"/reports/course-details",
	} {
		resp = doJSON(t, "GET", srv.URL+path, nil)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, resp.StatusCode)
		}
		var rows []json.RawMessage
		decodeBody(t, resp, &env)
		decodeData(t, env, &rows)
		if len(rows) == 0 {
			t.Errorf("%s: no rows", path)
		}
	}
}

func TestRateLimit(t *testing.T) {
	sy, err := syllabus.New(syllabus.WithStore(memory.New()))
	if err != nil {
		t.Fatalf("new syllabus: %v", err)
	}
	h := api.NewHandler(sy.Categories(), sy.SubCategories(), sy.Courses(), sy.Reports(), slog.Default(),
		api.WithRateLimit(1),
	)
	srv := httptest.NewServer(h)
	defer srv.Close()

	resp := doJSON(t, http.MethodGet, srv.URL+"/categories", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/categories", nil)
	var env envelope
	decodeBody(t, resp, &env)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", resp.StatusCode)
	}
	if env.StatusCode != http.StatusTooManyRequests || env.Message != "too many requests" {
		t.Errorf("envelope = %+v", env)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}
}
