package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"cardapio/internal/adapters/sqlite"
	"cardapio/internal/application"
	"cardapio/internal/domain"
	"cardapio/internal/ports"
)

func setupTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()

	catalog := sqlite.NewCatalog()
	if err := catalog.Open(sqlite.MemoryDSN); err != nil {
		t.Fatalf("failed to open catalog: %v", err)
	}
	t.Cleanup(func() { catalog.Close() })
	if _, err := sqlite.Seed(catalog, sqlite.DefaultFixtures()); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	srv := httptest.NewServer(NewServer(catalog, opts...).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, method, url, body string, header http.Header) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getPage(t *testing.T, url string) *domain.Page {
	t.Helper()

	resp := doRequest(t, http.MethodGet, url, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	var page domain.Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return &page
}

func TestAPI_ListItems(t *testing.T) {
	srv := setupTestServer(t)

	page := getPage(t, srv.URL+"/api/recipes?title=bolo")
	if len(page.Data) != 2 || page.Meta.Total != 2 {
		t.Errorf("expected 2 recipes, got %d (total %d)", len(page.Data), page.Meta.Total)
	}

	page = getPage(t, srv.URL+"/api/recipes?per_page=4&page=2")
	if len(page.Data) != 2 || page.Meta.CurrentPage != 2 || page.Meta.LastPage != 2 {
		t.Errorf("unexpected page 2: %d items, meta %+v", len(page.Data), page.Meta)
	}

	page = getPage(t, srv.URL+"/api/favorites")
	for _, it := range page.Data {
		if !it.IsFavorited {
			t.Errorf("favorites list returned unfavorited item %d", it.ID)
		}
	}
}

func TestAPI_Errors(t *testing.T) {
	srv := setupTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"unknown kind", http.MethodGet, "/api/videos", "", http.StatusNotFound},
		{"page size too large", http.MethodGet, "/api/recipes?per_page=500", "", http.StatusBadRequest},
		{"missing item", http.MethodDelete, "/api/recipes/999", "", http.StatusNotFound},
		{"recipe id under posts", http.MethodDelete, "/api/posts/1", "", http.StatusNotFound},
		{"bad favorite body", http.MethodPost, "/api/recipes/1/favorite", "{}", http.StatusBadRequest},
		{"non-numeric id", http.MethodDelete, "/api/recipes/abc", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, tt.method, srv.URL+tt.path, tt.body, nil)
			if resp.StatusCode != tt.want {
				t.Errorf("expected %d, got %d", tt.want, resp.StatusCode)
			}
		})
	}
}

func TestAPI_Mutations(t *testing.T) {
	srv := setupTestServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/recipes/1/favorite", `{"favorited": true}`, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("favorite: expected 204, got %d", resp.StatusCode)
	}
	// Unfavoriting from the favorites list goes to the recipe
	resp = doRequest(t, http.MethodPost, srv.URL+"/api/favorites/2/favorite", `{"favorited": false}`, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("unfavorite: expected 204, got %d", resp.StatusCode)
	}

	page := getPage(t, srv.URL+"/api/favorites")
	ids := make([]int64, 0, len(page.Data))
	for _, it := range page.Data {
		ids = append(ids, it.ID)
	}
	if len(ids) != 2 || ids[0] != 4 || ids[1] != 1 {
		t.Errorf("expected favorites [4 1], got %v", ids)
	}

	resp = doRequest(t, http.MethodDelete, srv.URL+"/api/posts/101", "", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", resp.StatusCode)
	}
	if page := getPage(t, srv.URL+"/api/posts"); page.Meta.Total != 2 {
		t.Errorf("expected 2 posts after delete, got %d", page.Meta.Total)
	}
}

func TestAPI_Taxonomy(t *testing.T) {
	srv := setupTestServer(t)

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/categories", "", nil)
	var cats listEnvelope[domain.Category]
	if err := json.NewDecoder(resp.Body).Decode(&cats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cats.Data) != 5 || cats.Data[0].Icon != domain.IconCake {
		t.Errorf("unexpected categories: %+v", cats.Data)
	}

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/diet-tags", "", nil)
	var tags listEnvelope[domain.DietTag]
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tags.Data) != 4 {
		t.Errorf("expected 4 diet tags, got %d", len(tags.Data))
	}
}

func TestAPI_Token(t *testing.T) {
	srv := setupTestServer(t, WithToken("s3cret"))

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/recipes", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", resp.StatusCode)
	}

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/recipes", "", http.Header{"Authorization": {"Bearer s3cre"}})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 with a wrong token, got %d", resp.StatusCode)
	}

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/recipes", "", http.Header{"Authorization": {"Bearer s3cret"}})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 with token, got %d", resp.StatusCode)
	}

	// HTML pages stay public
	resp = doRequest(t, http.MethodGet, srv.URL+"/recipes", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for html page, got %d", resp.StatusCode)
	}
}

func TestMiddleware_Headers(t *testing.T) {
	srv := setupTestServer(t)

	resp := doRequest(t, http.MethodOptions, srv.URL+"/api/recipes", "", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/recipes", "", http.Header{RequestIDHeader: {"abc-123"}})
	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("expected request id to be echoed, got %q", got)
	}

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/recipes", "", nil)
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("expected a generated request id")
	}
}

func parseHTML(t *testing.T, resp *http.Response) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		t.Fatalf("failed to parse html: %v", err)
	}
	return doc
}

func TestListPage_Filters(t *testing.T) {
	srv := setupTestServer(t)

	resp := doRequest(t, http.MethodGet, srv.URL+"/recipes?category_id=1", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	doc := parseHTML(t, resp)

	if n := doc.Find("li.item").Length(); n != 2 {
		t.Errorf("expected 2 items, got %d", n)
	}

	active := doc.Find(".categories a.active")
	if !strings.Contains(active.Text(), "Bolos") {
		t.Errorf("expected Bolos to be the active category, got %q", active.Text())
	}
	// Clicking the active category clears it
	if href, _ := active.Attr("href"); href != "/recipes" {
		t.Errorf("expected active category to link to /recipes, got %q", href)
	}

	var dietHref string
	doc.Find(".diets a").Each(func(_ int, s *goquery.Selection) {
		if s.Text() == "Sem glúten" {
			dietHref, _ = s.Attr("href")
		}
	})
	if dietHref != "/recipes?category_id=1&diet_ids=3" {
		t.Errorf("unexpected diet link %q", dietHref)
	}

	if v, _ := doc.Find(`form.search input[type=hidden][name=category_id]`).Attr("value"); v != "1" {
		t.Errorf("search form should carry the category filter, got %q", v)
	}
}

func TestListPage_NextAndEmpty(t *testing.T) {
	srv := setupTestServer(t)

	doc := parseHTML(t, doRequest(t, http.MethodGet, srv.URL+"/recipes?per_page=4", "", nil))
	if href, _ := doc.Find("a.next").Attr("href"); href != "/recipes?page=2&per_page=4" {
		t.Errorf("unexpected next link %q", href)
	}

	doc = parseHTML(t, doRequest(t, http.MethodGet, srv.URL+"/posts?title=lasanha", "", nil))
	if doc.Find("li.item").Length() != 0 {
		t.Error("expected no items")
	}
	if href, _ := doc.Find(".empty a.clear").Attr("href"); href != "/posts" {
		t.Errorf("expected clear link to /posts, got %q", href)
	}
}

func TestListPage_RedirectsRoot(t *testing.T) {
	srv := setupTestServer(t)

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
	resp, err := client.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/recipes" {
		t.Errorf("expected redirect to /recipes, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

type failingBackend struct {
	ports.Backend
}

func (failingBackend) ListItems(context.Context, ports.ListQuery) (*domain.Page, error) {
	return nil, &application.BackendError{Method: http.MethodGet, Path: "/api/recipes", Status: http.StatusServiceUnavailable}
}

func (failingBackend) ListCategories(context.Context) ([]domain.Category, error) {
	return nil, application.ErrUnavailable
}

func (failingBackend) ListDietTags(context.Context) ([]domain.DietTag, error) {
	return nil, application.ErrUnavailable
}

func TestListPage_FetchFailureOffersRetry(t *testing.T) {
	srv := httptest.NewServer(NewServer(failingBackend{}).Handler())
	defer srv.Close()

	resp := doRequest(t, http.MethodGet, srv.URL+"/recipes?title=bolo", "", nil)
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", resp.StatusCode)
	}
	doc := parseHTML(t, resp)

	if doc.Find(".empty.error").Length() != 1 {
		t.Fatal("expected error empty state")
	}
	if href, _ := doc.Find("a.retry").Attr("href"); href != "/recipes?title=bolo" {
		t.Errorf("retry should reload the same filters, got %q", href)
	}
	if doc.Find(".categories").Length() != 0 {
		t.Error("categories should be hidden when taxonomy failed")
	}
}
