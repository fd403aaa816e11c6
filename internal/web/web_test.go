package web_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/store"
	"github.com/idilsaglam/shoplist/internal/store/memstore"
	"github.com/idilsaglam/shoplist/internal/web"
)

func newTestServer(t *testing.T, s store.Store) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(web.NewRouter(&web.ListPage{Store: s}))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, method, path string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(b)
}

func TestListPage_RendersLists(t *testing.T) {
	s := memstore.Seed(model.Collection{
		{ID: 1, Name: "Groceries", Items: []model.Item{
			{ID: 1, Text: "Oat milk"},
			{ID: 2, Text: "<b>Bread</b>", Done: true},
		}},
		{ID: 2, Name: "Hardware", Items: []model.Item{}},
	})
	srv := newTestServer(t, s)

	code, body := get(t, srv, http.MethodGet, "/")
	if code != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", code)
	}
	for _, want := range []string{
		`<section id="list-1">`,
		"Groceries",
		"<small>1/2</small>",
		`<li id="item-2" class="done">`,
		"&lt;b&gt;Bread&lt;/b&gt;",
		"Hardware",
		"No items yet.",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(body, "<b>Bread</b>") {
		t.Error("item text was not escaped")
	}
}

func TestListPage_NoData(t *testing.T) {
	s := memstore.New()
	s.FailLoad(&store.CorruptError{Path: "x", Err: errors.New("bad")})
	srv := newTestServer(t, s)

	code, body := get(t, srv, http.MethodGet, "/")
	if code != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", code)
	}
	if !strings.Contains(body, "No lists yet.") {
		t.Errorf("body = %s, want empty state", body)
	}
}

func TestRouter_SingleRoute(t *testing.T) {
	srv := newTestServer(t, memstore.New())

	if code, _ := get(t, srv, http.MethodGet, "/lists"); code != http.StatusNotFound {
		t.Errorf("GET /lists status = %d, want 404", code)
	}
	if code, _ := get(t, srv, http.MethodPost, "/"); code != http.StatusMethodNotAllowed {
		t.Errorf("POST / status = %d, want 405", code)
	}
	code, body := get(t, srv, http.MethodHead, "/")
	if code != http.StatusOK || body != "" {
		t.Errorf("HEAD / = (%d, %q), want (200, empty)", code, body)
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- web.Serve(ctx, "127.0.0.1:0", memstore.New()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v, want nil", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}
