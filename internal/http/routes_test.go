package http

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"librarydesk/internal/library"
	"librarydesk/internal/metrics"
	"librarydesk/internal/platform/flash"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *http.Client, *library.Catalog) {
	t.Helper()
	catalog := library.NewCatalog()
	rec := metrics.New()
	svc := library.NewService(catalog, nil, rec)
	handler := NewWebHandler(svc, flash.NewStore(testSecret), nil)

	srv := httptest.NewServer(NewRouter(handler, rec.Handler()))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return srv, &http.Client{Jar: jar}, catalog
}

func postForm(t *testing.T, client *http.Client, target string, form url.Values) string {
	t.Helper()
	resp, err := client.PostForm(target, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestRouter_BorrowReturnFlow(t *testing.T) {
	srv, client, catalog := newTestServer(t)

	page := postForm(t, client, srv.URL+"/add_book", url.Values{"title": {"Python Basics"}, "author": {"J.S"}, "isbn": {"99"}})
	assert.Contains(t, page, "Book added successfully!")

	page = postForm(t, client, srv.URL+"/add_member", url.Values{"name": {"Qam"}, "member_id": {"M001"}})
	assert.Contains(t, page, "Member added successfully!")

	page = postForm(t, client, srv.URL+"/borrow_book", url.Values{"isbn": {"99"}, "member_id": {"M001"}})
	assert.Contains(t, page, "Book borrowed successfully!")
	b, _ := catalog.Book("99")
	assert.False(t, b.Available)

	page = postForm(t, client, srv.URL+"/borrow_book", url.Values{"isbn": {"99"}, "member_id": {"M001"}})
	assert.Contains(t, page, "Book with ISBN 99 is not available.")

	resp, err := client.Get(srv.URL + "/borrowed_books_chart")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	page = postForm(t, client, srv.URL+"/return_book", url.Values{"isbn": {"99"}})
	assert.Contains(t, page, "Book returned successfully!")

	page = postForm(t, client, srv.URL+"/return_book", url.Values{"isbn": {"99"}})
	assert.Contains(t, page, "Book with ISBN 99 is not borrowed.")

	resp, err = client.Get(srv.URL + "/borrowed_books_chart")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "No books borrowed yet", string(body))

	m, _ := catalog.Member("M001")
	assert.Empty(t, m.Borrowed)
}

func TestRouter_FlashShownOnce(t *testing.T) {
	srv, client, _ := newTestServer(t)

	page := postForm(t, client, srv.URL+"/add_member", url.Values{"name": {"Qam"}, "member_id": {"M001"}})
	assert.Contains(t, page, "Member added successfully!")

	resp, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.NotContains(t, string(body), "Member added successfully!")
}

func TestRouter_MethodsAndMisc(t *testing.T) {
	srv, client, _ := newTestServer(t)

	resp, err := client.Get(srv.URL + "/add_book")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/unknown")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	postForm(t, client, srv.URL+"/add_book", url.Values{"title": {"T"}, "author": {"A"}, "isbn": {"1"}})

	resp, err = client.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, strings.Contains(string(body), `librarydesk_catalog_operations_total{op="add_book",result="ok"} 1`))
}
