package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
)

// NewFormRequest creates a urlencoded POST request, as sent by an HTML form.
func NewFormRequest(path string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// FollowCookies builds a GET request for path carrying every cookie set on w,
// the way a browser would after a redirect.
func FollowCookies(w *httptest.ResponseRecorder, path string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}
