package http

import (
	"net/http"
)

// NewRouter registers the web routes. metrics may be nil.
func NewRouter(h *WebHandler, metrics http.Handler) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /{$}", h.Index)
	router.HandleFunc("POST /add_book", h.AddBook)
	router.HandleFunc("POST /add_member", h.AddMember)
	router.HandleFunc("POST /borrow_book", h.BorrowBook)
	router.HandleFunc("POST /return_book", h.ReturnBook)
	router.HandleFunc("GET /borrowed_books_chart", h.BorrowedBooksChart)
	router.HandleFunc("GET /api/catalog", h.Catalog)

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if metrics != nil {
		router.Handle("GET /metrics", metrics)
	}
	return router
}
