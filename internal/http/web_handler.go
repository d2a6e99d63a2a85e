package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"librarydesk/internal/chart"
	"librarydesk/internal/httpx"
	"librarydesk/internal/library"
	"librarydesk/internal/platform/flash"
	"librarydesk/internal/platform/logger"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var indexTemplate = template.Must(
	template.New("index.html").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/index.html"),
)

const (
	msgBookAdded    = "Book added successfully!"
	msgMemberAdded  = "Member added successfully!"
	msgBookBorrowed = "Book borrowed successfully!"
	msgBookReturned = "Book returned successfully!"
	msgUnexpected   = "Something went wrong, please try again."
	msgNoChartData  = "No books borrowed yet"
)

// WebHandler serves the HTML catalog pages and form endpoints.
type WebHandler struct {
	svc   LibraryService
	flash *flash.Store
	log   *zap.Logger
}

func NewWebHandler(svc LibraryService, flashes *flash.Store, log *zap.Logger) *WebHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WebHandler{svc: svc, flash: flashes, log: log}
}

type loanRow struct {
	ISBN       string
	Title      string
	MemberID   string
	MemberName string
}

type indexPage struct {
	Messages []flash.Message
	Books    []library.Book
	Members  []library.Member
	Loans    []loanRow
}

// Index handles GET /
func (h *WebHandler) Index(w http.ResponseWriter, r *http.Request) {
	snap := h.svc.Snapshot(r.Context())
	page := indexPage{
		Messages: h.flash.Pop(w, r),
		Books:    snap.Books,
		Members:  snap.Members,
		Loans:    loanRows(snap),
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, page); err != nil {
		logger.FromContext(r.Context(), h.log).Error("render index", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func loanRows(snap library.Snapshot) []loanRow {
	titles := make(map[string]string, len(snap.Books))
	for _, b := range snap.Books {
		titles[b.ISBN] = b.Title
	}
	names := make(map[string]string, len(snap.Members))
	for _, m := range snap.Members {
		names[m.ID] = m.Name
	}
	rows := make([]loanRow, 0, len(snap.Loans))
	for _, l := range snap.Loans {
		rows = append(rows, loanRow{
			ISBN:       l.ISBN,
			Title:      titles[l.ISBN],
			MemberID:   l.MemberID,
			MemberName: names[l.MemberID],
		})
	}
	return rows
}

// AddBook handles POST /add_book
func (h *WebHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	form, ok := h.formValues(w, r, "title", "author", "isbn")
	if !ok {
		return
	}
	err := h.svc.AddBook(r.Context(), form["title"], form["author"], form["isbn"])
	h.finish(w, r, err, msgBookAdded)
}

// AddMember handles POST /add_member
func (h *WebHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	form, ok := h.formValues(w, r, "name", "member_id")
	if !ok {
		return
	}
	err := h.svc.AddMember(r.Context(), form["name"], form["member_id"])
	h.finish(w, r, err, msgMemberAdded)
}

// BorrowBook handles POST /borrow_book
func (h *WebHandler) BorrowBook(w http.ResponseWriter, r *http.Request) {
	form, ok := h.formValues(w, r, "isbn", "member_id")
	if !ok {
		return
	}
	err := h.svc.BorrowBook(r.Context(), form["isbn"], form["member_id"])
	h.finish(w, r, err, msgBookBorrowed)
}

// ReturnBook handles POST /return_book
func (h *WebHandler) ReturnBook(w http.ResponseWriter, r *http.Request) {
	form, ok := h.formValues(w, r, "isbn")
	if !ok {
		return
	}
	err := h.svc.ReturnBook(r.Context(), form["isbn"])
	h.finish(w, r, err, msgBookReturned)
}

// BorrowedBooksChart handles GET /borrowed_books_chart
func (h *WebHandler) BorrowedBooksChart(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := chart.RenderPie(&buf, h.svc.BorrowedTitles(r.Context()))
	switch {
	case errors.Is(err, chart.ErrNoData):
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(msgNoChartData))
		return
	case err != nil:
		logger.FromContext(r.Context(), h.log).Error("render chart", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

// Catalog handles GET /api/catalog
func (h *WebHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	snap := h.svc.Snapshot(r.Context())
	httpx.JSONSuccessWithRequest(r, w, snap, map[string]any{
		"books":        len(snap.Books),
		"members":      len(snap.Members),
		"active_loans": len(snap.Loans),
	})
}

// formValues reads the named fields from a submitted form. A missing field
// is a malformed request and answered with 400.
func (h *WebHandler) formValues(w http.ResponseWriter, r *http.Request, keys ...string) (map[string]string, bool) {
	if err := r.ParseForm(); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		http.Error(w, "malformed form", http.StatusBadRequest)
		return nil, false
	}

	values := make(map[string]string, len(keys))
	for _, k := range keys {
		if !r.PostForm.Has(k) {
			http.Error(w, "missing form field: "+k, http.StatusBadRequest)
			return nil, false
		}
		values[k] = r.PostForm.Get(k)
	}
	return values, true
}

// finish flashes the outcome of a form action and sends the browser back to the listing.
func (h *WebHandler) finish(w http.ResponseWriter, r *http.Request, err error, success string) {
	category, text := flash.CategorySuccess, success
	if err != nil {
		category = flash.CategoryError
		var opErr *library.OpError
		if errors.As(err, &opErr) {
			text = opErr.Error()
		} else {
			logger.FromContext(r.Context(), h.log).Error("catalog operation failed", zap.Error(err))
			text = msgUnexpected
		}
	}

	if ferr := h.flash.Add(w, r, category, text); ferr != nil {
		logger.FromContext(r.Context(), h.log).Error("set flash", zap.Error(ferr))
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
