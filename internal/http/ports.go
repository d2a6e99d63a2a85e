package http

import (
	"context"

	"librarydesk/internal/library"
)

//go:generate mockgen -destination=mocks/mock_library_service.go -package=mocks librarydesk/internal/http LibraryService

// LibraryService is what the web handlers need from the library. *library.Service implements it.
type LibraryService interface {
	AddBook(ctx context.Context, title, author, isbn string) error
	AddMember(ctx context.Context, name, memberID string) error
	BorrowBook(ctx context.Context, isbn, memberID string) error
	ReturnBook(ctx context.Context, isbn string) error
	Snapshot(ctx context.Context) library.Snapshot
	BorrowedTitles(ctx context.Context) []string
}
