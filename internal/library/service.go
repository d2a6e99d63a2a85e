package library

import (
	"context"
	"errors"
	"strings"

	"librarydesk/internal/platform/logger"

	"go.uber.org/zap"
)

// Metrics receives operation outcomes. *metrics.Recorder satisfies it.
type Metrics interface {
	ObserveOperation(op, result string)
	SetActiveLoans(n int)
}

// Service exposes the catalog to transport code, logging and counting every mutation.
type Service struct {
	catalog *Catalog
	log     *zap.Logger
	metrics Metrics
}

// NewService creates a new library service. m may be nil.
func NewService(catalog *Catalog, log *zap.Logger, m Metrics) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{catalog: catalog, log: log, metrics: m}
	s.refreshGauge()
	return s
}

// AddBook registers a book.
func (s *Service) AddBook(ctx context.Context, title, author, isbn string) error {
	err := s.catalog.AddBook(title, author, isbn)
	s.record(ctx, "add_book", err, zap.String("isbn", isbn), zap.String("title", title))
	return err
}

// AddMember registers a member.
func (s *Service) AddMember(ctx context.Context, name, memberID string) error {
	err := s.catalog.AddMember(name, memberID)
	s.record(ctx, "add_member", err, zap.String("member_id", memberID))
	return err
}

// BorrowBook lends a book to a member.
func (s *Service) BorrowBook(ctx context.Context, isbn, memberID string) error {
	err := s.catalog.BorrowBook(isbn, memberID)
	s.record(ctx, "borrow_book", err, zap.String("isbn", isbn), zap.String("member_id", memberID))
	return err
}

// ReturnBook ends a loan.
func (s *Service) ReturnBook(ctx context.Context, isbn string) error {
	err := s.catalog.ReturnBook(isbn)
	s.record(ctx, "return_book", err, zap.String("isbn", isbn))
	return err
}

// Snapshot returns the current catalog state.
func (s *Service) Snapshot(ctx context.Context) Snapshot {
	return s.catalog.Snapshot()
}

// BorrowedTitles returns the title of every book currently on loan, in loan order.
func (s *Service) BorrowedTitles(ctx context.Context) []string {
	snap := s.catalog.Snapshot()
	titles := make(map[string]string, len(snap.Books))
	for _, b := range snap.Books {
		titles[b.ISBN] = b.Title
	}
	out := make([]string, 0, len(snap.Loans))
	for _, l := range snap.Loans {
		out = append(out, titles[l.ISBN])
	}
	return out
}

func (s *Service) record(ctx context.Context, op string, err error, fields ...zap.Field) {
	log := logger.FromContext(ctx, s.log).With(zap.String("op", op))
	result := "ok"
	if err != nil {
		result = ResultLabel(err)
		log.Info("catalog operation rejected", append(fields, zap.String("result", result), zap.Error(err))...)
	} else {
		log.Info("catalog operation applied", fields...)
	}
	if s.metrics != nil {
		s.metrics.ObserveOperation(op, result)
	}
	s.refreshGauge()
}

func (s *Service) refreshGauge() {
	if s.metrics != nil {
		s.metrics.SetActiveLoans(s.catalog.ActiveLoans())
	}
}

// ResultLabel maps an operation error to a short metric label.
func ResultLabel(err error) string {
	for _, kind := range []error{
		ErrDuplicateISBN, ErrDuplicateMemberID, ErrUnknownBook,
		ErrBookUnavailable, ErrUnknownMember, ErrBookNotBorrowed,
	} {
		if errors.Is(err, kind) {
			return strings.ReplaceAll(kind.Error(), " ", "_")
		}
	}
	return "error"
}
