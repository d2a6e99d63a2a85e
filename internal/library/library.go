package library

import (
	"errors"
	"fmt"
)

// Error kinds returned by Catalog operations. Callers branch on them with errors.Is.
var (
	ErrDuplicateISBN     = errors.New("duplicate isbn")
	ErrDuplicateMemberID = errors.New("duplicate member id")
	ErrUnknownBook       = errors.New("unknown book")
	ErrBookUnavailable   = errors.New("book unavailable")
	ErrUnknownMember     = errors.New("unknown member")
	ErrBookNotBorrowed   = errors.New("book not borrowed")
)

// Book represents a catalogued book.
type Book struct {
	ISBN      string `json:"isbn"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Available bool   `json:"available"`
}

// Member represents a registered library member.
type Member struct {
	ID       string   `json:"member_id"`
	Name     string   `json:"name"`
	Borrowed []string `json:"borrowed_books"` // ISBNs in borrow order
}

// Loan links a borrowed ISBN to the member holding it.
type Loan struct {
	ISBN     string `json:"isbn"`
	MemberID string `json:"member_id"`
}

// Snapshot is a copy of the catalog state, each list in insertion order.
type Snapshot struct {
	Books   []Book   `json:"books"`
	Members []Member `json:"members"`
	Loans   []Loan   `json:"loans"`
}

// OpError is a rejected catalog operation. Its message is meant for end users.
type OpError struct {
	Kind     error
	ISBN     string
	MemberID string
}

func (e *OpError) Error() string {
	switch e.Kind {
	case ErrDuplicateISBN:
		return fmt.Sprintf("Book with ISBN %s already exists.", e.ISBN)
	case ErrDuplicateMemberID:
		return fmt.Sprintf("Member with ID %s already exists.", e.MemberID)
	case ErrUnknownBook:
		return fmt.Sprintf("Book with ISBN %s does not exist.", e.ISBN)
	case ErrBookUnavailable:
		return fmt.Sprintf("Book with ISBN %s is not available.", e.ISBN)
	case ErrUnknownMember:
		return fmt.Sprintf("Member with ID %s does not exist.", e.MemberID)
	case ErrBookNotBorrowed:
		return fmt.Sprintf("Book with ISBN %s is not borrowed.", e.ISBN)
	default:
		return e.Kind.Error()
	}
}

func (e *OpError) Unwrap() error {
	return e.Kind
}
