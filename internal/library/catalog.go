package library

import (
	"slices"
	"sync"
)

// Catalog holds books, members and active loans in memory.
// It is safe for concurrent use; every operation either completes or
// returns an *OpError without touching any store.
type Catalog struct {
	mu sync.RWMutex

	books   map[string]*Book
	members map[string]*Member
	loans   map[string]string // isbn -> member id

	bookOrder   []string
	memberOrder []string
	loanOrder   []string
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		books:   make(map[string]*Book),
		members: make(map[string]*Member),
		loans:   make(map[string]string),
	}
}

// AddBook registers a new available book.
func (c *Catalog) AddBook(title, author, isbn string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.books[isbn]; ok {
		return &OpError{Kind: ErrDuplicateISBN, ISBN: isbn}
	}
	c.books[isbn] = &Book{ISBN: isbn, Title: title, Author: author, Available: true}
	c.bookOrder = append(c.bookOrder, isbn)
	return nil
}

// AddMember registers a new member with nothing borrowed.
func (c *Catalog) AddMember(name, memberID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.members[memberID]; ok {
		return &OpError{Kind: ErrDuplicateMemberID, MemberID: memberID}
	}
	c.members[memberID] = &Member{ID: memberID, Name: name, Borrowed: []string{}}
	c.memberOrder = append(c.memberOrder, memberID)
	return nil
}

// BorrowBook lends isbn to memberID. The book is checked for existence and
// availability before the member is looked up, so a taken book reported
// together with an unknown member yields ErrBookUnavailable.
func (c *Catalog) BorrowBook(isbn, memberID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	book, ok := c.books[isbn]
	if !ok {
		return &OpError{Kind: ErrUnknownBook, ISBN: isbn, MemberID: memberID}
	}
	if !book.Available {
		return &OpError{Kind: ErrBookUnavailable, ISBN: isbn, MemberID: memberID}
	}
	member, ok := c.members[memberID]
	if !ok {
		return &OpError{Kind: ErrUnknownMember, ISBN: isbn, MemberID: memberID}
	}

	book.Available = false
	c.loans[isbn] = memberID
	c.loanOrder = append(c.loanOrder, isbn)
	member.Borrowed = append(member.Borrowed, isbn)
	return nil
}

// ReturnBook ends the active loan of isbn.
func (c *Catalog) ReturnBook(isbn string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	memberID, ok := c.loans[isbn]
	if !ok {
		return &OpError{Kind: ErrBookNotBorrowed, ISBN: isbn}
	}

	c.books[isbn].Available = true
	member := c.members[memberID]
	if i := slices.Index(member.Borrowed, isbn); i >= 0 {
		member.Borrowed = slices.Delete(member.Borrowed, i, i+1)
	}
	delete(c.loans, isbn)
	if i := slices.Index(c.loanOrder, isbn); i >= 0 {
		c.loanOrder = slices.Delete(c.loanOrder, i, i+1)
	}
	return nil
}

// Book returns a copy of the book with the given ISBN.
func (c *Catalog) Book(isbn string) (Book, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	b, ok := c.books[isbn]
	if !ok {
		return Book{}, false
	}
	return *b, true
}

// Member returns a copy of the member with the given ID.
func (c *Catalog) Member(memberID string) (Member, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	m, ok := c.members[memberID]
	if !ok {
		return Member{}, false
	}
	return copyMember(m), true
}

// ActiveLoans returns the number of books currently lent out.
func (c *Catalog) ActiveLoans() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.loans)
}

// Snapshot copies the whole catalog state.
func (c *Catalog) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Books:   make([]Book, 0, len(c.bookOrder)),
		Members: make([]Member, 0, len(c.memberOrder)),
		Loans:   make([]Loan, 0, len(c.loanOrder)),
	}
	for _, isbn := range c.bookOrder {
		s.Books = append(s.Books, *c.books[isbn])
	}
	for _, id := range c.memberOrder {
		s.Members = append(s.Members, copyMember(c.members[id]))
	}
	for _, isbn := range c.loanOrder {
		s.Loans = append(s.Loans, Loan{ISBN: isbn, MemberID: c.loans[isbn]})
	}
	return s
}

func copyMember(m *Member) Member {
	out := *m
	out.Borrowed = slices.Clone(m.Borrowed)
	if out.Borrowed == nil {
		out.Borrowed = []string{}
	}
	return out
}
