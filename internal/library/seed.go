package library

import "fmt"

// SeedDemo fills c with the demo books, members and loans shown on a fresh install.
func SeedDemo(c *Catalog) error {
	books := []struct{ title, author, isbn string }{
		{"Python Basics", "J.S", "99"},
		{"Data Science", "J.W", "88"},
		{"Web Development", "K.Q", "77"},
		{"Machine Learning", "K.W", "66"},
	}
	for _, b := range books {
		if err := c.AddBook(b.title, b.author, b.isbn); err != nil {
			return fmt.Errorf("seed book %s: %w", b.isbn, err)
		}
	}

	members := []struct{ name, id string }{
		{"Qam", "M001"},
		{"Pam", "M002"},
	}
	for _, m := range members {
		if err := c.AddMember(m.name, m.id); err != nil {
			return fmt.Errorf("seed member %s: %w", m.id, err)
		}
	}

	loans := []Loan{
		{ISBN: "99", MemberID: "M001"},
		{ISBN: "88", MemberID: "M002"},
	}
	for _, l := range loans {
		if err := c.BorrowBook(l.ISBN, l.MemberID); err != nil {
			return fmt.Errorf("seed loan %s: %w", l.ISBN, err)
		}
	}
	return nil
}
