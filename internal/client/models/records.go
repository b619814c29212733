package models

import "time"

// Catalog and lending records as the backend returns them. The client does
// not edit these shapes beyond the fields it sends back on create/update;
// unknown fields are simply dropped on decode.

type Book struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn,omitempty"`
	CategoryID  string `json:"category_id,omitempty"`
	PublisherID string `json:"publisher_id,omitempty"`
	Copies      int    `json:"copies"`
	Available   int    `json:"available"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Publisher struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city,omitempty"`
}

type Member struct {
	ID       string `json:"id"`
	Fullname string `json:"fullname"`
	Email    string `json:"email,omitempty"`
	Grade    string `json:"grade,omitempty"`
}

// LendingStatus values used by the lending screens.
const (
	LendingStatusBorrowed = "borrowed"
	LendingStatusReturned = "returned"
	LendingStatusOverdue  = "overdue"
)

type Lending struct {
	ID         string     `json:"id"`
	BookID     string     `json:"book_id"`
	BookTitle  string     `json:"book_title,omitempty"`
	MemberID   string     `json:"member_id"`
	MemberName string     `json:"member_name,omitempty"`
	Status     string     `json:"status"`
	BorrowedAt time.Time  `json:"borrowed_at"`
	DueAt      time.Time  `json:"due_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}

// ReportSummary is the aggregate the reports screen renders.
type ReportSummary struct {
	Books          int `json:"books"`
	Members        int `json:"members"`
	ActiveLendings int `json:"active_lendings"`
	OverdueCount   int `json:"overdue"`
}
