package domain

import "time"

// Comment is a reader note attached to a blog entry.
type Comment struct {
	ID      string
	BlogID  string
	Body    string
	Created time.Time
}

// Blog is a long-form entry with attached comments.
type Blog struct {
	ID       string
	Title    string
	Author   string
	Body     string
	Comments []Comment
	Created  time.Time
}
