package model

import "time"

type Book struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Director    string    `json:"director"`
	Publisher   string    `json:"publisher"`
	BookCast    []string  `json:"book_cast"`
	ReleaseYear int       `json:"release_year"`
	Poster      string    `json:"poster"`
	CreatedAt   time.Time `json:"created_at"`
}
