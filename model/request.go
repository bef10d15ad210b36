// file: model/request.go

package model

// RegisterRequest defines the payload for creating a new user.
// It includes validation tags to ensure data integrity at the entry point.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest defines the payload for user authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RefreshRequest defines the payload for exchanging a refresh token
// for a new access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// BookRequest defines the metadata payload for creating or updating a book.
// The poster image travels as a separate multipart file part.
type BookRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Director    string   `json:"director" validate:"required"`
	Publisher   string   `json:"publisher" validate:"required"`
	BookCast    []string `json:"book_cast"`
	ReleaseYear int      `json:"release_year" validate:"required"`
}
