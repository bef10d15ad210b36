// file: model/response.go

package model

// AuthResponse is returned by the register, authenticate and refresh
// endpoints. Responses are all-or-nothing: a caller never receives a
// token alongside an error.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// BookResponse is a Book enriched with the resolvable poster URL.
type BookResponse struct {
	Book
	PosterURL string `json:"poster_url"`
}

// BookPageResponse is a single page of the catalog listing.
type BookPageResponse struct {
	Books         []BookResponse `json:"books"`
	PageNumber    int            `json:"page_number"`
	PageSize      int            `json:"page_size"`
	TotalElements int64          `json:"total_elements"`
	TotalPages    int            `json:"total_pages"`
	IsLastPage    bool           `json:"is_last_page"`
}
