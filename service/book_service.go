// file: service/book_service.go

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"go-book-api/config"
	"go-book-api/model"
	"go-book-api/repository"
	"time"
)

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrInvalidSortKey = errors.New("invalid sort key")
	ErrInvalidPaging  = errors.New("page number must not be negative and page size must be positive")
)

const (
	bookListCacheKey    = "books:all"
	bookPageCachePrefix = "books:page"
	bookCacheTTL        = 10 * time.Minute
)

// sortColumns whitelists the request-level sort keys and maps them to
// column names. Only values from this map ever reach the query text.
var sortColumns = map[string]string{
	"title":        "title",
	"director":     "director",
	"publisher":    "publisher",
	"release_year": "release_year",
	"created_at":   "created_at",
}

// BookService handles catalog business logic. Both the full listing and
// the paginated listing use a cache-aside strategy; every catalog write
// invalidates all listing keys.
type BookService struct {
	repo        repository.IBookRepository
	fileService *FileService
	cacheClient ICacheClient
}

func NewBookService(repo repository.IBookRepository, fileService *FileService, cacheClient ICacheClient) *BookService {
	return &BookService{
		repo:        repo,
		fileService: fileService,
		cacheClient: cacheClient,
	}
}

// AddBook persists a new book and invalidates the listing caches.
func (s *BookService) AddBook(req model.BookRequest, poster string) (*model.Book, error) {
	book := &model.Book{
		Title:       req.Title,
		Director:    req.Director,
		Publisher:   req.Publisher,
		BookCast:    req.BookCast,
		ReleaseYear: req.ReleaseYear,
		Poster:      poster,
	}

	if err := s.repo.CreateBook(book); err != nil {
		return nil, err
	}

	s.invalidateListings(context.Background())
	return book, nil
}

func (s *BookService) GetBook(id int) (*model.Book, error) {
	book, err := s.repo.GetBookByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// GetAllBooks lists the whole catalog, serving from cache when possible.
func (s *BookService) GetAllBooks() ([]*model.Book, error) {
	ctx := context.Background()

	cached, err := s.cacheClient.Get(ctx, bookListCacheKey).Result()
	if err == nil {
		var books []*model.Book
		if err := json.Unmarshal([]byte(cached), &books); err == nil {
			return books, nil
		}
	}

	books, err := s.repo.GetAllBooks()
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(books); err == nil {
		s.cacheClient.Set(ctx, bookListCacheKey, data, bookCacheTTL)
	}

	return books, nil
}

// UpdateBook applies new metadata to an existing book. When newPoster is
// non-empty the previous poster file is removed from disk.
func (s *BookService) UpdateBook(id int, req model.BookRequest, newPoster string) (*model.Book, error) {
	book, err := s.GetBook(id)
	if err != nil {
		return nil, err
	}

	oldPoster := book.Poster
	book.Title = req.Title
	book.Director = req.Director
	book.Publisher = req.Publisher
	book.BookCast = req.BookCast
	book.ReleaseYear = req.ReleaseYear
	if newPoster != "" {
		book.Poster = newPoster
	}

	if err := s.repo.UpdateBook(book); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	if newPoster != "" && oldPoster != newPoster {
		s.fileService.Remove(oldPoster)
	}

	s.invalidateListings(context.Background())
	return book, nil
}

// DeleteBook removes the record and its poster file.
func (s *BookService) DeleteBook(id int) error {
	book, err := s.GetBook(id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteBook(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBookNotFound
		}
		return err
	}

	s.fileService.Remove(book.Poster)
	s.invalidateListings(context.Background())
	return nil
}

// GetBooksPage returns one page of the catalog, serving repeat reads of
// the same page/size/sort combination from cache. pageNumber is zero-based.
func (s *BookService) GetBooksPage(pageNumber, pageSize int, sortBy, sortDir string) (*model.BookPageResponse, error) {
	if pageNumber < 0 || pageSize <= 0 {
		return nil, ErrInvalidPaging
	}

	column, ok := sortColumns[sortBy]
	if !ok {
		return nil, ErrInvalidSortKey
	}
	if sortDir != "asc" && sortDir != "desc" {
		return nil, ErrInvalidSortKey
	}

	ctx := context.Background()
	cacheKey := bookPageCacheKey(pageNumber, pageSize, sortBy, sortDir)

	cached, err := s.cacheClient.Get(ctx, cacheKey).Result()
	if err == nil {
		var page model.BookPageResponse
		if err := json.Unmarshal([]byte(cached), &page); err == nil {
			return &page, nil
		}
	}

	total, err := s.repo.CountBooks()
	if err != nil {
		return nil, err
	}

	books, err := s.repo.GetBooksPage(pageSize, pageNumber*pageSize, column, sortDir)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	responses := make([]model.BookResponse, 0, len(books))
	for _, b := range books {
		responses = append(responses, ToBookResponse(b))
	}

	page := &model.BookPageResponse{
		Books:         responses,
		PageNumber:    pageNumber,
		PageSize:      pageSize,
		TotalElements: total,
		TotalPages:    totalPages,
		IsLastPage:    pageNumber >= totalPages-1,
	}

	if data, err := json.Marshal(page); err == nil {
		s.cacheClient.Set(ctx, cacheKey, data, bookCacheTTL)
	}

	return page, nil
}

func bookPageCacheKey(pageNumber, pageSize int, sortBy, sortDir string) string {
	return fmt.Sprintf("%s:%d:%d:%s:%s", bookPageCachePrefix, pageNumber, pageSize, sortBy, sortDir)
}

// invalidateListings drops every cached listing: the full list plus all
// page/size/sort variants.
func (s *BookService) invalidateListings(ctx context.Context) {
	keys := []string{bookListCacheKey}
	if pageKeys, err := s.cacheClient.Keys(ctx, bookPageCachePrefix+":*").Result(); err == nil {
		keys = append(keys, pageKeys...)
	}
	s.cacheClient.Del(ctx, keys...)
}

// ToBookResponse attaches the resolvable poster URL to a book record.
func ToBookResponse(book *model.Book) model.BookResponse {
	resp := model.BookResponse{Book: *book}
	if book.Poster != "" {
		resp.PosterURL = fmt.Sprintf("%s/posters/%s", config.AppConfig.Server.BaseURL, book.Poster)
	}
	return resp
}
