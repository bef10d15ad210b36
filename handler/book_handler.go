// file: handler/book_handler.go

package handler

import (
	"encoding/json"
	"errors"
	"go-book-api/common"
	"go-book-api/model"
	"go-book-api/service"
	"net/http"
	"strconv"
)

// maxPosterSize caps multipart memory for poster uploads.
const maxPosterSize = 10 << 20

// BookHandler holds dependencies for the catalog endpoints.
type BookHandler struct {
	service     *service.BookService
	fileService *service.FileService
}

func NewBookHandler(s *service.BookService, fs *service.FileService) *BookHandler {
	return &BookHandler{service: s, fileService: fs}
}

// AddBook godoc
// @Summary      Add a new book
// @Description  Creates a book from a JSON metadata part and a poster file part.
// @Tags         books
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        book   formData  string  true  "Book metadata as JSON"
// @Param        file   formData  file    true  "Poster image"
// @Success      201  {object}  model.BookResponse
// @Failure      400  {object}  common.AppError "Invalid metadata or empty file"
// @Failure      401  {object}  common.AppError "Unauthorized"
// @Router       /books [post]
func (h *BookHandler) AddBook(w http.ResponseWriter, r *http.Request) *common.AppError {
	req, appErr := decodeBookPart(r)
	if appErr != nil {
		return appErr
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "File cannot be empty, please send a file", err)
	}
	defer file.Close()
	if header.Size == 0 {
		return common.NewAppError(http.StatusBadRequest, "File cannot be empty, please send a file", nil)
	}

	poster, err := h.fileService.Save(file, header)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not store poster file", err)
	}

	book, err := h.service.AddBook(*req, poster)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create book", err)
	}

	writeJSON(w, http.StatusCreated, service.ToBookResponse(book))
	return nil
}

// GetBook godoc
// @Summary      Get a book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  model.BookResponse
// @Failure      404  {object}  common.AppError "Book not found"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	book, err := h.service.GetBook(id)
	if err != nil {
		return mapBookError(err, "Could not fetch book")
	}

	writeJSON(w, http.StatusOK, service.ToBookResponse(book))
	return nil
}

// ListBooks godoc
// @Summary      List all books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   model.BookResponse
// @Router       /books [get]
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) *common.AppError {
	books, err := h.service.GetAllBooks()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not list books", err)
	}

	responses := make([]model.BookResponse, 0, len(books))
	for _, b := range books {
		responses = append(responses, service.ToBookResponse(b))
	}

	writeJSON(w, http.StatusOK, responses)
	return nil
}

// ListBooksPage godoc
// @Summary      List books with pagination and sorting
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        pageNumber  query     int     false  "Zero-based page number"  default(0)
// @Param        pageSize    query     int     false  "Page size"               default(10)
// @Param        sortBy      query     string  false  "Sort key"                default(created_at)
// @Param        sortDir     query     string  false  "asc or desc"             default(asc)
// @Success      200  {object}  model.BookPageResponse
// @Failure      400  {object}  common.AppError "Invalid paging or sort parameters"
// @Router       /books/page [get]
func (h *BookHandler) ListBooksPage(w http.ResponseWriter, r *http.Request) *common.AppError {
	pageNumber := queryInt(r, "pageNumber", 0)
	pageSize := queryInt(r, "pageSize", 10)
	sortBy := queryString(r, "sortBy", "created_at")
	sortDir := queryString(r, "sortDir", "asc")

	page, err := h.service.GetBooksPage(pageNumber, pageSize, sortBy, sortDir)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSortKey) || errors.Is(err, service.ErrInvalidPaging) {
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not list books", err)
	}

	writeJSON(w, http.StatusOK, page)
	return nil
}

// UpdateBook godoc
// @Summary      Update a book
// @Description  Replaces book metadata; an optional new poster file replaces the stored one.
// @Tags         books
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      int     true   "Book ID"
// @Param        book   formData  string  true   "Book metadata as JSON"
// @Param        file   formData  file    false  "New poster image"
// @Success      200  {object}  model.BookResponse
// @Failure      404  {object}  common.AppError "Book not found"
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	req, appErr := decodeBookPart(r)
	if appErr != nil {
		return appErr
	}

	// An absent or empty file part means the stored poster is kept.
	var poster string
	if file, header, err := r.FormFile("file"); err == nil && header.Size > 0 {
		defer file.Close()
		poster, err = h.fileService.Save(file, header)
		if err != nil {
			return common.NewAppError(http.StatusInternalServerError, "Could not store poster file", err)
		}
	}

	book, err := h.service.UpdateBook(id, *req, poster)
	if err != nil {
		return mapBookError(err, "Could not update book")
	}

	writeJSON(w, http.StatusOK, service.ToBookResponse(book))
	return nil
}

// DeleteBook godoc
// @Summary      Delete a book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  common.AppError "Book not found"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	if err := h.service.DeleteBook(id); err != nil {
		return mapBookError(err, "Could not delete book")
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Book deleted successfully"})
	return nil
}

// decodeBookPart parses and validates the JSON metadata part of a
// multipart book request.
func decodeBookPart(r *http.Request) (*model.BookRequest, *common.AppError) {
	if err := r.ParseMultipartForm(maxPosterSize); err != nil {
		return nil, common.NewAppError(http.StatusBadRequest, "Invalid multipart request", err)
	}

	raw := r.FormValue("book")
	if raw == "" {
		return nil, common.NewAppError(http.StatusBadRequest, "Missing book metadata part", nil)
	}

	var req model.BookRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return nil, common.NewAppError(http.StatusBadRequest, "Invalid book metadata", err)
	}
	if appErr := common.ValidateStruct(&req); appErr != nil {
		return nil, appErr
	}
	return &req, nil
}

func mapBookError(err error, fallback string) *common.AppError {
	if errors.Is(err, service.ErrBookNotFound) {
		return common.NewAppError(http.StatusNotFound, err.Error(), err)
	}
	return common.NewAppError(http.StatusInternalServerError, fallback, err)
}

func pathID(r *http.Request) (int, *common.AppError) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, common.NewAppError(http.StatusBadRequest, "Invalid book ID", err)
	}
	return id, nil
}

func queryInt(r *http.Request, key string, fallback int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func queryString(r *http.Request, key, fallback string) string {
	if raw := r.URL.Query().Get(key); raw != "" {
		return raw
	}
	return fallback
}
