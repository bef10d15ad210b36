// handler/book_handler_test.go
package handler_test

import (
	"bytes"
	"go-book-api/handler"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const validBookJSON = `{"title":"Dune","director":"Herbert","publisher":"Ace","release_year":1965}`

func newBookUpload(t *testing.T, bookJSON string, withFile bool, fileContent []byte) *http.Request {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	if bookJSON != "" {
		assert.NoError(t, writer.WriteField("book", bookJSON))
	}
	if withFile {
		part, err := writer.CreateFormFile("file", "poster.png")
		assert.NoError(t, err)
		_, err = part.Write(fileContent)
		assert.NoError(t, err)
	}
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/books", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestBookHandler_AddBook_RejectsBadUploads(t *testing.T) {
	h := handler.NewBookHandler(nil, nil)

	t.Run("zero-byte file part is rejected", func(t *testing.T) {
		req := newBookUpload(t, validBookJSON, true, nil)

		appErr := h.AddBook(httptest.NewRecorder(), req)

		assert.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Equal(t, "File cannot be empty, please send a file", appErr.Message)
	})

	t.Run("missing file part is rejected", func(t *testing.T) {
		req := newBookUpload(t, validBookJSON, false, nil)

		appErr := h.AddBook(httptest.NewRecorder(), req)

		assert.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
	})

	t.Run("missing metadata part is rejected", func(t *testing.T) {
		req := newBookUpload(t, "", true, []byte("png bytes"))

		appErr := h.AddBook(httptest.NewRecorder(), req)

		assert.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Equal(t, "Missing book metadata part", appErr.Message)
	})
}
