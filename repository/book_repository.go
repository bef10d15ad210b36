// file: repository/book_repository.go

package repository

import (
	"database/sql"
	"fmt"
	"go-book-api/logger"
	"go-book-api/model"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// IBookRepository defines the contract for book database operations.
type IBookRepository interface {
	CreateBook(book *model.Book) error
	GetBookByID(id int) (*model.Book, error)
	GetAllBooks() ([]*model.Book, error)
	UpdateBook(book *model.Book) error
	DeleteBook(id int) error
	GetBooksPage(limit, offset int, sortColumn, sortDir string) ([]*model.Book, error)
	CountBooks() (int64, error)
}

// BookRepository implements IBookRepository.
type BookRepository struct {
	DB *sql.DB
}

func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{DB: db}
}

func (r *BookRepository) CreateBook(book *model.Book) error {
	log := logger.Log.WithFields(logrus.Fields{
		"title":     book.Title,
		"publisher": book.Publisher,
	})
	log.Info("Executing query to create a new book")

	query := `INSERT INTO books (title, director, publisher, book_cast, release_year, poster)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := r.DB.QueryRow(query, book.Title, book.Director, book.Publisher,
		pq.Array(book.BookCast), book.ReleaseYear, book.Poster).Scan(&book.ID, &book.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create book query")
		return err
	}
	return nil
}

func (r *BookRepository) GetBookByID(id int) (*model.Book, error) {
	book := &model.Book{}
	query := `SELECT id, title, director, publisher, book_cast, release_year, poster, created_at
	          FROM books WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&book.ID, &book.Title, &book.Director, &book.Publisher,
		pq.Array(&book.BookCast), &book.ReleaseYear, &book.Poster, &book.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithField("book_id", id).WithError(err).Error("Failed to execute get book query")
		}
		return nil, err
	}
	return book, nil
}

func (r *BookRepository) GetAllBooks() ([]*model.Book, error) {
	query := `SELECT id, title, director, publisher, book_cast, release_year, poster, created_at
	          FROM books ORDER BY id`
	rows, err := r.DB.Query(query)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute query for all books")
		return nil, err
	}
	defer rows.Close()

	return scanBooks(rows)
}

func (r *BookRepository) UpdateBook(book *model.Book) error {
	log := logger.Log.WithField("book_id", book.ID)
	log.Info("Executing query to update book")

	query := `UPDATE books SET title = $1, director = $2, publisher = $3, book_cast = $4,
	          release_year = $5, poster = $6 WHERE id = $7`
	result, err := r.DB.Exec(query, book.Title, book.Director, book.Publisher,
		pq.Array(book.BookCast), book.ReleaseYear, book.Poster, book.ID)
	if err != nil {
		log.WithError(err).Error("Failed to execute update book query")
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *BookRepository) DeleteBook(id int) error {
	log := logger.Log.WithField("book_id", id)
	log.Info("Executing query to delete book")

	result, err := r.DB.Exec(`DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete book query")
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetBooksPage retrieves one page of books. sortColumn and sortDir must
// already be validated against the service-level whitelist; they are
// interpolated into the query text.
func (r *BookRepository) GetBooksPage(limit, offset int, sortColumn, sortDir string) ([]*model.Book, error) {
	query := fmt.Sprintf(`SELECT id, title, director, publisher, book_cast, release_year, poster, created_at
	          FROM books ORDER BY %s %s LIMIT $1 OFFSET $2`, sortColumn, sortDir)
	rows, err := r.DB.Query(query, limit, offset)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute query for books page")
		return nil, err
	}
	defer rows.Close()

	return scanBooks(rows)
}

func (r *BookRepository) CountBooks() (int64, error) {
	var count int64
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		logger.Log.WithError(err).Error("Failed to execute count books query")
		return 0, err
	}
	return count, nil
}

func scanBooks(rows *sql.Rows) ([]*model.Book, error) {
	var books []*model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Director, &b.Publisher,
			pq.Array(&b.BookCast), &b.ReleaseYear, &b.Poster, &b.CreatedAt); err != nil {
			logger.Log.WithError(err).Error("Failed to scan book row")
			return nil, err
		}
		books = append(books, &b)
	}
	return books, rows.Err()
}
