package router

import (
	"go-book-api/config"
	"go-book-api/handler"
	"go-book-api/service"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter(authHandler *handler.AuthHandler, bookHandler *handler.BookHandler, authService *service.AuthService) http.Handler {
	mux := http.NewServeMux()
	auth := handler.AuthMiddleware(authService)

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("POST /register", handler.ErrorHandlingMiddleware(authHandler.Register))
	mux.Handle("POST /authenticate", handler.ErrorHandlingMiddleware(authHandler.Authenticate))
	mux.Handle("POST /refresh", handler.ErrorHandlingMiddleware(authHandler.Refresh))

	mux.Handle("POST /books", auth(handler.ErrorHandlingMiddleware(bookHandler.AddBook)))
	mux.Handle("GET /books", auth(handler.ErrorHandlingMiddleware(bookHandler.ListBooks)))
	mux.Handle("GET /books/page", auth(handler.ErrorHandlingMiddleware(bookHandler.ListBooksPage)))
	mux.Handle("GET /books/{id}", auth(handler.ErrorHandlingMiddleware(bookHandler.GetBook)))
	mux.Handle("PUT /books/{id}", auth(handler.ErrorHandlingMiddleware(bookHandler.UpdateBook)))
	mux.Handle("DELETE /books/{id}", auth(handler.ErrorHandlingMiddleware(bookHandler.DeleteBook)))

	mux.Handle("GET /posters/", http.StripPrefix("/posters/",
		http.FileServer(http.Dir(config.AppConfig.Storage.PosterDir))))
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return mux
}
