// cmd/main.go
package main

import (
	"go-book-api/app"

	_ "go-book-api/docs"
)

// @title           Go-Book API
// @version         1.0
// @description     A book catalog API protected by token-based authentication.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
