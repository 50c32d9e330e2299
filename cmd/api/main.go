package main

import (
	"storefront/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Storefront API
// @version         1.0
// @description     Home-appliance storefront: catalog, checkout, payment webhooks, contact and newsletter.

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin token.

func main() {
	routes.Run()
}
