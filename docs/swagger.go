package docs

import "github.com/swaggo/swag"

// @title           RentalHub API
// @version         1.0
// @description     API for planning events with rentable decor: boards, board items and conflict-free stock reservations
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.email  support@rentalhub.local

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Users
// @tag.description Registration, login and profile

// @tag.name Catalog
// @tag.description Read-only product and category catalog

// @tag.name Boards
// @tag.description Event board management

// @tag.name Board Items
// @tag.description Item lines and their stock reservations

// @tag.name Availability
// @tag.description Stock availability checks for a date window

// Register swagger info
func SwaggerInfo() *swag.Spec {
	spec, _ := swag.GetSwagger(swag.Name).(*swag.Spec)
	return spec
}
