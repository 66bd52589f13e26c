package docs

import "github.com/swaggo/swag"

// @title           Workhub API
// @version         1.0
// @description     Multi-tenant workspaces with kanban boards, tables and policy-based access control

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Users
// @tag.description User registration and login

// @tag.name Workspaces
// @tag.description Workspace and membership management

// @tag.name Boards
// @tag.description Kanban board operations

// @tag.name Access
// @tag.description Access policies, rules and permission checks

// Register swagger info
func SwaggerInfo() swag.Swagger {
	return swag.GetSwagger(swag.Name)
}
