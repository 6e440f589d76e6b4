package api

import (
	"github.com/inkwell-cms/backend/auth"
	"github.com/inkwell-cms/backend/database"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	userHandler     userHandler
	postHandler     postHandler
	categoryHandler categoryHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, issuer auth.TokenIssuer) *routeHandlers {
	return &routeHandlers{
		userHandler:     newUserHandler(database.UserRepo(), issuer),
		postHandler:     newPostHandler(database.PostRepo()),
		categoryHandler: newCategoryHandler(database.CategoryRepo()),
	}
}
