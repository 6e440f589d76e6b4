package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires every endpoint. Registration and login are open;
// everything else requires an authenticated identity. Ownership checks for
// post mutation live in the post handler, not here.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/register", handlers.userHandler.register())
		r.Post("/login", handlers.userHandler.login())

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			// User management endpoints
			r.Get("/me", handlers.userHandler.profile())
			r.Get("/users", handlers.userHandler.getAllUsers())
			r.Get("/users/{userID}", handlers.userHandler.getUser())
			r.Put("/users/{userID}", handlers.userHandler.updateUser())
			r.Delete("/users/{userID}", handlers.userHandler.deleteUser())

			// Post endpoints
			r.Get("/posts", handlers.postHandler.getAllPosts())
			r.Post("/posts", handlers.postHandler.createPost())
			r.Get("/posts/pages", handlers.postHandler.getPagedPosts())
			r.Get("/posts/category/{categoryID}", handlers.postHandler.getPostsByCategory())
			r.Get("/posts/author/{authorID}", handlers.postHandler.getPostsByAuthor())
			r.Get("/posts/search", handlers.postHandler.searchPosts())
			r.Get("/posts/{postID}", handlers.postHandler.getPost())
			r.Put("/posts/{postID}", handlers.postHandler.updatePost())
			r.Delete("/posts/{postID}", handlers.postHandler.deletePost())

			// Category endpoints
			r.Get("/categories", handlers.categoryHandler.getAllCategories())
			r.Post("/categories", handlers.categoryHandler.createCategory())
			r.Get("/categories/{categoryID}", handlers.categoryHandler.getCategory())
			r.Delete("/categories/{categoryID}", handlers.categoryHandler.deleteCategory())
		})
	})
}
