package web

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures the application routes. Group endpoints use a
// wildcard segment so slash paths like tech/frontend address nested
// groups directly.
func SetupRoutes(app *fiber.App, handlers *Handlers) {
	api := app.Group("/api")

	api.Get("/groups", handlers.ListGroups)
	api.Get("/groups/+/posts", handlers.ListGroupPosts)
	api.Post("/groups/+/sync", handlers.SyncGroup)
	api.Get("/groups/+", handlers.GetGroup)

	api.Post("/posts", handlers.CreatePost)
	api.Get("/posts/:id", handlers.GetPost)
	api.Put("/posts/:id", handlers.UpdatePost)
	api.Delete("/posts/:id", handlers.DeletePost)

	api.Post("/posts/:id/noices", handlers.GiveNoice)
	api.Delete("/posts/:id/noices", handlers.RemoveNoice)
	api.Get("/posts/:id/noices/count", handlers.NoiceCount)
	api.Post("/posts/:id/comments", handlers.CommentPost)
	api.Post("/posts/:id/review", handlers.ReviewPost)

	api.Post("/users", handlers.RegisterUser)
	api.Get("/users", handlers.ListUsers)
	api.Get("/users/:id", handlers.GetUser)
	api.Put("/users/:id", handlers.UpdateProfile)
}
