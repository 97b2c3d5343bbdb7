package router

import (
	"fmt"
	"sort"

	"OperatorsClub/src/core/middleware"
	"OperatorsClub/src/core/notify"
	"OperatorsClub/src/modules/directory"
	"OperatorsClub/src/modules/forms"
	"OperatorsClub/src/modules/likes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func InitialiseAndSetupRoutes(app *fiber.App, db *gorm.DB, notifier notify.Notifier) {
	root := app.Group("/", logger.New())

	root.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	apiV1 := root.Group("/api/v1")
	setupAPIV1Routes(apiV1, db, notifier)

	routes := app.GetRoutes()
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Path < routes[j].Path
	})
	for _, route := range routes {
		fmt.Printf("%s\t%s\n", route.Method, route.Path)
	}
}

func setupAPIV1Routes(router fiber.Router, db *gorm.DB, notifier notify.Notifier) {
	directoryHandler := directory.NewHandler(db)
	likeHandler := likes.NewHandler(db)
	formHandler := forms.NewHandler(db, notifier)

	// Grouped API endpoints
	companyGroup := router.Group("/companies")
	repoGroup := router.Group("/repos")
	formGroup := router.Group("/forms")

	// Company directory routes; /liked must register before /:id
	companyGroup.Get("/", directoryHandler.ListCompanies)
	companyGroup.Get("/liked", middleware.Protected(), directoryHandler.LikedCompanies)
	companyGroup.Get("/:id", directoryHandler.GetCompany)
	companyGroup.Post("/:id/like", middleware.Protected(), likeHandler.LikeCompany)

	// Repo directory routes
	repoGroup.Get("/", directoryHandler.ListRepos)
	repoGroup.Get("/liked", middleware.Protected(), directoryHandler.LikedRepos)
	repoGroup.Get("/:id", directoryHandler.GetRepo)
	repoGroup.Post("/:id/like", middleware.Protected(), likeHandler.LikeRepo)

	// Form submission routes
	formGroup.Post("/contact", formHandler.SubmitContact)
	formGroup.Post("/apply", formHandler.SubmitApplication)
	formGroup.Post("/waitlist", formHandler.SubmitWaitlist)
	formGroup.Post("/register", formHandler.SubmitRegistration)
}
