package routes

import (
	"github.com/dokoth/harambee-api/internal/handlers"
	"github.com/dokoth/harambee-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)

	protected := api.Group("/", middleware.Protected())

	groups := protected.Group("/groups")
	groups.Post("/", handlers.CreateGroup)
	groups.Get("/:id", handlers.GetGroup)
	groups.Get("/:id/members", handlers.GetMembers)
	groups.Post("/:id/members", handlers.AddMember)

	// Pledge ledger
	groups.Get("/:id/pledges", handlers.GetGroupPledges)
	groups.Post("/:id/pledges", handlers.CreatePledge)
	groups.Delete("/:id/pledges/:pledgeId", handlers.CancelPledge)
	groups.Post("/:id/pledges/:pledgeId/paid", handlers.MarkPledgeAsPaid)
	groups.Post("/:id/contributions", handlers.AddManualContribution)

	// Recurring pledges
	groups.Get("/:id/recurring-pledges", handlers.GetRecurringPledges)
	groups.Post("/:id/recurring-pledges", handlers.CreateRecurringPledge)
	groups.Put("/:id/recurring-pledges/:pledgeId", handlers.UpdateRecurringPledge)
	groups.Put("/:id/recurring-pledges/:pledgeId/pause", handlers.PauseRecurringPledge)
	groups.Put("/:id/recurring-pledges/:pledgeId/resume", handlers.ResumeRecurringPledge)
	groups.Put("/:id/recurring-pledges/:pledgeId/cancel", handlers.CancelRecurringPledge)

	// Activity feed & analytics
	groups.Get("/:id/activity", handlers.GetGroupActivity)
	groups.Get("/:id/analytics", handlers.GetGroupAnalytics)
	groups.Post("/:id/analytics/snapshot", handlers.CreateAnalyticsSnapshot)
}
