package routes

import (
	"html/template"
	"time"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/saeid-a/KickoffCoachWeb/internal/backend"
	"github.com/saeid-a/KickoffCoachWeb/internal/config"
	"github.com/saeid-a/KickoffCoachWeb/internal/handlers"
	"github.com/saeid-a/KickoffCoachWeb/internal/middleware"
	"github.com/saeid-a/KickoffCoachWeb/internal/services"
	"github.com/saeid-a/KickoffCoachWeb/internal/session"
	availabilityws "github.com/saeid-a/KickoffCoachWeb/internal/websocket"
)

type Dependencies struct {
	Backend  *backend.Client
	Sessions *session.Manager
	Hub      *availabilityws.Hub
	About    template.HTML
	Logger   zerolog.Logger
}

func RegisterRoutes(app *fiber.App, cfg *config.Config, deps Dependencies) {
	bookingService := services.NewBookingService(deps.Backend, deps.Hub, cfg.Timezone)
	accountService := services.NewAccountService(deps.Backend)
	childrenService := services.NewChildrenService(deps.Backend)
	reviewService := services.NewReviewService(deps.Backend, cfg.Timezone)

	bookingHandler := handlers.NewBookingHandler(bookingService, childrenService)
	authHandler := handlers.NewAuthHandler(accountService, deps.Sessions, cfg.CallbackURL(), deps.Logger)
	profileHandler := handlers.NewProfileHandler(accountService)
	accountHandler := handlers.NewAccountHandler(accountService, childrenService, reviewService, bookingService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	aboutHandler := handlers.NewAboutHandler(deps.About)
	availabilityHandler := handlers.NewAvailabilityHandler(deps.Hub)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
	app.Use("/ws/availability", availabilityHandler.Upgrade)
	app.Get("/ws/availability", websocket.New(availabilityHandler.HandleWebSocket))

	app.Use(middleware.Sessions(deps.Sessions, cfg.SecureCookies, deps.Logger))

	requireLogin := middleware.RequireLogin()
	requireProfile := middleware.RequireCompleteProfile()

	app.Get("/", bookingHandler.Index)
	app.Get("/book", bookingHandler.Index)
	app.Get("/book/:date", bookingHandler.Calendar)
	app.Get("/book/:date/:sessionID", requireLogin, requireProfile, bookingHandler.FinishBookingForm)
	app.Post("/book/:date/:sessionID", requireLogin, requireProfile, bookingHandler.CreateBooking)
	app.Get("/api/quote", bookingHandler.Quote)

	app.Get("/reviews", reviewHandler.List)
	app.Post("/reviews", requireLogin, requireProfile, reviewHandler.Create)
	app.Get("/about", aboutHandler.Show)

	app.Get("/login", authHandler.LoginPrompt)
	app.Get("/login/start", authHandler.StartLogin)
	app.Get("/auth/callback", authHandler.Callback)
	app.Get("/auth-success", authHandler.Callback)
	app.Post("/logout", authHandler.Logout)

	app.Get("/complete-profile", requireLogin, profileHandler.CompleteProfileForm)
	app.Post("/complete-profile", requireLogin, profileHandler.CompleteProfile)

	account := app.Group("/account", requireLogin)
	account.Get("", func(c *fiber.Ctx) error {
		return c.Redirect("/account/my-account", fiber.StatusSeeOther)
	})
	account.Get("/my-account", accountHandler.MyAccount)
	account.Post("/phone", accountHandler.UpdatePhone)
	account.Post("/children", accountHandler.AddChild)
	account.Post("/children/:id", accountHandler.UpdateChild)
	account.Post("/children/:id/delete", accountHandler.DeleteChild)
	account.Get("/my-reviews", accountHandler.MyReviews)
	account.Post("/reviews/:id", accountHandler.UpdateReview)
	account.Post("/reviews/:id/delete", accountHandler.DeleteReview)
	account.Get("/my-sessions", accountHandler.MySessions)
	account.Get("/my-sessions/:id/edit", accountHandler.EditBookingForm)
	account.Post("/my-sessions/:id", accountHandler.UpdateBooking)
	account.Post("/my-sessions/:id/delete", accountHandler.DeleteBooking)

	app.Use(handlers.NotFound)
}
