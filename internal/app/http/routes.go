package routes

import (
	authapi "companion-app/internal/api/auth"
	"companion-app/internal/api/billing"
	plansapi "companion-app/internal/api/plans"
	trialapi "companion-app/internal/api/trial"
	usersapi "companion-app/internal/api/users"
	"companion-app/internal/app/http/middleware"
	"companion-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything RegisterRoutes wires up. Built in main from
// the shared db handle; nothing here reaches for globals.
type Handlers struct {
	Auth  *authapi.Handler
	Trial *trialapi.Handler
	Plans *plansapi.Handler
	Users *usersapi.Handler

	Profiles users.ProfileStore
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	// wrong-method calls on existing paths must answer 405, not 404
	r.HandleMethodNotAllowed = true

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Anonymous trial endpoints. No auth on purpose: they run from the
	// marketing site before any account exists.
	r.GET("/trial-status", h.Trial.GetStatus)
	r.POST("/update-trial-usage", h.Trial.UpdateUsage)

	// ✅ Input sanitization on public form-style routes only
	public := r.Group("/")
	public.Use(middleware.SanitizeInputMiddleware())

	public.POST("/register", h.Auth.Register)
	public.POST("/login", h.Auth.Login)
	public.POST("/resend-verification", h.Auth.ResendVerification)
	public.POST("/request-password-reset", h.Auth.RequestPasswordReset)
	public.POST("/reset-password", h.Auth.ResetPassword)

	r.GET("/verify", h.Auth.VerifyEmail)
	r.GET("/auth/google", h.Auth.GoogleStart)
	r.GET("/auth/google/callback", h.Auth.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.POST("/initialize-trial-plan", h.Plans.InitializeTrialPlan)
	auth.POST("/change-password", h.Auth.ChangePassword)

	// Routes that need the profile row loaded
	profiled := auth.Group("/")
	profiled.Use(middleware.RequireProfile(h.Profiles))
	profiled.GET("/me", h.Users.GetCurrentUser)
	profiled.POST("/create-checkout-session", billing.CreateCheckoutSession)
}
