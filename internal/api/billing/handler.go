package billing

import (
	"net/http"

	"companion-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

// CreateCheckoutSession handles POST /create-checkout-session.
// Payment processing is not implemented yet; the pricing page calls this
// after a paid plan is picked and renders the returned message. The route
// exists so the upgrade path is already wired when a payment provider lands.
func CreateCheckoutSession(c *gin.Context) {
	profile, ok := middleware.ProfileFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusNotImplemented, gin.H{
		"error":        "Payment processing is not available yet",
		"current_plan": profile.CurrentPlan,
	})
}
