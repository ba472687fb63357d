package v1

import (
	"github.com/bensternthal/basket/internal/domain/news"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the news API routes.
func SetupRoutes(r *gin.Engine,
	subscriptionService news.SubscriptionService,
	newsletterService news.NewsletterService,
	recoveryService news.RecoveryService,
	apiUsers news.APIUserRepository,
	superToken string) {

	group := r.Group(BasePath) // lookup in version file

	// Subscription routes
	subscriptionHandler := NewSubscriptionHandler(subscriptionService, apiUsers)
	group.POST("/subscribe/", subscriptionHandler.Subscribe)
	group.POST("/subscribe_sms/", subscriptionHandler.SubscribeSMS)
	group.POST("/unsubscribe/:token/", subscriptionHandler.Unsubscribe)
	group.POST("/confirm/:token/", subscriptionHandler.Confirm)

	// User record routes
	userHandler := NewUserHandler(subscriptionService, recoveryService, apiUsers, superToken)
	group.GET("/user/:token/", userHandler.GetUser)
	group.POST("/user/:token/", userHandler.PostUser)
	group.GET("/debug-user/", userHandler.DebugUser)
	group.GET("/lookup-user/", userHandler.LookupUser)
	group.POST("/recover/", userHandler.Recover)
	group.POST("/custom_unsub_reason/", userHandler.UnsubReason)
	group.POST("/custom_update_student_ambassadors/:token/", userHandler.CustomUpdate)
	group.POST("/custom_update_phonebook/:token/", userHandler.CustomUpdate)

	// Newsletter catalog routes
	newsletterHandler := NewNewsletterHandler(newsletterService)
	group.GET("/newsletters/", newsletterHandler.Newsletters)
	group.GET("/", newsletterHandler.Index)
}
