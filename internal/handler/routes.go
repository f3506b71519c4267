package handler

import (
	"ugc-service/internal/middleware"
	"ugc-service/internal/model"

	"github.com/labstack/echo/v4"
)

// Handlers groups every resource handler mounted under /api
type Handlers struct {
	Auth          *AuthHandler
	Dashboard     *DashboardHandler
	Campaigns     *CampaignHandler
	Clients       *ClientHandler
	Creators      *CreatorHandler
	Media         *MediaHandler
	Messages      *MessageHandler
	Email         *EmailHandler
	Drive         *DriveHandler
	Organizations *OrganizationHandler
	Users         *UserHandler
}

// RegisterRoutes mounts the public routes and the /api tree on e
func RegisterRoutes(e *echo.Echo, h Handlers, authn middleware.Authenticator, members middleware.MembershipChecker) {
	// Public routes - no authentication required
	e.GET("/health", HealthCheck)
	e.GET("/metrics", MetricsHandler)

	requireAuth := middleware.Auth(authn)
	requireOrg := middleware.RequireOrganization(members)
	staffOnly := middleware.RequireRoles(model.RoleAdmin, model.RoleStaff)

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/sign-up", h.Auth.SignUp)
	auth.POST("/sign-in", h.Auth.SignIn)
	auth.POST("/sign-out", h.Auth.SignOut)
	auth.GET("/me", h.Auth.Me, requireAuth)
	auth.POST("/me", h.Auth.Me, requireAuth)

	// The dashboard resolves its organization itself so the header stays optional
	dashboard := api.Group("/dashboard", requireAuth)
	dashboard.GET("/stats", h.Dashboard.Stats)
	dashboard.GET("/activities", h.Dashboard.Activities)

	campaigns := api.Group("/campaigns", requireAuth, requireOrg)
	campaigns.GET("", h.Campaigns.List)
	campaigns.POST("", h.Campaigns.Create)
	campaigns.GET("/:id", h.Campaigns.Get)
	campaigns.PATCH("/:id", h.Campaigns.Update)
	campaigns.DELETE("/:id", h.Campaigns.Delete)
	campaigns.POST("/:id/assign", h.Campaigns.Assign)
	campaigns.PATCH("/:id/orders/:orderId", h.Campaigns.UpdateOrder)
	campaigns.DELETE("/:id/orders/:orderId", h.Campaigns.DeleteOrder)

	clients := api.Group("/clients", requireAuth, requireOrg, staffOnly)
	clients.GET("", h.Clients.List)
	clients.POST("", h.Clients.Create)
	clients.GET("/:id", h.Clients.Get)
	clients.PATCH("/:id", h.Clients.Update)
	clients.DELETE("/:id", h.Clients.Delete)
	clients.GET("/:id/creators", h.Clients.Creators)

	// Creators are global users, so no organization gate
	creators := api.Group("/creators", requireAuth)
	creators.GET("", h.Creators.List)
	creators.POST("", h.Creators.Create, staffOnly)
	creators.GET("/:id", h.Creators.Get)
	creators.PATCH("/:id", h.Creators.Update)
	creators.DELETE("/:id", h.Creators.Delete, staffOnly)
	creators.GET("/:id/availability", h.Creators.Availability)
	creators.GET("/:id/stats", h.Creators.Stats)

	media := api.Group("/media", requireAuth, requireOrg)
	media.GET("", h.Media.List)
	media.POST("/upload", h.Media.Upload)
	media.GET("/campaign/:campaignId", h.Media.ListByCampaign)
	media.GET("/:id", h.Media.Get)
	media.PATCH("/:id", h.Media.Update)
	media.DELETE("/:id", h.Media.Delete)

	messages := api.Group("/messages", requireAuth, requireOrg)
	messages.GET("/campaigns", h.Messages.Campaigns)
	messages.GET("/campaign/:campaignId", h.Messages.ListByCampaign)
	messages.POST("", h.Messages.Create)
	messages.PATCH("/:id", h.Messages.Update)
	messages.DELETE("/:id", h.Messages.Delete)

	// Integration admin checks live in the services
	email := api.Group("/email", requireAuth, requireOrg)
	email.GET("/settings", h.Email.Settings)
	email.POST("/settings", h.Email.SaveSettings)
	email.GET("/campaign/:campaignId/threads", h.Email.Threads)
	email.GET("/campaign/:campaignId/template", h.Email.Template)
	email.POST("/send", h.Email.Send)
	email.POST("/sync", h.Email.Sync)

	drive := api.Group("/drive", requireAuth, requireOrg)
	drive.GET("/settings", h.Drive.Settings)
	drive.POST("/settings", h.Drive.SaveSettings)
	drive.GET("/connect", h.Drive.Connect)
	drive.GET("/files", h.Drive.Files)
	drive.POST("/folders", h.Drive.CreateFolder)
	drive.POST("/sync/campaign/:campaignId", h.Drive.SyncCampaign)
	drive.GET("/campaign/:campaignId/structure", h.Drive.Structure)
	drive.POST("/share", h.Drive.Share)

	organizations := api.Group("/organizations", requireAuth)
	organizations.GET("", h.Organizations.List)
	organizations.POST("", h.Organizations.Create)
	organizations.GET("/current", h.Organizations.Current)
	organizations.PATCH("/:id", h.Organizations.Update)
	organizations.GET("/:id/members", h.Organizations.Members)
	organizations.POST("/:id/invite", h.Organizations.Invite)

	users := api.Group("/users", requireAuth)
	users.PATCH("/profile", h.Users.UpdateProfile)
	users.POST("/switch-role", h.Users.SwitchRole)
}
