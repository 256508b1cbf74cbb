package router

import (
	"github.com/brunodev185/pedidos-cine/controllers"
	"github.com/brunodev185/pedidos-cine/middlewares"
	"github.com/brunodev185/pedidos-cine/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Controllers
	userCtrl := controllers.NewUserController(db)
	requestCtrl := controllers.NewRequestController(db)
	reportCtrl := controllers.NewReportController(db)
	notificationCtrl := controllers.NewNotificationController(db)
	userRequestCtrl := controllers.NewUserRequestController(db)
	tokenCtrl := controllers.NewTokenController(db)
	deliveryCtrl := controllers.NewDeliveryController(services.GetFirebaseMessenger())
	catalogCtrl := controllers.NewCatalogController(
		services.NewCatalogService(services.NewCatalogCache(services.DefaultCatalogTTL)))
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Pedido pode ser anônimo; leitura pública do catálogo
	r.POST("/requests", requestCtrl.SubmitRequest)
	r.POST("/reports", reportCtrl.CreateReport)
	r.GET("/catalog", catalogCtrl.GetCatalog)
	r.POST("/api/xtream-auth", catalogCtrl.XtreamAuth)

	// Token FCM antes do login (slot default)
	r.POST("/fcm-token/default", tokenCtrl.SaveDefaultToken)

	// Boundary de entrega de push
	r.POST("/api/send-notification", deliveryCtrl.SendNotification)
	r.GET("/api/send-notification", deliveryCtrl.Ping)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/profile", userCtrl.GetProfile)

		auth.GET("/me/requests", userRequestCtrl.GetMyRequests)
		auth.DELETE("/me/requests/:request_id", userRequestCtrl.DeleteMyRequest)

		auth.GET("/me/notifications", notificationCtrl.GetMyNotifications)
		auth.PATCH("/notifications/:notif_id/read", notificationCtrl.MarkAsRead)
		auth.DELETE("/me/notifications", notificationCtrl.ClearAll)

		auth.POST("/fcm-token", tokenCtrl.SaveToken)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.AdminOnly())
	{
		admin.GET("/users", userCtrl.GetAllUsers)

		admin.GET("/requests", requestCtrl.GetAllRequests)
		admin.GET("/requests/:request_id", requestCtrl.GetRequestByID)
		admin.POST("/requests/:request_id/added", requestCtrl.MarkAdded)
		admin.POST("/requests/:request_id/communicated", requestCtrl.MarkCommunicated)
		admin.POST("/requests/:request_id/pending", requestCtrl.ResetToPending)
		admin.PATCH("/requests/:request_id/observation", requestCtrl.UpdateObservation)
		admin.DELETE("/requests/:request_id", requestCtrl.DeleteRequest)

		admin.GET("/reports", reportCtrl.GetAllReports)
		admin.PATCH("/reports/:report_id", reportCtrl.UpdateReportStatus)
		admin.DELETE("/reports/:report_id", reportCtrl.DeleteReport)

		admin.GET("/notifications", notificationCtrl.GetAllNotifications)

		admin.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
		admin.POST("/catalog/refresh", catalogCtrl.RefreshCatalog)
	}

	// WebSocket com auth pela query string
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("", controllers.WSHandler)
	}

	return r
}
