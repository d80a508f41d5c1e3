package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ibam-church/membership/controllers"
	"github.com/ibam-church/membership/initializers"
	"github.com/ibam-church/membership/middlewares"
	"github.com/ibam-church/membership/services"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectDB()
	services.InitPushNotificationService()
	services.InitEmailService()
	services.InitDirectoryCache()
}

func main() {
	if email := services.GetEmailService(); email != nil {
		schedule := initializers.GetEnv("BIRTHDAY_DIGEST_CRON", services.DefaultBirthdayDigestSchedule)
		job := services.NewBirthdayDigestJob(services.GetDirectoryCache(), email)
		scheduler, err := services.StartScheduler(schedule, job)
		if err != nil {
			log.Fatal(err)
		}
		defer scheduler.Stop()
	} else {
		log.Println("Email service not configured, birthday digest disabled")
	}

	router := gin.Default()
	router.HandleMethodNotAllowed = true
	router.NoMethod(controllers.MethodNotAllowed)
	router.Use(middlewares.CORS(initializers.GetEnv("CORS_ALLOW_ORIGIN", "*")))

	router.POST("/public-register", middlewares.RateLimitMiddleware("register", 1, 5, middlewares.ClientIP), controllers.PublicRegister)
	router.POST("/register", middlewares.RateLimitMiddleware("register", 1, 5, middlewares.ClientIP), controllers.Register)

	public := router.Group("/public")
	public.Use(middlewares.RateLimitMiddleware("public", 10, 20, middlewares.ClientIP))
	{
		public.GET("/home", controllers.GetPublicHome)
		public.GET("/ministries", controllers.GetPublicMinistries)
		public.GET("/cells", controllers.GetPublicCells)
		public.GET("/events", controllers.GetPublicEvents)
	}

	router.POST("/admin/login", middlewares.RateLimitMiddleware("login", 0.2, 5, middlewares.ClientIP), controllers.AdminLogin)

	admin := router.Group("/admin")
	admin.Use(middlewares.CheckAuth)
	admin.Use(middlewares.RequireAdmin)
	{
		admin.GET("/me", controllers.GetAdminProfile)
		admin.POST("/logout", controllers.AdminLogout)
		admin.POST("/push-subscriptions", controllers.SubscribeStaffDevice)

		// directory
		admin.POST("/refresh", controllers.RefreshDirectory)
		admin.GET("/overview", controllers.GetOverview)
		admin.GET("/people", controllers.GetPeople)
		admin.GET("/people/:person_id", controllers.GetPerson)
		admin.GET("/people/:person_id/outreach", controllers.GetOutreach)
		admin.GET("/queues/:queue", controllers.GetQueue)
		admin.GET("/groups/:kind/:group_id", controllers.GetGroupMembers)
		admin.GET("/birthdays", controllers.GetBirthdays)
		admin.GET("/exports/:export", controllers.ExportDirectory)

		// config
		admin.POST("/ministries", controllers.CreateMinistry)
		admin.PUT("/ministries/:id", controllers.UpdateMinistry)
		admin.DELETE("/ministries/:id", controllers.DeleteMinistry)

		admin.POST("/cells", controllers.CreateCell)
		admin.PUT("/cells/:id", controllers.UpdateCell)
		admin.DELETE("/cells/:id", controllers.DeleteCell)

		admin.POST("/events", controllers.CreateEvent)
		admin.PUT("/events/:id", controllers.UpdateEvent)
		admin.DELETE("/events/:id", controllers.DeleteEvent)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if err := router.Run(); err != nil {
		log.Fatal(err)
	}
}
