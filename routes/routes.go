package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"birthday-reminder/config"
	"birthday-reminder/controllers"
	"birthday-reminder/services"
)

func SetupRouter(delivery *services.DeliveryService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Authorization", "Content-Type"},
	}))

	r.Use(config.PerformanceLogger())

	api := r.Group("/api/v1")
	{
		api.POST("/user", controllers.AddUser)
		api.GET("/users", controllers.GetUsers)
		api.PUT("/user/:id", controllers.UpdateUser)
		api.DELETE("/user/:id", controllers.DeleteUser)

		api.GET("/zones", controllers.GetZones)

		api.POST("/send-bulk-email", controllers.SendBulkEmail(delivery))
	}

	return r
}
