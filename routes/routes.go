package routes

import (
	"github.com/cmarkstaller/fit-buddy/config"
	"github.com/cmarkstaller/fit-buddy/controllers"
	"github.com/cmarkstaller/fit-buddy/middlewares"
	"github.com/cmarkstaller/fit-buddy/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(middlewares.Recovery())
	r.Use(middlewares.RequestLogger())
	r.Use(cors.Default())

	authSvc := services.NewAuthService(config.DB)
	userSvc := services.NewUserService(config.DB)
	weightSvc := services.NewWeightService(config.DB)
	statsSvc := services.NewStatsService(config.DB)
	friendSvc := services.NewFriendService(config.DB)
	hub := services.NewRealtimeHub()

	authCtl := controllers.NewAuthController(authSvc)
	userCtl := controllers.NewUserController(userSvc)
	weightCtl := controllers.NewWeightController(weightSvc, friendSvc, hub)
	statsCtl := controllers.NewStatsController(statsSvc, friendSvc)
	friendCtl := controllers.NewFriendController(friendSvc, userSvc)
	realtimeCtl := controllers.NewRealtimeController(hub)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
	}

	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/user/profile", userCtl.GetProfile)
		api.PUT("/user/profile", userCtl.UpdateProfile)
		api.POST("/user/onboarding", userCtl.CompleteOnboarding)

		api.POST("/weights", weightCtl.AddWeight)
		api.GET("/weights", weightCtl.History)

		api.GET("/stats/summary", statsCtl.GetSummary)
		api.GET("/stats/series", statsCtl.GetSeries)
		api.GET("/stats/comparison", statsCtl.GetComparison)

		api.POST("/friends", friendCtl.AddFriend)
		api.GET("/friends", friendCtl.ListFriends)

		api.GET("/ws", realtimeCtl.Connect)
	}

	return r
}
