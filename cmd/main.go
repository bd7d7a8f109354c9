package main

import (
	"log"
	"os"

	"github.com/cmarkstaller/fit-buddy/cache"
	"github.com/cmarkstaller/fit-buddy/config"
	"github.com/cmarkstaller/fit-buddy/routes"
	"github.com/cmarkstaller/fit-buddy/utils"
)

func main() {
	utils.InitLogger()
	utils.InitMetrics()
	config.InitDB()
	utils.InitMailer()
	utils.InitS3()

	if err := cache.InitRedis(utils.Logger); err != nil {
		// comparison views fall back to recomputing on every request
		utils.Logger.Warn("running without redis cache")
	}
	defer cache.Close()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter()
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
