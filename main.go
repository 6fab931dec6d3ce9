package main

import (
	"lms/config"
	"lms/database"
	authRoutes "lms/routers/authRoutes"
	instructorRoutes "lms/routers/instructorRoutes"
	mediaRoutes "lms/routers/mediaRoutes"
	studentRoutes "lms/routers/studentRoutes"
	"lms/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	utils.InitMediaStore()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.AppConfig.ClientOrigin,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	instructorRoutes.SetupInstructorRoutes(app)
	mediaRoutes.SetupMediaRoutes(app)
	studentRoutes.SetupStudentRoutes(app)

	utils.InitializeReconcileScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
