package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/portal28/scheduling-api/configs"
	"github.com/portal28/scheduling-api/internal/api/handlers"
	"github.com/portal28/scheduling-api/internal/api/middleware"
	job "github.com/portal28/scheduling-api/internal/jobs"
	"github.com/portal28/scheduling-api/internal/queue"
	"github.com/portal28/scheduling-api/internal/repository"
	"github.com/portal28/scheduling-api/internal/service"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	scheduleRepo := repository.NewScheduleRepository(db)
	userRepo := repository.NewUserRepository(db)
	contentRepo := repository.NewContentRepository(db)
	historyRepo := repository.NewPublishHistoryRepository(db)

	ownershipRegistry := service.NewOwnershipRegistry(contentRepo)
	scheduleService := service.NewScheduleService(scheduleRepo, userRepo, historyRepo, ownershipRegistry)
	publishService := service.NewPublishService(contentRepo, historyRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	schedule := handlers.NewScheduleHandler(scheduleService, client)
	api.Get("/schedule", schedule.ListSchedules)
	api.Post("/schedule", schedule.CreateSchedule)
	api.Get("/schedule/:id", schedule.GetSchedule)
	api.Patch("/schedule/:id", schedule.UpdateSchedule)
	api.Delete("/schedule/:id", schedule.CancelSchedule)
	api.Get("/schedule/:id/history", schedule.ScheduleHistory)

	// queue worker
	queueW := queue.NewQueue(scheduleRepo, publishService)

	// cron catch-up sweep for publish tasks lost by the queue
	sweepJob := job.NewSweepJob(scheduleRepo, publishService)
	c := cron.New()
	c.AddFunc("@every 00h01m00s", sweepJob.Sweep)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishSchedule, queueW.HandlePublishScheduleTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
