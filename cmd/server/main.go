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
	config "github.com/lotcast/lotcast/configs"
	"github.com/lotcast/lotcast/internal/api/handlers"
	"github.com/lotcast/lotcast/internal/api/middleware"
	job "github.com/lotcast/lotcast/internal/jobs"
	"github.com/lotcast/lotcast/internal/queue"
	"github.com/lotcast/lotcast/internal/repository"
	"github.com/lotcast/lotcast/internal/service"
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
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	dealershipRepo := repository.NewDealershipRepository(db)
	operatorRepo := repository.NewOperatorRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	eventRepo := repository.NewLifecycleEventRepository(db)
	voiceProfileRepo := repository.NewVoiceProfileRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	captionRepo := repository.NewCaptionRepository(db)
	connectionRepo := repository.NewConnectionRepository(db)
	publishedPostRepo := repository.NewPublishedPostRepository(db)
	apiKeyRepository := repository.NewApiKeyRepository(db)

	adapters := service.NewAdapterRegistry(
		service.NewFacebookAdapter(*cfg),
		service.NewInstagramAdapter(*cfg),
		service.NewGoogleBusinessAdapter(*cfg),
	)

	authService := service.NewAuthService(*cfg, operatorRepo, dealershipRepo)
	operatorService := service.NewOperatorService(operatorRepo)
	apiKeyService := service.NewApiKeyService(apiKeyRepository)
	vehicleService := service.NewVehicleService(vehicleRepo, eventRepo)
	notifier := queue.NewNotifier(client)
	lifecycleService := service.NewLifecycleService(vehicleRepo, eventRepo, notifier)
	voiceService := service.NewVoiceService(voiceProfileRepo)
	templateService := service.NewTemplateService(templateRepo)
	generationClient := service.NewGenerationClient(*cfg)
	captionService := service.NewCaptionService(generationClient, captionRepo, eventRepo, vehicleRepo, voiceProfileRepo, templateRepo, dealershipRepo)
	connectionService := service.NewConnectionService(*cfg, connectionRepo, adapters)
	mediaService := service.NewMediaService(*cfg)
	publishService := service.NewPublishService(captionRepo, publishedPostRepo, eventRepo, vehicleRepo, connectionService, adapters, mediaService)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService, operatorService)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Get("/login", auth.Login)
	app.Get("/login/callback", auth.LoginCallbackHandler)
	app.Get("/logout", auth.Logout)

	connection := handlers.NewConnectionHandler(*cfg, connectionService)
	app.Get("/auth/:platform", connection.ConnectPlatform)
	app.Get("/auth/:platform/callback", connection.CallbackHandler)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	operator := handlers.NewOperatorHandler(operatorService)
	api.Get("/operator/info", operator.GetOperatorInfo)

	apiKeys := handlers.NewApiKeyHandler(apiKeyService)
	api.Post("/api_key/new", apiKeys.CreateApiKey)
	api.Get("/api_key/list", apiKeys.ListKeys)
	api.Post("/api_key/remove", apiKeys.RemoveAPIKey)

	vehicle := handlers.NewVehicleHandler(vehicleService, lifecycleService)
	api.Post("/vehicles/create", vehicle.CreateVehicle)
	api.Get("/vehicles", vehicle.ListVehicles)
	api.Post("/vehicles/archive", vehicle.ArchiveVehicle)
	api.Post("/vehicles/:id/advance", vehicle.AdvanceStage)
	api.Post("/vehicles/:id/stage", vehicle.SetStage)
	api.Get("/vehicles/:id/events", vehicle.ListEvents)
	api.Get("/vehicles/:id/actions", vehicle.SuggestedActions)

	voice := handlers.NewVoiceHandler(voiceService, templateService)
	api.Get("/voice/profile", voice.GetVoiceProfile)
	api.Post("/voice/profile", voice.SaveVoiceProfile)
	api.Post("/templates/create", voice.CreateTemplate)
	api.Get("/templates", voice.ListTemplates)
	api.Post("/templates/update", voice.UpdateTemplate)
	api.Post("/templates/remove", voice.RemoveTemplate)

	caption := handlers.NewCaptionHandler(captionService)
	api.Post("/captions/generate", caption.GenerateCaption)
	api.Get("/captions/draft", caption.GetDraft)
	api.Post("/captions/edit", caption.EditDraft)

	api.Get("/connections", connection.ListConnections)
	api.Get("/connections/:platform/targets", connection.ListTargets)
	api.Post("/connections/:platform/target", connection.SelectTarget)
	api.Post("/connections/:platform/disconnect", connection.DisconnectPlatform)

	publish := handlers.NewPublishHandler(publishService)
	api.Post("/posts/publish", publish.PublishNow)
	api.Get("/posts", publish.ListPosts)

	// cron jobs
	engagementJob := job.NewEngagementJob(publishedPostRepo, connectionService, adapters)

	//queue
	queueW := queue.NewQueue(captionService)

	c := cron.New()
	c.AddFunc("@every 01h00m00s", engagementJob.RefreshEngagement)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeStageChanged, queueW.HandleStageChangedTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

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
