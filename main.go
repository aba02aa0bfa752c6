package main

import (
	"log"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/watercharging/evtax-service/client"
	"github.com/watercharging/evtax-service/config"
	"github.com/watercharging/evtax-service/handler"
	"github.com/watercharging/evtax-service/repository"
	"github.com/watercharging/evtax-service/service"
)

func main() {
	// Initialize configuration
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// Initialize data store
	store, err := repository.NewStore(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open data store: %v", err)
	}
	defer store.Close()
	log.Printf("Data store ready at %s", cfg.DatabasePath)

	// Initialize OCR engine
	var detector service.TextDetector
	ready := true
	switch cfg.OCREngine {
	case "tesseract":
		tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
		defer tesseractClient.Close()
		detector = tesseractClient
		log.Println("OCR engine: local tesseract (kor+eng)")
	default:
		visionClient := client.NewVisionClient(cfg.VisionAPIKey, cfg.VisionEndpoint)
		detector = visionClient
		ready = visionClient.Configured()
		log.Println("OCR engine: Google Vision")
	}

	// Initialize mail client
	mailer := client.NewSendGridClient(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailFromName)

	// Initialize service layer
	ocrService := service.NewOCRService(detector, service.NewPDFProcessor(), ready)
	taxService := service.NewTaxService(store)
	stationService := service.NewStationService(store)
	authService := service.NewAuthService(store)
	reminderService := service.NewReminderService(store, mailer, cfg.ReminderWindow)

	// Initialize handler layer
	ocrHandler := handler.NewOCRHandler(ocrService)
	taxHandler := handler.NewTaxHandler(taxService)
	stationHandler := handler.NewStationHandler(stationService)
	authHandler := handler.NewAuthHandler(authService)
	notifyHandler := handler.NewNotifyHandler(mailer)
	cronHandler := handler.NewCronHandler(reminderService, cfg.CronBypassToken)

	// Setup Gin router
	router := gin.Default()
	router.MaxMultipartMemory = 32 << 20

	router.Use(cors.New(cors.Config{
		AllowOrigins:  strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "EV Tax Management",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/auth/login", authHandler.Login)

		api.POST("/ocr/extract", ocrHandler.Extract)
		api.POST("/notify", notifyHandler.Notify)
		api.GET("/cron/due-reminders", cronHandler.DueReminders)

		taxes := api.Group("/taxes")
		{
			taxes.GET("", taxHandler.List)
			taxes.GET("/stats", taxHandler.Stats)
			taxes.POST("", taxHandler.Create)
			taxes.GET("/:id", taxHandler.Get)
			taxes.PUT("/:id", taxHandler.Update)
			taxes.DELETE("/:id", taxHandler.Delete)
			taxes.POST("/:id/status/next", taxHandler.AdvanceStatus)
			taxes.POST("/:id/status/revert", taxHandler.RevertStatus)
		}

		stations := api.Group("/stations")
		{
			stations.GET("", stationHandler.List)
			stations.POST("", stationHandler.Create)
			stations.PATCH("/:id", stationHandler.Rename)
			stations.POST("/:id/activate", stationHandler.Activate)
			stations.POST("/:id/deactivate", stationHandler.Deactivate)
		}
	}

	// Start server
	log.Printf("Starting EV Tax Management Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
