package main

import (
	"log"
	"net/http"
	"time"

	_ "tradebooks/api/swagger" // swagger docs
	"tradebooks/internal/config"
	"tradebooks/internal/database"
	"tradebooks/internal/events"
	"tradebooks/internal/handler"
	"tradebooks/internal/middleware"
	"tradebooks/internal/pdf"
	"tradebooks/internal/repository"
	"tradebooks/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Tradebooks API
// @version         1.0
// @description     Business management backend for a sole trader: quotes, invoices, expenses, travel logs, job notes and contacts.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	cfg := config.Load()
	if len(cfg.AllowedEmails) == 0 {
		log.Println("WARNING: ALLOWED_EMAILS is empty; nobody can log in")
	}

	db, err := database.NewConnection(cfg.DSN)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	hub := events.NewHub()
	go hub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	travelRepo := repository.NewTravelLogRepository(db)
	noteRepo := repository.NewJobNoteRepository(db)
	contactRepo := repository.NewContactRepository(db)
	profileRepo := repository.NewBusinessProfileRepository(db)
	counterRepo := repository.NewCounterRepository(db)

	seq := service.NewSequenceService(counterRepo)
	authService := service.NewAuthService(userRepo, cfg)
	quoteService := service.NewQuoteService(quoteRepo, invoiceRepo, contactRepo, seq, txManager, hub, cfg)
	invoiceService := service.NewInvoiceService(invoiceRepo, seq, txManager, hub, cfg)
	expenseService := service.NewExpenseService(expenseRepo, hub)
	travelService := service.NewTravelLogService(travelRepo, hub, cfg)
	noteService := service.NewJobNoteService(noteRepo, hub)
	contactService := service.NewContactService(contactRepo, hub)
	profileService := service.NewBusinessProfileService(profileRepo, hub)
	pdfService := service.NewDocumentPDFService(quoteRepo, invoiceRepo, profileRepo, pdf.New())
	dashboardService := service.NewDashboardService(quoteRepo, invoiceRepo, expenseRepo, travelRepo, cfg)
	backupService := service.NewBackupService(
		quoteRepo, invoiceRepo, expenseRepo, travelRepo, noteRepo, contactRepo,
		profileRepo, counterRepo, txManager, hub,
		quoteService, invoiceService, expenseService, travelService, noteService, contactService,
	)

	// Initialize Handlers
	authHandler := handler.NewAuthHandler(authService, cfg.EmailAllowed)
	quoteHandler := handler.NewQuoteHandler(quoteService, pdfService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, pdfService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	travelHandler := handler.NewTravelHandler(travelService)
	noteHandler := handler.NewNoteHandler(noteService)
	contactHandler := handler.NewContactHandler(contactService)
	profileHandler := handler.NewProfileHandler(profileService)
	backupHandler := handler.NewBackupHandler(backupService)
	workspaceHandler := handler.NewWorkspaceHandler(backupService, dashboardService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		events.ServeWs(hub, c, middleware.GetJWTSecret(), events.EmailChecker(cfg.EmailAllowed))
	})

	// Public auth routes register themselves; everything else sits behind the
	// allow-list middleware.
	authHandler.RegisterRoutes(router.Group(""))

	protected := router.Group("", middleware.RequireAuth(cfg.EmailAllowed))
	quoteHandler.RegisterRoutes(protected)
	invoiceHandler.RegisterRoutes(protected)
	expenseHandler.RegisterRoutes(protected)
	travelHandler.RegisterRoutes(protected)
	noteHandler.RegisterRoutes(protected)
	contactHandler.RegisterRoutes(protected)
	profileHandler.RegisterRoutes(protected)
	backupHandler.RegisterRoutes(protected)
	workspaceHandler.RegisterRoutes(protected)

	// No WriteTimeout: /ws connections are long-lived.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Server listening on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
