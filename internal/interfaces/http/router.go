// Package http wires the REST API: routes, middleware, and the dependency
// graph behind each handler.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authUsecases "ta7wila/internal/application/auth/usecases"
	checkoutUsecases "ta7wila/internal/application/checkout/usecases"
	invoiceUsecases "ta7wila/internal/application/invoice/usecases"
	storeUsecases "ta7wila/internal/application/store/usecases"
	transactionUsecases "ta7wila/internal/application/transaction/usecases"
	userUsecases "ta7wila/internal/application/user/usecases"
	verificationApp "ta7wila/internal/application/verification"
	verificationUsecases "ta7wila/internal/application/verification/usecases"
	whatsappApp "ta7wila/internal/application/whatsapp"
	"ta7wila/internal/infrastructure/auth"
	"ta7wila/internal/infrastructure/channelcatalog"
	"ta7wila/internal/infrastructure/config"
	"ta7wila/internal/infrastructure/email"
	"ta7wila/internal/infrastructure/pdf"
	"ta7wila/internal/infrastructure/permission"
	"ta7wila/internal/infrastructure/ratelimit"
	"ta7wila/internal/infrastructure/repository"
	"ta7wila/internal/infrastructure/scheduler"
	"ta7wila/internal/infrastructure/singleflight"
	"ta7wila/internal/infrastructure/webhook"
	"ta7wila/internal/infrastructure/whatsapp"
	"ta7wila/internal/interfaces/http/handlers"
	"ta7wila/internal/interfaces/http/middleware"
	"ta7wila/internal/shared/db"
	"ta7wila/internal/shared/logger"
	"ta7wila/internal/shared/services/markdown"
)

// Router holds the configured engine and the background components the server
// lifecycle needs to stop.
type Router struct {
	engine           *gin.Engine
	whatsappPoller   *whatsapp.Poller
	invoiceScheduler *scheduler.InvoiceScheduler
}

// NewRouter builds the full HTTP surface from the database, Redis and config.
func NewRouter(gdb *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Router, error) {
	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.CustomLogger(log))
	engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	engine.Use(middleware.SecurityHeaders())

	// repositories
	userRepo := repository.NewUserRepository(gdb)
	storeRepo := repository.NewStoreRepository(gdb)
	destinationRepo := repository.NewDestinationRepository(gdb)
	transactionRepo := repository.NewTransactionRepository(gdb)
	verificationRepo := repository.NewVerificationRepository(gdb)
	invoiceRepo := repository.NewInvoiceRepository(gdb)
	txManager := db.NewTransactionManager(gdb)

	// infrastructure services
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)

	var emailService email.Service
	if cfg.Email.Enabled {
		emailService = email.NewSMTPEmailService(email.SMTPConfig{
			Host:        cfg.Email.SMTPHost,
			Port:        cfg.Email.SMTPPort,
			Username:    cfg.Email.SMTPUser,
			Password:    cfg.Email.SMTPPassword,
			FromAddress: cfg.Email.FromAddress,
			FromName:    cfg.Email.FromName,
			BaseURL:     cfg.Server.BaseURL,
		})
	} else {
		emailService = email.NewNoopEmailService(log)
	}

	catalog, err := channelcatalog.Load()
	if err != nil {
		return nil, err
	}

	enforcer, err := permission.NewEnforcer(gdb, log)
	if err != nil {
		return nil, err
	}
	if err := enforcer.InitDefaultPolicies(); err != nil {
		return nil, err
	}

	claimGuard := singleflight.NewClaimGuard(redisClient)
	limiter := ratelimit.NewRedisRateLimiter(redisClient)
	webhookNotifier := webhook.NewNotifier(log)
	markdownService := markdown.NewMarkdownService()
	invoiceRenderer := pdf.NewInvoiceRenderer()

	waClient := whatsapp.NewClient(cfg.WhatsApp.BridgeURL)
	waPoller := whatsapp.NewPoller(waClient, log,
		time.Duration(cfg.WhatsApp.PollIntervalSeconds)*time.Second,
		time.Duration(cfg.WhatsApp.QRExpirySeconds)*time.Second,
	)
	waService := whatsappApp.NewService(waClient, waPoller, log)

	// use cases
	currency := cfg.Business.Currency
	registerUC := authUsecases.NewRegisterUseCase(userRepo, hasher, log)
	loginUC := authUsecases.NewLoginUseCase(userRepo, hasher, jwtService, log)
	refreshUC := authUsecases.NewRefreshUseCase(jwtService, log)
	profileUC := authUsecases.NewGetProfileUseCase(userRepo)
	createUserUC := userUsecases.NewCreateUserUseCase(userRepo, hasher, log)
	listUsersUC := userUsecases.NewListUsersUseCase(userRepo, log)

	createStoreUC := storeUsecases.NewCreateStoreUseCase(storeRepo, log)
	updateStoreUC := storeUsecases.NewUpdateStoreUseCase(storeRepo, log)
	getStoreUC := storeUsecases.NewGetStoreUseCase(storeRepo, destinationRepo, log)
	listStoresUC := storeUsecases.NewListStoresUseCase(storeRepo, log)
	addDestinationUC := storeUsecases.NewAddDestinationUseCase(storeRepo, destinationRepo, log)
	listDestinationsUC := storeUsecases.NewListDestinationsUseCase(storeRepo, destinationRepo, log)
	setDestinationStatusUC := storeUsecases.NewSetDestinationStatusUseCase(storeRepo, destinationRepo, log)

	ingestUC := transactionUsecases.NewIngestCallbackUseCase(storeRepo, destinationRepo, transactionRepo, log, currency)
	listTransactionsUC := transactionUsecases.NewListTransactionsUseCase(transactionRepo, log)

	submitClaimUC := verificationUsecases.NewSubmitClaimUseCase(
		verificationRepo, transactionRepo, destinationRepo, claimGuard, txManager, log, currency)
	checkVerificationUC := verificationUsecases.NewCheckVerificationUseCase(verificationRepo, transactionRepo, txManager, log)
	decisionNotifier := verificationApp.NewEmailDecisionNotifier(storeRepo, userRepo, emailService, webhookNotifier, log)
	decideVerificationUC := verificationUsecases.NewDecideVerificationUseCase(verificationRepo, decisionNotifier, log)
	listVerificationsUC := verificationUsecases.NewListVerificationsUseCase(verificationRepo, log)

	getCheckoutUC := checkoutUsecases.NewGetCheckoutUseCase(storeRepo, destinationRepo, catalog, markdownService, log)
	publicPayUC := checkoutUsecases.NewPublicPayUseCase(storeRepo, submitClaimUC, log)

	generateInvoicesUC := invoiceUsecases.NewGenerateMonthlyInvoicesUseCase(
		storeRepo, verificationRepo, invoiceRepo, log, cfg.Business.FeeBasisPoints, currency)
	issueInvoiceUC := invoiceUsecases.NewIssueInvoiceUseCase(invoiceRepo, storeRepo, userRepo, emailService, log)
	markInvoicePaidUC := invoiceUsecases.NewMarkInvoicePaidUseCase(invoiceRepo, log)
	invoicePDFUC := invoiceUsecases.NewGetInvoicePDFUseCase(invoiceRepo, storeRepo, invoiceRenderer, log)
	listInvoicesUC := invoiceUsecases.NewListInvoicesUseCase(invoiceRepo, storeRepo, log)

	// handlers
	authHandler := handlers.NewAuthHandler(registerUC, loginUC, refreshUC, profileUC)
	userHandler := handlers.NewUserHandler(createUserUC, listUsersUC)
	storeHandler := handlers.NewStoreHandler(
		createStoreUC, updateStoreUC, getStoreUC, listStoresUC,
		addDestinationUC, listDestinationsUC, setDestinationStatusUC)
	transactionHandler := handlers.NewTransactionHandler(ingestUC, listTransactionsUC, submitClaimUC, getStoreUC)
	verificationHandler := handlers.NewVerificationHandler(checkVerificationUC, decideVerificationUC, listVerificationsUC)
	checkoutHandler := handlers.NewCheckoutHandler(getCheckoutUC, publicPayUC)
	invoiceHandler := handlers.NewInvoiceHandler(generateInvoicesUC, issueInvoiceUC, markInvoicePaidUC, invoicePDFUC, listInvoicesUC)
	whatsappHandler := handlers.NewWhatsAppHandler(waService)

	authMW := middleware.NewAuthMiddleware(jwtService, log)
	permMW := middleware.NewPermissionMiddleware(enforcer, log)
	publicLimit := middleware.RateLimit(limiter, ratelimit.RateLimitConfig{
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		RequestsPerHour:   cfg.RateLimit.RequestsPerHour,
	})

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "ta7wila"})
	})

	v1 := engine.Group("/api/v1")

	// public endpoints
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", publicLimit, authHandler.Register)
		authGroup.POST("/login", publicLimit, authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.GET("/profile", authMW.RequireAuth(), authHandler.Profile)
	}

	checkoutGroup := v1.Group("/checkouts", publicLimit)
	{
		checkoutGroup.GET("/:slug", checkoutHandler.Get)
		checkoutGroup.POST("/:slug/pay", checkoutHandler.Pay)
	}

	// provider callbacks are authenticated by store SID knowledge plus IP
	// limiting; providers cannot carry bearer tokens
	v1.POST("/callbacks/:sid", publicLimit, transactionHandler.Callback)

	// dashboard endpoints
	stores := v1.Group("/stores", authMW.RequireAuth())
	{
		stores.POST("", permMW.Require("store", "create"), storeHandler.Create)
		stores.GET("", permMW.Require("store", "read"), storeHandler.List)
		stores.GET("/:sid", permMW.Require("store", "read"), storeHandler.Get)
		stores.PATCH("/:sid", permMW.Require("store", "update"), storeHandler.Update)
		stores.DELETE("/:sid", permMW.Require("store", "update"), storeHandler.Delete)

		stores.POST("/:sid/destinations", permMW.Require("destination", "create"), storeHandler.AddDestination)
		stores.GET("/:sid/destinations", permMW.Require("destination", "read"), storeHandler.ListDestinations)
		stores.PATCH("/:sid/destinations/:destination_sid", permMW.Require("destination", "update"), storeHandler.SetDestinationStatus)

		stores.GET("/:sid/transactions", permMW.Require("transaction", "read"), transactionHandler.List)
		stores.POST("/:sid/manual-check", permMW.Require("transaction", "check"), transactionHandler.ManualCheck)

		stores.GET("/:sid/invoices", permMW.Require("invoice", "read"), invoiceHandler.List)
	}

	// account provisioning for employee and admin roles
	users := v1.Group("/users", authMW.RequireAuth())
	{
		users.POST("", permMW.Require("user", "create"), userHandler.Create)
		users.GET("", permMW.Require("user", "read"), userHandler.List)
	}

	// review queue, admin only
	verifications := v1.Group("/verifications", authMW.RequireAuth(), authMW.RequireAdmin())
	{
		verifications.GET("", verificationHandler.List)
		verifications.GET("/:ref/check", verificationHandler.Check)
		verifications.POST("/:ref/decide", verificationHandler.Decide)
	}

	invoices := v1.Group("/invoices", authMW.RequireAuth())
	{
		invoices.GET("/:ref/pdf", permMW.Require("invoice", "read"), invoiceHandler.DownloadPDF)
		invoices.POST("/generate", authMW.RequireAdmin(), invoiceHandler.Generate)
		invoices.POST("/:ref/issue", authMW.RequireAdmin(), invoiceHandler.Issue)
		invoices.POST("/:ref/paid", authMW.RequireAdmin(), invoiceHandler.MarkPaid)
	}

	wa := v1.Group("/whatsapp", authMW.RequireAuth())
	{
		wa.GET("/status", permMW.Require("whatsapp", "read"), whatsappHandler.Status)
		wa.POST("/start", permMW.Require("whatsapp", "manage"), whatsappHandler.Start)
		wa.POST("/stop", permMW.Require("whatsapp", "manage"), whatsappHandler.Stop)
		wa.POST("/send", permMW.Require("whatsapp", "manage"), whatsappHandler.SendMessage)
	}

	invoiceScheduler := scheduler.NewInvoiceScheduler(generateInvoicesUC, log)

	return &Router{
		engine:           engine,
		whatsappPoller:   waPoller,
		invoiceScheduler: invoiceScheduler,
	}, nil
}

// Engine exposes the underlying gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// StartBackground launches the invoice scheduler and the WhatsApp bridge
// poller alongside the listener.
func (r *Router) StartBackground(ctx context.Context) {
	r.invoiceScheduler.Start(ctx)
	r.whatsappPoller.Start(ctx)
}

// StopBackground stops the background components started by StartBackground.
func (r *Router) StopBackground() {
	r.invoiceScheduler.Stop()
	r.whatsappPoller.Stop()
}
