package server

import (
	"context"
	"net/http"

	"github.com/Moetaz0/BeatMarket-Back/internal/auth"
	"github.com/Moetaz0/BeatMarket-Back/internal/beat"
	"github.com/Moetaz0/BeatMarket-Back/internal/config"
	"github.com/Moetaz0/BeatMarket-Back/internal/email"
	"github.com/Moetaz0/BeatMarket-Back/internal/license"
	"github.com/Moetaz0/BeatMarket-Back/internal/order"
	"github.com/Moetaz0/BeatMarket-Back/internal/user"
	"github.com/Moetaz0/BeatMarket-Back/internal/wallet"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	db         *sqlx.DB
	config     *config.Config
	email      *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	userHandler := user.NewHandler(db, cfg.JWTSecret)
	beatHandler := beat.NewHandler(db)
	licenseHandler := license.NewHandler(db)
	walletHandler := wallet.NewHandler(db, emailService)
	orderHandler := order.NewHandler(db, emailService)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)

		protected.GET("/beats", beatHandler.ListBeats)
		protected.GET("/beats/mine", beatHandler.ListMyBeats)
		protected.GET("/beats/:beatID", beatHandler.GetBeat)
		protected.GET("/licenses", licenseHandler.ListLicenses)
		protected.GET("/licenses/:licenseID", licenseHandler.GetLicense)

		protected.GET("/wallet", walletHandler.GetWallet)
		protected.POST("/wallet/deposit", walletHandler.Deposit)
		protected.GET("/wallet/transactions", walletHandler.ListTransactions)
		protected.GET("/wallet/stats", walletHandler.GetStats)

		protected.POST("/orders/checkout", orderHandler.Checkout)
		protected.GET("/orders", orderHandler.ListMyOrders)
		protected.GET("/orders/purchased-beats", orderHandler.ListPurchasedBeats)
		protected.GET("/orders/beats/:beatID/download", orderHandler.DownloadBeat(beat.NewRepository(db)))
		protected.GET("/orders/:orderID", orderHandler.GetOrder)
		protected.GET("/orders/:orderID/beats", orderHandler.GetOrderBeats)
	}

	beatmaker := router.Group("/")
	beatmaker.Use(authMiddleware, auth.RequireRole(user.RoleBeatmaker))
	{
		beatmaker.POST("/beats", beatHandler.CreateBeat)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(user.RoleAdmin))
	{
		admin.POST("/licenses", licenseHandler.CreateLicense)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.httpServer = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
