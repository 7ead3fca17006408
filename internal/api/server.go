package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alligatorO15/fin-mentor/internal/api/handlers"
	"github.com/alligatorO15/fin-mentor/internal/api/middleware"
	"github.com/alligatorO15/fin-mentor/internal/config"
	"github.com/alligatorO15/fin-mentor/internal/service"
	"github.com/gin-gonic/gin"
)

type Server struct {
	router   *gin.Engine
	config   *config.Config
	services *service.Services
	logger   *slog.Logger
}

func NewServer(cfg *config.Config, services *service.Services, logger *slog.Logger) (*Server, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := handlers.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	// свой логгер запросов вместо стандартного gin
	router := gin.New()
	router.Use(gin.Recovery())

	server := &Server{
		router:   router,
		config:   cfg,
		services: services,
		logger:   logger,
	}

	server.setupRoutes()

	return server, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run слушает addr до отмены ctx, затем дает запросам 5 секунд на завершение
func (s *Server) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.logger.Info("http server listening", "addr", addr, "auth", s.services.Auth.Enabled())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

func (s *Server) setupRoutes() {
	//middleware
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.RequestLogger(s.logger))

	// health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api/v1")

	// подготавливаем хэндлеры
	authHandler := handlers.NewAuthHandler(s.services.Auth)
	budgetHandler := handlers.NewBudgetHandler(s.services.Budget)
	transactionHandler := handlers.NewTransactionHandler(s.services.Transaction)
	goalHandler := handlers.NewGoalHandler(s.services.Goal)
	purchaseHandler := handlers.NewPurchaseHandler(s.services.Purchase)
	analyticsHandler := handlers.NewAnalyticsHandler(s.services.Budget, s.services.Reflection)

	// эндпоинты аутентификации (публичные)
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}

	// непубличные эндпоинты, без пароля владельца middleware пропускает все
	protected := api.Group("")
	protected.Use(middleware.Auth(s.services.Auth))
	{
		// budget
		protected.GET("/income", budgetHandler.GetIncome)
		protected.PUT("/income", budgetHandler.SetIncome)
		protected.GET("/ratios", budgetHandler.GetRatios)
		protected.PUT("/ratios", budgetHandler.SetRatios)
		protected.GET("/plan", budgetHandler.GetPlan)
		protected.GET("/balances", budgetHandler.GetBalances)
		protected.GET("/alerts", budgetHandler.GetAlerts)

		// recurring expenses
		expenses := protected.Group("/expenses")
		{
			expenses.POST("", transactionHandler.AddExpense)
			expenses.GET("", transactionHandler.ListExpenses)
		}

		// transactions
		transactions := protected.Group("/transactions")
		{
			transactions.POST("", transactionHandler.Create)
			transactions.GET("", transactionHandler.List)
		}

		// savings goal
		protected.GET("/goal", goalHandler.Get)
		protected.PUT("/goal", goalHandler.Set)

		// purchases
		purchases := protected.Group("/purchases")
		{
			purchases.POST("/simulate", purchaseHandler.Simulate)
			purchases.POST("/confirm", purchaseHandler.Confirm)
		}

		// analytics
		protected.GET("/summary", analyticsHandler.GetSummary)
		protected.GET("/review", analyticsHandler.GetReview)
	}
}
