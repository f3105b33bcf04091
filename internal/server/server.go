package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentalhub/internal/config"
	"rentalhub/internal/database"
	"rentalhub/internal/handler"
	"rentalhub/internal/middleware"
	"rentalhub/internal/repository"
	"rentalhub/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Apply schema migrations before opening the pool
	if err := database.Migrate(cfg.MigrateURL()); err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	log.Println("✅ Connected to database")

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	itemRepo := repository.NewBoardItemRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	// Initialize the reservation engine
	availabilitySvc := service.NewAvailabilityService(productRepo, reservationRepo)
	boardSvc := service.NewBoardService(boardRepo, itemRepo, reservationRepo, availabilitySvc, service.NewProductLocks())

	// Initialize handlers
	jwtExpiry := time.Duration(cfg.JWTExpiryHours) * time.Hour
	userHandler := handler.NewUserHandler(userRepo, cfg.JWTSecret, jwtExpiry)
	categoryHandler := handler.NewCategoryHandler(categoryRepo)
	productHandler := handler.NewProductHandler(productRepo)
	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	boardHandler := handler.NewBoardHandler(boardSvc)
	itemHandler := handler.NewBoardItemHandler(boardHandler)

	// Public routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		authorized.GET("/me", userHandler.Me)

		// Catalog routes (read-only)
		authorized.GET("/categories", categoryHandler.GetAll)
		authorized.GET("/subcategories", categoryHandler.GetSubcategories)
		authorized.GET("/products", productHandler.List)
		authorized.GET("/products/:product_id", productHandler.GetByID)
		authorized.POST("/products/check-availability", availabilityHandler.Check)

		// Board routes
		authorized.POST("/boards", boardHandler.Create)
		authorized.GET("/boards", boardHandler.GetAll)
		authorized.GET("/boards/:board_id", boardHandler.GetByID)
		authorized.PATCH("/boards/:board_id", boardHandler.Update)
		authorized.DELETE("/boards/:board_id", boardHandler.Delete)

		// Board item routes
		authorized.POST("/boards/:board_id/items", itemHandler.Add)
		authorized.PATCH("/boards/:board_id/items/:item_id", itemHandler.Update)
		authorized.DELETE("/boards/:board_id/items/:item_id", itemHandler.Delete)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
