package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"workhub/internal/access"
	"workhub/internal/config"
	"workhub/internal/db"
	"workhub/internal/handler"
	"workhub/internal/middleware"
	"workhub/internal/repository"

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
	// Apply pending migrations before opening GORM
	if err := db.RunMigrations(cfg.MigrationsDir, cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName); err != nil {
		return nil, fmt.Errorf("❌ failed to run migrations: %w", err)
	}
	log.Println("✅ Migrations applied")

	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	workspaceRepo := repository.NewWorkspaceRepository(gormDB)
	boardRepo := repository.NewBoardRepository(gormDB)
	columnRepo := repository.NewColumnRepository(gormDB)
	cardRepo := repository.NewCardRepository(gormDB)
	labelRepo := repository.NewLabelRepository(gormDB)
	tableRepo := repository.NewTableRepository(gormDB)
	listRepo := repository.NewListRepository(gormDB)
	groupRepo := repository.NewGroupRepository(gormDB)
	policyRepo := repository.NewPolicyRepository(gormDB)
	ruleRepo := repository.NewRuleRepository(gormDB)

	// Initialize the access-control core. Collaborators are passed in
	// explicitly, there is no ambient registry.
	locator := access.NewLocator(workspaceRepo, boardRepo, columnRepo, cardRepo, tableRepo, listRepo)
	gate := access.NewGate(workspaceRepo, workspaceRepo)
	evaluator := access.NewEvaluator(locator, policyRepo, ruleRepo, groupRepo, access.DefaultMatcher{})
	bootstrap := access.NewBootstrap(policyRepo, ruleRepo)

	// Seed system policies once
	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	created, err := bootstrap.SeedSystemPolicies(seedCtx, cfg.PoliciesDir)
	if err != nil {
		return nil, fmt.Errorf("❌ failed to seed system policies: %w", err)
	}
	if created > 0 {
		log.Printf("✅ Seeded %d system policies", created)
	}

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo, cfg)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceRepo, userRepo, gate, bootstrap)
	boardHandler := handler.NewBoardHandler(boardRepo, gate, locator)
	columnHandler := handler.NewColumnHandler(columnRepo, gate, locator)
	cardHandler := handler.NewCardHandler(cardRepo, gate, locator)
	labelHandler := handler.NewLabelHandler(labelRepo, gate, locator)
	tableHandler := handler.NewTableHandler(tableRepo, gate)
	listHandler := handler.NewListHandler(listRepo, gate)
	groupHandler := handler.NewGroupHandler(groupRepo, userRepo)
	policyHandler := handler.NewPolicyHandler(policyRepo, userRepo, gate)
	ruleHandler := handler.NewRuleHandler(ruleRepo, policyRepo, gate, locator)
	accessHandler := handler.NewAccessHandler(evaluator)

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// Workspace routes
		authorized.POST("/workspaces", workspaceHandler.Create)
		authorized.GET("/workspaces", workspaceHandler.GetAll)
		authorized.GET("/workspaces/:id", workspaceHandler.GetByID)
		authorized.PUT("/workspaces/:id", workspaceHandler.Update)
		authorized.DELETE("/workspaces/:id", workspaceHandler.Delete)
		authorized.POST("/workspaces/:id/members", workspaceHandler.AddMember)
		authorized.GET("/workspaces/:id/members", workspaceHandler.GetMembers)
		authorized.DELETE("/workspaces/:id/members/:user_id", workspaceHandler.RemoveMember)

		// Board routes
		authorized.POST("/boards", boardHandler.Create)
		authorized.GET("/workspaces/:id/boards", boardHandler.GetByWorkspace)
		authorized.GET("/boards/:id", boardHandler.GetByID)
		authorized.PUT("/boards/:id", boardHandler.Update)
		authorized.DELETE("/boards/:id", boardHandler.Delete)

		// Column routes
		authorized.POST("/columns", columnHandler.Create)
		authorized.GET("/boards/:id/columns", columnHandler.GetByBoard)
		authorized.PUT("/columns/:id", columnHandler.Update)
		authorized.DELETE("/columns/:id", columnHandler.Delete)

		// Card routes
		authorized.POST("/cards", cardHandler.Create)
		authorized.GET("/cards/:id", cardHandler.GetByID)
		authorized.GET("/columns/:id/cards", cardHandler.GetByColumn)
		authorized.PUT("/cards/:id", cardHandler.Update)
		authorized.DELETE("/cards/:id", cardHandler.Delete)
		authorized.POST("/cards/:id/move", cardHandler.Move)

		// Label routes
		authorized.POST("/labels", labelHandler.Create)
		authorized.GET("/boards/:id/labels", labelHandler.GetByBoard)
		authorized.PUT("/labels/:id", labelHandler.Update)
		authorized.DELETE("/labels/:id", labelHandler.Delete)
		authorized.GET("/cards/:id/labels", labelHandler.GetByCard)
		authorized.POST("/cards/:id/labels", labelHandler.Attach)
		authorized.DELETE("/cards/:id/labels/:label_id", labelHandler.Detach)

		// Table routes
		authorized.POST("/tables", tableHandler.Create)
		authorized.GET("/workspaces/:id/tables", tableHandler.GetByWorkspace)
		authorized.DELETE("/tables/:id", tableHandler.Delete)

		// List routes
		authorized.POST("/lists", listHandler.Create)
		authorized.GET("/workspaces/:id/lists", listHandler.GetByWorkspace)
		authorized.DELETE("/lists/:id", listHandler.Delete)

		// Group routes (platform admin only)
		authorized.POST("/groups", groupHandler.Create)
		authorized.POST("/groups/:id/members", groupHandler.AddMember)
		authorized.DELETE("/groups/:id/members/:user_id", groupHandler.RemoveMember)

		// Access-control administration
		authorized.POST("/access/policies", policyHandler.Create)
		authorized.GET("/access/policies/:id", policyHandler.GetByID)
		authorized.PUT("/access/policies/:id", policyHandler.Update)
		authorized.DELETE("/access/policies/:id", policyHandler.Delete)
		authorized.GET("/workspaces/:id/policies", policyHandler.GetByWorkspace)
		authorized.GET("/workspaces/:id/policies/applicable", policyHandler.GetApplicable)
		authorized.POST("/access/rules", ruleHandler.Create)
		authorized.GET("/access/policies/:id/rules", ruleHandler.GetByPolicy)
		authorized.PUT("/access/rules/:id", ruleHandler.Update)
		authorized.DELETE("/access/rules/:id", ruleHandler.Delete)
		authorized.POST("/access/check", accessHandler.Check)
		authorized.GET("/access/permissions", accessHandler.Permissions)
	}
	return &Server{
		Engine: r,
		DB:     gormDB,
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
