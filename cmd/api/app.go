package main

import (
	"context"
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/higitec/laudo-service/internal/adapter/api/controller"
	"github.com/higitec/laudo-service/internal/adapter/api/route"
	"github.com/higitec/laudo-service/internal/adapter/repository"
	"github.com/higitec/laudo-service/internal/domain/laudo"
	"github.com/higitec/laudo-service/internal/infrastructure/config"
	"github.com/higitec/laudo-service/internal/infrastructure/database"
	"github.com/higitec/laudo-service/internal/infrastructure/seed"
	"github.com/higitec/laudo-service/pkg/logger"
	"github.com/higitec/laudo-service/pkg/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// App representa a aplicação e suas dependências
type App struct {
	router          *gin.Engine
	config          *config.Config
	db              *pgxpool.Pool
	laudoRepository laudo.Repository
	laudoService    *laudo.Service
	laudoController *controller.LaudoController
	logger          logger.Logger
}

// NewApp cria uma nova instância do aplicativo
func NewApp() (*App, error) {
	cfg := config.NewConfigFromEnv()
	log := logger.NewLogger()

	// Criar o repositório conforme o backend configurado
	var db *pgxpool.Pool
	var laudoRepo laudo.Repository

	switch cfg.Storage {
	case config.StorageArquivo:
		fileRepo := repository.NewFileLaudoRepository(cfg.FilePath)
		seedFileRepository(cfg, fileRepo, log)
		laudoRepo = fileRepo
	case config.StoragePostgres:
		pool, err := database.NewPostgresDB()
		if err != nil {
			return nil, err
		}
		db = pool
		laudoRepo = repository.NewPostgresLaudoRepository(pool)
	default:
		return nil, fmt.Errorf("backend de armazenamento desconhecido: %s", cfg.Storage)
	}

	// Cache de consultas opcional
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		laudoRepo = repository.NewCachedLaudoRepository(laudoRepo, client, log)
		log.Info("cache de consultas habilitado", "addr", cfg.RedisAddr)
	}

	// Criar serviço e controller
	numerador := laudo.NewNumerador(cfg.Prefixo, cfg.NumDigitos)
	laudoService := laudo.NewService(laudoRepo, numerador, cfg.ValidadeDias, log)
	laudoController := controller.NewLaudoController(laudoService, cfg.DateLayout, log)

	// Configurar router
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(middleware.RequestID())

	return &App{
		router:          router,
		config:          cfg,
		db:              db,
		laudoRepository: laudoRepo,
		laudoService:    laudoService,
		laudoController: laudoController,
		logger:          log,
	}, nil
}

// seedFileRepository aplica a carga inicial remota quando o documento local
// ainda não existe. Falha na origem remota não derruba o serviço: o
// armazenamento começa vazio e o problema fica registrado no log.
func seedFileRepository(cfg *config.Config, fileRepo *repository.FileLaudoRepository, log logger.Logger) {
	if cfg.SeedURL == "" || !fileRepo.Vazio() {
		return
	}

	laudos, err := seed.NewFetcher().Fetch(cfg.SeedURL)
	if err != nil {
		log.Warn("carga inicial remota indisponível, iniciando com armazenamento vazio", "url", cfg.SeedURL, "error", err)
		return
	}

	if err := fileRepo.Importar(context.Background(), laudos); err != nil {
		log.Error("falha ao gravar carga inicial", "error", err)
		return
	}

	log.Info("carga inicial aplicada", "total", len(laudos))
}

// SetupRoutes configura as rotas da aplicação
func (a *App) SetupRoutes(basePath string) {
	api := a.router.Group(basePath)

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	// Documentação da API
	a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Rotas para laudos
	route.SetupLaudoRoutes(api, a.config, a.laudoController)
}

// Start inicia o servidor HTTP
func (a *App) Start() error {
	a.SetupRoutes("/api/v1")
	a.logger.Info("iniciando servidor", "port", a.config.Port)
	return a.router.Run(":" + a.config.Port)
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
