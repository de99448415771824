package di

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"propalyze/api"
	"propalyze/api/propalyze"
	"propalyze/config"
	"propalyze/dao/redis"
	"propalyze/db"
	"propalyze/logger"
	"propalyze/server"
	"propalyze/server/handlers"
	"propalyze/server/views"
	services "propalyze/service"
)

// Container holds all application dependencies.
type Container struct {
	Config                   *config.Config
	Logger                   *slog.Logger
	RedisClient              db.RedisClient
	RedisPropertyAnalysisDao *redis.RedisPropertyAnalysisDAO
	PropalyzeAPI             propalyze.PropalyzeAPI
	SearchService            *services.SearchService
	AnalysisService          *services.AnalysisService
	SessionStore             *services.SessionStore
	Renderer                 *views.Renderer
	HomeHandler              *handlers.HomeHandler
	SearchHandler            *handlers.SearchHandler
	AnalysisHandler          *handlers.AnalysisHandler
	HealthHandler            *handlers.HealthHandler
	MuxRouter                *mux.Router
	Router                   *server.Router
	PropalyzeHttpServer      *server.PropalyzeHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, l *slog.Logger) (*Container, error) {
	log := logger.Component(l, "Container")
	log.Info("Initializing container", "env", cfg.Env)

	// Initialize the cache client: Redis when an address is configured, in-memory otherwise
	var redisClient db.RedisClient
	if cfg.RedisAddress == "" {
		log.Info("No Redis address configured, using in-memory cache")
		redisClient = db.NewMockRedisClient()
	} else {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		client, err := db.NewRedisCacheClient(ctx, redisInternalClient, logger.Component(l, "RedisCacheClient"))
		if err != nil {
			redisInternalClient.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		redisClient = client
	}

	// Initialize Redis property analysis DAO
	analysisDao := redis.NewRedisPropertyAnalysisDAO(redisClient, cfg.AnalysisCacheTTL, logger.Component(l, "RedisPropertyAnalysisDAO"))

	// Initialize the Propalyze API - fixtures outside prod
	var propalyzeAPI propalyze.PropalyzeAPI
	if cfg.Env != "prod" {
		log.Info("Using mock Propalyze API")
		propalyzeAPI = propalyze.NewPropalyzeApiClientMock()
	} else {
		log.Info("Using Propalyze API", "base_url", cfg.APIBaseURL)
		httpClient := api.NewHTTPClient(cfg.APIBaseURL, cfg.APITimeout)
		propalyzeAPI = propalyze.NewPropalyzeApiClient(httpClient)
	}

	// Initialize service layer
	searchService, err := services.NewSearchService(propalyzeAPI, l)
	if err != nil {
		return nil, err
	}
	analysisService, err := services.NewAnalysisService(propalyzeAPI, analysisDao, l)
	if err != nil {
		return nil, err
	}
	sessionStore := services.NewSessionStore(searchService, cfg.SearchSessionTTL, l)

	renderer, err := views.NewRenderer()
	if err != nil {
		return nil, err
	}

	// Initialize handlers
	homeHandler := handlers.NewHomeHandler(renderer, l)
	searchHandler := handlers.NewSearchHandler(sessionStore, renderer, cfg.SearchSessionTTL, l)
	analysisHandler := handlers.NewAnalysisHandler(analysisService, renderer, cfg.DefaultPropertyID, l)
	healthHandler := handlers.NewHealthHandler()

	apiProxy, err := server.NewAPIProxy(cfg.APIBaseURL, l)
	if err != nil {
		return nil, err
	}

	// Initialize mux router
	muxRouter := mux.NewRouter()

	// Initialize router
	router := server.NewRouter(homeHandler, searchHandler, analysisHandler, healthHandler, apiProxy, muxRouter)

	// initialize propalyze server
	httpServer := server.NewPropalyzeHttpServer(router, muxRouter, cfg.ServerAddress, cfg.ShutdownTimeout, cfg.AllowedOrigins, l)

	return &Container{
		Config:                   cfg,
		Logger:                   l,
		RedisClient:              redisClient,
		RedisPropertyAnalysisDao: analysisDao,
		PropalyzeAPI:             propalyzeAPI,
		SearchService:            searchService,
		AnalysisService:          analysisService,
		SessionStore:             sessionStore,
		Renderer:                 renderer,
		HomeHandler:              homeHandler,
		SearchHandler:            searchHandler,
		AnalysisHandler:          analysisHandler,
		HealthHandler:            healthHandler,
		MuxRouter:                muxRouter,
		Router:                   router,
		PropalyzeHttpServer:      httpServer,
	}, nil
}

// Close releases the cache connection. Call it once the server has stopped.
func (c *Container) Close() error {
	if err := c.RedisClient.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}
	c.Logger.Info("Cache client closed")
	return nil
}
