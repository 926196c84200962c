package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"dungeonhub/internal/auth"
	"dungeonhub/internal/blobstore"
	"dungeonhub/internal/community"
	"dungeonhub/internal/forge"
	"dungeonhub/internal/playerdex"
	"dungeonhub/internal/search"
	"dungeonhub/internal/syncer"
	"dungeonhub/internal/upstream"
	"dungeonhub/pkg/database"
	"dungeonhub/pkg/utils"
)

func main() {
	configPath := flag.String("config", "dungeonhub.toml", "path to config file")
	flag.Parse()

	cfg, err := utils.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	store, err := openBlobStore(cfg)
	if err != nil {
		log.Fatalf("blob store init failed: %v", err)
	}

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	// Start the feed first so binding errors show up early.
	hub := syncer.NewHub()
	router.GET("/ws", syncer.FeedWSHandler(hub))
	tcpSrv := syncer.NewFeedServer(cfg.Server.TCPAddr, hub)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbCfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"db_error":    err.Error(),
				"tcp_clients": stats.TCPClients,
				"ws_clients":  stats.WSClients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"db":          "ok",
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	router.GET("/debug", func(c *gin.Context) {
		stats := hub.Stats()
		c.JSON(http.StatusOK, gin.H{
			"db":          dbCfg.Path,
			"storage":     cfg.Storage.Backend,
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	upstreamClient := upstream.NewClient(cfg.Upstream.ActionURL, cfg.Upstream.AuthURL)

	// Community dex (public)
	communitySvc := community.NewService(store)
	community.NewHandler(communitySvc).RegisterRoutes(router.Group("/community"))

	// Resource search (public)
	searchHandler := search.NewHandler(communitySvc)
	router.GET("/resources", searchHandler.Resources)

	// Forge recipes (public)
	forgeHandler := forge.NewHandler(forge.NewCatalog(cfg.Forge.DataPath))
	router.GET("/forge/recipes", forgeHandler.Recipes)

	// Auth
	tokenSvc := auth.TokenService{
		Secret:   []byte(cfg.Auth.JWTSecret),
		Issuer:   cfg.Auth.JWTIssuer,
		Duration: cfg.JWTDuration(),
	}
	auth.NewHandler(upstreamClient, tokenSvc).RegisterRoutes(router.Group("/auth"))

	// Protected routes
	protected := router.Group("/")
	protected.Use(auth.AuthMiddleware(tokenSvc))

	protected.GET("/users/me", func(c *gin.Context) {
		claims := auth.MustGetClaims(c)
		c.JSON(http.StatusOK, gin.H{"account": claims.Account})
	})

	dexRepo := playerdex.NewRepo(db)
	dexHandler := playerdex.NewHandler(dexRepo)
	protected.GET("/users/me/dex", dexHandler.Dex)
	protected.GET("/users/me/discoveries", dexHandler.Discoveries)

	pipeline := syncer.NewPipeline(upstreamClient, communitySvc, cfg.RequestDelay())
	limiter := syncer.NewLimiter(syncer.NewStateRepo(db), cfg.SyncInterval())
	syncHandler := syncer.NewHandler(pipeline, limiter, hub, dexRepo)
	protected.POST("/sync/run", syncHandler.Run)
	protected.GET("/sync/status", syncHandler.Status)

	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	errCh := make(chan error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := tcpSrv.Run(); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("HTTP API server listening on %s", cfg.Server.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	if err := tcpSrv.Close(); err != nil {
		log.Printf("tcp shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("servers stopped")
}

func openBlobStore(cfg *utils.Config) (blobstore.Store, error) {
	if cfg.Storage.Backend == "s3" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return blobstore.NewS3Store(ctx, blobstore.S3Options{
			Key:       cfg.Storage.S3.Key,
			Secret:    cfg.Storage.S3.Secret,
			Region:    cfg.Storage.S3.Region,
			Bucket:    cfg.Storage.S3.Bucket,
			Endpoint:  cfg.Storage.S3.Endpoint,
			ObjectKey: cfg.Storage.S3.ObjectKey,
		})
	}
	return blobstore.NewFileStore(cfg.Storage.Path), nil
}
