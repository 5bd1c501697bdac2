package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/nkiryanov/bankdemo/internal/db"
	"github.com/nkiryanov/bankdemo/internal/handlers"
	"github.com/nkiryanov/bankdemo/internal/logger"
	"github.com/nkiryanov/bankdemo/internal/repository"
	"github.com/nkiryanov/bankdemo/internal/repository/memory"
	"github.com/nkiryanov/bankdemo/internal/repository/postgres"
	"github.com/nkiryanov/bankdemo/internal/service/account"
	"github.com/nkiryanov/bankdemo/internal/service/auth"
	"github.com/nkiryanov/bankdemo/internal/service/auth/tokenmanager"
	"github.com/nkiryanov/bankdemo/internal/service/document"
)

type ServerApp struct {
	ListenAddr string
	Handler    http.Handler
	Logger     logger.Logger

	// Release resources (db pool) after server stopped
	Close func()
}

func NewServerApp(ctx context.Context, c *Config) (*ServerApp, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	// Initialize logger
	l, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	storage, closeStorage, err := newStorage(ctx, c)
	if err != nil {
		return nil, err
	}

	// Initialize services
	tokenManager, err := tokenmanager.New(tokenmanager.Config{SecretKey: c.SecretKey, AccessTTL: c.TokenTTL})
	if err != nil {
		closeStorage()
		return nil, fmt.Errorf("error while creating token manager. Err: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router, err := handlers.NewRouter(handlers.Services{
		Auth:     auth.NewAuthService(tokenManager),
		Account:  account.NewService(storage),
		Document: document.NewService(storage),
		Storage:  storage,
	}, reg, l)
	if err != nil {
		closeStorage()
		return nil, fmt.Errorf("error while creating router. Err: %w", err)
	}

	l.Info("App initialized", "storage", c.Storage, "token_ttl", c.TokenTTL.String())

	return &ServerApp{
		ListenAddr: c.ListenAddr,
		Handler:    router,
		Logger:     l,
		Close:      closeStorage,
	}, nil
}

func newStorage(ctx context.Context, c *Config) (repository.Storage, func(), error) {
	if c.Storage == StorageMemory {
		return memory.New(), func() {}, nil
	}

	// Connect to the database and run migrations
	pool, err := db.ConnectAndMigrate(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("error while connecting to db. Err: %w", err)
	}

	return postgres.NewStorage(pool), pool.Close, nil
}

// Run starts http server and closes gracefully on context cancellation
func (s *ServerApp) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.ListenAddr,
		Handler:           s.Handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); errors.Is(err, context.DeadlineExceeded) {
			s.Logger.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
		}
		s.Logger.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close gracefully connections
	s.Logger.Info("Starting server", "address", s.ListenAddr)
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	if s.Close != nil {
		s.Close()
	}

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
