package main

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/paperstack-io/paperstack/internal/config"
	"github.com/paperstack-io/paperstack/internal/domain/document"
	"github.com/paperstack-io/paperstack/internal/domain/envelope"
	"github.com/paperstack-io/paperstack/internal/domain/event"
	"github.com/paperstack-io/paperstack/internal/domain/insights"
	"github.com/paperstack-io/paperstack/internal/sqlite"
	"github.com/paperstack-io/paperstack/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	eventRepo := sqlite.NewEventRepository(db)
	packRunRepo := sqlite.NewPackRunRepository(db)
	documentRepo := sqlite.NewDocumentRepository(db)
	shareLinkRepo := sqlite.NewShareLinkRepository(db)
	envelopeRepo := sqlite.NewEnvelopeRepository(db)

	eventSvc := event.NewService(eventRepo, logger)
	documentSvc := document.NewService(documentRepo, shareLinkRepo, eventSvc, logger)
	envelopeSvc := envelope.NewService(envelopeRepo, eventSvc, logger)

	assembler := insights.NewAssembler(
		insights.NewAccountsAggregator(packRunRepo, logger),
		insights.NewContractsAggregator(eventRepo, logger),
		insights.NewDecksAggregator(eventRepo, documentRepo, logger),
		logger,
	)

	resolver := &apiKeyResolver{db: db}
	router := transport.NewServer(transport.Services{
		Events:    eventSvc,
		Insights:  assembler,
		Envelopes: envelopeSvc,
		Shares:    documentSvc,
	}, transport.AuthMiddleware(resolver), logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type apiKeyResolver struct {
	db *sqlite.DB
}

func (r *apiKeyResolver) ResolveIdentity(ctx context.Context, token string) (transport.Identity, error) {
	hash := hashToken(token)
	var orgID string
	var userID sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT org_id, user_id FROM api_keys WHERE key_hash = ?`, hash).Scan(&orgID, &userID)
	if err != nil || orgID == "" {
		return transport.Identity{}, fmt.Errorf("unauthorized: invalid token")
	}
	return transport.Identity{OrgID: orgID, UserID: userID.String}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
