package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	intconfig "busadmin/internal/config"
	router "busadmin/internal/http"
	"busadmin/internal/repositories"
	"busadmin/internal/services"
	"busadmin/internal/utils"
)

func main() {
	env, err := intconfig.LoadEnv()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(utils.NewLogger(os.Stdout, env.LogLevel))

	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db, err := intconfig.ConnectDB(env.DatabaseDSN)
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer intconfig.CloseDB()

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), time.Minute)
	if env.RunMigrations {
		if err := intconfig.Migrate(bootCtx, db); err != nil {
			cancelBoot()
			slog.Error("failed to run migrations", "error", err)
			return
		}
	}
	auth := services.AuthService{Users: repositories.UserRepository{DB: db}, RequestID: "bootstrap"}
	if err := auth.EnsureAdmin(bootCtx, env.AdminEmail, env.AdminPassword); err != nil {
		slog.Warn("failed to create initial admin", "error", err)
	}
	cancelBoot()

	r := router.NewRouter(env, db)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown failed", "error", err)
		return
	}
	slog.Info("server stopped")
}
