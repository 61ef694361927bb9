package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "busfleet/internal/config"
	intdb "busfleet/internal/db"
	router "busfleet/internal/http"
	"busfleet/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	env := intconfig.LoadEnv()
	logger.Setup(env.LogFile, env.LogLevel)
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	conn := intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := intdb.EnsureSchema(ctx, conn); err != nil {
		cancel()
		logrus.WithError(err).Fatal("schema bootstrap failed")
	}
	cancel()

	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logrus.Infof("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Fatal("server shutdown failed")
	}

	logrus.Info("server stopped")
}
