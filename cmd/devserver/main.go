package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/zapdesk/zapdesk/internal/devserver"
	"github.com/zapdesk/zapdesk/internal/logging"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	secret := flag.String("secret", "zapdesk-dev-secret", "token signing secret")
	flag.Parse()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	srv := devserver.NewServer(devserver.NewStore(clockwork.NewRealClock()), []byte(*secret), logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(shutdownCtx, "shutdown error", "error", err)
		}
	}()

	if err := srv.Start(*addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error(context.Background(), "server stopped", "error", err)
		os.Exit(1)
	}
}
