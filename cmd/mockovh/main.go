// Package main implements a standalone mock OVH API server for local
// development and end-to-end testing of ovhctl.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sipico/ovh-api-client/internal/testutil/mockovh"
)

// getPort returns the port from the PORT environment variable or the default.
func getPort() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	return port
}

// credentialsFromEnv reads the optional credential tuple used for request
// signature verification. All three variables must be set to enable it.
func credentialsFromEnv() (mockovh.Credentials, bool) {
	creds := mockovh.Credentials{
		ApplicationKey:    os.Getenv("OVH_APPLICATION_KEY"),
		ApplicationSecret: os.Getenv("OVH_APPLICATION_SECRET"),
		ConsumerKey:       os.Getenv("OVH_CONSUMER_KEY"),
	}
	ok := creds.ApplicationKey != "" && creds.ApplicationSecret != "" && creds.ConsumerKey != ""
	return creds, ok
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	mock := mockovh.New()
	defer mock.Close()

	if creds, ok := credentialsFromEnv(); ok {
		mock.SetCredentials(creds)
		logger.Info("signature verification enabled", "application_key", creds.ApplicationKey)
	}

	addr := ":" + getPort()
	server := &http.Server{
		Addr:    addr,
		Handler: mock.Handler(),
	}

	done := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("shutting down mockovh server")
		//nolint:errcheck
		server.Close()
		close(done)
	}()

	logger.Info("mockovh server starting", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
	<-done
}
