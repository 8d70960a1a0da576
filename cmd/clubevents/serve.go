package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clubevents/config"
	_ "clubevents/docs"
	"clubevents/internal/adapters/auth"
	"clubevents/internal/adapters/email"
	delivery "clubevents/internal/delivery/http"
	"clubevents/internal/delivery/http/controllers"
	"clubevents/internal/delivery/http/middleware"
	"clubevents/internal/domain"
	"clubevents/internal/metrics"
	"clubevents/internal/repository/memory"
	"clubevents/internal/services"

	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}
	logger := config.NewLogger(cfg, os.Stdout)
	slog.SetDefault(logger)
	if cfg.InsecureSecret {
		logger.Warn("JWT_SECRET not set, using the insecure development secret")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	directory, err := loadDirectory(ctx, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("first identifiers", "matriculas", directory.Identifiers(10))

	m := metrics.New()
	m.SetRosterMembers(directory.Len())

	issuer, err := auth.NewJWTIssuer(cfg.JWTSecret, domain.CredentialTTL)
	if err != nil {
		return fmt.Errorf("token issuer: %w", err)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	authService := services.NewAuthService(directory, issuer)
	eventService := services.NewEventService(memory.NewEventRegistry(), directory, emailService, logger)

	router := delivery.NewRouter(delivery.RouterDeps{
		Logger:             logger,
		Metrics:            m,
		Authenticator:      middleware.NewAuthenticator(services.NewGuard(issuer), logger, m),
		PrivilegedRoles:    domain.NewRoleSet(cfg.PrivilegedRoles...),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Auth:               controllers.NewAuthController(logger, authService, m, cfg.IsProduction()),
		Members:            controllers.NewMemberController(logger, authService, directory),
		Events:             controllers.NewEventController(logger, eventService, m),
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
