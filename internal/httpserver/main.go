package httpserver

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/authsrv/oauth2-userinfo/internal/config"
)

type ServerName string

const (
	ServerNameDefault ServerName = "default"
	ServerNameDebug   ServerName = "debug"
)

type Server struct {
	name   ServerName
	conf   config.HTTP
	logger *slog.Logger
	server *http.Server

	tlsCertificate   *tls.Certificate
	tlsCertificateMu sync.RWMutex
}

func NewHTTPServer(name ServerName, logger *slog.Logger, conf config.HTTP, handler http.Handler) *Server {
	return &Server{
		name:   name,
		conf:   conf,
		logger: logger,
		server: &http.Server{
			Addr:              conf.Listen,
			ReadHeaderTimeout: 3 * time.Second,
			ReadTimeout:       3 * time.Second,
			WriteTimeout:      3 * time.Second,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
			Handler:           handler,
		},
		tlsCertificateMu: sync.RWMutex{},
	}
}

// Listen starts the listener and blocks until the context is canceled or
// the listener fails. On context cancellation the server is shut down
// gracefully.
func (s *Server) Listen(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		var err error

		if s.conf.TLS {
			s.logger.Info(fmt.Sprintf(
				"start HTTPS server listener %s on %s", s.name, s.conf.Listen,
			))

			if err = s.Reload(); err != nil {
				errCh <- err

				return
			}

			s.server.TLSConfig = &tls.Config{
				GetCertificate: s.GetCertificateFunc(),
			}

			err = s.server.ListenAndServeTLS("", "")
		} else {
			s.logger.Info(fmt.Sprintf(
				"start HTTP server listener %s on %s", s.name, s.conf.Listen,
			))

			err = s.server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("ListenAndServe: %w", err)

			return
		}

		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.Shutdown()
	}
}

func (s *Server) GetCertificateFunc() func(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	return func(clientHello *tls.ClientHelloInfo) (*tls.Certificate, error) {
		s.tlsCertificateMu.RLock()
		defer s.tlsCertificateMu.RUnlock()

		return s.tlsCertificate, nil
	}
}

// Reload reloads the TLS certificate from disk.
func (s *Server) Reload() error {
	if !s.conf.TLS {
		return nil
	}

	certs, err := tls.LoadX509KeyPair(s.conf.CertFile, s.conf.KeyFile)
	if err != nil {
		return fmt.Errorf("tls.LoadX509KeyPair: %w", err)
	}

	s.tlsCertificateMu.Lock()

	if s.tlsCertificate != nil {
		s.logger.Info("reloading TLS certificate")
	}

	s.tlsCertificate = &certs

	s.tlsCertificateMu.Unlock()

	return nil
}

func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx) //nolint:wrapcheck
}
