package daemon

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/authsrv/oauth2-userinfo/internal/config"
	"github.com/authsrv/oauth2-userinfo/internal/httphandler"
	"github.com/authsrv/oauth2-userinfo/internal/httpserver"
	"github.com/authsrv/oauth2-userinfo/internal/oauth2"
	"github.com/authsrv/oauth2-userinfo/internal/oauth2/userinfo"
	"github.com/authsrv/oauth2-userinfo/internal/utils"
)

// Execute runs the main program logic of oauth2-userinfo.
//
//nolint:cyclop
func Execute(args []string, logWriter io.Writer, version string) int {
	conf, err := configure(args, logWriter)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		if errors.Is(err, config.ErrVersion) {
			printVersion(logWriter, version)

			return 0
		}

		_, _ = fmt.Fprintln(logWriter, err.Error())

		return 1
	}

	logger, err := configureLogger(conf, logWriter)
	if err != nil {
		_, _ = fmt.Fprintln(logWriter, fmt.Errorf("error configure logging: %w", err).Error())

		return 1
	}

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	logger.LogAttrs(ctx, slog.LevelDebug, "config", slog.String("config", conf.String()))

	httpClient := &http.Client{Transport: utils.NewUserAgentTransport(http.DefaultTransport)}

	nameAttributes, registrations, err := oauth2.DiscoverRegistrations(ctx, logger, conf, httpClient)
	if err != nil {
		logger.Error(err.Error())

		return 1
	}

	registry, err := oauth2.NewRegistry(nameAttributes)
	if err != nil {
		logger.Error(err.Error())

		return 1
	}

	userService, err := oauth2.NewUserService(logger, registry, userinfo.NewRetriever(httpClient))
	if err != nil {
		logger.Error(err.Error())

		return 1
	}

	nameResolvers := make(map[string]*oauth2.NameResolver)

	for _, provider := range conf.OAuth2.Providers {
		if provider.UsernameCEL == "" {
			continue
		}

		nameResolvers[provider.Name], err = oauth2.NewNameResolver(provider.UsernameCEL)
		if err != nil {
			logger.Error(fmt.Errorf("provider %s: %w", provider.Name, err).Error())

			return 1
		}
	}

	httpHandler := httphandler.New(logger, conf, userService, registrations, nameResolvers)

	wg := sync.WaitGroup{}
	defer wg.Wait()

	if conf.Debug.Pprof {
		wg.Add(1)

		go func() {
			defer wg.Done()

			cancel(setupDebugListener(ctx, logger, conf))
		}()
	}

	server := httpserver.NewHTTPServer(httpserver.ServerNameDefault, logger, conf.HTTP, httpHandler)

	wg.Add(1)

	go func() {
		defer wg.Done()

		if err := server.Listen(ctx); err != nil {
			cancel(fmt.Errorf("error http listener: %w", err))

			return
		}

		cancel(nil)
	}()

	termCh := make(chan os.Signal, 1)
	signal.Notify(termCh, os.Interrupt, syscall.SIGHUP, syscall.SIGTERM)

	logger.LogAttrs(ctx, slog.LevelInfo,
		"oauth2-userinfo started with base url "+conf.HTTP.BaseURL.String(),
	)

	for {
		select {
		case <-ctx.Done():
			err = context.Cause(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error(err.Error())

				return 1
			}

			return 0
		case sig := <-termCh:
			logger.Info("receiving signal: " + sig.String())

			switch sig {
			case syscall.SIGHUP:
				if err = server.Reload(); err != nil {
					cancel(fmt.Errorf("error reloading http server: %w", err))
				}
			default:
				cancel(nil)
			}
		}
	}
}

func setupDebugListener(ctx context.Context, logger *slog.Logger, conf config.Config) error {
	mux := http.NewServeMux()
	mux.Handle("GET /", http.RedirectHandler("/debug/pprof/", http.StatusTemporaryRedirect))
	mux.HandleFunc("GET /debug/pprof/", pprof.Index)
	mux.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)

	server := httpserver.NewHTTPServer(httpserver.ServerNameDebug, logger, config.HTTP{Listen: conf.Debug.Listen}, mux)

	err := server.Listen(ctx)
	if err != nil {
		return fmt.Errorf("error debug http listener: %w", err)
	}

	return nil
}

// configure parses the command line arguments and loads the configuration.
func configure(args []string, logWriter io.Writer) (config.Config, error) {
	conf, err := config.New(args, logWriter)
	if err != nil {
		return config.Config{}, fmt.Errorf("configuration parse error: %w", err)
	}

	if err = config.Validate(conf); err != nil {
		return config.Config{}, fmt.Errorf("configuration validation error: %w", err)
	}

	return conf, nil
}

func configureLogger(conf config.Config, writer io.Writer) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{
		AddSource: false,
		Level:     conf.Log.Level,
	}

	switch conf.Log.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(writer, opts)), nil
	case "console":
		return slog.New(slog.NewTextHandler(writer, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format: %s", conf.Log.Format)
	}
}

func printVersion(writer io.Writer, version string) {
	_, _ = fmt.Fprintf(writer, "version: %s\ngo: %s\n", version, runtime.Version())
}
