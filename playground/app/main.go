// A small HTTP application wired entirely through the container: the config
// struct, the logger and the HTTP server all resolve as components.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/wirebox/wirebox"
	"github.com/wirebox/wirebox/config"
	"github.com/wirebox/wirebox/runner"
)

type AppConfig struct {
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`
}

type Greeter struct{}

func NewGreeter() *Greeter {
	return &Greeter{}
}

func (g *Greeter) Greet(name string) string {
	if name == "" {
		name = "world"
	}
	return "hello, " + name
}

type Server struct {
	cfg     *AppConfig
	logger  zerolog.Logger
	greeter *Greeter
}

func NewServer(cfg *AppConfig, logger zerolog.Logger, greeter *Greeter) *Server {
	return &Server{cfg: cfg, logger: logger, greeter: greeter}
}

func (s *Server) Run(ctx context.Context) error {
	router := chi.NewRouter()
	router.Get("/greet/{name}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintln(w, s.greeter.Greet(chi.URLParam(r, "name")))
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Port),
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info().Int("port", s.cfg.Port).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

var (
	configID = wirebox.CanonicalName(wirebox.TypeOf[AppConfig]())
	loggerID = wirebox.CanonicalName(wirebox.TypeOf[zerolog.Logger]())
	serverID = wirebox.CanonicalName(wirebox.TypeOf[Server]())
)

func newRegistry() *wirebox.TypeRegistry {
	reg := wirebox.NewTypeRegistry()
	wirebox.MustRegisterType[*Greeter](reg, NewGreeter)
	wirebox.MustRegisterType[*Server](reg, NewServer, wirebox.WithParamNames("cfg", "logger", "greeter"))
	return reg
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Logger()

	c := wirebox.MustNew(
		[]wirebox.Def{
			config.Definition[AppConfig](configID, config.WithEnvPrefix("APP")),
			wirebox.Define(loggerID, func() any { return logger }),
		},
		wirebox.WithIntrospector(newRegistry()),
		wirebox.WithLogger(logger),
	)
	defer func() { _ = c.Close() }()

	fmt.Println(c.Explain(serverID))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runnables, err := runner.Collect(c, serverID)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to wire application")
	}
	if err := runner.RunAll(ctx, runnables...); err != nil {
		logger.Fatal().Err(err).Msg("application failed")
	}
}
