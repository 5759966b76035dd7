package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-drift/animatedborder/pkg/border"
	"github.com/go-drift/animatedborder/pkg/bridge/wsbridge"
	"github.com/go-drift/animatedborder/pkg/control"
	"github.com/go-drift/animatedborder/pkg/platform"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultAddr = ":8080"

func init() {
	RegisterCommand(&Command{
		Name:  "serve",
		Short: "Serve a border to a renderer over a websocket",
		Long: `Build the border described by a config file and serve it to a renderer.

The renderer connects to /ws. On connect the border is mounted; a renderer
that reconnects or reports it is ready again receives the full state.
Animation cycle events are logged. Session metrics are served on /metrics.

Flags:
  --addr ADDR   Listen address (default: :8080)`,
		Usage: "borderctl serve [file] [--addr ADDR]",
		Run:   runServe,
	})
}

func runServe(args []string) error {
	flags, positional, err := splitFlags(args, "--addr")
	if err != nil {
		return err
	}
	addr := defaultAddr
	if v, ok := flags["--addr"]; ok && v != "" {
		addr = v
	}

	cfg, source, err := loadConfig(positional)
	if err != nil {
		return err
	}
	b, err := cfg.Build(border.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	b.OnAnimationEnd(func(e control.Event) {
		logger.Info("animation cycle finished", slog.String("id", e.Target))
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, session, err := newServer(ctx, addr, b)
	if err != nil {
		return err
	}
	defer session.Close()

	errc := make(chan error, 1)
	go func() {
		logger.Info("serving border",
			slog.String("addr", addr),
			slog.String("config", source),
			slog.String("session", session.ID()),
		)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// owner runs every control mutation on one goroutine. Renderer events,
// resyncs and mounts all go through it.
type owner struct {
	work chan func()
	done <-chan struct{}
}

func newOwner(ctx context.Context) *owner {
	o := &owner{work: make(chan func(), 16), done: ctx.Done()}
	go o.run()
	return o
}

func (o *owner) run() {
	for {
		select {
		case <-o.done:
			return
		case fn := <-o.work:
			fn()
		}
	}
}

// post queues fn. It is dropped once the owner has stopped.
func (o *owner) post(fn func()) {
	select {
	case o.work <- fn:
	case <-o.done:
	}
}

// do runs fn on the owner and waits for its result.
func (o *owner) do(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	select {
	case o.work <- func() { result <- fn() }:
	case <-o.done:
		return platform.ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-result:
		return err
	case <-o.done:
		return platform.ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// newServer wires a session for b to a websocket endpoint and a metrics
// endpoint. The control is only touched by an owner goroutine that lives
// until ctx ends.
func newServer(ctx context.Context, addr string, b control.Control) (*http.Server, *platform.Session, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := platform.NewMetrics(reg)
	if err != nil {
		return nil, nil, err
	}

	o := newOwner(ctx)
	platform.RegisterDispatch(o.post)

	session := platform.NewSession(
		platform.WithSessionLogger(logger),
		platform.WithMetrics(metrics),
	)

	ws := &wsbridge.Handler{
		Logger: logger,
		OnConnect: func(ctx context.Context, c *wsbridge.Conn) error {
			return o.do(ctx, func() error {
				err := session.Mount(ctx, b)
				if stderrors.Is(err, platform.ErrAlreadyMounted) {
					return session.Resync(ctx)
				}
				return err
			})
		},
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", ws)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv, session, nil
}
