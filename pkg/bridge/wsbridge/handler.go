package wsbridge

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-drift/animatedborder/pkg/platform"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

// Handler upgrades renderer connections and installs each one as the
// platform bridge. The platform has a single bridge, so a new renderer
// replaces the previous one.
type Handler struct {
	// Upgrader upgrades the HTTP request. The zero value only accepts
	// same-origin requests.
	Upgrader websocket.Upgrader

	// OnConnect runs once the bridge is installed, alongside the connection.
	// It typically mounts controls. Its context ends when the renderer
	// disconnects; a returned error closes the connection.
	OnConnect func(ctx context.Context, c *Conn) error

	// Logger receives connection records. Nil discards them.
	Logger *slog.Logger

	// Options are applied to every Conn.
	Options []Option

	mu      sync.Mutex
	current *Conn
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// ServeHTTP serves one renderer until it disconnects.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		h.logger().Warn("websocket upgrade failed", slog.String("remote", r.RemoteAddr), slog.Any("error", err))
		return
	}

	log := h.logger().With(slog.String("remote", r.RemoteAddr))
	conn := NewConn(ws, append([]Option{WithLogger(log)}, h.Options...)...)
	h.install(conn)
	defer h.uninstall(conn)
	log.Info("renderer connected")

	group, ctx := errgroup.WithContext(r.Context())
	group.Go(func() error {
		return conn.Run(ctx)
	})
	if h.OnConnect != nil {
		group.Go(func() error {
			if err := h.OnConnect(ctx, conn); err != nil {
				conn.Close()
				return err
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		log.Warn("renderer connection ended", slog.Any("error", err))
		return
	}
	log.Info("renderer disconnected")
}

// Current returns the connection installed as the platform bridge, or nil.
func (h *Handler) Current() *Conn {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

func (h *Handler) install(c *Conn) {
	h.mu.Lock()
	prev := h.current
	h.current = c
	h.mu.Unlock()
	if prev != nil {
		prev.Close()
	}
	platform.SetNativeBridge(c)
}

func (h *Handler) uninstall(c *Conn) {
	h.mu.Lock()
	last := h.current == c
	if last {
		h.current = nil
	}
	h.mu.Unlock()
	c.Close()
	if last {
		platform.SetNativeBridge(nil)
	}
}
