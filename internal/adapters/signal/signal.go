package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/dkeye/Relay/internal/app/orch"
	"github.com/dkeye/Relay/internal/config"
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrClosed       = errors.New("connection closed")
)

// SignalWSController is the connection gateway: it owns websocket
// connections and turns their frames into orchestrator calls.
type SignalWSController struct {
	Orch     *orch.Orchestrator
	cfg      *config.Config
	limiter  *RoomRateLimiter
	codec    core.JSONCodec
	validate *validator.Validate
	upgrader websocket.Upgrader
}

func NewSignalWSController(o *orch.Orchestrator, cfg *config.Config) *SignalWSController {
	return &SignalWSController{
		Orch:     o,
		cfg:      cfg,
		limiter:  NewRoomRateLimiter(cfg.RateLimit, cfg.RateInterval),
		validate: validator.New(),
		upgrader: websocket.Upgrader{CheckOrigin: originChecker(cfg.AllowedOrigins)},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(r *http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		_, ok := set[r.Header.Get("Origin")]
		return ok
	}
}

// WsSignalConn is the outbound side of one websocket: a bounded queue
// drained by writePump.
type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func newWsSignalConn(ws *websocket.Conn, buffer int) *WsSignalConn {
	return &WsSignalConn{conn: ws, send: make(chan core.Frame, buffer)}
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
}

// HandleSignal upgrades the request and runs the connection until either
// side gives up. OnDisconnect is reported exactly once, after both pumps exit.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	conn := domain.ConnID(uuid.NewString())
	client := c.GetString("client_token")
	logger := log.With().Str("module", "signal").Str("conn", string(conn)).Str("client", client).Logger()

	ws, err := ctl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error().Err(err).Msg("ws upgrade")
		return
	}
	logger.Info().Msg("new WS connection")

	sc := newWsSignalConn(ws, ctl.cfg.SendBuffer)
	ctx, cancel := context.WithCancel(ctx)
	ctl.Orch.Sessions.Bind(conn, client, sc, cancel)

	var wg conc.WaitGroup
	wg.Go(func() { ctl.writePump(ctx, conn, sc) })
	wg.Go(func() {
		defer cancel()
		ctl.readPump(ctx, conn, sc)
	})

	go func() {
		if r := wg.WaitAndRecover(); r != nil {
			logger.Error().Str("panic", r.String()).Msg("pump panicked")
		}
		cancel()
		ctl.Orch.OnDisconnect(conn)
		ctl.limiter.Forget(conn)
		sc.Close()
		logger.Info().Msg("connection closed")
	}()
}

func (ctl *SignalWSController) sendJSON(c core.SignalConnection, v any) {
	b, err := ctl.codec.Encode(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	if err := c.TrySend(b); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("reply dropped")
	}
}

type errorReply struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Error string `json:"error"`
}

func (ctl *SignalWSController) sendError(c core.SignalConnection, event, msg string) {
	ctl.sendJSON(c, errorReply{Type: "error", Event: event, Error: msg})
}
