package listener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/pixil98/go-log"
	"github.com/sirupsen/logrus"

	"github.com/pixil98/go-conquest/internal/game"
)

// ConnectionHandler runs a client connection to completion: register, read
// commands, clean up on disconnect.
type ConnectionHandler interface {
	HandleConnection(ctx context.Context, sessionID string, t Transport)
}

// WebsocketListener serves the websocket endpoint clients play over, plus
// the small HTTP surface for creating and querying sessions.
type WebsocketListener struct {
	port     uint16
	handler  ConnectionHandler
	sessions *game.Registry

	wg       sync.WaitGroup
	logger   logrus.FieldLogger
	upgrader websocket.Upgrader
}

func NewWebsocketListener(port uint16, handler ConnectionHandler, sessions *game.Registry) *WebsocketListener {
	return &WebsocketListener{
		port:     port,
		handler:  handler,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			// Browser clients connect from wherever the static assets are
			// hosted; origin enforcement belongs on the reverse proxy.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (l *WebsocketListener) Start(ctx context.Context) error {
	l.logger = log.GetLogger(ctx)

	// Cancelable context shared by all connections so shutdown stops them
	// together.
	connCtx, cancelConns := context.WithCancel(context.Background())
	defer cancelConns()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/games", l.handleCreate)
	mux.HandleFunc("GET /api/games/{id}", l.handleInfo)
	mux.HandleFunc("GET /ws/{id}", func(w http.ResponseWriter, r *http.Request) {
		l.handleSocket(connCtx, w, r)
	})

	svr := &http.Server{
		Addr:    fmt.Sprintf(":%d", l.port),
		Handler: mux,
	}

	// done signals that Start is returning (either success or failure)
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			_ = svr.Shutdown(context.Background())
			cancelConns()
		case <-done:
		}
	}()

	l.logger.Infof("serving websocket and api on port %d", l.port)

	err := svr.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("port %d is already in use (another server running?)", l.port)
		}
		return fmt.Errorf("serving on port %d: %w", l.port, err)
	}

	l.wg.Wait()
	return nil
}

func (l *WebsocketListener) handleSocket(connCtx context.Context, w http.ResponseWriter, r *http.Request) {
	conn, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.logger.Errorf("upgrading websocket: %s", err)
		return
	}

	l.wg.Add(1)
	defer l.wg.Done()

	t := newWsTransport(conn)

	// Close the transport on shutdown so the handler's read loop unblocks.
	handlerDone := make(chan struct{})
	defer close(handlerDone)
	go func() {
		select {
		case <-connCtx.Done():
			_ = t.Close()
		case <-handlerDone:
		}
	}()

	// Use the shared context so all connections are canceled together
	ctx := log.SetLogger(connCtx, l.logger)

	l.handler.HandleConnection(ctx, r.PathValue("id"), t)
}

func (l *WebsocketListener) handleCreate(w http.ResponseWriter, r *http.Request) {
	maxPlayers := game.DefaultMaxPlayers
	if raw := r.URL.Query().Get("max_players"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 2 {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid max_players"})
			return
		}
		maxPlayers = n
	}

	id := l.sessions.Create(maxPlayers)
	writeJSON(w, http.StatusOK, map[string]string{"game_id": id})
}

func (l *WebsocketListener) handleInfo(w http.ResponseWriter, r *http.Request) {
	sess := l.sessions.Get(r.PathValue("id"))
	if sess == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Game not found"})
		return
	}

	sess.Lock()
	info := struct {
		ID         string     `json:"id"`
		Players    int        `json:"players"`
		MaxPlayers int        `json:"max_players"`
		Started    bool       `json:"started"`
		Stage      game.Stage `json:"stage"`
	}{
		ID:         sess.ID,
		Players:    sess.PlayerCount(),
		MaxPlayers: sess.MaxPlayers,
		Started:    sess.Started,
		Stage:      sess.Stage,
	}
	sess.Unlock()

	writeJSON(w, http.StatusOK, info)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// wsTransport adapts a gorilla websocket connection. Writes come from bus
// subscription callbacks as well as unicast replies, so they are serialized
// with a mutex; gorilla allows only one concurrent writer.
type wsTransport struct {
	conn *websocket.Conn

	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

func newWsTransport(conn *websocket.Conn) *wsTransport {
	return &wsTransport{conn: conn}
}

func (t *wsTransport) ReadMessage() ([]byte, error) {
	_, data, err := t.conn.ReadMessage()
	return data, err
}

func (t *wsTransport) WriteMessage(data []byte) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	return t.conn.WriteMessage(websocket.TextMessage, data)
}

func (t *wsTransport) Close() error {
	t.closeOnce.Do(func() {
		t.closeErr = t.conn.Close()
	})
	return t.closeErr
}
