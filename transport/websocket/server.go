package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/transport/session"
	"github.com/rocketscienceinc/tictactoe-ai/transport/status"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
	sendBufferSize = 16
)

type handlerFunc func(ctx context.Context, playerID string, request Request) (Response, error)

type Server struct {
	logger   *slog.Logger
	gamePlay service.GamePlayService
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, gamePlay service.GamePlayService) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		gamePlay: gamePlay,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}

	server.handlers = map[string]handlerFunc{
		actionGameNew:    server.handleNewGame,
		actionGameTurn:   server.handleGameTurn,
		actionGameReset:  server.handleGameReset,
		actionGameGet:    server.handleGameGet,
		actionStatsGet:   server.handleStatsGet,
		actionStatsReset: server.handleStatsReset,
	}

	return server
}

// Handler - routes /ws; connections are closed once ctx is canceled.
func (that *Server) Handler(ctx context.Context) http.Handler {
	router := chi.NewRouter()
	router.Get("/ws", func(writer http.ResponseWriter, req *http.Request) {
		that.serveWS(ctx, writer, req)
	})

	return router
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveWS - upgrades the connection and serves the player's messages until
// the client leaves or ctx is canceled.
func (that *Server) serveWS(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS")

	playerID, header := sessionHeader(req)

	conn, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	log = log.With("playerID", playerID)
	log.Info("WebSocket connection established")

	send := make(chan Message, sendBufferSize)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		defer conn.Close()

		if err := writePump(conn, send); err != nil {
			log.Debug("writer stopped", "error", err)
		}
	}()

	that.readPump(ctx, conn, playerID, send, writerDone)

	close(send)
	<-writerDone

	log.Info("WebSocket connection closed")
}

func (that *Server) readPump(ctx context.Context, conn *websocket.Conn, playerID string, send chan<- Message, writerDone <-chan struct{}) {
	log := that.logger.With("method", "readPump", "playerID", playerID)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("connection lost", "error", err)
			}
			return
		}

		response := that.dispatch(ctx, playerID, data)

		select {
		case send <- response:
		case <-writerDone:
			return
		}
	}
}

func (that *Server) dispatch(ctx context.Context, playerID string, data []byte) Message {
	log := that.logger.With("method", "dispatch", "playerID", playerID)

	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		return errorMessage("", fmt.Errorf("%w: %w", status.ErrInvalidRequest, err))
	}

	handler, ok := that.handlers[message.Action]
	if !ok {
		return errorMessage(message.Action, fmt.Errorf("%w: unknown action %q", status.ErrInvalidRequest, message.Action))
	}

	var request Request
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &request); err != nil {
			return errorMessage(message.Action, fmt.Errorf("%w: %w", status.ErrInvalidRequest, err))
		}
	}

	response, err := handler(ctx, playerID, request)
	if err != nil {
		if status.Of(err) >= http.StatusInternalServerError {
			log.Error("failed to process message", "action", message.Action, "error", err)
		}
		return errorMessage(message.Action, err)
	}

	return newMessage(message.Action, response)
}

// writePump - owns every write to conn and keeps the connection alive with pings.
func writePump(conn *websocket.Conn, send <-chan Message) error {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return nil
			}

			if err := conn.WriteJSON(message); err != nil {
				return fmt.Errorf("failed to write message: %w", err)
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return fmt.Errorf("failed to write ping: %w", err)
			}
		}
	}
}

// sessionHeader - returns the player of the request and, for a new session,
// the cookie to set on the handshake response.
func sessionHeader(req *http.Request) (string, http.Header) {
	if id, ok := session.FromRequest(req); ok {
		return id, nil
	}

	cookie := session.NewCookie()
	header := http.Header{}
	header.Add("Set-Cookie", cookie.String())

	return cookie.Value, header
}
