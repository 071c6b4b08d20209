package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"orrery/core"
	"orrery/metrics"
)

// Actions accepted on the websocket
const (
	ActionNext     = "next"
	ActionPrevious = "previous"
	ActionCurrent  = "current"
	ActionSet      = "set"
)

// Command is a client request
type Command struct {
	Action string `json:"action"`
	Index  *int   `json:"index,omitempty"`
}

// State is sent on connect, in reply to every command, and broadcast to
// every client whenever the selection moves
type State struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Error string `json:"error,omitempty"`
}

// Options tune a Server
type Options struct {
	// Rate and Burst bound commands per connection
	Rate    rate.Limit
	Burst   int
	Logger  *slog.Logger
	Metrics *metrics.Collector
}

// Outgoing queue per client and the time a single write may take
const (
	sendBuffer = 16
	writeWait  = 5 * time.Second
)

// client is one connection. Its writer goroutine drains send; a client whose
// queue is full is dropped instead of stalling the sender.
type client struct {
	conn *websocket.Conn
	send chan State
	done chan struct{}
	once sync.Once
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn: conn,
		send: make(chan State, sendBuffer),
		done: make(chan struct{}),
	}
}

// enqueue queues st without blocking and reports whether it was accepted
func (c *client) enqueue(st State) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- st:
		return true
	default:
		return false
	}
}

func (c *client) writePump() {
	for {
		select {
		case st := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(st); err != nil {
				c.close()
				return
			}
		case <-c.done:
			return
		}
	}
}

// close stops the writer and closes the socket, which also ends the reader
func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// Server lets remote clients drive the selection. Every connection gets its
// own limiter and outgoing queue.
type Server struct {
	system    *core.System
	selection *core.Selection
	opts      Options
	log       *slog.Logger

	upgrader websocket.Upgrader

	clientsMu sync.RWMutex
	clients   map[*client]struct{}
}

func NewServer(sys *core.System, sel *core.Selection, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		system:    sys,
		selection: sel,
		opts:      opts,
		log:       logger.With("component", "control"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // local tool, any origin
			},
		},
		clients: make(map[*client]struct{}),
	}
}

// Handler routes /ws
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// ListenAndServe runs the server until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		s.closeAll()
	}()

	s.log.Info("selection control listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Current describes the selected body
func (s *Server) Current() State {
	idx := s.selection.Current()
	st := State{Index: idx}
	if b, err := s.system.Selectable(idx); err == nil {
		st.Name = b.Name
	}
	return st
}

// Broadcast queues the current selection for every client. Hosts call it
// after changing the selection themselves, so it never waits on a socket:
// clients that fall behind are dropped.
func (s *Server) Broadcast() {
	st := s.Current()

	s.clientsMu.RLock()
	var slow []*client
	for c := range s.clients {
		if !c.enqueue(st) {
			slow = append(slow, c)
		}
	}
	s.clientsMu.RUnlock()

	for _, c := range slow {
		s.log.Debug("dropping client that stopped reading", "remote", c.conn.RemoteAddr())
		s.remove(c)
		c.close()
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "err", err)
		return
	}
	c := newClient(conn)
	defer c.close()
	go c.writePump()

	s.clientsMu.Lock()
	s.clients[c] = struct{}{}
	s.clientsMu.Unlock()
	s.opts.Metrics.ClientConnected()
	defer func() {
		s.remove(c)
		s.opts.Metrics.ClientDisconnected()
	}()

	s.log.Debug("client connected", "remote", conn.RemoteAddr())
	limiter := rate.NewLimiter(s.opts.Rate, s.opts.Burst)

	reply := func(st State) error {
		if !c.enqueue(st) {
			return errors.New("client queue full")
		}
		return nil
	}
	if err := reply(s.Current()); err != nil {
		return
	}

	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("websocket read ended", "err", err)
			}
			return
		}

		if !limiter.Allow() {
			s.opts.Metrics.RecordRejected()
			st := s.Current()
			st.Error = "rate limited"
			if reply(st) != nil {
				return
			}
			continue
		}

		moved, err := s.apply(cmd)
		if err != nil {
			s.opts.Metrics.RecordRejected()
			st := s.Current()
			st.Error = err.Error()
			if reply(st) != nil {
				return
			}
			continue
		}
		if moved {
			s.opts.Metrics.RecordSelection(cmd.Action, "websocket")
			s.Broadcast()
			continue
		}
		if reply(s.Current()) != nil {
			return
		}
	}
}

// apply runs a command and reports whether the selection moved
func (s *Server) apply(cmd Command) (bool, error) {
	switch cmd.Action {
	case ActionNext:
		s.selection.SelectNext()
		return true, nil
	case ActionPrevious:
		s.selection.SelectPrevious()
		return true, nil
	case ActionCurrent:
		return false, nil
	case ActionSet:
		if cmd.Index == nil {
			return false, errors.New("set needs an index")
		}
		if _, err := s.selection.Set(*cmd.Index); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, fmt.Errorf("unknown action %q", cmd.Action)
}

func (s *Server) remove(c *client) {
	s.clientsMu.Lock()
	delete(s.clients, c)
	s.clientsMu.Unlock()
}

func (s *Server) closeAll() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for c := range s.clients {
		c.close()
	}
}

// clientCount is the number of connected clients
func (s *Server) clientCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}
