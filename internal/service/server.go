// Package service provides the plumbing shared by the hermit proxy
// services: a Unix-socket server speaking one newline-terminated JSON
// request and response per connection, and a watchdog that ends the
// process when its supervisor goes away.
package service

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/xdg/hermit/internal/audit"
)

// MaxLineBytes caps the request line read from a connection. A caller
// that streams more than this without a newline gets whatever fit,
// which will fail to parse as JSON and be answered as invalid.
const MaxLineBytes = 1 << 20

// Handler processes one raw request line and returns the serialized
// response body, without a trailing newline. Handlers convert every
// failure into a response; they never return an error.
type Handler func(line []byte) []byte

// Server accepts connections on a Unix socket and runs each one
// through the Handler. Connections share nothing but the audit log.
type Server struct {
	socketPath string
	handler    Handler
	log        *audit.Logger

	listener net.Listener
	wg       sync.WaitGroup
	shutdown chan struct{}
	mu       sync.Mutex // protects listener and shutdown state
}

// NewServer creates a server for socketPath. The audit logger may be
// nil, which disables logging of connection-level errors.
func NewServer(socketPath string, handler Handler, log *audit.Logger) *Server {
	return &Server{
		socketPath: socketPath,
		handler:    handler,
		log:        log,
		shutdown:   make(chan struct{}),
	}
}

// Start binds the socket and begins accepting connections.
// The parent directory is created owner-only if needed, and any
// pre-existing socket path is unlinked first: a live listener could
// not have bound over it, so whatever is there is stale.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.socketPath), 0700); err != nil {
		return fmt.Errorf("create socket directory: %w", err)
	}
	if err := os.Chmod(filepath.Dir(s.socketPath), 0700); err != nil {
		return fmt.Errorf("restrict socket directory: %w", err)
	}

	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale socket: %w", err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("bind %s: %w", s.socketPath, err)
	}
	s.listener = listener

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// Stop closes the listener, waits for in-flight connections, and
// removes the socket file.
func (s *Server) Stop() error {
	s.mu.Lock()
	if s.listener == nil {
		s.mu.Unlock()
		return nil
	}
	close(s.shutdown)
	err := s.listener.Close()
	s.mu.Unlock()

	s.wg.Wait()
	os.Remove(s.socketPath)
	return err
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// acceptLoop accepts connections until shutdown. A failed accept is
// logged and the loop continues; one bad connection never stops the
// listener.
func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.shutdown:
				return
			default:
				s.log.Log(audit.EventError, "connection error: %v", err)
				continue
			}
		}

		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

// handleConnection reads at most one request line, runs the handler,
// and writes exactly one newline-terminated response. An immediate EOF
// ends the connection with no response.
func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	reader := bufio.NewReader(io.LimitReader(conn, MaxLineBytes))
	line, err := reader.ReadBytes('\n')
	if len(line) == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			s.log.Log(audit.EventError, "connection error: %v", err)
		}
		return
	}

	resp, ok := s.invokeHandler(line)
	if !ok {
		return
	}

	if _, err := conn.Write(append(resp, '\n')); err != nil {
		// The client went away; the result is simply discarded.
		s.log.Log(audit.EventError, "connection error: %v", err)
	}
}

// invokeHandler runs the handler, containing any panic to this
// connection. The server cannot know the service's response schema, so
// a panicking request gets its connection closed without a response;
// the listener and other connections are unaffected.
func (s *Server) invokeHandler(line []byte) (resp []byte, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Log(audit.EventError, "handler panic: %v", r)
			resp, ok = nil, false
		}
	}()
	return s.handler(line), true
}
