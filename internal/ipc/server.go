// Package ipc implements the control-plane socket: a Unix domain stream
// listener accepting line-delimited JSON requests and replying in kind,
// one object per line in each direction. Modeled on the accept-loop idiom
// of texelation's runtime/server.Server (os.RemoveAll the stale socket
// path, then net.Listen("unix", ...)), but reshaped around a single
// owning goroutine: every accepted connection's lines are decoded on a
// reader goroutine and funneled into one channel, which the reducer's
// main loop drains non-blockingly once per event-loop iteration, the same
// "goroutine feeds a channel, the loop drains it without blocking"
// structure internal/xbackend/events.go uses for X11 events. No request
// is ever processed concurrently with another, or with a display event:
// the single-threaded cooperative model this package's Server.Poll serves
// is the reducer's, not its own.
package ipc

import (
	"bufio"
	"encoding/json"
	"net"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// pending is one decoded request still waiting to be handled, paired with
// the connection its response is written back to.
type pending struct {
	req  request
	conn net.Conn
}

// Server owns the listening socket and the in-flight connection set. All
// exported methods except the internal accept/read goroutines are meant
// to be called from the single thread that also owns the reducer.
type Server struct {
	path     string
	listener net.Listener
	log      *zap.Logger

	requests chan pending

	mu    sync.Mutex
	conns map[net.Conn]struct{}
	done  chan struct{}
}

// SocketPath derives the control socket's path from an X11 display string
// ("hostname:displaynum.screennum"), per the convention of replacing ':'
// and '.' with '_' and placing the result in the system temp directory.
func SocketPath(display string) string {
	name := strings.NewReplacer(":", "_", ".", "_").Replace(display)
	if name == "" {
		name = "_0"
	}
	return os.TempDir() + "/ttwm" + name + ".sock"
}

// Listen creates the Unix domain socket at path, removing any stale file
// left behind by a previous, uncleanly terminated instance first — the
// same "remove before listen" idiom texelation's Server.Start uses.
func Listen(path string, log *zap.Logger) (*Server, error) {
	if err := os.RemoveAll(path); err != nil {
		return nil, err
	}
	l, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}
	s := &Server{
		path:     path,
		listener: l,
		log:      log,
		requests: make(chan pending, 64),
		conns:    make(map[net.Conn]struct{}),
		done:     make(chan struct{}),
	}
	go s.acceptLoop()
	return s, nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				s.log.Warn("ipc: accept failed", zap.Error(err))
				return
			}
		}
		s.mu.Lock()
		s.conns[conn] = struct{}{}
		s.mu.Unlock()
		go s.readLoop(conn)
	}
}

// readLoop decodes one JSON request per line and hands it to the shared
// requests channel; a malformed line gets an immediate error response on
// its own connection rather than being queued, since there is nothing a
// replay against reducer state could fix about bad JSON.
func (s *Server) readLoop(conn net.Conn) {
	defer s.forgetConn(conn)
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 4096), 1<<20)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			writeResponse(conn, response{Status: "error", Code: "invalid_command", Error: err.Error()})
			continue
		}
		select {
		case s.requests <- pending{req: req, conn: conn}:
		case <-s.done:
			return
		}
	}
}

func (s *Server) forgetConn(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	conn.Close()
}

// Poll returns the next already-decoded request without blocking, or
// false if none is waiting — the "drain one IPC request if readable"
// half of the reducer's main loop.
func (s *Server) Poll() (request, net.Conn, bool) {
	select {
	case p := <-s.requests:
		return p.req, p.conn, true
	default:
		return request{}, nil, false
	}
}

// Respond writes resp to conn as one JSON line, swallowing write errors —
// a client that disconnected mid-response has nothing to receive them.
func (s *Server) Respond(conn net.Conn, resp response) {
	writeResponse(conn, resp)
}

func writeResponse(conn net.Conn, resp response) {
	enc, err := json.Marshal(resp)
	if err != nil {
		return
	}
	enc = append(enc, '\n')
	_, _ = conn.Write(enc)
}

// Close stops accepting new connections, closes every live one, and
// removes the socket file.
func (s *Server) Close() error {
	close(s.done)
	err := s.listener.Close()
	s.mu.Lock()
	for c := range s.conns {
		c.Close()
	}
	s.mu.Unlock()
	os.RemoveAll(s.path)
	return err
}
