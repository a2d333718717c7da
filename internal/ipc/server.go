package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"github.com/gofrs/flock"

	"mediumcheck/internal/logging"
	"mediumcheck/internal/resolver"
)

// Handler answers lookup messages; false means the message type is unsupported.
type Handler interface {
	HandleMessage(ctx context.Context, msg resolver.Message) (resolver.MediumStatus, bool)
}

var _ Handler = (*resolver.Resolver)(nil)

// Server exposes lookups via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	logger    *slog.Logger
	lock      *flock.Flock
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

// NewServer locks path+".lock", replaces any stale socket and starts listening.
func NewServer(ctx context.Context, path string, handler Handler, logger *slog.Logger) (*Server, error) {
	if handler == nil {
		return nil, errors.New("ipc server requires handler")
	}
	logger = logging.NewComponentLogger(logger, "ipc")

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire socket lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another mediumcheck server is already serving %s", path)
	}

	if err := os.RemoveAll(path); err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	rpcServer := rpc.NewServer()
	if err := rpcServer.RegisterName(ServiceName, &service{handler: handler, logger: logger, ctx: serverCtx}); err != nil {
		cancel()
		listener.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	return &Server{
		path:      path,
		logger:    logger,
		lock:      lock,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
		conns:     make(map[net.Conn]struct{}),
	}, nil
}

// Path returns the socket path.
func (s *Server) Path() string {
	return s.path
}

// Serve starts accepting RPC connections until the server is closed.
func (s *Server) Serve() {
	s.logger.Info("ipc server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				if errors.Is(err, net.ErrClosed) {
					return
				}
				logging.WarnWithContext(s.logger, "accept failed", "ipc_accept_failed",
					logging.Error(err),
					logging.String(logging.FieldImpact, "IPC clients may fail to connect"),
					logging.String(logging.FieldErrorHint, "check socket permissions and restart mediumcheck serve"))
				continue
			}
			if !s.track(conn, true) {
				_ = conn.Close()
				return
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				defer s.track(c, false)
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// track records open connections; adding fails once Close has started.
func (s *Server) track(conn net.Conn, add bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !add {
		delete(s.conns, conn)
		return true
	}
	if s.ctx.Err() != nil {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

// Close stops the server, drops open connections, removes the socket and
// releases the lock.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.mu.Lock()
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()

	if err := os.RemoveAll(s.path); err != nil {
		logging.WarnWithContext(s.logger, "failed to remove socket", "ipc_socket_cleanup_failed",
			logging.String("socket", s.path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "stale socket is replaced on next start"),
			logging.String(logging.FieldErrorHint, "remove the socket file manually"))
	}
	if err := s.lock.Unlock(); err != nil {
		s.logger.Debug("release socket lock failed", logging.Error(err))
	}
}

type service struct {
	handler Handler
	logger  *slog.Logger
	ctx     context.Context
}

// Check answers one lookup message.
func (s *service) Check(req CheckRequest, resp *CheckResponse) error {
	status, handled := s.handler.HandleMessage(s.ctx, resolver.Message{Type: req.Type, Text: req.Text})
	if !handled {
		s.logger.Debug("unsupported message type", logging.String("type", req.Type))
		return fmt.Errorf("unsupported message type %q", req.Type)
	}
	*resp = status
	return nil
}
