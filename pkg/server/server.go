// Package server runs the accept loop of the file server.
//
// Requests are handled one at a time on the goroutine that accepted them.
// That goroutine alone owns the directory index and replaces it when a
// lookup misses. The only other goroutines are WATCH sessions, which own
// their connection and never touch the index.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/gilliginsisland/rofis/pkg/dirindex"
	"github.com/gilliginsisland/rofis/pkg/httpwire"
	"github.com/gilliginsisland/rofis/pkg/metrics"
	"github.com/gilliginsisland/rofis/pkg/netutil"
	"github.com/gilliginsisland/rofis/pkg/resolve"
	"github.com/gilliginsisland/rofis/pkg/watch"
)

type Options struct {
	// WatchInterval is the polling period of WATCH sessions.
	WatchInterval time.Duration
	// RebuildLimiter spaces out rebuilds triggered by lookup misses.
	// Nil rebuilds on every miss.
	RebuildLimiter *rate.Limiter
	Logger         *slog.Logger
}

type Server struct {
	index   *dirindex.Index
	opts    Options
	logger  *slog.Logger
	watches sync.WaitGroup
}

var _ netutil.ConnHandler = (*Server)(nil)

func New(index *dirindex.Index, opts Options) *Server {
	if opts.WatchInterval <= 0 {
		opts.WatchInterval = watch.DefaultInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		index:  index,
		opts:   opts,
		logger: logger,
	}
}

// BuildIndex builds the index for root and records it in the metrics.
func BuildIndex(ctx context.Context, root string) (*dirindex.Index, error) {
	start := time.Now()
	idx, err := dirindex.Build(ctx, root)
	if err != nil {
		return nil, err
	}
	metrics.RecordIndexBuild(idx.Len(), time.Since(start))
	return idx, nil
}

// Serve handles connections from l sequentially until l is closed.
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("serving",
		slog.String("root", s.index.Root()),
		slog.Int("directories", s.index.Len()),
		slog.Any("addr", l.Addr()),
	)
	return netutil.Serve(l, s)
}

// ServeConn answers one request on conn and closes it, unless the request
// was a WATCH that now owns the connection.
func (s *Server) ServeConn(conn net.Conn) {
	if !s.handle(conn) {
		conn.Close()
	}
}

// Wait blocks until every detached WATCH session has finished.
func (s *Server) Wait() {
	s.watches.Wait()
}

func (s *Server) handle(conn net.Conn) (detached bool) {
	bc := netutil.NewBuffConn(conn)
	logger := s.logger.With(slog.Any("remote", conn.RemoteAddr()))

	req, err := httpwire.ReadRequest(bc.Reader)
	if err != nil {
		var reqErr *httpwire.RequestError
		if errors.As(err, &reqErr) {
			s.respond(logger.With(slog.String("reason", reqErr.Reason)), bc, "-", reqErr.Response)
		} else {
			logger.Error("failed to read request", slog.Any("err", err))
		}
		return false
	}

	method := req.Method.String()
	logger = logger.With(slog.String("method", method), slog.String("path", req.Path))

	target, err := s.resolve(req.Path)
	if err != nil {
		s.respond(logger, bc, method, s.failure(logger, err))
		return false
	}
	logger = logger.With(slog.String("file", target))

	if req.Method == httpwire.MethodWatch {
		return s.watch(logger, bc, target)
	}

	resp, err := httpwire.FileResponse(target, req.Method == httpwire.MethodGet)
	if err != nil {
		logger.Error("failed to load file", slog.Any("err", err))
	}
	s.respond(logger, bc, method, resp)
	return false
}

// resolve looks path up, rebuilding the index once if nothing matched in
// case directories appeared since the last build.
func (s *Server) resolve(path string) (string, error) {
	target, err := resolve.Resolve(s.index, path)
	if !errors.Is(err, resolve.ErrNotFound) {
		return target, err
	}

	if l := s.opts.RebuildLimiter; l != nil && !l.Allow() {
		metrics.RecordRebuild("throttled")
		return "", err
	}

	idx, err := BuildIndex(context.Background(), s.index.Root())
	if err != nil {
		metrics.RecordRebuild("error")
		return "", fmt.Errorf("failed to rebuild index: %w", err)
	}
	metrics.RecordRebuild("ok")
	s.logger.Debug("index rebuilt", slog.Int("directories", idx.Len()))
	s.index = idx

	return resolve.Resolve(s.index, path)
}

func (s *Server) failure(logger *slog.Logger, err error) *httpwire.Response {
	var ambErr *resolve.AmbiguousError
	switch {
	case errors.Is(err, resolve.ErrNotFound):
		return httpwire.NotFound()
	case errors.As(err, &ambErr):
		return httpwire.MultipleChoices(len(ambErr.Candidates))
	default:
		logger.Error("failed to resolve path", slog.Any("err", err))
		return httpwire.InternalServerError()
	}
}

func (s *Server) watch(logger *slog.Logger, conn net.Conn, target string) (detached bool) {
	session, err := watch.Arm(target, conn)
	if err != nil {
		logger.Error("failed to arm watch", slog.Any("err", err))
		s.respond(logger, conn, httpwire.MethodWatch.String(), httpwire.InternalServerError())
		return false
	}

	logger.Debug("watching", slog.Time("baseline", session.Baseline))
	metrics.WatchStarted()
	s.watches.Go(func() {
		defer metrics.WatchFinished()
		resp, err := session.Run(s.opts.WatchInterval)
		metrics.RecordResponse(httpwire.MethodWatch.String(), resp.Code)
		if err != nil {
			logger.Error("watch failed", slog.Int("code", resp.Code), slog.Any("err", err))
			return
		}
		logger.Info("response", slog.Int("code", resp.Code), slog.Int64("length", resp.ContentLength()))
	})
	return true
}

func (s *Server) respond(logger *slog.Logger, w io.Writer, method string, resp *httpwire.Response) {
	metrics.RecordResponse(method, resp.Code)
	if _, err := resp.WriteTo(w); err != nil {
		logger.Error("failed to write response", slog.Int("code", resp.Code), slog.Any("err", err))
		return
	}
	logger.Info("response", slog.Int("code", resp.Code), slog.Int64("length", resp.ContentLength()))
}
