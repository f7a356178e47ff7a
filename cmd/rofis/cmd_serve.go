package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/sevlyar/go-daemon"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/gilliginsisland/rofis/pkg/flagutil"
	"github.com/gilliginsisland/rofis/pkg/metrics"
	"github.com/gilliginsisland/rofis/pkg/netutil"
	"github.com/gilliginsisland/rofis/pkg/server"
	"github.com/gilliginsisland/rofis/pkg/stdio"
)

func init() {
	parser.AddCommand("serve", "Run the file server", "Serves the root directory, resolving partial directory paths by suffix", &ServeCommand{})
}

var _ flags.Commander = (*ServeCommand)(nil)

type ServeCommand struct {
	Root            flagutil.Dir      `short:"r" long:"root" default:"." description:"Directory to serve"`
	Listen          flagutil.HostPort `short:"l" long:"listen" default:":8080" description:"Listening address"`
	WatchInterval   flagutil.Duration `long:"watch-interval" default:"100ms" description:"Polling period of WATCH requests"`
	RebuildInterval flagutil.Duration `long:"rebuild-interval" default:"0s" description:"Minimum time between index rebuilds on lookup misses (0 for no limit)"`
	MaxConns        int               `long:"max-conns" default:"0" description:"Maximum open connections, WATCH included (0 for no limit)"`
	MetricsListen   flagutil.HostPort `long:"metrics-listen" description:"Address of the Prometheus metrics endpoint"`
	Stdio           bool              `long:"stdio" description:"Serve a single connection on stdin/stdout"`
	Daemon          bool              `short:"d" long:"daemon" description:"Detach and run in the background"`
	PidFile         flagutil.Path     `long:"pid-file" description:"PID file written when daemonized"`
	LogFile         flagutil.Path     `long:"log-file" description:"Log file used when daemonized"`
}

// Execute runs the serve subcommand
func (c *ServeCommand) Execute(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	if config != nil {
		config.applyServe(parser.Find("serve"), c)
	}
	if c.Stdio && c.Daemon {
		return errors.New("--stdio and --daemon are mutually exclusive")
	}

	if c.Daemon {
		d := &daemon.Context{
			PidFileName: string(c.PidFile),
			PidFilePerm: 0o644,
			LogFileName: string(c.LogFile),
			LogFilePerm: 0o640,
			Umask:       0o027,
		}
		child, err := d.Reborn()
		if err != nil {
			return fmt.Errorf("failed to daemonize: %w", err)
		}
		if child != nil {
			slog.Info("daemon started", slog.Int("pid", child.Pid))
			return nil
		}
		defer d.Release()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := c.server(ctx)
	if err != nil {
		return err
	}

	if c.Stdio {
		err := srv.Serve(stdio.Listener())
		srv.Wait()
		return err
	}

	l, err := netutil.Listen(ctx, netutil.ListenConfig{
		Addr:     string(c.Listen),
		MaxConns: c.MaxConns,
	})
	if err != nil {
		return err
	}
	return c.run(ctx, srv, l)
}

func (c *ServeCommand) server(ctx context.Context) (*server.Server, error) {
	idx, err := server.BuildIndex(ctx, string(c.Root))
	if err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if d := time.Duration(c.RebuildInterval); d > 0 {
		limiter = rate.NewLimiter(rate.Every(d), 1)
	}

	return server.New(idx, server.Options{
		WatchInterval:  time.Duration(c.WatchInterval),
		RebuildLimiter: limiter,
		Logger:         slog.Default(),
	}), nil
}

// run serves l until a signal arrives or the accept loop stops. Parked
// WATCH sessions are abandoned on exit.
func (c *ServeCommand) run(ctx context.Context, srv *server.Server, l net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	context.AfterFunc(ctx, func() { l.Close() })
	g.Go(func() error {
		defer cancel()
		return srv.Serve(l)
	})

	if c.MetricsListen != "" {
		ms := &http.Server{
			Addr:              string(c.MetricsListen),
			Handler:           metrics.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			slog.Info("serving metrics", slog.String("addr", ms.Addr))
			if err := ms.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server failed: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			return ms.Shutdown(context.Background())
		})
	}

	err := g.Wait()
	slog.Info("rofis stopped")
	return err
}
