package netutil

import (
	"context"
	"fmt"
	"net"

	xnetutil "golang.org/x/net/netutil"
)

// ListenConfig describes the listening socket for the file server.
type ListenConfig struct {
	Addr string
	// MaxConns caps the number of simultaneously open connections,
	// watch sessions included. Zero means no cap.
	MaxConns int
}

// Listen opens a TCP listener with address reuse enabled so a restarted
// server can bind while old connections linger in TIME_WAIT.
func Listen(ctx context.Context, cfg ListenConfig) (net.Listener, error) {
	lc := net.ListenConfig{Control: reuseAddr}
	l, err := lc.Listen(ctx, "tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
	}
	if cfg.MaxConns > 0 {
		l = xnetutil.LimitListener(l, cfg.MaxConns)
	}
	return l, nil
}
