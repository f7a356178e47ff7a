// Package stdio serves a single connection inherited on stdin/stdout,
// as when started by inetd or a socket-activating supervisor.
package stdio

import (
	"net"
	"sync"
)

type singleConnListener struct {
	mu   sync.Mutex
	conn net.Conn
}

// Accept returns the connection once, then net.ErrClosed.
func (l *singleConnListener) Accept() (net.Conn, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.conn == nil {
		return nil, net.ErrClosed
	}
	c := l.conn
	l.conn = nil
	return c, nil
}

func (l *singleConnListener) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.conn = nil
	return nil
}

func (l *singleConnListener) Addr() net.Addr {
	return addr{}
}

// NewListener returns a listener that yields conn exactly once.
func NewListener(conn net.Conn) net.Listener {
	return &singleConnListener{conn: conn}
}

// Listener yields the stdin/stdout connection exactly once.
func Listener() net.Listener {
	return NewListener(Conn())
}
