package netutil

import (
	"errors"
	"log/slog"
	"net"
	"time"
)

// ConnHandler takes ownership of an accepted connection.
type ConnHandler interface {
	ServeConn(net.Conn)
}

const maxAcceptDelay = time.Second

// Serve accepts connections from l and hands them to h one at a time on
// the calling goroutine; the next Accept waits until h returns. Failed
// accepts are logged and retried with a growing delay. Serve returns nil
// once l is closed.
func Serve(l net.Listener, h ConnHandler) error {
	var delay time.Duration
	for {
		conn, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			if delay == 0 {
				delay = 5 * time.Millisecond
			} else {
				delay = min(2*delay, maxAcceptDelay)
			}
			slog.Error("accept failed", slog.Any("err", err), slog.Duration("retry_in", delay))
			time.Sleep(delay)
			continue
		}
		delay = 0

		h.ServeConn(conn)
	}
}
