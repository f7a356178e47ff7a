package stdio

import (
	"bytes"
	"errors"
	"io"
	"net"
	"strings"
	"testing"
)

type nopCloser struct {
	bytes.Buffer
	closed bool
}

func (n *nopCloser) Close() error {
	n.closed = true
	return nil
}

func TestListenerAcceptsOnce(t *testing.T) {
	out := &nopCloser{}
	l := NewListener(NewConn(strings.NewReader("ping"), out))

	c, err := l.Accept()
	if err != nil {
		t.Fatalf("Accept() failed: %v", err)
	}
	if got := c.RemoteAddr().String(); got != "stdio" {
		t.Errorf("RemoteAddr() = %q, want %q", got, "stdio")
	}

	in, _ := io.ReadAll(c)
	if string(in) != "ping" {
		t.Errorf("read %q, want %q", in, "ping")
	}
	c.Write([]byte("pong"))
	c.Close()
	if out.String() != "pong" || !out.closed {
		t.Errorf("wrote %q (closed=%v), want %q closed", out.String(), out.closed, "pong")
	}

	if _, err := l.Accept(); !errors.Is(err, net.ErrClosed) {
		t.Errorf("second Accept() error = %v, want %v", err, net.ErrClosed)
	}
}
