package netutil

import (
	"bufio"
	"net"
)

var _ net.Conn = (*BuffConn)(nil)

// BuffConn is a net.Conn with a buffered reader in front of it.
// Writes go straight to the connection; callers batch their own output.
type BuffConn struct {
	net.Conn
	Reader *bufio.Reader
}

// NewBuffConn wraps conn with a buffered reader.
func NewBuffConn(conn net.Conn) *BuffConn {
	return &BuffConn{
		Conn:   conn,
		Reader: bufio.NewReader(conn),
	}
}

// Read reads from the buffered reader so bytes peeked by Reader are not lost.
func (b *BuffConn) Read(p []byte) (int, error) {
	return b.Reader.Read(p)
}
