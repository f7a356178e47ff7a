package stdio

import (
	"io"
	"net"
	"os"
	"time"
)

// readerWriterConn presents a reader/writer pair as a net.Conn.
type readerWriterConn struct {
	Reader io.Reader
	Writer io.WriteCloser
}

func (c *readerWriterConn) Read(b []byte) (n int, err error) {
	return c.Reader.Read(b)
}

func (c *readerWriterConn) Write(b []byte) (n int, err error) {
	return c.Writer.Write(b)
}

// Close closes the write side so the peer sees the end of the response.
func (c *readerWriterConn) Close() error {
	return c.Writer.Close()
}

func (c *readerWriterConn) LocalAddr() net.Addr {
	return addr{}
}

func (c *readerWriterConn) RemoteAddr() net.Addr {
	return addr{}
}

// Deadlines are not supported on pipes handed to us by a supervisor.
func (c *readerWriterConn) SetDeadline(t time.Time) error      { return nil }
func (c *readerWriterConn) SetReadDeadline(t time.Time) error  { return nil }
func (c *readerWriterConn) SetWriteDeadline(t time.Time) error { return nil }

type addr struct{}

func (addr) Network() string { return "stdio" }
func (addr) String() string  { return "stdio" }

// NewConn returns a net.Conn reading from r and writing to w.
func NewConn(r io.Reader, w io.WriteCloser) net.Conn {
	return &readerWriterConn{
		Reader: r,
		Writer: w,
	}
}

// Conn returns a net.Conn over the process's stdin and stdout.
func Conn() net.Conn {
	return NewConn(os.Stdin, os.Stdout)
}
