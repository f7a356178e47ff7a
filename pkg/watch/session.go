// Package watch defers a file response until the file changes on disk.
package watch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gilliginsisland/rofis/pkg/httpwire"
)

// DefaultInterval is how often an armed session polls its file.
const DefaultInterval = 100 * time.Millisecond

// Session owns a connection until its file's modification time changes.
// There is no cancellation: a session ends when the file changes or
// becomes unreadable, and a vanished client is only noticed on write.
type Session struct {
	Path     string
	Baseline time.Time

	conn io.WriteCloser
}

// Arm records the current modification time of path. If the file cannot be
// stat'ed the caller keeps the connection and should answer with a 500.
func Arm(path string, conn io.WriteCloser) (*Session, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat watch target: %w", err)
	}
	return &Session{
		Path:     path,
		Baseline: info.ModTime(),
		conn:     conn,
	}, nil
}

// Run polls every interval until the file changes, then writes a GET-style
// response and closes the connection. It returns the response it sent
// along with the error that turned it into a 500, if any, joined with any
// write error.
func (s *Session) Run(interval time.Duration) (*httpwire.Response, error) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	defer s.conn.Close()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var (
		resp    *httpwire.Response
		loadErr error
	)
	for range ticker.C {
		info, err := os.Stat(s.Path)
		if err != nil {
			resp, loadErr = httpwire.InternalServerError(), fmt.Errorf("failed to stat watch target: %w", err)
			break
		}
		if !info.ModTime().Equal(s.Baseline) {
			resp, loadErr = httpwire.FileResponse(s.Path, true)
			break
		}
	}

	_, err := resp.WriteTo(s.conn)
	return resp, errors.Join(loadErr, err)
}
