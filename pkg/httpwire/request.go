// Package httpwire reads and writes the small subset of HTTP/1.1 the file
// server speaks: one request per connection, no keep-alive, no chunking.
package httpwire

import (
	"bufio"
	"fmt"
	"net/url"
	"strings"
)

const protoSuffix = " HTTP/1.1\r\n"

var baseURL = &url.URL{Scheme: "http", Host: "localhost", Path: "/"}

// Request is a parsed request line. Headers are read but not kept.
type Request struct {
	Method Method
	// Path is the normalized URL path. It always starts with "/".
	Path string
}

// RequestError is a recognized malformed request. It carries the response
// to send back; the connection is otherwise healthy.
type RequestError struct {
	Reason   string
	Response *Response
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("malformed request: %s", e.Reason)
}

func badRequest(reason string) error {
	return &RequestError{Reason: reason, Response: BadRequest()}
}

// ReadRequest reads a single request from b.
//
// A *RequestError is returned for requests the server recognizes as bad
// (wrong protocol, unsupported method, invalid path). Any other error comes
// from the underlying reader and leaves the connection unusable.
func ReadRequest(b *bufio.Reader) (*Request, error) {
	line, err := b.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read request line: %w", err)
	}
	if !strings.HasSuffix(line, protoSuffix) {
		return nil, badRequest("unsupported protocol")
	}
	line = strings.TrimSuffix(line, protoSuffix)

	req := Request{}
	method, target, ok := cutMethod(line)
	if !ok {
		return nil, &RequestError{Reason: "method not allowed", Response: MethodNotAllowed()}
	}
	req.Method = method

	if !strings.HasPrefix(target, "/") {
		return nil, badRequest("path must be absolute")
	}
	u, err := baseURL.Parse(target)
	if err != nil {
		return nil, badRequest(err.Error())
	}
	req.Path = u.Path
	if !strings.HasPrefix(req.Path, "/") {
		req.Path = "/" + req.Path
	}

	// Discard the header block up to and including the blank line.
	for {
		line, err := b.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
		if line == "\r\n" {
			break
		}
	}

	return &req, nil
}

func cutMethod(line string) (Method, string, bool) {
	for _, m := range methods {
		if rest, ok := strings.CutPrefix(line, m.String()+" "); ok {
			return m, rest, true
		}
	}
	return 0, "", false
}
