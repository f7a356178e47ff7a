package httpwire

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// HeaderField is a single response header line.
type HeaderField struct {
	Name  string
	Value string
}

// Response is a complete reply. When Body is nil and Length is set the
// reply advertises Length bytes without sending them, as HEAD requires.
type Response struct {
	Code   int
	Reason string
	Header []HeaderField
	Body   []byte
	Length int64
}

func textResponse(code int, reason string) *Response {
	return &Response{
		Code:   code,
		Reason: reason,
		Body:   []byte(reason),
	}
}

func BadRequest() *Response {
	return textResponse(400, "Bad Request")
}

func NotFound() *Response {
	return textResponse(404, "Not Found")
}

func MethodNotAllowed() *Response {
	r := textResponse(405, "Method Not Allowed")
	r.Header = []HeaderField{{"Allow", "GET, HEAD"}}
	return r
}

// MultipleChoices reports that candidates files matched and none was picked.
func MultipleChoices(candidates int) *Response {
	return &Response{
		Code:   303,
		Reason: "Multiple Choices",
		Body:   fmt.Appendf(nil, "Multiple Choices: %d candidates", candidates),
	}
}

func InternalServerError() *Response {
	return textResponse(500, "Internal Server Error")
}

func OK(contentType string, body []byte) *Response {
	return &Response{
		Code:   200,
		Reason: "OK",
		Header: []HeaderField{{"Content-Type", contentType}},
		Body:   body,
	}
}

// OKLength is a 200 reply that declares n bytes but carries none.
func OKLength(contentType string, n int64) *Response {
	return &Response{
		Code:   200,
		Reason: "OK",
		Header: []HeaderField{{"Content-Type", contentType}},
		Length: n,
	}
}

// ContentLength is the value sent in the Content-Length header.
func (r *Response) ContentLength() int64 {
	if r.Body == nil {
		return r.Length
	}
	return int64(len(r.Body))
}

// HeaderValue returns the first value of the named header, if any.
func (r *Response) HeaderValue(name string) (string, bool) {
	for _, f := range r.Header {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// WriteTo frames the response and writes it to w in a single flush.
// Partial writes are not resumed.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	bw := bufio.NewWriter(cw)

	bw.WriteString("HTTP/1.1 " + strconv.Itoa(r.Code) + " " + r.Reason + "\r\n")
	bw.WriteString("Content-Length: " + strconv.FormatInt(r.ContentLength(), 10) + "\r\n")
	bw.WriteString("Connection: close\r\n")
	for _, f := range r.Header {
		bw.WriteString(f.Name + ": " + f.Value + "\r\n")
	}
	bw.WriteString("\r\n")
	if r.Body != nil {
		bw.Write(r.Body)
	}

	// bufio errors are sticky, so Flush reports the first failure.
	if err := bw.Flush(); err != nil {
		return cw.n, fmt.Errorf("failed to write response: %w", err)
	}
	return cw.n, nil
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func (r *Response) String() string {
	return fmt.Sprintf("%d %s (%d bytes)", r.Code, r.Reason, r.ContentLength())
}
