package httpwire

//go:generate go tool stringer -type=Method -linecomment
type Method uint8

const (
	MethodGet   Method = iota // GET
	MethodHead                // HEAD
	MethodWatch               // WATCH
)

var methods = []Method{MethodGet, MethodHead, MethodWatch}
