//go:build !unix

package netutil

import "syscall"

func reuseAddr(network, address string, c syscall.RawConn) error {
	return nil
}
