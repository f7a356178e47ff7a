package flagutil

import (
	"fmt"
	"net"
	"strconv"

	"github.com/jessevdk/go-flags"
)

// HostPort is a listen address in host:port form. A bare port number is
// taken to mean every interface, so "8080" becomes ":8080".
type HostPort string

var _ flags.Unmarshaler = (*HostPort)(nil)

func (hp *HostPort) UnmarshalText(text []byte) error {
	addr := string(text)
	if isPort(addr) {
		addr = ":" + addr
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid listen address %q: %w", text, err)
	}
	if !isPort(port) {
		return fmt.Errorf("invalid listen address %q: port must be a number from 0 to 65535", text)
	}
	// brackets IPv6 hosts again
	*hp = HostPort(net.JoinHostPort(host, port))
	return nil
}

func (hp *HostPort) UnmarshalFlag(value string) error {
	return hp.UnmarshalText([]byte(value))
}

func isPort(s string) bool {
	_, err := strconv.ParseUint(s, 10, 16)
	return err == nil
}
