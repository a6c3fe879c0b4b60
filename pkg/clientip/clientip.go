// Package clientip derives client identities for rate limiting and logging.
package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// RealClientIP returns the client IP taken from r.RemoteAddr. Proxy headers
// are ignored because they are client controlled when no CDN sits in front.
func RealClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	host = strings.TrimSpace(strings.Trim(host, "[]"))
	if i := strings.IndexByte(host, '%'); i != -1 {
		host = host[:i]
	}
	return host
}

// LimitKey returns the identity used for per-client rate limits. IPv4
// addresses are used as-is; IPv6 addresses are collapsed to their /64 so a
// single host cannot rotate through its prefix.
func LimitKey(r *http.Request) string {
	ip := RealClientIP(r)
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return ip
	}
	addr = addr.Unmap()
	if addr.Is4() {
		return addr.String()
	}
	prefix, err := addr.Prefix(64)
	if err != nil {
		return addr.String()
	}
	return prefix.String()
}
