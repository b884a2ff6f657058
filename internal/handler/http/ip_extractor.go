package http

import (
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// IPExtractor resolves the client address of a request.
type IPExtractor interface {
	ExtractIP(r *http.Request) string
}

// NewIPExtractor returns a TrustedProxyExtractor for proxies, or a RemoteAddrExtractor
// when no proxy is trusted.
func NewIPExtractor(proxies []netip.Prefix) IPExtractor {
	if len(proxies) == 0 {
		return RemoteAddrExtractor{}
	}
	return &TrustedProxyExtractor{Proxies: proxies}
}

// RemoteAddrExtractor uses the TCP peer address and ignores forwarding headers.
type RemoteAddrExtractor struct{}

// ExtractIP returns the host part of r.RemoteAddr.
func (RemoteAddrExtractor) ExtractIP(r *http.Request) string {
	return hostOf(r.RemoteAddr)
}

// TrustedProxyExtractor reads X-Forwarded-For, then X-Real-IP, but only when the peer
// is one of Proxies. Requests from any other peer are keyed by RemoteAddr, so a client
// cannot pick its own rate limit bucket.
type TrustedProxyExtractor struct {
	Proxies []netip.Prefix
}

// ExtractIP returns the forwarded client address or the peer address.
func (e *TrustedProxyExtractor) ExtractIP(r *http.Request) string {
	peer := hostOf(r.RemoteAddr)
	if !e.trusted(peer) {
		if r.Header.Get("X-Forwarded-For") != "" || r.Header.Get("X-Real-IP") != "" {
			slog.Debug("ignoring forwarding headers from untrusted peer", slog.String("remote_addr", peer))
		}
		return peer
	}

	// X-Forwarded-For ヘッダーを優先（リバースプロキシ経由の場合）
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := parseFirstIP(xff); ip != "" {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(strings.TrimSpace(xri)); ip != nil {
			return ip.String()
		}
	}
	return peer
}

func (e *TrustedProxyExtractor) trusted(peer string) bool {
	addr, err := netip.ParseAddr(peer)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range e.Proxies {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// hostOf strips the port from a "host:port" address. Addresses without a port are
// returned as they are.
func hostOf(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

// parseFirstIP parses the first IP address from a comma-separated list.
func parseFirstIP(s string) string {
	first, _, _ := strings.Cut(s, ",")
	if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
		return ip.String()
	}
	return ""
}
