package http

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
)

func forwardedRequest(remoteAddr, xff, xri string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	if xff != "" {
		req.Header.Set("X-Forwarded-For", xff)
	}
	if xri != "" {
		req.Header.Set("X-Real-IP", xri)
	}
	return req
}

func TestTrustedProxyExtractor(t *testing.T) {
	e := &TrustedProxyExtractor{Proxies: []netip.Prefix{
		netip.MustParsePrefix("192.168.1.0/24"),
		netip.MustParsePrefix("2001:db8::/32"),
	}}

	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		wantIP     string
	}{
		{
			name:       "X-Forwarded-For single IP",
			remoteAddr: "192.168.1.1:12345",
			xff:        "203.0.113.195",
			wantIP:     "203.0.113.195",
		},
		{
			name:       "X-Forwarded-For multiple IPs",
			remoteAddr: "192.168.1.1:12345",
			xff:        "203.0.113.195, 70.41.3.18, 150.172.238.178",
			wantIP:     "203.0.113.195",
		},
		{
			name:       "X-Real-IP",
			remoteAddr: "192.168.1.1:12345",
			xri:        "203.0.113.195",
			wantIP:     "203.0.113.195",
		},
		{
			name:       "RemoteAddr fallback",
			remoteAddr: "192.168.1.1:12345",
			wantIP:     "192.168.1.1",
		},
		{
			name:       "X-Forwarded-For takes precedence over X-Real-IP",
			remoteAddr: "192.168.1.1:12345",
			xff:        "203.0.113.195",
			xri:        "198.51.100.178",
			wantIP:     "203.0.113.195",
		},
		{
			name:       "X-Forwarded-For with spaces",
			remoteAddr: "192.168.1.1:12345",
			xff:        " 203.0.113.195 ,70.41.3.18",
			wantIP:     "203.0.113.195",
		},
		{
			name:       "invalid X-Forwarded-For falls back to X-Real-IP",
			remoteAddr: "192.168.1.1:12345",
			xff:        "not-an-ip",
			xri:        "203.0.113.195",
			wantIP:     "203.0.113.195",
		},
		{
			name:       "invalid X-Real-IP is ignored",
			remoteAddr: "192.168.1.1:12345",
			xri:        "invalid-ip",
			wantIP:     "192.168.1.1",
		},
		{
			name:       "trusted IPv6 proxy",
			remoteAddr: "[2001:db8::1]:12345",
			xff:        "203.0.113.195",
			wantIP:     "203.0.113.195",
		},
		{
			name:       "IPv4-mapped peer is matched as IPv4",
			remoteAddr: "[::ffff:192.168.1.9]:12345",
			xff:        "203.0.113.195",
			wantIP:     "203.0.113.195",
		},
		{
			name:       "untrusted peer X-Forwarded-For is ignored",
			remoteAddr: "198.51.100.7:4000",
			xff:        "203.0.113.195",
			wantIP:     "198.51.100.7",
		},
		{
			name:       "untrusted peer X-Real-IP is ignored",
			remoteAddr: "198.51.100.7:4000",
			xri:        "203.0.113.195",
			wantIP:     "198.51.100.7",
		},
		{
			name:       "RemoteAddr without port",
			remoteAddr: "198.51.100.7",
			xff:        "203.0.113.195",
			wantIP:     "198.51.100.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ExtractIP(forwardedRequest(tt.remoteAddr, tt.xff, tt.xri))
			if got != tt.wantIP {
				t.Errorf("ExtractIP() = %q, want %q", got, tt.wantIP)
			}
		})
	}
}

func TestRemoteAddrExtractor(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		wantIP     string
	}{
		{name: "IPv4", remoteAddr: "192.168.1.1:12345", wantIP: "192.168.1.1"},
		{name: "IPv6", remoteAddr: "[2001:db8::1]:12345", wantIP: "2001:db8::1"},
		{name: "without port", remoteAddr: "192.168.1.1", wantIP: "192.168.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := forwardedRequest(tt.remoteAddr, "203.0.113.195", "203.0.113.196")
			assert.Equal(t, tt.wantIP, RemoteAddrExtractor{}.ExtractIP(req))
		})
	}
}

func TestNewIPExtractor(t *testing.T) {
	assert.Equal(t, RemoteAddrExtractor{}, NewIPExtractor(nil))

	proxies := []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}
	assert.Equal(t, &TrustedProxyExtractor{Proxies: proxies}, NewIPExtractor(proxies))
}

func TestParseFirstIP(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{
			input: "203.0.113.195",
			want:  "203.0.113.195",
		},
		{
			input: "203.0.113.195, 70.41.3.18",
			want:  "203.0.113.195",
		},
		{
			input: "invalid, 70.41.3.18",
			want:  "",
		},
		{
			input: "",
			want:  "",
		},
		{
			input: "2001:db8::1",
			want:  "2001:db8::1",
		},
		{
			input: "2001:db8::1, 2001:db8::2",
			want:  "2001:db8::1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseFirstIP(tt.input)
			if got != tt.want {
				t.Errorf("parseFirstIP(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
