package httpapi

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// Edge proxy headers in trust order. RemoteAddr is the last resort.
var (
	clientIPHeaders      = []string{"Fly-Client-IP", "CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}
	clientCountryHeaders = []string{"Fly-Client-Country", "CF-IPCountry", "X-Vercel-IP-Country", "CloudFront-Viewer-Country"}
)

const unknownCountry = "ZZ"

func clientIP(r *http.Request) string {
	for _, header := range clientIPHeaders {
		if addr, ok := parseClientAddr(r.Header.Get(header)); ok {
			return addr
		}
	}
	if addr, ok := parseClientAddr(r.RemoteAddr); ok {
		return addr
	}
	return ""
}

func clientCountry(r *http.Request) string {
	for _, header := range clientCountryHeaders {
		code := strings.ToUpper(strings.TrimSpace(r.Header.Get(header)))
		if isCountryCode(code) {
			return code
		}
	}
	return unknownCountry
}

// parseClientAddr takes the first hop of a forwarded list and drops any port.
func parseClientAddr(raw string) (string, bool) {
	value, _, _ := strings.Cut(raw, ",")
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	if host, _, err := net.SplitHostPort(value); err == nil {
		value = host
	}
	addr, err := netip.ParseAddr(value)
	if err != nil {
		return "", false
	}
	return addr.Unmap().String(), true
}

func isCountryCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
