package utils

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// hostOnly strips a port from "ip:port" or "[v6]:port"; plain hosts pass through.
func hostOnly(s string) string {
	s = strings.TrimSpace(s)
	if h, _, err := net.SplitHostPort(s); err == nil {
		return h
	}
	return s
}

// ClientIP resolves the client address used for access control and rate limiting.
// With trustProxy it prefers CF-Connecting-IP, then the left-most X-Forwarded-For,
// then X-Real-IP. Otherwise only RemoteAddr is used.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		candidates := []string{
			r.Header.Get("CF-Connecting-IP"),
			firstForwarded(r.Header.Get("X-Forwarded-For")),
			r.Header.Get("X-Real-IP"),
		}
		for _, c := range candidates {
			if ip := hostOnly(c); ip != "" {
				return ip
			}
		}
	}
	return hostOnly(r.RemoteAddr)
}

func firstForwarded(xff string) string {
	first, _, _ := strings.Cut(xff, ",")
	return strings.TrimSpace(first)
}

// IPMatcher matches addresses against exact IPs and CIDR prefixes.
type IPMatcher struct {
	prefixes []netip.Prefix
}

// NewIPMatcher parses entries like "10.0.0.1" or "10.0.0.0/8"; invalid entries are skipped.
func NewIPMatcher(list []string) *IPMatcher {
	m := &IPMatcher{}
	for _, raw := range list {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		if p, err := netip.ParsePrefix(s); err == nil {
			m.prefixes = append(m.prefixes, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(s); err == nil {
			a = a.Unmap()
			m.prefixes = append(m.prefixes, netip.PrefixFrom(a, a.BitLen()))
		}
	}
	return m
}

// IsEmpty reports whether no rule was parsed.
func (m *IPMatcher) IsEmpty() bool {
	return len(m.prefixes) == 0
}

// Allow reports whether ip matches any rule.
func (m *IPMatcher) Allow(ip string) bool {
	a, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil {
		return false
	}
	a = a.Unmap()
	for _, p := range m.prefixes {
		if p.Contains(a) {
			return true
		}
	}
	return false
}
