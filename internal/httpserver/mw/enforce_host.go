package mw

import (
	"net"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/shelf/internal/logger"
)

// EnforceHost allows requests only if the Host header matches one of the allowed hosts.
// Patterns like "*.example.com" match any subdomain. The port is ignored and
// the comparison is case-insensitive. An empty list is a passthrough.
func EnforceHost(allowedHosts []string, log logger.Logger) func(http.Handler) http.Handler {
	if len(allowedHosts) == 0 {
		log.Debug("EnforceHost: empty allowedHosts, passthrough mode")
		return func(next http.Handler) http.Handler { return next }
	}

	patterns := make([]string, 0, len(allowedHosts))
	for _, h := range allowedHosts {
		patterns = append(patterns, strings.ToLower(h))
	}
	log.Debugf("EnforceHost: initialized with hosts=%v", patterns)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := requestHost(r)
			for _, pattern := range patterns {
				if matchHost(host, pattern) {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Debug("EnforceHost: rejected", logger.String("host", host))
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}
}

func requestHost(r *http.Request) string {
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(host)
}

// matchHost checks if host matches pattern (supports wildcard *.example.com)
func matchHost(host, pattern string) bool {
	if host == pattern {
		return true
	}

	// *.example.com matches sub.example.com but not example.com
	if strings.HasPrefix(pattern, "*.") {
		return strings.HasSuffix(host, pattern[1:])
	}

	return false
}
