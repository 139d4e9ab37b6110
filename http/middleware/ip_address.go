package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/xy-planning-network/responder"
)

// InjectIPAddress grabs the IP address in the *http.Request.Header
// and promotes it to *http.Request.Context under responder.IpAddrKey.
func InjectIPAddress() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := GetIPAddress(r.Header)
			h.ServeHTTP(w, r.Clone(context.WithValue(r.Context(), responder.IpAddrKey, ip)))
		})
	}
}

// GetIPAddress parses "X-Forwarded-For" and "X-Real-Ip" headers for the IP address
// of the client making the request.
//
// GetIPAddress skips loopback, private and shared addresses.
func GetIPAddress(hm http.Header) string {
	for _, h := range []string{"X-Forwarded-For", "X-Real-Ip"} {
		addresses := strings.Split(hm.Get(h), ",")
		// march from right to left until we get a public address
		// that will be the address right before our proxy.
		for i := len(addresses) - 1; i >= 0; i-- {
			ip := strings.TrimSpace(addresses[i])
			realIP := net.ParseIP(ip)
			if !realIP.IsGlobalUnicast() || realIP.IsPrivate() || isSharedSubnet(realIP) {
				continue
			}

			return ip
		}
	}

	return "0.0.0.0"
}

// shared is the carrier-grade NAT range, RFC 6598.
var shared = &net.IPNet{IP: net.IPv4(100, 64, 0, 0), Mask: net.CIDRMask(10, 32)}

func isSharedSubnet(ip net.IP) bool { return shared.Contains(ip) }
