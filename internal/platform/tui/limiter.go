package tui

import (
	"fmt"
	"net"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
)

// connLimiter caps concurrent SSH sessions per remote IP.
type connLimiter struct {
	mu     sync.Mutex
	counts map[string]int
	limit  int // 0 disables the limit
	logger *log.Logger
}

func newConnLimiter(limit int, logger *log.Logger) *connLimiter {
	return &connLimiter{
		counts: make(map[string]int),
		limit:  limit,
		logger: logger,
	}
}

// acquire reserves a slot for ip and reports the count before the attempt.
func (l *connLimiter) acquire(ip string) (ok bool, current int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	current = l.counts[ip]
	if l.limit > 0 && current >= l.limit {
		return false, current
	}
	l.counts[ip]++
	return true, current
}

func (l *connLimiter) release(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.counts[ip]--
	if l.counts[ip] <= 0 {
		delete(l.counts, ip)
	}
}

func (l *connLimiter) count(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[ip]
}

// Middleware rejects sessions from IPs that already hold the maximum.
func (l *connLimiter) Middleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := remoteIP(s.RemoteAddr())

		ok, current := l.acquire(ip)
		if !ok {
			l.logger.Warn("connection denied: IP limit exceeded", "ip", ip, "attempted", current+1, "limit", l.limit)
			fmt.Fprintf(s, "Too many active connections from your IP (%d/%d). Please try again later.\r\n", current+1, l.limit)
			s.Close()
			return
		}
		defer l.release(ip)

		next(s)
	}
}

func remoteIP(addr net.Addr) string {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.IP.String()
	}
	if host, _, err := net.SplitHostPort(addr.String()); err == nil {
		return host
	}
	return addr.String()
}
