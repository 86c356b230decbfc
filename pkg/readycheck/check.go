// Package readycheck waits for a supporting service to accept TCP
// connections. Orchestrators return before their services are ready, so
// the runner polls declared addresses after starting services and before
// running any check against them.
package readycheck

import (
	"context"
	"net"
	"time"

	"github.com/verneri/parity/pkg/check"
)

// Dialer abstracts network dialing for testability.
type Dialer interface {
	DialTimeout(network, address string, timeout time.Duration) (net.Conn, error)
}

// RealDialer uses the real net package.
type RealDialer struct{}

// DialTimeout dials the network address with a timeout.
func (d *RealDialer) DialTimeout(network, address string, timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout(network, address, timeout)
}

// Check polls a host:port until it accepts a TCP connection or the wait
// times out.
type Check struct {
	Address  string        // host:port to connect to
	Timeout  time.Duration // overall wait (default 30s)
	Interval time.Duration // delay between attempts (default 500ms)
	Dialer   Dialer        // injected for testing
}

// Run executes the readiness check.
func (c *Check) Run(ctx context.Context) check.Result {
	result := check.Result{
		Name: "ready: " + c.Address,
	}

	timeout := c.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	interval := c.Interval
	if interval == 0 {
		interval = 500 * time.Millisecond
	}

	deadline := time.Now().Add(timeout)
	attempts := 0
	for {
		attempts++
		conn, err := c.Dialer.DialTimeout("tcp", c.Address, interval)
		if err == nil {
			_ = conn.Close()
			result.AddDetailf("accepting connections after %d attempt(s)", attempts)
			result.Status = check.StatusOK
			return result
		}

		if time.Now().After(deadline) {
			return result.Failf("not ready after %s: %v", timeout, err)
		}

		select {
		case <-ctx.Done():
			return result.Failf("wait canceled: %v", ctx.Err())
		case <-time.After(interval):
		}
	}
}
