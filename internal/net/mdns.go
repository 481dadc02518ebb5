package net

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceType = "_dotworld._tcp"

// Advertise announces a frame mirror on port. The session id goes into the
// TXT record so spectators can tell hosts apart. Call Shutdown on the result.
func Advertise(port int, session string) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(host, serviceType, "", "", port, nil, []string{"session=" + session})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Discover returns the host:port of the first mirror that answers within
// timeout.
func Discover(ctx context.Context, timeout time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if dl, ok := ctx.Deadline(); ok && time.Until(dl) < timeout {
		timeout = time.Until(dl)
	}

	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	var addr string
	go func() {
		defer close(done)
		for e := range entries {
			if addr != "" || e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			addr = fmt.Sprintf("%s:%d", e.AddrV4, e.Port)
		}
	}()

	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.Query(params)
	close(entries)
	<-done

	if err != nil {
		return "", fmt.Errorf("mDNS query: %w", err)
	}
	if addr == "" {
		return "", fmt.Errorf("no %s service found", serviceType)
	}
	return addr, nil
}
