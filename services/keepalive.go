package services

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"
)

// KeepAlive periodically pings the service's own /ping endpoint so free-tier
// hosting does not idle the process. Failures are logged and swallowed; the
// next tick always retries.
type KeepAlive struct {
	TargetURL string
	Interval  time.Duration
	client    *http.Client
}

func NewKeepAlive(targetURL string, interval time.Duration) *KeepAlive {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &KeepAlive{
		TargetURL: strings.TrimSuffix(targetURL, "/"),
		Interval:  interval,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Run blocks until ctx is cancelled, pinging once per interval.
func (k *KeepAlive) Run(ctx context.Context) {
	if k.TargetURL == "" {
		log.Println("Keep-alive target URL not configured; task not started.")
		return
	}

	log.Printf("Keep-alive task started: pinging %s/ping every %s", k.TargetURL, k.Interval)

	ticker := time.NewTicker(k.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Keep-alive task stopped.")
			return
		case <-ticker.C:
			k.ping(ctx)
		}
	}
}

func (k *KeepAlive) ping(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.TargetURL+"/ping", nil)
	if err != nil {
		log.Printf("Keep-alive ping failed: %v", err)
		return
	}

	resp, err := k.client.Do(req)
	if err != nil {
		log.Printf("Keep-alive ping failed: %v", err)
		return
	}
	resp.Body.Close()

	log.Printf("Keep-alive ping: %d at %s", resp.StatusCode, time.Now().Format(time.RFC3339))
}
