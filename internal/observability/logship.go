package observability

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/tournament-hub/internal/config"
	"github.com/riskibarqy/tournament-hub/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
)

const (
	logShipQueueSize     = 1024
	logShipBatchSize     = 50
	logShipFlushInterval = time.Second
	logShipDrainTimeout  = 5 * time.Second
)

// ShutdownFunc flushes and releases an observability component.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// InitLogShipper tees records at LOG_SHIP_MIN_LEVEL and above to an HTTP
// log ingest endpoint. Records are posted in batches as a JSON array.
func InitLogShipper(cfg config.Config, base *logging.Logger) (*logging.Logger, ShutdownFunc, error) {
	if base == nil {
		base = logging.NewJSON(cfg.LogLevel)
	}

	if !cfg.LogShipEnabled {
		base.Info("log shipping disabled", "reason", "LOG_SHIP_ENABLED=false")
		return base, noopShutdown, nil
	}

	endpoint := normalizeIngestEndpoint(cfg.LogShipEndpoint)
	if endpoint == "" {
		return nil, nil, fmt.Errorf("log ship endpoint cannot be empty")
	}

	shipper := newLogShipper(endpoint, cfg.LogShipToken, cfg.LogShipTimeout)
	logger := base.Tee(shipper, cfg.LogShipMinLevel)
	logger.Info("log shipping enabled",
		"endpoint", endpoint,
		"min_level", cfg.LogShipMinLevel.String(),
		"service_name", cfg.ServiceName,
	)

	return logger, func(ctx context.Context) error {
		if ctx == nil {
			ctx = context.Background()
		}
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, logShipDrainTimeout)
			defer cancel()
		}
		if err := shipper.Close(ctx); err != nil {
			return fmt.Errorf("drain log ship queue: %w", err)
		}
		return nil
	}, nil
}

func normalizeIngestEndpoint(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	return "https://" + value
}

// logShipper is a zapcore.WriteSyncer that never blocks the caller. Records
// are dropped when the queue is full.
type logShipper struct {
	endpoint  string
	token     string
	client    *http.Client
	queue     chan []byte
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	done      chan struct{}
	dropped   atomic.Uint64
}

func newLogShipper(endpoint, token string, timeout time.Duration) *logShipper {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	s := &logShipper{
		endpoint: endpoint,
		token:    strings.TrimSpace(token),
		client:   &http.Client{Timeout: timeout},
		queue:    make(chan []byte, logShipQueueSize),
		done:     make(chan struct{}),
	}
	go s.run()

	return s
}

func (s *logShipper) Write(p []byte) (int, error) {
	record := bytes.TrimSpace(p)
	if len(record) == 0 {
		return len(p), nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return len(p), nil
	}

	// zap reuses the buffer after Write returns.
	copied := append([]byte(nil), record...)
	select {
	case s.queue <- copied:
	default:
		if n := s.dropped.Add(1); n == 1 || n%100 == 0 {
			fmt.Fprintf(os.Stderr, "log ship queue full; dropped=%d\n", n)
		}
	}

	return len(p), nil
}

func (s *logShipper) Sync() error {
	return nil
}

func (s *logShipper) run() {
	defer close(s.done)

	ticker := time.NewTicker(logShipFlushInterval)
	defer ticker.Stop()

	batch := make([][]byte, 0, logShipBatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		s.post(batch)
		batch = batch[:0]
	}

	for {
		select {
		case record, ok := <-s.queue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, record)
			if len(batch) >= logShipBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

func (s *logShipper) post(batch [][]byte) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_ = buf.WriteByte('[')
	for i, record := range batch {
		if i > 0 {
			_ = buf.WriteByte(',')
		}
		_, _ = buf.Write(record)
	}
	_ = buf.WriteByte(']')

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, s.endpoint, bytes.NewReader(buf.B))
	if err != nil {
		fmt.Fprintf(os.Stderr, "log ship create request failed: %v\n", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log ship send failed: %v\n", err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusMultipleChoices {
		fmt.Fprintf(os.Stderr, "log ship got non-2xx status=%d records=%d\n", resp.StatusCode, len(batch))
	}
}

// Close stops accepting records and waits for queued batches to be posted.
func (s *logShipper) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.queue)
		s.mu.Unlock()
	})

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
