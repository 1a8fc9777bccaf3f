package sender

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m3rciful/contentbot/core/logger"
	"github.com/m3rciful/contentbot/core/metrics"
	"github.com/m3rciful/contentbot/core/telegram/netutil"

	tele "gopkg.in/telebot.v4"
)

var (
	// ErrQueueClosed is returned when enqueue is attempted after dispatcher stop.
	ErrQueueClosed = errors.New("telegram sender: queue closed")
	// ErrQueueFull indicates the queue is saturated and the job was not accepted.
	ErrQueueFull = errors.New("telegram sender: queue full")

	tokenRe = regexp.MustCompile(`bot[0-9]+:[A-Za-z0-9_-]+`)
)

// Options controls the behaviour of the outbound dispatcher.
type Options struct {
	// QueueSize bounds each worker lane.
	QueueSize int
	Workers   int
}

type job struct {
	ctx      context.Context
	action   string
	endpoint string
	run      func() error
	done     chan error
}

// Dispatcher executes outbound Telegram calls on a fixed set of workers.
// Jobs sharing a key (the chat id) always land on the same worker, so
// messages to one chat are delivered in the order they were queued.
// Failed calls are logged and counted, never retried.
type Dispatcher struct {
	lanes []chan job
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool

	errs atomic.Uint64
}

// NewDispatcher starts a dispatcher with defaults for zeroed options.
func NewDispatcher(opts Options) *Dispatcher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 64
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	d := &Dispatcher{lanes: make([]chan job, opts.Workers)}
	d.wg.Add(opts.Workers)
	for i := range d.lanes {
		d.lanes[i] = make(chan job, opts.QueueSize)
		go d.worker(d.lanes[i])
	}
	return d
}

// Enqueue schedules run on the lane owned by key and returns immediately.
func (d *Dispatcher) Enqueue(ctx context.Context, key int64, action, endpoint string, run func() error) error {
	return d.submit(key, job{ctx: ctx, action: action, endpoint: endpoint, run: run})
}

// Do schedules run behind anything already queued for key and waits for its result.
func (d *Dispatcher) Do(ctx context.Context, key int64, action, endpoint string, run func() error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	done := make(chan error, 1)
	if err := d.submit(key, job{ctx: ctx, action: action, endpoint: endpoint, run: run, done: done}); err != nil {
		return err
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) submit(key int64, j job) error {
	if j.run == nil {
		return errors.New("telegram sender: nil run function")
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrQueueClosed
	}
	select {
	case d.lanes[uint64(key)%uint64(len(d.lanes))] <- j:
		return nil
	default:
		return ErrQueueFull
	}
}

// ErrorCount returns the number of failed jobs.
func (d *Dispatcher) ErrorCount() uint64 {
	return d.errs.Load()
}

// Close stops accepting jobs and waits for queued ones to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, lane := range d.lanes {
		close(lane)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) worker(lane <-chan job) {
	defer d.wg.Done()
	for j := range lane {
		d.handleJob(j)
	}
}

func (d *Dispatcher) handleJob(j job) {
	ctx := j.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	err := j.run()
	if err != nil {
		d.errs.Add(1)
		kind := classifyError(err)
		metrics.SendFailures.WithLabelValues(kind).Inc()
		logger.Error(ctx, "tg.sender", "send.fail", append(sendLogAttrs(j),
			slog.String("err", sanitizeErrorMessage(err)),
			slog.String("error_kind", kind),
			slog.Bool("retryable", netutil.IsTransient(err)),
			slog.Duration("duration", logger.Took(start)),
		)...)
	} else {
		logger.Debug(ctx, "tg.sender", "send.success", append(sendLogAttrs(j),
			slog.Duration("duration", logger.Took(start)),
		)...)
	}
	if j.done != nil {
		j.done <- err
	}
}

func sendLogAttrs(j job) []slog.Attr {
	attrs := []slog.Attr{slog.String("action", j.action)}
	if j.endpoint != "" {
		attrs = append(attrs, slog.String("endpoint", j.endpoint))
	}
	return attrs
}

func classifyError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return "timeout"
		}
		return "dns"
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() {
			return "timeout"
		}
		if opErr.Op == "dial" {
			return "dial"
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return "timeout"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}

	var alertErr tls.AlertError
	if errors.As(err, &alertErr) {
		return "tls"
	}

	switch status := httpStatusFromError(err); {
	case status == http.StatusForbidden:
		return "blocked"
	case status == http.StatusTooManyRequests:
		return "flood"
	case status >= 500:
		return "http_5xx"
	case status >= 400:
		return "http_4xx"
	}
	return "unknown"
}

// sanitizeErrorMessage prevents accidental leakage of Telegram bot tokens in logs.
func sanitizeErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	return tokenRe.ReplaceAllString(err.Error(), "bot<redacted>")
}

func httpStatusFromError(err error) int {
	var apiErr *tele.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var floodErr tele.FloodError
	if errors.As(err, &floodErr) {
		return http.StatusTooManyRequests
	}

	// telebot renders unknown API failures as "telegram: <description> (<code>)".
	msg := err.Error()
	lo, hi := strings.LastIndex(msg, "("), strings.LastIndex(msg, ")")
	if lo >= 0 && hi > lo+1 {
		if code, convErr := strconv.Atoi(strings.TrimSpace(msg[lo+1 : hi])); convErr == nil {
			return code
		}
	}
	return 0
}
