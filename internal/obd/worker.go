package obd

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// RequestKind selects one of the two diagnostic commands.
type RequestKind string

const (
	RequestRead  RequestKind = "READ"
	RequestClear RequestKind = "CLEAR"
)

// Request is one diagnostic command handed off from the input loop.
type Request struct {
	Kind   RequestKind
	Issued time.Time
}

// Result is the outcome of a completed request.
type Result struct {
	Request   Request
	Codes     []FaultCode // READ only
	Err       error
	Completed time.Time
}

// Worker runs the Diagnostics collaborator off the polling loop. Requests
// go in through a non-blocking enqueue; outcomes come back on a channel the
// run loop drains. The worker never retries — one request in, one result
// out.
type Worker struct {
	diag     Diagnostics
	requests chan Request
	results  chan Result
	timeout  time.Duration
	log      zerolog.Logger
}

// NewWorker creates a worker with the given queue depth and per-request
// timeout.
func NewWorker(diag Diagnostics, queueSize int, timeout time.Duration, log zerolog.Logger) *Worker {
	return &Worker{
		diag:     diag,
		requests: make(chan Request, queueSize),
		results:  make(chan Result, queueSize),
		timeout:  timeout,
		log:      log.With().Str("component", "obd-worker").Logger(),
	}
}

// Enqueue hands a request to the worker without blocking. It reports false
// when the queue is full, in which case the request is dropped (the press
// that caused it has already been consumed; the user simply presses again).
func (w *Worker) Enqueue(req Request) bool {
	select {
	case w.requests <- req:
		return true
	default:
		w.log.Warn().Str("kind", string(req.Kind)).Msg("request queue full, dropping")
		return false
	}
}

// Results returns the channel the run loop consumes outcomes from.
func (w *Worker) Results() <-chan Result {
	return w.results
}

// Run processes requests until the context is cancelled. Intended to run on
// its own goroutine.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-w.requests:
			res := w.execute(ctx, req)

			select {
			case w.results <- res:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (w *Worker) execute(ctx context.Context, req Request) Result {
	reqCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	res := Result{Request: req}
	switch req.Kind {
	case RequestRead:
		res.Codes, res.Err = w.diag.ReadFaultCodes(reqCtx)
	case RequestClear:
		res.Err = w.diag.ClearFaultCodes(reqCtx)
	}
	res.Completed = time.Now()

	if res.Err != nil {
		w.log.Error().Err(res.Err).Str("kind", string(req.Kind)).Msg("diagnostic request failed")
	}
	return res
}
