package push

import (
	"context"
	"errors"
	"sync"

	"github.com/penwyp/go-activity-monitor/internal/util"
)

// Subscription delivers decoded updates in arrival order until closed.
// The channel is closed once the transport stops.
type Subscription interface {
	Updates() <-chan Update
	Close() error
}

// stream is the transport-independent half of a subscription: an unbounded
// FIFO between the transport reader and the consumer.
type stream struct {
	in     chan Update
	out    chan Update
	ctx    context.Context
	cancel context.CancelFunc

	closeOnce sync.Once
	closeErr  error
	closer    func() error
	readers   sync.WaitGroup
	transport string
}

func newStream(parent context.Context, transport string) *stream {
	ctx, cancel := context.WithCancel(parent)
	s := &stream{
		in:        make(chan Update),
		out:       make(chan Update),
		ctx:       ctx,
		cancel:    cancel,
		transport: transport,
	}
	go s.pump()
	return s
}

// pump moves updates from in to out, queueing without bound so a slow
// consumer never stalls the transport.
func (s *stream) pump() {
	defer close(s.out)

	var pending []Update
	in := s.in
	for in != nil || len(pending) > 0 {
		var (
			out  chan Update
			next Update
		)
		if len(pending) > 0 {
			out = s.out
			next = pending[0]
		}

		select {
		case u, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			pending = append(pending, u)
		case out <- next:
			pending[0] = nil
			pending = pending[1:]
		case <-s.ctx.Done():
			if in != nil {
				// Drain producers so they can observe cancellation and exit
				go func(ch chan Update) {
					for range ch {
					}
				}(in)
			}
			return
		}
	}
}

// run starts a reader goroutine; in is closed once every reader has returned
func (s *stream) run(reader func(ctx context.Context)) {
	s.readers.Add(1)
	go func() {
		defer s.readers.Done()
		reader(s.ctx)
	}()
}

func (s *stream) start() {
	go func() {
		s.readers.Wait()
		close(s.in)
	}()
}

// deliver hands a decoded message to the queue, or logs and drops a bad one
func (s *stream) deliver(name string, payload []byte) {
	update, err := Decode(name, payload)
	if err != nil {
		if errors.Is(err, ErrUnknownEvent) {
			util.LogDebug("Ignoring push event", util.F("transport", s.transport), util.F("event", name))
		} else {
			util.LogWarn("Dropping malformed push message",
				util.F("transport", s.transport), util.F("event", name), util.F("error", err))
		}
		return
	}

	select {
	case s.in <- update:
	case <-s.ctx.Done():
	}
}

func (s *stream) Updates() <-chan Update {
	return s.out
}

func (s *stream) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		if s.closer != nil {
			s.closeErr = s.closer()
		}
	})
	return s.closeErr
}
