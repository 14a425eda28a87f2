package device

import (
	"errors"
	"sync"
	"time"
)

// ErrClosed is returned by pipe operations after Close.
var ErrClosed = errors.New("device closed")

// PipeDevice is an in-memory Device for the simulation and tests. Lines
// pushed with Inject appear on ReadLine; lines written by the rover are
// collected and readable via Sent.
type PipeDevice struct {
	in     chan string
	closed chan struct{}

	mu        sync.Mutex
	sent      []string
	closeOnce sync.Once
}

// NewPipeDevice returns an open pipe with a buffered inbound queue.
func NewPipeDevice() *PipeDevice {
	return &PipeDevice{in: make(chan string, 64), closed: make(chan struct{})}
}

// Inject queues a line as if the host had sent it. Dropped after Close.
func (p *PipeDevice) Inject(line string) {
	select {
	case p.in <- line:
	case <-p.closed:
	}
}

// ReadLine pops the next injected line, waiting up to timeout.
func (p *PipeDevice) ReadLine(timeout time.Duration) (string, error) {
	if timeout <= 0 {
		select {
		case line := <-p.in:
			return line, nil
		case <-p.closed:
			return "", ErrClosed
		}
	}
	select {
	case line := <-p.in:
		return line, nil
	case <-p.closed:
		return "", ErrClosed
	case <-time.After(timeout):
		return "", errors.New("read timeout")
	}
}

// WriteLine records an outbound line.
func (p *PipeDevice) WriteLine(line string) error {
	select {
	case <-p.closed:
		return ErrClosed
	default:
	}
	p.mu.Lock()
	p.sent = append(p.sent, line)
	p.mu.Unlock()
	return nil
}

// Sent returns a copy of every line the rover has written.
func (p *PipeDevice) Sent() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.sent))
	copy(out, p.sent)
	return out
}

// Close unblocks all pending reads. Idempotent.
func (p *PipeDevice) Close() error {
	p.closeOnce.Do(func() { close(p.closed) })
	return nil
}
