// pkg/ports/scanner.go - finds which processes listen on the WAMP ports.

package ports

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ErrNoOwner is set on a Result when a socket is listening but the owning
// process could not be identified.
var ErrNoOwner = errors.New("listening socket has no identifiable owner")

// Owner is the process holding a port.
type Owner struct {
	Name string
	PID  int32
}

func (o Owner) String() string {
	return fmt.Sprintf("%s (pid %d)", o.Name, o.PID)
}

// Result is the outcome for one requested port. Exactly one of the following
// holds: Err is set, Owner is set, or the port is free.
type Result struct {
	Port  int
	Owner *Owner
	Err   error
}

// Free reports a port with no listener.
func (r Result) Free() bool {
	return r.Err == nil && r.Owner == nil
}

// Listener is a listening TCP socket.
type Listener struct {
	Port int
	PID  int32
}

// ListenerSource enumerates listening TCP sockets.
type ListenerSource interface {
	Listeners(ctx context.Context) ([]Listener, error)
}

// NameResolver maps a process id to its executable name.
type NameResolver interface {
	ProcessName(ctx context.Context, pid int32) (string, error)
}

// Scanner probes a list of ports.
type Scanner struct {
	listeners ListenerSource
	names     NameResolver
	limit     int
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithListenerSource replaces the socket table reader.
func WithListenerSource(src ListenerSource) Option {
	return func(s *Scanner) { s.listeners = src }
}

// WithNameResolver replaces the process name lookup.
func WithNameResolver(r NameResolver) Option {
	return func(s *Scanner) { s.names = r }
}

// WithConcurrency bounds parallel process name lookups.
func WithConcurrency(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.limit = n
		}
	}
}

// NewScanner returns a Scanner backed by the host socket and process tables.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		listeners: hostListeners{},
		names:     hostNames{},
		limit:     4,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan returns one Result per requested port, in request order. A failure
// to read the socket table is reported on every port; a failed name lookup
// only on its own port.
func (s *Scanner) Scan(ctx context.Context, ports []int) []Result {
	results := make([]Result, len(ports))
	for i, p := range ports {
		results[i].Port = p
	}

	listeners, err := s.listeners.Listeners(ctx)
	if err != nil {
		for i := range results {
			results[i].Err = fmt.Errorf("reading TCP table: %w", err)
		}
		return results
	}

	byPort := make(map[int]int32, len(listeners))
	for _, l := range listeners {
		// keep the first socket with a real pid; IPv4 and IPv6 usually agree
		if pid, seen := byPort[l.Port]; seen && pid > 0 {
			continue
		}
		byPort[l.Port] = l.PID
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)
	for i := range results {
		pid, listening := byPort[results[i].Port]
		if !listening {
			continue
		}
		if pid <= 0 {
			results[i].Err = ErrNoOwner
			continue
		}
		r := &results[i]
		g.Go(func() error {
			name, err := s.names.ProcessName(gctx, pid)
			name = strings.TrimSpace(name)
			switch {
			case err != nil:
				r.Err = fmt.Errorf("resolving pid %d: %w", pid, err)
			case name == "":
				r.Err = fmt.Errorf("pid %d: %w", pid, ErrNoOwner)
			default:
				r.Owner = &Owner{Name: name, PID: pid}
			}
			// per-port failures stay on the port; never cancel siblings
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// AsMap indexes results by port.
func AsMap(results []Result) map[int]Result {
	m := make(map[int]Result, len(results))
	for _, r := range results {
		m[r.Port] = r
	}
	return m
}
