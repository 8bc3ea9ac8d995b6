package service

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/rekaindo/rekatrack/internal/core/domain"
	"github.com/rekaindo/rekatrack/internal/core/ports"
)

// stubGateway scripts responses per method+path and records every call.
type stubGateway struct {
	mu        sync.Mutex
	responses map[string]json.RawMessage
	errs      map[string]error
	// errCounts makes a scripted error fire only n times, then succeed.
	errCounts map[string]int
	calls     []gatewayCall
	uploads   []uploadCall
	uploadRes json.RawMessage
	uploadErr error
}

type gatewayCall struct {
	Method string
	Path   string
	Body   any
}

type uploadCall struct {
	Path     string
	Field    string
	Filename string
	Content  []byte
}

func newStubGateway() *stubGateway {
	return &stubGateway{
		responses: make(map[string]json.RawMessage),
		errs:      make(map[string]error),
		errCounts: make(map[string]int),
	}
}

func (g *stubGateway) respond(method, path string, v any) {
	raw, _ := json.Marshal(v)
	g.responses[method+" "+path] = raw
}

func (g *stubGateway) fail(method, path string, err error) {
	g.errs[method+" "+path] = err
}

func (g *stubGateway) failTimes(method, path string, err error, n int) {
	key := method + " " + path
	g.errs[key] = err
	g.errCounts[key] = n
}

func (g *stubGateway) Call(_ context.Context, method, path string, body any, _ map[string]string) (json.RawMessage, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, gatewayCall{Method: method, Path: path, Body: body})

	key := method + " " + path
	if err, ok := g.errs[key]; ok {
		if n, limited := g.errCounts[key]; limited {
			if n > 0 {
				g.errCounts[key] = n - 1
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	if raw, ok := g.responses[key]; ok {
		return raw, nil
	}
	return json.RawMessage(`{}`), nil
}

func (g *stubGateway) Upload(_ context.Context, path, field, filename string, r io.Reader) (json.RawMessage, error) {
	content, _ := io.ReadAll(r)
	g.mu.Lock()
	defer g.mu.Unlock()
	g.uploads = append(g.uploads, uploadCall{Path: path, Field: field, Filename: filename, Content: content})
	if g.uploadErr != nil {
		return nil, g.uploadErr
	}
	if g.uploadRes != nil {
		return g.uploadRes, nil
	}
	return json.RawMessage(`{"photo_path":"/storage/delivery-photos/stub.jpg"}`), nil
}

func (g *stubGateway) callCount(method, path string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, c := range g.calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// stubLocation serves a fixed coordinate and hands the watch callback to the
// test so emissions can be driven manually.
type stubLocation struct {
	coord      domain.Coordinates
	currentErr error
	watchErr   error

	mu      sync.Mutex
	emit    func(domain.Coordinates)
	stopped bool
}

func (l *stubLocation) Current(_ context.Context) (domain.Coordinates, error) {
	if l.currentErr != nil {
		return domain.Coordinates{}, l.currentErr
	}
	return l.coord, nil
}

func (l *stubLocation) Watch(_ context.Context, _ ports.WatchOptions, fn func(domain.Coordinates)) (ports.Subscription, error) {
	if l.watchErr != nil {
		return nil, l.watchErr
	}
	l.mu.Lock()
	l.emit = fn
	l.mu.Unlock()
	return stubSubscription{l}, nil
}

func (l *stubLocation) move(c domain.Coordinates) {
	l.mu.Lock()
	fn := l.emit
	l.mu.Unlock()
	if fn != nil {
		fn(c)
	}
}

type stubSubscription struct{ l *stubLocation }

func (s stubSubscription) Stop() {
	s.l.mu.Lock()
	s.l.stopped = true
	s.l.mu.Unlock()
}

// stubStore is an in-memory ports.SessionStore.
type stubStore struct {
	mu      sync.Mutex
	session domain.Session
	has     bool
	getErr  error
	setErr  error
}

func (s *stubStore) Get(_ context.Context) (domain.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return domain.Session{}, false, s.getErr
	}
	return s.session, s.has && s.session.Valid(), nil
}

func (s *stubStore) Set(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.session = session
	s.has = true
	return nil
}

func (s *stubStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.Session{}
	s.has = false
	return nil
}

func (s *stubStore) ClearToken(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Token = ""
	return nil
}

// noSleep skips retry delays so tests run without timers.
func noSleep(context.Context, time.Duration) error { return nil }
