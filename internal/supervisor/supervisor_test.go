package supervisor

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AnshRaj112/feedbackhub-backend/internal/logging"
)

type fakeServer struct {
	listenErr error
	stop      chan struct{}
	shutdowns atomic.Int32
}

func newFakeServer() *fakeServer { return &fakeServer{stop: make(chan struct{})} }

func (s *fakeServer) ListenAndServe() error {
	if s.listenErr != nil {
		return s.listenErr
	}
	<-s.stop
	return http.ErrServerClosed
}

func (s *fakeServer) Shutdown(context.Context) error {
	if s.shutdowns.Add(1) == 1 {
		close(s.stop)
	}
	return nil
}

func TestHTTPServerServiceGracefulShutdown(t *testing.T) {
	srv := newFakeServer()
	svc := NewHTTPServerService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
	}
	if srv.shutdowns.Load() != 1 {
		t.Errorf("Shutdown called %d times", srv.shutdowns.Load())
	}
}

func TestHTTPServerServiceListenError(t *testing.T) {
	srv := newFakeServer()
	srv.listenErr = errors.New("address already in use")
	err := NewHTTPServerService(srv, time.Second).Serve(context.Background())
	if err == nil || !errors.Is(err, srv.listenErr) {
		t.Errorf("Serve() = %v", err)
	}
}

type countingService struct {
	started atomic.Int32
}

func (c *countingService) Serve(ctx context.Context) error {
	c.started.Add(1)
	<-ctx.Done()
	return ctx.Err()
}

func TestTreeRunsAndStopsServices(t *testing.T) {
	tree := NewTree(logging.NewSlogLogger(), TreeConfig{ShutdownTimeout: time.Second})
	msg, api := &countingService{}, &countingService{}
	tree.AddMessagingService(msg)
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tree.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for msg.started.Load() == 0 || api.started.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("services not started")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("tree did not stop")
	}
	report, err := tree.UnstoppedServiceReport()
	if err != nil {
		t.Fatalf("UnstoppedServiceReport() error = %v", err)
	}
	if len(report) != 0 {
		t.Errorf("unstopped services: %v", report)
	}
}
