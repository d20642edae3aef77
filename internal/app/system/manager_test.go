package system

import (
	"context"
	"errors"
	"testing"
)

type recordingService struct {
	name     string
	failWith error
	events   *[]string
}

func (s recordingService) Name() string { return s.name }

func (s recordingService) Start(context.Context) error {
	if s.failWith != nil {
		return s.failWith
	}
	*s.events = append(*s.events, "start:"+s.name)
	return nil
}

func (s recordingService) Stop(context.Context) error {
	*s.events = append(*s.events, "stop:"+s.name)
	return nil
}

func TestStartStopOrdering(t *testing.T) {
	var events []string
	m := NewManager()
	for _, name := range []string{"a", "b"} {
		if err := m.Register(recordingService{name: name, events: &events}); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	ctx := context.Background()
	if err := m.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}

	want := []string{"start:a", "start:b", "stop:b", "stop:a"}
	if len(events) != len(want) {
		t.Fatalf("events %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events %v, want %v", events, want)
		}
	}
}

func TestStartFailureUnwindsStartedServices(t *testing.T) {
	var events []string
	m := NewManager()
	boom := errors.New("boom")
	_ = m.Register(recordingService{name: "a", events: &events})
	_ = m.Register(recordingService{name: "b", failWith: boom, events: &events})

	err := m.Start(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if len(events) != 2 || events[1] != "stop:a" {
		t.Fatalf("expected a to be unwound, got %v", events)
	}
}

func TestDuplicateRegistrationRejected(t *testing.T) {
	var events []string
	m := NewManager()
	_ = m.Register(recordingService{name: "a", events: &events})
	if err := m.Register(recordingService{name: "a", events: &events}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}
