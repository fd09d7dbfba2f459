package analytics

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/IBM/sarama"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeSession struct {
	sarama.ConsumerGroupSession
	ctx    context.Context
	marked []int64
}

func (s *fakeSession) Context() context.Context { return s.ctx }

func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.marked = append(s.marked, msg.Offset)
}

type fakeClaim struct {
	sarama.ConsumerGroupClaim
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func claimOf(values ...string) *fakeClaim {
	ch := make(chan *sarama.ConsumerMessage, len(values))
	for i, v := range values {
		ch <- &sarama.ConsumerMessage{Topic: "page-views", Offset: int64(i), Value: []byte(v)}
	}
	close(ch)
	return &fakeClaim{messages: ch}
}

func TestConsumeClaimMarking(t *testing.T) {
	cases := []struct {
		name       string
		message    string
		sinkErr    error
		wantMarked bool
		wantViews  int
	}{
		{"valid", `{"id":"a","path":"/about"}`, nil, true, 1},
		{"invalid json", `{"id":`, nil, true, 0},
		{"missing path", `{"id":"b"}`, nil, true, 0},
		{"sink failure", `{"id":"c","path":"/"}`, errors.New("redis down"), false, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sink := &recordingTracker{err: c.sinkErr}
			handler := &consumerGroupHandler{handler: NewAggregator(sink, nil), logger: discardLogger()}
			session := &fakeSession{ctx: context.Background()}

			if err := handler.ConsumeClaim(session, claimOf(c.message)); err != nil {
				t.Fatalf("ConsumeClaim: %v", err)
			}
			if marked := len(session.marked) == 1; marked != c.wantMarked {
				t.Fatalf("marked offsets = %v; want marked %v", session.marked, c.wantMarked)
			}
			if len(sink.views) != c.wantViews {
				t.Fatalf("sink received %d views; want %d", len(sink.views), c.wantViews)
			}
		})
	}
}

func TestConsumeClaimMarksInOrder(t *testing.T) {
	sink := &recordingTracker{}
	handler := &consumerGroupHandler{handler: NewAggregator(sink, nil), logger: discardLogger()}
	session := &fakeSession{ctx: context.Background()}

	claim := claimOf(`{"path":"/a"}`, `not json`, `{"path":"/b"}`)
	if err := handler.ConsumeClaim(session, claim); err != nil {
		t.Fatalf("ConsumeClaim: %v", err)
	}
	if len(session.marked) != 3 || session.marked[0] != 0 || session.marked[2] != 2 {
		t.Fatalf("marked offsets = %v; want [0 1 2]", session.marked)
	}
	if len(sink.views) != 2 {
		t.Fatalf("sink received %d views; want 2", len(sink.views))
	}
}

func TestConsumeClaimStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	handler := &consumerGroupHandler{handler: NewAggregator(&recordingTracker{}, nil), logger: discardLogger()}
	session := &fakeSession{ctx: ctx}
	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage)}

	done := make(chan error, 1)
	go func() { done <- handler.ConsumeClaim(session, claim) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ConsumeClaim: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ConsumeClaim did not return after the session context was cancelled")
	}
	if len(session.marked) != 0 {
		t.Fatalf("marked offsets = %v; want none", session.marked)
	}
}
