package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"

	"folio/types"
)

func TestKafkaPublisherTrack(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "page-views" {
			return fmt.Errorf("topic = %q", msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "/blog/shipping-go" {
			return fmt.Errorf("key = %q", key)
		}
		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var view types.PageView
		if err := json.Unmarshal(value, &view); err != nil {
			return err
		}
		if view.ID != "view-1" || view.Path != "/blog/shipping-go" {
			return fmt.Errorf("view = %+v", view)
		}
		return nil
	})

	pub := newKafkaPublisher(producer, "page-views", nil)
	err := pub.Track(context.Background(), types.PageView{ID: "view-1", Path: "/blog/shipping-go/?utm_source=rss"})
	if err != nil {
		t.Fatalf("Track: %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestKafkaPublisherTrackFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := newKafkaPublisher(producer, "page-views", nil)
	err := pub.Track(context.Background(), types.PageView{ID: "v", Path: "/"})
	if !errors.Is(err, sarama.ErrOutOfBrokers) {
		t.Fatalf("Track error = %v; want ErrOutOfBrokers", err)
	}
	_ = pub.Close()
}

func TestKafkaPublisherRejectsEmptyPath(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)

	pub := newKafkaPublisher(producer, "page-views", nil)
	if err := pub.Track(context.Background(), types.PageView{ID: "v"}); err == nil {
		t.Fatalf("Track accepted a view without a path")
	}
	// Close reports unexpected sends as test failures.
	_ = pub.Close()
}

type recordingTracker struct {
	views []types.PageView
	err   error
}

func (r *recordingTracker) Track(ctx context.Context, view types.PageView) error {
	if r.err != nil {
		return r.err
	}
	r.views = append(r.views, view)
	return nil
}

func TestAggregatorHandleMessage(t *testing.T) {
	cases := []struct {
		name      string
		message   string
		sinkErr   error
		wantMark  bool
		wantErr   bool
		wantViews int
	}{
		{"valid", `{"id":"a","path":"/about","viewed_at":"2024-05-01T10:00:00Z"}`, nil, true, false, 1},
		{"invalid json", `{"id":`, nil, true, false, 0},
		{"missing path", `{"id":"b","path":"  "}`, nil, true, false, 0},
		{"sink failure", `{"id":"c","path":"/"}`, errors.New("redis down"), false, true, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sink := &recordingTracker{err: c.sinkErr}
			handler := NewAggregator(sink, nil)

			mark, err := handler.HandleMessage(context.Background(), []byte(c.message))
			if mark != c.wantMark {
				t.Fatalf("shouldMark = %v; want %v", mark, c.wantMark)
			}
			if (err != nil) != c.wantErr {
				t.Fatalf("err = %v; wantErr %v", err, c.wantErr)
			}
			if len(sink.views) != c.wantViews {
				t.Fatalf("sink received %d views; want %d", len(sink.views), c.wantViews)
			}
		})
	}
}

func TestAggregatorFeedsRedisCounter(t *testing.T) {
	counter := newRedisCounter(newFakeZSet(), nil, "views")
	handler := NewAggregator(counter, nil)
	ctx := context.Background()

	for _, msg := range []string{`{"path":"/a"}`, `{"path":"/a/"}`, `{"path":"/b"}`} {
		if _, err := handler.HandleMessage(ctx, []byte(msg)); err != nil {
			t.Fatalf("HandleMessage(%s): %v", msg, err)
		}
	}

	n, err := counter.Count(ctx, "/a")
	if err != nil || n != 2 {
		t.Fatalf("Count(/a) = %d, %v; want 2", n, err)
	}
}

func TestNewPageView(t *testing.T) {
	a := NewPageView("/Blog/Post/#x", "https://News.Example.COM/item?utm_source=x")
	b := NewPageView("/Blog/Post", "")

	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("IDs are not unique: %q %q", a.ID, b.ID)
	}
	if a.Path != "/Blog/Post" || a.Referrer != "https://news.example.com/item" {
		t.Fatalf("view = %+v", a)
	}
	if a.ViewedAt.IsZero() {
		t.Fatalf("ViewedAt not set")
	}
}
