package notify_test

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/storefront/pkg/logging"
	"github.com/JaimeStill/storefront/pkg/notify"
)

func receive(t *testing.T, ch <-chan notify.Message) notify.Message {
	t.Helper()
	select {
	case msg, ok := <-ch:
		if !ok {
			t.Fatal("channel closed")
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
	return notify.Message{}
}

func TestMemory_PublishSubscribe(t *testing.T) {
	broker := notify.NewMemory(4)
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := broker.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	b, _ := broker.Subscribe(ctx)

	msg := notify.NewMessage(notify.KindCreated, "products", "Desk lamp created")
	if err := broker.Publish(ctx, msg); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	for _, ch := range []<-chan notify.Message{a, b} {
		got := receive(t, ch)
		if got.Text != msg.Text || got.Kind != notify.KindCreated || got.Resource != "products" {
			t.Errorf("received %+v, want %+v", got, msg)
		}
	}
}

func TestMemory_UnsubscribeOnCancel(t *testing.T) {
	broker := notify.NewMemory(1)
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, _ := broker.Subscribe(ctx)
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("subscription not closed after cancel")
	}
}

func TestMemory_Close(t *testing.T) {
	broker := notify.NewMemory(1)
	ch, _ := broker.Subscribe(context.Background())

	broker.Close()

	if _, ok := <-ch; ok {
		t.Error("subscription should close with broker")
	}
	if err := broker.Publish(context.Background(), notify.Message{}); !errors.Is(err, notify.ErrClosed) {
		t.Errorf("Publish() after close error = %v, want ErrClosed", err)
	}
	if _, err := broker.Subscribe(context.Background()); !errors.Is(err, notify.ErrClosed) {
		t.Errorf("Subscribe() after close error = %v, want ErrClosed", err)
	}
}

func TestMemory_SlowSubscriberDoesNotBlock(t *testing.T) {
	broker := notify.NewMemory(1)
	defer broker.Close()

	broker.Subscribe(context.Background())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			broker.Publish(context.Background(), notify.Message{Text: "x"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}
}

func TestNew_DisabledUsesMemory(t *testing.T) {
	cfg := &notify.Config{}
	cfg.Finalize(nil)

	sys := notify.New(cfg, logging.Discard())
	if _, ok := sys.(*notify.Memory); !ok {
		t.Errorf("New() = %T, want *notify.Memory", sys)
	}
}

func TestConfig_Finalize(t *testing.T) {
	t.Setenv("TEST_NOTIFY_ENABLED", "true")
	t.Setenv("TEST_NOTIFY_ADDRESS", "redis:6379")

	cfg := &notify.Config{}
	err := cfg.Finalize(&notify.Env{Enabled: "TEST_NOTIFY_ENABLED", Address: "TEST_NOTIFY_ADDRESS"})
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if !cfg.Enabled || cfg.Address != "redis:6379" || cfg.Channel != "storefront:notifications" {
		t.Errorf("Finalize() = %+v", cfg)
	}

	bad := &notify.Config{DB: -1}
	if err := bad.Finalize(nil); err == nil {
		t.Error("Finalize() should reject negative db")
	}
}

func TestStreamHandler(t *testing.T) {
	broker := notify.NewMemory(4)
	defer broker.Close()

	srv := httptest.NewServer(notify.StreamHandler(broker, logging.Discard()))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request error = %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Content-Type = %q", ct)
	}

	broker.Publish(ctx, notify.NewMessage(notify.KindDeleted, "brands", "2 brands deleted"))

	scanner := bufio.NewScanner(resp.Body)
	var event, data string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "event: ") {
			event = strings.TrimPrefix(line, "event: ")
		}
		if strings.HasPrefix(line, "data: ") {
			data = strings.TrimPrefix(line, "data: ")
			break
		}
	}

	if event != "deleted" {
		t.Errorf("event = %q, want deleted", event)
	}

	var msg notify.Message
	if err := json.Unmarshal([]byte(data), &msg); err != nil {
		t.Fatalf("data is not JSON: %v", err)
	}
	if msg.Resource != "brands" || msg.Text != "2 brands deleted" {
		t.Errorf("message = %+v", msg)
	}
}
