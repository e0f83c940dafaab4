package services

import (
	"regexp"
	"testing"
)

func TestGenerateOrderNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d{8}-\d{4}$`)
	n := GenerateOrderNumber()
	if !pattern.MatchString(n) {
		t.Errorf("GenerateOrderNumber() = %q, want ORD-YYYYMMDD-NNNN", n)
	}
}

func TestGenerateOrderNumberSuffixVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		seen[GenerateOrderNumber()] = true
	}
	if len(seen) < 2 {
		t.Error("order numbers issued back to back should not all collide")
	}
}

func TestGenerateTrackingCodeFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^PAY-\d{8}-[A-Z0-9]{6}$`)
	for i := 0; i < 20; i++ {
		c := GenerateTrackingCode()
		if !pattern.MatchString(c) {
			t.Fatalf("GenerateTrackingCode() = %q, want PAY-YYYYMMDD-XXXXXX", c)
		}
	}
}

func TestTrackingCodesDiffer(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[GenerateTrackingCode()] = true
	}
	if len(seen) < 2 {
		t.Error("tracking codes should not repeat across calls")
	}
}

func TestOrderFeedFanout(t *testing.T) {
	feed := NewOrderFeed()

	ch1, cancel1 := feed.Subscribe()
	ch2, cancel2 := feed.Subscribe()
	defer cancel2()

	feed.Publish(OrderEvent{Type: EventOrderPlaced, OrderNumber: "ORD-1"})

	for _, ch := range []<-chan OrderEvent{ch1, ch2} {
		select {
		case ev := <-ch:
			if ev.OrderNumber != "ORD-1" {
				t.Errorf("event order number = %q, want ORD-1", ev.OrderNumber)
			}
		default:
			t.Fatal("subscriber did not receive event")
		}
	}

	cancel1()
	feed.Publish(OrderEvent{Type: EventOrderStatus})
	if _, ok := <-ch1; ok {
		t.Error("cancelled subscriber channel should be closed and drained")
	}
}
