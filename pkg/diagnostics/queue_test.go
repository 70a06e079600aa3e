package diagnostics

import "testing"

func TestQueuePushPopOrder(t *testing.T) {
	q := NewQueue(4)

	for i := 0; i < 4; i++ {
		if !q.TryPush(Event{Kind: EventMatrixOrthogonality, Value: float64(i)}) {
			t.Fatalf("push %d should have succeeded", i)
		}
	}

	// Queue should now be full.
	if q.TryPush(Event{}) {
		t.Error("expected push to fail once queue is full")
	}

	for i := 0; i < 4; i++ {
		e, ok := q.TryPop()
		if !ok {
			t.Fatalf("pop %d should have succeeded", i)
		}
		if e.Value != float64(i) {
			t.Errorf("expected FIFO order, got %f at position %d", e.Value, i)
		}
	}

	if _, ok := q.TryPop(); ok {
		t.Error("expected pop to fail once queue is empty")
	}
}

func TestQueueCapacityRoundsUpToPowerOfTwo(t *testing.T) {
	q := NewQueue(5)
	if len(q.data) != 8 {
		t.Errorf("expected capacity rounded up to 8, got %d", len(q.data))
	}
}
