package queue

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFIFOOrder(t *testing.T) {
	q := NewUnbounded[int]()

	for i := 0; i < 100; i++ {
		require.True(t, q.Push(i))
	}
	q.Close()

	var got []int
	for v := range q.Out() {
		got = append(got, v)
	}

	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v, "delivery order must match push order")
	}
}

func TestPushNeverBlocksWithoutConsumer(t *testing.T) {
	q := NewUnbounded[int]()
	defer q.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10000; i++ {
			q.Push(i)
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("producers blocked on an unbounded queue")
	}
	assert.Eventually(t, func() bool {
		return q.Len() == 10000
	}, time.Second, 10*time.Millisecond)
}

func TestPushAfterCloseFails(t *testing.T) {
	q := NewUnbounded[string]()
	require.True(t, q.Push("a"))
	q.Close()
	q.Close() // idempotent

	assert.False(t, q.Push("b"))
}

func TestCloseDrainsBuffer(t *testing.T) {
	q := NewUnbounded[int]()
	for i := 0; i < 5; i++ {
		q.Push(i)
	}
	q.Close()

	var got []int
	for v := range q.Out() {
		got = append(got, v)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestConcurrentProducers(t *testing.T) {
	q := NewUnbounded[int]()

	var wg sync.WaitGroup
	for p := 0; p < 8; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 250; i++ {
				q.Push(i)
			}
		}()
	}

	received := make(chan int, 1)
	go func() {
		n := 0
		for range q.Out() {
			n++
		}
		received <- n
	}()

	wg.Wait()
	q.Close()

	select {
	case n := <-received:
		assert.Equal(t, 8*250, n)
	case <-time.After(5 * time.Second):
		t.Fatal("consumer never observed end-of-stream")
	}
}
