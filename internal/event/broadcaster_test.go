package event

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestBroadcaster(buffer int) *Broadcaster {
	b := NewBroadcaster(Config{SubscriberBuffer: buffer}, zap.NewNop())
	b.Start()
	return b
}

func TestBroadcasterFanOut(t *testing.T) {
	b := newTestBroadcaster(4)
	defer b.Stop()

	s1 := b.Subscribe()
	s2 := b.Subscribe()
	assert.Equal(t, 2, b.SubscriberCount())

	b.PublishNoteUpdated(ActionCreated, map[string]any{"id": int64(1)})

	for _, sub := range []*Subscriber{s1, s2} {
		select {
		case ev := <-sub.C:
			assert.Equal(t, EventNoteUpdated, ev.Name)
			payload, ok := ev.Payload.(NoteUpdatedPayload)
			assert.True(t, ok)
			assert.Equal(t, ActionCreated, payload.Action)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestBroadcasterSlowSubscriberDrops(t *testing.T) {
	b := newTestBroadcaster(1)
	defer b.Stop()

	slow := b.Subscribe()

	// 缓冲为 1，第二条被丢弃，发布方不会阻塞
	done := make(chan struct{})
	go func() {
		b.Publish(EventNoteUpdated, "first")
		b.Publish(EventNoteUpdated, "second")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}

	ev := <-slow.C
	assert.Equal(t, "first", ev.Payload)
	select {
	case ev := <-slow.C:
		t.Fatalf("unexpected second delivery: %v", ev)
	default:
	}
}

func TestBroadcasterUnsubscribe(t *testing.T) {
	b := newTestBroadcaster(4)
	defer b.Stop()

	sub := b.Subscribe()
	b.Unsubscribe(sub)
	assert.Equal(t, 0, b.SubscriberCount())

	_, open := <-sub.C
	assert.False(t, open)

	// 重复注销是安全的
	b.Unsubscribe(sub)
}

func TestBroadcasterSubscribeAfterStop(t *testing.T) {
	b := newTestBroadcaster(4)
	sub := b.Subscribe()
	b.Stop()

	_, open := <-sub.C
	assert.False(t, open)
	assert.Nil(t, b.Subscribe())
}

func TestBroadcasterPublishDuringUnsubscribe(t *testing.T) {
	b := newTestBroadcaster(1)
	defer b.Stop()

	// 发布与注销并发交错，模拟 websocket 断开时正在广播的场景
	// 通道关闭与投递必须串行，任何一次交错都不允许 panic
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 20000; i++ {
			b.Publish(EventNoteUpdated, i)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 20000; i++ {
			sub := b.Subscribe()
			b.Unsubscribe(sub)
		}
	}()
	wg.Wait()
}

func TestBroadcasterNoReplayForLateSubscriber(t *testing.T) {
	b := newTestBroadcaster(4)
	defer b.Stop()

	b.Publish(EventNoteUpdated, "before")
	late := b.Subscribe()

	select {
	case ev := <-late.C:
		t.Fatalf("late subscriber received past event: %v", ev)
	default:
	}
}
