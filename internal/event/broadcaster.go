// Package event 实现笔记变更事件的进程内广播
// 订阅者只收到订阅之后发布的事件，慢订阅者会丢消息，而不会阻塞发布方
package event

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// 事件名称常量
const (
	// EventNoteUpdated 笔记变更事件，Payload 为 NoteUpdatedPayload
	EventNoteUpdated = "noteUpdated"
	// EventReminderNotification 提醒事件，Payload 为 ReminderPayload
	EventReminderNotification = "reminderNotification"
)

// 笔记变更动作
const (
	ActionCreated      = "created"
	ActionUpdated      = "updated"
	ActionDeleted      = "deleted"
	ActionArchived     = "archived"
	ActionAddChecklist = "addChecklist"
)

// Event 广播的事件
type Event struct {
	Name    string `json:"event"`
	Payload any    `json:"payload"`
}

// NoteUpdatedPayload noteUpdated 事件的负载
type NoteUpdatedPayload struct {
	Action string `json:"action"`
	Note   any    `json:"note"`
}

// ReminderPayload reminderNotification 事件的负载
type ReminderPayload struct {
	NoteID       int64  `json:"noteId"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	ReminderTime string `json:"reminderTime"`
	Message      string `json:"message"`
}

// Subscriber 单个订阅者
// C 缓冲写满后该订阅者的后续投递被丢弃
type Subscriber struct {
	C chan Event

	once sync.Once
}

func (s *Subscriber) close() {
	s.once.Do(func() {
		close(s.C)
	})
}

// Config 广播器配置
type Config struct {
	// SubscriberBuffer 每个订阅者的通道缓冲，默认 64
	SubscriberBuffer int
}

// Broadcaster 事件广播器
// 以显式 Start/Stop 生命周期注入使用，不做持久化、排队或补发
type Broadcaster struct {
	mu          sync.Mutex
	subscribers map[*Subscriber]struct{}
	buffer      int
	started     bool
	logger      *zap.Logger

	publishedTotal prometheus.Counter
	droppedTotal   prometheus.Counter
}

// NewBroadcaster 创建广播器
func NewBroadcaster(c Config, logger *zap.Logger) *Broadcaster {
	buffer := c.SubscriberBuffer
	if buffer <= 0 {
		buffer = 64
	}
	return &Broadcaster{
		subscribers: make(map[*Subscriber]struct{}),
		buffer:      buffer,
		logger:      logger,
		publishedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "note_keeper_events_published_total",
			Help: "Total number of events published to the broadcaster.",
		}),
		droppedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "note_keeper_events_dropped_total",
			Help: "Total number of per-subscriber deliveries dropped due to a full buffer.",
		}),
	}
}

// Describe 实现 prometheus.Collector
func (b *Broadcaster) Describe(ch chan<- *prometheus.Desc) {
	b.publishedTotal.Describe(ch)
	b.droppedTotal.Describe(ch)
}

// Collect 实现 prometheus.Collector
func (b *Broadcaster) Collect(ch chan<- prometheus.Metric) {
	b.publishedTotal.Collect(ch)
	b.droppedTotal.Collect(ch)
}

// Start 启动广播器
func (b *Broadcaster) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.started = true
}

// Stop 关闭所有订阅者并拒绝后续订阅
func (b *Broadcaster) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.started = false
	for sub := range b.subscribers {
		sub.close()
		delete(b.subscribers, sub)
	}
}

// Subscribe 注册一个订阅者，广播器未启动时返回 nil
func (b *Broadcaster) Subscribe() *Subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.started {
		return nil
	}
	sub := &Subscriber{C: make(chan Event, b.buffer)}
	b.subscribers[sub] = struct{}{}
	return sub
}

// Unsubscribe 注销订阅者并关闭其通道
func (b *Broadcaster) Unsubscribe(sub *Subscriber) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subscribers[sub]; !ok {
		return
	}
	delete(b.subscribers, sub)
	sub.close()
}

// SubscriberCount 当前订阅者数量
func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}

// Publish 向调用时在线的全部订阅者投递事件
// 投递是非阻塞的：订阅者缓冲已满时丢弃本次投递
// 投递在锁内进行，与 Unsubscribe/Stop 的 close 串行，通道不会在发送中途被关闭
func (b *Broadcaster) Publish(name string, payload any) {
	ev := Event{Name: name, Payload: payload}
	dropped := 0

	b.mu.Lock()
	for sub := range b.subscribers {
		select {
		case sub.C <- ev:
		default:
			dropped++
		}
	}
	b.mu.Unlock()

	b.publishedTotal.Inc()
	if dropped > 0 {
		b.droppedTotal.Add(float64(dropped))
		if b.logger != nil {
			b.logger.Warn("event dropped for slow subscriber",
				zap.String("event", name), zap.Int("dropped", dropped))
		}
	}
}

// PublishNoteUpdated 发布笔记变更事件
func (b *Broadcaster) PublishNoteUpdated(action string, note any) {
	b.Publish(EventNoteUpdated, NoteUpdatedPayload{Action: action, Note: note})
}
