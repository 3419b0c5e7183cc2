package app

import (
	"sync"
	"time"

	"github.com/solenote/note-keeper-service/global"
	"github.com/solenote/note-keeper-service/internal/event"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/lxzan/gws"
	"go.uber.org/zap"
)

type LogType string

const (
	WebSocketServerPingInterval         = 25
	WebSocketServerPingWait             = 40
	LogInfo                     LogType = "info"
	LogError                    LogType = "error"
	LogWarn                     LogType = "warn"
)

func log(t LogType, msg string, fields ...zap.Field) {

	if t == "error" {
		global.Logger.Error(msg, fields...)
	} else if t == "warn" {
		global.Logger.Warn(msg, fields...)
	} else if t == "info" {
		global.Logger.Info(msg, fields...)
	}
}

type WebsocketServerConfig struct {
	GWSOption    gws.ServerOption
	PingInterval time.Duration
	PingWait     time.Duration
}

// WebsocketClient 结构体来存储每个 WebSocket 连接及其相关状态
type WebsocketClient struct {
	conn       *gws.Conn
	done       chan struct{}
	Ctx        *gin.Context
	subscriber *event.Subscriber
}

// 定期发送 Ping 消息
func (c *WebsocketClient) PingLoop(PingInterval time.Duration) {
	ticker := time.NewTicker(PingInterval * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			log(LogInfo, "WebsocketServer Client Close Ping")
			return
		case <-ticker.C:
			if c.conn == nil {
				return
			}
			if err := c.conn.WritePing(nil); err != nil {
				log(LogError, "WebsocketServer Client Ping err", zap.Error(err))
				return
			}
		}
	}
}

// ForwardLoop 将订阅到的事件序列化后写给客户端
// 订阅的通道被关闭或连接被关闭时退出
func (c *WebsocketClient) ForwardLoop() {
	for {
		select {
		case <-c.done:
			return
		case ev, ok := <-c.subscriber.C:
			if !ok {
				return
			}
			payload, err := sonic.Marshal(ev)
			if err != nil {
				log(LogError, "WebsocketServer Event Marshal err", zap.Error(err))
				continue
			}
			if err := c.conn.WriteMessage(gws.OpcodeText, payload); err != nil {
				log(LogError, "WebsocketServer Event Write err", zap.Error(err))
				return
			}
		}
	}
}

// ------------------------------------> WebsocketServer

type ConnStorage = map[*gws.Conn]*WebsocketClient

// WebsocketServer 将事件广播器的输出接到各个 WebSocket 连接
// 连接无需认证即可订阅，所有客户端收到同一份全量事件流
type WebsocketServer struct {
	broadcaster *event.Broadcaster
	clients     ConnStorage
	mu          sync.Mutex
	up          *gws.Upgrader
	config      *WebsocketServerConfig
}

func NewWebsocketServer(c WebsocketServerConfig, broadcaster *event.Broadcaster) *WebsocketServer {
	if c.PingInterval == 0 {
		c.PingInterval = WebSocketServerPingInterval
	}
	if c.PingWait == 0 {
		c.PingWait = WebSocketServerPingWait
	}
	wss := WebsocketServer{
		broadcaster: broadcaster,
		clients:     make(ConnStorage),
		config:      &c,
	}
	return &wss
}

func (w *WebsocketServer) Upgrade() {
	w.up = gws.NewUpgrader(w, &w.config.GWSOption)
}

func (w *WebsocketServer) Run() gin.HandlerFunc {

	return func(c *gin.Context) {

		w.Upgrade()
		socket, err := w.up.Upgrade(c.Writer, c.Request)
		if err != nil {
			log(LogError, "WebsocketServer Start err", zap.Error(err))
			return
		}

		sub := w.broadcaster.Subscribe()
		if sub == nil {
			log(LogWarn, "WebsocketServer Subscribe refused, broadcaster stopped")
			socket.WriteClose(1001, []byte("ServerClosing"))
			return
		}

		client := &WebsocketClient{conn: socket, done: make(chan struct{}), Ctx: c, subscriber: sub}
		w.AddClient(client)
		log(LogInfo, "WebsocketServer Start", zap.String("type", "ReadLoop"))
		go client.PingLoop(w.config.PingInterval)
		go client.ForwardLoop()
		go socket.ReadLoop()
	}
}

func (w *WebsocketServer) GetClient(conn *gws.Conn) *WebsocketClient {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.clients[conn]
}

func (w *WebsocketServer) AddClient(c *WebsocketClient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clients[c.conn] = c
}

func (w *WebsocketServer) RemoveClient(conn *gws.Conn) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.clients, conn)
}

// ClientCount 当前在线连接数
func (w *WebsocketServer) ClientCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.clients)
}

// Close 断开全部客户端连接
func (w *WebsocketServer) Close() {
	w.mu.Lock()
	clients := make([]*WebsocketClient, 0, len(w.clients))
	for _, c := range w.clients {
		clients = append(clients, c)
	}
	w.mu.Unlock()

	for _, c := range clients {
		c.conn.WriteClose(1001, []byte("ServerClosing"))
	}
}

func (w *WebsocketServer) OnOpen(conn *gws.Conn) {
	log(LogInfo, "WebsocketServer Client Connect", zap.Int("Count", w.ClientCount()))
	_ = conn.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
}

func (w *WebsocketServer) OnClose(conn *gws.Conn, err error) {

	c := w.GetClient(conn)

	w.RemoveClient(conn)

	if c != nil {
		close(c.done)
		w.broadcaster.Unsubscribe(c.subscriber)
	}

	log(LogInfo, "WebsocketServer Client Leave", zap.Int("Count", w.ClientCount()))
}

func (w *WebsocketServer) OnPing(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
	_ = socket.WritePong(nil)
}

func (w *WebsocketServer) OnPong(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
}

func (w *WebsocketServer) OnMessage(conn *gws.Conn, message *gws.Message) {
	defer message.Close()
	if message.Opcode != gws.OpcodeText {
		return
	}
	if message.Data.String() == "close" {
		conn.WriteClose(1000, []byte("ClientClose"))
		return
	}
	// 通道是单向的下行推送，忽略其他客户端消息
}
