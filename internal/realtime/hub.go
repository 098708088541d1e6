package realtime

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"TourWatch/pkg/logger"
)

// Snapshot 推送给订阅端的全量快照
type Snapshot struct {
	Table string      `json:"table"`
	Seq   uint64      `json:"seq"`
	Rows  interface{} `json:"rows"`
}

// FetchFunc 按表拉取全量视图，变更事件只触发重拉，不做增量
type FetchFunc func(ctx context.Context, table string) (interface{}, error)

// Feed 表变更事件源。Subscribe 返回的 stop 必须幂等。
type Feed interface {
	Subscribe(table string, onEvent func()) (stop func(), err error)
}

// Hub 集中管理 websocket 客户端和每张表的变更订阅。
// 每张表至多一路上游订阅，所有客户端共享，引用计数归零时拆除。
type Hub struct {
	mu     sync.Mutex
	fetch  FetchFunc
	feed   Feed
	tables map[string]*tableState

	fetchTimeout time.Duration
}

type tableState struct {
	refs    int
	stop    func()
	seq     uint64 // 最近发起的拉取序号
	applied uint64 // 已应用的最大序号，更老的完成直接丢弃
	clients map[*Client]bool
}

// Client 一个 websocket 连接
type Client struct {
	ID     string
	send   chan Snapshot
	tables map[string]bool
}

func NewHub(fetch FetchFunc, feed Feed) *Hub {
	return &Hub{
		fetch:        fetch,
		feed:         feed,
		tables:       make(map[string]*tableState),
		fetchTimeout: 10 * time.Second,
	}
}

// NewClient 创建客户端，sendBuffer 满时快照会被丢弃（下一次刷新会补上）
func NewClient(id string, sendBuffer int) *Client {
	return &Client{
		ID:     id,
		send:   make(chan Snapshot, sendBuffer),
		tables: make(map[string]bool),
	}
}

// Send 客户端的推送通道
func (c *Client) Send() <-chan Snapshot {
	return c.send
}

// Subscribe 为客户端订阅一张表。该表首个订阅者会建立上游变更订阅，
// 并立即触发一次全量拉取，让新订阅者马上拿到当前快照。
func (h *Hub) Subscribe(client *Client, table string) error {
	h.mu.Lock()

	if client.tables[table] {
		h.mu.Unlock()
		return nil
	}

	st, ok := h.tables[table]
	if !ok {
		st = &tableState{clients: make(map[*Client]bool)}
		stop, err := h.feed.Subscribe(table, func() {
			h.triggerRefetch(table)
		})
		if err != nil {
			h.mu.Unlock()
			return err
		}
		st.stop = stop
		h.tables[table] = st

		logger.Logger.Info("Table subscription established",
			zap.String("table", table),
		)
	}

	st.refs++
	st.clients[client] = true
	client.tables[table] = true
	h.mu.Unlock()

	h.triggerRefetch(table)
	return nil
}

// Unsubscribe 取消客户端对一张表的订阅，引用计数归零时拆除上游订阅
func (h *Hub) Unsubscribe(client *Client, table string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.unsubscribeLocked(client, table)
}

// Disconnect 客户端断开，释放其全部订阅
func (h *Hub) Disconnect(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for table := range client.tables {
		h.unsubscribeLocked(client, table)
	}
}

func (h *Hub) unsubscribeLocked(client *Client, table string) {
	if !client.tables[table] {
		return
	}
	delete(client.tables, table)

	st, ok := h.tables[table]
	if !ok {
		return
	}

	delete(st.clients, client)
	st.refs--

	if st.refs <= 0 {
		if st.stop != nil {
			st.stop()
		}
		delete(h.tables, table)

		logger.Logger.Info("Table subscription torn down",
			zap.String("table", table),
		)
	}
}

// SubscriberCount 某张表当前的订阅者数量，没有订阅时为 0
func (h *Hub) SubscriberCount(table string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	st, ok := h.tables[table]
	if !ok {
		return 0
	}
	return st.refs
}

// triggerRefetch 发起一次全量重拉。拉取带单调递增序号，
// 完成时序号落后于已应用快照的直接丢弃，避免乱序完成互相覆盖。
func (h *Hub) triggerRefetch(table string) {
	h.mu.Lock()
	st, ok := h.tables[table]
	if !ok {
		h.mu.Unlock()
		return
	}
	st.seq++
	seq := st.seq
	h.mu.Unlock()

	go h.refetch(table, seq)
}

func (h *Hub) refetch(table string, seq uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), h.fetchTimeout)
	defer cancel()

	rows, err := h.fetch(ctx, table)
	if err != nil {
		logger.Logger.Error("Failed to refetch table snapshot",
			zap.String("table", table),
			zap.Uint64("seq", seq),
			zap.Error(err),
		)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	st, ok := h.tables[table]
	if !ok {
		return // 期间所有订阅者都走了
	}

	if seq <= st.applied {
		logger.Logger.Debug("Dropping stale refetch completion",
			zap.String("table", table),
			zap.Uint64("seq", seq),
			zap.Uint64("applied", st.applied),
		)
		return
	}
	st.applied = seq

	snapshot := Snapshot{Table: table, Seq: seq, Rows: rows}
	for client := range st.clients {
		select {
		case client.send <- snapshot:
		default:
			// 客户端写不动就丢，下一轮刷新会带来更新的快照
		}
	}
}
