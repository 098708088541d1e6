package realtime

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFeed 手动触发事件的 Feed 实现
type fakeFeed struct {
	mu       sync.Mutex
	handlers map[string]func()
	stopped  map[string]int
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{
		handlers: make(map[string]func()),
		stopped:  make(map[string]int),
	}
}

func (f *fakeFeed) Subscribe(table string, onEvent func()) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[table] = onEvent

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.stopped[table]++
		delete(f.handlers, table)
	}, nil
}

func (f *fakeFeed) fire(table string) {
	f.mu.Lock()
	h := f.handlers[table]
	f.mu.Unlock()
	if h != nil {
		h()
	}
}

func (f *fakeFeed) stopCount(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped[table]
}

func waitSnapshot(t *testing.T, c *Client) Snapshot {
	t.Helper()
	select {
	case snap := <-c.Send():
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return Snapshot{}
	}
}

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	feed := newFakeFeed()
	hub := NewHub(func(ctx context.Context, table string) (interface{}, error) {
		return []string{"row-1"}, nil
	}, feed)

	client := NewClient("c1", 8)
	require.NoError(t, hub.Subscribe(client, "incidents"))

	snap := waitSnapshot(t, client)
	assert.Equal(t, "incidents", snap.Table)
	assert.Equal(t, []string{"row-1"}, snap.Rows)
}

func TestEventTriggersRefetchAndBroadcast(t *testing.T) {
	feed := newFakeFeed()
	var calls int64
	var mu sync.Mutex

	hub := NewHub(func(ctx context.Context, table string) (interface{}, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		return n, nil
	}, feed)

	client := NewClient("c1", 8)
	require.NoError(t, hub.Subscribe(client, "sos_alerts"))
	waitSnapshot(t, client) // 初始快照

	feed.fire("sos_alerts")
	snap := waitSnapshot(t, client)
	assert.Equal(t, "sos_alerts", snap.Table)
	assert.Equal(t, int64(2), snap.Rows)
}

func TestRefcountTeardown(t *testing.T) {
	feed := newFakeFeed()
	hub := NewHub(func(ctx context.Context, table string) (interface{}, error) {
		return nil, nil
	}, feed)

	c1 := NewClient("c1", 8)
	c2 := NewClient("c2", 8)

	require.NoError(t, hub.Subscribe(c1, "efirs"))
	require.NoError(t, hub.Subscribe(c2, "efirs"))
	assert.Equal(t, 2, hub.SubscriberCount("efirs"))

	// 第一个客户端退订不拆上游
	hub.Unsubscribe(c1, "efirs")
	assert.Equal(t, 1, hub.SubscriberCount("efirs"))
	assert.Equal(t, 0, feed.stopCount("efirs"))

	// 最后一个退订才拆
	hub.Unsubscribe(c2, "efirs")
	assert.Equal(t, 0, hub.SubscriberCount("efirs"))
	assert.Equal(t, 1, feed.stopCount("efirs"))
}

func TestDisconnectReleasesAllSubscriptions(t *testing.T) {
	feed := newFakeFeed()
	hub := NewHub(func(ctx context.Context, table string) (interface{}, error) {
		return nil, nil
	}, feed)

	client := NewClient("c1", 8)
	require.NoError(t, hub.Subscribe(client, "incidents"))
	require.NoError(t, hub.Subscribe(client, "restricted_zones"))

	hub.Disconnect(client)
	assert.Equal(t, 0, hub.SubscriberCount("incidents"))
	assert.Equal(t, 0, hub.SubscriberCount("restricted_zones"))
	assert.Equal(t, 1, feed.stopCount("incidents"))
	assert.Equal(t, 1, feed.stopCount("restricted_zones"))
}

func TestStaleCompletionIsDropped(t *testing.T) {
	feed := newFakeFeed()

	// 第一次拉取被卡住，第二次先完成；慢的那次完成后必须被丢弃
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	var mu sync.Mutex
	call := 0

	hub := NewHub(func(ctx context.Context, table string) (interface{}, error) {
		mu.Lock()
		call++
		n := call
		mu.Unlock()

		if n == 1 {
			close(firstStarted)
			<-releaseFirst
			return "stale", nil
		}
		return "fresh", nil
	}, feed)

	client := NewClient("c1", 8)
	require.NoError(t, hub.Subscribe(client, "location_logs"))

	<-firstStarted
	feed.fire("location_logs") // 第二次拉取，先完成

	snap := waitSnapshot(t, client)
	assert.Equal(t, "fresh", snap.Rows)
	assert.Equal(t, uint64(2), snap.Seq)

	// 放行第一次拉取，它的结果不能再推给客户端
	close(releaseFirst)

	select {
	case snap := <-client.Send():
		t.Fatalf("stale snapshot delivered: %+v", snap)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestDuplicateSubscribeIsIdempotent(t *testing.T) {
	feed := newFakeFeed()
	hub := NewHub(func(ctx context.Context, table string) (interface{}, error) {
		return nil, nil
	}, feed)

	client := NewClient("c1", 8)
	require.NoError(t, hub.Subscribe(client, "incidents"))
	require.NoError(t, hub.Subscribe(client, "incidents"))
	assert.Equal(t, 1, hub.SubscriberCount("incidents"))

	hub.Unsubscribe(client, "incidents")
	assert.Equal(t, 0, hub.SubscriberCount("incidents"))
}
