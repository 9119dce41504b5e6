package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// DateLocker 按自然日串行化日汇总（Collection）的读-改-写
type DateLocker interface {
	// Acquire 获取 date 的锁，返回的 release 必须调用
	Acquire(ctx context.Context, date string) (release func(), err error)
}

// ============================================================================
// Redis 实现：多实例部署时使用
// ============================================================================

type RedisDateLocker struct {
	client        redis.Cmdable
	expiration    time.Duration
	retryInterval time.Duration
	maxRetries    int
	newToken      func() string
}

func NewRedisDateLocker(client redis.Cmdable, expiration, retryInterval time.Duration, maxRetries int) *RedisDateLocker {
	return &RedisDateLocker{
		client:        client,
		expiration:    expiration,
		retryInterval: retryInterval,
		maxRetries:    maxRetries,
		newToken:      uuid.NewString,
	}
}

// CollectionLockKey 日汇总锁的 key
func CollectionLockKey(date string) string {
	return fmt.Sprintf("collection:lock:date:%s", date)
}

func (l *RedisDateLocker) Acquire(ctx context.Context, date string) (func(), error) {
	dl := NewDistributedLock(l.client, CollectionLockKey(date), l.newToken(), l.expiration)
	if err := dl.Lock(ctx, l.retryInterval, l.maxRetries); err != nil {
		return nil, fmt.Errorf("日汇总加锁失败 date=%s: %w", date, err)
	}
	return func() {
		// 请求的 ctx 可能已取消，释放锁用独立的短超时
		unlockCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = dl.Unlock(unlockCtx)
	}, nil
}

// ============================================================================
// 进程内实现：单实例或未启用 Redis 时使用
// ============================================================================

type LocalDateLocker struct {
	mu    sync.Mutex
	locks map[string]*localEntry
}

type localEntry struct {
	ch   chan struct{}
	refs int
}

func NewLocalDateLocker() *LocalDateLocker {
	return &LocalDateLocker{locks: make(map[string]*localEntry)}
}

func (l *LocalDateLocker) Acquire(ctx context.Context, date string) (func(), error) {
	l.mu.Lock()
	e, ok := l.locks[date]
	if !ok {
		e = &localEntry{ch: make(chan struct{}, 1)}
		l.locks[date] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.unref(date, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.unref(date, e)
		})
	}, nil
}

// 没有等待者时回收，避免 map 随日期无限增长
func (l *LocalDateLocker) unref(date string, e *localEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, date)
	}
}
