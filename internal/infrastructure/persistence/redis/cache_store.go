package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/booksapi/internal/domain/author"
	"github.com/xiebiao/booksapi/internal/domain/book"
	"github.com/xiebiao/booksapi/internal/infrastructure/config"
	"github.com/xiebiao/booksapi/pkg/circuitbreaker"
	"github.com/xiebiao/booksapi/pkg/metrics"
)

// versionTTL 版本key的过期时间，远大于任何一次查询的耗时
const versionTTL = 24 * time.Hour

// errStaleVersion 回填时版本号已变化
var errStaleVersion = errors.New("cache version changed")

// CacheStore Redis详情缓存
//
// 教学要点：
// 1. 缓存策略：Cache-Aside（旁路缓存）
//   - 读：先查缓存，未命中再查数据库，然后回填缓存
//   - 写：先写数据库，再删除缓存（不更新缓存，避免并发写导致脏数据）
//
// 2. Key设计
//   - {prefix}:author:{id}
//   - {prefix}:book:{isbn}
//   - {prefix}:ver:author:{id}、{prefix}:ver:book:{isbn}、{prefix}:ver:books 版本号，写操作时递增
//
// 3. 图书详情内嵌了作者信息，所以作者变更时要删除全部图书缓存
//
// 4. 读和回填经过熔断器，Redis故障时快速失败，用例降级查数据库
//   - 删除不经过熔断器：写操作后的失效必须尝试执行，否则可能留下脏缓存
type CacheStore struct {
	client    *redis.Client
	breaker   *circuitbreaker.CircuitBreaker
	prefix    string
	authorTTL time.Duration
	bookTTL   time.Duration
}

// NewCacheStore 创建缓存存储实例
// client为nil（Redis未启用）时返回nil
func NewCacheStore(client *redis.Client, cfg *config.Config) *CacheStore {
	if client == nil {
		return nil
	}
	prefix := cfg.Cache.KeyPrefix
	if prefix == "" {
		prefix = "bookstore"
	}

	breaker := circuitbreaker.NewCircuitBreaker("redis-cache", circuitbreaker.Config{
		FailureThreshold: cfg.Cache.BreakerThreshold,
		Cooldown:         cfg.Cache.BreakerCooldown,
	})
	breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		zap.L().Warn("缓存熔断器状态变化",
			zap.String("breaker", name),
			zap.Stringer("from", from),
			zap.Stringer("to", to),
		)
		metrics.SetGauge(metrics.CacheBreakerState, float64(to))
	})

	return &CacheStore{
		client:    client,
		breaker:   breaker,
		prefix:    prefix,
		authorTTL: cfg.Cache.AuthorTTL,
		bookTTL:   cfg.Cache.BookTTL,
	}
}

// cachedAuthor 缓存中的作者JSON结构
type cachedAuthor struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Age  *int   `json:"age"`
}

// cachedBook 缓存中的图书JSON结构
type cachedBook struct {
	ISBN   string        `json:"isbn"`
	Title  *string       `json:"title"`
	Author *cachedAuthor `json:"author"`
}

// GetAuthor 获取作者详情缓存
// 未命中返回(nil, ver, nil)，调用方查询数据库后用ver调用SetAuthor回填
func (c *CacheStore) GetAuthor(ctx context.Context, id int64) (*author.Author, string, error) {
	var v cachedAuthor
	hit, ver, err := c.get(ctx, c.authorKey(id), &v, c.authorVersionKeys(id))
	if err != nil || !hit {
		return nil, ver, err
	}
	return fromCachedAuthor(&v), ver, nil
}

// SetAuthor 回填作者详情缓存
// ver是读缓存时拿到的版本快照，期间发生过写操作时放弃回填
func (c *CacheStore) SetAuthor(ctx context.Context, a *author.Author, ver string) error {
	return c.set(ctx, c.authorKey(a.ID), toCachedAuthor(a), c.authorTTL, ver, c.authorVersionKeys(a.ID))
}

// InvalidateAuthor 删除作者缓存和全部图书缓存
// 图书缓存里内嵌了作者，作者改名/删除后这些缓存都过期了
func (c *CacheStore) InvalidateAuthor(ctx context.Context, id int64) error {
	if err := c.invalidate(ctx, c.authorKey(id), c.authorVersionKeys(id)[0]); err != nil {
		return err
	}
	return c.DeleteAllBooks(ctx)
}

// GetBook 获取图书详情缓存
func (c *CacheStore) GetBook(ctx context.Context, isbn string) (*book.Book, string, error) {
	var v cachedBook
	hit, ver, err := c.get(ctx, c.bookKey(isbn), &v, c.bookVersionKeys(isbn))
	if err != nil || !hit {
		return nil, ver, err
	}
	b := &book.Book{ISBN: v.ISBN, Title: v.Title}
	if v.Author != nil {
		b.Author = fromCachedAuthor(v.Author)
	}
	return b, ver, nil
}

// SetBook 回填图书详情缓存
func (c *CacheStore) SetBook(ctx context.Context, b *book.Book, ver string) error {
	v := cachedBook{ISBN: b.ISBN, Title: b.Title}
	if b.Author != nil {
		v.Author = toCachedAuthor(b.Author)
	}
	return c.set(ctx, c.bookKey(b.ISBN), v, c.bookTTL, ver, c.bookVersionKeys(b.ISBN))
}

// DeleteBook 删除图书详情缓存
//
// 教学要点：为什么删除而不是更新缓存？
//   - 更新操作可能并发执行，导致缓存数据不一致
//   - 删除缓存简单可靠，下次查询时重新加载最新数据
func (c *CacheStore) DeleteBook(ctx context.Context, isbn string) error {
	return c.invalidate(ctx, c.bookKey(isbn), c.bookVersionKeys(isbn)[0])
}

// DeleteAllBooks 删除所有图书缓存
//
// 教学要点：
// 1. 先递增全局图书版本，扫描期间开始的回填都会被放弃
// 2. 使用SCAN命令遍历所有匹配的key（KEYS会阻塞Redis）
// 3. 批量删除使用UNLINK（异步删除，不阻塞）
func (c *CacheStore) DeleteAllBooks(ctx context.Context) error {
	if err := c.bumpVersion(ctx, c.client, c.booksVersionKey()); err != nil {
		return fmt.Errorf("递增缓存版本失败: %w", err)
	}

	iter := c.client.Scan(ctx, 0, c.prefix+":book:*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("扫描缓存key失败: %w", err)
	}

	if len(keys) > 0 {
		if err := c.client.Unlink(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("删除缓存失败: %w", err)
		}
	}
	return nil
}

// get 一次MGET读取缓存值和版本号，返回是否命中和版本快照
// 未命中不算失败，不计入熔断统计
func (c *CacheStore) get(ctx context.Context, key string, dst interface{}, verKeys []string) (bool, string, error) {
	var vals []interface{}
	err := c.execute(func() error {
		var err error
		vals, err = c.client.MGet(ctx, append([]string{key}, verKeys...)...).Result()
		return err
	})
	if err != nil {
		return false, "", fmt.Errorf("获取缓存失败: %w", err)
	}

	ver := versionOf(vals[1:])
	raw, ok := vals[0].(string)
	if !ok {
		return false, ver, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, ver, fmt.Errorf("反序列化失败: %w", err)
	}
	return true, ver, nil
}

// set 版本号未变化时写入JSON并设置过期时间
//
// 教学要点：回填的竞态
//
//	GET:  读缓存未命中(ver=1) → 查库得到旧数据 ─────────────────→ 回填旧数据 ✗
//	PUT:                         写库提交 → INCR ver=2 → DEL key
//
// WATCH版本key，EXEC前版本被改动时事务失败，旧数据不会写回缓存
func (c *CacheStore) set(ctx context.Context, key string, v interface{}, ttl time.Duration, ver string, verKeys []string) error {
	val, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}

	err = c.execute(func() error {
		err := c.client.Watch(ctx, func(tx *redis.Tx) error {
			vals, err := tx.MGet(ctx, verKeys...).Result()
			if err != nil {
				return err
			}
			if versionOf(vals) != ver {
				return errStaleVersion
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, val, ttl)
				return nil
			})
			return err
		}, verKeys...)
		if errors.Is(err, errStaleVersion) || errors.Is(err, redis.TxFailedErr) {
			zap.L().Debug("缓存版本已变化，放弃回填", zap.String("key", key))
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("设置缓存失败: %w", err)
	}
	return nil
}

// invalidate 递增版本号并删除缓存（同一个MULTI事务）
// 不经过熔断器：写操作后的失效必须尝试执行
func (c *CacheStore) invalidate(ctx context.Context, key, verKey string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		_ = c.bumpVersion(ctx, pipe, verKey)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("删除缓存失败: %w", err)
	}
	return nil
}

// bumpVersion INCR版本号并刷新过期时间
// 在pipeline中调用时错误由Exec返回
func (c *CacheStore) bumpVersion(ctx context.Context, cmd redis.Cmdable, verKey string) error {
	if err := cmd.Incr(ctx, verKey).Err(); err != nil {
		return err
	}
	return cmd.Expire(ctx, verKey, versionTTL).Err()
}

// execute 经过熔断器执行Redis命令
// 请求被取消或超时是调用方的问题，不算Redis故障
func (c *CacheStore) execute(fn func() error) error {
	var ctxErr error
	err := c.breaker.Execute(func() error {
		err := fn()
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			ctxErr = err
			return nil
		}
		return err
	})
	if err != nil {
		return err
	}
	return ctxErr
}

// versionOf 把MGET得到的版本号拼成快照，key不存在视为0
func versionOf(vals []interface{}) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			s = "0"
		}
		parts[i] = s
	}
	return strings.Join(parts, ".")
}

// authorKey 格式：{prefix}:author:{id}
func (c *CacheStore) authorKey(id int64) string {
	return fmt.Sprintf("%s:author:%d", c.prefix, id)
}

// bookKey 格式：{prefix}:book:{isbn}
func (c *CacheStore) bookKey(isbn string) string {
	return fmt.Sprintf("%s:book:%s", c.prefix, isbn)
}

// authorVersionKeys 格式：{prefix}:ver:author:{id}
func (c *CacheStore) authorVersionKeys(id int64) []string {
	return []string{fmt.Sprintf("%s:ver:author:%d", c.prefix, id)}
}

// bookVersionKeys 单本图书版本 + 全部图书版本（作者变更时递增）
// 第一个元素是单本图书版本
func (c *CacheStore) bookVersionKeys(isbn string) []string {
	return []string{
		fmt.Sprintf("%s:ver:book:%s", c.prefix, isbn),
		c.booksVersionKey(),
	}
}

func (c *CacheStore) booksVersionKey() string {
	return c.prefix + ":ver:books"
}

func toCachedAuthor(a *author.Author) *cachedAuthor {
	return &cachedAuthor{ID: a.ID, Name: a.Name, Age: a.Age}
}

func fromCachedAuthor(v *cachedAuthor) *author.Author {
	return &author.Author{ID: v.ID, Name: v.Name, Age: v.Age}
}
