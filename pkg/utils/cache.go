package utils

import (
	"sync"
	"time"
)

// Cache 进程内 TTL 缓存
// 实例化使用而非全局单例，方便在测试里各开各的
type Cache struct {
	items sync.Map
	ttl   time.Duration
}

// cacheItem 内部结构，包含值和过期时间
type cacheItem struct {
	value      interface{}
	expiration int64
}

// NewCache 创建缓存，ttl<=0 时所有写入直接丢弃（等价于关闭）
func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl}
}

// Set 设置缓存
func (c *Cache) Set(key string, value interface{}) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.items.Store(key, cacheItem{
		value:      value,
		expiration: time.Now().Add(c.ttl).UnixNano(),
	})
}

// Get 获取缓存并验证是否过期
func (c *Cache) Get(key string) (interface{}, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}
	val, ok := c.items.Load(key)
	if !ok {
		return nil, false
	}

	item := val.(cacheItem)

	// 懒删除过期项
	if time.Now().UnixNano() > item.expiration {
		c.items.Delete(key)
		return nil, false
	}

	return item.value, true
}

// Delete 删除缓存 (用完即焚)
func (c *Cache) Delete(key string) {
	if c == nil {
		return
	}
	c.items.Delete(key)
}
