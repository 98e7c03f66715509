package utils

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache(time.Minute)

	c.Set("k", "v")
	got, ok := c.Get("k")
	if !ok || got != "v" {
		t.Fatalf("Get = (%v, %v)", got, ok)
	}

	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("删除后不应命中")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(10 * time.Millisecond)

	c.Set("k", "v")
	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatal("过期后不应命中")
	}
}

func TestCacheDisabled(t *testing.T) {
	c := NewCache(0)

	c.Set("k", "v")
	if _, ok := c.Get("k"); ok {
		t.Fatal("ttl=0 表示关闭，不应缓存任何值")
	}
}

func TestCacheNilSafe(t *testing.T) {
	var c *Cache

	c.Set("k", "v")
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("nil 缓存不应命中")
	}
}
