// Package cache stores per-paragraph engine payloads.
package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// LRU is an in-process cache with a size bound and per-entry TTL.
type LRU struct {
	lru *expirable.LRU[string, []byte]
}

// NewLRU creates an LRU holding at most size entries for ttl each.
// A zero ttl keeps entries until evicted by size.
func NewLRU(size int, ttl time.Duration) *LRU {
	return &LRU{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

// Get returns the payload for key. A cached empty payload is a hit.
func (c *LRU) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.lru.Get(key)
	return v, ok, nil
}

func (c *LRU) Set(_ context.Context, key string, payload []byte) error {
	if payload == nil {
		payload = []byte{}
	}
	c.lru.Add(key, payload)
	return nil
}

// Len returns the number of live entries.
func (c *LRU) Len() int {
	return c.lru.Len()
}
