package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/caresync-health/clinic-scheduler/internal/domain/scheduling"
)

// SlotCache keeps computed free-slot lists for a short TTL so repeated
// wizard reads don't hit Postgres. It is a hint layer only: bookings
// always re-validate against the database, and writers invalidate the
// key. A nil *SlotCache is a no-op, so redis stays optional.
type SlotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSlotCache(rdb *redis.Client, ttl time.Duration) *SlotCache {
	if rdb == nil {
		return nil
	}
	return &SlotCache{rdb: rdb, ttl: ttl}
}

func slotKey(doctorID uint, date string) string {
	return fmt.Sprintf("slots:%d:%s", doctorID, date)
}

func (c *SlotCache) Get(ctx context.Context, doctorID uint, date string) ([]scheduling.TimeSlot, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, slotKey(doctorID, date)).Result()
	if err != nil {
		return nil, false
	}

	var slots []scheduling.TimeSlot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotCache) Set(ctx context.Context, doctorID uint, date string, slots []scheduling.TimeSlot) {
	if c == nil {
		return
	}

	b, err := json.Marshal(slots)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, slotKey(doctorID, date), b, c.ttl)
}

func (c *SlotCache) Invalidate(ctx context.Context, doctorID uint, date string) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, slotKey(doctorID, date))
}
