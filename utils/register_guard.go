package utils

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RegisterGuard throttles account registration per client IP using redis
// counters. Every check fails open: when redis is down, registration
// proceeds rather than locking users out.
type RegisterGuard struct {
	rdb        *redis.Client
	cooldown   time.Duration
	dailyLimit int
}

// NewRegisterGuard creates a guard. A nil client disables all checks.
func NewRegisterGuard(rdb *redis.Client, cooldown time.Duration, dailyLimit int) *RegisterGuard {
	return &RegisterGuard{rdb: rdb, cooldown: cooldown, dailyLimit: dailyLimit}
}

// CooldownTry enforces a short pause between attempts from one IP. It
// returns false when the IP attempted too recently.
func (g *RegisterGuard) CooldownTry(ip string) bool {
	if g == nil || g.rdb == nil || g.cooldown <= 0 {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	ok, err := g.rdb.SetNX(ctx, "reg:cooldown:"+ip, "1", g.cooldown).Result()
	if err != nil {
		return true
	}
	return ok
}

// DailyAllow reports whether the IP is still under its daily quota of
// successful registrations.
func (g *RegisterGuard) DailyAllow(ip string) bool {
	if g == nil || g.rdb == nil || g.dailyLimit <= 0 {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	n, err := g.rdb.Get(ctx, g.dailyKey(ip)).Int()
	if err == redis.Nil {
		return true
	}
	if err != nil {
		return true
	}
	return n < g.dailyLimit
}

// DailyIncrement records one successful registration for the IP.
func (g *RegisterGuard) DailyIncrement(ip string) {
	if g == nil || g.rdb == nil || g.dailyLimit <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	key := g.dailyKey(ip)
	if n, err := g.rdb.Incr(ctx, key).Result(); err == nil && n == 1 {
		_ = g.rdb.Expire(ctx, key, 24*time.Hour).Err()
	}
}

func (g *RegisterGuard) dailyKey(ip string) string {
	return "reg:succday:" + ip + ":" + time.Now().Format("20060102")
}
