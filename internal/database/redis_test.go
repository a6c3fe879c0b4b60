package database

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestConnectRedisInvalidURI(t *testing.T) {
	if _, err := ConnectRedis(context.Background(), "not-a-redis-uri"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestApplyPoolOptions(t *testing.T) {
	opt, err := redis.ParseURL("redis://localhost:6379/2")
	if err != nil {
		t.Fatal(err)
	}
	applyPoolOptions(opt)
	if opt.PoolSize != 10 || opt.MinIdleConns != 5 || opt.MaxRetries != 3 {
		t.Errorf("pool options = %d/%d/%d", opt.PoolSize, opt.MinIdleConns, opt.MaxRetries)
	}
	if opt.DialTimeout != 5*time.Second || opt.ConnMaxIdleTime != 5*time.Minute {
		t.Errorf("timeouts = %v/%v", opt.DialTimeout, opt.ConnMaxIdleTime)
	}
	if opt.DB != 2 {
		t.Errorf("DB = %d, want 2", opt.DB)
	}
}
