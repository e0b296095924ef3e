package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis go-redis 기반 저장소. 레디스 장애 시에는 캐시 미스로 처리해
// 호출자가 원본 조회를 계속하게 한다.
type Redis struct {
	rdb *redis.Client
}

// NewRedis 레디스 저장소 생성
func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return raw, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	r.rdb.Set(ctx, key, value, ttl)
}

func (r *Redis) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	r.rdb.Del(ctx, keys...)
}
