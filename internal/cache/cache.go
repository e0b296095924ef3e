// Package cache 조회 결과의 TTL 캐시. 키는 이름+인자, 값은 JSON과
// 만료 시각이다. 확인 후 채우기 방식이며 프로세스 간 공유를 전제하지
// 않는다. 레디스 저장소는 설정된 경우에만 쓰인다.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// 캐시 TTL. 수량/단가/부족 목록은 5분, 카테고리 목록은 1시간.
const (
	DataTTL     = 5 * time.Minute
	CategoryTTL = time.Hour
)

// Store TTL 캐시 저장소
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
}

// Key 함수 이름과 호출 인자로 캐시 키를 만든다.
func Key(name string, args ...any) string {
	if len(args) == 0 {
		return "eqms:" + name
	}
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, fmt.Sprintf("%v", a))
	}
	return "eqms:" + name + ":" + strings.Join(parts, ":")
}

// GetJSON 캐시된 JSON 값을 out으로 역직렬화한다.
func GetJSON[T any](ctx context.Context, s Store, key string, out *T) bool {
	raw, ok := s.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.Delete(ctx, key)
		return false
	}
	return true
}

// SetJSON 값을 JSON으로 직렬화해 저장한다. 직렬화 실패는 무시한다.
func SetJSON[T any](ctx context.Context, s Store, key string, value T, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	s.Set(ctx, key, raw, ttl)
}
