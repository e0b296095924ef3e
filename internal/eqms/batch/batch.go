// Package batch 백엔드 쿼리 크기 제한을 지키기 위해 ID 목록을
// 고정 크기 배치로 나눠 조회하는 헬퍼.
package batch

import (
	"go.uber.org/zap"
)

// DefaultSize 한 번에 조회하는 ID 수
const DefaultSize = 30

// FetchFunc 한 배치의 ID 목록을 조회해 ID→값 매핑을 돌려준다.
type FetchFunc[K comparable, V any] func(ids []K) (map[K]V, error)

// Fetch ids를 size 단위로 나눠 fn을 호출하고 결과를 하나의 맵으로 합친다.
// 실패한 배치는 로그만 남기고 건너뛰므로 결과는 부분적일 수 있다.
// 조회되지 않은 ID는 결과 맵에 없다. 호출자가 0 등으로 기본 처리한다.
func Fetch[K comparable, V any](logger *zap.Logger, ids []K, size int, fn FetchFunc[K, V]) map[K]V {
	result := make(map[K]V, len(ids))
	if len(ids) == 0 {
		return result
	}
	if size <= 0 {
		size = DefaultSize
	}

	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunk, err := fn(ids[start:end])
		if err != nil {
			logger.Error("배치 조회 실패",
				zap.Int("offset", start),
				zap.Int("count", end-start),
				zap.Error(err),
			)
			continue
		}
		for k, v := range chunk {
			result[k] = v
		}
	}
	return result
}
