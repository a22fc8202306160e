package tablemeta

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// ErrInvalidStoreIDs возвращается, если JSONB колонка instores не является массивом ID
var ErrInvalidStoreIDs = errors.New("tablemeta: invalid instores value")

// DecodeStoreIDs разбирает JSONB массив филиалов ([1,2] или ["1","2"])
// Возвращает отсортированный список без дубликатов; пустые значения пропускаются
func DecodeStoreIDs(raw []byte) ([]int64, error) {
	if len(raw) == 0 {
		return []int64{}, nil
	}

	var values []interface{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStoreIDs, err)
	}

	seen := make(map[int64]struct{}, len(values))
	ids := make([]int64, 0, len(values))
	for _, v := range values {
		var id int64
		switch val := v.(type) {
		case nil:
			continue
		case float64:
			id = int64(val)
		case string:
			if val == "" {
				continue
			}
			parsed, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidStoreIDs, val)
			}
			id = parsed
		default:
			return nil, fmt.Errorf("%w: unexpected element %v", ErrInvalidStoreIDs, v)
		}

		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
