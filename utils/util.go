package utils

// 找出键对应的数据。
// 如果keys为空则返回所有数据，
// 如果不存在则将失败的键记录到失败列表中。
func Find[K comparable, T any](dataMap map[K]T, data []T, keys []K) (okData []T, failedKeys []K) {
	if len(keys) == 0 {
		return data, nil
	}
	okData = make([]T, 0, len(keys))
	failedKeys = make([]K, 0, len(keys))
	for _, key := range keys {
		if d, ok := dataMap[key]; ok {
			okData = append(okData, d)
		} else {
			failedKeys = append(failedKeys, key)
		}
	}
	return
}
