package types

// HeaderRowsToMap 将启用的键值行折叠为映射
// 重复键后者覆盖前者（映射语义）
func HeaderRowsToMap(rows []KVRow) map[string]string {
	m := make(map[string]string)
	for _, row := range rows {
		if !row.Enabled || row.Key == "" {
			continue
		}
		m[row.Key] = row.Value
	}
	return m
}
