package zohoexpense

// Simplify projects each record onto the named fields. Fields a record does
// not have are skipped; records that are not objects become empty objects.
func Simplify(records []interface{}, fields []string) []interface{} {
	out := make([]interface{}, 0, len(records))
	for _, raw := range records {
		record, _ := raw.(map[string]interface{})
		projected := make(map[string]interface{}, len(fields))
		for _, f := range fields {
			if v, ok := record[f]; ok {
				projected[f] = v
			}
		}
		out = append(out, projected)
	}
	return out
}
