package mapping

// MappedJob is one extracted row rewritten into creation field values, ready
// for the bulk creation validation stage.
type MappedJob struct {
	RowIndex            int            `json:"row_index"`
	CreationFieldValues map[string]any `json:"creation_field_values"`
}

// Apply rewrites extracted rows through a mapping. For every mapped column
// the raw cell value is copied under the target field key; columns not in
// the mapping are dropped, and fields no column fills stay absent so the
// downstream required-field validation can report them rather than have them
// silently defaulted. Applying the same mapping to the same rows twice
// yields identical output.
func Apply(rows []map[string]string, fm FieldMapping) []MappedJob {
	jobs := make([]MappedJob, len(rows))
	for i, row := range rows {
		values := make(map[string]any)
		for column, fieldKey := range fm {
			if fieldKey == "" {
				continue
			}
			raw, ok := row[column]
			if !ok {
				continue
			}
			values[fieldKey] = raw
		}
		jobs[i] = MappedJob{RowIndex: i, CreationFieldValues: values}
	}
	return jobs
}
