package logging

// logParamsToZapParams flattens an extra map into zap's alternating
// key/value form.
func logParamsToZapParams(extra map[ExtraKey]any) []any {
	params := make([]any, 0, 2*len(extra))

	for k, v := range extra {
		params = append(params, string(k), v)
	}

	return params
}

// logParamsToZeroParams rekeys an extra map for zerolog's Fields.
func logParamsToZeroParams(extra map[ExtraKey]any) map[string]any {
	params := make(map[string]any, len(extra))

	for k, v := range extra {
		params[string(k)] = v
	}

	return params
}
