package converting

// ConvertMap widens header-style multimaps for structured logging.
func ConvertMap(originalMap map[string][]string) map[string]interface{} {
	convertedMap := make(map[string]interface{}, len(originalMap))

	for key, values := range originalMap {
		convertedMap[key] = interface{}(values)
	}

	return convertedMap
}
