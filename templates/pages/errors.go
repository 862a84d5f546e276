package pages

func notFoundMessage(key string) string {
	if key == "" {
		return "errors.notFoundMessage"
	}
	return key
}
