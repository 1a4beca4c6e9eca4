package ui

import (
	"strconv"
	"strings"
)

func formString(values map[string][]string, key string) string {
	if values == nil {
		return ""
	}
	return strings.TrimSpace(first(values[key]))
}

func formInt(values map[string][]string, key string) (int, error) {
	v := formString(values, key)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
