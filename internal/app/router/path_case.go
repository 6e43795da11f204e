package router

import (
	"strings"
	"unicode"
)

// toSnakeCase 驼峰转下划线
func toSnakeCase(s string) string {
	var result strings.Builder
	var prevChar rune

	for i, c := range s {
		if i > 0 && unicode.IsUpper(c) && prevChar != '_' {
			result.WriteRune('_')
		}
		result.WriteRune(unicode.ToLower(c))
		prevChar = c
	}

	return result.String()
}

// toSlashCase 驼峰转斜杠
func toSlashCase(s string) string {
	var result strings.Builder
	var prevChar rune

	for i, c := range s {
		if i > 0 && unicode.IsUpper(c) && prevChar != '/' {
			result.WriteRune('/')
		}
		result.WriteRune(unicode.ToLower(c))
		prevChar = c
	}

	return result.String()
}
