package utils

import (
	"strings"
	"unicode/utf8"
)

// DeduplicateSlice 去重字符串切片
func DeduplicateSlice(input []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0)

	for _, val := range input {
		val = strings.TrimSpace(val)
		if val != "" && !seen[val] {
			result = append(result, val)
			seen[val] = true
		}
	}

	return result
}

// WordCount 按空白分词统计单词数
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Truncate 超过limit个字符时截断并追加省略号
func Truncate(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + "..."
}

// Min 返回两个整数中的较小值
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// CollapseSpaces 合并连续空白为单个空格并去掉首尾空白
func CollapseSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
