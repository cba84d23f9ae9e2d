package utils

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// CalculateMD5 计算字符串的MD5哈希值，返回32位小写十六进制字符串
func CalculateMD5(input string) string {
	hasher := md5.New()
	hasher.Write([]byte(input))
	return hex.EncodeToString(hasher.Sum(nil))
}

// ContentID 根据链接生成稳定的内容ID，忽略首尾空白和大小写
func ContentID(url string) string {
	return CalculateMD5(strings.ToLower(strings.TrimSpace(url)))
}
