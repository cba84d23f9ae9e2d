package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"serenity/models"
)

// WriteFormattedJSON 格式化JSON输出，使其更易读
func WriteFormattedJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "    ") // 使用4个空格缩进
	encoder.Encode(data)
}

// WriteSuccessResponse 写入成功响应
func WriteSuccessResponse(w http.ResponseWriter, data interface{}) {
	WriteFormattedJSON(w, models.NewSuccessResponse(data))
}

// WriteErrorResponse 写入错误响应
func WriteErrorResponse(w http.ResponseWriter, code int, data interface{}) {
	WriteFormattedJSON(w, models.NewErrorResponse(code, data))
}

// WriteCustomErrorResponse 写入自定义错误消息的响应
func WriteCustomErrorResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	WriteFormattedJSON(w, models.NewCustomErrorResponse(code, message, data))
}

// HandleServiceError 处理存储层错误的通用函数
func HandleServiceError(w http.ResponseWriter, err error, noDataCode int) {
	if IsSQLNoRowsError(err) {
		WriteErrorResponse(w, noDataCode, map[string]interface{}{})
	} else {
		WriteCustomErrorResponse(w, models.CodeDatabaseError, err.Error(), map[string]interface{}{})
	}
}

// DecodeJSON 解析请求体，超过maxBytes或包含多余内容时返回错误
func DecodeJSON(r *http.Request, maxBytes int64, dst interface{}) error {
	body := io.Reader(r.Body)
	if maxBytes > 0 {
		body = io.LimitReader(r.Body, maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return fmt.Errorf("request body exceeds %d bytes", maxBytes)
	}
	if len(data) == 0 {
		return errors.New("request body is empty")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

// ParseID 解析路径中的正整数ID，失败时写入错误响应
func ParseID(w http.ResponseWriter, raw string) (int64, bool) {
	if raw == "" {
		WriteErrorResponse(w, models.CodeMissingParams, map[string]interface{}{
			"param": "id",
		})
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		WriteErrorResponse(w, models.CodeInvalidParams, map[string]interface{}{
			"param": "id",
		})
		return 0, false
	}
	return id, true
}
