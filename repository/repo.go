package repository

import (
	"database/sql"
	"encoding/json"
	"errors"

	"serenity/db"
)

// ErrStorageDisabled 未配置数据库
var ErrStorageDisabled = errors.New("storage disabled")

// Enabled 数据库是否可用
func Enabled() bool {
	return db.DB != nil
}

func conn() (*sql.DB, error) {
	if db.DB == nil {
		return nil, ErrStorageDisabled
	}
	return db.DB, nil
}

// encodeList 字符串列表以JSON数组存储，空列表存NULL
func encodeList(items []string) sql.NullString {
	if len(items) == 0 {
		return sql.NullString{}
	}
	b, _ := json.Marshal(items)
	return sql.NullString{String: string(b), Valid: true}
}

func decodeList(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(raw.String), &items); err != nil {
		return []string{}
	}
	return items
}
