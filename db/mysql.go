package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"serenity/config"
)

var (
	DB *sql.DB // 数据库连接，未启用存储时为nil
)

//go:embed schema.sql
var schemaSQL string

// InitMySQLWithConfig 使用配置初始化数据库连接池
func InitMySQLWithConfig(cfg *config.Config) error {
	dsn, err := normalizeDSN(cfg.DB.DSN)
	if err != nil {
		return err
	}

	conn, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}

	// 从配置读取连接池参数，提供默认值保护
	maxOpenConns := cfg.DB.MaxOpenConns
	if maxOpenConns <= 0 {
		maxOpenConns = 50 // 默认最大连接数
	}

	maxIdleConns := cfg.DB.MaxIdleConns
	if maxIdleConns <= 0 {
		maxIdleConns = 10 // 默认最大空闲连接数
	}

	connMaxLifetime := cfg.DB.ConnMaxLifetime
	if connMaxLifetime <= 0 {
		connMaxLifetime = 60 // 默认连接最大生命周期（分钟）
	}

	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetMaxIdleConns(maxIdleConns)
	conn.SetConnMaxLifetime(time.Duration(connMaxLifetime) * time.Minute)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return err
	}
	DB = conn
	return nil
}

// normalizeDSN 补齐时间解析参数，保证DATETIME列能扫描为time.Time
func normalizeDSN(dsn string) (string, error) {
	if dsn == "" {
		return "", fmt.Errorf("database dsn is empty")
	}
	parsed, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	parsed.ParseTime = true
	parsed.Loc = time.Local
	return parsed.FormatDSN(), nil
}

// EnsureSchema 创建缺失的表
func EnsureSchema(ctx context.Context) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// Close 关闭数据库连接
func Close() error {
	if DB == nil {
		return nil
	}
	err := DB.Close()
	DB = nil
	return err
}
