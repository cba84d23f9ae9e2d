package repository

import (
	"context"

	"serenity/models"
)

// InsertBreathe 保存呼吸练习记录
func InsertBreathe(ctx context.Context, s *models.BreatheSession) error {
	conn, err := conn()
	if err != nil {
		return err
	}
	res, err := conn.ExecContext(ctx, `
		INSERT INTO breathe_sessions (session_id, pattern, cycles_completed, duration_seconds, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, s.SessionID, s.Pattern, s.CyclesCompleted, s.DurationSeconds, s.Timestamp)
	if err != nil {
		return err
	}
	s.ID, err = res.LastInsertId()
	return err
}

// CountBreathe 呼吸练习总次数
func CountBreathe(ctx context.Context, sessionID string) (int, error) {
	return countBySession(ctx, "breathe_sessions", sessionID)
}
