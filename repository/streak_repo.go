package repository

import (
	"context"
	"database/sql"

	"serenity/models"
)

// GetStreak 获取会话的连续天数记录，不存在时返回sql.ErrNoRows
func GetStreak(ctx context.Context, sessionID string) (*models.UserStreak, error) {
	conn, err := conn()
	if err != nil {
		return nil, err
	}

	var (
		s    models.UserStreak
		last sql.NullTime
	)
	err = conn.QueryRowContext(ctx, `
		SELECT session_id, current_streak, longest_streak, last_interaction, total_interactions
		FROM user_streaks
		WHERE session_id = ?
	`, sessionID).Scan(&s.SessionID, &s.CurrentStreak, &s.LongestStreak, &last, &s.TotalInteractions)
	if err != nil {
		return nil, err
	}
	if last.Valid {
		t := last.Time
		s.LastInteraction = &t
	}
	return &s, nil
}

// SaveStreak 写入或更新连续天数记录
func SaveStreak(ctx context.Context, s *models.UserStreak) error {
	conn, err := conn()
	if err != nil {
		return err
	}

	var last sql.NullTime
	if s.LastInteraction != nil {
		last = sql.NullTime{Time: *s.LastInteraction, Valid: true}
	}
	_, err = conn.ExecContext(ctx, `
		INSERT INTO user_streaks (session_id, current_streak, longest_streak, last_interaction, total_interactions)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			current_streak = VALUES(current_streak),
			longest_streak = VALUES(longest_streak),
			last_interaction = VALUES(last_interaction),
			total_interactions = VALUES(total_interactions)
	`, s.SessionID, s.CurrentStreak, s.LongestStreak, last, s.TotalInteractions)
	return err
}
