package repository

import (
	"context"
	"database/sql"
	"time"

	"serenity/models"
)

const moodColumns = `id, session_id, mood_level, mood_emoji, feelings, notes, timestamp`

// InsertMood 保存心情记录，写回自增ID
func InsertMood(ctx context.Context, e *models.MoodEntry) error {
	conn, err := conn()
	if err != nil {
		return err
	}
	res, err := conn.ExecContext(ctx, `
		INSERT INTO mood_entries (session_id, mood_level, mood_emoji, feelings, notes, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.SessionID, e.MoodLevel, e.MoodEmoji, encodeList(e.Feelings), e.Notes, e.Timestamp)
	if err != nil {
		return err
	}
	e.ID, err = res.LastInsertId()
	return err
}

// ListMoods 最近的心情记录，按时间倒序
func ListMoods(ctx context.Context, sessionID string, limit int) ([]models.MoodEntry, error) {
	conn, err := conn()
	if err != nil {
		return nil, err
	}
	rows, err := conn.QueryContext(ctx, `
		SELECT `+moodColumns+`
		FROM mood_entries
		WHERE session_id = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.MoodEntry, 0)
	for rows.Next() {
		e, err := scanMood(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// MoodOnDay 指定自然日内最新的心情记录，没有时返回sql.ErrNoRows
func MoodOnDay(ctx context.Context, sessionID string, day time.Time) (*models.MoodEntry, error) {
	conn, err := conn()
	if err != nil {
		return nil, err
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	row := conn.QueryRowContext(ctx, `
		SELECT `+moodColumns+`
		FROM mood_entries
		WHERE session_id = ? AND timestamp >= ? AND timestamp < ?
		ORDER BY timestamp DESC, id DESC
		LIMIT 1
	`, sessionID, start, start.AddDate(0, 0, 1))
	return scanMood(row)
}

// CountMoods 心情记录总数
func CountMoods(ctx context.Context, sessionID string) (int, error) {
	return countBySession(ctx, "mood_entries", sessionID)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMood(row rowScanner) (*models.MoodEntry, error) {
	var (
		e        models.MoodEntry
		feelings sql.NullString
		notes    sql.NullString
	)
	if err := row.Scan(&e.ID, &e.SessionID, &e.MoodLevel, &e.MoodEmoji, &feelings, &notes, &e.Timestamp); err != nil {
		return nil, err
	}
	e.Feelings = decodeList(feelings)
	e.Notes = notes.String
	return &e, nil
}

// countBySession 统计会话在指定表中的记录数，table只接受包内常量
func countBySession(ctx context.Context, table, sessionID string) (int, error) {
	conn, err := conn()
	if err != nil {
		return 0, err
	}
	var count int
	err = conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table+` WHERE session_id = ?`, sessionID).Scan(&count)
	return count, err
}
