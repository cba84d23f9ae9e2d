package repository

import (
	"context"
	"database/sql"

	"serenity/models"
)

const journalColumns = `id, session_id, title, content, tags, word_count, timestamp, updated_at`

// InsertJournal 保存日记，写回自增ID
func InsertJournal(ctx context.Context, e *models.JournalEntry) error {
	conn, err := conn()
	if err != nil {
		return err
	}
	res, err := conn.ExecContext(ctx, `
		INSERT INTO journal_entries (session_id, title, content, tags, word_count, timestamp, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.SessionID, e.Title, e.Content, encodeList(e.Tags), e.WordCount, e.Timestamp, e.UpdatedAt)
	if err != nil {
		return err
	}
	e.ID, err = res.LastInsertId()
	return err
}

// UpdateJournal 更新日记内容，记录不存在时返回sql.ErrNoRows
func UpdateJournal(ctx context.Context, e *models.JournalEntry) error {
	conn, err := conn()
	if err != nil {
		return err
	}
	res, err := conn.ExecContext(ctx, `
		UPDATE journal_entries
		SET title = ?, content = ?, tags = ?, word_count = ?, updated_at = ?
		WHERE id = ? AND session_id = ?
	`, e.Title, e.Content, encodeList(e.Tags), e.WordCount, e.UpdatedAt, e.ID, e.SessionID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// DeleteJournal 删除日记，记录不存在时返回sql.ErrNoRows
func DeleteJournal(ctx context.Context, sessionID string, id int64) error {
	conn, err := conn()
	if err != nil {
		return err
	}
	res, err := conn.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = ? AND session_id = ?`, id, sessionID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// GetJournal 获取单篇日记
func GetJournal(ctx context.Context, sessionID string, id int64) (*models.JournalEntry, error) {
	conn, err := conn()
	if err != nil {
		return nil, err
	}
	row := conn.QueryRowContext(ctx, `
		SELECT `+journalColumns+`
		FROM journal_entries
		WHERE id = ? AND session_id = ?
	`, id, sessionID)
	return scanJournal(row)
}

// ListJournals 会话的全部日记，按时间倒序
func ListJournals(ctx context.Context, sessionID string) ([]models.JournalEntry, error) {
	conn, err := conn()
	if err != nil {
		return nil, err
	}
	rows, err := conn.QueryContext(ctx, `
		SELECT `+journalColumns+`
		FROM journal_entries
		WHERE session_id = ?
		ORDER BY timestamp DESC, id DESC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.JournalEntry, 0)
	for rows.Next() {
		e, err := scanJournal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// CountJournals 日记总数
func CountJournals(ctx context.Context, sessionID string) (int, error) {
	return countBySession(ctx, "journal_entries", sessionID)
}

func scanJournal(row rowScanner) (*models.JournalEntry, error) {
	var (
		e    models.JournalEntry
		tags sql.NullString
	)
	if err := row.Scan(&e.ID, &e.SessionID, &e.Title, &e.Content, &tags, &e.WordCount, &e.Timestamp, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.Tags = decodeList(tags)
	return &e, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
