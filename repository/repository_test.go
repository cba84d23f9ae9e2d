package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serenity/db"
	"serenity/models"
)

func setupMock(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	prev := db.DB
	db.DB = mockDB
	t.Cleanup(func() {
		db.DB = prev
		mockDB.Close()
	})
	return mock
}

func TestDisabledStorage(t *testing.T) {
	prev := db.DB
	db.DB = nil
	t.Cleanup(func() { db.DB = prev })

	assert.False(t, Enabled())
	_, err := ListMoods(context.Background(), "s1", 10)
	assert.ErrorIs(t, err, ErrStorageDisabled)
	assert.ErrorIs(t, SaveStreak(context.Background(), &models.UserStreak{SessionID: "s1"}), ErrStorageDisabled)
}

func TestInsertMood(t *testing.T) {
	mock := setupMock(t)
	e := &models.MoodEntry{
		SessionID: "s1",
		MoodLevel: 4,
		MoodEmoji: "🙂",
		Feelings:  []string{"tired", "hopeful"},
		Notes:     "long day",
		Timestamp: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO mood_entries").
		WithArgs("s1", 4, "🙂", `["tired","hopeful"]`, "long day", e.Timestamp).
		WillReturnResult(sqlmock.NewResult(42, 1))

	require.NoError(t, InsertMood(context.Background(), e))
	assert.Equal(t, int64(42), e.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMoods(t *testing.T) {
	mock := setupMock(t)
	ts := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "session_id", "mood_level", "mood_emoji", "feelings", "notes", "timestamp"}).
		AddRow(2, "s1", 5, "😄", `["calm"]`, nil, ts).
		AddRow(1, "s1", 2, "😞", nil, "bad night", ts.Add(-24*time.Hour))

	mock.ExpectQuery("SELECT .* FROM mood_entries").
		WithArgs("s1", 21).
		WillReturnRows(rows)

	entries, err := ListMoods(context.Background(), "s1", 21)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, []string{"calm"}, entries[0].Feelings)
	assert.Empty(t, entries[0].Notes)
	assert.Equal(t, []string{}, entries[1].Feelings)
	assert.Equal(t, "bad night", entries[1].Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMoodOnDayNoRows(t *testing.T) {
	mock := setupMock(t)
	day := time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC)
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT .* FROM mood_entries").
		WithArgs("s1", start, start.AddDate(0, 0, 1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := MoodOnDay(context.Background(), "s1", day)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounts(t *testing.T) {
	mock := setupMock(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM journal_entries`).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM breathe_sessions`).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := CountJournals(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	n, err = CountBreathe(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalLifecycle(t *testing.T) {
	mock := setupMock(t)
	now := time.Date(2026, 3, 2, 21, 0, 0, 0, time.UTC)
	e := &models.JournalEntry{
		SessionID: "s1",
		Title:     "exam week",
		Content:   "study study study",
		Tags:      []string{"study"},
		WordCount: 3,
		Timestamp: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO journal_entries").
		WithArgs("s1", "exam week", "study study study", `["study"]`, 3, now, now).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec("UPDATE journal_entries").
		WithArgs("exam week", "study study study", `["study"]`, 3, now, int64(9), "s1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .* FROM journal_entries").
		WithArgs(int64(9), "s1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "title", "content", "tags", "word_count", "timestamp", "updated_at"}).
			AddRow(9, "s1", "exam week", "study study study", `["study"]`, 3, now, now))
	mock.ExpectExec("DELETE FROM journal_entries").
		WithArgs(int64(9), "s1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()
	require.NoError(t, InsertJournal(ctx, e))
	assert.Equal(t, int64(9), e.ID)
	require.NoError(t, UpdateJournal(ctx, e))

	got, err := GetJournal(ctx, "s1", 9)
	require.NoError(t, err)
	assert.Equal(t, []string{"study"}, got.Tags)
	assert.Equal(t, "exam week", got.Title)

	require.NoError(t, DeleteJournal(ctx, "s1", 9))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteJournalMissing(t *testing.T) {
	mock := setupMock(t)
	mock.ExpectExec("DELETE FROM journal_entries").
		WithArgs(int64(5), "s1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, DeleteJournal(context.Background(), "s1", 5), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertBreathe(t *testing.T) {
	mock := setupMock(t)
	s := &models.BreatheSession{SessionID: "s1", Pattern: "4-7-8", CyclesCompleted: 4, DurationSeconds: 76, Timestamp: time.Now()}

	mock.ExpectExec("INSERT INTO breathe_sessions").
		WithArgs("s1", "4-7-8", 4, 76, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(3, 1))

	require.NoError(t, InsertBreathe(context.Background(), s))
	assert.Equal(t, int64(3), s.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStreakRoundTrip(t *testing.T) {
	mock := setupMock(t)
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT .* FROM user_streaks").
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"session_id", "current_streak", "longest_streak", "last_interaction", "total_interactions"}).
			AddRow("s1", 3, 5, day, 11))
	mock.ExpectExec("INSERT INTO user_streaks").
		WithArgs("s1", 4, 5, day.AddDate(0, 0, 1), 12).
		WillReturnResult(sqlmock.NewResult(0, 2))

	ctx := context.Background()
	s, err := GetStreak(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, s.LastInteraction)
	assert.Equal(t, 3, s.CurrentStreak)

	s.Touch(day.AddDate(0, 0, 1).Add(10 * time.Hour))
	require.NoError(t, SaveStreak(ctx, s))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStreakMissing(t *testing.T) {
	mock := setupMock(t)
	mock.ExpectQuery("SELECT .* FROM user_streaks").
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	_, err := GetStreak(context.Background(), "nobody")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
