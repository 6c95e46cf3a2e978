package gormdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/infrastructure/config"
)

// newTestDB 每个测试一个独立的sqlite内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Driver:       "sqlite",
			DSN:          ":memory:",
			MaxOpenConns: 1,
			MaxIdleConns: 1,
		},
	}

	db, err := NewDB(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestNewDB_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "oracle"}}
	_, err := NewDB(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestIsDuplicateError(t *testing.T) {
	assert.False(t, isDuplicateError(nil))
	assert.True(t, isDuplicateError(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateError(errors.New("Error 1062: Duplicate entry '1' for key 'isbn'")))
	assert.True(t, isDuplicateError(errors.New("UNIQUE constraint failed: books.isbn")))
	assert.False(t, isDuplicateError(errors.New("database is locked")))
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%potter%", containsPattern("Potter"))
	assert.Equal(t, "%100!%%", containsPattern("100%"))
	assert.Equal(t, "%a!_b%", containsPattern("a_b"))
	assert.Equal(t, "%wow!!%", containsPattern("wow!"))
}

func TestTxManager_Rollback(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuthorRepository(db)
	tx := NewTxManager(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := tx.Transaction(ctx, func(ctx context.Context) error {
		if err := repo.Create(ctx, author.NewAuthor("George Orwell", time.Time{}, "")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTxManager_Commit(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuthorRepository(db)
	ctx := context.Background()

	err := NewTxManager(db).Transaction(ctx, func(ctx context.Context) error {
		if err := repo.Create(ctx, author.NewAuthor("George Orwell", time.Time{}, "")); err != nil {
			return err
		}
		return repo.Create(ctx, author.NewAuthor("J.K. Rowling", time.Time{}, ""))
	})
	require.NoError(t, err)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
