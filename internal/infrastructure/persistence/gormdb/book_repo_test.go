package gormdb

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/domain/book"
)

type fixture struct {
	authors author.Repository
	books   book.Repository
	orwell  *author.Author
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	f := &fixture{
		authors: NewAuthorRepository(db),
		books:   NewBookRepository(db),
	}
	f.orwell = createAuthor(t, f.authors, "George Orwell")
	return f
}

func (f *fixture) createBook(t *testing.T, title, isbn string, authorID uint) *book.Book {
	t.Helper()
	b := book.NewBook(title, isbn, 1949, authorID)
	require.NoError(t, f.books.Create(context.Background(), b))
	return b
}

func TestBookRepository_CreateAndFind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.createBook(t, "1984", "1234567890", f.orwell.ID)
	assert.NotZero(t, b.ID)
	assert.Equal(t, uint(1), b.Version)

	got, err := f.books.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "1984", got.Title)
	assert.Equal(t, 1949, got.PublishedYear)
	require.NotNil(t, got.Author)
	assert.Equal(t, "George Orwell", got.Author.Name)

	_, err = f.books.FindByID(ctx, 999)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestBookRepository_DanglingAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.createBook(t, "Orphan", "111", 42)

	got, err := f.books.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(42), got.AuthorID)
	assert.Nil(t, got.Author)
}

func TestBookRepository_ISBNUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.createBook(t, "1984", "1234567890", f.orwell.ID)

	exists, err := f.books.ExistsByISBN(ctx, "1234567890")
	require.NoError(t, err)
	assert.True(t, exists)

	err = f.books.Create(ctx, book.NewBook("Copy", "1234567890", 2000, f.orwell.ID))
	assert.ErrorIs(t, err, book.ErrISBNDuplicate)

	n, err := f.books.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestBookRepository_FindPage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		f.createBook(t, fmt.Sprintf("Book %d", i), fmt.Sprintf("isbn-%d", i), f.orwell.ID)
	}

	page, err := f.books.FindPage(ctx, book.Offset(2, 2), 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Book 3", page[0].Title)
	assert.Equal(t, "Book 4", page[1].Title)
	assert.NotNil(t, page[0].Author)

	last, err := f.books.FindPage(ctx, book.Offset(3, 2), 2)
	require.NoError(t, err)
	assert.Len(t, last, 1)

	beyond, err := f.books.FindPage(ctx, book.Offset(10, 2), 2)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestBookRepository_FindByTitleContains(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.createBook(t, "1984", "1", f.orwell.ID)
	f.createBook(t, "Harry Potter and the Philosopher's Stone", "2", 7)
	f.createBook(t, "100% Orwell", "3", f.orwell.ID)

	found, err := f.books.FindByTitleContains(ctx, "POTTER")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "2", found[0].ISBN)
	assert.Nil(t, found[0].Author)

	found, err = f.books.FindByTitleContains(ctx, "0%")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "3", found[0].ISBN)

	found, err = f.books.FindByTitleContains(ctx, "_")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestBookRepository_FindByTitleContains_NonASCII(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	zola := f.createBook(t, "ÉMILE ZOLA ÉTUDES", "4", f.orwell.ID)

	for _, q := range []string{"émile", "ÉTUDES", "Zola É"} {
		found, err := f.books.FindByTitleContains(ctx, q)
		require.NoError(t, err)
		require.Len(t, found, 1, q)
		assert.Equal(t, zola.ID, found[0].ID)
	}

	// 改名后按新书名搜索
	zola.Title = "Über Thérèse Raquin"
	require.NoError(t, f.books.Update(ctx, zola))

	found, err := f.books.FindByTitleContains(ctx, "über thÉrÈse")
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = f.books.FindByTitleContains(ctx, "émile")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestBookRepository_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.createBook(t, "1984", "1234567890", f.orwell.ID)
	other := f.createBook(t, "Animal Farm", "5555", f.orwell.ID)

	t.Run("版本号匹配", func(t *testing.T) {
		b.Title = "Nineteen Eighty-Four"
		require.NoError(t, f.books.Update(ctx, b))
		assert.Equal(t, uint(2), b.Version)

		got, err := f.books.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "Nineteen Eighty-Four", got.Title)
		assert.Equal(t, uint(2), got.Version)
	})

	t.Run("版本号过期", func(t *testing.T) {
		stale := *b
		stale.Version = 1
		assert.ErrorIs(t, f.books.Update(ctx, &stale), book.ErrConcurrentUpdate)
	})

	t.Run("ISBN冲突", func(t *testing.T) {
		clash := *other
		clash.ISBN = "1234567890"
		assert.ErrorIs(t, f.books.Update(ctx, &clash), book.ErrISBNDuplicate)
	})
}

func TestBookRepository_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.createBook(t, "1984", "1234567890", f.orwell.ID)

	require.NoError(t, f.books.Delete(ctx, b.ID))
	assert.ErrorIs(t, f.books.Delete(ctx, b.ID), book.ErrBookNotFound)

	exists, err := f.books.Exists(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	// 物理删除后ISBN可以复用
	f.createBook(t, "1984", "1234567890", f.orwell.ID)
}
