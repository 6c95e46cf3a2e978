package seed

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/pkg/metrics"
)

// Transactor 在同一事务中执行fn，gormdb.TxManager实现它
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Loader 启动时写入示例数据
// 设计说明:
// 1. 库里只要已有任意作者或图书就什么都不做，保证重复启动幂等
// 2. 作者和图书在一个事务里写入，要么全部成功要么全部回滚
// 3. 图书通过作者创建后分配的ID引用作者
type Loader struct {
	tx      Transactor
	authors author.Repository
	books   book.Repository
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewLoader 创建种子数据加载器
func NewLoader(tx Transactor, authors author.Repository, books book.Repository, m *metrics.Metrics, log *zap.Logger) *Loader {
	return &Loader{tx: tx, authors: authors, books: books, metrics: m, log: log}
}

type seedBook struct {
	title  string
	isbn   string
	year   int
	author int // authors切片下标
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Run 执行加载，已有数据时直接返回
func (l *Loader) Run(ctx context.Context) error {
	applied, err := l.run(ctx)
	switch {
	case err != nil:
		l.record("failed")
		l.log.Error("种子数据加载失败", zap.Error(err))
		return err
	case applied:
		l.record("applied")
		l.log.Info("种子数据加载完成")
	default:
		l.record("skipped")
		l.log.Info("已有数据，跳过种子数据")
	}
	return nil
}

func (l *Loader) run(ctx context.Context) (bool, error) {
	authorCount, err := l.authors.Count(ctx)
	if err != nil {
		return false, err
	}
	bookCount, err := l.books.Count(ctx)
	if err != nil {
		return false, err
	}
	if authorCount > 0 || bookCount > 0 {
		return false, nil
	}

	authors := []*author.Author{
		author.NewAuthor("George Orwell", date(1903, time.June, 25), ""),
		author.NewAuthor("J.K. Rowling", date(1965, time.July, 31), ""),
	}
	books := []seedBook{
		{title: "1984", isbn: "1234567890", year: 1949, author: 0},
		{title: "Harry Potter and the Philosopher's Stone", isbn: "0987654321", year: 1997, author: 1},
	}

	err = l.tx.Transaction(ctx, func(ctx context.Context) error {
		for _, a := range authors {
			if err := l.authors.Create(ctx, a); err != nil {
				return err
			}
		}
		for _, sb := range books {
			b := book.NewBook(sb.title, sb.isbn, sb.year, authors[sb.author].ID)
			if err := l.books.Create(ctx, b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (l *Loader) record(result string) {
	if l.metrics != nil {
		l.metrics.SeedRuns.WithLabelValues(result).Inc()
	}
}
