package book

import (
	"context"
	"errors"
	"strings"

	"github.com/xiebiao/library/pkg/tracing"
)

const tracerName = "library/book"

// Service 图书领域服务（BookResource）
// 设计说明:
// 1. 参数校验全部在访问仓储之前完成
// 2. 唯一约束、并发修改等存储层失败被转换为领域错误，不泄露底层异常
// 3. 不做自动重试
type Service interface {
	// List 分页查询，page和pageSize都必须>=1
	List(ctx context.Context, page, pageSize int) (*Page, error)

	// GetByID 返回附带作者的图书
	GetByID(ctx context.Context, id int64) (*Book, error)

	// Search 标题子串搜索（大小写不敏感），无结果视为NotFound
	Search(ctx context.Context, title string) ([]*Book, error)

	// Create 校验必填字段并检查ISBN唯一
	Create(ctx context.Context, book *Book) (*Book, error)

	// Update 字段级合并更新
	Update(ctx context.Context, id int64, book *Book) error

	// Delete 删除图书
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, page, pageSize int) (_ *Page, err error) {
	if page < 1 || pageSize < 1 {
		return nil, ErrInvalidPaging
	}

	ctx, span := tracing.StartSpan(ctx, tracerName, "book.List")
	defer func() { tracing.EndSpan(span, err) }()

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	if !OffsetInRange(page, pageSize) {
		return NewPage([]*Book{}, total, page, pageSize), nil
	}

	items, err := s.repo.FindPage(ctx, Offset(page, pageSize), pageSize)
	if err != nil {
		return nil, err
	}

	return NewPage(items, total, page, pageSize), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (_ *Book, err error) {
	// 非正数ID不可能存在，按NotFound处理（作者接口返回InvalidArgument）
	if id <= 0 {
		return nil, notFound(id)
	}

	ctx, span := tracing.StartSpan(ctx, tracerName, "book.GetByID")
	defer func() { tracing.EndSpan(span, err) }()

	b, err := s.repo.FindByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return nil, notFound(id)
		}
		return nil, err
	}
	return b, nil
}

func (s *service) Search(ctx context.Context, title string) (_ []*Book, err error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleQueryRequired
	}

	ctx, span := tracing.StartSpan(ctx, tracerName, "book.Search")
	defer func() { tracing.EndSpan(span, err) }()

	books, err := s.repo.FindByTitleContains(ctx, title)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrNoMatches.WithMessagef("No books found with title containing '%s'.", title)
	}
	return books, nil
}

func (s *service) Create(ctx context.Context, book *Book) (_ *Book, err error) {
	if err := book.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, tracerName, "book.Create")
	defer func() { tracing.EndSpan(span, err) }()

	b := NewBook(book.Title, book.ISBN, book.PublishedYear, book.AuthorID)

	exists, err := s.repo.ExistsByISBN(ctx, b.ISBN)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, duplicateISBN(b.ISBN)
	}

	if err := s.repo.Create(ctx, b); err != nil {
		if errors.Is(err, ErrISBNDuplicate) {
			return nil, duplicateISBN(b.ISBN)
		}
		return nil, err
	}
	return b, nil
}

func (s *service) Update(ctx context.Context, id int64, book *Book) (err error) {
	if int64(book.ID) != id {
		return ErrIDMismatch
	}
	if err := book.Validate(); err != nil {
		return err
	}

	ctx, span := tracing.StartSpan(ctx, tracerName, "book.Update")
	defer func() { tracing.EndSpan(span, err) }()

	existing, err := s.repo.FindByID(ctx, book.ID)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return notFound(id)
		}
		return err
	}

	// 客户端带了版本号且已经过期
	if book.Version != 0 && book.Version != existing.Version {
		return ErrConcurrentUpdate
	}

	isbn := strings.TrimSpace(book.ISBN)
	if isbn != existing.ISBN {
		taken, err := s.repo.ExistsByISBN(ctx, isbn)
		if err != nil {
			return err
		}
		if taken {
			return duplicateISBN(isbn)
		}
	}

	existing.Merge(book)

	err = s.repo.Update(ctx, existing)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrConcurrentUpdate):
		// 读取之后被删除也会走到这里
		exists, existsErr := s.repo.Exists(ctx, existing.ID)
		if existsErr != nil {
			return existsErr
		}
		if !exists {
			return notFound(id)
		}
		return err
	case errors.Is(err, ErrISBNDuplicate):
		return duplicateISBN(isbn)
	default:
		return err
	}
}

func (s *service) Delete(ctx context.Context, id int64) (err error) {
	// 同GetByID，非正数ID按NotFound处理
	if id <= 0 {
		return notFound(id)
	}

	ctx, span := tracing.StartSpan(ctx, tracerName, "book.Delete")
	defer func() { tracing.EndSpan(span, err) }()

	if err := s.repo.Delete(ctx, uint(id)); err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return notFound(id)
		}
		return err
	}
	return nil
}

func notFound(id int64) error {
	return ErrBookNotFound.WithMessagef("Book with ID %d not found.", id)
}

func duplicateISBN(isbn string) error {
	return ErrISBNDuplicate.WithMessagef("A book with the ISBN '%s' already exists.", isbn)
}
