package author

import (
	"context"
	"errors"

	"github.com/xiebiao/library/pkg/tracing"
)

const tracerName = "library/author"

// Service 作者领域服务（AuthorResource）
// 所有参数校验在访问仓储之前完成
type Service interface {
	// List 返回全部作者；没有任何作者时返回ErrNoAuthors
	List(ctx context.Context) ([]*Author, error)

	// GetByID id必须为正数
	GetByID(ctx context.Context, id int64) (*Author, error)

	// Create 名字大小写不敏感查重
	Create(ctx context.Context, author *Author) (*Author, error)

	// Update 整体覆盖name、dateOfBirth、biography
	Update(ctx context.Context, id int64, author *Author) error

	// Delete 删除作者，引用它的图书保持原样
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo     Repository
	notifier ChangeNotifier
}

// NewService 创建作者领域服务
func NewService(repo Repository, notifier ChangeNotifier) Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &service{repo: repo, notifier: notifier}
}

func (s *service) List(ctx context.Context) (_ []*Author, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "author.List")
	defer func() { tracing.EndSpan(span, err) }()

	authors, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(authors) == 0 {
		return nil, ErrNoAuthors
	}
	return authors, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (_ *Author, err error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	ctx, span := tracing.StartSpan(ctx, tracerName, "author.GetByID")
	defer func() { tracing.EndSpan(span, err) }()

	a, err := s.repo.FindByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, ErrAuthorNotFound) {
			return nil, ErrAuthorNotFound.WithMessagef("Author with ID %d not found.", id)
		}
		return nil, err
	}
	return a, nil
}

func (s *service) Create(ctx context.Context, author *Author) (_ *Author, err error) {
	if err := author.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, tracerName, "author.Create")
	defer func() { tracing.EndSpan(span, err) }()

	a := NewAuthor(author.Name, author.DateOfBirth, author.Biography)

	exists, err := s.repo.ExistsByName(ctx, a.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, duplicateName(a.Name)
	}

	if err := s.repo.Create(ctx, a); err != nil {
		// 查重与插入之间被并发抢先，唯一索引兜底
		if errors.Is(err, ErrNameDuplicate) {
			return nil, duplicateName(a.Name)
		}
		return nil, err
	}
	// 已缓存的图书可能引用了这个新ID
	s.notifier.AuthorChanged(ctx, a.ID)
	return a, nil
}

func (s *service) Update(ctx context.Context, id int64, author *Author) (err error) {
	if id <= 0 || int64(author.ID) != id {
		return ErrIDMismatch
	}
	if err := author.Validate(); err != nil {
		return err
	}

	ctx, span := tracing.StartSpan(ctx, tracerName, "author.Update")
	defer func() { tracing.EndSpan(span, err) }()

	taken, err := s.repo.ExistsByName(ctx, author.Name, author.ID)
	if err != nil {
		return err
	}
	if taken {
		// 目标记录不存在时优先报NotFound
		exists, err := s.repo.Exists(ctx, author.ID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrAuthorNotFound.WithMessagef("Author with ID %d not found.", id)
		}
		return duplicateName(author.Name)
	}

	target := &Author{ID: author.ID, Version: author.Version}
	target.Overwrite(author)

	err = s.repo.Update(ctx, target)
	switch {
	case err == nil:
		s.notifier.AuthorChanged(ctx, target.ID)
		return nil
	case errors.Is(err, ErrConcurrentUpdate):
		// 没有行被更新：记录不存在或版本号过期
		exists, existsErr := s.repo.Exists(ctx, target.ID)
		if existsErr != nil {
			return existsErr
		}
		if !exists {
			return ErrAuthorNotFound.WithMessagef("Author with ID %d not found.", id)
		}
		return err
	case errors.Is(err, ErrNameDuplicate):
		return duplicateName(author.Name)
	default:
		return err
	}
}

func (s *service) Delete(ctx context.Context, id int64) (err error) {
	if id <= 0 {
		return ErrInvalidID
	}

	ctx, span := tracing.StartSpan(ctx, tracerName, "author.Delete")
	defer func() { tracing.EndSpan(span, err) }()

	if err := s.repo.Delete(ctx, uint(id)); err != nil {
		if errors.Is(err, ErrAuthorNotFound) {
			return ErrAuthorNotFound.WithMessagef("Author with ID %d not found.", id)
		}
		return err
	}
	s.notifier.AuthorChanged(ctx, uint(id))
	return nil
}

func duplicateName(name string) error {
	return ErrNameDuplicate.WithMessagef("An author with the name '%s' already exists.", name)
}
