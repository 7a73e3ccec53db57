package book

import (
	"context"
	"errors"
	"strings"

	"github.com/xiebiao/booksapi/internal/domain/author"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 封装图书写入的业务流程:先保存内嵌作者,再写图书
// 2. 多步写入需要放在同一个事务里,事务由应用层控制(TxManager)
type Service interface {
	// SaveBook 创建或覆盖图书(PUT)
	// 返回created表示ISBN之前是否不存在
	SaveBook(ctx context.Context, b *Book) (created bool, err error)

	// GetBook 根据ISBN获取图书
	GetBook(ctx context.Context, isbn string) (*Book, error)

	// ListBooks 分页查询图书
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// PatchBook 部分更新图书(PATCH)
	// 目标在合并前消失时返回ErrBookVanished
	PatchBook(ctx context.Context, isbn string, p Patch) (*Book, error)

	// DeleteBook 删除图书(幂等)
	DeleteBook(ctx context.Context, isbn string) error

	// Exists 判断图书是否存在
	Exists(ctx context.Context, isbn string) (bool, error)
}

// service 领域服务实现
type service struct {
	repo    Repository
	authors author.Service
}

// NewService 创建图书领域服务
func NewService(repo Repository, authors author.Service) Service {
	return &service{
		repo:    repo,
		authors: authors,
	}
}

// SaveBook 创建或覆盖图书
// 流程:
// 1. 校验(ISBN、内嵌作者姓名)
// 2. 级联保存内嵌作者,拿到作者ID
// 3. INSERT ... ON CONFLICT DO NOTHING 判断是否新建
// 4. 覆盖title和author_id
func (s *service) SaveBook(ctx context.Context, b *Book) (bool, error) {
	if strings.TrimSpace(b.ISBN) == "" {
		return false, ErrInvalidISBN
	}
	if err := b.Validate(); err != nil {
		return false, err
	}

	if b.Author != nil {
		if err := s.authors.SaveEmbedded(ctx, b.Author); err != nil {
			return false, err
		}
	}

	created, err := s.repo.InsertIfAbsent(ctx, b.ISBN)
	if err != nil {
		return false, err
	}

	if err := s.repo.Save(ctx, b); err != nil {
		return false, err
	}
	return created, nil
}

// GetBook 根据ISBN获取图书
func (s *service) GetBook(ctx context.Context, isbn string) (*Book, error) {
	return s.repo.FindByISBN(ctx, isbn)
}

// ListBooks 分页查询图书
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	return s.repo.List(ctx, params.Normalize())
}

// PatchBook 部分更新图书
func (s *service) PatchBook(ctx context.Context, isbn string, p Patch) (*Book, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return nil, ErrBookVanished
		}
		return nil, err
	}

	if p.Author != nil {
		if err := s.authors.SaveEmbedded(ctx, p.Author); err != nil {
			return nil, err
		}
	}

	current.Apply(p)
	if err := s.repo.Save(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, isbn string) error {
	return s.repo.DeleteByISBN(ctx, isbn)
}

// Exists 判断图书是否存在
func (s *service) Exists(ctx context.Context, isbn string) (bool, error) {
	return s.repo.ExistsByISBN(ctx, isbn)
}
