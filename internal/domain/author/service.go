package author

import (
	"context"
	"errors"
)

// Service 作者领域服务接口
// 设计说明:
// 1. 封装作者相关的业务规则(姓名校验、查询条件组合、PUT/PATCH语义)
// 2. 不依赖具体的Repository实现(依赖倒置)
// 3. 资源是否存在(404)由应用层先行判断,领域服务只处理"判断之后"的流程
type Service interface {
	// CreateAuthor 创建作者
	// 业务规则:忽略传入的ID,由存储层分配
	CreateAuthor(ctx context.Context, a *Author) (*Author, error)

	// GetAuthor 根据ID获取作者
	GetAuthor(ctx context.Context, id int64) (*Author, error)

	// ListAuthors 按条件查询作者列表
	ListAuthors(ctx context.Context, filter ListFilter) ([]*Author, error)

	// ReplaceAuthor 全量覆盖作者(PUT)
	ReplaceAuthor(ctx context.Context, id int64, a *Author) (*Author, error)

	// PatchAuthor 部分更新作者(PATCH)
	// 目标在合并前消失时返回ErrAuthorVanished
	PatchAuthor(ctx context.Context, id int64, p Patch) (*Author, error)

	// DeleteAuthor 删除作者(幂等)
	DeleteAuthor(ctx context.Context, id int64) error

	// Exists 判断作者是否存在
	Exists(ctx context.Context, id int64) (bool, error)

	// SaveEmbedded 保存图书中内嵌的作者
	// ID为0时创建,否则按ID插入或覆盖
	SaveEmbedded(ctx context.Context, a *Author) error
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建作者领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateAuthor 创建作者
func (s *service) CreateAuthor(ctx context.Context, a *Author) (*Author, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	created := NewAuthor(a.Name, a.Age)
	if err := s.repo.Create(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// GetAuthor 根据ID获取作者
func (s *service) GetAuthor(ctx context.Context, id int64) (*Author, error) {
	return s.repo.FindByID(ctx, id)
}

// ListAuthors 按条件查询作者列表
func (s *service) ListAuthors(ctx context.Context, filter ListFilter) ([]*Author, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	switch {
	case filter.Name != nil:
		a, err := s.repo.FindByName(ctx, *filter.Name)
		if errors.Is(err, ErrAuthorNotFound) {
			return []*Author{}, nil
		}
		if err != nil {
			return nil, err
		}
		return []*Author{a}, nil
	case filter.AgeLessThan != nil:
		return s.repo.FindByAgeLessThan(ctx, *filter.AgeLessThan)
	case filter.AgeGreaterThan != nil:
		return s.repo.FindByAgeGreaterThan(ctx, *filter.AgeGreaterThan)
	default:
		return s.repo.FindAll(ctx)
	}
}

// ReplaceAuthor 全量覆盖作者
func (s *service) ReplaceAuthor(ctx context.Context, id int64, a *Author) (*Author, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAuthorNotFound) {
			return nil, ErrAuthorVanished
		}
		return nil, err
	}

	current.ReplaceWith(a)
	if err := s.repo.Save(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// PatchAuthor 部分更新作者
func (s *service) PatchAuthor(ctx context.Context, id int64, p Patch) (*Author, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAuthorNotFound) {
			return nil, ErrAuthorVanished
		}
		return nil, err
	}

	if p.IsEmpty() {
		return current, nil
	}

	current.Apply(p)
	if err := s.repo.Save(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// DeleteAuthor 删除作者
func (s *service) DeleteAuthor(ctx context.Context, id int64) error {
	return s.repo.DeleteByID(ctx, id)
}

// Exists 判断作者是否存在
func (s *service) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.ExistsByID(ctx, id)
}

// SaveEmbedded 保存内嵌作者
func (s *service) SaveEmbedded(ctx context.Context, a *Author) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.ID == 0 {
		return s.repo.Create(ctx, a)
	}
	return s.repo.Save(ctx, a)
}
