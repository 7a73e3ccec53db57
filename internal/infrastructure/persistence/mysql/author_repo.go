package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/booksapi/internal/domain/author"
	apperrors "github.com/xiebiao/booksapi/pkg/errors"
)

// authorRepository 作者仓储实现(GORM)
// 设计说明:
// 1. 实现domain/author/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 所有方法通过getDB(ctx)取DB,可以参与TxManager开启的事务
type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) author.Repository {
	return &authorRepository{db: db}
}

// Create 创建作者
func (r *authorRepository) Create(ctx context.Context, a *author.Author) error {
	model := toAuthorModel(a)
	model.ID = 0 // 由数据库分配

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.WithCode(apperrors.ErrCodeDatabaseError, err, "创建作者失败")
	}

	// 回填自增ID
	a.ID = model.ID
	return nil
}

// Save 按ID插入或覆盖作者
// INSERT ... ON CONFLICT (id) DO UPDATE SET name, age
// MySQL方言会生成 ON DUPLICATE KEY UPDATE
func (r *authorRepository) Save(ctx context.Context, a *author.Author) error {
	if a.ID == 0 {
		return r.Create(ctx, a)
	}

	model := toAuthorModel(a)
	err := getDB(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "age"}),
		}).
		Create(model).Error
	if err != nil {
		return apperrors.WithCode(apperrors.ErrCodeDatabaseError, err, "保存作者失败")
	}
	return nil
}

// FindByID 根据ID查找作者
func (r *authorRepository) FindByID(ctx context.Context, id int64) (*author.Author, error) {
	var model AuthorModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, apperrors.WithCode(apperrors.ErrCodeDatabaseError, err, "查询作者失败")
	}
	return toAuthorEntity(&model), nil
}

// FindAll 查询全部作者(按ID升序)
func (r *authorRepository) FindAll(ctx context.Context) ([]*author.Author, error) {
	var models []AuthorModel
	if err := getDB(ctx, r.db).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.WithCode(apperrors.ErrCodeDatabaseError, err, "查询作者列表失败")
	}
	return toAuthorEntities(models), nil
}

// FindByName 按姓名精确匹配
// 姓名没有唯一约束,重名时返回ID最小的一个
func (r *authorRepository) FindByName(ctx context.Context, name string) (*author.Author, error) {
	var model AuthorModel
	err := getDB(ctx, r.db).Where("name = ?", name).Order("id ASC").First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, apperrors.WithCode(apperrors.ErrCodeDatabaseError, err, "查询作者失败")
	}
	return toAuthorEntity(&model), nil
}

// FindByAgeLessThan 查询年龄小于age的作者
// age为NULL的行不满足比较条件,自然被排除
func (r *authorRepository) FindByAgeLessThan(ctx context.Context, age int) ([]*author.Author, error) {
	return r.findWhere(ctx, "age < ?", age)
}

// FindByAgeGreaterThan 查询年龄大于age的作者
func (r *authorRepository) FindByAgeGreaterThan(ctx context.Context, age int) ([]*author.Author, error) {
	return r.findWhere(ctx, "age > ?", age)
}

func (r *authorRepository) findWhere(ctx context.Context, query string, args ...interface{}) ([]*author.Author, error) {
	var models []AuthorModel
	if err := getDB(ctx, r.db).Where(query, args...).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.WithCode(apperrors.ErrCodeDatabaseError, err, "查询作者列表失败")
	}
	return toAuthorEntities(models), nil
}

// ExistsByID 判断作者是否存在
func (r *authorRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := getDB(ctx, r.db).Model(&AuthorModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, apperrors.WithCode(apperrors.ErrCodeDatabaseError, err, "查询作者失败")
	}
	return count > 0, nil
}

// DeleteByID 删除作者
// 不存在时RowsAffected为0,不当作错误(DELETE幂等)
// books.author_id由外键ON DELETE SET NULL置空
func (r *authorRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := getDB(ctx, r.db).Delete(&AuthorModel{}, id).Error; err != nil {
		return apperrors.WithCode(apperrors.ErrCodeDatabaseError, err, "删除作者失败")
	}
	return nil
}
