package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/booksapi/internal/domain/book"
	apperrors "github.com/xiebiao/booksapi/pkg/errors"
)

// bookRepository 图书仓储实现(GORM)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 只写books表,内嵌作者由作者仓储单独保存(Omit关联)
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// InsertIfAbsent 插入只有ISBN的新行,已存在则跳过
// 教学要点:并发PUT同一个新ISBN
// 错误实现:
//  1. SELECT判断是否存在 → 两个请求都看到"不存在"
//  2. INSERT → 两个请求都返回201(或者第二个主键冲突报错)
//
// 正确实现:让数据库的主键约束做判断
//   - SQLite: INSERT ... ON CONFLICT DO NOTHING
//   - MySQL:  INSERT ... ON DUPLICATE KEY UPDATE isbn=isbn
//
// 只有真正插入的那个请求RowsAffected为1
func (r *bookRepository) InsertIfAbsent(ctx context.Context, isbn string) (bool, error) {
	model := &BookModel{ISBN: isbn}
	result := getDB(ctx, r.db).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model)
	if result.Error != nil {
		return false, apperrors.WithCode(apperrors.ErrCodeDatabaseError, result.Error, "写入图书失败")
	}
	return result.RowsAffected == 1, nil
}

// Save 覆盖图书的title和author_id
// 使用map更新,nil会写成NULL(struct更新会跳过零值)
func (r *bookRepository) Save(ctx context.Context, b *book.Book) error {
	err := getDB(ctx, r.db).
		Model(&BookModel{}).
		Where("isbn = ?", b.ISBN).
		Updates(map[string]interface{}{
			"title":     b.Title,
			"author_id": b.AuthorID(),
		}).Error
	if err != nil {
		return apperrors.WithCode(apperrors.ErrCodeDatabaseError, err, "更新图书失败")
	}
	return nil
}

// FindByISBN 根据ISBN查找图书(预加载作者)
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Preload("Author").Where("isbn = ?", isbn).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.WithCode(apperrors.ErrCodeDatabaseError, err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// ExistsByISBN 判断图书是否存在
func (r *bookRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	var count int64
	if err := getDB(ctx, r.db).Model(&BookModel{}).Where("isbn = ?", isbn).Count(&count).Error; err != nil {
		return false, apperrors.WithCode(apperrors.ErrCodeDatabaseError, err, "查询图书失败")
	}
	return count > 0, nil
}

// List 分页查询图书列表
// 按ISBN升序,保证翻页稳定
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	// 查询总数
	if err := getDB(ctx, r.db).Model(&BookModel{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.WithCode(apperrors.ErrCodeDatabaseError, err, "查询图书总数失败")
	}

	// 查询当前页
	err := getDB(ctx, r.db).
		Preload("Author").
		Order("isbn ASC").
		Limit(params.PageSize).
		Offset(params.Offset()).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.WithCode(apperrors.ErrCodeDatabaseError, err, "查询图书列表失败")
	}

	// 转换为领域实体
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}

	return books, total, nil
}

// DeleteByISBN 删除图书(硬删除,幂等)
func (r *bookRepository) DeleteByISBN(ctx context.Context, isbn string) error {
	if err := getDB(ctx, r.db).Where("isbn = ?", isbn).Delete(&BookModel{}).Error; err != nil {
		return apperrors.WithCode(apperrors.ErrCodeDatabaseError, err, "删除图书失败")
	}
	return nil
}
