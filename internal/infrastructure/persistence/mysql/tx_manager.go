package mysql

import (
	"context"

	"gorm.io/gorm"
)

// txKey context中事务DB的key
// 使用私有类型，避免与其他包的key冲突
type txKey struct{}

// TxManager 事务管理器
// 教学要点:
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB(避免全局变量)
// 3. 支持嵌套事务(GORM自动使用Savepoint)
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// 教学要点:
// 1. fn函数内的所有Repository操作都会在同一事务中执行
// 2. fn返回error时自动ROLLBACK,返回nil时自动COMMIT
// 3. fn内部必须使用传入的ctx,否则Repository拿不到事务DB
//
// 使用示例:
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    // 1. 保存内嵌作者
//	    if err := authorRepo.Save(ctx, b.Author); err != nil {
//	        return err
//	    }
//	    // 2. 插入图书(ISBN已存在则跳过)
//	    created, err = bookRepo.InsertIfAbsent(ctx, b.ISBN)
//	    if err != nil {
//	        return err // 自动回滚
//	    }
//	    // 3. 覆盖图书字段
//	    return bookRepo.Save(ctx, b) // nil则提交,非nil则回滚
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		// 已经在事务中,直接复用外层事务
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 将事务DB注入到Context中
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
}

// getDB 从context获取事务DB,如果没有则使用默认DB
// 教学要点:事务传递机制,所有Repository方法都必须通过它拿DB
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
