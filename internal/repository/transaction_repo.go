package repository

import (
	"context"
	"errors"

	"gamecenter/internal/model"
	"gamecenter/pkg/idgen"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) FindAll(ctx context.Context) ([]*model.Transaction, error) {
	var transactions []*model.Transaction
	err := r.db.WithContext(ctx).Order("date ASC").Find(&transactions).Error
	return transactions, err
}

func (r *TransactionRepository) FindByID(ctx context.Context, id string) (*model.Transaction, error) {
	var trans model.Transaction
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&trans).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &trans, nil
}

// Save 新建或覆盖；tx 非空时在调用方的事务里执行
func (r *TransactionRepository) Save(ctx context.Context, tx *gorm.DB, trans *model.Transaction) (*model.Transaction, error) {
	if tx == nil {
		tx = r.db
	}
	db := tx.WithContext(ctx)
	if trans.ID == "" {
		trans.ID = idgen.GenerateTransactionID()
		if err := db.Create(trans).Error; err != nil {
			return nil, err
		}
		return trans, nil
	}
	if err := db.Save(trans).Error; err != nil {
		return nil, err
	}
	return trans, nil
}
