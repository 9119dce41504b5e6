package repository

import (
	"context"
	"errors"

	"gamecenter/internal/model"
	"gamecenter/pkg/idgen"

	"gorm.io/gorm"
)

type RechargeRepository struct {
	db *gorm.DB
}

func NewRechargeRepository(db *gorm.DB) *RechargeRepository {
	return &RechargeRepository{db: db}
}

func (r *RechargeRepository) FindAll(ctx context.Context) ([]*model.Recharge, error) {
	var recharges []*model.Recharge
	err := r.db.WithContext(ctx).Order("date ASC").Find(&recharges).Error
	return recharges, err
}

func (r *RechargeRepository) FindByID(ctx context.Context, id string) (*model.Recharge, error) {
	var recharge model.Recharge
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&recharge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRechargeNotFound
		}
		return nil, err
	}
	return &recharge, nil
}

// Save 新建或覆盖；tx 非空时在调用方的事务里执行
func (r *RechargeRepository) Save(ctx context.Context, tx *gorm.DB, recharge *model.Recharge) (*model.Recharge, error) {
	if tx == nil {
		tx = r.db
	}
	db := tx.WithContext(ctx)
	if recharge.ID == "" {
		recharge.ID = idgen.GenerateRechargeID()
		if err := db.Create(recharge).Error; err != nil {
			return nil, err
		}
		return recharge, nil
	}
	if err := db.Save(recharge).Error; err != nil {
		return nil, err
	}
	return recharge, nil
}
