package repository

import (
	"context"
	"errors"

	"gamecenter/internal/model"
	"gamecenter/pkg/idgen"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CollectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

func (r *CollectionRepository) FindAll(ctx context.Context) ([]*model.Collection, error) {
	var collections []*model.Collection
	err := r.db.WithContext(ctx).Order("date ASC").Find(&collections).Error
	return collections, err
}

// FindRecent 按日期倒序取最近的 limit 条
func (r *CollectionRepository) FindRecent(ctx context.Context, limit int) ([]*model.Collection, error) {
	var collections []*model.Collection
	err := r.db.WithContext(ctx).Order("date DESC").Limit(limit).Find(&collections).Error
	return collections, err
}

func (r *CollectionRepository) FindByDate(ctx context.Context, date string) (*model.Collection, error) {
	var coll model.Collection
	err := r.db.WithContext(ctx).Where("date = ?", date).First(&coll).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	return &coll, nil
}

// GetOrCreate 按日期取汇总行，不存在则插入一条 total=0 的记录
//
// date 上有唯一索引，并发插入时由 ON CONFLICT DO NOTHING 兜底，最后统一回读。
func (r *CollectionRepository) GetOrCreate(ctx context.Context, date string) (*model.Collection, error) {
	coll, err := r.FindByDate(ctx, date)
	if err == nil {
		return coll, nil
	}

	if !errors.Is(err, ErrCollectionNotFound) {
		return nil, err
	}

	newColl := &model.Collection{
		ID:             idgen.GenerateCollectionID(),
		Date:           date,
		TotalRecharges: 0,
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoNothing: true,
		}).
		Create(newColl).Error

	if err != nil {
		return nil, err
	}

	return r.FindByDate(ctx, date)
}

func (r *CollectionRepository) Save(ctx context.Context, coll *model.Collection) (*model.Collection, error) {
	db := r.db.WithContext(ctx)
	if coll.ID == "" {
		coll.ID = idgen.GenerateCollectionID()
		if err := db.Create(coll).Error; err != nil {
			return nil, err
		}
		return coll, nil
	}
	if err := db.Save(coll).Error; err != nil {
		return nil, err
	}
	return coll, nil
}
