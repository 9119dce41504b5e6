package service

import (
	"context"

	"gamecenter/internal/model"

	"gorm.io/gorm"
)

// 以下接口是各服务对记录存储的最小依赖，由 internal/repository 中的 gorm 实现满足

type MemberStore interface {
	FindAll(ctx context.Context) ([]*model.Member, error)
	FindByID(ctx context.Context, id string) (*model.Member, error)
	Save(ctx context.Context, member *model.Member) (*model.Member, error)
}

type GameStore interface {
	FindAll(ctx context.Context) ([]*model.Game, error)
	FindByID(ctx context.Context, id string) (*model.Game, error)
	Save(ctx context.Context, game *model.Game) (*model.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type RechargeStore interface {
	FindAll(ctx context.Context) ([]*model.Recharge, error)
	FindByID(ctx context.Context, id string) (*model.Recharge, error)
	Save(ctx context.Context, tx *gorm.DB, recharge *model.Recharge) (*model.Recharge, error)
}

type TransactionStore interface {
	FindAll(ctx context.Context) ([]*model.Transaction, error)
	FindByID(ctx context.Context, id string) (*model.Transaction, error)
	Save(ctx context.Context, tx *gorm.DB, trans *model.Transaction) (*model.Transaction, error)
}

type CollectionStore interface {
	FindAll(ctx context.Context) ([]*model.Collection, error)
	FindByDate(ctx context.Context, date string) (*model.Collection, error)
	GetOrCreate(ctx context.Context, date string) (*model.Collection, error)
	Save(ctx context.Context, coll *model.Collection) (*model.Collection, error)
}

type OutboxWriter interface {
	Create(ctx context.Context, tx *gorm.DB, msg *model.OutboxMessage) error
}
