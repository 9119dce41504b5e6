package repository

import (
	"context"
	"errors"

	"gamecenter/internal/model"
	"gamecenter/pkg/idgen"

	"gorm.io/gorm"
)

type GameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) FindAll(ctx context.Context) ([]*model.Game, error) {
	var games []*model.Game
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&games).Error
	return games, err
}

func (r *GameRepository) FindByID(ctx context.Context, id string) (*model.Game, error) {
	var game model.Game
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&game).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return &game, nil
}

func (r *GameRepository) Save(ctx context.Context, game *model.Game) (*model.Game, error) {
	db := r.db.WithContext(ctx)
	if game.ID == "" {
		game.ID = idgen.GenerateGameID()
		if err := db.Create(game).Error; err != nil {
			return nil, err
		}
		return game, nil
	}
	if err := db.Save(game).Error; err != nil {
		return nil, err
	}
	return game, nil
}

// DeleteByID 删除游戏，不存在时静默成功
func (r *GameRepository) DeleteByID(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Game{}).Error
}
