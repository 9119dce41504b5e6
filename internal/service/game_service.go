package service

import (
	"context"

	"gamecenter/internal/model"
)

type GameService struct {
	games GameStore
}

func NewGameService(games GameStore) *GameService {
	return &GameService{games: games}
}

type GameRequest struct {
	Name           string
	Price          float64
	Description    string
	MinPlayers     int
	MaxPlayers     int
	PlayerMultiple int
	Status         string
	Duration       string
}

func (req *GameRequest) applyTo(g *model.Game) {
	g.Name = req.Name
	g.Price = req.Price
	g.Description = req.Description
	g.MinPlayers = req.MinPlayers
	g.MaxPlayers = req.MaxPlayers
	g.PlayerMultiple = req.PlayerMultiple
	g.Status = req.Status
	g.Duration = req.Duration
}

func (s *GameService) ListGames(ctx context.Context) ([]*model.Game, error) {
	return s.games.FindAll(ctx)
}

func (s *GameService) CreateGame(ctx context.Context, req *GameRequest) (*model.Game, error) {
	game := &model.Game{}
	req.applyTo(game)
	return s.games.Save(ctx, game)
}

func (s *GameService) UpdateGame(ctx context.Context, id string, req *GameRequest) (*model.Game, error) {
	existing, err := s.games.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.applyTo(existing)
	return s.games.Save(ctx, existing)
}

// DeleteGame 删除后引用它的消费记录保留旧的游戏名
func (s *GameService) DeleteGame(ctx context.Context, id string) error {
	return s.games.DeleteByID(ctx, id)
}
