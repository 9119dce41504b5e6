package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gamecenter/internal/model"
	"gamecenter/internal/repository"
	"gamecenter/pkg/logger"

	"gorm.io/gorm"
)

// TransactionService 维护消费记录上冗余的会员名/游戏名
//
//   - 新建：原样保存，不查 Member / Game
//   - 修改：按 ID 查到就覆盖名称，查不到保留原值
//   - 列表：读取时刷新名称，只影响返回结果，不回写
//
// 新建和修改时，消费记录与变更通知在同一个事务里提交。
type TransactionService struct {
	db           *gorm.DB
	transactions TransactionStore
	members      MemberStore
	games        GameStore
	events       EventRecorder
	log          *logger.Logger
}

func NewTransactionService(db *gorm.DB, transactions TransactionStore, members MemberStore, games GameStore, events EventRecorder, log *logger.Logger) *TransactionService {
	return &TransactionService{
		db:           db,
		transactions: transactions,
		members:      members,
		games:        games,
		events:       events,
		log:          log.With("component", "TransactionService"),
	}
}

type TransactionRequest struct {
	MemberID   string
	MemberName string
	GameID     string
	GameName   string
	Amount     float64
	Date       time.Time
}

func (s *TransactionService) CreateTransaction(ctx context.Context, req *TransactionRequest) (*model.Transaction, error) {
	trans := &model.Transaction{
		MemberID:   req.MemberID,
		MemberName: req.MemberName,
		GameID:     req.GameID,
		GameName:   req.GameName,
		Amount:     req.Amount,
		Date:       req.Date.UTC(),
	}

	return s.save(ctx, trans, model.EventTransactionCreated)
}

// UpdateTransaction 覆盖会员、游戏、金额、时间，并重新解析名称；请求里的名称会被忽略
func (s *TransactionService) UpdateTransaction(ctx context.Context, id string, req *TransactionRequest) (*model.Transaction, error) {
	existing, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.MemberID = req.MemberID
	existing.GameID = req.GameID
	existing.Amount = req.Amount
	existing.Date = req.Date.UTC()

	r := newNameResolver(s.members, s.games)
	if err := r.refresh(ctx, existing); err != nil {
		return nil, err
	}

	updated, err := s.save(ctx, existing, model.EventTransactionUpdated)
	if err != nil {
		return nil, err
	}

	s.log.Info("消费记录修改", "transaction_id", updated.ID, "member_id", updated.MemberID, "game_id", updated.GameID, "amount", updated.Amount)
	return updated, nil
}

// ListTransactions 返回全部消费记录，名称按当前 Member / Game 刷新
func (s *TransactionService) ListTransactions(ctx context.Context) ([]*model.Transaction, error) {
	transactions, err := s.transactions.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	r := newNameResolver(s.members, s.games)
	for _, t := range transactions {
		if err := r.refresh(ctx, t); err != nil {
			return nil, err
		}
	}
	return transactions, nil
}

// save 在一个事务里保存消费记录并写变更通知
func (s *TransactionService) save(ctx context.Context, trans *model.Transaction, eventType string) (*model.Transaction, error) {
	var saved *model.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		saved, err = s.transactions.Save(ctx, tx, trans)
		if err != nil {
			return fmt.Errorf("保存消费记录失败: %w", err)
		}
		if s.events == nil {
			return nil
		}
		if err := s.events.Record(ctx, tx, eventType, saved.ID, saved); err != nil {
			return fmt.Errorf("写入变更通知失败 event=%s: %w", eventType, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// nameResolver 在一次请求内缓存 ID -> 名称，列表里同一会员/游戏只查一次
type nameResolver struct {
	members MemberStore
	games   GameStore

	memberNames map[string]*string
	gameNames   map[string]*string
}

func newNameResolver(members MemberStore, games GameStore) *nameResolver {
	return &nameResolver{
		members:     members,
		games:       games,
		memberNames: make(map[string]*string),
		gameNames:   make(map[string]*string),
	}
}

// refresh 能解析的名称覆盖到 t 上，解析不到的保持原值
func (r *nameResolver) refresh(ctx context.Context, t *model.Transaction) error {
	name, err := r.memberName(ctx, t.MemberID)
	if err != nil {
		return err
	}
	if name != nil {
		t.MemberName = *name
	}

	name, err = r.gameName(ctx, t.GameID)
	if err != nil {
		return err
	}
	if name != nil {
		t.GameName = *name
	}
	return nil
}

func (r *nameResolver) memberName(ctx context.Context, id string) (*string, error) {
	if name, ok := r.memberNames[id]; ok {
		return name, nil
	}
	var name *string
	member, err := r.members.FindByID(ctx, id)
	switch {
	case err == nil:
		name = &member.Name
	case errors.Is(err, repository.ErrRecordNotFound):
	default:
		return nil, fmt.Errorf("查询会员失败 id=%s: %w", id, err)
	}
	r.memberNames[id] = name
	return name, nil
}

func (r *nameResolver) gameName(ctx context.Context, id string) (*string, error) {
	if name, ok := r.gameNames[id]; ok {
		return name, nil
	}
	var name *string
	game, err := r.games.FindByID(ctx, id)
	switch {
	case err == nil:
		name = &game.Name
	case errors.Is(err, repository.ErrRecordNotFound):
	default:
		return nil, fmt.Errorf("查询游戏失败 id=%s: %w", id, err)
	}
	r.gameNames[id] = name
	return name, nil
}
