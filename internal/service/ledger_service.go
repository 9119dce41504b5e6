package service

import (
	"context"
	"fmt"
	"time"

	"gamecenter/internal/infrastructure/lock"
	"gamecenter/internal/model"
	"gamecenter/pkg/logger"

	"gorm.io/gorm"
)

// ============================================================================
// 充值账本：维护按日汇总（Collection）与充值记录的一致性
// ============================================================================
//
// 日汇总是增量维护的，不会每次重新扫描充值表。
// 代价是：所有改动充值记录的路径都必须经过本服务，否则汇总会失真。
//
// 修改充值时做“两桶再平衡”：
//   1. 旧日期的汇总减去旧金额
//   2. 新日期的汇总加上新金额
// 同一天时两步落在同一行上，依然按顺序执行两次，不合并成差值。
//
// 充值记录和它的变更通知（outbox）在同一个数据库事务里提交；
// 日汇总的调整在事务提交之后、按日期加锁单独执行。
//
// ============================================================================

type LedgerService struct {
	db          *gorm.DB
	recharges   RechargeStore
	collections CollectionStore
	locker      lock.DateLocker
	events      EventRecorder
	log         *logger.Logger
}

func NewLedgerService(db *gorm.DB, recharges RechargeStore, collections CollectionStore, locker lock.DateLocker, events EventRecorder, log *logger.Logger) *LedgerService {
	return &LedgerService{
		db:          db,
		recharges:   recharges,
		collections: collections,
		locker:      locker,
		events:      events,
		log:         log.With("component", "LedgerService"),
	}
}

// RechargeRequest 新建/修改充值的入参；金额不做校验，负数和 0 原样记账
type RechargeRequest struct {
	MemberName string
	Amount     float64
	Date       time.Time
}

func (s *LedgerService) ListRecharges(ctx context.Context) ([]*model.Recharge, error) {
	return s.recharges.FindAll(ctx)
}

// RecordRecharge 保存充值并累加当天汇总
func (s *LedgerService) RecordRecharge(ctx context.Context, req *RechargeRequest) (*model.Recharge, error) {
	recharge := &model.Recharge{
		MemberName: req.MemberName,
		Amount:     req.Amount,
		Date:       req.Date.UTC(),
	}

	var saved *model.Recharge
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		saved, err = s.recharges.Save(ctx, tx, recharge)
		if err != nil {
			return fmt.Errorf("保存充值记录失败: %w", err)
		}
		return s.notify(ctx, tx, model.EventRechargeRecorded, saved)
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.adjustCollection(ctx, saved.Day(), saved.Amount); err != nil {
		return nil, err
	}

	s.log.Info("充值入账", "recharge_id", saved.ID, "date", saved.Day(), "amount", saved.Amount)
	return saved, nil
}

// ReviseRecharge 修改充值并对新旧日期做两桶再平衡
//
// 只改会员名时金额和日期都不变，仍然完整执行一次减/加，净效果为 0。
func (s *LedgerService) ReviseRecharge(ctx context.Context, id string, req *RechargeRequest) (*model.Recharge, error) {
	existing, err := s.recharges.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldAmount := existing.Amount
	oldDate := existing.Day()

	existing.Amount = req.Amount
	existing.Date = req.Date.UTC()
	existing.MemberName = req.MemberName

	var updated *model.Recharge
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		updated, err = s.recharges.Save(ctx, tx, existing)
		if err != nil {
			return fmt.Errorf("更新充值记录失败: %w", err)
		}
		return s.notify(ctx, tx, model.EventRechargeRevised, updated)
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.adjustCollection(ctx, oldDate, -oldAmount); err != nil {
		return nil, err
	}

	if _, err := s.adjustCollection(ctx, updated.Day(), updated.Amount); err != nil {
		return nil, err
	}

	s.log.Info("充值修改",
		"recharge_id", updated.ID,
		"old_date", oldDate, "old_amount", oldAmount,
		"new_date", updated.Day(), "new_amount", updated.Amount,
	)
	return updated, nil
}

// adjustCollection 日汇总唯一的写入路径：加锁 -> 取或建 -> 累加 -> 保存
func (s *LedgerService) adjustCollection(ctx context.Context, date string, delta float64) (*model.Collection, error) {
	release, err := s.locker.Acquire(ctx, date)
	if err != nil {
		return nil, err
	}
	defer release()

	coll, err := s.collections.GetOrCreate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("获取日汇总失败 date=%s: %w", date, err)
	}

	coll.TotalRecharges += delta

	saved, err := s.collections.Save(ctx, coll)
	if err != nil {
		return nil, fmt.Errorf("保存日汇总失败 date=%s: %w", date, err)
	}
	return saved, nil
}

// notify 在 tx 内写变更通知，失败时整个事务回滚
func (s *LedgerService) notify(ctx context.Context, tx *gorm.DB, eventType string, recharge *model.Recharge) error {
	if s.events == nil {
		return nil
	}
	if err := s.events.Record(ctx, tx, eventType, recharge.ID, recharge); err != nil {
		return fmt.Errorf("写入变更通知失败 event=%s: %w", eventType, err)
	}
	return nil
}
