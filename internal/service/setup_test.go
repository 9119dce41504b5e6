package service

import (
	"context"
	"testing"
	"time"

	"gamecenter/internal/config"
	"gamecenter/internal/infrastructure/lock"
	"gamecenter/internal/model"
	"gamecenter/internal/repository"
	"gamecenter/internal/testutil"
	"gamecenter/pkg/logger"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testTopics = config.KafkaTopicConfig{
	RechargeEvents:    "gamecenter.recharge",
	TransactionEvents: "gamecenter.transaction",
}

type fixture struct {
	db           *gorm.DB
	members      *repository.MemberRepository
	games        *repository.GameRepository
	recharges    *repository.RechargeRepository
	transactions *repository.TransactionRepository
	collections  *repository.CollectionRepository
	outbox       *repository.OutboxRepository

	ledger *LedgerService
	trans  *TransactionService
	report *ReportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)

	f := &fixture{
		db:           db,
		members:      repository.NewMemberRepository(db),
		games:        repository.NewGameRepository(db),
		recharges:    repository.NewRechargeRepository(db),
		transactions: repository.NewTransactionRepository(db),
		collections:  repository.NewCollectionRepository(db),
		outbox:       repository.NewOutboxRepository(db),
	}

	notifier := NewOutboxNotifier(f.outbox, testTopics)
	f.ledger = NewLedgerService(f.db, f.recharges, f.collections, lock.NewLocalDateLocker(), notifier, logger.Nop())
	f.trans = NewTransactionService(f.db, f.transactions, f.members, f.games, notifier, logger.Nop())
	f.report = NewReportService(f.recharges, f.collections)
	return f
}

func ts(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := model.ParseTimestamp(s)
	require.NoError(t, err)
	return v
}

// total 返回某天日汇总，不存在时返回 -1 以便和 0 区分
func (f *fixture) total(t *testing.T, date string) float64 {
	t.Helper()
	coll, err := f.collections.FindByDate(context.Background(), date)
	if err != nil {
		require.ErrorIs(t, err, repository.ErrCollectionNotFound)
		return -1
	}
	return coll.TotalRecharges
}

func (f *fixture) outboxMessages(t *testing.T) []*model.OutboxMessage {
	t.Helper()
	msgs, err := f.outbox.GetPendingMessages(context.Background(), 1000)
	require.NoError(t, err)
	return msgs
}
