package service

import (
	"context"
	"errors"
	"testing"

	"gamecenter/internal/model"
	"gamecenter/internal/repository"
	"gamecenter/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionService_CreateSkipsLookup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice, err := f.members.Save(ctx, &model.Member{Name: "Alice"})
	require.NoError(t, err)
	pinball, err := f.games.Save(ctx, &model.Game{Name: "Pinball"})
	require.NoError(t, err)

	tr, err := f.trans.CreateTransaction(ctx, &TransactionRequest{
		MemberID: alice.ID, GameID: pinball.ID, Amount: 10, Date: ts(t, "2024-01-05T10:00"),
	})
	require.NoError(t, err)
	assert.Empty(t, tr.MemberName)
	assert.Empty(t, tr.GameName)

	stored, err := f.transactions.FindByID(ctx, tr.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.MemberName)
	assert.Empty(t, stored.GameName)

	// 调用方给了名称就原样保存，即使和 Member 表不一致
	tr2, err := f.trans.CreateTransaction(ctx, &TransactionRequest{
		MemberID: alice.ID, MemberName: "Someone Else", GameID: "GAM-missing", GameName: "Old Game",
		Amount: 5, Date: ts(t, "2024-01-05T11:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Someone Else", tr2.MemberName)
	assert.Equal(t, "Old Game", tr2.GameName)
}

func TestTransactionService_UpdateResolvesNames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice, err := f.members.Save(ctx, &model.Member{Name: "Alice"})
	require.NoError(t, err)
	pinball, err := f.games.Save(ctx, &model.Game{Name: "Pinball"})
	require.NoError(t, err)

	tr, err := f.trans.CreateTransaction(ctx, &TransactionRequest{MemberID: "M0", GameID: "G0", Amount: 10, Date: ts(t, "2024-01-05T10:00")})
	require.NoError(t, err)

	updated, err := f.trans.UpdateTransaction(ctx, tr.ID, &TransactionRequest{
		MemberID: alice.ID, MemberName: "ignored", GameID: pinball.ID, Amount: 12, Date: ts(t, "2024-01-06T10:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.MemberName)
	assert.Equal(t, "Pinball", updated.GameName)
	assert.Equal(t, 12.0, updated.Amount)
	assert.Equal(t, alice.ID, updated.MemberID)

	stored, err := f.transactions.FindByID(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", stored.MemberName)
	assert.Equal(t, "Pinball", stored.GameName)
}

func TestTransactionService_UpdateKeepsStaleNamesWhenUnresolved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tr, err := f.trans.CreateTransaction(ctx, &TransactionRequest{
		MemberID: "M1", MemberName: "Old Member", GameID: "G1", GameName: "Old Game",
		Amount: 10, Date: ts(t, "2024-01-05T10:00"),
	})
	require.NoError(t, err)

	updated, err := f.trans.UpdateTransaction(ctx, tr.ID, &TransactionRequest{
		MemberID: "M-missing", GameID: "G-missing", Amount: 20, Date: ts(t, "2024-01-05T10:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "M-missing", updated.MemberID)
	assert.Equal(t, "Old Member", updated.MemberName)
	assert.Equal(t, "Old Game", updated.GameName)
	assert.Equal(t, 20.0, updated.Amount)
}

func TestTransactionService_UpdateNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.trans.UpdateTransaction(context.Background(), "TXN-missing", &TransactionRequest{})
	assert.ErrorIs(t, err, repository.ErrTransactionNotFound)
	assert.ErrorIs(t, err, repository.ErrRecordNotFound)
}

func TestTransactionService_ListRefreshesWithoutPersisting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice, err := f.members.Save(ctx, &model.Member{Name: "Alice"})
	require.NoError(t, err)
	pinball, err := f.games.Save(ctx, &model.Game{Name: "Pinball"})
	require.NoError(t, err)

	withRefs, err := f.trans.CreateTransaction(ctx, &TransactionRequest{MemberID: alice.ID, GameID: pinball.ID, Amount: 10, Date: ts(t, "2024-01-05T10:00")})
	require.NoError(t, err)
	orphan, err := f.trans.CreateTransaction(ctx, &TransactionRequest{
		MemberID: "M-gone", MemberName: "Ghost", GameID: "G-gone", GameName: "Retired", Amount: 3, Date: ts(t, "2024-01-05T11:00"),
	})
	require.NoError(t, err)

	// 会员改名后，列表读到新名字
	alice.Name = "Alicia"
	_, err = f.members.Save(ctx, alice)
	require.NoError(t, err)

	list, err := f.trans.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	byID := map[string]*model.Transaction{}
	for _, tr := range list {
		byID[tr.ID] = tr
	}
	assert.Equal(t, "Alicia", byID[withRefs.ID].MemberName)
	assert.Equal(t, "Pinball", byID[withRefs.ID].GameName)
	assert.Equal(t, "Ghost", byID[orphan.ID].MemberName)
	assert.Equal(t, "Retired", byID[orphan.ID].GameName)

	// 刷新只作用于返回结果
	stored, err := f.transactions.FindByID(ctx, withRefs.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.MemberName)
	assert.Empty(t, stored.GameName)
}

func TestTransactionService_WritesChangeNotifications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tr, err := f.trans.CreateTransaction(ctx, &TransactionRequest{MemberID: "M1", GameID: "G1", Amount: 1, Date: ts(t, "2024-01-05T10:00")})
	require.NoError(t, err)
	_, err = f.trans.UpdateTransaction(ctx, tr.ID, &TransactionRequest{MemberID: "M1", GameID: "G1", Amount: 2, Date: ts(t, "2024-01-05T10:00")})
	require.NoError(t, err)

	msgs := f.outboxMessages(t)
	require.Len(t, msgs, 2)
	assert.Equal(t, model.EventTransactionCreated, msgs[0].EventType)
	assert.Equal(t, model.EventTransactionUpdated, msgs[1].EventType)
	assert.Equal(t, testTopics.TransactionEvents, msgs[0].Topic)
}

// countingMembers 统计查询次数，并可注入非“不存在”类错误
type countingMembers struct {
	MemberStore
	calls int
	err   error
}

func (c *countingMembers) FindByID(ctx context.Context, id string) (*model.Member, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.MemberStore.FindByID(ctx, id)
}

func TestTransactionService_ListLooksUpEachReferenceOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice, err := f.members.Save(ctx, &model.Member{Name: "Alice"})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err := f.trans.CreateTransaction(ctx, &TransactionRequest{MemberID: alice.ID, GameID: "G1", Amount: 1, Date: ts(t, "2024-01-05T10:00")})
		require.NoError(t, err)
	}

	members := &countingMembers{MemberStore: f.members}
	svc := NewTransactionService(f.db, f.transactions, members, f.games, nil, logger.Nop())

	list, err := svc.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 5)
	for _, tr := range list {
		assert.Equal(t, "Alice", tr.MemberName)
	}
	assert.Equal(t, 1, members.calls)
}

func TestTransactionService_LookupErrorPropagates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.trans.CreateTransaction(ctx, &TransactionRequest{MemberID: "M1", GameID: "G1", Amount: 1, Date: ts(t, "2024-01-05T10:00")})
	require.NoError(t, err)

	boom := errors.New("db gone")
	svc := NewTransactionService(f.db, f.transactions, &countingMembers{MemberStore: f.members, err: boom}, f.games, nil, logger.Nop())

	_, err = svc.ListTransactions(ctx)
	assert.ErrorIs(t, err, boom)
}

func TestTransactionService_NotificationFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tr, err := f.trans.CreateTransaction(ctx, &TransactionRequest{MemberID: "M1", GameID: "G1", Amount: 1, Date: ts(t, "2024-01-05T10:00")})
	require.NoError(t, err)

	svc := NewTransactionService(f.db, f.transactions, f.members, f.games, failingRecorder{}, logger.Nop())

	_, err = svc.CreateTransaction(ctx, &TransactionRequest{MemberID: "M2", GameID: "G2", Amount: 2, Date: ts(t, "2024-01-05T11:00")})
	require.Error(t, err)

	_, err = svc.UpdateTransaction(ctx, tr.ID, &TransactionRequest{MemberID: "M3", GameID: "G3", Amount: 3, Date: ts(t, "2024-01-05T12:00")})
	require.Error(t, err)

	list, err := f.transactions.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "M1", list[0].MemberID)
	assert.Equal(t, 1.0, list[0].Amount)
}
