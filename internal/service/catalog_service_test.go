package service

import (
	"context"
	"testing"

	"gamecenter/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberService_CRUD(t *testing.T) {
	f := newFixture(t)
	svc := NewMemberService(f.members)
	ctx := context.Background()

	created, err := svc.CreateMember(ctx, &MemberRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := svc.GetMember(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	updated, err := svc.UpdateMember(ctx, created.ID, &MemberRequest{Name: "Alicia", Phone: "555"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Empty(t, updated.Email)

	list, err := svc.ListMembers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Alicia", list[0].Name)

	_, err = svc.GetMember(ctx, "MBR-missing")
	assert.ErrorIs(t, err, repository.ErrRecordNotFound)
	_, err = svc.UpdateMember(ctx, "MBR-missing", &MemberRequest{Name: "x"})
	assert.ErrorIs(t, err, repository.ErrMemberNotFound)
}

func TestGameService_CRUD(t *testing.T) {
	f := newFixture(t)
	svc := NewGameService(f.games)
	ctx := context.Background()

	created, err := svc.CreateGame(ctx, &GameRequest{Name: "Pinball", Price: 2.5, MinPlayers: 1, MaxPlayers: 4})
	require.NoError(t, err)

	updated, err := svc.UpdateGame(ctx, created.ID, &GameRequest{Name: "Pinball Deluxe", Price: 3, MinPlayers: 1, MaxPlayers: 2, PlayerMultiple: 1})
	require.NoError(t, err)
	assert.Equal(t, "Pinball Deluxe", updated.Name)
	assert.Equal(t, 3.0, updated.Price)
	assert.Equal(t, 2, updated.MaxPlayers)

	list, err := svc.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.DeleteGame(ctx, created.ID))
	list, err = svc.ListGames(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// 重复删除静默成功
	assert.NoError(t, svc.DeleteGame(ctx, created.ID))
	_, err = svc.UpdateGame(ctx, created.ID, &GameRequest{Name: "x"})
	assert.ErrorIs(t, err, repository.ErrGameNotFound)
}

func TestGameService_DeleteKeepsTransactionName(t *testing.T) {
	f := newFixture(t)
	svc := NewGameService(f.games)
	ctx := context.Background()

	game, err := svc.CreateGame(ctx, &GameRequest{Name: "Pinball"})
	require.NoError(t, err)
	tr, err := f.trans.CreateTransaction(ctx, &TransactionRequest{MemberID: "M1", GameID: game.ID, Amount: 1, Date: ts(t, "2024-01-05T10:00")})
	require.NoError(t, err)
	_, err = f.trans.UpdateTransaction(ctx, tr.ID, &TransactionRequest{MemberID: "M1", GameID: game.ID, Amount: 1, Date: ts(t, "2024-01-05T10:00")})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGame(ctx, game.ID))

	list, err := f.trans.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Pinball", list[0].GameName)
}
