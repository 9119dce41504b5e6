package service

import (
	"context"
	"testing"

	"gamecenter/internal/model"
	"gamecenter/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_TotalRechargesOn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, r := range []struct {
		amount float64
		at     string
	}{
		{10, "2024-01-05T09:00"},
		{20, "2024-01-05T18:00"},
		{30, "2024-01-06T10:00"},
	} {
		_, err := f.ledger.RecordRecharge(ctx, &RechargeRequest{Amount: r.amount, Date: ts(t, r.at)})
		require.NoError(t, err)
	}

	cases := map[string]float64{
		"2024-01-05":       30,
		"2024-01-06":       30,
		"2024-01":          60,
		"2024-01-05T18":    20,
		"2024-01-05T09:00": 10,
		"2024-02":          0,
		"":                 60,
	}
	for prefix, want := range cases {
		got, err := f.report.TotalRechargesOn(ctx, prefix)
		require.NoError(t, err)
		assert.Equal(t, want, got, "prefix %q", prefix)
	}
}

func TestReportService_DoesNotTouchCollections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 绕过账本直接写充值，扫描能看到，日汇总看不到
	_, err := f.recharges.Save(ctx, nil, &model.Recharge{Amount: 15, Date: ts(t, "2024-01-05T09:00")})
	require.NoError(t, err)

	got, err := f.report.TotalRechargesOn(ctx, "2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, 15.0, got)

	_, err = f.report.GetCollection(ctx, "2024-01-05")
	assert.ErrorIs(t, err, repository.ErrCollectionNotFound)

	list, err := f.report.ListCollections(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
