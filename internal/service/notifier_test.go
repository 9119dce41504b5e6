package service

import (
	"context"
	"encoding/json"
	"testing"

	"gamecenter/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxNotifier_Record(t *testing.T) {
	f := newFixture(t)
	n := NewOutboxNotifier(f.outbox, testTopics)
	ctx := context.Background()

	recharge := &model.Recharge{ID: "RCG1", MemberName: "Alice", Amount: 10, Date: ts(t, "2024-01-05T09:00")}
	require.NoError(t, n.Record(ctx, nil, model.EventRechargeRecorded, recharge.ID, recharge))
	require.NoError(t, n.Record(ctx, nil, model.EventTransactionCreated, "TXN1", &model.Transaction{ID: "TXN1"}))

	msgs := f.outboxMessages(t)
	require.Len(t, msgs, 2)

	assert.Equal(t, testTopics.RechargeEvents, msgs[0].Topic)
	assert.Equal(t, "RCG1", msgs[0].MessageKey)
	assert.Equal(t, model.OutboxStatusPending, msgs[0].Status)
	assert.Equal(t, testTopics.TransactionEvents, msgs[1].Topic)

	var env struct {
		Event      string         `json:"event"`
		OccurredAt string         `json:"occurred_at"`
		Data       map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(msgs[0].Payload), &env))
	assert.Equal(t, model.EventRechargeRecorded, env.Event)
	assert.NotEmpty(t, env.OccurredAt)
	assert.Equal(t, "Alice", env.Data["memberName"])
	assert.Equal(t, 10.0, env.Data["amount"])
}
