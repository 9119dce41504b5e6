package job

import (
	"context"
	"math"
	"time"

	"gamecenter/internal/model"
	"gamecenter/pkg/logger"
)

// RecentCollections 按日期倒序读取日汇总
type RecentCollections interface {
	FindRecent(ctx context.Context, limit int) ([]*model.Collection, error)
}

// RechargeTotaler 按时间戳前缀扫描充值合计
type RechargeTotaler interface {
	TotalRechargesOn(ctx context.Context, prefix string) (float64, error)
}

// Drift 一条日汇总与充值扫描结果不一致的记录
type Drift struct {
	Date     string
	Recorded float64
	Scanned  float64
}

// CollectionAudit 定期比对最近若干天的日汇总和充值扫描结果
//
// 只读：发现偏差只记日志，不修正日汇总。
type CollectionAudit struct {
	collections RecentCollections
	totals      RechargeTotaler
	log         *logger.Logger
	stopCh      chan struct{}
	interval    time.Duration
	batchSize   int
}

func NewCollectionAudit(collections RecentCollections, totals RechargeTotaler, interval time.Duration, batchSize int, log *logger.Logger) *CollectionAudit {
	return &CollectionAudit{
		collections: collections,
		totals:      totals,
		log:         log.With("component", "CollectionAudit"),
		stopCh:      make(chan struct{}),
		interval:    interval,
		batchSize:   batchSize,
	}
}

func (j *CollectionAudit) Start(ctx context.Context) {
	j.log.Info("日汇总核对任务启动", "interval", j.interval, "batch_size", j.batchSize)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.log.Info("收到停止信号，任务退出")
			return
		case <-j.stopCh:
			j.log.Info("任务停止")
			return
		case <-ticker.C:
			if _, err := j.Check(ctx); err != nil {
				j.log.Error("核对日汇总失败", "error", err)
			}
		}
	}
}

func (j *CollectionAudit) Stop() {
	close(j.stopCh)
}

// Check 执行一轮核对，返回发现的偏差
func (j *CollectionAudit) Check(ctx context.Context) ([]Drift, error) {
	collections, err := j.collections.FindRecent(ctx, j.batchSize)
	if err != nil {
		return nil, err
	}

	var drifts []Drift
	for _, coll := range collections {
		scanned, err := j.totals.TotalRechargesOn(ctx, coll.Date)
		if err != nil {
			return drifts, err
		}
		if equalAmount(coll.TotalRecharges, scanned) {
			continue
		}
		d := Drift{Date: coll.Date, Recorded: coll.TotalRecharges, Scanned: scanned}
		drifts = append(drifts, d)
		j.log.Warn("日汇总与充值记录不一致", "date", d.Date, "recorded", d.Recorded, "scanned", d.Scanned)
	}
	return drifts, nil
}

// 累加顺序不同会带来浮点误差
func equalAmount(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
