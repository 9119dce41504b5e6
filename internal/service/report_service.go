package service

import (
	"context"
	"strings"

	"gamecenter/internal/model"
)

// ReportService 日汇总的只读查询
type ReportService struct {
	recharges   RechargeStore
	collections CollectionStore
}

func NewReportService(recharges RechargeStore, collections CollectionStore) *ReportService {
	return &ReportService{
		recharges:   recharges,
		collections: collections,
	}
}

func (s *ReportService) ListCollections(ctx context.Context) ([]*model.Collection, error) {
	return s.collections.FindAll(ctx)
}

func (s *ReportService) GetCollection(ctx context.Context, date string) (*model.Collection, error) {
	return s.collections.FindByDate(ctx, date)
}

// TotalRechargesOn 线性扫描全部充值，累加时间戳字符串以 prefix 开头的金额
//
// 不读写 Collection 表，可用来核对日汇总。匹配是纯文本前缀匹配，
// 时间戳按 model.TimestampLayout 格式化，例如 "2024-01-05" 匹配当天任意时刻。
func (s *ReportService) TotalRechargesOn(ctx context.Context, prefix string) (float64, error) {
	recharges, err := s.recharges.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, r := range recharges {
		if strings.HasPrefix(model.FormatTimestamp(r.Date), prefix) {
			total += r.Amount
		}
	}
	return total, nil
}
