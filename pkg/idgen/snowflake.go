package idgen

import (
	"fmt"
	"sync"
	"time"
)

// ============================================================================
// 雪花算法 ID 生成器
// ============================================================================
//
// 所有实体的主键都是不透明字符串：业务前缀 + 雪花 ID（十进制）。
// 雪花 ID 趋势递增，便于索引；不同前缀避免跨实体误用 ID。
//
//   0 - 41位时间戳 - 10位机器ID - 12位序列号
//
// ============================================================================

const (
	epoch          = int64(1704067200000) // 起始时间戳（2024-01-01 00:00:00 UTC）
	workerIDBits   = 10
	sequenceBits   = 12
	maxWorkerID    = -1 ^ (-1 << workerIDBits)
	maxSequence    = -1 ^ (-1 << sequenceBits)
	workerIDShift  = sequenceBits
	timestampShift = sequenceBits + workerIDBits
)

const (
	PrefixMember      = "MBR"
	PrefixGame        = "GAM"
	PrefixRecharge    = "RCG"
	PrefixTransaction = "TXN"
	PrefixCollection  = "COL"
)

// Snowflake 雪花算法ID生成器
type Snowflake struct {
	mu        sync.Mutex
	timestamp int64
	workerID  int64
	sequence  int64
}

var (
	defaultGenerator *Snowflake
	defaultMu        sync.Mutex
)

// NewSnowflake 创建独立的生成器，workerID 取值 0-1023
func NewSnowflake(workerID int64) (*Snowflake, error) {
	if workerID < 0 || workerID > maxWorkerID {
		return nil, fmt.Errorf("workerID 必须在 0-%d 之间", maxWorkerID)
	}
	return &Snowflake{workerID: workerID}, nil
}

// Init 初始化默认ID生成器；已初始化时不再替换，非法 workerID 总是返回错误
func Init(workerID int64) error {
	g, err := NewSnowflake(workerID)
	if err != nil {
		return err
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultGenerator == nil {
		defaultGenerator = g
	}
	return nil
}

// NextID 生成下一个ID，未初始化（包括 Init 失败）时默认 workerID = 1
func NextID() int64 {
	return defaultSnowflake().Generate()
}

func defaultSnowflake() *Snowflake {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultGenerator == nil {
		defaultGenerator = &Snowflake{workerID: 1}
	}
	return defaultGenerator
}

// Generate 生成ID
func (s *Snowflake) Generate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixMilli()

	if now == s.timestamp {
		s.sequence = (s.sequence + 1) & maxSequence
		if s.sequence == 0 {
			// 序列号用完，等待下一毫秒
			for now <= s.timestamp {
				now = time.Now().UnixMilli()
			}
		}
	} else {
		s.sequence = 0
	}

	s.timestamp = now

	return ((now - epoch) << timestampShift) |
		(s.workerID << workerIDShift) |
		s.sequence
}

// GenerateID 生成带业务前缀的ID，例如 RCG158023443283968
func GenerateID(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, NextID())
}

func GenerateMemberID() string      { return GenerateID(PrefixMember) }
func GenerateGameID() string        { return GenerateID(PrefixGame) }
func GenerateRechargeID() string    { return GenerateID(PrefixRecharge) }
func GenerateTransactionID() string { return GenerateID(PrefixTransaction) }
func GenerateCollectionID() string  { return GenerateID(PrefixCollection) }
