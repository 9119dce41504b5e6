package repository

import (
	"errors"
	"fmt"
)

// ErrRecordNotFound 所有“记录不存在”错误的根，调用方用 errors.Is 判断
var ErrRecordNotFound = errors.New("记录不存在")

var (
	ErrMemberNotFound      = fmt.Errorf("会员%w", ErrRecordNotFound)
	ErrGameNotFound        = fmt.Errorf("游戏%w", ErrRecordNotFound)
	ErrRechargeNotFound    = fmt.Errorf("充值%w", ErrRecordNotFound)
	ErrTransactionNotFound = fmt.Errorf("消费%w", ErrRecordNotFound)
	ErrCollectionNotFound  = fmt.Errorf("日汇总%w", ErrRecordNotFound)
)
