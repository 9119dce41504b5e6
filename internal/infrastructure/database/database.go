package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gamecenter/internal/config"
	"gamecenter/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models 需要自动迁移的全部表
func Models() []interface{} {
	return []interface{}{
		&model.Member{},
		&model.Game{},
		&model.Recharge{},
		&model.Transaction{},
		&model.Collection{},
		&model.OutboxMessage{},
	}
}

// Open 按配置打开 MySQL 或 SQLite，并完成连接池配置与表结构迁移
func Open(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(parseLogLevel(cfg.Database.LogLevel)),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Database.Driver {
	case "sqlite":
		db, err = openSQLite(cfg.Database.SQLitePath, gormCfg)
	default:
		db, err = openMySQL(&cfg.MySQL, gormCfg)
	}
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("自动迁移表结构失败: %w", err)
	}
	return db, nil
}

func openMySQL(cfg *config.MySQLConfig, gormCfg *gorm.Config) (*gorm.DB, error) {
	// 时间统一按 UTC 读写，日汇总的日期以 UTC 墙上时间为准
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
	)

	db, err := gorm.Open(mysql.Open(dsn), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("连接 MySQL 失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 DB 失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func openSQLite(path string, gormCfg *gorm.Config) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("创建 SQLite 目录失败: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000"), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("打开 SQLite 失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 DB 失败: %w", err)
	}
	// SQLite 只允许单写者
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func parseLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
