package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gamecenter/internal/config"
	"gamecenter/internal/handler"
	"gamecenter/internal/infrastructure/cache"
	"gamecenter/internal/infrastructure/database"
	"gamecenter/internal/infrastructure/lock"
	"gamecenter/internal/infrastructure/mq"
	"gamecenter/internal/job"
	"gamecenter/internal/repository"
	"gamecenter/internal/service"
	"gamecenter/pkg/idgen"
	"gamecenter/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zlog.Sync()

	if err := idgen.Init(cfg.Business.WorkerID); err != nil {
		zlog.Fatal("初始化 ID 生成器失败", "error", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		zlog.Fatal("初始化数据库失败", "driver", cfg.Database.Driver, "error", err)
	}

	// 多实例部署时用 Redis 锁串行化同一天的日汇总写入，单实例退化为进程内锁
	var locker lock.DateLocker
	if cfg.Redis.Enabled {
		rdb, err := cache.InitRedis(&cfg.Redis)
		if err != nil {
			zlog.Fatal("初始化 Redis 失败", "error", err)
		}
		defer rdb.Close()
		locker = lock.NewRedisDateLocker(rdb, cfg.Business.LockTTL(), cfg.Business.LockRetryInterval(), cfg.Business.LockMaxRetries)
	} else {
		zlog.Warn("Redis 未启用，使用进程内日期锁，只适合单实例部署")
		locker = lock.NewLocalDateLocker()
	}

	members := repository.NewMemberRepository(db)
	games := repository.NewGameRepository(db)
	recharges := repository.NewRechargeRepository(db)
	transactions := repository.NewTransactionRepository(db)
	collections := repository.NewCollectionRepository(db)
	outbox := repository.NewOutboxRepository(db)

	var events service.EventRecorder
	if cfg.Kafka.Enabled {
		events = service.NewOutboxNotifier(outbox, cfg.Kafka.Topic)
	}

	reports := service.NewReportService(recharges, collections)
	svc := handler.Services{
		Members:      service.NewMemberService(members),
		Games:        service.NewGameService(games),
		Ledger:       service.NewLedgerService(db, recharges, collections, locker, events, zlog),
		Transactions: service.NewTransactionService(db, transactions, members, games, events, zlog),
		Reports:      reports,
	}

	// 创建上下文（用于优雅关闭）
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 启动后台任务
	if cfg.Kafka.Enabled {
		producer, err := mq.NewKafkaProducer(&cfg.Kafka)
		if err != nil {
			zlog.Fatal("初始化 Kafka 失败", "brokers", cfg.Kafka.Brokers, "error", err)
		}
		defer producer.Close()

		sender := job.NewOutboxSender(outbox, producer, cfg.Business.MaxRetryCount, zlog)
		go sender.Start(ctx)
	}

	if cfg.Business.AuditIntervalSecond > 0 {
		audit := job.NewCollectionAudit(collections, reports, cfg.Business.AuditInterval(), cfg.Business.AuditBatchSize, zlog)
		go audit.Start(ctx)
	}

	gin.SetMode(cfg.Server.Mode)
	router := handler.SetupRouter(handler.NewHandler(svc, zlog), zlog)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		zlog.Info("服务启动", "port", cfg.Server.Port, "driver", cfg.Database.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("服务启动失败", "error", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("正在关闭服务...")

	// 取消上下文，停止后台任务
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("服务关闭异常", "error", err)
	}

	zlog.Info("服务已关闭")
}
