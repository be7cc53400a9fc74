package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/takanoridomae/Cleaning/config"
	"github.com/takanoridomae/Cleaning/internal/api/handler"
	"github.com/takanoridomae/Cleaning/internal/api/router"
	"github.com/takanoridomae/Cleaning/internal/repository"
	"github.com/takanoridomae/Cleaning/internal/service"
	"github.com/takanoridomae/Cleaning/pkg/database"
	"github.com/takanoridomae/Cleaning/pkg/jwt"
	applogger "github.com/takanoridomae/Cleaning/pkg/logger"
	"github.com/takanoridomae/Cleaning/pkg/redis"
	"github.com/takanoridomae/Cleaning/pkg/storage"
)

func main() {
	// 1. 設定読み込み
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定の読み込みに失敗: %v\n", err)
		os.Exit(1)
	}

	// 2. ログ初期化
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ログの初期化に失敗: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("アプリケーション起動中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. データベース接続
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("データベース接続に失敗", zap.Error(err))
	}
	logger.Info("データベース接続成功")

	// 3.1 マイグレーション実行
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("sql.DB の取得に失敗", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("マイグレーションに失敗", zap.Error(err))
	}

	// 4. Redis 接続（任意: 失敗時はブラックリスト・レート制限なしで縮退運転）
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 接続に失敗。トークンブラックリストは無効になります", zap.Error(err))
		rdb = nil
	}

	// 5. JWT マネージャ初期化
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. アップロードストレージ初期化
	store, err := storage.NewStore(cfg.Upload.Root)
	if err != nil {
		logger.Fatal("アップロードストレージの初期化に失敗", zap.Error(err))
	}

	// 7. 依存注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, db, repo, store, jwtMgr, logger)

	// 8. 通知ディスパッチャ起動（設定で無効化可能）
	var dispatcher *service.Dispatcher
	dispatcherCtx, dispatcherCancel := context.WithCancel(context.Background())
	defer dispatcherCancel()
	if cfg.Notification.Enabled {
		dispatcher = service.NewDispatcher(svc.Notification, cfg.Notification.CheckInterval, logger)
		dispatcher.Start(dispatcherCtx)
	}

	h := handler.NewHandler(svc, rdb, dispatcher)

	// 9. ルーティング初期化
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 10. HTTP サーバー起動（グレースフルシャットダウン付き）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second, // PDF 生成を考慮して長めにとる
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP サーバーを起動", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP サーバー異常", zap.Error(err))
		}
	}()

	// 11. シグナル待機とグレースフルシャットダウン
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("終了シグナルを受信。シャットダウンを開始...", zap.String("signal", sig.String()))

	if dispatcher != nil {
		dispatcher.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("サーバー終了時にエラー", zap.Error(err))
	}

	// データベース接続を閉じる
	closeDB, _ := db.DB()
	if closeDB != nil {
		closeDB.Close()
	}

	// Redis 接続を閉じる
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("サーバーを終了しました")
}
