package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"serenity/cache"
	"serenity/config"
	"serenity/db"
	"serenity/handlers"
	"serenity/logger"
	"serenity/metrics"
	"serenity/scheduler"
	"serenity/scraper"
	"serenity/services"
)

func main() {
	cfg := config.Load()

	// 初始化日志系统
	if err := logger.Init(cfg); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer logger.Close()
	logger.Info("日志系统初始化成功", "level", cfg.Log.Level, "format", cfg.Log.Format, "output", cfg.Log.Output)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 数据库可选，未启用时心情、日记、呼吸和连续打卡接口返回未配置
	if cfg.DB.Enabled {
		if err := db.InitMySQLWithConfig(cfg); err != nil {
			logger.Error("初始化MySQL失败", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		logger.Info("MySQL连接成功",
			"max_open_conns", cfg.DB.MaxOpenConns,
			"max_idle_conns", cfg.DB.MaxIdleConns,
			"conn_max_lifetime", cfg.DB.ConnMaxLifetime)

		if cfg.DB.AutoMigrate {
			if err := db.EnsureSchema(ctx); err != nil {
				logger.Error("建表失败", "error", err)
				os.Exit(1)
			}
		}
	} else {
		logger.Warn("数据库未启用，健康数据接口不可用")
	}

	m := metrics.New(nil)
	recCache := cache.New(cfg.Cache.MaxSize, time.Duration(cfg.Cache.TTLSec)*time.Second)

	opts := scraper.OptionsFromConfig(cfg, m)
	sources := services.Sources{
		Videos:   scraper.NewVideoSource(cfg.Scraper.YouTubeURL, opts),
		Music:    scraper.NewMusicSource(cfg.Scraper.YouTubeURL, opts),
		Articles: scraper.NewArticleSource(cfg.Scraper.DuckDuckGoURL, opts),
	}

	recommender := services.NewRecommendationService(
		services.NewKeywordExtractor(),
		services.NewChatbot(nil),
		recCache,
		sources,
		services.LimitsFromConfig(cfg),
		m,
	)

	deps := handlers.Deps{
		Config:      cfg,
		Recommender: recommender,
		Wellness:    services.NewWellnessService(),
		Cache:       recCache,
		Sources:     sources,
		Metrics:     m,
	}
	if cfg.Stress.ClassifierURL != "" {
		deps.Classifier = services.NewClassifierClient(cfg)
	} else {
		logger.Warn("未配置表情分类服务，压力检测不可用")
	}

	r := handlers.NewRouter(handlers.NewHandler(deps))

	// 启动定时预热
	if cfg.Scheduler.Enabled {
		scheduler.Start(ctx, cfg, recommender)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Timeouts.RequestSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Timeouts.ResponseSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.Timeouts.IdleSec) * time.Second,
	}

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		logger.Info("服务器启动", "address", serverAddr)
		logger.Info("Swagger文档可访问", "url", fmt.Sprintf("http://%s/swagger/index.html", serverAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("服务器异常退出", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("正在关闭服务器")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("关闭服务器失败", "error", err)
	}
	logger.Info("服务器已关闭")
}
