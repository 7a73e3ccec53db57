package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/booksapi/internal/infrastructure/config"
	"github.com/xiebiao/booksapi/pkg/logger"
	"github.com/xiebiao/booksapi/pkg/metrics"
	"github.com/xiebiao/booksapi/pkg/tracing"
)

// @title        Books API
// @version      1.0
// @description  作者与图书的REST服务
// @BasePath     /

// main 主程序入口
// 启动顺序：配置 → 日志 → 链路追踪/指标 → Wire组装依赖 → HTTP服务
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志（同时替换zap全局Logger）
	zapLogger, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	zapLogger.Info("配置加载成功",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Bool("redis", cfg.Redis.Enabled),
	)

	// 3. 链路追踪（未启用时otel使用no-op实现）
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			zapLogger.Fatal("初始化链路追踪失败", zap.Error(err))
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				zapLogger.Warn("关闭链路追踪失败", zap.Error(err))
			}
		}()
		zapLogger.Info("链路追踪已启用", zap.String("endpoint", cfg.Tracing.Endpoint))
	}

	// 4. Prometheus指标
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}

	// 5. 依赖注入（Wire生成的代码见wire_gen.go）
	app, cleanup, err := InitializeApp(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("初始化应用失败", zap.Error(err))
	}
	defer cleanup()

	// 6. 启动HTTP服务
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      app.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("服务启动成功",
			zap.String("addr", srv.Addr),
			zap.String("health", "/ping"),
			zap.Bool("swagger", cfg.Server.Swagger),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("启动服务失败", zap.Error(err))
		}
	}()

	// 7. 优雅关闭：等待正在处理的请求完成
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("服务关闭超时", zap.Error(err))
	}
	zapLogger.Info("服务已关闭")
}
