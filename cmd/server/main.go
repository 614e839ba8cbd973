package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"slotswap/config"
	"slotswap/internal/api/handler"
	"slotswap/internal/api/router"
	"slotswap/internal/repository"
	"slotswap/internal/service"
	"slotswap/pkg/database"
	"slotswap/pkg/jwt"
	applogger "slotswap/pkg/logger"
	"slotswap/pkg/redis"
)

func main() {
	// .env 不存在时忽略
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "slotswap",
		Usage: "时间槽交换市场服务",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径（默认查找 ./config/config.yaml）",
				EnvVars: []string{"SLOTSWAP_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
		},
		Action: serve,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "执行数据库迁移并启动 HTTP 服务",
		Action: serve,
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "数据库迁移",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "执行全部未应用的迁移",
				Action: func(c *cli.Context) error {
					return withDB(c, func(db *gorm.DB, logger *zap.Logger) error {
						sqlDB, err := db.DB()
						if err != nil {
							return err
						}
						return database.RunMigrations(sqlDB, logger)
					})
				},
			},
			{
				Name:  "down",
				Usage: "回滚迁移",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "steps", Value: 1, Usage: "回滚步数"},
				},
				Action: func(c *cli.Context) error {
					return withDB(c, func(db *gorm.DB, logger *zap.Logger) error {
						sqlDB, err := db.DB()
						if err != nil {
							return err
						}
						return database.RollbackMigrations(sqlDB, c.Int("steps"), logger)
					})
				},
			},
		},
	}
}

// bootstrap 加载配置并初始化日志
func bootstrap(c *cli.Context) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("初始化日志失败: %w", err)
	}
	return cfg, logger, nil
}

func withDB(c *cli.Context, fn func(db *gorm.DB, logger *zap.Logger) error) error {
	cfg, logger, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return fmt.Errorf("数据库连接失败: %w", err)
	}
	defer func() {
		if sqlDB, _ := db.DB(); sqlDB != nil {
			sqlDB.Close()
		}
	}()

	return fn(db, logger)
}

func serve(c *cli.Context) error {
	// 1. 加载配置 & 初始化日志
	cfg, logger, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. 连接数据库
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return fmt.Errorf("数据库连接失败: %w", err)
	}
	logger.Info("数据库连接成功")

	// 2.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}

	// 3. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，Token 黑名单不可用，限流退化为本地令牌桶", zap.Error(err))
		rdb = nil
	}

	// 4. 初始化 JWT 管理器
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 5. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, logger)
	h := handler.NewHandler(svc)

	// 6. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 7. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 8. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var serveErr error
	select {
	case sig := <-quit:
		logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))
	case serveErr = <-errCh:
		logger.Error("HTTP 服务器异常", zap.Error(serveErr))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	sqlDB.Close()
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
	return serveErr
}
