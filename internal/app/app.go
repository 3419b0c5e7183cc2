// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"fmt"

	"github.com/solenote/note-keeper-service/internal/dao"
	"github.com/solenote/note-keeper-service/internal/domain"
	"github.com/solenote/note-keeper-service/internal/event"
	"github.com/solenote/note-keeper-service/internal/service"
	pkgapp "github.com/solenote/note-keeper-service/pkg/app"
	"github.com/solenote/note-keeper-service/pkg/mailer"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// Repository 层
	NoteRepo domain.NoteRepository
	TagRepo  domain.TagRepository
	UserRepo domain.UserRepository

	// Service 层
	NoteService service.NoteService
	TagService  service.TagService
	UserService service.UserService

	// 基础设施组件
	TokenManager pkgapp.TokenManager
	Broadcaster  *event.Broadcaster
	Mailer       *mailer.Mailer
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config: cfg,
		logger: logger,
		DB:     db,
	}

	// 初始化 DAO
	a.Dao = dao.New(db, dao.WithLogger(logger))
	if cfg.Database.AutoMigrate {
		if err := a.Dao.Migrate(); err != nil {
			return nil, fmt.Errorf("database migration failed: %w", err)
		}
	}

	// 初始化 TokenManager
	tokenConfig := pkgapp.TokenConfig{
		SecretKey:        cfg.Security.AuthTokenKey,
		RefreshSecretKey: cfg.Security.RefreshTokenKey,
		Issuer:           "note-keeper-service",
		Expiry:           cfg.GetTokenExpiry(),
		RefreshExpiry:    cfg.GetRefreshTokenExpiry(),
	}
	a.TokenManager = pkgapp.NewTokenManager(tokenConfig)

	// 初始化事件广播器
	a.Broadcaster = event.NewBroadcaster(event.Config{
		SubscriberBuffer: cfg.App.EventSubscriberBuffer,
	}, logger)
	a.Broadcaster.Start()

	// 初始化提醒邮件（未启用时为 nil）
	a.Mailer = mailer.NewMailer(mailer.Config{
		Enable:   cfg.Mail.Enable,
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
	})

	// 初始化 Repository 层
	a.NoteRepo = dao.NewNoteRepository(a.Dao)
	a.TagRepo = dao.NewTagRepository(a.Dao)
	a.UserRepo = dao.NewUserRepository(a.Dao)

	// 初始化 Service 层（依赖注入）
	services := service.New(
		service.Config{RegisterIsEnable: cfg.User.RegisterIsEnable},
		a.NoteRepo,
		a.TagRepo,
		a.UserRepo,
		a.TokenManager,
		a.Broadcaster,
		logger,
	)
	a.NoteService = services.Note
	a.TagService = services.Tag
	a.UserService = services.User

	logger.Info("App container initialized successfully")

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.Broadcaster != nil {
		a.Broadcaster.Stop()
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}
