// Package service 实现业务逻辑层
package service

import (
	"github.com/solenote/note-keeper-service/internal/domain"
	"github.com/solenote/note-keeper-service/internal/event"
	"github.com/solenote/note-keeper-service/pkg/app"

	"go.uber.org/zap"
)

// Services 聚合全部业务服务
type Services struct {
	Note NoteService
	Tag  TagService
	User UserService
}

// Config 服务层配置
type Config struct {
	RegisterIsEnable bool
}

// New 创建服务聚合
func New(
	c Config,
	noteRepo domain.NoteRepository,
	tagRepo domain.TagRepository,
	userRepo domain.UserRepository,
	tokenManager app.TokenManager,
	broadcaster *event.Broadcaster,
	logger *zap.Logger,
) *Services {
	return &Services{
		Note: NewNoteService(noteRepo, broadcaster, logger),
		Tag:  NewTagService(tagRepo),
		User: NewUserService(c, userRepo, tokenManager, logger),
	}
}
