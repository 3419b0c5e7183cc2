package service

import (
	"context"
	"errors"
	"strings"

	"github.com/solenote/note-keeper-service/internal/domain"
	"github.com/solenote/note-keeper-service/internal/dto"
	"github.com/solenote/note-keeper-service/pkg/code"
	"github.com/solenote/note-keeper-service/pkg/timex"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// TagService 标签业务服务接口
type TagService interface {
	Create(ctx context.Context, uid int64, params *dto.TagCreateRequest) (*dto.TagDTO, error)
	Get(ctx context.Context, uid int64, id int64) (*dto.TagDTO, error)
	List(ctx context.Context, uid int64) ([]*dto.TagDTO, error)
	Update(ctx context.Context, uid int64, id int64, params *dto.TagUpdateRequest) (*dto.TagDTO, error)
	Delete(ctx context.Context, uid int64, id int64) error
}

type tagService struct {
	tagRepo domain.TagRepository
}

// NewTagService 创建 TagService 实例
func NewTagService(tagRepo domain.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) domainToDTO(t *domain.Tag) *dto.TagDTO {
	if t == nil {
		return nil
	}
	res := &dto.TagDTO{}
	_ = copier.Copy(res, t)
	res.CreatedAt = timex.Time(t.CreatedAt)
	res.UpdatedAt = timex.Time(t.UpdatedAt)
	return res
}

// Create 创建标签，同名标签不能重复
func (s *tagService) Create(ctx context.Context, uid int64, params *dto.TagCreateRequest) (*dto.TagDTO, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, code.ErrorTagNameRequired
	}

	_, err := s.tagRepo.GetByName(ctx, name, uid)
	if err == nil {
		return nil, code.ErrorTagNameExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}

	created, err := s.tagRepo.Create(ctx, &domain.Tag{UID: uid, Name: name})
	if err != nil {
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}
	return s.domainToDTO(created), nil
}

// Get 获取单个标签
// 标签存在但属于他人时返回权限错误，以区别于不存在
func (s *tagService) Get(ctx context.Context, uid int64, id int64) (*dto.TagDTO, error) {
	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorTagNotFound
		}
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}
	if !tag.IsOwnedBy(uid) {
		return nil, code.ErrorTagAccessDenied
	}
	return s.domainToDTO(tag), nil
}

// List 获取用户的全部标签
func (s *tagService) List(ctx context.Context, uid int64) ([]*dto.TagDTO, error) {
	tags, err := s.tagRepo.List(ctx, uid)
	if err != nil {
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}
	res := make([]*dto.TagDTO, 0, len(tags))
	for _, t := range tags {
		res = append(res, s.domainToDTO(t))
	}
	return res, nil
}

// Update 重命名标签
func (s *tagService) Update(ctx context.Context, uid int64, id int64, params *dto.TagUpdateRequest) (*dto.TagDTO, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, code.ErrorTagNameRequired
	}

	current, err := s.Get(ctx, uid, id)
	if err != nil {
		return nil, err
	}

	if existing, err := s.tagRepo.GetByName(ctx, name, uid); err == nil && existing.ID != current.ID {
		return nil, code.ErrorTagNameExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}

	updated, err := s.tagRepo.Update(ctx, &domain.Tag{ID: id, UID: uid, Name: name})
	if err != nil {
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}
	return s.domainToDTO(updated), nil
}

// Delete 删除标签
func (s *tagService) Delete(ctx context.Context, uid int64, id int64) error {
	if _, err := s.Get(ctx, uid, id); err != nil {
		return err
	}
	if err := s.tagRepo.Delete(ctx, id, uid); err != nil {
		return code.ErrorDatabase.WithDetails(err.Error())
	}
	return nil
}
