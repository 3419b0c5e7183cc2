package dao

import (
	"context"

	"github.com/solenote/note-keeper-service/internal/domain"
	"github.com/solenote/note-keeper-service/internal/model"
	"github.com/solenote/note-keeper-service/pkg/timex"
)

// tagRepository 实现 domain.TagRepository 接口
type tagRepository struct {
	dao *Dao
}

// NewTagRepository 创建 TagRepository 实例
func NewTagRepository(dao *Dao) domain.TagRepository {
	return &tagRepository{dao: dao}
}

func (r *tagRepository) toDomain(m *model.Tag) *domain.Tag {
	if m == nil {
		return nil
	}
	return &domain.Tag{
		ID:        m.ID,
		UID:       m.UID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt.Time(),
		UpdatedAt: m.UpdatedAt.Time(),
	}
}

// GetByID 根据ID获取标签，不校验归属
// 归属校验由服务层负责，以便区分不存在和无权限
func (r *tagRepository) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	var m model.Tag
	err := r.dao.Db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByName 根据名称获取用户的标签
func (r *tagRepository) GetByName(ctx context.Context, name string, uid int64) (*domain.Tag, error) {
	var m model.Tag
	err := r.dao.Db.WithContext(ctx).
		Where("name = ? AND uid = ?", name, uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建标签
func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	now := timex.Now()
	m := &model.Tag{
		UID:       tag.UID,
		Name:      tag.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.dao.Db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 更新标签
func (r *tagRepository) Update(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	err := r.dao.Db.WithContext(ctx).
		Model(&model.Tag{}).
		Where("id = ? AND uid = ?", tag.ID, tag.UID).
		Updates(map[string]any{
			"name":       tag.Name,
			"updated_at": timex.Now(),
		}).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, tag.ID)
}

// Delete 删除标签
func (r *tagRepository) Delete(ctx context.Context, id, uid int64) error {
	return r.dao.Db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		Delete(&model.Tag{}).Error
}

// List 获取用户的全部标签
func (r *tagRepository) List(ctx context.Context, uid int64) ([]*domain.Tag, error) {
	var ms []*model.Tag
	err := r.dao.Db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("name ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	tags := make([]*domain.Tag, 0, len(ms))
	for _, m := range ms {
		tags = append(tags, r.toDomain(m))
	}
	return tags, nil
}
