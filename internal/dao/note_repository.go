package dao

import (
	"context"
	"time"

	"github.com/solenote/note-keeper-service/internal/domain"
	"github.com/solenote/note-keeper-service/internal/model"
	"github.com/solenote/note-keeper-service/pkg/timex"
)

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	note := &domain.Note{
		ID:         m.ID,
		UID:        m.UID,
		Title:      m.Title,
		Content:    m.Content,
		Color:      m.Color,
		Tags:       []string(m.Tags),
		IsArchived: m.IsArchived,
		IsPinned:   m.IsPinned,
		SortOrder:  m.SortOrder,
		Notified:   m.Notified,
		CreatedAt:  m.CreatedAt.Time(),
		UpdatedAt:  m.UpdatedAt.Time(),
	}
	if !m.ReminderTime.IsZero() {
		t := m.ReminderTime.Time()
		note.ReminderTime = &t
	}
	for _, entry := range m.Checklist {
		note.Checklist = append(note.Checklist, domain.ChecklistItem{
			ID:   entry.ID,
			Item: entry.Item,
			Done: entry.Done,
		})
	}
	return note
}

// toModel 将领域模型转换为数据库模型
func (r *noteRepository) toModel(note *domain.Note) *model.Note {
	if note == nil {
		return nil
	}
	m := &model.Note{
		ID:         note.ID,
		UID:        note.UID,
		Title:      note.Title,
		Content:    note.Content,
		Color:      note.Color,
		Tags:       model.StringList(note.Tags),
		IsArchived: note.IsArchived,
		IsPinned:   note.IsPinned,
		SortOrder:  note.SortOrder,
		Notified:   note.Notified,
		CreatedAt:  timex.Time(note.CreatedAt),
		UpdatedAt:  timex.Time(note.UpdatedAt),
	}
	if note.ReminderTime != nil {
		m.ReminderTime = timex.Time(*note.ReminderTime)
	}
	for _, item := range note.Checklist {
		m.Checklist = append(m.Checklist, model.ChecklistEntry{
			ID:   item.ID,
			Item: item.Item,
			Done: item.Done,
		})
	}
	return m
}

// GetByID 根据ID获取笔记
func (r *noteRepository) GetByID(ctx context.Context, id, uid int64) (*domain.Note, error) {
	var m model.Note
	err := r.dao.Db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建笔记
func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m := r.toModel(note)
	now := timex.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	if err := r.dao.Db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 更新笔记全部可变字段
// 用 Select 指定列，保证布尔和空值字段也会被写回
func (r *noteRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m := r.toModel(note)
	m.UpdatedAt = timex.Now()
	err := r.dao.Db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ? AND uid = ?", m.ID, m.UID).
		Select("title", "content", "color", "tags", "checklist",
			"is_archived", "is_pinned", "sort_order",
			"reminder_time", "notified", "updated_at").
		Updates(m).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, note.ID, note.UID)
}

// Delete 物理删除笔记
func (r *noteRepository) Delete(ctx context.Context, id, uid int64) error {
	return r.dao.Db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		Delete(&model.Note{}).Error
}

// List 获取用户的笔记列表
// 标题和归档条件下推到 SQL，标签与清单完成状态在解码后过滤
func (r *noteRepository) List(ctx context.Context, uid int64, filter *domain.NoteFilter) ([]*domain.Note, error) {
	q := r.dao.Db.WithContext(ctx).
		Model(&model.Note{}).
		Where("uid = ?", uid)

	if filter != nil {
		if filter.Title != "" {
			q = q.Where("title LIKE ?", "%"+filter.Title+"%")
		}
		if filter.Archived != nil {
			q = q.Where("is_archived = ?", *filter.Archived)
		}
	}

	var ms []*model.Note
	if err := q.Order("is_pinned DESC, sort_order ASC").Find(&ms).Error; err != nil {
		return nil, err
	}

	notes := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		note := r.toDomain(m)
		if filter != nil {
			if filter.Tag != "" && !note.HasTag(filter.Tag) {
				continue
			}
			if filter.Done != nil && !note.HasDoneItem(*filter.Done) {
				continue
			}
		}
		notes = append(notes, note)
	}
	return notes, nil
}

// UpdateSortOrder 更新单条笔记的排序值
func (r *noteRepository) UpdateSortOrder(ctx context.Context, sortOrder int, id, uid int64) error {
	return r.dao.Db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ? AND uid = ?", id, uid).
		Updates(map[string]any{
			"sort_order": sortOrder,
			"updated_at": timex.Now(),
		}).Error
}

// ListDueReminders 获取提醒已到期且未通知的笔记
func (r *noteRepository) ListDueReminders(ctx context.Context, now time.Time) ([]*domain.Note, error) {
	var ms []*model.Note
	err := r.dao.Db.WithContext(ctx).
		Model(&model.Note{}).
		Where("reminder_time IS NOT NULL AND reminder_time <= ? AND notified = ?", timex.Time(now), false).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	notes := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		notes = append(notes, r.toDomain(m))
	}
	return notes, nil
}

// SetNotified 标记笔记的提醒已送达
func (r *noteRepository) SetNotified(ctx context.Context, id int64) error {
	return r.dao.Db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ?", id).
		Update("notified", true).Error
}
