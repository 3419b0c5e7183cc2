package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/solenote/note-keeper-service/internal/domain"
	"github.com/solenote/note-keeper-service/internal/dto"
	"github.com/solenote/note-keeper-service/internal/event"
	"github.com/solenote/note-keeper-service/pkg/code"
	"github.com/solenote/note-keeper-service/pkg/timex"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 提醒时间参数接受的格式
var reminderLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// NoteService 笔记业务服务接口
type NoteService interface {
	Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.NoteDTO, error)
	Get(ctx context.Context, uid int64, id int64) (*dto.NoteDTO, error)
	List(ctx context.Context, uid int64, params *dto.NoteListRequest) ([]*dto.NoteDTO, error)
	Update(ctx context.Context, uid int64, id int64, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error)
	Delete(ctx context.Context, uid int64, id int64) error
	ToggleArchive(ctx context.Context, uid int64, id int64) (*dto.NoteDTO, error)
	TogglePin(ctx context.Context, uid int64, id int64) (*dto.NoteDTO, error)
	Reorder(ctx context.Context, uid int64, params *dto.NoteReorderRequest) error
	SetReminder(ctx context.Context, uid int64, id int64, params *dto.NoteReminderRequest) (*dto.NoteDTO, error)
	ChecklistAdd(ctx context.Context, uid int64, id int64, params *dto.ChecklistAddRequest) (*dto.NoteDTO, error)
	ChecklistGet(ctx context.Context, uid int64, id int64) ([]dto.ChecklistItemDTO, error)
	ChecklistToggle(ctx context.Context, uid int64, id int64, itemID string, params *dto.ChecklistToggleRequest) (*dto.NoteDTO, error)
	ChecklistRemove(ctx context.Context, uid int64, id int64, itemID string) (*dto.NoteDTO, error)
}

type noteService struct {
	noteRepo    domain.NoteRepository
	broadcaster *event.Broadcaster
	logger      *zap.Logger
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(noteRepo domain.NoteRepository, broadcaster *event.Broadcaster, logger *zap.Logger) NoteService {
	return &noteService{
		noteRepo:    noteRepo,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

func (s *noteService) domainToDTO(n *domain.Note) *dto.NoteDTO {
	if n == nil {
		return nil
	}
	res := &dto.NoteDTO{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		Color:      n.Color,
		Tags:       n.Tags,
		IsArchived: n.IsArchived,
		IsPinned:   n.IsPinned,
		SortOrder:  n.SortOrder,
		Notified:   n.Notified,
		UpdatedAt:  timex.Time(n.UpdatedAt),
		CreatedAt:  timex.Time(n.CreatedAt),
	}
	if n.Tags == nil {
		res.Tags = []string{}
	}
	res.Checklist = checklistToDTO(n.Checklist)
	if n.ReminderTime != nil {
		res.ReminderTime = timex.Time(*n.ReminderTime)
	}
	return res
}

func checklistToDTO(items []domain.ChecklistItem) []dto.ChecklistItemDTO {
	res := make([]dto.ChecklistItemDTO, 0, len(items))
	for _, item := range items {
		res = append(res, dto.ChecklistItemDTO{
			ID:   item.ID,
			Item: item.Item,
			Done: item.Done,
		})
	}
	return res
}

// publish 发送笔记变更事件
func (s *noteService) publish(action string, note *dto.NoteDTO) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.PublishNoteUpdated(action, note)
}

// getOwned 获取属于用户的笔记，未找到时返回统一错误
func (s *noteService) getOwned(ctx context.Context, uid, id int64) (*domain.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}
	return note, nil
}

// Create 创建笔记
func (s *noteService) Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.NoteDTO, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, code.ErrorNoteTitleRequired
	}

	color := params.Color
	if color == "" {
		color = domain.DefaultNoteColor
	}

	// 新笔记的排序值固定为 0，排序只通过 reorder 调整
	note := &domain.Note{
		UID:      uid,
		Title:    title,
		Content:  params.Content,
		Color:    color,
		Tags:     params.Tags,
		IsPinned: params.IsPinned,
	}
	for _, item := range params.Checklist {
		note.Checklist = append(note.Checklist, domain.ChecklistItem{
			ID:   uuid.NewString(),
			Item: item.Item,
			Done: item.Done,
		})
	}

	created, err := s.noteRepo.Create(ctx, note)
	if err != nil {
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}

	res := s.domainToDTO(created)
	s.publish(event.ActionCreated, res)
	return res, nil
}

// Get 获取单条笔记
func (s *noteService) Get(ctx context.Context, uid int64, id int64) (*dto.NoteDTO, error) {
	note, err := s.getOwned(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	return s.domainToDTO(note), nil
}

// List 获取笔记列表
func (s *noteService) List(ctx context.Context, uid int64, params *dto.NoteListRequest) ([]*dto.NoteDTO, error) {
	var filter *domain.NoteFilter
	if params != nil {
		filter = &domain.NoteFilter{
			Title:    params.Title,
			Tag:      params.Tag,
			Archived: params.Archived,
			Done:     params.Done,
		}
	}

	notes, err := s.noteRepo.List(ctx, uid, filter)
	if err != nil {
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}

	res := make([]*dto.NoteDTO, 0, len(notes))
	for _, n := range notes {
		res = append(res, s.domainToDTO(n))
	}
	return res, nil
}

// Update 更新笔记可编辑字段
func (s *noteService) Update(ctx context.Context, uid int64, id int64, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, code.ErrorNoteTitleRequired
	}

	note, err := s.getOwned(ctx, uid, id)
	if err != nil {
		return nil, err
	}

	note.Title = title
	note.Content = params.Content
	if params.Color != "" {
		note.Color = params.Color
	}
	if params.Tags != nil {
		note.Tags = params.Tags
	}
	if params.IsPinned != nil {
		note.IsPinned = *params.IsPinned
	}

	updated, err := s.noteRepo.Update(ctx, note)
	if err != nil {
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}

	res := s.domainToDTO(updated)
	s.publish(event.ActionUpdated, res)
	return res, nil
}

// Delete 删除笔记
func (s *noteService) Delete(ctx context.Context, uid int64, id int64) error {
	note, err := s.getOwned(ctx, uid, id)
	if err != nil {
		return err
	}

	if err := s.noteRepo.Delete(ctx, id, uid); err != nil {
		return code.ErrorDatabase.WithDetails(err.Error())
	}

	s.publish(event.ActionDeleted, s.domainToDTO(note))
	return nil
}

// ToggleArchive 切换归档状态
func (s *noteService) ToggleArchive(ctx context.Context, uid int64, id int64) (*dto.NoteDTO, error) {
	note, err := s.getOwned(ctx, uid, id)
	if err != nil {
		return nil, err
	}

	note.IsArchived = !note.IsArchived
	updated, err := s.noteRepo.Update(ctx, note)
	if err != nil {
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}

	res := s.domainToDTO(updated)
	s.publish(event.ActionArchived, res)
	return res, nil
}

// TogglePin 切换置顶状态
func (s *noteService) TogglePin(ctx context.Context, uid int64, id int64) (*dto.NoteDTO, error) {
	note, err := s.getOwned(ctx, uid, id)
	if err != nil {
		return nil, err
	}

	note.IsPinned = !note.IsPinned
	updated, err := s.noteRepo.Update(ctx, note)
	if err != nil {
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}

	res := s.domainToDTO(updated)
	s.publish(event.ActionUpdated, res)
	return res, nil
}

// Reorder 按给定顺序重排笔记
// 逐条更新，不在事务中执行；重复提交同一列表是幂等的。
// 不属于该用户的 ID 由 (id, uid) 作用域的更新自然跳过，不报错也不发事件。
func (s *noteService) Reorder(ctx context.Context, uid int64, params *dto.NoteReorderRequest) error {
	for i, id := range params.NoteIDs {
		if err := s.noteRepo.UpdateSortOrder(ctx, i, id, uid); err != nil {
			return code.ErrorDatabase.WithDetails(err.Error())
		}
	}
	return nil
}

// SetReminder 设置或清除笔记提醒
// 任何修改都会把提醒的送达标记复位
func (s *noteService) SetReminder(ctx context.Context, uid int64, id int64, params *dto.NoteReminderRequest) (*dto.NoteDTO, error) {
	note, err := s.getOwned(ctx, uid, id)
	if err != nil {
		return nil, err
	}

	if params.ReminderTime == "" {
		note.ReminderTime = nil
	} else {
		parsed, err := parseReminderTime(params.ReminderTime)
		if err != nil {
			return nil, code.ErrorInvalidTimeParam.WithDetails(params.ReminderTime)
		}
		note.ReminderTime = &parsed
	}
	note.Notified = false

	updated, err := s.noteRepo.Update(ctx, note)
	if err != nil {
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}

	res := s.domainToDTO(updated)
	s.publish(event.ActionUpdated, res)
	return res, nil
}

func parseReminderTime(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range reminderLayouts {
		t, err := time.ParseInLocation(layout, value, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ChecklistAdd 追加清单项
func (s *noteService) ChecklistAdd(ctx context.Context, uid int64, id int64, params *dto.ChecklistAddRequest) (*dto.NoteDTO, error) {
	item := strings.TrimSpace(params.Item)
	if item == "" {
		return nil, code.ErrorChecklistItemRequired
	}

	note, err := s.getOwned(ctx, uid, id)
	if err != nil {
		return nil, err
	}

	note.Checklist = append(note.Checklist, domain.ChecklistItem{
		ID:   uuid.NewString(),
		Item: item,
		Done: params.Done,
	})

	updated, err := s.noteRepo.Update(ctx, note)
	if err != nil {
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}

	res := s.domainToDTO(updated)
	s.publish(event.ActionAddChecklist, res)
	return res, nil
}

// ChecklistGet 获取笔记的清单
func (s *noteService) ChecklistGet(ctx context.Context, uid int64, id int64) ([]dto.ChecklistItemDTO, error) {
	note, err := s.getOwned(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	return checklistToDTO(note.Checklist), nil
}

// ChecklistToggle 设置清单项完成状态
// Done 为空时取反当前状态
func (s *noteService) ChecklistToggle(ctx context.Context, uid int64, id int64, itemID string, params *dto.ChecklistToggleRequest) (*dto.NoteDTO, error) {
	note, err := s.getOwned(ctx, uid, id)
	if err != nil {
		return nil, err
	}

	idx := note.FindChecklistItem(itemID)
	if idx < 0 {
		return nil, code.ErrorChecklistItemNotFound
	}

	if params != nil && params.Done != nil {
		note.Checklist[idx].Done = *params.Done
	} else {
		note.Checklist[idx].Done = !note.Checklist[idx].Done
	}

	updated, err := s.noteRepo.Update(ctx, note)
	if err != nil {
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}

	res := s.domainToDTO(updated)
	s.publish(event.ActionUpdated, res)
	return res, nil
}

// ChecklistRemove 删除清单项
func (s *noteService) ChecklistRemove(ctx context.Context, uid int64, id int64, itemID string) (*dto.NoteDTO, error) {
	note, err := s.getOwned(ctx, uid, id)
	if err != nil {
		return nil, err
	}

	idx := note.FindChecklistItem(itemID)
	if idx < 0 {
		return nil, code.ErrorChecklistItemNotFound
	}
	note.Checklist = append(note.Checklist[:idx], note.Checklist[idx+1:]...)

	updated, err := s.noteRepo.Update(ctx, note)
	if err != nil {
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}

	res := s.domainToDTO(updated)
	s.publish(event.ActionUpdated, res)
	return res, nil
}
