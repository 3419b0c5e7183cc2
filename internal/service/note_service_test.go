package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/solenote/note-keeper-service/internal/domain"
	"github.com/solenote/note-keeper-service/internal/dto"
	"github.com/solenote/note-keeper-service/internal/event"
	"github.com/solenote/note-keeper-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// mockNoteRepo 基于内存 map 的仓储实现
// Update 整行覆盖，和数据库行为保持一致
type mockNoteRepo struct {
	notes  map[int64]*domain.Note
	nextID int64
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{notes: make(map[int64]*domain.Note)}
}

func cloneNote(n *domain.Note) *domain.Note {
	c := *n
	c.Tags = append([]string(nil), n.Tags...)
	c.Checklist = append([]domain.ChecklistItem(nil), n.Checklist...)
	if n.ReminderTime != nil {
		t := *n.ReminderTime
		c.ReminderTime = &t
	}
	return &c
}

func (m *mockNoteRepo) GetByID(ctx context.Context, id, uid int64) (*domain.Note, error) {
	n, ok := m.notes[id]
	if !ok || n.UID != uid {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneNote(n), nil
}

func (m *mockNoteRepo) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m.nextID++
	n := cloneNote(note)
	n.ID = m.nextID
	n.CreatedAt = time.Now()
	n.UpdatedAt = n.CreatedAt
	m.notes[n.ID] = n
	return cloneNote(n), nil
}

func (m *mockNoteRepo) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	existing, ok := m.notes[note.ID]
	if !ok || existing.UID != note.UID {
		return nil, gorm.ErrRecordNotFound
	}
	n := cloneNote(note)
	n.CreatedAt = existing.CreatedAt
	n.UpdatedAt = time.Now()
	m.notes[n.ID] = n
	return cloneNote(n), nil
}

func (m *mockNoteRepo) Delete(ctx context.Context, id, uid int64) error {
	n, ok := m.notes[id]
	if ok && n.UID == uid {
		delete(m.notes, id)
	}
	return nil
}

func (m *mockNoteRepo) List(ctx context.Context, uid int64, filter *domain.NoteFilter) ([]*domain.Note, error) {
	var res []*domain.Note
	for _, n := range m.notes {
		if n.UID != uid {
			continue
		}
		if filter != nil {
			if filter.Archived != nil && n.IsArchived != *filter.Archived {
				continue
			}
			if filter.Tag != "" && !n.HasTag(filter.Tag) {
				continue
			}
			if filter.Done != nil && !n.HasDoneItem(*filter.Done) {
				continue
			}
		}
		res = append(res, cloneNote(n))
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].IsPinned != res[j].IsPinned {
			return res[i].IsPinned
		}
		return res[i].SortOrder < res[j].SortOrder
	})
	return res, nil
}

func (m *mockNoteRepo) UpdateSortOrder(ctx context.Context, sortOrder int, id, uid int64) error {
	n, ok := m.notes[id]
	if !ok || n.UID != uid {
		return nil
	}
	n.SortOrder = sortOrder
	return nil
}

func (m *mockNoteRepo) ListDueReminders(ctx context.Context, now time.Time) ([]*domain.Note, error) {
	var res []*domain.Note
	for _, n := range m.notes {
		if n.ReminderDue(now) {
			res = append(res, cloneNote(n))
		}
	}
	return res, nil
}

func (m *mockNoteRepo) SetNotified(ctx context.Context, id int64) error {
	if n, ok := m.notes[id]; ok {
		n.Notified = true
	}
	return nil
}

func newTestNoteService(repo domain.NoteRepository) (NoteService, *event.Broadcaster) {
	b := event.NewBroadcaster(event.Config{SubscriberBuffer: 16}, zap.NewNop())
	b.Start()
	return NewNoteService(repo, b, zap.NewNop()), b
}

func drainEvents(sub *event.Subscriber) []event.Event {
	var evs []event.Event
	for {
		select {
		case ev := <-sub.C:
			evs = append(evs, ev)
		default:
			return evs
		}
	}
}

func TestNoteServiceCreate(t *testing.T) {
	repo := newMockNoteRepo()
	svc, b := newTestNoteService(repo)
	defer b.Stop()
	sub := b.Subscribe()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, &dto.NoteCreateRequest{
		Title:     " shopping ",
		Checklist: []dto.ChecklistItemSet{{Item: "milk"}},
	})
	assert.Nil(t, err)
	assert.Equal(t, "shopping", created.Title)
	assert.Equal(t, domain.DefaultNoteColor, created.Color)
	assert.Equal(t, 0, created.SortOrder)
	assert.Len(t, created.Checklist, 1)
	assert.NotEmpty(t, created.Checklist[0].ID)

	// 排序值不随创建递增，统一默认为 0
	second, err := svc.Create(ctx, 1, &dto.NoteCreateRequest{Title: "next"})
	assert.Nil(t, err)
	assert.Equal(t, 0, second.SortOrder)

	evs := drainEvents(sub)
	assert.Len(t, evs, 2)
	payload := evs[0].Payload.(event.NoteUpdatedPayload)
	assert.Equal(t, event.ActionCreated, payload.Action)

	// 标题不能为空
	_, err = svc.Create(ctx, 1, &dto.NoteCreateRequest{Title: "   "})
	assert.Equal(t, code.ErrorNoteTitleRequired, err)
}

func TestNoteServiceGetOwnership(t *testing.T) {
	repo := newMockNoteRepo()
	svc, b := newTestNoteService(repo)
	defer b.Stop()
	ctx := context.Background()

	created, _ := svc.Create(ctx, 1, &dto.NoteCreateRequest{Title: "mine"})

	_, err := svc.Get(ctx, 2, created.ID)
	assert.Equal(t, code.ErrorNoteNotFound, err)

	got, err := svc.Get(ctx, 1, created.ID)
	assert.Nil(t, err)
	assert.Equal(t, "mine", got.Title)
}

func TestNoteServiceToggles(t *testing.T) {
	repo := newMockNoteRepo()
	svc, b := newTestNoteService(repo)
	defer b.Stop()
	sub := b.Subscribe()
	ctx := context.Background()

	created, _ := svc.Create(ctx, 1, &dto.NoteCreateRequest{Title: "n"})
	drainEvents(sub)

	archived, err := svc.ToggleArchive(ctx, 1, created.ID)
	assert.Nil(t, err)
	assert.True(t, archived.IsArchived)

	back, err := svc.ToggleArchive(ctx, 1, created.ID)
	assert.Nil(t, err)
	assert.False(t, back.IsArchived)

	pinned, err := svc.TogglePin(ctx, 1, created.ID)
	assert.Nil(t, err)
	assert.True(t, pinned.IsPinned)

	evs := drainEvents(sub)
	assert.Len(t, evs, 3)
	assert.Equal(t, event.ActionArchived, evs[0].Payload.(event.NoteUpdatedPayload).Action)
	assert.Equal(t, event.ActionUpdated, evs[2].Payload.(event.NoteUpdatedPayload).Action)
}

// 并发的读改写切换采用后写覆盖先写的语义，不加行锁
func TestToggleLastWriteWins(t *testing.T) {
	repo := newMockNoteRepo()
	svc, b := newTestNoteService(repo)
	defer b.Stop()
	ctx := context.Background()

	created, _ := svc.Create(ctx, 1, &dto.NoteCreateRequest{Title: "n"})

	// 第一个请求在第二个请求写回之前读取
	stale, err := repo.GetByID(ctx, created.ID, 1)
	assert.Nil(t, err)

	_, err = svc.TogglePin(ctx, 1, created.ID)
	assert.Nil(t, err)

	// 慢请求用过期快照写回，置顶状态被覆盖
	stale.IsArchived = true
	_, err = repo.Update(ctx, stale)
	assert.Nil(t, err)

	got, err := svc.Get(ctx, 1, created.ID)
	assert.Nil(t, err)
	assert.True(t, got.IsArchived)
	assert.False(t, got.IsPinned)
}

func TestNoteServiceReorder(t *testing.T) {
	repo := newMockNoteRepo()
	svc, b := newTestNoteService(repo)
	defer b.Stop()
	sub := b.Subscribe()
	ctx := context.Background()

	n1, _ := svc.Create(ctx, 1, &dto.NoteCreateRequest{Title: "n1"})
	n2, _ := svc.Create(ctx, 1, &dto.NoteCreateRequest{Title: "n2"})
	n3, _ := svc.Create(ctx, 1, &dto.NoteCreateRequest{Title: "n3"})
	other, _ := svc.Create(ctx, 2, &dto.NoteCreateRequest{Title: "other"})
	drainEvents(sub)

	// 他人的 ID 被静默跳过，不影响其余重排
	err := svc.Reorder(ctx, 1, &dto.NoteReorderRequest{
		NoteIDs: []int64{n3.ID, other.ID, n1.ID, n2.ID},
	})
	assert.Nil(t, err)

	notes, err := svc.List(ctx, 1, nil)
	assert.Nil(t, err)
	titles := []string{notes[0].Title, notes[1].Title, notes[2].Title}
	assert.Equal(t, []string{"n3", "n1", "n2"}, titles)

	// 他人的笔记不受影响
	got, err := svc.Get(ctx, 2, other.ID)
	assert.Nil(t, err)
	assert.Equal(t, 1, got.SortOrder)

	// 重排不发事件
	assert.Empty(t, drainEvents(sub))

	// 幂等：重复提交同一列表结果不变
	err = svc.Reorder(ctx, 1, &dto.NoteReorderRequest{
		NoteIDs: []int64{n3.ID, other.ID, n1.ID, n2.ID},
	})
	assert.Nil(t, err)
	again, _ := svc.List(ctx, 1, nil)
	assert.Equal(t, titles, []string{again[0].Title, again[1].Title, again[2].Title})
}

func TestNoteServiceSetReminder(t *testing.T) {
	repo := newMockNoteRepo()
	svc, b := newTestNoteService(repo)
	defer b.Stop()
	ctx := context.Background()

	created, _ := svc.Create(ctx, 1, &dto.NoteCreateRequest{Title: "n"})

	// 设置提醒
	updated, err := svc.SetReminder(ctx, 1, created.ID, &dto.NoteReminderRequest{
		ReminderTime: "2026-09-01 10:00:00",
	})
	assert.Nil(t, err)
	assert.False(t, updated.ReminderTime.IsZero())
	assert.False(t, updated.Notified)

	// 已送达的提醒重新设置后复位
	assert.Nil(t, repo.SetNotified(ctx, created.ID))
	updated, err = svc.SetReminder(ctx, 1, created.ID, &dto.NoteReminderRequest{
		ReminderTime: "2026-09-02T08:00:00",
	})
	assert.Nil(t, err)
	assert.False(t, updated.Notified)

	// 清除提醒
	updated, err = svc.SetReminder(ctx, 1, created.ID, &dto.NoteReminderRequest{})
	assert.Nil(t, err)
	assert.True(t, updated.ReminderTime.IsZero())

	// 非法时间格式
	_, err = svc.SetReminder(ctx, 1, created.ID, &dto.NoteReminderRequest{
		ReminderTime: "next tuesday",
	})
	appErr, ok := err.(*code.Code)
	assert.True(t, ok)
	assert.Equal(t, code.ErrorInvalidTimeParam.Code(), appErr.Code())

	// 他人不能设置提醒
	_, err = svc.SetReminder(ctx, 2, created.ID, &dto.NoteReminderRequest{
		ReminderTime: "2026-09-01 10:00:00",
	})
	assert.Equal(t, code.ErrorNoteNotFound, err)
}

func TestNoteServiceChecklistFlow(t *testing.T) {
	repo := newMockNoteRepo()
	svc, b := newTestNoteService(repo)
	defer b.Stop()
	sub := b.Subscribe()
	ctx := context.Background()

	created, _ := svc.Create(ctx, 1, &dto.NoteCreateRequest{Title: "n"})
	drainEvents(sub)

	// 追加
	withItem, err := svc.ChecklistAdd(ctx, 1, created.ID, &dto.ChecklistAddRequest{Item: "task"})
	assert.Nil(t, err)
	assert.Len(t, withItem.Checklist, 1)
	itemID := withItem.Checklist[0].ID

	evs := drainEvents(sub)
	assert.Len(t, evs, 1)
	assert.Equal(t, event.ActionAddChecklist, evs[0].Payload.(event.NoteUpdatedPayload).Action)

	// 空内容不允许
	_, err = svc.ChecklistAdd(ctx, 1, created.ID, &dto.ChecklistAddRequest{Item: "  "})
	assert.Equal(t, code.ErrorChecklistItemRequired, err)

	// 取反
	toggled, err := svc.ChecklistToggle(ctx, 1, created.ID, itemID, &dto.ChecklistToggleRequest{})
	assert.Nil(t, err)
	assert.True(t, toggled.Checklist[0].Done)

	// 指定状态
	f := false
	toggled, err = svc.ChecklistToggle(ctx, 1, created.ID, itemID, &dto.ChecklistToggleRequest{Done: &f})
	assert.Nil(t, err)
	assert.False(t, toggled.Checklist[0].Done)

	// 获取清单
	items, err := svc.ChecklistGet(ctx, 1, created.ID)
	assert.Nil(t, err)
	assert.Len(t, items, 1)

	// 不存在的清单项
	_, err = svc.ChecklistToggle(ctx, 1, created.ID, "missing", nil)
	assert.Equal(t, code.ErrorChecklistItemNotFound, err)

	// 删除
	removed, err := svc.ChecklistRemove(ctx, 1, created.ID, itemID)
	assert.Nil(t, err)
	assert.Empty(t, removed.Checklist)

	_, err = svc.ChecklistRemove(ctx, 1, created.ID, itemID)
	assert.Equal(t, code.ErrorChecklistItemNotFound, err)
}

func TestNoteServiceDelete(t *testing.T) {
	repo := newMockNoteRepo()
	svc, b := newTestNoteService(repo)
	defer b.Stop()
	sub := b.Subscribe()
	ctx := context.Background()

	created, _ := svc.Create(ctx, 1, &dto.NoteCreateRequest{Title: "n"})
	drainEvents(sub)

	assert.Equal(t, code.ErrorNoteNotFound, svc.Delete(ctx, 2, created.ID))

	assert.Nil(t, svc.Delete(ctx, 1, created.ID))
	evs := drainEvents(sub)
	assert.Len(t, evs, 1)
	assert.Equal(t, event.ActionDeleted, evs[0].Payload.(event.NoteUpdatedPayload).Action)

	_, err := svc.Get(ctx, 1, created.ID)
	assert.Equal(t, code.ErrorNoteNotFound, err)
}
