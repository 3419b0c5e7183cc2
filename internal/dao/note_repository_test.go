package dao

import (
	"context"
	"testing"
	"time"

	"github.com/solenote/note-keeper-service/internal/domain"
	"github.com/solenote/note-keeper-service/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := model.AutoMigrateAll(db); err != nil {
		t.Fatal(err)
	}
	return New(db)
}

func newTestNote(uid int64, title string) *domain.Note {
	return &domain.Note{
		UID:   uid,
		Title: title,
		Color: domain.DefaultNoteColor,
	}
}

func TestNoteRepositoryCreateAndGet(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	note := newTestNote(1, "groceries")
	note.Tags = []string{"home", "shopping"}
	note.Checklist = []domain.ChecklistItem{
		{ID: "item-1", Item: "milk", Done: false},
		{ID: "item-2", Item: "eggs", Done: true},
	}

	created, err := repo.Create(ctx, note)
	assert.Nil(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "groceries", created.Title)
	assert.Equal(t, domain.DefaultNoteColor, created.Color)
	assert.Equal(t, []string{"home", "shopping"}, created.Tags)
	assert.Len(t, created.Checklist, 2)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, created.ID, 1)
	assert.Nil(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "eggs", got.Checklist[1].Item)
	assert.True(t, got.Checklist[1].Done)

	// 其他用户不可见
	_, err = repo.GetByID(ctx, created.ID, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestNoteRepositoryUpdate(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	created, err := repo.Create(ctx, newTestNote(1, "draft"))
	assert.Nil(t, err)

	created.Title = "final"
	created.IsArchived = true
	reminder := time.Now().Add(time.Hour).Truncate(time.Second)
	created.ReminderTime = &reminder

	updated, err := repo.Update(ctx, created)
	assert.Nil(t, err)
	assert.Equal(t, "final", updated.Title)
	assert.True(t, updated.IsArchived)
	assert.NotNil(t, updated.ReminderTime)
	assert.Equal(t, reminder.Unix(), updated.ReminderTime.Unix())

	// 布尔字段可以回落为 false
	updated.IsArchived = false
	updated.ReminderTime = nil
	again, err := repo.Update(ctx, updated)
	assert.Nil(t, err)
	assert.False(t, again.IsArchived)
	assert.Nil(t, again.ReminderTime)
}

func TestNoteRepositoryListSortAndFilter(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	mk := func(title string, pinned bool, order int, archived bool, tags []string, done *bool) {
		n := newTestNote(1, title)
		n.IsPinned = pinned
		n.SortOrder = order
		n.IsArchived = archived
		n.Tags = tags
		if done != nil {
			n.Checklist = []domain.ChecklistItem{{ID: title + "-i", Item: "x", Done: *done}}
		}
		_, err := repo.Create(ctx, n)
		assert.Nil(t, err)
	}

	f := false
	tr := true
	mk("b", false, 1, false, []string{"work"}, &f)
	mk("a", true, 2, false, nil, nil)
	mk("c", false, 0, true, []string{"work", "urgent"}, &tr)

	// 无过滤：置顶优先，其余按排序值升序
	notes, err := repo.List(ctx, 1, nil)
	assert.Nil(t, err)
	titles := make([]string, 0, len(notes))
	for _, n := range notes {
		titles = append(titles, n.Title)
	}
	assert.Equal(t, []string{"a", "c", "b"}, titles)

	// 标题模糊匹配
	notes, err = repo.List(ctx, 1, &domain.NoteFilter{Title: "b"})
	assert.Nil(t, err)
	assert.Len(t, notes, 1)
	assert.Equal(t, "b", notes[0].Title)

	// 归档过滤
	notes, err = repo.List(ctx, 1, &domain.NoteFilter{Archived: &tr})
	assert.Nil(t, err)
	assert.Len(t, notes, 1)
	assert.Equal(t, "c", notes[0].Title)

	// 标签过滤
	notes, err = repo.List(ctx, 1, &domain.NoteFilter{Tag: "work"})
	assert.Nil(t, err)
	assert.Len(t, notes, 2)

	// 完成状态过滤：至少一个清单项匹配
	notes, err = repo.List(ctx, 1, &domain.NoteFilter{Done: &tr})
	assert.Nil(t, err)
	assert.Len(t, notes, 1)
	assert.Equal(t, "c", notes[0].Title)

	// 其他用户的列表为空
	notes, err = repo.List(ctx, 2, nil)
	assert.Nil(t, err)
	assert.Empty(t, notes)
}

func TestNoteRepositoryUpdateSortOrder(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	n1, _ := repo.Create(ctx, newTestNote(1, "n1"))
	other, _ := repo.Create(ctx, newTestNote(2, "other"))

	assert.Nil(t, repo.UpdateSortOrder(ctx, 5, n1.ID, 1))
	got, err := repo.GetByID(ctx, n1.ID, 1)
	assert.Nil(t, err)
	assert.Equal(t, 5, got.SortOrder)

	// 他人的笔记 ID 不产生更新
	assert.Nil(t, repo.UpdateSortOrder(ctx, 9, other.ID, 1))
	untouched, err := repo.GetByID(ctx, other.ID, 2)
	assert.Nil(t, err)
	assert.Equal(t, 0, untouched.SortOrder)

	// 新建笔记的排序值默认为 0，不受已有排序影响
	fresh, err := repo.Create(ctx, newTestNote(1, "fresh"))
	assert.Nil(t, err)
	assert.Equal(t, 0, fresh.SortOrder)
}

func TestNoteRepositoryReminders(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	due := newTestNote(1, "due")
	due.ReminderTime = &past
	due, err := repo.Create(ctx, due)
	assert.Nil(t, err)

	pending := newTestNote(1, "pending")
	pending.ReminderTime = &future
	_, err = repo.Create(ctx, pending)
	assert.Nil(t, err)

	none := newTestNote(1, "none")
	_, err = repo.Create(ctx, none)
	assert.Nil(t, err)

	notes, err := repo.ListDueReminders(ctx, now)
	assert.Nil(t, err)
	assert.Len(t, notes, 1)
	assert.Equal(t, "due", notes[0].Title)

	// 标记送达后不再出现
	assert.Nil(t, repo.SetNotified(ctx, due.ID))
	notes, err = repo.ListDueReminders(ctx, now)
	assert.Nil(t, err)
	assert.Empty(t, notes)
}
