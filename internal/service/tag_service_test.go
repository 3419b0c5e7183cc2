package service

import (
	"context"
	"testing"
	"time"

	"github.com/solenote/note-keeper-service/internal/domain"
	"github.com/solenote/note-keeper-service/internal/dto"
	"github.com/solenote/note-keeper-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type mockTagRepo struct {
	tags   map[int64]*domain.Tag
	nextID int64
}

func newMockTagRepo() *mockTagRepo {
	return &mockTagRepo{tags: make(map[int64]*domain.Tag)}
}

func (m *mockTagRepo) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	t, ok := m.tags[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *t
	return &c, nil
}

func (m *mockTagRepo) GetByName(ctx context.Context, name string, uid int64) (*domain.Tag, error) {
	for _, t := range m.tags {
		if t.UID == uid && t.Name == name {
			c := *t
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTagRepo) Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	m.nextID++
	c := *tag
	c.ID = m.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	m.tags[c.ID] = &c
	out := c
	return &out, nil
}

func (m *mockTagRepo) Update(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	existing, ok := m.tags[tag.ID]
	if !ok || existing.UID != tag.UID {
		return nil, gorm.ErrRecordNotFound
	}
	existing.Name = tag.Name
	existing.UpdatedAt = time.Now()
	c := *existing
	return &c, nil
}

func (m *mockTagRepo) Delete(ctx context.Context, id, uid int64) error {
	t, ok := m.tags[id]
	if ok && t.UID == uid {
		delete(m.tags, id)
	}
	return nil
}

func (m *mockTagRepo) List(ctx context.Context, uid int64) ([]*domain.Tag, error) {
	var res []*domain.Tag
	for _, t := range m.tags {
		if t.UID == uid {
			c := *t
			res = append(res, &c)
		}
	}
	return res, nil
}

func TestTagServiceCreate(t *testing.T) {
	svc := NewTagService(newMockTagRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, &dto.TagCreateRequest{Name: " work "})
	assert.Nil(t, err)
	assert.Equal(t, "work", created.Name)
	assert.NotZero(t, created.ID)

	// 同名标签不能重复
	_, err = svc.Create(ctx, 1, &dto.TagCreateRequest{Name: "work"})
	assert.Equal(t, code.ErrorTagNameExists, err)

	// 不同用户可以用同一个名字
	_, err = svc.Create(ctx, 2, &dto.TagCreateRequest{Name: "work"})
	assert.Nil(t, err)

	// 空名不允许
	_, err = svc.Create(ctx, 1, &dto.TagCreateRequest{Name: "  "})
	assert.Equal(t, code.ErrorTagNameRequired, err)
}

// 标签存在但属于他人时返回权限错误，以区别于不存在
func TestTagServiceGetDistinguishesForbiddenFromMissing(t *testing.T) {
	svc := NewTagService(newMockTagRepo())
	ctx := context.Background()

	created, _ := svc.Create(ctx, 1, &dto.TagCreateRequest{Name: "private"})

	_, err := svc.Get(ctx, 1, created.ID)
	assert.Nil(t, err)

	_, err = svc.Get(ctx, 2, created.ID)
	assert.Equal(t, code.ErrorTagAccessDenied, err)

	_, err = svc.Get(ctx, 1, created.ID+100)
	assert.Equal(t, code.ErrorTagNotFound, err)
}

func TestTagServiceUpdateAndDelete(t *testing.T) {
	svc := NewTagService(newMockTagRepo())
	ctx := context.Background()

	a, _ := svc.Create(ctx, 1, &dto.TagCreateRequest{Name: "a"})
	b, _ := svc.Create(ctx, 1, &dto.TagCreateRequest{Name: "b"})

	renamed, err := svc.Update(ctx, 1, a.ID, &dto.TagUpdateRequest{Name: "a2"})
	assert.Nil(t, err)
	assert.Equal(t, "a2", renamed.Name)

	// 改成已有名字被拒绝
	_, err = svc.Update(ctx, 1, a.ID, &dto.TagUpdateRequest{Name: "b"})
	assert.Equal(t, code.ErrorTagNameExists, err)

	// 改名为自身当前名字是允许的
	same, err := svc.Update(ctx, 1, b.ID, &dto.TagUpdateRequest{Name: "b"})
	assert.Nil(t, err)
	assert.Equal(t, "b", same.Name)

	// 他人不能改名或删除
	_, err = svc.Update(ctx, 2, a.ID, &dto.TagUpdateRequest{Name: "x"})
	assert.Equal(t, code.ErrorTagAccessDenied, err)
	assert.Equal(t, code.ErrorTagAccessDenied, svc.Delete(ctx, 2, a.ID))

	assert.Nil(t, svc.Delete(ctx, 1, a.ID))
	_, err = svc.Get(ctx, 1, a.ID)
	assert.Equal(t, code.ErrorTagNotFound, err)

	tags, err := svc.List(ctx, 1)
	assert.Nil(t, err)
	assert.Len(t, tags, 1)
}
