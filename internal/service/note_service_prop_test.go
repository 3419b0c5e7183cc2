package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/solenote/note-keeper-service/internal/dto"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// 验证重排后的列表顺序和提交顺序一致
func TestPropertyReorderMatchesSubmittedOrder(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("list order equals submitted permutation", prop.ForAll(
		func(seed int, count int) bool {
			ctx := context.Background()
			repo := newMockNoteRepo()
			svc, b := newTestNoteService(repo)
			defer b.Stop()

			ids := make([]int64, 0, count)
			for i := 0; i < count; i++ {
				created, err := svc.Create(ctx, 1, &dto.NoteCreateRequest{
					Title: fmt.Sprintf("note-%d", i),
				})
				if err != nil {
					return false
				}
				ids = append(ids, created.ID)
			}

			// 用 seed 生成一个确定性排列
			perm := make([]int64, len(ids))
			copy(perm, ids)
			r := seed
			for i := len(perm) - 1; i > 0; i-- {
				r = (r*1103515245 + 12345) & 0x7fffffff
				j := r % (i + 1)
				perm[i], perm[j] = perm[j], perm[i]
			}

			if err := svc.Reorder(ctx, 1, &dto.NoteReorderRequest{NoteIDs: perm}); err != nil {
				return false
			}

			notes, err := svc.List(ctx, 1, nil)
			if err != nil || len(notes) != len(perm) {
				return false
			}
			for i, n := range notes {
				if n.ID != perm[i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 1_000_000),
		gen.IntRange(1, 12),
	))

	// 重排是幂等的：重复提交同一排列不改变结果
	properties.Property("reorder is idempotent", prop.ForAll(
		func(count int) bool {
			ctx := context.Background()
			repo := newMockNoteRepo()
			svc, b := newTestNoteService(repo)
			defer b.Stop()

			ids := make([]int64, 0, count)
			for i := 0; i < count; i++ {
				created, err := svc.Create(ctx, 1, &dto.NoteCreateRequest{
					Title: fmt.Sprintf("note-%d", i),
				})
				if err != nil {
					return false
				}
				ids = append(ids, created.ID)
			}

			// 倒序提交两次
			rev := make([]int64, len(ids))
			for i, id := range ids {
				rev[len(ids)-1-i] = id
			}
			for k := 0; k < 2; k++ {
				if err := svc.Reorder(ctx, 1, &dto.NoteReorderRequest{NoteIDs: rev}); err != nil {
					return false
				}
			}

			notes, err := svc.List(ctx, 1, nil)
			if err != nil || len(notes) != len(rev) {
				return false
			}
			for i, n := range notes {
				if n.ID != rev[i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 12),
	))

	properties.TestingRun(t)
}
