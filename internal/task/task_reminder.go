package task

import (
	"context"
	"fmt"
	"time"

	"github.com/solenote/note-keeper-service/internal/app"
	"github.com/solenote/note-keeper-service/internal/domain"
	"github.com/solenote/note-keeper-service/internal/event"
	"github.com/solenote/note-keeper-service/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var remindersDispatchedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "note_keeper_reminders_dispatched_total",
	Help: "Total number of due reminders dispatched to subscribers.",
})

// ReminderTask 提醒轮询任务
// 周期性扫描到期且未通知的提醒，广播通知并标记已送达
type ReminderTask struct {
	app *app.App
	sf  singleflight.Group
}

// Name 返回任务名称
func (t *ReminderTask) Name() string {
	return "ReminderDispatch"
}

// LoopInterval 返回执行间隔
func (t *ReminderTask) LoopInterval() time.Duration {
	return t.app.Config().GetReminderCheckInterval()
}

// IsStartupRun 是否立即执行一次
func (t *ReminderTask) IsStartupRun() bool {
	return false
}

// Run 执行一轮提醒扫描
// singleflight 保证慢扫描不会和下一个周期重叠
func (t *ReminderTask) Run(ctx context.Context) error {
	_, err, _ := t.sf.Do("reminder-tick", func() (any, error) {
		return nil, t.tick(ctx)
	})
	return err
}

func (t *ReminderTask) tick(ctx context.Context) error {
	notes, err := t.app.NoteRepo.ListDueReminders(ctx, time.Now())
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		return nil
	}

	log := t.app.Logger()

	// 单条失败不影响其余提醒
	var firstErr error
	for _, note := range notes {
		if err := t.dispatch(ctx, note); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			log.Error("task log",
				zap.String(logger.FieldTask, t.Name()),
				zap.Int64(logger.FieldNoteID, note.ID),
				zap.Error(err))
			continue
		}
		remindersDispatchedTotal.Inc()
	}
	return firstErr
}

// dispatch 广播单条提醒并标记已送达
func (t *ReminderTask) dispatch(ctx context.Context, note *domain.Note) error {
	payload := event.ReminderPayload{
		NoteID:       note.ID,
		Title:        note.Title,
		Content:      note.Content,
		ReminderTime: note.ReminderTime.Format(time.RFC3339),
		Message:      fmt.Sprintf("Reminder: %s", note.Title),
	}
	t.app.Broadcaster.Publish(event.EventReminderNotification, payload)

	if t.app.Mailer != nil {
		if user, err := t.app.UserRepo.GetByUID(ctx, note.UID); err == nil && user.HasEmail() {
			if err := t.app.Mailer.Send(user.Email, payload.Message, note.Content); err != nil {
				t.app.Logger().Warn("task log",
					zap.String(logger.FieldTask, t.Name()),
					zap.String("sub_task", "ReminderMail"),
					zap.Int64(logger.FieldNoteID, note.ID),
					zap.Error(err))
			}
		}
	}

	return t.app.NoteRepo.SetNotified(ctx, note.ID)
}

// NewReminderTask 创建提醒轮询任务
func NewReminderTask(appContainer *app.App) (Task, error) {
	return &ReminderTask{app: appContainer}, nil
}

// init 自动注册提醒任务
func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		return NewReminderTask(appContainer)
	})
}
