package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"LandWatch-App/internal/domain/model"
	"LandWatch-App/internal/domain/repository"
	"LandWatch-App/internal/logging"
)

const deliveryTimeout = 30 * time.Second

// Mailer 通知メールの送信手段
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NotificationObserver 通知結果の記録先（メトリクス）
type NotificationObserver interface {
	ObserveNotification(result string)
}

// NotificationScheduler 1回限りの通知ジョブを管理する
// ジョブIDは "<email>_<RFC3339時刻>" で、同じIDの再登録は前のジョブを置き換える
type NotificationScheduler struct {
	mailer        Mailer
	notifications repository.NotificationsRepository
	logger        logging.Logger
	observer      NotificationObserver
	now           func() time.Time

	mu     sync.Mutex
	jobs   map[string]*time.Timer
	closed bool
	wg     sync.WaitGroup
}

// NewNotificationScheduler 新しいNotificationSchedulerを作成
func NewNotificationScheduler(mailer Mailer, notifications repository.NotificationsRepository, logger logging.Logger, observer NotificationObserver) *NotificationScheduler {
	if logger == nil {
		logger = logging.Noop()
	}
	return &NotificationScheduler{
		mailer:        mailer,
		notifications: notifications,
		logger:        logger,
		observer:      observer,
		now:           time.Now,
		jobs:          make(map[string]*time.Timer),
	}
}

// JobID 通知ジョブのキー
func JobID(email string, at time.Time) string {
	return fmt.Sprintf("%s_%s", email, at.UTC().Format(time.RFC3339))
}

// Schedule at に通知を送るジョブを登録する
// 過去の時刻は登録せず false を返す
func (s *NotificationScheduler) Schedule(email string, at time.Time, title, message string) (string, bool) {
	id := JobID(email, at)
	delay := at.Sub(s.now())
	if delay <= 0 {
		s.logger.Warn(context.Background(), "過去の時刻の通知はスキップします",
			logging.String("job_id", id))
		s.observe("skipped")
		return id, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return id, false
	}

	if prev, ok := s.jobs[id]; ok {
		if prev.Stop() {
			s.wg.Done()
		}
		s.logger.Debug(context.Background(), "既存の通知ジョブを置き換えます", logging.String("job_id", id))
	}

	s.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		defer s.wg.Done()

		s.mu.Lock()
		current, ok := s.jobs[id]
		if !ok || current != timer {
			s.mu.Unlock()
			return
		}
		delete(s.jobs, id)
		s.mu.Unlock()

		s.deliver(id, email, title, message)
	})
	s.jobs[id] = timer

	s.logger.Info(context.Background(), "通知をスケジュールしました",
		logging.String("job_id", id), logging.String("at", at.UTC().Format(time.RFC3339)))
	return id, true
}

// Pending 未実行のジョブ数
func (s *NotificationScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Shutdown 未実行のジョブをすべて取り消し、実行中のジョブの完了を待つ
func (s *NotificationScheduler) Shutdown() {
	s.mu.Lock()
	s.closed = true
	for id, timer := range s.jobs {
		if timer.Stop() {
			s.wg.Done()
		}
		delete(s.jobs, id)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *NotificationScheduler) deliver(id, email, title, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	result := "sent"
	if err := s.mailer.Send(ctx, email, title, message); err != nil {
		result = "failed"
		s.logger.Error(ctx, "通知メールの送信に失敗", logging.String("job_id", id), logging.Err(err))
	}

	if s.notifications != nil {
		n := &model.Notification{
			UserEmail:   email,
			Title:       title,
			Description: message,
			CreatedAt:   s.now().UTC(),
		}
		if err := s.notifications.Create(ctx, n); err != nil {
			s.logger.Error(ctx, "通知の保存に失敗", logging.String("job_id", id), logging.Err(err))
		}
	}
	s.observe(result)
}

func (s *NotificationScheduler) observe(result string) {
	if s.observer != nil {
		s.observer.ObserveNotification(result)
	}
}
