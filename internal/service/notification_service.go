package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/takanoridomae/Cleaning/internal/model"
	"github.com/takanoridomae/Cleaning/internal/repository"
)

// 通知判定ウィンドウ
const (
	reminderWindow = 60 * time.Second  // |now − (start − minutes)| ≤ 60s でリマインダー
	startWindow    = 300 * time.Second // |now − start| ≤ 300s で開始通知
)

// NotificationResult 1 回のスイープの集計
type NotificationResult struct {
	Checked       int `json:"checked"`
	RemindersSent int `json:"reminders_sent"`
	StartsSent    int `json:"starts_sent"`
	Failures      int `json:"failures"`
}

// NotificationService スケジュール通知サービス。
// スケジュール状態を読むだけで、Report / Schedule への書き戻しは行わない
type NotificationService interface {
	// CheckAndSend 通知対象スケジュールを走査し、期限が来たものへメールを送る。
	// 個々の送信失敗はログに残して続行する
	CheckAndSend(ctx context.Context, now time.Time) NotificationResult
	// MailConfigured メール送信設定が有効か
	MailConfigured() bool
}

type notificationService struct {
	repo   *repository.Repository
	mailer Mailer
	logger *zap.Logger
}

// NewNotificationService NotificationService を生成する
func NewNotificationService(repo *repository.Repository, mailer Mailer, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, mailer: mailer, logger: logger}
}

func (s *notificationService) MailConfigured() bool {
	return s.mailer.IsConfigured()
}

func (s *notificationService) CheckAndSend(ctx context.Context, now time.Time) NotificationResult {
	var result NotificationResult

	schedules, err := s.repo.Schedule.ListNotifiable(ctx)
	if err != nil {
		s.logger.Error("通知対象スケジュールの取得に失敗", zap.Error(err))
		result.Failures++
		return result
	}
	result.Checked = len(schedules)

	for i := range schedules {
		schedule := &schedules[i]

		// リマインダー: 開始の notification_minutes 前
		notifyAt := schedule.StartDatetime.Add(-time.Duration(schedule.NotificationMinutes) * time.Minute)
		if withinWindow(now, notifyAt, reminderWindow) {
			if s.send(schedule, reminderSubject(schedule), reminderBody) {
				result.RemindersSent++
			} else {
				result.Failures++
			}
		}

		// 開始通知: 開始時刻そのもの。リマインダーとは独立に発火する
		if withinWindow(now, schedule.StartDatetime, startWindow) {
			if s.send(schedule, startSubject(schedule), startBody) {
				result.StartsSent++
			} else {
				result.Failures++
			}
		}
	}

	return result
}

func (s *notificationService) send(schedule *model.Schedule, subject string, body func(*model.Schedule) (string, string)) bool {
	recipients := scheduleRecipients(schedule)
	if len(recipients) == 0 {
		s.logger.Warn("通知先アドレスがないため送信をスキップ",
			zap.Uint("schedule_id", schedule.ID))
		return false
	}

	html, text := body(schedule)
	if err := s.mailer.Send(recipients, subject, html, text); err != nil {
		s.logger.Warn("通知メールの送信に失敗",
			zap.Uint("schedule_id", schedule.ID),
			zap.String("subject", subject),
			zap.Error(err))
		return false
	}

	s.logger.Info("通知メールを送信",
		zap.Uint("schedule_id", schedule.ID),
		zap.String("subject", subject),
		zap.Strings("to", recipients))
	return true
}

// withinWindow |now − target| ≤ window か判定する
func withinWindow(now, target time.Time, window time.Duration) bool {
	diff := now.Sub(target)
	if diff < 0 {
		diff = -diff
	}
	return diff <= window
}

// ════════════════════════════════════════════════════════════
// Dispatcher — 定周期実行
// ════════════════════════════════════════════════════════════

// Dispatcher 通知チェックを一定間隔で実行するバックグラウンドワーカー
type Dispatcher struct {
	svc      NotificationService
	interval time.Duration
	logger   *zap.Logger

	mu        sync.Mutex
	running   bool
	lastRun   time.Time
	lastStats NotificationResult
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewDispatcher Dispatcher を生成する
func NewDispatcher(svc NotificationService, interval time.Duration, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{svc: svc, interval: interval, logger: logger}
}

// Start バックグラウンドループを開始する。二重起動は無視する
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})
	d.running = true

	go d.loop(ctx)
	d.logger.Info("通知ディスパッチャを開始", zap.Duration("interval", d.interval))
}

// Stop ループを停止し、完了を待つ
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	cancel, done := d.cancel, d.done
	d.running = false
	d.mu.Unlock()

	cancel()
	<-done
	d.logger.Info("通知ディスパッチャを停止")
}

func (d *Dispatcher) loop(ctx context.Context) {
	defer close(d.done)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			d.runOnce(ctx, now)
		}
	}
}

func (d *Dispatcher) runOnce(ctx context.Context, now time.Time) {
	result := d.svc.CheckAndSend(ctx, now)

	d.mu.Lock()
	d.lastRun = now
	d.lastStats = result
	d.mu.Unlock()

	if result.RemindersSent > 0 || result.StartsSent > 0 || result.Failures > 0 {
		d.logger.Info("通知スイープ完了",
			zap.Int("checked", result.Checked),
			zap.Int("reminders", result.RemindersSent),
			zap.Int("starts", result.StartsSent),
			zap.Int("failures", result.Failures))
	}
}

// Status 現在の稼働状況を返す
func (d *Dispatcher) Status() (running bool, lastRun time.Time, lastStats NotificationResult) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running, d.lastRun, d.lastStats
}
