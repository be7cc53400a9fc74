package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/takanoridomae/Cleaning/internal/dto"
	"github.com/takanoridomae/Cleaning/internal/model"
)

// ── テスト補助 ──

func setupTestScheduleService() (ScheduleService, *testRepos) {
	repo, mocks := newTestRepository()
	svc := NewScheduleService(repo, zap.NewNop())
	return svc, mocks
}

// ════════════════════════════════════════════════════════════
// Create / Update
// ════════════════════════════════════════════════════════════

func TestScheduleService_Create_Defaults(t *testing.T) {
	svc, _ := setupTestScheduleService()
	creator := uint(3)

	schedule, err := svc.Create(context.Background(), &dto.CreateScheduleRequest{
		Title:         "定期点検",
		StartDatetime: "2025-06-01T10:00:00+09:00",
		EndDatetime:   "2025-06-01T12:00:00+09:00",
	}, &creator)
	if err != nil {
		t.Fatalf("作成に失敗: %v", err)
	}
	if schedule.Status != model.ScheduleStatusPending {
		t.Errorf("初期ステータスは pending のはず: %q", schedule.Status)
	}
	if schedule.Priority != model.PriorityNormal {
		t.Errorf("デフォルト優先度は normal のはず: %q", schedule.Priority)
	}
	if !schedule.NotificationEnabled || schedule.NotificationMinutes != 30 {
		t.Errorf("通知デフォルト不一致: enabled=%v minutes=%d",
			schedule.NotificationEnabled, schedule.NotificationMinutes)
	}
	if schedule.CreatedBy == nil || *schedule.CreatedBy != 3 {
		t.Errorf("作成者が記録されるはず: %v", schedule.CreatedBy)
	}
}

func TestScheduleService_Create_InvalidDatetime(t *testing.T) {
	svc, _ := setupTestScheduleService()
	_, err := svc.Create(context.Background(), &dto.CreateScheduleRequest{
		Title:         "点検",
		StartDatetime: "tomorrow",
		EndDatetime:   "2025-06-01T12:00",
	}, nil)
	if !errors.Is(err, ErrInvalidDatetime) {
		t.Errorf("ErrInvalidDatetime を期待: %v", err)
	}
}

func TestScheduleService_Create_InvalidRange(t *testing.T) {
	svc, _ := setupTestScheduleService()
	_, err := svc.Create(context.Background(), &dto.CreateScheduleRequest{
		Title:         "点検",
		StartDatetime: "2025-06-01T12:00",
		EndDatetime:   "2025-06-01T10:00",
	}, nil)
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("ErrInvalidRange を期待: %v", err)
	}
}

func TestScheduleService_Update_RangeValidated(t *testing.T) {
	svc, _ := setupTestScheduleService()
	schedule, err := svc.Create(context.Background(), &dto.CreateScheduleRequest{
		Title:         "点検",
		StartDatetime: "2025-06-01T10:00",
		EndDatetime:   "2025-06-01T12:00",
	}, nil)
	if err != nil {
		t.Fatalf("前提の作成に失敗: %v", err)
	}

	// 終了を開始より前へ動かすと拒否される
	bad := "2025-06-01T09:00"
	if _, err := svc.Update(context.Background(), schedule.ID, &dto.UpdateScheduleRequest{
		EndDatetime: &bad,
	}); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("ErrInvalidRange を期待: %v", err)
	}
}

func TestParseDatetime_Layouts(t *testing.T) {
	cases := []struct {
		input string
		want  time.Time
	}{
		{"2025-06-01T10:30:15+09:00", time.Date(2025, 6, 1, 10, 30, 15, 0, time.FixedZone("", 9*3600))},
		{"2025-06-01T10:30:15", time.Date(2025, 6, 1, 10, 30, 15, 0, time.Local)},
		{"2025-06-01T10:30", time.Date(2025, 6, 1, 10, 30, 0, 0, time.Local)},
		{"2025-06-01 10:30:15", time.Date(2025, 6, 1, 10, 30, 15, 0, time.Local)},
		{"2025-06-01", time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)},
	}
	for _, c := range cases {
		got, err := parseDatetime(c.input)
		if err != nil {
			t.Errorf("parseDatetime(%q) でエラー: %v", c.input, err)
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("parseDatetime(%q) = %v, want %v", c.input, got, c.want)
		}
	}
	if _, err := parseDatetime("06/01/2025"); err == nil {
		t.Error("未対応形式はエラーのはず")
	}
}

// ════════════════════════════════════════════════════════════
// Move / Complete
// ════════════════════════════════════════════════════════════

func TestScheduleService_Move(t *testing.T) {
	svc, _ := setupTestScheduleService()
	schedule, err := svc.Create(context.Background(), &dto.CreateScheduleRequest{
		Title:         "点検",
		StartDatetime: "2025-06-01T10:00",
		EndDatetime:   "2025-06-01T12:00",
	}, nil)
	if err != nil {
		t.Fatalf("前提の作成に失敗: %v", err)
	}

	moved, err := svc.Move(context.Background(), &dto.MoveScheduleRequest{
		ID:            schedule.ID,
		StartDatetime: "2025-06-03T14:00",
		EndDatetime:   "2025-06-03T16:00",
	})
	if err != nil {
		t.Fatalf("移動に失敗: %v", err)
	}
	wantStart := time.Date(2025, 6, 3, 14, 0, 0, 0, time.Local)
	if !moved.StartDatetime.Equal(wantStart) {
		t.Errorf("開始日時不一致: %v", moved.StartDatetime)
	}
	// タイトルなど他フィールドは変わらない
	if moved.Title != "点検" {
		t.Errorf("移動でタイトルが変わってはならない: %q", moved.Title)
	}
}

func TestScheduleService_Move_NotFound(t *testing.T) {
	svc, _ := setupTestScheduleService()
	_, err := svc.Move(context.Background(), &dto.MoveScheduleRequest{
		ID:            999,
		StartDatetime: "2025-06-03T14:00",
		EndDatetime:   "2025-06-03T16:00",
	})
	if !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("ErrScheduleNotFound を期待: %v", err)
	}
}

func TestScheduleService_Complete(t *testing.T) {
	svc, _ := setupTestScheduleService()
	schedule, err := svc.Create(context.Background(), &dto.CreateScheduleRequest{
		Title:         "点検",
		StartDatetime: "2025-06-01T10:00",
		EndDatetime:   "2025-06-01T12:00",
	}, nil)
	if err != nil {
		t.Fatalf("前提の作成に失敗: %v", err)
	}

	done, err := svc.Complete(context.Background(), schedule.ID)
	if err != nil {
		t.Fatalf("完了に失敗: %v", err)
	}
	if done.Status != model.ScheduleStatusCompleted {
		t.Errorf("completed を期待: %q", done.Status)
	}
}

// ════════════════════════════════════════════════════════════
// Events / ExportICS
// ════════════════════════════════════════════════════════════

func TestScheduleService_Events(t *testing.T) {
	svc, mocks := setupTestScheduleService()

	customer := &model.Customer{Name: "Tanaka"}
	sch := &model.Schedule{
		Title:         "作業: Tanaka - Tanaka Residence",
		StartDatetime: time.Date(2025, 6, 1, 10, 0, 0, 0, time.Local),
		EndDatetime:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local),
		Status:        model.ScheduleStatusPending,
		Priority:      model.PriorityNormal,
		Customer:      customer,
	}
	mocks.schedules.Create(context.Background(), sch)
	// 期間外の予定は出ない
	mocks.schedules.Create(context.Background(), &model.Schedule{
		Title:         "別件",
		StartDatetime: time.Date(2025, 8, 1, 10, 0, 0, 0, time.Local),
		EndDatetime:   time.Date(2025, 8, 1, 12, 0, 0, 0, time.Local),
		Status:        model.ScheduleStatusPending,
	})

	events, err := svc.Events(context.Background(), &dto.EventsRequest{
		From: "2025-06-01", To: "2025-06-30",
	})
	if err != nil {
		t.Fatalf("取得に失敗: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("期間内1件を期待, got %d", len(events))
	}
	if events[0].CustomerName != "Tanaka" {
		t.Errorf("顧客名が載るはず: %q", events[0].CustomerName)
	}
}

func TestScheduleService_ExportICS(t *testing.T) {
	svc, mocks := setupTestScheduleService()
	mocks.schedules.Create(context.Background(), &model.Schedule{
		Title:         "作業: Tanaka - Tanaka Residence",
		Description:   "報告書 #42 の作業",
		StartDatetime: time.Date(2025, 6, 1, 10, 0, 0, 0, time.Local),
		EndDatetime:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local),
		Status:        model.ScheduleStatusCompleted,
	})

	data, err := svc.ExportICS(context.Background(),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local),
		time.Date(2025, 6, 30, 0, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("出力に失敗: %v", err)
	}
	ics := string(data)
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"作業: Tanaka - Tanaka Residence",
		"STATUS:CONFIRMED",
		"END:VCALENDAR",
	} {
		if !strings.Contains(ics, want) {
			t.Errorf("ICS に %q が含まれるはず:\n%s", want, ics)
		}
	}
}

func TestScheduleService_ExportICS_Empty(t *testing.T) {
	svc, _ := setupTestScheduleService()
	data, err := svc.ExportICS(context.Background(),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local),
		time.Date(2025, 6, 30, 0, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("出力に失敗: %v", err)
	}
	if !strings.Contains(string(data), "BEGIN:VCALENDAR") {
		t.Error("空でもカレンダー枠は出力されるはず")
	}
}
