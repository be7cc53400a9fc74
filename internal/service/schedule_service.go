package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/takanoridomae/Cleaning/internal/dto"
	"github.com/takanoridomae/Cleaning/internal/model"
	"github.com/takanoridomae/Cleaning/internal/repository"
)

// スケジュールモジュールの業務エラー
var (
	ErrScheduleNotFound = errors.New("スケジュールが見つかりません")
	ErrInvalidDatetime  = errors.New("日時の形式が不正です")
	ErrInvalidRange     = errors.New("終了日時は開始日時より後である必要があります")
)

// ScheduleService スケジュールビジネスインターフェース。
// 報告書連動スケジュールの生成・同期は SyncService が担い、本サービスは
// 手動作成とカレンダー操作（移動・完了・期間取得・ICS 出力）を扱う
type ScheduleService interface {
	Create(ctx context.Context, req *dto.CreateScheduleRequest, createdBy *uint) (*model.Schedule, error)
	Get(ctx context.Context, id uint) (*model.Schedule, error)
	List(ctx context.Context, req *dto.ScheduleListRequest) ([]model.Schedule, int64, error)
	Update(ctx context.Context, id uint, req *dto.UpdateScheduleRequest) (*model.Schedule, error)
	// Move カレンダー上のドラッグ移動。開始・終了のみを書き換える
	Move(ctx context.Context, req *dto.MoveScheduleRequest) (*model.Schedule, error)
	// Complete ステータスを completed にする
	Complete(ctx context.Context, id uint) (*model.Schedule, error)
	Delete(ctx context.Context, id uint) error
	// Events カレンダー表示用イベントを返す
	Events(ctx context.Context, req *dto.EventsRequest) ([]dto.EventResponse, error)
	// ExportICS 期間内のスケジュールを iCalendar 形式で出力する
	ExportICS(ctx context.Context, from, to time.Time) ([]byte, error)
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService ScheduleService を生成する
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

func (s *scheduleService) Create(ctx context.Context, req *dto.CreateScheduleRequest, createdBy *uint) (*model.Schedule, error) {
	start, err := parseDatetime(req.StartDatetime)
	if err != nil {
		return nil, ErrInvalidDatetime
	}
	end, err := parseDatetime(req.EndDatetime)
	if err != nil {
		return nil, ErrInvalidDatetime
	}
	if !end.After(start) {
		return nil, ErrInvalidRange
	}

	schedule := &model.Schedule{
		Title:         req.Title,
		Description:   req.Description,
		StartDatetime: start,
		EndDatetime:   end,
		AllDay:        req.AllDay,
		Status:        model.ScheduleStatusPending,
		Priority:      req.Priority,
		CustomerID:    req.CustomerID,
		PropertyID:    req.PropertyID,
		CreatedBy:     createdBy,
	}
	if schedule.Priority == "" {
		schedule.Priority = model.PriorityNormal
	}
	schedule.NotificationEnabled = true
	if req.NotificationEnabled != nil {
		schedule.NotificationEnabled = *req.NotificationEnabled
	}
	schedule.NotificationMinutes = 30
	if req.NotificationMinutes != nil {
		schedule.NotificationMinutes = *req.NotificationMinutes
	}

	if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
		s.logger.Error("スケジュールの作成に失敗", zap.Error(err))
		return nil, err
	}
	return schedule, nil
}

func (s *scheduleService) Get(ctx context.Context, id uint) (*model.Schedule, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return schedule, nil
}

func (s *scheduleService) List(ctx context.Context, req *dto.ScheduleListRequest) ([]model.Schedule, int64, error) {
	filter := repository.ScheduleFilter{
		Status: req.Status,
		Offset: req.GetOffset(),
		Limit:  req.GetPageSize(),
	}
	if req.From != "" {
		if t, err := parseDatetime(req.From); err == nil {
			filter.From = &t
		}
	}
	if req.To != "" {
		if t, err := parseDatetime(req.To); err == nil {
			filter.To = &t
		}
	}
	return s.repo.Schedule.List(ctx, filter)
}

func (s *scheduleService) Update(ctx context.Context, id uint, req *dto.UpdateScheduleRequest) (*model.Schedule, error) {
	schedule, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		schedule.Title = *req.Title
	}
	if req.Description != nil {
		schedule.Description = *req.Description
	}
	if req.StartDatetime != nil {
		t, err := parseDatetime(*req.StartDatetime)
		if err != nil {
			return nil, ErrInvalidDatetime
		}
		schedule.StartDatetime = t
	}
	if req.EndDatetime != nil {
		t, err := parseDatetime(*req.EndDatetime)
		if err != nil {
			return nil, ErrInvalidDatetime
		}
		schedule.EndDatetime = t
	}
	if !schedule.EndDatetime.After(schedule.StartDatetime) {
		return nil, ErrInvalidRange
	}
	if req.AllDay != nil {
		schedule.AllDay = *req.AllDay
	}
	if req.Status != nil {
		schedule.Status = *req.Status
	}
	if req.Priority != nil {
		schedule.Priority = *req.Priority
	}
	if req.CustomerID != nil {
		schedule.CustomerID = req.CustomerID
	}
	if req.PropertyID != nil {
		schedule.PropertyID = req.PropertyID
	}
	if req.NotificationEnabled != nil {
		schedule.NotificationEnabled = *req.NotificationEnabled
	}
	if req.NotificationMinutes != nil {
		schedule.NotificationMinutes = *req.NotificationMinutes
	}

	// 関連を含めて Save しない
	bare := *schedule
	bare.Customer = nil
	bare.Property = nil
	bare.Report = nil
	bare.Creator = nil
	if err := s.repo.Schedule.Update(ctx, &bare); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *scheduleService) Move(ctx context.Context, req *dto.MoveScheduleRequest) (*model.Schedule, error) {
	start, err := parseDatetime(req.StartDatetime)
	if err != nil {
		return nil, ErrInvalidDatetime
	}
	end, err := parseDatetime(req.EndDatetime)
	if err != nil {
		return nil, ErrInvalidDatetime
	}
	if !end.After(start) {
		return nil, ErrInvalidRange
	}

	if _, err := s.Get(ctx, req.ID); err != nil {
		return nil, err
	}
	err = s.repo.Schedule.UpdateFields(ctx, req.ID, map[string]interface{}{
		"start_datetime": start,
		"end_datetime":   end,
		"updated_at":     time.Now(),
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, req.ID)
}

func (s *scheduleService) Complete(ctx context.Context, id uint) (*model.Schedule, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	err := s.repo.Schedule.UpdateFields(ctx, id, map[string]interface{}{
		"status":     model.ScheduleStatusCompleted,
		"updated_at": time.Now(),
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *scheduleService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Schedule.Delete(ctx, id)
}

func (s *scheduleService) Events(ctx context.Context, req *dto.EventsRequest) ([]dto.EventResponse, error) {
	from, err := parseDatetime(req.From)
	if err != nil {
		return nil, ErrInvalidDatetime
	}
	to, err := parseDatetime(req.To)
	if err != nil {
		return nil, ErrInvalidDatetime
	}

	schedules, err := s.repo.Schedule.ListRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	events := make([]dto.EventResponse, 0, len(schedules))
	for i := range schedules {
		sc := &schedules[i]
		ev := dto.EventResponse{
			ID:       sc.ID,
			Title:    sc.Title,
			Start:    sc.StartDatetime.Format(time.RFC3339),
			End:      sc.EndDatetime.Format(time.RFC3339),
			AllDay:   sc.AllDay,
			Status:   sc.Status,
			Priority: sc.Priority,
			ReportID: sc.ReportID,
		}
		if sc.Customer != nil {
			ev.CustomerName = sc.Customer.DisplayName()
		}
		if sc.Property != nil {
			ev.PropertyName = sc.Property.Name
		}
		events = append(events, ev)
	}
	return events, nil
}

func (s *scheduleService) ExportICS(ctx context.Context, from, to time.Time) ([]byte, error) {
	schedules, err := s.repo.Schedule.ListRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//aircon-report//JA")

	for i := range schedules {
		sc := &schedules[i]
		ev := cal.AddEvent(fmt.Sprintf("schedule-%d@aircon-report", sc.ID))
		ev.SetCreatedTime(sc.CreatedAt)
		ev.SetModifiedAt(sc.UpdatedAt)
		ev.SetSummary(sc.Title)
		if sc.Description != "" {
			ev.SetDescription(sc.Description)
		}
		if sc.AllDay {
			ev.SetAllDayStartAt(sc.StartDatetime)
			ev.SetAllDayEndAt(sc.EndDatetime)
		} else {
			ev.SetStartAt(sc.StartDatetime)
			ev.SetEndAt(sc.EndDatetime)
		}
		if sc.Property != nil && sc.Property.Address != "" {
			ev.SetLocation(sc.Property.Address)
		}
		switch sc.Status {
		case model.ScheduleStatusCancelled:
			ev.SetStatus(ics.ObjectStatusCancelled)
		case model.ScheduleStatusCompleted:
			ev.SetStatus(ics.ObjectStatusConfirmed)
		default:
			ev.SetStatus(ics.ObjectStatusTentative)
		}
	}
	return []byte(cal.Serialize()), nil
}

// parseDatetime RFC3339 を基本としつつ、カレンダー UI が送る
// 簡略形式（秒なし・日付のみ）も受け付ける
func parseDatetime(s string) (time.Time, error) {
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("日時を解析できません: %s", s)
}
