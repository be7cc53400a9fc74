package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/takanoridomae/Cleaning/internal/model"
	"github.com/takanoridomae/Cleaning/internal/repository"
)

// 作業時間の時刻が解析できない場合のデフォルト作業時間帯
const (
	defaultStartTime = "09:00"
	defaultEndTime   = "17:00"
)

// SyncWarning スケジュール同期中に発生した非致命的な問題。
// 同期はベストエフォートであり、警告は報告書操作のレスポンスに含めて
// 画面側でバナー表示する
type SyncWarning struct {
	Index   int    `json:"index"`   // 対象の作業時間エントリ（-1 は全体）
	Field   string `json:"field"`   // work_date | start_time | end_time | schedule
	Message string `json:"message"`
}

// SyncService 報告書とスケジュールの同期サービス。
//
// 報告書の作業時間からスケジュールを生成・再生成し、報告書ステータスを
// 連動スケジュールへ反映する。スケジュール生成の失敗が報告書の保存を
// 妨げてはならないため、全操作はエラーではなく警告リストを返す
type SyncService interface {
	// CreateSchedulesFromWorkTimes 作業時間エントリごとにスケジュールを 1 件生成する
	CreateSchedulesFromWorkTimes(ctx context.Context, report *model.Report, workDates, startTimes, endTimes []string, propertyID uint) []SyncWarning
	// UpdateSchedulesFromWorkTimes 既存の連動スケジュールを全削除してから再生成する（差分更新ではない）
	UpdateSchedulesFromWorkTimes(ctx context.Context, report *model.Report, workDates, startTimes, endTimes []string, propertyID uint) []SyncWarning
	// SyncScheduleStatusWithReport 報告書ステータスを連動スケジュールへ反映する
	SyncScheduleStatusWithReport(ctx context.Context, report *model.Report) []SyncWarning
	// OnReportDelete 連動スケジュールをキャンセル＋切り離した後、報告書と所有行を削除する
	OnReportDelete(ctx context.Context, report *model.Report) ([]SyncWarning, error)
}

type syncService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time // テストで固定時刻を注入する
}

// NewSyncService SyncService を生成する
func NewSyncService(repo *repository.Repository, logger *zap.Logger) SyncService {
	return &syncService{repo: repo, logger: logger, now: time.Now}
}

// MapReportStatusToSchedule 報告書ステータスをスケジュールステータスへ写像する。
//
//	draft / pending / on_hold → pending
//	completed                 → completed
//	cancelled                 → cancelled
//	未定義値                   → pending
func MapReportStatusToSchedule(reportStatus string) string {
	switch reportStatus {
	case model.ReportStatusCompleted:
		return model.ScheduleStatusCompleted
	case model.ReportStatusCancelled:
		return model.ScheduleStatusCancelled
	default:
		return model.ScheduleStatusPending
	}
}

func (s *syncService) CreateSchedulesFromWorkTimes(ctx context.Context, report *model.Report, workDates, startTimes, endTimes []string, propertyID uint) []SyncWarning {
	warnings := []SyncWarning{}

	property, err := s.repo.Property.GetByID(ctx, propertyID)
	if err != nil {
		s.logger.Warn("スケジュール生成: 物件の取得に失敗",
			zap.Uint("property_id", propertyID), zap.Error(err))
		return append(warnings, SyncWarning{
			Index: -1, Field: "schedule",
			Message: fmt.Sprintf("物件 %d が取得できないためスケジュールを生成しませんでした", propertyID),
		})
	}

	baseTitle := s.scheduleTitle(property)
	description := s.scheduleDescription(report)

	for i, dateStr := range workDates {
		workDate, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			// 不正な日付はスキップして続行する
			s.logger.Warn("スケジュール生成: 日付の解析に失敗",
				zap.Int("index", i), zap.String("work_date", dateStr))
			warnings = append(warnings, SyncWarning{
				Index: i, Field: "work_date",
				Message: fmt.Sprintf("作業日 %q が解釈できないためスケジュールを生成しませんでした", dateStr),
			})
			continue
		}

		startStr := at(startTimes, i)
		endStr := at(endTimes, i)

		start, ok := combineDateTime(workDate, startStr)
		if !ok {
			if startStr != "" {
				warnings = append(warnings, SyncWarning{
					Index: i, Field: "start_time",
					Message: fmt.Sprintf("開始時刻 %q が解釈できないため %s を使用しました", startStr, defaultStartTime),
				})
			}
			start, _ = combineDateTime(workDate, defaultStartTime)
		}
		end, ok := combineDateTime(workDate, endStr)
		if !ok {
			if endStr != "" {
				warnings = append(warnings, SyncWarning{
					Index: i, Field: "end_time",
					Message: fmt.Sprintf("終了時刻 %q が解釈できないため %s を使用しました", endStr, defaultEndTime),
				})
			}
			end, _ = combineDateTime(workDate, defaultEndTime)
		}

		title := baseTitle
		if i >= 1 {
			title = fmt.Sprintf("%s (Day %d)", baseTitle, i+1)
		}

		reportID := report.ID
		customerID := property.CustomerID
		schedule := &model.Schedule{
			Title:               title,
			Description:         description,
			StartDatetime:       start,
			EndDatetime:         end,
			Status:              model.ScheduleStatusPending,
			Priority:            model.PriorityNormal,
			CustomerID:          &customerID,
			PropertyID:          &propertyID,
			ReportID:            &reportID,
			NotificationEnabled: true,
			NotificationMinutes: 30,
		}

		if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
			s.logger.Warn("スケジュール生成: 保存に失敗",
				zap.Int("index", i), zap.Uint("report_id", report.ID), zap.Error(err))
			warnings = append(warnings, SyncWarning{
				Index: i, Field: "schedule",
				Message: "スケジュールの保存に失敗しました",
			})
		}
	}

	return warnings
}

func (s *syncService) UpdateSchedulesFromWorkTimes(ctx context.Context, report *model.Report, workDates, startTimes, endTimes []string, propertyID uint) []SyncWarning {
	// 差分更新ではなく全置き換え。生成済みスケジュールへの手動編集は失われる
	if err := s.repo.Schedule.DeleteByReport(ctx, report.ID); err != nil {
		s.logger.Warn("スケジュール再生成: 既存分の削除に失敗",
			zap.Uint("report_id", report.ID), zap.Error(err))
		return []SyncWarning{{
			Index: -1, Field: "schedule",
			Message: "既存スケジュールの削除に失敗したため再生成を中止しました",
		}}
	}
	return s.CreateSchedulesFromWorkTimes(ctx, report, workDates, startTimes, endTimes, propertyID)
}

func (s *syncService) SyncScheduleStatusWithReport(ctx context.Context, report *model.Report) []SyncWarning {
	warnings := []SyncWarning{}

	schedules, err := s.repo.Schedule.ListByReport(ctx, report.ID)
	if err != nil {
		s.logger.Warn("ステータス同期: スケジュールの取得に失敗",
			zap.Uint("report_id", report.ID), zap.Error(err))
		return append(warnings, SyncWarning{
			Index: -1, Field: "schedule",
			Message: "連動スケジュールの取得に失敗しました",
		})
	}

	target := MapReportStatusToSchedule(report.Status)
	for i := range schedules {
		sch := &schedules[i]
		// 変化がないスケジュールは触らない（updated_at を保つ）
		if sch.Status == target {
			continue
		}
		err := s.repo.Schedule.UpdateFields(ctx, sch.ID, map[string]interface{}{
			"status":     target,
			"updated_at": s.now(),
		})
		if err != nil {
			s.logger.Warn("ステータス同期: 更新に失敗",
				zap.Uint("schedule_id", sch.ID), zap.Error(err))
			warnings = append(warnings, SyncWarning{
				Index: -1, Field: "schedule",
				Message: fmt.Sprintf("スケジュール %d のステータス更新に失敗しました", sch.ID),
			})
		}
	}

	return warnings
}

func (s *syncService) OnReportDelete(ctx context.Context, report *model.Report) ([]SyncWarning, error) {
	warnings := []SyncWarning{}

	// スケジュールは削除せず、キャンセル扱いで報告書から切り離して履歴に残す
	schedules, err := s.repo.Schedule.ListByReport(ctx, report.ID)
	if err != nil {
		s.logger.Warn("報告書削除: スケジュールの取得に失敗",
			zap.Uint("report_id", report.ID), zap.Error(err))
		warnings = append(warnings, SyncWarning{
			Index: -1, Field: "schedule",
			Message: "連動スケジュールの取得に失敗しました",
		})
	}
	for i := range schedules {
		sch := &schedules[i]
		err := s.repo.Schedule.UpdateFields(ctx, sch.ID, map[string]interface{}{
			"status":     model.ScheduleStatusCancelled,
			"report_id":  nil,
			"updated_at": s.now(),
		})
		if err != nil {
			s.logger.Warn("報告書削除: スケジュールの切り離しに失敗",
				zap.Uint("schedule_id", sch.ID), zap.Error(err))
			warnings = append(warnings, SyncWarning{
				Index: -1, Field: "schedule",
				Message: fmt.Sprintf("スケジュール %d の切り離しに失敗しました", sch.ID),
			})
		}
	}

	// 報告書本体と所有行（作業時間・作業明細・写真）の削除
	if err := s.repo.Report.Delete(ctx, report.ID); err != nil {
		return warnings, err
	}
	return warnings, nil
}

// ── ヘルパー ──

// scheduleTitle 「作業: {顧客名} - {物件名}」形式のタイトルを組み立てる
func (s *syncService) scheduleTitle(property *model.Property) string {
	customerName := "不明"
	if property.Customer != nil {
		customerName = property.Customer.Name
	}
	return fmt.Sprintf("作業: %s - %s", customerName, property.Name)
}

// scheduleDescription 報告書 ID・住所・備考をまとめた説明文を組み立てる
func (s *syncService) scheduleDescription(report *model.Report) string {
	desc := fmt.Sprintf("報告書 #%d の作業", report.ID)
	if report.WorkAddress != "" {
		desc += "\n住所: " + report.WorkAddress
	}
	if report.Note != "" {
		desc += "\n備考: " + report.Note
	}
	return desc
}

// combineDateTime 日付と "HH:MM" 形式の時刻文字列を結合する
func combineDateTime(date time.Time, timeStr string) (time.Time, bool) {
	t, err := time.Parse("15:04", timeStr)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, date.Location()), true
}

// at 範囲外アクセスを空文字で吸収する
func at(xs []string, i int) string {
	if i < len(xs) {
		return xs[i]
	}
	return ""
}
