package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/takanoridomae/Cleaning/internal/dto"
	"github.com/takanoridomae/Cleaning/internal/model"
	"github.com/takanoridomae/Cleaning/internal/repository"
	"github.com/takanoridomae/Cleaning/pkg/storage"
)

// デフォルトの報告書タイトル
const defaultReportTitle = "作業完了書"

// ReportService 報告書ビジネスインターフェース。
// 報告書の作成・更新・削除はスケジュール同期を必ず伴う
type ReportService interface {
	Create(ctx context.Context, req *dto.CreateReportRequest) (*model.Report, []SyncWarning, error)
	Get(ctx context.Context, id uint) (*model.Report, error)
	List(ctx context.Context, req *dto.ReportListRequest) ([]model.Report, int64, error)
	Update(ctx context.Context, id uint, req *dto.UpdateReportRequest) (*model.Report, []SyncWarning, error)
	Delete(ctx context.Context, id uint) ([]SyncWarning, error)
	// ListDescriptions 過去の作業内容の入力候補を返す
	ListDescriptions(ctx context.Context, limit int) ([]string, error)
}

type reportService struct {
	repo   *repository.Repository
	sync   SyncService
	store  *storage.Store
	logger *zap.Logger
}

// NewReportService ReportService を生成する
func NewReportService(repo *repository.Repository, sync SyncService, store *storage.Store, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, sync: sync, store: store, logger: logger}
}

func (s *reportService) Create(ctx context.Context, req *dto.CreateReportRequest) (*model.Report, []SyncWarning, error) {
	property, err := s.repo.Property.GetByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrPropertyNotFound
		}
		return nil, nil, err
	}

	report := &model.Report{
		PropertyID:  req.PropertyID,
		Title:       req.Title,
		WorkAddress: req.WorkAddress,
		Technician:  req.Technician,
		Status:      req.Status,
		Note:        req.Note,
	}
	if report.Title == "" {
		report.Title = defaultReportTitle
	}
	if report.Status == "" {
		report.Status = model.ReportStatusDraft
	}
	if req.Date != "" {
		if d, err := time.ParseInLocation("2006-01-02", req.Date, time.Local); err == nil {
			report.Date = &d
		}
	}
	if report.WorkAddress == "" {
		report.WorkAddress = property.Address
	}

	if err := s.repo.Report.Create(ctx, report); err != nil {
		s.logger.Error("報告書の作成に失敗", zap.Error(err))
		return nil, nil, err
	}

	if err := s.saveWorkTimes(ctx, report, req.WorkTimes); err != nil {
		return nil, nil, err
	}
	if err := s.saveWorkDetails(ctx, report, req.WorkDetails); err != nil {
		return nil, nil, err
	}

	// スケジュール同期（ベストエフォート。失敗しても報告書作成は完了する）
	dates, starts, ends := splitWorkTimeEntries(req.WorkTimes)
	warnings := s.sync.CreateSchedulesFromWorkTimes(ctx, report, dates, starts, ends, req.PropertyID)
	warnings = append(warnings, s.sync.SyncScheduleStatusWithReport(ctx, report)...)

	full, err := s.repo.Report.GetByID(ctx, report.ID)
	if err != nil {
		return report, warnings, nil
	}
	return full, warnings, nil
}

func (s *reportService) Get(ctx context.Context, id uint) (*model.Report, error) {
	report, err := s.repo.Report.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

func (s *reportService) List(ctx context.Context, req *dto.ReportListRequest) ([]model.Report, int64, error) {
	return s.repo.Report.List(ctx, repository.ReportFilter{
		Status: req.Status,
		Query:  req.Query,
		Offset: req.GetOffset(),
		Limit:  req.GetPageSize(),
	})
}

func (s *reportService) Update(ctx context.Context, id uint, req *dto.UpdateReportRequest) (*model.Report, []SyncWarning, error) {
	report, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if req.Title != nil {
		report.Title = *req.Title
	}
	if req.Date != nil {
		if *req.Date == "" {
			report.Date = nil
		} else if d, err := time.ParseInLocation("2006-01-02", *req.Date, time.Local); err == nil {
			report.Date = &d
		}
	}
	if req.WorkAddress != nil {
		report.WorkAddress = *req.WorkAddress
	}
	if req.Technician != nil {
		report.Technician = *req.Technician
	}
	if req.Status != nil {
		report.Status = *req.Status
	}
	if req.Note != nil {
		report.Note = *req.Note
	}

	// 関連スライスを含めて Save すると意図しない再作成が起きるため本体のみ更新する
	bare := *report
	bare.Property = nil
	bare.WorkTimes = nil
	bare.WorkDetails = nil
	bare.Photos = nil
	if err := s.repo.Report.Update(ctx, &bare); err != nil {
		s.logger.Error("報告書の更新に失敗", zap.Uint("report_id", id), zap.Error(err))
		return nil, nil, err
	}

	var warnings []SyncWarning

	// 作業時間が与えられた場合は全置き換え＋スケジュール再生成
	if req.WorkTimes != nil {
		if err := s.repo.WorkTime.DeleteByReport(ctx, id); err != nil {
			return nil, nil, err
		}
		if err := s.saveWorkTimes(ctx, report, req.WorkTimes); err != nil {
			return nil, nil, err
		}
		dates, starts, ends := splitWorkTimeEntries(req.WorkTimes)
		warnings = append(warnings, s.sync.UpdateSchedulesFromWorkTimes(ctx, report, dates, starts, ends, report.PropertyID)...)
	}

	if req.WorkDetails != nil {
		if err := s.repo.WorkDetail.DeleteByReport(ctx, id); err != nil {
			return nil, nil, err
		}
		if err := s.saveWorkDetails(ctx, report, req.WorkDetails); err != nil {
			return nil, nil, err
		}
	}

	// ステータス変更の有無にかかわらず毎回同期する（不変条件の維持）
	warnings = append(warnings, s.sync.SyncScheduleStatusWithReport(ctx, report)...)

	full, err := s.repo.Report.GetByID(ctx, id)
	if err != nil {
		return report, warnings, nil
	}
	return full, warnings, nil
}

func (s *reportService) Delete(ctx context.Context, id uint) ([]SyncWarning, error) {
	report, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// 写真ファイルの物理削除（ベストエフォート）
	for i := range report.Photos {
		if err := s.store.Remove(report.Photos[i].Filepath); err != nil {
			s.logger.Warn("写真ファイルの削除に失敗",
				zap.Uint("photo_id", report.Photos[i].ID), zap.Error(err))
		}
	}

	return s.sync.OnReportDelete(ctx, report)
}

func (s *reportService) ListDescriptions(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.Report.ListDescriptions(ctx, limit)
}

// ── ヘルパー ──

// saveWorkTimes 入力行を永続化する。日付が解析できない行は保存せず飛ばす
// （スケジュール同期側が同じ行に対して警告を出す）
func (s *reportService) saveWorkTimes(ctx context.Context, report *model.Report, entries []dto.WorkTimeEntry) error {
	var rows []model.WorkTime
	for _, e := range entries {
		d, err := time.ParseInLocation("2006-01-02", e.WorkDate, time.Local)
		if err != nil {
			continue
		}
		rows = append(rows, model.WorkTime{
			ReportID:   report.ID,
			PropertyID: report.PropertyID,
			WorkDate:   d,
			StartTime:  e.StartTime,
			EndTime:    e.EndTime,
			Note:       e.Note,
		})
	}
	return s.repo.WorkTime.BatchCreate(ctx, rows)
}

func (s *reportService) saveWorkDetails(ctx context.Context, report *model.Report, entries []dto.WorkDetailEntry) error {
	var rows []model.WorkDetail
	for _, e := range entries {
		rows = append(rows, model.WorkDetail{
			ReportID:         report.ID,
			PropertyID:       report.PropertyID,
			AirConditionerID: e.AirConditionerID,
			WorkItemID:       e.WorkItemID,
			WorkItemText:     e.WorkItemText,
			Description:      e.Description,
			Confirmation:     e.Confirmation,
			WorkAmount:       e.WorkAmount,
		})
	}
	return s.repo.WorkDetail.BatchCreate(ctx, rows)
}

// splitWorkTimeEntries 同期サービスへ渡す並列配列に分解する
func splitWorkTimeEntries(entries []dto.WorkTimeEntry) (dates, starts, ends []string) {
	for _, e := range entries {
		dates = append(dates, e.WorkDate)
		starts = append(starts, e.StartTime)
		ends = append(ends, e.EndTime)
	}
	return dates, starts, ends
}
