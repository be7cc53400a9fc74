package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/takanoridomae/Cleaning/internal/model"
	"github.com/takanoridomae/Cleaning/internal/repository"
)

// ── エクスポートモジュール業務エラー ──

var (
	ErrExportNoDetails    = errors.New("出力対象の作業明細がありません")
	ErrExportGenerateFail = errors.New("Excel ファイルの生成に失敗しました")
)

// ExportService エクスポートビジネスインターフェース
//
// 設計メモ:
//   - 受注明細一覧を Excel (.xlsx) で出力する
//   - 出力は bytes.Buffer で返し、HTTP レスポンスヘッダは Handler 層が設定する
type ExportService interface {
	// ExportOrderDetails 全報告書の作業明細を 1 シートに出力する
	ExportOrderDetails(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService ExportService を生成する
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportOrderDetails — 受注明細一覧を Excel で出力
// ═══════════════════════════════════════════════════════════
//
// 出力形式:
//   - 1 行 = 作業明細 1 件
//   - 列: 報告書ID / 作業日 / 顧客 / 物件 / エアコン / 作業項目 / 作業内容 / 確認事項 / 金額 / ステータス

func (s *exportService) ExportOrderDetails(ctx context.Context) (*bytes.Buffer, string, error) {
	details, err := s.repo.WorkDetail.ListAll(ctx)
	if err != nil {
		s.logger.Error("作業明細の取得に失敗", zap.Error(err))
		return nil, "", err
	}
	if len(details) == 0 {
		return nil, "", ErrExportNoDetails
	}

	// 報告書（物件・顧客込み）は明細ごとに引かず、報告書ID単位でキャッシュする
	reportCache := make(map[uint]*model.Report)
	reportOf := func(id uint) *model.Report {
		if r, ok := reportCache[id]; ok {
			return r
		}
		r, err := s.repo.Report.GetByID(ctx, id)
		if err != nil {
			r = nil
		}
		reportCache[id] = r
		return r
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "受注明細一覧"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列幅
	widths := []float64{10, 12, 20, 20, 22, 16, 30, 20, 12, 10}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"報告書ID", "作業日", "顧客", "物件", "エアコン", "作業項目", "作業内容", "確認事項", "金額", "ステータス"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, cell(col, 1), h)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	f.SetCellStyle(sheetName, "A1", cell(lastCol, 1), headerStyle)

	row := 2
	for i := range details {
		d := &details[i]
		report := reportOf(d.ReportID)

		var workDate, customerName, propertyName, status string
		if report != nil {
			status = report.Status
			if report.Date != nil {
				workDate = report.Date.Format("2006-01-02")
			}
			if report.Property != nil {
				propertyName = report.Property.Name
				if report.Property.Customer != nil {
					customerName = report.Property.Customer.DisplayName()
				}
			}
		}
		var airconDesc string
		if d.AirConditioner != nil {
			airconDesc = d.AirConditioner.Summary()
		}

		f.SetCellValue(sheetName, cell("A", row), d.ReportID)
		f.SetCellValue(sheetName, cell("B", row), workDate)
		f.SetCellValue(sheetName, cell("C", row), customerName)
		f.SetCellValue(sheetName, cell("D", row), propertyName)
		f.SetCellValue(sheetName, cell("E", row), airconDesc)
		f.SetCellValue(sheetName, cell("F", row), d.WorkItemName())
		f.SetCellValue(sheetName, cell("G", row), d.Description)
		f.SetCellValue(sheetName, cell("H", row), d.Confirmation)
		if d.WorkAmount > 0 {
			f.SetCellValue(sheetName, cell("I", row), d.WorkAmount)
		}
		f.SetCellValue(sheetName, cell("J", row), status)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("Excel の書き込みに失敗", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("受注明細一覧_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ── 補助関数 ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
