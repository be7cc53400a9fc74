package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/takanoridomae/Cleaning/config"
	"github.com/takanoridomae/Cleaning/internal/model"
	"github.com/takanoridomae/Cleaning/internal/repository"
	"github.com/takanoridomae/Cleaning/pkg/imaging"
	"github.com/takanoridomae/Cleaning/pkg/storage"
)

var (
	ErrReportNotFound = errors.New("報告書が見つかりません")
	ErrPDFBuild       = errors.New("PDF の生成に失敗しました")
)

// 画像処理の上限。これを超える寸法の画像は先に縮小してから回転する
const maxSourceDimension = 2000

// 埋め込み前の最終縮小サイズ
const (
	embedMaxWidth  = 480
	embedMaxHeight = 360
)

// PhotoPair 施工前後の写真ペア。どちらか一方が nil の場合もある
type PhotoPair struct {
	Before *model.Photo
	After  *model.Photo
}

// PDFService 作業完了報告書の PDF 生成サービス
type PDFService interface {
	// GenerateReportPDF 報告書 PDF を生成する。saveToDisk が真なら
	// アップロードルート配下にも保存し、その相対パスを返す。
	// 保存の失敗は非致命的で、生成済みバイト列はそのまま返る
	GenerateReportPDF(ctx context.Context, reportID uint, saveToDisk bool) ([]byte, string, error)
	// DownloadFilename ダウンロード用ファイル名を組み立てる
	DownloadFilename(report *model.Report) string
}

type pdfService struct {
	repo   *repository.Repository
	store  *storage.Store
	cfg    *config.PDFConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewPDFService PDFService を生成する
func NewPDFService(repo *repository.Repository, store *storage.Store, cfg *config.PDFConfig, logger *zap.Logger) PDFService {
	return &pdfService{repo: repo, store: store, cfg: cfg, logger: logger, now: time.Now}
}

func (s *pdfService) GenerateReportPDF(ctx context.Context, reportID uint, saveToDisk bool) ([]byte, string, error) {
	report, err := s.repo.Report.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrReportNotFound
		}
		return nil, "", err
	}

	// ── フェーズ 1: 本文ドキュメント ──
	body, err := s.buildBody(report)
	if err != nil {
		s.logger.Error("PDF 本文の生成に失敗", zap.Uint("report_id", reportID), zap.Error(err))
		return nil, "", fmt.Errorf("%w: %v", ErrPDFBuild, err)
	}

	// ── フェーズ 2: 写真ギャラリー（写真がある場合のみ）──
	final := body
	pairs := BuildPhotoPairs(report.Photos)
	if len(pairs) > 0 {
		gallery, err := s.buildGallery(pairs)
		if err != nil {
			s.logger.Error("PDF ギャラリーの生成に失敗", zap.Uint("report_id", reportID), zap.Error(err))
			return nil, "", fmt.Errorf("%w: %v", ErrPDFBuild, err)
		}

		// ── マージ: 本文 → ギャラリーの順でページを連結する ──
		merged, err := mergePDFs(body, gallery)
		if err != nil {
			s.logger.Error("PDF の結合に失敗", zap.Uint("report_id", reportID), zap.Error(err))
			return nil, "", fmt.Errorf("%w: %v", ErrPDFBuild, err)
		}
		final = merged
	}

	// ── 保存モード（失敗しても生成結果は返す）──
	var savedPath string
	if saveToDisk {
		customerName, propertyName := s.reportNames(report)
		filename := fmt.Sprintf("作業完了報告書_%s_%s_%s_%s.pdf",
			customerName, propertyName,
			s.reportDateString(report), s.now().Format("150405"))
		savedPath, err = s.store.SavePDF(customerName, propertyName, filename, final)
		if err != nil {
			s.logger.Warn("PDF の保存に失敗（生成結果は返却）",
				zap.Uint("report_id", reportID), zap.Error(err))
			savedPath = ""
		}
	}

	return final, savedPath, nil
}

func (s *pdfService) DownloadFilename(report *model.Report) string {
	customerName, propertyName := s.reportNames(report)
	return fmt.Sprintf("作業完了報告書_%s_%s_%s.pdf",
		customerName, propertyName, s.reportDateString(report))
}

func (s *pdfService) reportNames(report *model.Report) (customerName, propertyName string) {
	customerName = "不明"
	propertyName = "不明"
	if report.Property != nil {
		propertyName = report.Property.Name
		if report.Property.Customer != nil {
			customerName = report.Property.Customer.Name
		}
	}
	return customerName, propertyName
}

func (s *pdfService) reportDateString(report *model.Report) string {
	if report.Date != nil {
		return report.Date.Format("20060102")
	}
	return s.now().Format("20060102")
}

// ════════════════════════════════════════════════════════════
// フェーズ 1 — 本文ドキュメント
// ════════════════════════════════════════════════════════════

func (s *pdfService) buildBody(report *model.Report) ([]byte, error) {
	pdf, font := s.newDocument()
	pdf.AddPage()

	// タイトル・報告書 ID
	pdf.SetFont(font, "", 18)
	pdf.CellFormat(0, 12, report.Title, "", 1, "C", false, 0, "")
	pdf.SetFont(font, "", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("報告書 No. %d", report.ID), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// 報告者情報（会社固定情報）
	s.sectionHeader(pdf, font, "報告者")
	s.infoRow(pdf, font, "会社名", s.cfg.CompanyName)
	s.infoRow(pdf, font, "住所", s.cfg.CompanyAddress)
	s.infoRow(pdf, font, "担当", s.cfg.CompanyContact)
	s.infoRow(pdf, font, "電話", s.cfg.CompanyTel)
	pdf.Ln(4)

	// 顧客・物件情報
	s.sectionHeader(pdf, font, "お客様情報")
	customerLabel := "不明"
	address := report.WorkAddress
	if report.Property != nil {
		if report.Property.Customer != nil {
			customerLabel = report.Property.Customer.DisplayName()
		}
		// 物件に住所があれば優先、なければ報告書の作業住所
		if report.Property.Address != "" {
			address = report.Property.Address
		}
		s.infoRow(pdf, font, "お客様", customerLabel)
		s.infoRow(pdf, font, "物件", report.Property.Name)
	} else {
		s.infoRow(pdf, font, "お客様", customerLabel)
	}
	s.infoRow(pdf, font, "作業場所", address)
	if report.Date != nil {
		s.infoRow(pdf, font, "作業日", report.Date.Format("2006年01月02日"))
	}
	if report.Technician != "" {
		s.infoRow(pdf, font, "作業者", report.Technician)
	}
	pdf.Ln(4)

	// 作業時間テーブル
	if len(report.WorkTimes) > 0 {
		s.sectionHeader(pdf, font, "作業時間")
		s.tableHeader(pdf, font, []colSpec{
			{"作業日", 50}, {"開始", 35}, {"終了", 35}, {"備考", 70},
		})
		for _, wt := range report.WorkTimes {
			s.tableRow(pdf, font, []colSpec{
				{wt.WorkDate.Format("2006-01-02"), 50},
				{wt.StartTime, 35},
				{wt.EndTime, 35},
				{wt.Note, 70},
			})
		}
		pdf.Ln(4)
	}

	// 作業明細テーブル
	if len(report.WorkDetails) > 0 {
		s.sectionHeader(pdf, font, "作業明細")
		s.tableHeader(pdf, font, []colSpec{
			{"エアコン", 70}, {"作業項目", 50}, {"作業内容", 70},
		})
		for i := range report.WorkDetails {
			wd := &report.WorkDetails[i]
			acLabel := ""
			if wd.AirConditioner != nil {
				acLabel = wd.AirConditioner.Summary()
			}
			s.tableRow(pdf, font, []colSpec{
				{acLabel, 70},
				{wd.WorkItemName(), 50},
				{wd.Description, 70},
			})
		}
		pdf.Ln(4)
	}

	// 備考
	if report.Note != "" {
		s.sectionHeader(pdf, font, "備考")
		pdf.SetFont(font, "", 10)
		// 長文は折り返して全文を載せる
		pdf.MultiCell(0, 6, report.Note, "1", "L", false)
	}

	return outputPDF(pdf)
}

// ════════════════════════════════════════════════════════════
// フェーズ 2 — 写真ギャラリー
// ════════════════════════════════════════════════════════════

// pairsPerPage 1 ページに載せる写真ペア数
const pairsPerPage = 2

func (s *pdfService) buildGallery(pairs []PhotoPair) ([]byte, error) {
	pdf, font := s.newDocument()
	pdf.AddPage()

	pdf.SetFont(font, "", 14)
	pdf.CellFormat(0, 10, "施工前後写真", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	for i, pair := range pairs {
		if i > 0 && i%pairsPerPage == 0 {
			pdf.AddPage()
		} else if i > 0 {
			// 同一ページ内のセット間に区切り線を入れる（先頭の前には入れない）
			pdf.Ln(4)
			x, y := pdf.GetX(), pdf.GetY()
			pdf.SetDrawColor(180, 180, 180)
			pdf.Line(x, y, x+190, y)
			pdf.SetDrawColor(0, 0, 0)
			pdf.Ln(4)
		}

		// セット番号とエアコン・作業項目ラベル
		pdf.SetFont(font, "", 11)
		pdf.CellFormat(0, 7, fmt.Sprintf("写真セット %d", i+1), "", 1, "L", false, 0, "")
		if label := pairLabel(pair); label != "" {
			pdf.SetFont(font, "", 9)
			pdf.CellFormat(0, 5, label, "", 1, "L", false, 0, "")
		}

		// 施工前 | 施工後 の 2 カラム
		pdf.SetFont(font, "", 10)
		pdf.CellFormat(95, 6, "施工前", "1", 0, "C", false, 0, "")
		pdf.CellFormat(95, 6, "施工後", "1", 1, "C", false, 0, "")

		cellY := pdf.GetY()
		s.photoCell(pdf, font, pair.Before, 10, cellY)
		s.photoCell(pdf, font, pair.After, 105, cellY)
		pdf.SetXY(10, cellY+photoCellHeight)

		// 画像キャプション
		pdf.SetFont(font, "", 8)
		beforeLabel, afterLabel := "", ""
		if pair.Before != nil {
			beforeLabel = pair.Before.Label()
		}
		if pair.After != nil {
			afterLabel = pair.After.Label()
		}
		pdf.CellFormat(95, 5, beforeLabel, "", 0, "C", false, 0, "")
		pdf.CellFormat(95, 5, afterLabel, "", 1, "C", false, 0, "")
	}

	return outputPDF(pdf)
}

// photoCellHeight 写真セル 1 枠の高さ（mm）
const photoCellHeight = 70.0

// photoCell 写真 1 枚を枠付きで描画する。欠損・破損画像はプレースホルダ文字列
func (s *pdfService) photoCell(pdf *fpdf.Fpdf, font string, photo *model.Photo, x, y float64) {
	pdf.Rect(x, y, 95, photoCellHeight, "D")

	if photo == nil {
		s.placeholderCell(pdf, font, "画像なし", x, y)
		return
	}

	data, err := s.store.Read(photo.Filepath)
	if err != nil {
		s.logger.Warn("写真の読み込みに失敗", zap.Uint("photo_id", photo.ID), zap.Error(err))
		s.placeholderCell(pdf, font, "画像を読み込めませんでした", x, y)
		return
	}

	jpegData, err := prepareImage(data)
	if err != nil {
		s.logger.Warn("写真の変換に失敗", zap.Uint("photo_id", photo.ID), zap.Error(err))
		s.placeholderCell(pdf, font, "画像を読み込めませんでした", x, y)
		return
	}

	name := fmt.Sprintf("photo_%d", photo.ID)
	opts := fpdf.ImageOptions{ImageType: "JPG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(jpegData))
	// 枠内に 80×60mm で中央配置する
	pdf.ImageOptions(name, x+7.5, y+5, 80, 60, false, opts, 0, "")
}

func (s *pdfService) placeholderCell(pdf *fpdf.Fpdf, font, text string, x, y float64) {
	pdf.SetFont(font, "", 10)
	pdf.SetXY(x, y+photoCellHeight/2-3)
	pdf.CellFormat(95, 6, text, "", 0, "C", false, 0, "")
}

// prepareImage 画像バイト列を埋め込み用 JPEG に変換する。
// EXIF 回転補正 → 寸法上限まで縮小 → 埋め込みサイズへ縮小 → JPEG 再エンコード。
// すべてメモリ上で完結し、一時ファイルは作らない
func prepareImage(data []byte) ([]byte, error) {
	img, err := imaging.Decode(data)
	if err != nil {
		return nil, err
	}
	img = imaging.Fit(img, maxSourceDimension, maxSourceDimension)
	img = imaging.Fit(img, embedMaxWidth, embedMaxHeight)
	return imaging.EncodeJPEG(img, 85)
}

// BuildPhotoPairs 写真リストを施工前後のペアに組む。
// before と after をインデックス順で対応付け、余った側は片方 nil のペアになる
func BuildPhotoPairs(photos []model.Photo) []PhotoPair {
	var before, after []*model.Photo
	for i := range photos {
		switch photos[i].PhotoType {
		case model.PhotoTypeAfter:
			after = append(after, &photos[i])
		default:
			before = append(before, &photos[i])
		}
	}

	n := len(before)
	if len(after) > n {
		n = len(after)
	}
	pairs := make([]PhotoPair, 0, n)
	for i := 0; i < n; i++ {
		var pair PhotoPair
		if i < len(before) {
			pair.Before = before[i]
		}
		if i < len(after) {
			pair.After = after[i]
		}
		pairs = append(pairs, pair)
	}
	return pairs
}

// pairLabel ペアのどちらかから解決できるエアコン・作業項目ラベル
func pairLabel(pair PhotoPair) string {
	for _, p := range []*model.Photo{pair.Before, pair.After} {
		if p == nil {
			continue
		}
		var parts []string
		if p.AirConditioner != nil {
			parts = append(parts, p.AirConditioner.Summary())
		}
		if p.WorkItem != nil {
			parts = append(parts, p.WorkItem.Name)
		}
		if len(parts) == 2 {
			return parts[0] + " / " + parts[1]
		}
		if len(parts) == 1 {
			return parts[0]
		}
	}
	return ""
}

// ── ドキュメント共通 ──

// newDocument A4 縦のドキュメントを生成し、使用フォント名を返す。
// 日本語フォントが読み込めない場合はコアフォントで続行する（文字化けするが
// 生成自体は失敗させない）
func (s *pdfService) newDocument() (*fpdf.Fpdf, string) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 15)

	font := "japanese"
	if _, err := os.Stat(s.cfg.FontPath); err == nil {
		pdf.AddUTF8Font(font, "", s.cfg.FontPath)
	} else {
		s.logger.Warn("日本語フォントが見つからないためコアフォントで生成します",
			zap.String("font_path", s.cfg.FontPath))
		font = "Helvetica"
	}
	return pdf, font
}

type colSpec struct {
	text  string
	width float64
}

func (s *pdfService) sectionHeader(pdf *fpdf.Fpdf, font, title string) {
	pdf.SetFont(font, "", 12)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 8, title, "1", 1, "L", true, 0, "")
}

func (s *pdfService) infoRow(pdf *fpdf.Fpdf, font, label, value string) {
	pdf.SetFont(font, "", 10)
	pdf.CellFormat(40, 7, label, "1", 0, "L", false, 0, "")
	pdf.CellFormat(150, 7, value, "1", 1, "L", false, 0, "")
}

func (s *pdfService) tableHeader(pdf *fpdf.Fpdf, font string, cols []colSpec) {
	pdf.SetFont(font, "", 10)
	pdf.SetFillColor(240, 240, 240)
	for _, c := range cols {
		pdf.CellFormat(c.width, 7, c.text, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

// tableRow 行を描画する。長文セルは折り返し、行内の高さを揃える
func (s *pdfService) tableRow(pdf *fpdf.Fpdf, font string, cols []colSpec) {
	pdf.SetFont(font, "", 9)

	// 各セルの必要行数から行の高さを決める
	const lineHeight = 5.0
	maxLines := 1
	for _, c := range cols {
		lines := pdf.SplitText(c.text, c.width-2)
		if len(lines) > maxLines {
			maxLines = len(lines)
		}
	}
	rowHeight := lineHeight * float64(maxLines)

	x, y := pdf.GetX(), pdf.GetY()
	for _, c := range cols {
		pdf.Rect(x, y, c.width, rowHeight, "D")
		pdf.SetXY(x+1, y)
		pdf.MultiCell(c.width-2, lineHeight, c.text, "", "L", false)
		x += c.width
		pdf.SetXY(x, y)
	}
	pdf.SetXY(10, y+rowHeight)
}

func outputPDF(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// mergePDFs 複数の PDF バイト列をページ順に連結する
func mergePDFs(docs ...[]byte) ([]byte, error) {
	readers := make([]io.ReadSeeker, len(docs))
	for i, d := range docs {
		readers[i] = bytes.NewReader(d)
	}
	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, nil); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
