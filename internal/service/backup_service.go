package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/takanoridomae/Cleaning/internal/model"
)

// ── バックアップモジュール業務エラー ──

var (
	ErrBackupInvalidFormat = errors.New("バックアップデータの形式が不正です")
	ErrRestoreFailed       = errors.New("リストアに失敗しました")
)

// backupFormatVersion バックアップ JSON のフォーマット版数
const backupFormatVersion = 1

// BackupData 全テーブルの JSON ダンプ。
// リストア時は外部キーの依存順（親→子）で投入する
type BackupData struct {
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exported_at"`

	Users           []model.User           `json:"users"`
	Customers       []model.Customer       `json:"customers"`
	Properties      []model.Property       `json:"properties"`
	AirConditioners []model.AirConditioner `json:"air_conditioners"`
	WorkItems       []model.WorkItem       `json:"work_items"`
	Reports         []model.Report         `json:"reports"`
	WorkTimes       []model.WorkTime       `json:"work_times"`
	WorkDetails     []model.WorkDetail     `json:"work_details"`
	Photos          []model.Photo          `json:"photos"`
	Schedules       []model.Schedule       `json:"schedules"`
}

// BackupService 管理者向けの全データ退避・復元
type BackupService interface {
	// Backup 全テーブルを JSON にダンプする
	Backup(ctx context.Context) ([]byte, string, error)
	// Restore JSON ダンプから全テーブルを復元する。既存データは置き換えられる
	Restore(ctx context.Context, data []byte) error
}

type backupService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewBackupService BackupService を生成する。
// 全テーブル横断の一括操作なのでリポジトリを介さず DB を直接使う
func NewBackupService(db *gorm.DB, logger *zap.Logger) BackupService {
	return &backupService{db: db, logger: logger}
}

func (s *backupService) Backup(ctx context.Context) ([]byte, string, error) {
	dump := BackupData{
		Version:    backupFormatVersion,
		ExportedAt: time.Now(),
	}

	db := s.db.WithContext(ctx)
	steps := []struct {
		name string
		dest interface{}
	}{
		{"users", &dump.Users},
		{"customers", &dump.Customers},
		{"properties", &dump.Properties},
		{"air_conditioners", &dump.AirConditioners},
		{"work_items", &dump.WorkItems},
		{"reports", &dump.Reports},
		{"work_times", &dump.WorkTimes},
		{"work_details", &dump.WorkDetails},
		{"photos", &dump.Photos},
		{"schedules", &dump.Schedules},
	}
	for _, st := range steps {
		if err := db.Table(st.name).Order("id ASC").Find(st.dest).Error; err != nil {
			s.logger.Error("バックアップの取得に失敗", zap.String("table", st.name), zap.Error(err))
			return nil, "", err
		}
	}

	out, err := json.MarshalIndent(&dump, "", "  ")
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
	return out, filename, nil
}

func (s *backupService) Restore(ctx context.Context, data []byte) error {
	var dump BackupData
	if err := json.Unmarshal(data, &dump); err != nil {
		return ErrBackupInvalidFormat
	}
	if dump.Version != backupFormatVersion {
		return ErrBackupInvalidFormat
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 子→親の順で全削除
		deleteOrder := []string{
			"schedules", "photos", "work_details", "work_times",
			"reports", "work_items", "air_conditioners",
			"properties", "customers", "users",
		}
		for _, table := range deleteOrder {
			if err := tx.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
				return err
			}
		}

		// 親→子の順で投入（ID を保持する）
		inserts := []struct {
			table string
			rows  interface{}
			count int
		}{
			{"users", &dump.Users, len(dump.Users)},
			{"customers", &dump.Customers, len(dump.Customers)},
			{"properties", &dump.Properties, len(dump.Properties)},
			{"air_conditioners", &dump.AirConditioners, len(dump.AirConditioners)},
			{"work_items", &dump.WorkItems, len(dump.WorkItems)},
			{"reports", &dump.Reports, len(dump.Reports)},
			{"work_times", &dump.WorkTimes, len(dump.WorkTimes)},
			{"work_details", &dump.WorkDetails, len(dump.WorkDetails)},
			{"photos", &dump.Photos, len(dump.Photos)},
			{"schedules", &dump.Schedules, len(dump.Schedules)},
		}
		for _, ins := range inserts {
			if ins.count == 0 {
				continue
			}
			if err := tx.Table(ins.table).Omit(clause.Associations).Create(ins.rows).Error; err != nil {
				return err
			}
			// ID を明示投入したのでシーケンスを追従させる
			seqSQL := fmt.Sprintf(
				"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 1))",
				ins.table, ins.table)
			if err := tx.Exec(seqSQL).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("リストアに失敗", zap.Error(err))
		return ErrRestoreFailed
	}

	s.logger.Info("リストア完了",
		zap.Int("customers", len(dump.Customers)),
		zap.Int("reports", len(dump.Reports)),
		zap.Int("schedules", len(dump.Schedules)))
	return nil
}
