package service

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/takanoridomae/Cleaning/config"
	"github.com/takanoridomae/Cleaning/internal/repository"
	"github.com/takanoridomae/Cleaning/pkg/jwt"
	"github.com/takanoridomae/Cleaning/pkg/storage"
)

// Service 全 Service の集約エントリ
type Service struct {
	Auth     AuthService
	User     UserService
	Customer CustomerService
	Property PropertyService
	AirCon   AirConService
	WorkItem WorkItemService
	Report   ReportService
	Photo    PhotoService
	Schedule ScheduleService
	Sync     SyncService
	PDF      PDFService
	Export   ExportService
	Backup   BackupService

	Notification NotificationService
	Mailer       Mailer
}

// NewService Service 集約を生成する
func NewService(
	cfg *config.Config,
	db *gorm.DB,
	repo *repository.Repository,
	store *storage.Store,
	jwtMgr *jwt.Manager,
	logger *zap.Logger,
) *Service {
	sync := NewSyncService(repo, logger)
	mailer := NewSMTPMailer(&cfg.Mail, logger)

	return &Service{
		Auth:     NewAuthService(cfg, repo, jwtMgr, logger),
		User:     NewUserService(repo, logger),
		Customer: NewCustomerService(repo, logger),
		Property: NewPropertyService(repo, logger),
		AirCon:   NewAirConService(repo, logger),
		WorkItem: NewWorkItemService(repo, logger),
		Report:   NewReportService(repo, sync, store, logger),
		Photo:    NewPhotoService(repo, store, logger),
		Schedule: NewScheduleService(repo, logger),
		Sync:     sync,
		PDF:      NewPDFService(repo, store, &cfg.PDF, logger),
		Export:   NewExportService(repo, logger),
		Backup:   NewBackupService(db, logger),

		Notification: NewNotificationService(repo, mailer, logger),
		Mailer:       mailer,
	}
}
