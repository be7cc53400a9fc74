package handler

import (
	"github.com/takanoridomae/Cleaning/internal/service"
	"github.com/takanoridomae/Cleaning/pkg/redis"
)

// Handler 全 Handler の集約エントリ
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Customer     *CustomerHandler
	Property     *PropertyHandler
	AirCon       *AirConHandler
	WorkItem     *WorkItemHandler
	Report       *ReportHandler
	Photo        *PhotoHandler
	Schedule     *ScheduleHandler
	Export       *ExportHandler
	Backup       *BackupHandler
	Notification *NotificationHandler
}

// NewHandler Handler 集約を生成する
func NewHandler(svc *service.Service, rdb *redis.Client, dispatcher *service.Dispatcher) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth, rdb),
		User:         NewUserHandler(svc.User),
		Customer:     NewCustomerHandler(svc.Customer, svc.Property),
		Property:     NewPropertyHandler(svc.Property),
		AirCon:       NewAirConHandler(svc.AirCon),
		WorkItem:     NewWorkItemHandler(svc.WorkItem),
		Report:       NewReportHandler(svc.Report, svc.PDF),
		Photo:        NewPhotoHandler(svc.Photo),
		Schedule:     NewScheduleHandler(svc.Schedule),
		Export:       NewExportHandler(svc.Export),
		Backup:       NewBackupHandler(svc.Backup),
		Notification: NewNotificationHandler(svc.Notification, dispatcher),
	}
}
