package repository

import "gorm.io/gorm"

// Repository 全 Repository の集約エントリ
type Repository struct {
	Customer       CustomerRepository
	Property       PropertyRepository
	AirConditioner AirConditionerRepository
	WorkItem       WorkItemRepository
	Report         ReportRepository
	WorkTime       WorkTimeRepository
	WorkDetail     WorkDetailRepository
	Photo          PhotoRepository
	Schedule       ScheduleRepository
	User           UserRepository
}

// NewRepository Repository 集約を生成する
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Customer:       NewCustomerRepo(db),
		Property:       NewPropertyRepo(db),
		AirConditioner: NewAirConditionerRepo(db),
		WorkItem:       NewWorkItemRepo(db),
		Report:         NewReportRepo(db),
		WorkTime:       NewWorkTimeRepo(db),
		WorkDetail:     NewWorkDetailRepo(db),
		Photo:          NewPhotoRepo(db),
		Schedule:       NewScheduleRepo(db),
		User:           NewUserRepo(db),
	}
}
