package service

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/takanoridomae/Cleaning/internal/model"
	"github.com/takanoridomae/Cleaning/internal/repository"
	"github.com/takanoridomae/Cleaning/pkg/storage"
)

// newTestStore 一時ディレクトリをルートにしたファイルストアを作る
func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("ストアの初期化に失敗: %v", err)
	}
	return store
}

// ── Mock Repositories ──
//
// DB を使わずサービス層を検証するための map ベースのフェイク実装。
// 各 Create は ID の自動採番を模倣する

type mockCustomerRepo struct {
	customers map[uint]*model.Customer
	nextID    uint
}

func newMockCustomerRepo() *mockCustomerRepo {
	return &mockCustomerRepo{customers: make(map[uint]*model.Customer), nextID: 1}
}

func (m *mockCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == 0 {
		c.ID = m.nextID
		m.nextID++
	}
	m.customers[c.ID] = c
	return nil
}

func (m *mockCustomerRepo) GetByID(_ context.Context, id uint) (*model.Customer, error) {
	if c, ok := m.customers[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCustomerRepo) List(_ context.Context, query string, offset, limit int) ([]model.Customer, int64, error) {
	var all []model.Customer
	for _, c := range m.customers {
		if query == "" || strings.Contains(c.Name, query) || strings.Contains(c.CompanyName, query) {
			all = append(all, *c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, int64(len(all)), nil
}

func (m *mockCustomerRepo) ListAll(_ context.Context) ([]model.Customer, error) {
	list, _, _ := m.List(context.Background(), "", 0, 0)
	return list, nil
}

func (m *mockCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	m.customers[c.ID] = c
	return nil
}

func (m *mockCustomerRepo) Delete(_ context.Context, id uint) error {
	delete(m.customers, id)
	return nil
}

type mockPropertyRepo struct {
	properties map[uint]*model.Property
	nextID     uint
}

func newMockPropertyRepo() *mockPropertyRepo {
	return &mockPropertyRepo{properties: make(map[uint]*model.Property), nextID: 1}
}

func (m *mockPropertyRepo) Create(_ context.Context, p *model.Property) error {
	if p.ID == 0 {
		p.ID = m.nextID
		m.nextID++
	}
	m.properties[p.ID] = p
	return nil
}

func (m *mockPropertyRepo) GetByID(_ context.Context, id uint) (*model.Property, error) {
	if p, ok := m.properties[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPropertyRepo) List(_ context.Context, query string, offset, limit int) ([]model.Property, int64, error) {
	var all []model.Property
	for _, p := range m.properties {
		if query == "" || strings.Contains(p.Name, query) || strings.Contains(p.Address, query) {
			all = append(all, *p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, int64(len(all)), nil
}

func (m *mockPropertyRepo) ListByCustomer(_ context.Context, customerID uint) ([]model.Property, error) {
	var out []model.Property
	for _, p := range m.properties {
		if p.CustomerID == customerID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockPropertyRepo) Update(_ context.Context, p *model.Property) error {
	m.properties[p.ID] = p
	return nil
}

func (m *mockPropertyRepo) Delete(_ context.Context, id uint) error {
	delete(m.properties, id)
	return nil
}

type mockAirConRepo struct {
	aircons map[uint]*model.AirConditioner
	nextID  uint
}

func newMockAirConRepo() *mockAirConRepo {
	return &mockAirConRepo{aircons: make(map[uint]*model.AirConditioner), nextID: 1}
}

func (m *mockAirConRepo) Create(_ context.Context, ac *model.AirConditioner) error {
	if ac.ID == 0 {
		ac.ID = m.nextID
		m.nextID++
	}
	m.aircons[ac.ID] = ac
	return nil
}

func (m *mockAirConRepo) GetByID(_ context.Context, id uint) (*model.AirConditioner, error) {
	if ac, ok := m.aircons[id]; ok {
		return ac, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAirConRepo) ListByProperty(_ context.Context, propertyID uint) ([]model.AirConditioner, error) {
	var out []model.AirConditioner
	for _, ac := range m.aircons {
		if ac.PropertyID == propertyID {
			out = append(out, *ac)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockAirConRepo) Update(_ context.Context, ac *model.AirConditioner) error {
	m.aircons[ac.ID] = ac
	return nil
}

func (m *mockAirConRepo) Delete(_ context.Context, id uint) error {
	delete(m.aircons, id)
	return nil
}

type mockWorkItemRepo struct {
	items  map[uint]*model.WorkItem
	nextID uint
}

func newMockWorkItemRepo() *mockWorkItemRepo {
	return &mockWorkItemRepo{items: make(map[uint]*model.WorkItem), nextID: 1}
}

func (m *mockWorkItemRepo) Create(_ context.Context, item *model.WorkItem) error {
	if item.ID == 0 {
		item.ID = m.nextID
		m.nextID++
	}
	m.items[item.ID] = item
	return nil
}

func (m *mockWorkItemRepo) GetByID(_ context.Context, id uint) (*model.WorkItem, error) {
	if item, ok := m.items[id]; ok {
		return item, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkItemRepo) GetByName(_ context.Context, name string) (*model.WorkItem, error) {
	for _, item := range m.items {
		if item.Name == name {
			return item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkItemRepo) List(_ context.Context, activeOnly bool) ([]model.WorkItem, error) {
	var out []model.WorkItem
	for _, item := range m.items {
		if !activeOnly || item.IsActive {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockWorkItemRepo) Update(_ context.Context, item *model.WorkItem) error {
	m.items[item.ID] = item
	return nil
}

func (m *mockWorkItemRepo) Delete(_ context.Context, id uint) error {
	delete(m.items, id)
	return nil
}

// mockReportRepo 所有行の連鎖削除を模倣するため関連 mock への参照を持つ
type mockReportRepo struct {
	reports map[uint]*model.Report
	nextID  uint

	workTimes   *mockWorkTimeRepo
	workDetails *mockWorkDetailRepo
	photos      *mockPhotoRepo
}

func newMockReportRepo(wt *mockWorkTimeRepo, wd *mockWorkDetailRepo, ph *mockPhotoRepo) *mockReportRepo {
	return &mockReportRepo{
		reports:     make(map[uint]*model.Report),
		nextID:      1,
		workTimes:   wt,
		workDetails: wd,
		photos:      ph,
	}
}

func (m *mockReportRepo) Create(_ context.Context, r *model.Report) error {
	if r.ID == 0 {
		r.ID = m.nextID
		m.nextID++
	}
	m.reports[r.ID] = r
	return nil
}

func (m *mockReportRepo) GetByID(ctx context.Context, id uint) (*model.Report, error) {
	r, ok := m.reports[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	// プリロードの模倣
	out := *r
	out.WorkTimes, _ = m.workTimes.ListByReport(ctx, id)
	out.WorkDetails, _ = m.workDetails.ListByReport(ctx, id)
	out.Photos, _ = m.photos.ListByReport(ctx, id)
	return &out, nil
}

func (m *mockReportRepo) List(_ context.Context, filter repository.ReportFilter) ([]model.Report, int64, error) {
	var all []model.Report
	for _, r := range m.reports {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		all = append(all, *r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, int64(len(all)), nil
}

func (m *mockReportRepo) Update(_ context.Context, r *model.Report) error {
	if _, ok := m.reports[r.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *r
	m.reports[r.ID] = &stored
	return nil
}

func (m *mockReportRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := m.reports[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.workTimes.DeleteByReport(ctx, id)
	m.workDetails.DeleteByReport(ctx, id)
	for _, p := range m.photos.photos {
		if p.ReportID == id {
			delete(m.photos.photos, p.ID)
		}
	}
	delete(m.reports, id)
	return nil
}

func (m *mockReportRepo) ListDescriptions(_ context.Context, limit int) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, d := range m.workDetails.details {
		if d.Description != "" && !seen[d.Description] {
			seen[d.Description] = true
			out = append(out, d.Description)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type mockWorkTimeRepo struct {
	times  map[uint]*model.WorkTime
	nextID uint
}

func newMockWorkTimeRepo() *mockWorkTimeRepo {
	return &mockWorkTimeRepo{times: make(map[uint]*model.WorkTime), nextID: 1}
}

func (m *mockWorkTimeRepo) BatchCreate(_ context.Context, rows []model.WorkTime) error {
	for i := range rows {
		rows[i].ID = m.nextID
		m.nextID++
		stored := rows[i]
		m.times[stored.ID] = &stored
	}
	return nil
}

func (m *mockWorkTimeRepo) ListByReport(_ context.Context, reportID uint) ([]model.WorkTime, error) {
	var out []model.WorkTime
	for _, t := range m.times {
		if t.ReportID == reportID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockWorkTimeRepo) DeleteByReport(_ context.Context, reportID uint) error {
	for id, t := range m.times {
		if t.ReportID == reportID {
			delete(m.times, id)
		}
	}
	return nil
}

type mockWorkDetailRepo struct {
	details map[uint]*model.WorkDetail
	nextID  uint
}

func newMockWorkDetailRepo() *mockWorkDetailRepo {
	return &mockWorkDetailRepo{details: make(map[uint]*model.WorkDetail), nextID: 1}
}

func (m *mockWorkDetailRepo) BatchCreate(_ context.Context, rows []model.WorkDetail) error {
	for i := range rows {
		rows[i].ID = m.nextID
		m.nextID++
		stored := rows[i]
		m.details[stored.ID] = &stored
	}
	return nil
}

func (m *mockWorkDetailRepo) ListByReport(_ context.Context, reportID uint) ([]model.WorkDetail, error) {
	var out []model.WorkDetail
	for _, d := range m.details {
		if d.ReportID == reportID {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockWorkDetailRepo) ListAll(_ context.Context) ([]model.WorkDetail, error) {
	var out []model.WorkDetail
	for _, d := range m.details {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockWorkDetailRepo) DeleteByReport(_ context.Context, reportID uint) error {
	for id, d := range m.details {
		if d.ReportID == reportID {
			delete(m.details, id)
		}
	}
	return nil
}

type mockPhotoRepo struct {
	photos map[uint]*model.Photo
	nextID uint
}

func newMockPhotoRepo() *mockPhotoRepo {
	return &mockPhotoRepo{photos: make(map[uint]*model.Photo), nextID: 1}
}

func (m *mockPhotoRepo) Create(_ context.Context, p *model.Photo) error {
	if p.ID == 0 {
		p.ID = m.nextID
		m.nextID++
	}
	m.photos[p.ID] = p
	return nil
}

func (m *mockPhotoRepo) GetByID(_ context.Context, id uint) (*model.Photo, error) {
	if p, ok := m.photos[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPhotoRepo) ListByReport(_ context.Context, reportID uint) ([]model.Photo, error) {
	var out []model.Photo
	for _, p := range m.photos {
		if p.ReportID == reportID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockPhotoRepo) Update(_ context.Context, p *model.Photo) error {
	m.photos[p.ID] = p
	return nil
}

func (m *mockPhotoRepo) Delete(_ context.Context, id uint) error {
	delete(m.photos, id)
	return nil
}

type mockScheduleRepo struct {
	schedules map[uint]*model.Schedule
	nextID    uint
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[uint]*model.Schedule), nextID: 1}
}

func (m *mockScheduleRepo) Create(_ context.Context, s *model.Schedule) error {
	if s.ID == 0 {
		s.ID = m.nextID
		m.nextID++
	}
	stored := *s
	m.schedules[stored.ID] = &stored
	s.ID = stored.ID
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id uint) (*model.Schedule, error) {
	if s, ok := m.schedules[id]; ok {
		out := *s
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) List(_ context.Context, filter repository.ScheduleFilter) ([]model.Schedule, int64, error) {
	var all []model.Schedule
	for _, s := range m.schedules {
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.From != nil && s.EndDatetime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && s.StartDatetime.After(*filter.To) {
			continue
		}
		all = append(all, *s)
	}
	sortSchedules(all)
	return all, int64(len(all)), nil
}

func (m *mockScheduleRepo) ListRange(_ context.Context, from, to time.Time) ([]model.Schedule, error) {
	var out []model.Schedule
	for _, s := range m.schedules {
		if !s.StartDatetime.After(to) && !s.EndDatetime.Before(from) {
			out = append(out, *s)
		}
	}
	sortSchedules(out)
	return out, nil
}

func (m *mockScheduleRepo) ListByReport(_ context.Context, reportID uint) ([]model.Schedule, error) {
	var out []model.Schedule
	for _, s := range m.schedules {
		if s.ReportID != nil && *s.ReportID == reportID {
			out = append(out, *s)
		}
	}
	sortSchedules(out)
	return out, nil
}

func (m *mockScheduleRepo) ListNotifiable(_ context.Context) ([]model.Schedule, error) {
	var out []model.Schedule
	for _, s := range m.schedules {
		if s.NotificationEnabled && s.Status == model.ScheduleStatusPending {
			out = append(out, *s)
		}
	}
	sortSchedules(out)
	return out, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, s *model.Schedule) error {
	if _, ok := m.schedules[s.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *s
	m.schedules[s.ID] = &stored
	return nil
}

func (m *mockScheduleRepo) UpdateFields(_ context.Context, id uint, fields map[string]interface{}) error {
	s, ok := m.schedules[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for key, value := range fields {
		switch key {
		case "status":
			s.Status = value.(string)
		case "report_id":
			if value == nil {
				s.ReportID = nil
			} else {
				rid := value.(uint)
				s.ReportID = &rid
			}
		case "start_datetime":
			s.StartDatetime = value.(time.Time)
		case "end_datetime":
			s.EndDatetime = value.(time.Time)
		case "updated_at":
			s.UpdatedAt = value.(time.Time)
		}
	}
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id uint) error {
	delete(m.schedules, id)
	return nil
}

func (m *mockScheduleRepo) DeleteByReport(_ context.Context, reportID uint) error {
	for id, s := range m.schedules {
		if s.ReportID != nil && *s.ReportID == reportID {
			delete(m.schedules, id)
		}
	}
	return nil
}

func sortSchedules(xs []model.Schedule) {
	sort.Slice(xs, func(i, j int) bool {
		if !xs[i].StartDatetime.Equal(xs[j].StartDatetime) {
			return xs[i].StartDatetime.Before(xs[j].StartDatetime)
		}
		return xs[i].ID < xs[j].ID
	})
}

type mockUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == 0 {
		u.ID = m.nextID
		m.nextID++
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockUserRepo) Update(_ context.Context, u *model.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uint) error {
	delete(m.users, id)
	return nil
}

// ── テスト用フィクスチャ ──

// testRepos 個々の mock への参照を残したまま Repository 集約を組み立てる
type testRepos struct {
	customers   *mockCustomerRepo
	properties  *mockPropertyRepo
	aircons     *mockAirConRepo
	workItems   *mockWorkItemRepo
	reports     *mockReportRepo
	workTimes   *mockWorkTimeRepo
	workDetails *mockWorkDetailRepo
	photos      *mockPhotoRepo
	schedules   *mockScheduleRepo
	users       *mockUserRepo
}

func newTestRepository() (*repository.Repository, *testRepos) {
	wt := newMockWorkTimeRepo()
	wd := newMockWorkDetailRepo()
	ph := newMockPhotoRepo()

	mocks := &testRepos{
		customers:   newMockCustomerRepo(),
		properties:  newMockPropertyRepo(),
		aircons:     newMockAirConRepo(),
		workItems:   newMockWorkItemRepo(),
		reports:     newMockReportRepo(wt, wd, ph),
		workTimes:   wt,
		workDetails: wd,
		photos:      ph,
		schedules:   newMockScheduleRepo(),
		users:       newMockUserRepo(),
	}

	repo := &repository.Repository{
		Customer:       mocks.customers,
		Property:       mocks.properties,
		AirConditioner: mocks.aircons,
		WorkItem:       mocks.workItems,
		Report:         mocks.reports,
		WorkTime:       mocks.workTimes,
		WorkDetail:     mocks.workDetails,
		Photo:          mocks.photos,
		Schedule:       mocks.schedules,
		User:           mocks.users,
	}
	return repo, mocks
}
