package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/takanoridomae/Cleaning/internal/dto"
)

func setupTestCustomerService() (CustomerService, *testRepos) {
	repo, mocks := newTestRepository()
	svc := NewCustomerService(repo, zap.NewNop())
	return svc, mocks
}

func TestCustomerService_CreateAndGet(t *testing.T) {
	svc, _ := setupTestCustomerService()

	created, err := svc.Create(context.Background(), &dto.CreateCustomerRequest{
		Name:        "田中",
		CompanyName: "田中工務店",
		Email:       "tanaka@example.com",
	})
	if err != nil {
		t.Fatalf("作成に失敗: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("ID が採番されるはず")
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("取得に失敗: %v", err)
	}
	if got.Name != "田中" || got.CompanyName != "田中工務店" {
		t.Errorf("内容不一致: %+v", got)
	}
	if got.DisplayName() != "田中（田中工務店）" {
		t.Errorf("表示名不一致: %q", got.DisplayName())
	}
}

func TestCustomerService_Get_NotFound(t *testing.T) {
	svc, _ := setupTestCustomerService()
	if _, err := svc.Get(context.Background(), 999); !errors.Is(err, ErrCustomerNotFound) {
		t.Errorf("ErrCustomerNotFound を期待: %v", err)
	}
}

func TestCustomerService_Update_PartialFields(t *testing.T) {
	svc, _ := setupTestCustomerService()
	created, err := svc.Create(context.Background(), &dto.CreateCustomerRequest{
		Name: "田中", Phone: "090-0000-0000",
	})
	if err != nil {
		t.Fatalf("前提の作成に失敗: %v", err)
	}

	email := "new@example.com"
	updated, err := svc.Update(context.Background(), created.ID, &dto.UpdateCustomerRequest{
		Email: &email,
	})
	if err != nil {
		t.Fatalf("更新に失敗: %v", err)
	}
	if updated.Email != "new@example.com" {
		t.Errorf("メール更新不一致: %q", updated.Email)
	}
	// 指定しなかったフィールドは保持される
	if updated.Name != "田中" || updated.Phone != "090-0000-0000" {
		t.Errorf("未指定フィールドが変わってはならない: %+v", updated)
	}
}

func TestCustomerService_Delete(t *testing.T) {
	svc, _ := setupTestCustomerService()
	created, err := svc.Create(context.Background(), &dto.CreateCustomerRequest{Name: "田中"})
	if err != nil {
		t.Fatalf("前提の作成に失敗: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("削除に失敗: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, ErrCustomerNotFound) {
		t.Error("削除後は取得できないはず")
	}
	// 二重削除は not found
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, ErrCustomerNotFound) {
		t.Errorf("ErrCustomerNotFound を期待: %v", err)
	}
}

func TestCustomerService_List(t *testing.T) {
	svc, _ := setupTestCustomerService()
	for _, name := range []string{"田中", "佐藤", "鈴木"} {
		if _, err := svc.Create(context.Background(), &dto.CreateCustomerRequest{Name: name}); err != nil {
			t.Fatalf("前提の作成に失敗: %v", err)
		}
	}

	list, total, err := svc.List(context.Background(), &dto.CustomerListRequest{})
	if err != nil {
		t.Fatalf("一覧取得に失敗: %v", err)
	}
	if total != 3 || len(list) != 3 {
		t.Errorf("3件を期待: total=%d len=%d", total, len(list))
	}

	// 検索
	list, _, err = svc.List(context.Background(), &dto.CustomerListRequest{Query: "佐藤"})
	if err != nil {
		t.Fatalf("検索に失敗: %v", err)
	}
	if len(list) != 1 || list[0].Name != "佐藤" {
		t.Errorf("検索結果不一致: %+v", list)
	}
}
