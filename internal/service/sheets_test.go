package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/gorm"

	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/apperr"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/model"
)

func sheetColumns() []string {
	return []string{"id", "warehouse_id", "user_id", "emission_date", "serie", "sheet_number", "state"}
}

func newSheetService(db *gorm.DB) *SheetService {
	conns := &stubSource{dbs: map[string]*gorm.DB{"empresa1": db}}
	users := NewUserService(conns, testRegistry(), NewEntityService(conns))
	return NewSheetService(conns, NewWarehouseService(conns), users)
}

// expectSheetPrereqs queues the issuing-user and warehouse validation lookups
func expectSheetPrereqs(mock sqlmock.Sqlmock) {
	expectUserByID(mock, sqlmock.NewRows(userColumns()).
		AddRow(7, "alice", "hash", "admin", "empresa1", nil))
	mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE "warehouses"."id" =`).
		WillReturnRows(sqlmock.NewRows(warehouseColumns()).
			AddRow(1, "Central", "", true, 1, nil))
	mock.ExpectQuery(`SELECT \* FROM "inventory_sheets" WHERE "inventory_sheets"."warehouse_id" =`).
		WillReturnRows(sqlmock.NewRows(sheetColumns()))
}

func TestSheetCreate(t *testing.T) {
	db, mock := newMockDB(t)
	expectSheetPrereqs(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "inventory_sheets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery(`INSERT INTO "inventory_sheet_details"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	mock.ExpectCommit()

	sheets := newSheetService(db)

	sheet, err := sheets.Create(context.Background(), "empresa1", SheetInput{
		Sheet: SheetHeaderInput{
			WarehouseID:  1,
			EmissionDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Serie:        "A",
			SheetNumber:  "000123",
		},
		Details: []SheetDetailInput{
			{ProductID: "arroz-kg", Quantity: 10, Unit: "kilogramos", Price: 4.5},
			{ProductID: "azucar-kg", Quantity: 5, Unit: "kilogramos", Price: 3.2},
		},
	}, 7)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sheet.ID != 10 {
		t.Errorf("ID = %d, want 10", sheet.ID)
	}
	if sheet.State != model.SheetRegistered {
		t.Errorf("State = %q, want registered by default", sheet.State)
	}
	if len(sheet.Details) != 2 {
		t.Errorf("len(Details) = %d, want 2", len(sheet.Details))
	}
}

func TestSheetCreateWarehouseNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	expectUserByID(mock, sqlmock.NewRows(userColumns()).
		AddRow(7, "alice", "hash", "admin", "empresa1", nil))
	mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE "warehouses"."id" =`).
		WillReturnRows(sqlmock.NewRows(warehouseColumns()))

	sheets := newSheetService(db)

	_, err := sheets.Create(context.Background(), "empresa1", SheetInput{
		Sheet: SheetHeaderInput{WarehouseID: 99},
	}, 7)
	if apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("kind = %v, want NotFound", apperr.KindOf(err))
	}
}

func TestSheetCreateUserNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"."id" =`).
		WillReturnRows(sqlmock.NewRows(userColumns()))

	sheets := newSheetService(db)

	_, err := sheets.Create(context.Background(), "empresa1", SheetInput{
		Sheet: SheetHeaderInput{WarehouseID: 1},
	}, 99)
	if apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("kind = %v, want NotFound", apperr.KindOf(err))
	}
}

func TestSheetFindAllFiltersByState(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "inventory_sheets"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT .* FROM "inventory_sheets" LEFT JOIN`).
		WillReturnRows(sqlmock.NewRows(sheetColumns()).
			AddRow(10, 1, 7, time.Now(), "A", "000123", "finished"))
	mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE "warehouses"."id"`).
		WillReturnRows(sqlmock.NewRows(warehouseColumns()).
			AddRow(1, "Central", "", true, 1, nil))
	mock.ExpectQuery(`SELECT \* FROM "inventory_sheet_details" WHERE "inventory_sheet_details"."sheet_id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sheet_id", "product_id", "quantity", "unit", "price"}).
			AddRow(1, 10, "arroz-kg", 10, "kilogramos", 4.5))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"."id"`).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(7, "alice", "hash", "admin", "empresa1", nil))
	mock.ExpectQuery(`SELECT \* FROM "users_warehouses"`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "warehouse_id"}))

	sheets := newSheetService(db)

	page, err := sheets.FindAll(context.Background(), "empresa1", SheetFilter{State: model.SheetFinished})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if page.Total != 1 || len(page.Data) != 1 {
		t.Fatalf("unexpected page: total=%d len=%d", page.Total, len(page.Data))
	}
	sheet := page.Data[0]
	if sheet.State != model.SheetFinished {
		t.Errorf("State = %q, want finished", sheet.State)
	}
	if sheet.Warehouse == nil || sheet.Warehouse.Name != "Central" {
		t.Errorf("warehouse not preloaded: %+v", sheet.Warehouse)
	}
	if len(sheet.Details) != 1 {
		t.Errorf("len(Details) = %d, want 1", len(sheet.Details))
	}
}

func TestSheetRemove(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "inventory_sheets" WHERE "inventory_sheets"."id" =`).
		WillReturnRows(sqlmock.NewRows(sheetColumns()).
			AddRow(10, 1, 7, time.Now(), "A", "000123", "registered"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "inventory_sheet_details" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "inventory_sheets" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	sheets := newSheetService(db)

	if err := sheets.Remove(context.Background(), "empresa1", 10); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
