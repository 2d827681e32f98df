package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/gorm"

	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/apperr"
)

func entityColumns() []string {
	return []string{"id", "name", "doc_type", "doc_number", "address", "phone", "mobile"}
}

func newEntitySource(db *gorm.DB) ConnectionSource {
	return &stubSource{dbs: map[string]*gorm.DB{"empresa1": db}}
}

func TestEntityCreateDuplicateDocument(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "business_entities" WHERE \(doc_type = .+ AND doc_number =`).
		WillReturnRows(sqlmock.NewRows(entityColumns()).
			AddRow(1, "ACME SAC", "RUC", "20100100100", "Av. Lima 1", "", ""))

	entities := NewEntityService(newEntitySource(db))

	_, err := entities.Create(context.Background(), "empresa1", EntityInput{
		Name:      "ACME Dos",
		DocType:   "RUC",
		DocNumber: "20100100100",
	})
	if apperr.KindOf(err) != apperr.Conflict {
		t.Errorf("kind = %v, want Conflict", apperr.KindOf(err))
	}
}

func TestEntityCreate(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "business_entities" WHERE \(doc_type = .+ AND doc_number =`).
		WillReturnRows(sqlmock.NewRows(entityColumns()))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "business_entities"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectCommit()

	entities := NewEntityService(newEntitySource(db))

	entity, err := entities.Create(context.Background(), "empresa1", EntityInput{
		Name:      "ACME SAC",
		DocType:   "RUC",
		DocNumber: "20100100100",
		Address:   "Av. Lima 1",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if entity.ID != 5 {
		t.Errorf("ID = %d, want 5", entity.ID)
	}
}

func TestEntityRemoveBlockedByWarehouses(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "business_entities" WHERE "business_entities"."id" =`).
		WillReturnRows(sqlmock.NewRows(entityColumns()).
			AddRow(1, "ACME SAC", "RUC", "20100100100", "", "", ""))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "warehouses"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	entities := NewEntityService(newEntitySource(db))

	err := entities.Remove(context.Background(), "empresa1", 1)
	if apperr.KindOf(err) != apperr.Conflict {
		t.Errorf("kind = %v, want Conflict", apperr.KindOf(err))
	}
}

func TestEntityRemove(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "business_entities" WHERE "business_entities"."id" =`).
		WillReturnRows(sqlmock.NewRows(entityColumns()).
			AddRow(1, "ACME SAC", "RUC", "20100100100", "", "", ""))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "warehouses"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "business_entities" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	entities := NewEntityService(newEntitySource(db))

	if err := entities.Remove(context.Background(), "empresa1", 1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestEntityFindOneNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "business_entities" WHERE "business_entities"."id" =`).
		WillReturnRows(sqlmock.NewRows(entityColumns()))

	entities := NewEntityService(newEntitySource(db))

	_, err := entities.FindOne(context.Background(), "empresa1", 99)
	if apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("kind = %v, want NotFound", apperr.KindOf(err))
	}
}

func TestEntityFindAllOnlyUnassigned(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "business_entities" WHERE id NOT IN`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "business_entities" WHERE id NOT IN`).
		WillReturnRows(sqlmock.NewRows(entityColumns()).
			AddRow(4, "Libre SAC", "RUC", "20400400400", "", "", ""))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"."entity_id" =`).
		WillReturnRows(sqlmock.NewRows(userColumns()))

	entities := NewEntityService(newEntitySource(db))

	page, err := entities.FindAll(context.Background(), "empresa1", EntityFilter{OnlyUnassigned: true})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if page.Total != 1 || len(page.Data) != 1 {
		t.Errorf("unexpected page: total=%d len=%d", page.Total, len(page.Data))
	}
	if page.Data[0].Name != "Libre SAC" {
		t.Errorf("Name = %q, want Libre SAC", page.Data[0].Name)
	}
}
