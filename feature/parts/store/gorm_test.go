package store

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"parts-manager/feature/parts/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*Gorm, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return New(gormDB), mock
}

func partColumns() []string {
	return []string{"id", "business_ref", "name", "category", "machine_model",
		"machine_variant", "product_type", "model", "tag", "unit", "location",
		"note", "image_url", "machine_tag", "quantity", "created_at", "updated_at"}
}

func partRow(id int, ref, name string, qty int) []driver.Value {
	now := time.Now()
	return []driver.Value{id, ref, name, "", "", "", "", "", "", "", "", "", "", "", qty, now, now}
}

func TestGetByRef(t *testing.T) {
	s, mock := setupMockDB(t)

	rows := sqlmock.NewRows(partColumns()).AddRow(partRow(1, "A-100", "Bearing", 5)...)
	mock.ExpectQuery("SELECT \\* FROM `parts` WHERE business_ref = \\?").
		WithArgs("A-100", 1).
		WillReturnRows(rows)

	part, err := s.GetByRef(context.Background(), "A-100")
	require.NoError(t, err)
	assert.Equal(t, uint(1), part.ID)
	assert.Equal(t, "A-100", part.BusinessRef)
	assert.Equal(t, 5, part.Quantity)
}

func TestGetByRef_NotFound(t *testing.T) {
	s, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `parts` WHERE business_ref = \\?").
		WillReturnRows(sqlmock.NewRows(partColumns()))

	_, err := s.GetByRef(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInsert(t *testing.T) {
	s, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `parts`").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	part := &models.Part{BusinessRef: "A-100", Name: "Bearing", Quantity: 5}
	err := s.Insert(context.Background(), part)
	require.NoError(t, err)
	assert.Equal(t, uint(7), part.ID)
}

func TestInsert_Conflict(t *testing.T) {
	s, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `parts`").
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()

	err := s.Insert(context.Background(), &models.Part{BusinessRef: "A-100"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUpdateFields_Partial(t *testing.T) {
	s, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `parts` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.UpdateFields(context.Background(), 3, map[string]any{"quantity": 9})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateFields_NotFound(t *testing.T) {
	s, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `parts` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `parts` WHERE id = \\?").
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	err := s.UpdateFields(context.Background(), 42, map[string]any{"name": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// An update that changes nothing reports zero affected rows on MySQL even
// though the row exists. Re-importing identical data must not look like a
// missing part.
func TestUpdateFields_NoChangeIsNotMissing(t *testing.T) {
	s, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `parts` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `parts` WHERE id = \\?").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := s.UpdateFields(context.Background(), 3, map[string]any{"quantity": 9})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateFields_Empty(t *testing.T) {
	s, mock := setupMockDB(t)

	// No fields means no statements at all.
	err := s.UpdateFields(context.Background(), 3, map[string]any{})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByID_CascadesCompatibility(t *testing.T) {
	s, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `part_machines` WHERE part_id = \\?").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `parts` WHERE `parts`.`id` = \\?").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.DeleteByID(context.Background(), 3)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByID_NotFound(t *testing.T) {
	s, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `part_machines` WHERE part_id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM `parts` WHERE `parts`.`id` = \\?").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := s.DeleteByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetWithMachines(t *testing.T) {
	s, mock := setupMockDB(t)

	rows := sqlmock.NewRows(partColumns()).AddRow(partRow(3, "A-100", "Bearing", 5)...)
	mock.ExpectQuery("SELECT \\* FROM `parts` WHERE `parts`.`id` = \\?").
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT `machine_id` FROM `part_machines` WHERE part_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"machine_id"}).AddRow(1).AddRow(4))

	part, machineIDs, err := s.GetWithMachines(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "A-100", part.BusinessRef)
	assert.Equal(t, []uint{1, 4}, machineIDs)
}

func TestListPaged_Defaults(t *testing.T) {
	s, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `parts`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	rows := sqlmock.NewRows(partColumns()).
		AddRow(partRow(1, "A-100", "Bearing", 5)...).
		AddRow(partRow(2, "A-200", "Belt", 0)...)
	mock.ExpectQuery("SELECT \\* FROM `parts` ORDER BY id LIMIT \\?").
		WillReturnRows(rows)

	page, err := s.ListPaged(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Len(t, page.Rows, 2)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 50, page.Limit)
}

func TestListPaged_SearchAndStock(t *testing.T) {
	s, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `parts` WHERE \\(LOWER\\(name\\) LIKE \\? OR LOWER\\(business_ref\\) LIKE \\? OR LOWER\\(tag\\) LIKE \\?\\) AND quantity >= \\?").
		WithArgs("%bear%", "%bear%", "%bear%", 5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	rows := sqlmock.NewRows(partColumns()).AddRow(partRow(1, "A-100", "Bearing", 5)...)
	mock.ExpectQuery("SELECT \\* FROM `parts` WHERE").
		WillReturnRows(rows)

	page, err := s.ListPaged(context.Background(), Filter{Search: "Bear", Stock: StockOK, Page: 1, Limit: 24})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 24, page.Limit)
}

func TestListPaged_StockBuckets(t *testing.T) {
	tests := []struct {
		name      string
		stock     string
		predicate string
		args      []driver.Value
	}{
		{"ok is five and up", StockOK, "quantity >= \\?", []driver.Value{5}},
		{"low is one through four", StockLow, "quantity BETWEEN \\? AND \\?", []driver.Value{1, 4}},
		{"zero is exactly none", StockZero, "quantity = \\?", []driver.Value{0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, mock := setupMockDB(t)

			mock.ExpectQuery("SELECT count\\(\\*\\) FROM `parts` WHERE " + tc.predicate).
				WithArgs(tc.args...).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
			mock.ExpectQuery("SELECT \\* FROM `parts` WHERE " + tc.predicate).
				WillReturnRows(sqlmock.NewRows(partColumns()).AddRow(partRow(1, "A-100", "Bearing", 5)...))

			page, err := s.ListPaged(context.Background(), Filter{Stock: tc.stock})
			require.NoError(t, err)
			assert.Equal(t, int64(1), page.Total)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListPaged_ClampsLimit(t *testing.T) {
	s, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `parts`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT \\* FROM `parts` ORDER BY id LIMIT \\?").
		WillReturnRows(sqlmock.NewRows(partColumns()))

	page, err := s.ListPaged(context.Background(), Filter{Page: 0, Limit: 100000})
	require.NoError(t, err)
	assert.Equal(t, 200, page.Limit)
	assert.Equal(t, 1, page.Page)
}

func TestListPaged_MachineTriple(t *testing.T) {
	s, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `parts` WHERE category = \\? AND machine_model = \\? AND machine_variant = \\?").
		WithArgs("hydraulics", "HX-90", "B").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	// Count carries the same args minus pagination; keep the row query loose.
	rows := sqlmock.NewRows(partColumns()).AddRow(partRow(9, "H-1", "Seal", 2)...)
	mock.ExpectQuery("SELECT \\* FROM `parts` WHERE").
		WillReturnRows(rows)

	page, err := s.ListPaged(context.Background(), Filter{
		Category:       "hydraulics",
		MachineModel:   "HX-90",
		MachineVariant: "B",
		Limit:          50,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "H-1", page.Rows[0].BusinessRef)
}

func TestReplaceCompatibility(t *testing.T) {
	s, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `part_machines` WHERE part_id = \\?").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 2))
	// Duplicate machine id 2 collapses to a single pair.
	mock.ExpectExec("INSERT INTO `part_machines`").
		WithArgs(3, 1, 3, 2).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := s.ReplaceCompatibility(context.Background(), 3, []uint{1, 2, 2})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceCompatibility_Empty(t *testing.T) {
	s, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `part_machines` WHERE part_id = \\?").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.ReplaceCompatibility(context.Background(), 3, nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceCompatibility_RollsBackOnFailure(t *testing.T) {
	s, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `part_machines` WHERE part_id = \\?").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO `part_machines`").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := s.ReplaceCompatibility(context.Background(), 3, []uint{5})
	assert.Error(t, err)
	// The delete must never be visible on its own.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMachines(t *testing.T) {
	s, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "model", "variant"}).
		AddRow(1, "HX-90", "A").
		AddRow(2, "HX-90", "B")
	mock.ExpectQuery("SELECT \\* FROM `machines` ORDER BY model, variant").
		WillReturnRows(rows)

	machines, err := s.ListMachines(context.Background())
	require.NoError(t, err)
	require.Len(t, machines, 2)
	assert.Equal(t, "HX-90", machines[0].Model)
}
