package entries

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalajat/archive/internal/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Insert(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := regexp.MustCompile(`INSERT INTO entries .* RETURNING id`)
	mock.ExpectQuery(q.String()).
		WithArgs("e1", "سالم", "قالها", "slip", int64(100), "", "u1", "ضيف", "", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("e1"))

	created, err := repo.Create(context.Background(), &models.Entry{
		ID:         "e1",
		VictimName: "سالم",
		Content:    "قالها",
		Category:   models.CategorySlip,
		Timestamp:  100,
		UserID:     "u1",
		UserName:   "ضيف",
	})
	require.NoError(t, err)
	assert.Equal(t, "e1", created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO entries`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(context.Background(), &models.Entry{
		ID: "e1", Content: "c", Category: models.CategorySlip, Timestamp: 1,
	})
	assert.Error(t, err)
}

func TestDelete_ZeroRowsIsNoError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM entries WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), "missing"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_OrderedSelect(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	cols := []string{"id", "victim_name", "content", "category", "ts", "analysis", "user_id", "user_name", "user_email", "user_photo"}
	mock.ExpectQuery(`SELECT .* FROM entries\s+ORDER BY ts DESC, seq DESC`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("e2", "B", "newer", "joke", int64(200), "", "", "", "", "").
			AddRow("e1", "A", "older", "slip", int64(100), "تحليل", "u1", "n", "e", "p"))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "e2", got[0].ID)
	assert.Equal(t, models.CategoryJoke, got[0].Category)
	assert.Equal(t, "تحليل", got[1].Analysis)
}

func TestList_EmptyIsEmptySliceNotNil(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	cols := []string{"id", "victim_name", "content", "category", "ts", "analysis", "user_id", "user_name", "user_email", "user_photo"}
	mock.ExpectQuery(`SELECT .* FROM entries`).
		WillReturnRows(sqlmock.NewRows(cols))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
