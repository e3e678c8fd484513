package storage_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"overcooked-cart/cart-svc/internal/domain"
	"overcooked-cart/cart-svc/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresStore(t *testing.T) (*storage.PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return storage.NewPostgresStore(db), sqlMock
}

func TestPostgresStore_Read(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock)
		wantValue []byte
		wantOK    bool
		wantErr   error
	}{
		{
			name: "present",
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery("SELECT value FROM kv_store").
					WithArgs("client:a:cart").
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[]`)))
			},
			wantValue: []byte(`[]`),
			wantOK:    true,
		},
		{
			name: "absent",
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery("SELECT value FROM kv_store").
					WithArgs("client:a:cart").
					WillReturnError(sql.ErrNoRows)
			},
		},
		{
			name: "database error",
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery("SELECT value FROM kv_store").
					WithArgs("client:a:cart").
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: domain.ErrStorageFailure,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store, sqlMock := newPostgresStore(t)
			testCase.setupMock(sqlMock)

			value, ok, err := store.Read(context.Background(), "client:a:cart")

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, testCase.wantOK, ok)
			assert.Equal(t, testCase.wantValue, value)
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})
	}
}

func TestPostgresStore_WriteUpserts(t *testing.T) {
	store, sqlMock := newPostgresStore(t)

	sqlMock.ExpectExec("INSERT INTO kv_store .* ON CONFLICT \\(key\\) DO UPDATE").
		WithArgs("client:a:orders", []byte(`{"schema":"orders"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Write(context.Background(), "client:a:orders", []byte(`{"schema":"orders"}`))

	assert.NoError(t, err)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestPostgresStore_WriteError(t *testing.T) {
	store, sqlMock := newPostgresStore(t)

	sqlMock.ExpectExec("INSERT INTO kv_store").
		WillReturnError(errors.New("disk full"))

	err := store.Write(context.Background(), "client:a:cart", []byte(`[]`))

	assert.ErrorIs(t, err, domain.ErrStorageFailure)
	assert.Contains(t, err.Error(), "disk full")
}

func TestPostgresStore_Delete(t *testing.T) {
	store, sqlMock := newPostgresStore(t)

	sqlMock.ExpectExec("DELETE FROM kv_store WHERE key = \\$1").
		WithArgs("client:a:cart").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, store.Delete(context.Background(), "client:a:cart"))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestPostgresStore_EnsureSchema(t *testing.T) {
	store, sqlMock := newPostgresStore(t)

	sqlMock.ExpectExec("CREATE TABLE IF NOT EXISTS kv_store").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
