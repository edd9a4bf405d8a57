package service

import (
	"context"
	"testing"
	"time"

	"todolist-be/internal/dto"
	"todolist-be/internal/model"
	"todolist-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway in-memory sqlite database with the same gorm
// settings the real stack uses, most importantly TranslateError so unique
// violations surface as gorm.ErrDuplicatedKey on both engines.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// a second pooled connection would get its own empty :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Task{}))
	return db
}

func newTestFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()
	return unitofwork.NewRepositoryFactory(newTestDB(t))
}

func newTestAuthService(t *testing.T) IAuthService {
	t.Helper()
	return NewAuthService(newTestFactory(t), nil, 5*time.Second)
}

func registerUser(t *testing.T, svc IAuthService, username, password string) int64 {
	t.Helper()
	res, err := svc.Register(context.Background(), &dto.RegisterRequest{Username: username, Password: password})
	require.NoError(t, err)
	return res.Id
}
