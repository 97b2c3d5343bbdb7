package likes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"OperatorsClub/src/core/database"
	"OperatorsClub/src/core/middleware"
	"OperatorsClub/src/core/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func seedCompany(t *testing.T, db *gorm.DB, id, likeCount int) {
	t.Helper()
	require.NoError(t, db.Create(&models.Company{ID: id, Name: "Acme", LikeCount: likeCount}).Error)
}

func likeRowCount(t *testing.T, db *gorm.DB, kind models.EntityKind, entityID int) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Like{}).
		Where("entity_kind = ? AND entity_id = ?", kind, entityID).Count(&n).Error)
	return n
}

func TestToggleLikeThenUnlike(t *testing.T) {
	db := setupDB(t)
	seedCompany(t, db, 1, 5)
	svc := NewService(db)

	result, err := svc.Toggle(models.EntityKindCompany, 1, "u@example.com")
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 6, result.LikeCount)
	assert.EqualValues(t, 1, likeRowCount(t, db, models.EntityKindCompany, 1))

	result, err = svc.Toggle(models.EntityKindCompany, 1, "u@example.com")
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, 5, result.LikeCount)
	assert.EqualValues(t, 0, likeRowCount(t, db, models.EntityKindCompany, 1))
}

func TestToggleParityRestoresCount(t *testing.T) {
	db := setupDB(t)
	seedCompany(t, db, 1, 3)
	svc := NewService(db)

	for i := 0; i < 4; i++ {
		_, err := svc.Toggle(models.EntityKindCompany, 1, "u@example.com")
		require.NoError(t, err)
	}

	var company models.Company
	require.NoError(t, db.First(&company, 1).Error)
	assert.Equal(t, 3, company.LikeCount)
	assert.EqualValues(t, 0, likeRowCount(t, db, models.EntityKindCompany, 1))
}

func TestToggleNeverDoubleInserts(t *testing.T) {
	db := setupDB(t)
	seedCompany(t, db, 1, 0)
	svc := NewService(db)

	for i := 0; i < 3; i++ {
		_, err := svc.Toggle(models.EntityKindCompany, 1, "u@example.com")
		require.NoError(t, err)
		assert.LessOrEqual(t, likeRowCount(t, db, models.EntityKindCompany, 1), int64(1))
	}
}

func TestToggleUnknownEntity(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	_, err := svc.Toggle(models.EntityKindRepo, 42, "u@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestToggleUnauthenticatedDoesNotTouchStore(t *testing.T) {
	db := setupDB(t)
	seedCompany(t, db, 1, 5)
	svc := NewService(db)

	_, err := svc.Toggle(models.EntityKindCompany, 1, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthenticated")

	var company models.Company
	require.NoError(t, db.First(&company, 1).Error)
	assert.Equal(t, 5, company.LikeCount)
	assert.EqualValues(t, 0, likeRowCount(t, db, models.EntityKindCompany, 1))
}

func TestUnlikeClampsCountAtZero(t *testing.T) {
	db := setupDB(t)
	// Drifted state: a like row exists but the cached count already reads 0
	seedCompany(t, db, 1, 0)
	require.NoError(t, db.Create(&models.Like{
		EntityKind: models.EntityKindCompany, EntityID: 1, UserIdentity: "u@example.com",
	}).Error)
	svc := NewService(db)

	result, err := svc.Toggle(models.EntityKindCompany, 1, "u@example.com")
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, 0, result.LikeCount)
}

func TestTwoUsersRecordsStayExact(t *testing.T) {
	db := setupDB(t)
	seedCompany(t, db, 1, 10)
	svc := NewService(db)

	_, err := svc.Toggle(models.EntityKindCompany, 1, "a@example.com")
	require.NoError(t, err)
	_, err = svc.Toggle(models.EntityKindCompany, 1, "b@example.com")
	require.NoError(t, err)

	assert.EqualValues(t, 2, likeRowCount(t, db, models.EntityKindCompany, 1))
	var company models.Company
	require.NoError(t, db.First(&company, 1).Error)
	assert.Equal(t, 12, company.LikeCount)
}

func TestAtomicAdjustUnsupportedOffPostgres(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	_, err := svc.tryAtomicAdjust("companies", 1, 1)
	assert.ErrorIs(t, err, errAtomicUnsupported)
}

func TestFallbackAdjustClampsAtZero(t *testing.T) {
	db := setupDB(t)
	seedCompany(t, db, 1, 0)
	svc := NewService(db)

	count, err := svc.fallbackAdjust("companies", 1, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func mintToken(t *testing.T, secret, sub, email string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub,
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func setupApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	app := fiber.New()
	handler := NewHandler(db)
	app.Post("/api/v1/repos/:id/like", middleware.Protected(), handler.LikeRepo)
	app.Post("/api/v1/companies/:id/like", middleware.Protected(), handler.LikeCompany)
	return app
}

func TestLikeEndpointRejectsMissingToken(t *testing.T) {
	db := setupDB(t)
	seedCompany(t, db, 1, 0)
	app := setupApp(t, db)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/companies/1/like", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.EqualValues(t, 0, likeRowCount(t, db, models.EntityKindCompany, 1))
}

func TestLikeEndpointRejectsNonNumericID(t *testing.T) {
	db := setupDB(t)
	app := setupApp(t, db)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/repos/abc/like", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "test-secret", "user-1", "u@example.com"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLikeEndpointMissingEntity(t *testing.T) {
	db := setupDB(t)
	app := setupApp(t, db)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/repos/99/like", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "test-secret", "user-1", "u@example.com"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLikeEndpointAcceptsBearerToken(t *testing.T) {
	db := setupDB(t)
	seedCompany(t, db, 1, 5)
	app := setupApp(t, db)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/companies/1/like", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "test-secret", "user-1", "u@example.com"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, likeRowCount(t, db, models.EntityKindCompany, 1))
}

func TestLikeEndpointAcceptsSessionCookie(t *testing.T) {
	db := setupDB(t)
	seedCompany(t, db, 1, 0)
	app := setupApp(t, db)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/companies/1/like", nil)
	req.AddCookie(&http.Cookie{
		Name:  "sb-access-token",
		Value: mintToken(t, "test-secret", "user-1", "u@example.com"),
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, likeRowCount(t, db, models.EntityKindCompany, 1))
}
