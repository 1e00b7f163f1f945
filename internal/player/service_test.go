package player

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SlpAus/zero-to-ninety-nine-backend/internal/platform/database"
)

// useTestDB 把全局DB替换为一份内存SQLite，测试结束后还原
func useTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Player{}))

	previous := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = previous })
}

func TestCreateProvisionalPlayer(t *testing.T) {
	id, err := CreateProvisionalPlayer()
	require.NoError(t, err)

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	// 连续生成的UUID互不相同
	other, err := CreateProvisionalPlayer()
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("0198a2b4-0000-7000-8000-000000000001"))
	assert.False(t, IsValidUUID(""))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID("0198a2b4-0000-7000-8000"))
}

func TestActivatePlayer_AndIsKnown(t *testing.T) {
	useTestDB(t)

	id, err := CreateProvisionalPlayer()
	require.NoError(t, err)

	// 临时UUID在激活前是未知的
	known, err := IsKnownPlayer(id)
	require.NoError(t, err)
	assert.False(t, known)

	require.NoError(t, ActivatePlayer(id))

	known, err = IsKnownPlayer(id)
	require.NoError(t, err)
	assert.True(t, known)

	// 重复激活不是错误
	assert.NoError(t, ActivatePlayer(id))
}

func TestIsKnownPlayer_EmptyID(t *testing.T) {
	useTestDB(t)

	known, err := IsKnownPlayer("")
	require.NoError(t, err)
	assert.False(t, known)
}
