package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRow struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
}

func TestConnect_SQLitePathIsUsable(t *testing.T) {
	db, err := Connect("file:connect_test?mode=memory&cache=shared")
	assert.NoError(t, err)

	sqlDB, err := db.DB()
	assert.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())

	assert.NoError(t, Migrate(db, &sampleRow{}))
	assert.NoError(t, db.Create(&sampleRow{Name: "seeded"}).Error)

	var got sampleRow
	assert.NoError(t, db.First(&got, "name = ?", "seeded").Error)
	assert.Equal(t, "seeded", got.Name)
}
