package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stayhub/models"
)

func TestUpsertSkipsUnchangedCells(t *testing.T) {
	db := setupTestDB(t)
	store := NewAvailabilityStore(db)
	property, roomType := seedProperty(t, db)

	rates, err := models.SerializeRates([]models.RatePlan{
		{RateID: 1, Prices: []models.OccupancyPrice{{Occupancy: 2, Price: 100}}},
	})
	require.NoError(t, err)

	rows := []models.Availability{
		{PropertyID: property.ID, RoomTypeID: roomType.ID, Date: date(t, "2025-01-01"), Availability: 5, Rates: rates},
		{PropertyID: property.ID, RoomTypeID: roomType.ID, Date: date(t, "2025-01-02"), Availability: 3, Rates: rates},
	}
	require.NoError(t, store.Upsert(rows))

	var first []models.Availability
	require.NoError(t, db.Order("date asc").Find(&first).Error)
	require.Len(t, first, 2)

	// Ghi lại y nguyên: không update, không insert
	require.NoError(t, store.Upsert(rows))
	var second []models.Availability
	require.NoError(t, db.Order("date asc").Find(&second).Error)
	require.Len(t, second, 2)
	for i := range first {
		require.Equal(t, first[i].UpdatedAt, second[i].UpdatedAt)
	}

	// Đổi tồn kho một ô: chỉ ô đó được update
	rows[0].Availability = 4
	require.NoError(t, store.Upsert(rows))
	var changed models.Availability
	require.NoError(t, db.Where("date = ?", date(t, "2025-01-01")).First(&changed).Error)
	require.Equal(t, 4, changed.Availability)
}

func TestUpsertResolvesConflictOnNaturalKey(t *testing.T) {
	db := setupTestDB(t)
	store := NewAvailabilityStore(db)
	propertyA, roomTypeA := seedProperty(t, db)

	propertyB := models.Property{OwnerID: 2, Name: "Hotel Norte", Active: true}
	require.NoError(t, db.Create(&propertyB).Error)
	roomTypeB := models.RoomType{PropertyID: &propertyB.ID, ExternalID: "DLX", Name: "Deluxe"}
	require.NoError(t, db.Create(&roomTypeB).Error)
	require.NoError(t, db.Create(&models.Availability{
		PropertyID: propertyB.ID, RoomTypeID: roomTypeB.ID,
		Date: date(t, "2025-01-01"), Availability: 7,
	}).Error)

	// Batch lẫn hai property: ô của B không nằm trong existing được
	// load (load theo property của batch), nhánh insert phải dựa vào
	// on-conflict để update thay vì lỗi duplicate key
	rows := []models.Availability{
		{PropertyID: propertyA.ID, RoomTypeID: roomTypeA.ID, Date: date(t, "2025-01-01"), Availability: 5},
		{PropertyID: propertyB.ID, RoomTypeID: roomTypeB.ID, Date: date(t, "2025-01-01"), Availability: 2},
	}
	require.NoError(t, store.Upsert(rows))

	var count int64
	require.NoError(t, db.Model(&models.Availability{}).Count(&count).Error)
	require.EqualValues(t, 2, count)

	var cellB models.Availability
	require.NoError(t, db.Where("property_id = ?", propertyB.ID).First(&cellB).Error)
	require.Equal(t, 2, cellB.Availability)
}

func TestExistingForFilters(t *testing.T) {
	db := setupTestDB(t)
	store := NewAvailabilityStore(db)
	property, roomType := seedProperty(t, db)
	seedAvailability(t, db, property, roomType, "2025-01-01", "2025-01-05", 5, 100)

	rows, err := store.ExistingFor(date(t, "2025-01-02"), date(t, "2025-01-04"), &property.ID, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2) // Nửa khoảng: check-out không tính

	other := uint(9999)
	rows, err = store.ExistingFor(date(t, "2025-01-02"), date(t, "2025-01-04"), &other, nil)
	require.NoError(t, err)
	require.Empty(t, rows)

	rows, err = store.ExistingFor(date(t, "2025-01-01"), date(t, "2025-01-05"), &property.ID, &roomType.ID)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	require.NotNil(t, rows[0].RoomType)
	require.Equal(t, "Deluxe", rows[0].RoomType.Name)
}
