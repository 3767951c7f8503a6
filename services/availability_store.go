package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stayhub/models"
)

// AvailabilityStore quản lý các ô lịch tồn kho (property, room_type, date)
type AvailabilityStore struct {
	DB *gorm.DB
}

func NewAvailabilityStore(db *gorm.DB) *AvailabilityStore {
	return &AvailabilityStore{DB: db}
}

// cellKey định danh một ô lịch duy nhất
func cellKey(propertyID, roomTypeID uint, date time.Time) string {
	return fmt.Sprintf("%d:%d:%s", propertyID, roomTypeID, date.Format("2006-01-02"))
}

// ExistingFor trả về các ô có date thuộc [checkIn, checkOut), filter
// theo property/room type nếu truyền vào
func (s *AvailabilityStore) ExistingFor(checkIn, checkOut time.Time, propertyID, roomTypeID *uint) ([]models.Availability, error) {
	query := s.DB.Preload("RoomType").
		Where("date >= ? AND date < ?", checkIn, checkOut)
	if propertyID != nil {
		query = query.Where("property_id = ?", *propertyID)
	}
	if roomTypeID != nil {
		query = query.Where("room_type_id = ?", *roomTypeID)
	}

	var rows []models.Availability
	if err := query.Order("date asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert ghi một loạt ô lịch: ô đã có và không đổi thì bỏ qua, ô đổi
// thì update, ô mới thì insert với on-conflict trên khóa tự nhiên.
// Mỗi ô chỉ đi một nhánh create hoặc update, không bao giờ cả hai.
func (s *AvailabilityStore) Upsert(rows []models.Availability) error {
	if len(rows) == 0 {
		return nil
	}

	// Load các ô hiện có trong khoảng ngày của batch để so sánh
	minDate, maxDate := rows[0].Date, rows[0].Date
	for _, row := range rows {
		if row.Date.Before(minDate) {
			minDate = row.Date
		}
		if row.Date.After(maxDate) {
			maxDate = row.Date
		}
	}

	var existing []models.Availability
	if err := s.DB.
		Where("property_id = ? AND date >= ? AND date <= ?",
			rows[0].PropertyID, minDate, maxDate).
		Find(&existing).Error; err != nil {
		return err
	}

	existingByKey := make(map[string]models.Availability, len(existing))
	for _, row := range existing {
		existingByKey[cellKey(row.PropertyID, row.RoomTypeID, row.Date)] = row
	}

	var toCreate []models.Availability
	var toUpdate []models.Availability
	for _, row := range rows {
		current, found := existingByKey[cellKey(row.PropertyID, row.RoomTypeID, row.Date)]
		if !found {
			toCreate = append(toCreate, row)
			continue
		}
		if current.Availability == row.Availability && current.Rates == row.Rates {
			continue // Không đổi, tránh write thừa
		}
		row.ID = current.ID
		toUpdate = append(toUpdate, row)
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, row := range toUpdate {
			if err := tx.Model(&models.Availability{}).Where("id = ?", row.ID).
				Updates(map[string]interface{}{
					"availability": row.Availability,
					"rates":        row.Rates,
				}).Error; err != nil {
				return err
			}
		}
		if len(toCreate) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "property_id"}, {Name: "room_type_id"}, {Name: "date"},
				},
				DoUpdates: clause.AssignmentColumns([]string{"availability", "rates"}),
			}).Create(&toCreate).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
