package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"stayhub/builders"
	"stayhub/models"
	"stayhub/pms"
	"stayhub/services/logger"
	"stayhub/utils"
)

// SyncService kéo dữ liệu từ PMS vendor về local cho một property.
// Mọi lỗi adapter được absorb tại biên từng operation: log rồi trả
// false, không bao giờ propagate làm hỏng property khác trong job.
type SyncService struct {
	DB      *gorm.DB
	Factory *pms.Factory
	Store   *AvailabilityStore
	Log     logger.Logger
}

func NewSyncService(db *gorm.DB, factory *pms.Factory, store *AvailabilityStore, log logger.Logger) *SyncService {
	return &SyncService{DB: db, Factory: factory, Store: store, Log: log}
}

// SyncPropertyDetail merge metadata vendor vào PmsDataProperty local.
// Field vendor rỗng thì giữ nguyên giá trị local (field-level fallback).
func (s *SyncService) SyncPropertyDetail(ctx context.Context, prop *models.Property) bool {
	adapter, err := s.Factory.GetAdapter(prop)
	if err != nil {
		s.Log.Error("Sync detail property %d: %v", prop.ID, err)
		return false
	}

	detail, err := adapter.DownloadPropertyDetails(ctx, prop)
	if err != nil {
		s.Log.Error("Sync detail property %d: download lỗi: %v", prop.ID, err)
		return false
	}
	if detail == nil {
		s.Log.Info("Sync detail property %d: vendor không trả dữ liệu", prop.ID)
		return false
	}

	var pmsData models.PmsDataProperty
	if err := s.DB.Where("property_id = ?", prop.ID).FirstOrCreate(&pmsData, models.PmsDataProperty{PropertyID: prop.ID}).Error; err != nil {
		s.Log.Error("Sync detail property %d: %v", prop.ID, err)
		return false
	}

	updates := map[string]interface{}{}
	setIf := func(column, value string) {
		if value != "" {
			updates[column] = value
		}
	}
	setIf("pms_property_id", detail.PmsPropertyID)
	setIf("pms_property_name", detail.PmsPropertyName)
	setIf("pms_property_address", detail.PmsPropertyAddress)
	setIf("pms_property_city", detail.PmsPropertyCity)
	setIf("pms_property_province", detail.PmsPropertyProvince)
	setIf("pms_property_postal_code", detail.PmsPropertyPostalCode)
	setIf("pms_property_country", detail.PmsPropertyCountry)
	setIf("pms_property_phone", detail.PmsPropertyPhone)
	setIf("pms_property_category", detail.PmsPropertyCategory)
	if detail.PmsPropertyLatitude != 0 {
		updates["pms_property_latitude"] = detail.PmsPropertyLatitude
	}
	if detail.PmsPropertyLongitude != 0 {
		updates["pms_property_longitude"] = detail.PmsPropertyLongitude
	}
	if len(updates) == 0 {
		return true
	}

	if err := s.DB.Model(&pmsData).Updates(updates).Error; err != nil {
		s.Log.Error("Sync detail property %d: %v", prop.ID, err)
		return false
	}
	return true
}

// SyncRooms kéo danh sách phòng vendor, tạo RoomType cho mapping mới và
// upsert Room theo bộ khóa nhận dạng vendor; chỉ description được update tự do
func (s *SyncService) SyncRooms(ctx context.Context, prop *models.Property) bool {
	adapter, err := s.Factory.GetAdapter(prop)
	if err != nil {
		s.Log.Error("Sync rooms property %d: %v", prop.ID, err)
		return false
	}

	roomsByType, err := adapter.DownloadRoomList(ctx, prop)
	if err != nil {
		s.Log.Error("Sync rooms property %d: download lỗi: %v", prop.ID, err)
		return false
	}
	if len(roomsByType) == 0 {
		return false
	}

	for externalTypeID, rooms := range roomsByType {
		var roomType models.RoomType
		err := s.DB.Where("property_id = ? AND external_id = ?", prop.ID, externalTypeID).First(&roomType).Error
		if err == gorm.ErrRecordNotFound {
			typeName := externalTypeID
			if len(rooms) > 0 && rooms[0].ExternalRoomTypeName != "" {
				typeName = rooms[0].ExternalRoomTypeName
			}
			roomType = models.RoomType{PropertyID: &prop.ID, ExternalID: externalTypeID, Name: typeName}
			if err := s.DB.Create(&roomType).Error; err != nil {
				s.Log.Error("Sync rooms property %d: tạo room type %s: %v", prop.ID, externalTypeID, err)
				continue
			}
		} else if err != nil {
			s.Log.Error("Sync rooms property %d: %v", prop.ID, err)
			continue
		}

		for _, data := range rooms {
			pax := utils.ExtractPax(data.ExternalRoomTypeName)
			room := models.Room{
				PropertyID:           prop.ID,
				RoomTypeID:           &roomType.ID,
				Name:                 data.Name,
				Pax:                  pax,
				ExternalID:           data.ExternalID,
				ExternalRoomTypeID:   data.ExternalRoomTypeID,
				ExternalRoomTypeName: data.ExternalRoomTypeName,
			}
			var existing models.Room
			err := s.DB.Where(
				"property_id = ? AND name = ? AND room_type_id = ? AND external_id = ? AND external_room_type_id = ? AND external_room_type_name = ? AND pax = ?",
				prop.ID, data.Name, roomType.ID, data.ExternalID, data.ExternalRoomTypeID, data.ExternalRoomTypeName, pax,
			).First(&existing).Error
			if err == gorm.ErrRecordNotFound {
				room.Description = data.Description
				if err := s.DB.Create(&room).Error; err != nil {
					s.Log.Error("Sync rooms property %d: tạo room %s: %v", prop.ID, data.Name, err)
				}
				continue
			}
			if err != nil {
				s.Log.Error("Sync rooms property %d: %v", prop.ID, err)
				continue
			}
			if existing.Description != data.Description {
				if err := s.DB.Model(&existing).Update("description", data.Description).Error; err != nil {
					s.Log.Error("Sync rooms property %d: update room %d: %v", prop.ID, existing.ID, err)
				}
			}
		}
	}
	return true
}

// SyncReservations kéo booking vendor về. Dedup theo khóa tự nhiên
// (user, check_in, check_out, property), không theo id vendor. Insert
// theo hai lượt batch: reservation trước để có id, rồi đến room line.
func (s *SyncService) SyncReservations(ctx context.Context, prop *models.Property, userID *uint, checkin, checkout *time.Time) bool {
	adapter, err := s.Factory.GetAdapter(prop)
	if err != nil {
		s.Log.Error("Sync reservations property %d: %v", prop.ID, err)
		return false
	}

	bookings, err := adapter.DownloadReservations(ctx, prop, checkin, checkout)
	if err != nil {
		s.Log.Error("Sync reservations property %d: download lỗi: %v", prop.ID, err)
		return false
	}
	if len(bookings) == 0 {
		return false
	}

	var newReservations []models.Reservation
	var roomLines [][]models.ReservationRoom // Song song với newReservations
	for _, booking := range bookings {
		checkIn, err := time.Parse("2006-01-02", booking.CheckIn)
		if err != nil {
			s.Log.Error("Sync reservations property %d: check_in không hợp lệ %q", prop.ID, booking.CheckIn)
			continue
		}
		checkOut, err := time.Parse("2006-01-02", booking.CheckOut)
		if err != nil {
			s.Log.Error("Sync reservations property %d: check_out không hợp lệ %q", prop.ID, booking.CheckOut)
			continue
		}

		var count int64
		query := s.DB.Model(&models.Reservation{}).
			Where("property_id = ? AND check_in = ? AND check_out = ?",
				prop.ID, checkIn, checkOut)
		if userID != nil {
			query = query.Where("user_id = ?", *userID)
		} else {
			query = query.Where("user_id IS NULL")
		}
		if err := query.Count(&count).Error; err != nil {
			s.Log.Error("Sync reservations property %d: %v", prop.ID, err)
			continue
		}
		if count > 0 {
			continue // Booking đã sync trước đó
		}

		// Gộp occupancy của mọi room line cho pax_count; line trùng
		// room type được merge vì (reservation, room_type) là unique
		paxCount := 0
		guestsByType := map[uint]int{}
		for _, line := range booking.Rooms {
			paxCount += line.Occupancy

			var roomType models.RoomType
			if err := s.DB.Where("property_id = ? AND external_id = ?", prop.ID, line.RoomTypeID).First(&roomType).Error; err != nil {
				s.Log.Error("Sync reservations property %d: room type %q chưa mapping", prop.ID, line.RoomTypeID)
				continue
			}
			guestsByType[roomType.ID] += line.Occupancy
		}
		var lines []models.ReservationRoom
		for roomTypeID, guests := range guestsByType {
			id := roomTypeID
			lines = append(lines, models.ReservationRoom{
				RoomTypeID: &id,
				Guests:     guests,
			})
		}
		reservation := builders.NewReservationBuilder().
			WithProperty(prop.ID).
			WithUser(userID).
			WithStatus(booking.Status).
			WithChannel(booking.Channel).
			WithStay(checkIn, checkOut, paxCount).
			WithPricing(booking.TotalPrice, booking.PaidOnline, booking.PayOnArrival).
			WithGuestContact(&booking).
			WithVendorDates(booking.CancellationDate, booking.ModificationDate).
			Build()
		newReservations = append(newReservations, *reservation)
		roomLines = append(roomLines, lines)
	}
	if len(newReservations) == 0 {
		return true
	}

	if err := s.DB.Create(&newReservations).Error; err != nil {
		s.Log.Error("Sync reservations property %d: insert batch: %v", prop.ID, err)
		return false
	}
	var allLines []models.ReservationRoom
	for i, reservation := range newReservations {
		for _, line := range roomLines[i] {
			line.ReservationID = reservation.ID
			allLines = append(allLines, line)
		}
	}
	if len(allLines) > 0 {
		if err := s.DB.Create(&allLines).Error; err != nil {
			s.Log.Error("Sync reservations property %d: insert room lines: %v", prop.ID, err)
			return false
		}
	}
	return true
}

// SyncRatesAndAvailability kéo lịch rate/availability vendor cho khoảng
// ngày yêu cầu và upsert vào AvailabilityStore. Ô có room type chưa
// mapping được bỏ qua kèm log chẩn đoán.
func (s *SyncService) SyncRatesAndAvailability(ctx context.Context, prop *models.Property, checkin, checkout *time.Time) bool {
	adapter, err := s.Factory.GetAdapter(prop)
	if err != nil {
		s.Log.Error("Sync rates property %d: %v", prop.ID, err)
		return false
	}

	cells, err := adapter.DownloadRatesAndAvailability(ctx, prop, checkin, checkout)
	if err != nil {
		s.Log.Error("Sync rates property %d: download lỗi: %v", prop.ID, err)
		return false
	}
	if len(cells) == 0 {
		return false
	}

	// Map external_id -> RoomType local, load một lần cho cả batch
	var roomTypes []models.RoomType
	if err := s.DB.Where("property_id = ?", prop.ID).Find(&roomTypes).Error; err != nil {
		s.Log.Error("Sync rates property %d: %v", prop.ID, err)
		return false
	}
	typeByExternalID := make(map[string]models.RoomType, len(roomTypes))
	for _, roomType := range roomTypes {
		typeByExternalID[roomType.ExternalID] = roomType
	}

	var rows []models.Availability
	for _, cell := range cells {
		roomType, found := typeByExternalID[cell.RoomType]
		if !found {
			s.Log.Info("Sync rates property %d: bỏ qua room type %q chưa mapping", prop.ID, cell.RoomType)
			continue
		}
		date, err := time.Parse("2006-01-02", cell.Date)
		if err != nil {
			s.Log.Error("Sync rates property %d: ngày không hợp lệ %q", prop.ID, cell.Date)
			continue
		}
		serialized, err := models.SerializeRates(cell.Rates)
		if err != nil {
			s.Log.Error("Sync rates property %d: serialize rates %s: %v", prop.ID, cell.Date, err)
			continue
		}
		rows = append(rows, models.Availability{
			PropertyID:   prop.ID,
			RoomTypeID:   roomType.ID,
			Date:         date,
			Availability: cell.Availability,
			Rates:        serialized,
		})
	}
	if len(rows) == 0 {
		return false
	}

	if err := s.Store.Upsert(rows); err != nil {
		s.Log.Error("Sync rates property %d: upsert: %v", prop.ID, err)
		return false
	}
	return true
}

// SyncPropertyWithPMS chạy full pipeline cho một property: detail,
// rooms, reservations, rates. Mỗi bước là failure domain riêng, bước
// lỗi không rollback bước trước. Sync xong lần đầu thì tắt cờ FirstSync.
func (s *SyncService) SyncPropertyWithPMS(ctx context.Context, prop *models.Property) {
	s.Log.Info("Bắt đầu sync property %d (%s)", prop.ID, prop.Name)

	s.SyncPropertyDetail(ctx, prop)
	s.SyncRooms(ctx, prop)
	s.SyncReservations(ctx, prop, nil, nil, nil)
	s.SyncRatesAndAvailability(ctx, prop, nil, nil)

	if err := s.DB.Model(&models.PmsDataProperty{}).
		Where("property_id = ? AND first_sync = ?", prop.ID, true).
		Update("first_sync", false).Error; err != nil {
		s.Log.Error("Sync property %d: tắt first_sync: %v", prop.ID, err)
	}
	s.Log.Info("Sync property %d hoàn tất", prop.ID)
}

// SyncAllProperties sync mọi property active có PMS liên kết; lỗi trên
// một property không chặn property khác
func (s *SyncService) SyncAllProperties(ctx context.Context) {
	var properties []models.Property
	if err := s.DB.Preload("PMS").Preload("PmsData").
		Where("active = ? AND pms_id IS NOT NULL", true).
		Find(&properties).Error; err != nil {
		s.Log.Error("Sync all: load properties: %v", err)
		return
	}
	for i := range properties {
		s.SyncPropertyWithPMS(ctx, &properties[i])
	}
}
