package services

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sort"
	"time"

	"gorm.io/gorm"

	"stayhub/dto"
	"stayhub/errors"
	"stayhub/models"
	"stayhub/services/logger"
)

// PricingService tính báo giá theo khoảng ngày trên dữ liệu
// AvailabilityStore, tự refresh từ PMS khi lịch local thiếu ngày
type PricingService struct {
	DB    *gorm.DB
	Sync  *SyncService
	Store *AvailabilityStore
	Log   logger.Logger
}

func NewPricingService(db *gorm.DB, sync *SyncService, store *AvailabilityStore, log logger.Logger) *PricingService {
	return &PricingService{DB: db, Sync: sync, Store: store, Log: log}
}

// DatesInRange liệt kê các ngày thuộc [checkIn, checkOut)
func DatesInRange(checkIn, checkOut time.Time) []time.Time {
	var dates []time.Time
	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// Quote tính giá cho khoảng [checkIn, checkOut): mỗi room type phải
// bookable trên mọi đêm, giá mỗi rate plan cộng dồn theo rate_id và
// phải có giá cho đúng mức guests trên mọi đêm
func (s *PricingService) Quote(ctx context.Context, propertyID, roomTypeID *uint, checkIn, checkOut time.Time, guests int) (*dto.QuoteResponse, error) {
	if !checkIn.Before(checkOut) {
		return nil, errors.WrapAppError(errors.ErrCodeCheckinAfterCheckout,
			"Check-in date must be before check-out date", http.StatusBadRequest, errors.ErrInvalidDates)
	}
	if guests < 1 {
		guests = 1
	}

	// Property nào tham gia báo giá: một property chỉ định, hoặc
	// toàn bộ property active khi không truyền
	var properties []models.Property
	if propertyID != nil {
		var prop models.Property
		if err := s.DB.Preload("PMS").Preload("PmsData").First(&prop, *propertyID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.NewAppError(errors.ErrCodePropertyNotFound,
					"Property not found", http.StatusNotFound)
			}
			return nil, err
		}
		properties = []models.Property{prop}
	} else {
		if err := s.DB.Preload("PMS").Preload("PmsData").
			Where("active = ?", true).Find(&properties).Error; err != nil {
			return nil, err
		}
	}

	rows, err := s.Store.ExistingFor(checkIn, checkOut, propertyID, roomTypeID)
	if err != nil {
		return nil, err
	}

	// Thiếu ngày nào thì refresh từ PMS cho khoảng thiếu rồi đọc lại;
	// refresh lỗi vẫn tiếp tục với dữ liệu local (best-effort)
	dates := DatesInRange(checkIn, checkOut)
	if missStart, missEnd, missing := missingRange(rows, dates); missing {
		refreshEnd := missEnd.AddDate(0, 0, 1)
		for i := range properties {
			if !properties[i].HasPMS() {
				continue
			}
			s.Sync.SyncRatesAndAvailability(ctx, &properties[i], &missStart, &refreshEnd)
		}
		rows, err = s.Store.ExistingFor(checkIn, checkOut, propertyID, roomTypeID)
		if err != nil {
			return nil, err
		}
	}

	// Gom theo tên room type; một nhóm chỉ bookable khi mọi đêm đều có
	// ô với tồn kho > 0
	groups := make(map[string][]models.Availability)
	for _, row := range rows {
		name := roomTypeName(&row)
		groups[name] = append(groups[name], row)
	}

	response := &dto.QuoteResponse{
		Rooms:                 []dto.RoomAvailability{},
		TotalPricePerRoomType: map[string][]dto.RateTotal{},
	}
	for name, groupRows := range groups {
		if !coversAllDates(groupRows, dates) {
			continue
		}

		totals, rateLines, err := sumRatesByID(groupRows, guests)
		if err != nil {
			return nil, err
		}

		for _, row := range groupRows {
			response.Rooms = append(response.Rooms, dto.RoomAvailability{
				PropertyID:   row.PropertyID,
				RoomTypeID:   row.RoomTypeID,
				RoomTypeName: name,
				Date:         row.Date.Format("2006-01-02"),
				Availability: row.Availability,
				Rates:        rateLines[row.Date.Format("2006-01-02")],
			})
		}
		key := fmt.Sprintf("%s-guests:%d", name, guests)
		response.TotalPricePerRoomType[key] = totals
	}

	if len(response.TotalPricePerRoomType) == 0 {
		return nil, errors.WrapAppError(errors.ErrCodePropertyNoAvail,
			"No availability for the selected dates", http.StatusNotFound, errors.ErrNoAvailability)
	}
	return response, nil
}

func roomTypeName(row *models.Availability) string {
	if row.RoomType != nil && row.RoomType.Name != "" {
		return row.RoomType.Name
	}
	return fmt.Sprintf("room-type-%d", row.RoomTypeID)
}

// missingRange trả về khoảng [min, max] các ngày chưa có ô nào trong rows
func missingRange(rows []models.Availability, dates []time.Time) (time.Time, time.Time, bool) {
	present := make(map[string]bool, len(rows))
	for _, row := range rows {
		present[row.Date.Format("2006-01-02")] = true
	}

	var missStart, missEnd time.Time
	found := false
	for _, date := range dates {
		if present[date.Format("2006-01-02")] {
			continue
		}
		if !found {
			missStart = date
			found = true
		}
		missEnd = date
	}
	return missStart, missEnd, found
}

func coversAllDates(rows []models.Availability, dates []time.Time) bool {
	available := make(map[string]bool, len(rows))
	for _, row := range rows {
		if row.Availability > 0 {
			available[row.Date.Format("2006-01-02")] = true
		}
	}
	for _, date := range dates {
		if !available[date.Format("2006-01-02")] {
			return false
		}
	}
	return true
}

// sumRatesByID cộng giá từng rate plan theo rate_id qua mọi đêm của
// một nhóm. Đêm nào thiếu rate plan hoặc thiếu giá cho đúng mức guests
// thì cả quote fail với PriceNotFound, không loại trừ âm thầm.
func sumRatesByID(rows []models.Availability, guests int) ([]dto.RateTotal, map[string][]dto.RateLine, error) {
	totalsByRateID := make(map[int]float64)
	nightsByRateID := make(map[int]int)
	rateLines := make(map[string][]dto.RateLine)

	for _, row := range rows {
		rates, err := models.ParseRates(row.Rates)
		if err != nil {
			return nil, nil, errors.WrapAppError(errors.ErrCodeRatesParseError,
				"Stored rates are not parseable", http.StatusInternalServerError, err)
		}
		dateKey := row.Date.Format("2006-01-02")
		for _, plan := range rates {
			price, found := priceForOccupancy(plan, guests)
			if !found {
				return nil, nil, errors.NewAppError(errors.ErrCodePriceNotFound,
					fmt.Sprintf("No price for %d guests on %s (rate %d)", guests, dateKey, plan.RateID),
					http.StatusNotFound)
			}
			totalsByRateID[plan.RateID] += price
			nightsByRateID[plan.RateID]++
			rateLines[dateKey] = append(rateLines[dateKey], dto.RateLine{RateID: plan.RateID, Price: price})
		}
	}

	nights := len(rows)
	var totals []dto.RateTotal
	for rateID, total := range totalsByRateID {
		// Rate plan vắng mặt ở một đêm bất kỳ là lỗi dữ liệu giá
		if nightsByRateID[rateID] != nights {
			return nil, nil, errors.NewAppError(errors.ErrCodePriceNotFound,
				fmt.Sprintf("Rate %d is not offered on every night", rateID), http.StatusNotFound)
		}
		totals = append(totals, dto.RateTotal{RateID: rateID, TotalPrice: math.Round(total*100) / 100})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].RateID < totals[j].RateID })
	return totals, rateLines, nil
}

// priceForOccupancy tìm giá đúng mức occupancy yêu cầu trong một rate plan
func priceForOccupancy(plan models.RatePlan, guests int) (float64, bool) {
	for _, price := range plan.Prices {
		if price.Occupancy == guests {
			return price.Price, true
		}
	}
	return 0, false
}
