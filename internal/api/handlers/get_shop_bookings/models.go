package get_shop_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ahmadnk31/fixwise/internal/domain"
	"github.com/ahmadnk31/fixwise/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// startDate, endDate (YYYY-MM-DD), status, includeInactive
func ToServiceRequest(shopID, userID uuid.UUID, query url.Values) (*models.GetShopBookingsRequest, error) {
	req := &models.GetShopBookingsRequest{
		UserID: userID,
		ShopID: shopID,
	}

	var err error
	if req.StartDate, err = parseDate(query.Get("startDate")); err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}
	if req.EndDate, err = parseDate(query.Get("endDate")); err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := query.Get("includeInactive"); raw != "" {
		req.IncludeInactive, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("includeInactive: %w", err)
		}
	}

	return req, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
