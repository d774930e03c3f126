package list_bookings

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/m04kA/RiverRun-BookingService/internal/service/bookings/models"
	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

// ToServiceRequest разбирает query параметры: status, from, to (YYYY-MM-DD), limit, offset
func ToServiceRequest(query url.Values, caller models.Caller) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{Caller: caller}

	if status := strings.TrimSpace(query.Get("status")); status != "" {
		status = strings.ToUpper(status)
		req.Status = &status
	}

	if raw := query.Get("from"); raw != "" {
		from, err := types.ParseDate(raw)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := types.ParseDate(raw)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.Limit = limit
	}

	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.Offset = offset
	}

	return req, nil
}
