package list_bookings

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RiverRun-BookingService/internal/domain"
	"github.com/m04kA/RiverRun-BookingService/internal/service/bookings/models"
	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

func TestToServiceRequest(t *testing.T) {
	caller := models.Caller{UserID: "u1", Role: domain.RoleStaff}

	req, err := ToServiceRequest(url.Values{
		"status": {"paid"},
		"from":   {"2024-06-01"},
		"to":     {"2024-06-30"},
		"limit":  {"20"},
		"offset": {"40"},
	}, caller)
	require.NoError(t, err)
	assert.Equal(t, "PAID", *req.Status)
	assert.Equal(t, types.MustParseDate("2024-06-01"), *req.From)
	assert.Equal(t, types.MustParseDate("2024-06-30"), *req.To)
	assert.Equal(t, uint64(20), req.Limit)
	assert.Equal(t, uint64(40), req.Offset)
	assert.Equal(t, caller, req.Caller)

	empty, err := ToServiceRequest(url.Values{}, caller)
	require.NoError(t, err)
	assert.Nil(t, empty.Status)
	assert.Nil(t, empty.From)

	for _, bad := range []url.Values{{"from": {"06/01/2024"}}, {"limit": {"-1"}}, {"offset": {"x"}}} {
		_, err := ToServiceRequest(bad, caller)
		assert.Error(t, err, bad.Encode())
	}
}
