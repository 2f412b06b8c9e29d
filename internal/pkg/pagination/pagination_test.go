package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramsFor(t *testing.T, query string) (*Params, bool) {
	t.Helper()

	var (
		got       *Params
		requested bool
	)
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		requested = Requested(c)
		got = GetParams(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/"+query, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	return got, requested
}

func TestGetParams(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		want      Params
		requested bool
	}{
		{"defaults", "", Params{Page: 1, Limit: DefaultLimit, Offset: 0}, false},
		{"second page", "?page=2&limit=10", Params{Page: 2, Limit: 10, Offset: 10}, true},
		{"limit only", "?limit=5", Params{Page: 1, Limit: 5, Offset: 0}, true},
		{"clamped limit", "?page=1&limit=1000", Params{Page: 1, Limit: MaxLimit, Offset: 0}, true},
		{"garbage", "?page=abc&limit=-3", Params{Page: 1, Limit: DefaultLimit, Offset: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, requested := paramsFor(t, tt.query)
			assert.Equal(t, tt.want, *got)
			assert.Equal(t, tt.requested, requested)
		})
	}
}

func TestGetMeta(t *testing.T) {
	meta := GetMeta(&Params{Page: 2, Limit: 10, Offset: 10}, 25)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	meta = GetMeta(&Params{Page: 1, Limit: 20}, 0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}
