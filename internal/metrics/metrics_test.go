package metrics

import (
	"net/http/httptest"
	"testing"

	"campus-guide-be/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCountsAdvisorCalls(t *testing.T) {
	before := testutil.ToFloat64(AdvisorCalls.WithLabelValues("classify_tab", "error"))

	Recorder{}.AdvisorCall("classify_tab", "error")

	assert.Equal(t, before+1, testutil.ToFloat64(AdvisorCalls.WithLabelValues("classify_tab", "error")))
}

func TestObserveEvent(t *testing.T) {
	before := testutil.ToFloat64(GuideEvents.WithLabelValues("GUIDE_NUDGE"))

	ObserveEvent(events.New("GUIDE_NUDGE", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(GuideEvents.WithLabelValues("GUIDE_NUDGE")))
}

func TestMiddlewareCountsRoute(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/things/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	before := testutil.ToFloat64(RequestCount.WithLabelValues("GET", "/things/:id", "204"))

	resp, err := app.Test(httptest.NewRequest("GET", "/things/42", nil))
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)

	assert.Equal(t, before+1, testutil.ToFloat64(RequestCount.WithLabelValues("GET", "/things/:id", "204")))
}
