package services

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"edugate/internal/core/domain"

	"github.com/sirupsen/logrus"
)

// TelemetryEvent is one batch of client-side interaction measurements
type TelemetryEvent struct {
	SessionID            string    `json:"session_id"`
	Page                 string    `json:"page"`
	KeystrokeIntervalsMs []float64 `json:"keystroke_intervals_ms"`
	MouseDistancePx      float64   `json:"mouse_distance_px"`
	ClickIntervalsMs     []float64 `json:"click_intervals_ms"`
	DurationMs           float64   `json:"duration_ms"`
}

// appendTimeout bounds how long a request waits on the sink
const appendTimeout = 2 * time.Second

// TelemetryService scores behaviour telemetry and hands it to a sink.
// It never touches loan applications.
type TelemetryService struct {
	sink    TelemetrySink
	timeout time.Duration
	log     *logrus.Logger
}

// NewTelemetryService creates a new telemetry service. A nil sink only scores.
func NewTelemetryService(sink TelemetrySink, log *logrus.Logger) *TelemetryService {
	return &TelemetryService{sink: sink, timeout: appendTimeout, log: log}
}

// BehaviourScore maps interaction measurements to a bounded heuristic score
func BehaviourScore(e *TelemetryEvent) int {
	score := 10.0

	keys := e.KeystrokeIntervalsMs
	if len(keys) >= 5 && mean(keys) < 40 {
		score += 30
	}
	if len(keys) >= 10 && stddev(keys) < 5 {
		score += 20
	}
	if len(e.ClickIntervalsMs) > 0 && e.MouseDistancePx == 0 {
		score += 20
	}
	if len(e.ClickIntervalsMs) >= 3 && stddev(e.ClickIntervalsMs) < 10 {
		score += 15
	}

	return int(math.Min(95, math.Round(score)))
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// population standard deviation
func stddev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	var sq float64
	for _, x := range xs {
		sq += (x - m) * (x - m)
	}
	return math.Sqrt(sq / float64(len(xs)))
}

// Record scores event and appends it to the sink. caller is nil for anonymous
// clients. Sink failures are logged and never returned.
func (s *TelemetryService) Record(ctx context.Context, caller *domain.Caller, event *TelemetryEvent) int {
	score := BehaviourScore(event)
	if s.sink == nil {
		return score
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.log.WithError(err).Warn("failed to encode telemetry event")
		return score
	}

	values := map[string]interface{}{
		"session_id":      event.SessionID,
		"page":            event.Page,
		"behaviour_score": score,
		"payload":         string(payload),
		"received_at":     time.Now().UTC().Format(time.RFC3339Nano),
	}
	if caller != nil {
		values["user_id"] = caller.UserID
		values["role"] = string(caller.Role)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.sink.Append(ctx, values); err != nil {
		s.log.WithError(err).WithField("session_id", event.SessionID).Warn("failed to store telemetry event")
	}
	return score
}
