package gateway

import "time"

// Upstream target labels used in metrics.
const (
	TargetSheet    = "sheet_gateway"
	TargetAutofill = "autofill_model"
)

// UpstreamObserver receives timing for every outbound call. The
// metrics service implements it; a nil observer disables recording.
type UpstreamObserver interface {
	ObserveUpstreamCall(target string, duration time.Duration, success bool)
}

type nopObserver struct{}

func (nopObserver) ObserveUpstreamCall(string, time.Duration, bool) {}
