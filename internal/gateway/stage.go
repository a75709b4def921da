package gateway

// Stage is a step of the per-request pipeline:
// Received → CredentialChecked → Forwarded → Translated → Emitted.
type Stage string

const (
	StageReceived          Stage = "received"
	StageCredentialChecked Stage = "credential_checked"
	StageForwarded         Stage = "forwarded"
	StageTranslated        Stage = "translated"
	StageEmitted           Stage = "emitted"
)

// Observer records gateway outcomes. Implementations must be safe for
// concurrent use.
type Observer interface {
	ObserveUpstream(route string, status int, seconds float64)
	ObserveFailure(route string, stage string)
}

type nopObserver struct{}

func (nopObserver) ObserveUpstream(string, int, float64) {}
func (nopObserver) ObserveFailure(string, string)        {}
