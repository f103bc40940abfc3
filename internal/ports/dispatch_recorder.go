package ports

import (
	"relief-dispatch-service/internal/domain"
	"time"
)

// Observability hook for dispatch outcomes.
type DispatchRecorder interface {
	RecordRun(run domain.Run)
	RecordPlan(report domain.DeliveryReport, elapsed time.Duration)
}
