package safe

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-safe-keeper/models"
)

// Apply dispatches a safe.* intent (other than safe.create) to its
// transition.
func Apply(cur *models.Safe, in models.Intent, now time.Time) (Result, error) {
	switch in.Kind {
	case models.IntentSafeHeartbeat:
		return Heartbeat(cur, in.Sender, now)
	case models.IntentSafeApproveRecovery:
		return ApproveRecovery(cur, in.Sender, in.Candidate, now)
	case models.IntentSafeClaim:
		return Claim(cur, in.Sender, now)
	case models.IntentSafeUpdateDeadman:
		return UpdateDeadman(cur, in.Sender, in.Deadman, now)
	case models.IntentSafeUpdateGuardians:
		return UpdateGuardians(cur, in.Sender, in.Guardians, in.Threshold, now)
	case models.IntentSafeDisable:
		return Disable(cur, in.Sender, now)
	default:
		return Result{}, fmt.Errorf("apply %q: %w", in.Kind, ErrUnsupportedIntent)
	}
}
