package safe

import "github.com/MKhiriev/go-safe-keeper/models"

// ValidateGuardians checks the guardian set and threshold together.
func ValidateGuardians(guardians []models.Address, threshold int) error {
	seen := make(map[models.Address]struct{}, len(guardians))
	for _, g := range guardians {
		if g.IsZero() {
			return models.ErrInvalidAddress
		}
		if _, dup := seen[g]; dup {
			return ErrDuplicateGuardian
		}
		seen[g] = struct{}{}
	}

	if len(guardians) == 0 {
		if threshold != 0 {
			return ErrInvalidThreshold
		}
		return nil
	}
	if threshold < 1 || threshold > len(guardians) {
		return ErrInvalidThreshold
	}
	return nil
}

// NormalizeDeadman validates d and drops it when no beneficiary is set.
func NormalizeDeadman(d *models.Deadman) (*models.Deadman, error) {
	if d == nil || d.Beneficiary.IsZero() {
		return nil, nil
	}
	if d.InactivityPeriod <= 0 {
		return nil, ErrMissingBeneficiaryPeriod
	}
	out := *d
	return &out, nil
}
