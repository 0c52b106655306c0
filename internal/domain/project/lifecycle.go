package project

// ValidateTransition validates a requested status transition. The workflow
// only advances: active -> finalized -> delivered, with archived reachable
// from any earlier stage as a terminal branch.
func ValidateTransition(from, to Status) error {
	valid := false
	switch from {
	case StatusActive:
		switch to {
		case StatusFinalized, StatusArchived:
			valid = true
		}
	case StatusFinalized:
		switch to {
		case StatusDelivered, StatusArchived:
			valid = true
		}
	case StatusDelivered:
		if to == StatusArchived {
			valid = true
		}
	}

	if !valid {
		return ErrInvalidTransition
	}
	return nil
}

// CanFinalize reports whether finalize applies to the current status.
// Finalizing an already-finalized project is idempotent, not an error.
func CanFinalize(from Status) bool {
	return from == StatusActive
}

// CanDeliver reports whether complete-delivery applies to the current status.
func CanDeliver(from Status) bool {
	return from == StatusFinalized
}
