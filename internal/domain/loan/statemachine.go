package loan

// The portal UI encoded these transitions ad hoc across several pages; here
// they live in one place so every usecase shares the same rules.

// CanTransition reports whether a loan may move from to the target status.
// Self-transitions are excluded here; idempotent no-ops are decided by the
// workflow usecase, which checks for them before consulting the machine.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected
	case StatusApproved:
		// cancel approval, or settle via the repayment ledger
		return to == StatusRejected || to == StatusFullyPaid
	case StatusRejected:
		// reapprove
		return to == StatusApproved
	case StatusFullyPaid:
		return false
	}
	return false
}

// Archivable reports whether a loan in this status may be archived.
func Archivable(s Status) bool { return s == StatusFullyPaid }
