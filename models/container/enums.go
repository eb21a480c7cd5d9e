package container

// ContainerStatus is the declared state of a container. The set is open
// ended; these are the labels the shell presents.
type ContainerStatus string

const (
	StatusLoaded         ContainerStatus = "loaded"
	StatusDischarged     ContainerStatus = "discharged"
	StatusEmptied        ContainerStatus = "emptied"
	StatusFull           ContainerStatus = "full"
	StatusInTransit      ContainerStatus = "in_transit"
	StatusCustomsHold    ContainerStatus = "customs_hold"
	StatusReadyForPickup ContainerStatus = "ready_for_pickup"
)

// MovementOperation distinguishes load from discharge movements.
type MovementOperation string

const (
	OperationLoad      MovementOperation = "load"
	OperationDischarge MovementOperation = "discharge"
)

// Helper methods for ContainerStatus
func (cs ContainerStatus) String() string {
	return string(cs)
}

func (cs ContainerStatus) IsValid() bool {
	switch cs {
	case StatusLoaded, StatusDischarged, StatusEmptied, StatusFull, StatusInTransit, StatusCustomsHold, StatusReadyForPickup:
		return true
	default:
		return false
	}
}

// DefaultNotes returns the note text used when the caller supplies none.
func (cs ContainerStatus) DefaultNotes() string {
	switch cs {
	case StatusEmptied:
		return "Empty Container"
	case StatusFull:
		return "Full Container"
	case StatusInTransit:
		return "In Transit"
	case StatusCustomsHold:
		return "Hold by the Customer"
	case StatusReadyForPickup:
		return "Ready for Pickup"
	default:
		return ""
	}
}

// GetAllContainerStatuses returns all valid container statuses
func GetAllContainerStatuses() []ContainerStatus {
	return []ContainerStatus{
		StatusLoaded,
		StatusDischarged,
		StatusEmptied,
		StatusFull,
		StatusInTransit,
		StatusCustomsHold,
		StatusReadyForPickup,
	}
}

func (op MovementOperation) String() string {
	return string(op)
}

func (op MovementOperation) IsValid() bool {
	return op == OperationLoad || op == OperationDischarge
}
