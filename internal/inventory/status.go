package inventory

type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

var validNext = map[Status]map[Status]bool{
	StatusPending:   {StatusCompleted: true},
	StatusCompleted: {},
}

// CanTransition: Pending -> Completed, sekali saja.
func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

func ValidStatus(s Status) bool {
	_, ok := validNext[s]
	return ok
}
