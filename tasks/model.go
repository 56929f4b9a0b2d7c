package tasks

// Priority classifies how urgent a task is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is used when a create request omits the field.
const DefaultPriority = PriorityNormal

func (p Priority) String() string {
	return string(p)
}

// Valid reports whether p is one of the three accepted priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

// Task is a single entry in the list. The JSON field names are the wire
// format for both the HTTP API and the persisted file.
type Task struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Priority Priority `json:"priority"`
	IsDone   bool     `json:"isDone"`
}
