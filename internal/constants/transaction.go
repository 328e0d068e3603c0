package constants

const (
	// Persisted transaction actions
	ActionAdd   = "add"
	ActionSpend = "spend"

	// Date Layout
	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02 15:04"
)
