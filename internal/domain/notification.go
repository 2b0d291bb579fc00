package domain

import "time"

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

type Notification struct {
	ID        string
	Message   string
	Severity  Severity
	CreatedAt time.Time
}

func (n Notification) ExpiresAt(ttl time.Duration) time.Time {
	return n.CreatedAt.Add(ttl)
}
