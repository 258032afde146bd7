package models

// LogEvent is a single console log record, mapped 1:1 from the remote
// log service record.
type LogEvent struct {
	Timestamp     int64
	Message       string
	IngestionTime int64
}

// LogPage is one bounded page of log events plus the pagination tokens
// the service returned alongside it.
type LogPage struct {
	Events            []LogEvent
	NextForwardToken  string
	NextBackwardToken string
}
