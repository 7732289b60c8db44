package entity

import (
	"time"
)

// Export run status
const (
	RunStatusCompleted = "COMPLETED"
	RunStatusFailed    = "FAILED"
)

// ExportRun is the audit record of one export attempt
type ExportRun struct {
	ID             string    `bson:"_id" json:"id"`
	Actor          string    `bson:"actor" json:"actor"`
	SpreadsheetID  string    `bson:"spreadsheetId" json:"spreadsheetId"`
	Worksheet      string    `bson:"worksheet" json:"worksheet"`
	Layout         string    `bson:"layout" json:"layout"`
	SpacesTotal    int       `bson:"spacesTotal" json:"spacesTotal"`
	SpacesExported int       `bson:"spacesExported" json:"spacesExported"`
	SheetCreated   bool      `bson:"sheetCreated" json:"sheetCreated"`
	Status         string    `bson:"status" json:"status"`
	ErrorDetail    string    `bson:"errorDetail,omitempty" json:"errorDetail,omitempty"`
	StartedAt      time.Time `bson:"startedAt" json:"startedAt"`
	FinishedAt     time.Time `bson:"finishedAt" json:"finishedAt"`
}

// ExportResult is what a successful export hands back to the caller
type ExportResult struct {
	Run          *ExportRun
	Rows         []SpaceRow
	Layout       SheetLayout
	SheetCreated bool
}
