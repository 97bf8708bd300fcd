package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const assessmentEventsTable = "assessment_events"

// Column names of the assessment_events table.
const (
	colID           = "id"
	colSequence     = "sequence"
	colTimestamp    = "timestamp"
	colRequestID    = "request_id"
	colStatus       = "status"
	colTier         = "tier"
	colBaseTier     = "base_tier"
	colCGPA         = "cgpa"
	colLevel        = "level"
	colDepartment   = "department"
	colTrend        = "trend_direction"
	colMLStatus     = "ml_status"
	colMLLabel      = "ml_label"
	colMLConfidence = "ml_confidence"
	colLatencyMs    = "latency_ms"
	colError        = "error_message"
	colPayload      = "payload"
)

var (
	// AssessmentEventsColumns holds the columns for the "assessment_events" table.
	AssessmentEventsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true, Comment: "Monotonically increasing global sequence number"},
		{Name: colTimestamp, Type: field.TypeTime, Comment: "UTC wall-clock time of the event"},
		{Name: colRequestID, Type: field.TypeString, Unique: true},
		{Name: colStatus, Type: field.TypeInt, Comment: "200, 400 or 500"},
		{Name: colTier, Type: field.TypeString, Default: ""},
		{Name: colBaseTier, Type: field.TypeString, Default: ""},
		{Name: colCGPA, Type: field.TypeFloat64, Default: 0},
		{Name: colLevel, Type: field.TypeInt, Default: 0},
		{Name: colDepartment, Type: field.TypeString, Default: ""},
		{Name: colTrend, Type: field.TypeString, Default: ""},
		{Name: colMLStatus, Type: field.TypeString, Default: ""},
		{Name: colMLLabel, Type: field.TypeString, Default: ""},
		{Name: colMLConfidence, Type: field.TypeFloat64, Default: 0},
		{Name: colLatencyMs, Type: field.TypeInt64, Default: 0},
		{Name: colError, Type: field.TypeString, Default: ""},
		{Name: colPayload, Type: field.TypeBytes, Nullable: true, Comment: "Full JSON response as returned to the caller"},
	}
	// AssessmentEventsTable holds the schema information for the "assessment_events" table.
	AssessmentEventsTable = &schema.Table{
		Name:       assessmentEventsTable,
		Columns:    AssessmentEventsColumns,
		PrimaryKey: []*schema.Column{AssessmentEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "assessmentevent_sequence", Columns: []*schema.Column{AssessmentEventsColumns[1]}},
			{Name: "assessmentevent_timestamp", Columns: []*schema.Column{AssessmentEventsColumns[2]}},
			{Name: "assessmentevent_tier", Columns: []*schema.Column{AssessmentEventsColumns[5]}},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		AssessmentEventsTable,
	}
)
