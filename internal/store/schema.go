package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// LLMRequestEventsColumns holds the columns for the "llm_request_events" table.
	LLMRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LLMRequestEventsTable holds the schema information for the "llm_request_events" table.
	LLMRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    LLMRequestEventsColumns,
		PrimaryKey: []*schema.Column{LLMRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{LLMRequestEventsColumns[2]}},
			{Name: "llmrequestevent_provider", Columns: []*schema.Column{LLMRequestEventsColumns[3]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{LLMRequestEventsColumns[5]}},
			{Name: "llmrequestevent_success", Columns: []*schema.Column{LLMRequestEventsColumns[9]}},
		},
	}

	// TutorExchangesColumns holds the columns for the "tutor_exchanges" table.
	TutorExchangesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "channel", Type: field.TypeString},
		{Name: "lesson", Type: field.TypeInt, Nullable: true},
		{Name: "question", Type: field.TypeString, Size: 2147483647},
		{Name: "reply", Type: field.TypeString, Size: 2147483647},
		{Name: "demo", Type: field.TypeBool, Default: false},
		{Name: "fallback", Type: field.TypeBool, Default: false},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "error_message", Type: field.TypeString, Default: ""},
	}
	// TutorExchangesTable holds the schema information for the "tutor_exchanges" table.
	TutorExchangesTable = &schema.Table{
		Name:       "tutor_exchanges",
		Columns:    TutorExchangesColumns,
		PrimaryKey: []*schema.Column{TutorExchangesColumns[0]},
		Indexes: []*schema.Index{
			{Name: "tutorexchange_timestamp", Columns: []*schema.Column{TutorExchangesColumns[2]}},
			{Name: "tutorexchange_lesson", Columns: []*schema.Column{TutorExchangesColumns[4]}},
		},
	}

	// SequencesColumns holds the columns for the "sequences" table.
	SequencesColumns = []*schema.Column{
		{Name: "name", Type: field.TypeString},
		{Name: "value", Type: field.TypeInt64, Default: 0},
	}
	// SequencesTable holds named counters shared across the log tables.
	SequencesTable = &schema.Table{
		Name:       "sequences",
		Columns:    SequencesColumns,
		PrimaryKey: []*schema.Column{SequencesColumns[0]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		LLMRequestEventsTable,
		TutorExchangesTable,
		SequencesTable,
	}
)
