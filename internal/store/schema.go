package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	progressTable    = "progress"
	sequenceTable    = "global_sequence"
	answerEventTable = "answer_events"
	levelEventTable  = "level_events"
	llmRequestTable  = "llm_request_events"
)

// eventTable builds an event table: an auto-increment id, the global
// sequence and a timestamp, followed by cols. Timestamps are Unix
// milliseconds so range filters stay integer comparisons.
func eventTable(name string, cols []*schema.Column, indexes ...string) *schema.Table {
	t := schema.NewTable(name).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true}).
		AddColumn(&schema.Column{Name: "sequence", Type: field.TypeInt64, Unique: true}).
		AddColumn(&schema.Column{Name: "timestamp", Type: field.TypeInt64})
	for _, c := range cols {
		t.AddColumn(c)
	}
	t.AddIndex(name+"_timestamp", false, []string{"timestamp"})
	for _, col := range indexes {
		t.AddIndex(name+"_"+col, false, []string{col})
	}
	return t
}

func stringCol(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeString}
}

func intCol(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeInt, Default: 0}
}

// Tables lists every table the store migrates.
var Tables = []*schema.Table{
	schema.NewTable(progressTable).
		AddPrimary(&schema.Column{Name: "key", Type: field.TypeString}).
		AddColumn(&schema.Column{Name: "value", Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: "updated_at", Type: field.TypeInt64}),

	schema.NewTable(sequenceTable).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: "next_val", Type: field.TypeInt64, Default: 1}),

	eventTable(answerEventTable, []*schema.Column{
		stringCol("attempt_id"),
		intCol("level"),
		stringCol("mode"),
		stringCol("native"),
		stringCol("target"),
		stringCol("question_id"),
		stringCol("given"),
		stringCol("expected"),
		{Name: "correct", Type: field.TypeBool},
	}, "attempt_id"),

	eventTable(levelEventTable, []*schema.Column{
		stringCol("attempt_id"),
		intCol("level"),
		stringCol("mode"),
		stringCol("native"),
		stringCol("target"),
		stringCol("action"),
		intCol("answered"),
		intCol("correct"),
		intCol("score"),
	}, "level"),

	eventTable(llmRequestTable, []*schema.Column{
		stringCol("provider"),
		stringCol("model"),
		stringCol("purpose"),
		intCol("input_tokens"),
		intCol("output_tokens"),
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}, "purpose"),
}

// createSchema creates missing tables and indexes with ent's migrator.
func createSchema(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("store/migrate: %w", err)
	}
	return m.Create(ctx, Tables...)
}
