package importer

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-onboarding/internal/validation"
)

//go:embed schema/import.schema.json
var importSchemaSource []byte

var importSchema = validation.NewSchema("import.schema.json", importSchemaSource)

// Payload is the export document accepted by Import.
type Payload struct {
	Records Records `json:"records"`
}

// Records groups the importable records by their export key.
type Records struct {
	ToDo        []Fields   `json:"to_do,omitempty"`
	Preboarding []Fields   `json:"preboarding,omitempty"`
	Badge       []Fields   `json:"badge,omitempty"`
	Sequences   []Sequence `json:"sequences,omitempty"`
	Colleagues  []Fields   `json:"colleagues,omitempty"`
}

// Fields holds a record's exported attributes as decoded from JSON.
type Fields map[string]any

// Sequence is an automation sequence with its trigger conditions.
type Sequence struct {
	Name       string      `json:"name"`
	Conditions []Condition `json:"conditions"`
}

// Condition groups the messages and tasks a sequence fires together.
type Condition struct {
	ConditionType    any      `json:"condition_type"`
	Days             any      `json:"days"`
	ExternalMessages []Fields `json:"external_messages,omitempty"`
	PendingTasks     []Fields `json:"pending_task,omitempty"`
}

// DecodePayload validates raw JSON against the import schema and decodes it.
// Schema failures are reported as *validation.PayloadValidationError.
func DecodePayload(data []byte) (Payload, error) {
	var document any
	if err := json.Unmarshal(data, &document); err != nil {
		return Payload{}, fmt.Errorf("importer: decode payload: %w", err)
	}
	if err := importSchema.Validate(document); err != nil {
		return Payload{}, err
	}

	var payload Payload
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return Payload{}, fmt.Errorf("importer: decode payload: %w", err)
	}
	return payload, nil
}

// Count returns the number of top level records in the payload.
func (p Payload) Count() int {
	r := p.Records
	return len(r.ToDo) + len(r.Preboarding) + len(r.Badge) + len(r.Sequences) + len(r.Colleagues)
}

func (f Fields) String(key string) string {
	value, _ := f[key].(string)
	return value
}

// without returns a copy of f minus the named keys.
func (f Fields) without(keys ...string) map[string]any {
	out := make(map[string]any, len(f))
	for key, value := range f {
		out[key] = value
	}
	for _, key := range keys {
		delete(out, key)
	}
	return out
}
