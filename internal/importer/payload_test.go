package importer_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-onboarding/internal/importer"
	"github.com/goliatone/go-onboarding/internal/validation"
	"github.com/goliatone/go-onboarding/pkg/testsupport"
)

func loadPayload(t *testing.T, name string) importer.Payload {
	t.Helper()
	data, err := testsupport.LoadFixture(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	payload, err := importer.DecodePayload(data)
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	return payload
}

func TestDecodePayload(t *testing.T) {
	payload := loadPayload(t, "payload.json")

	if got := payload.Count(); got != 6 {
		t.Fatalf("expected 6 top level records, got %d", got)
	}
	if len(payload.Records.Sequences) != 1 || len(payload.Records.Sequences[0].Conditions) != 1 {
		t.Fatalf("unexpected sequences %#v", payload.Records.Sequences)
	}
	condition := payload.Records.Sequences[0].Conditions[0]
	if len(condition.ExternalMessages) != 1 || len(condition.PendingTasks) != 1 {
		t.Fatalf("unexpected condition %#v", condition)
	}
	if got := condition.ExternalMessages[0].String("content_json"); got != "<p>Hi there</p>" {
		t.Fatalf("unexpected content_json %q", got)
	}
	if got := payload.Records.ToDo[0].String("name"); got != "Set up your laptop" {
		t.Fatalf("unexpected name %q", got)
	}
}

func TestDecodePayloadRejectsSchemaViolations(t *testing.T) {
	data, err := testsupport.LoadFixture(filepath.Join("testdata", "invalid_payload.json"))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}

	_, err = importer.DecodePayload(data)
	if !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	var payloadErr *validation.PayloadValidationError
	if !errors.As(err, &payloadErr) {
		t.Fatalf("expected PayloadValidationError, got %T", err)
	}
	if len(payloadErr.Issues) == 0 {
		t.Fatalf("expected issues")
	}
}

func TestDecodePayloadRejectsMalformedJSON(t *testing.T) {
	cases := map[string]string{
		"truncated":       `{"records":`,
		"missing records": `{}`,
		"wrong type":      `{"records": {"to_do": {}}}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := importer.DecodePayload([]byte(raw)); err == nil {
				t.Fatalf("expected error for %s", raw)
			}
		})
	}
}

func TestPayloadCountEmpty(t *testing.T) {
	if got := (importer.Payload{}).Count(); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}
