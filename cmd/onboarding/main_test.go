package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	contentblocks "github.com/goliatone/go-onboarding/blocks"
	"github.com/goliatone/go-onboarding/internal/importer"
)

const payloadFixture = "../../internal/importer/testdata/payload.json"

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	var out, errOut bytes.Buffer
	root := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func absFixture(t *testing.T) string {
	t.Helper()
	path, err := filepath.Abs(payloadFixture)
	if err != nil {
		t.Fatalf("abs: %v", err)
	}
	return path
}

func TestParseFromStdin(t *testing.T) {
	out, err := runCLI(t, "<h2>Title</h2><ul><li>a</li><li>b</li></ul>", "parse", "--db-driver", "memory")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var parsed []contentblocks.ContentBlock
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("decode output: %v (%s)", err, out)
	}
	if len(parsed) != 2 || parsed[0].Type != contentblocks.TypeHeading2 || len(parsed[1].Items) != 2 {
		t.Fatalf("unexpected blocks %#v", parsed)
	}
}

func TestParseFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markup.html")
	if err := os.WriteFile(path, []byte("hello"), 0o600); err != nil {
		t.Fatalf("write markup: %v", err)
	}

	out, err := runCLI(t, "", "parse", path, "--db-driver", "memory")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !strings.Contains(out, `"content": "hello"`) || !strings.Contains(out, `"block_type": "paragraph"`) {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestImportDryRunWithMemoryStorage(t *testing.T) {
	fixture := absFixture(t)
	out, err := runCLI(t, "", "import", fixture, "--dry-run", "--db-driver", "memory", "--log-level", "error")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	var result importer.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode output: %v (%s)", err, out)
	}
	if !result.DryRun || result.Blocks != 5 || result.Colleagues != 2 {
		t.Fatalf("unexpected result %#v", result)
	}
}

func TestImportRejectsInvalidPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"records":{"badge":[{"content":"x"}]}}`), 0o600); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	if _, err := runCLI(t, "", "import", path, "--db-driver", "memory"); err == nil {
		t.Fatal("expected schema validation error")
	}
}

func TestConfigFlagRejectsUnknownDriver(t *testing.T) {
	if _, err := runCLI(t, "x", "parse", "--db-driver", "oracle"); err == nil {
		t.Fatal("expected config validation error")
	}
}

func TestImportAgainstSQLiteStorage(t *testing.T) {
	fixture := absFixture(t)
	dsn := "file:" + filepath.Join(t.TempDir(), "onboarding.db") + "?_fk=1"

	out, err := runCLI(t, "", "import", fixture, "--db-driver", "sqlite", "--db-dsn", dsn, "--log-level", "error")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	var first importer.Result
	if err := json.Unmarshal([]byte(out), &first); err != nil {
		t.Fatalf("decode output: %v (%s)", err, out)
	}
	if first.DryRun || first.Blocks != 5 || first.Colleagues != 2 || len(first.Skipped) != 0 {
		t.Fatalf("unexpected first result %#v", first)
	}

	out, err = runCLI(t, "", "import", fixture, "--db-driver", "sqlite", "--db-dsn", dsn, "--log-level", "error")
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	var second importer.Result
	if err := json.Unmarshal([]byte(out), &second); err != nil {
		t.Fatalf("decode output: %v (%s)", err, out)
	}
	if len(second.Skipped) != 9 || second.Blocks != 0 {
		t.Fatalf("expected the stored records to be skipped, got %#v", second)
	}
}
