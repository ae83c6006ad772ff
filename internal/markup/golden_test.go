package markup

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/goliatone/go-onboarding/blocks"
	"github.com/goliatone/go-onboarding/pkg/testsupport"
)

func TestParseMatchesGolden(t *testing.T) {
	source, err := testsupport.LoadFixture(filepath.Join("testdata", "welcome.html"))
	if err != nil {
		t.Fatalf("load markup: %v", err)
	}
	var want []blocks.ContentBlock
	if err := testsupport.LoadGolden(filepath.Join("testdata", "welcome.golden.json"), &want); err != nil {
		t.Fatalf("load golden: %v", err)
	}

	got := Parse(string(source))
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("golden mismatch\nwant %#v\n got %#v", want, got)
	}
}
