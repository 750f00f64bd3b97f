package compileinfo

import (
	"strings"
	"testing"
)

func TestKeyVals(t *testing.T) {
	c := CompileInfo{Package: "github.com/carbocation/admixplot/cmd/admixplot", GoVersion: "go1.22.0", Commit: "abc123", Modified: true}

	kv := c.KeyVals()
	if len(kv)%2 != 0 {
		t.Fatalf("Expected key/value pairs, got %d entries", len(kv))
	}
	if kv[0] != "package" || kv[1] != c.Package {
		t.Errorf("Unexpected leading pair %v=%v", kv[0], kv[1])
	}

	if s := c.String(); !strings.Contains(s, "abc123") || !strings.Contains(s, "modified") {
		t.Errorf("Unexpected description %q", s)
	}
}
