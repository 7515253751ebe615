package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/drop-arcade/internal/registry"
)

func TestWriteGameList(t *testing.T) {
	var buf bytes.Buffer
	writeGameList(&buf, registry.List(), map[string]int{"catch": 340})
	out := buf.String()

	for _, want := range []string{"dodge", "dash", "catch", "5 misses allowed", "340", "arcade play"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}

	// dodge has no stored best
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "dodge") && !strings.Contains(line, "-") {
			t.Errorf("dodge row should show no best: %q", line)
		}
	}
}
