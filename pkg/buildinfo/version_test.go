package buildinfo

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	defer func() { Version = old }()

	if got := Get(); got.Version != "v9.9.9" || got.Commit != Commit || got.Date != Date {
		t.Errorf("Get() = %+v", got)
	}
	if !strings.Contains(String(), "version: v9.9.9") {
		t.Errorf("String() = %q", String())
	}
	if !strings.HasPrefix(Template(), "{{.Name}} v9.9.9\n") {
		t.Errorf("Template() = %q", Template())
	}
}
