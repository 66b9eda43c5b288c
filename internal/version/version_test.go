package version

import (
	"runtime/debug"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		version     string
		commit      string
		info        *debug.BuildInfo
		wantVersion string
		wantCommit  string
	}{
		{name: "no build info", wantVersion: "dev", wantCommit: "unknown"},
		{
			name:        "ldflags win",
			version:     "v1.2.0",
			commit:      "abc",
			info:        &debug.BuildInfo{Main: debug.Module{Version: "v9.9.9"}},
			wantVersion: "v1.2.0",
			wantCommit:  "abc",
		},
		{
			name: "module version and dirty revision",
			info: &debug.BuildInfo{
				Main: debug.Module{Version: "v0.3.1"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "0123456789abcdef"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			wantVersion: "v0.3.1",
			wantCommit:  "0123456-dirty",
		},
		{
			name:        "devel build",
			info:        &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			wantVersion: "dev",
			wantCommit:  "unknown",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, c := resolve(tt.version, tt.commit, tt.info)
			if v != tt.wantVersion || c != tt.wantCommit {
				t.Fatalf("expected %q/%q, got %q/%q", tt.wantVersion, tt.wantCommit, v, c)
			}
		})
	}
}
