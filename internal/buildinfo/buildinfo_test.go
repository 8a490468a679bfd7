package buildinfo

import "testing"

func TestRelease(t *testing.T) {
	origVersion, origCommit := Version, Commit
	defer func() { Version, Commit = origVersion, origCommit }()

	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{"both set", "v1.2.0", "abc123", "v1.2.0+abc123"},
		{"version only", "v1.2.0", "", "v1.2.0"},
		{"commit only", "", "abc123", "abc123"},
		{"neither", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit = tt.version, tt.commit
			if got := Release(); got != tt.want {
				t.Errorf("Release() = %q, want %q", got, tt.want)
			}
		})
	}
}
