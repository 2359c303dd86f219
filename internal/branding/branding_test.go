package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "create-react-tw" {
		t.Errorf("CLIName() = %q, want %q", got, "create-react-tw")
	}
	if got := HomeDir(); got != ".create-react-tw" {
		t.Errorf("HomeDir() = %q, want %q", got, ".create-react-tw")
	}
	if got := EnvPrefix(); got != "CRTW" {
		t.Errorf("EnvPrefix() = %q, want %q", got, "CRTW")
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("installer"); got != "CRTW_INSTALLER" {
		t.Errorf("EnvVar(installer) = %q, want %q", got, "CRTW_INSTALLER")
	}
}
