package sanitymcp

import "testing"

func TestConfigDefaults(t *testing.T) {
	cfg := Config{ProjectID: "abc123"}.WithDefaults()
	if cfg.Dataset != DefaultDataset {
		t.Fatalf("dataset default: %q", cfg.Dataset)
	}
	if cfg.APIVersion != DefaultAPIVersion {
		t.Fatalf("api version default: %q", cfg.APIVersion)
	}
	if cfg.APIHost != DefaultAPIHost {
		t.Fatalf("api host default: %q", cfg.APIHost)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (Config{}).Validate(); err == nil {
		t.Fatalf("expected missing project id error")
	}
	if err := (Config{ProjectID: " "}).Validate(); err == nil {
		t.Fatalf("expected blank project id error")
	}
	if err := (Config{ProjectID: "abc123"}).Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestConfigCDNEnabled(t *testing.T) {
	if !(Config{ProjectID: "p"}).CDNEnabled() {
		t.Fatalf("anonymous config should default to CDN")
	}
	if (Config{ProjectID: "p", Token: "sk"}).CDNEnabled() {
		t.Fatalf("token-bearing config should default to direct API")
	}
	force := true
	if !(Config{ProjectID: "p", Token: "sk", UseCDN: &force}).CDNEnabled() {
		t.Fatalf("explicit override should win over token presence")
	}
	direct := false
	if (Config{ProjectID: "p", UseCDN: &direct}).CDNEnabled() {
		t.Fatalf("explicit direct override should win without token")
	}
}
