package config

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8080" || cfg.StoreDriver != "memory" || cfg.ReconcileWorkers != 4 ||
		cfg.StorageBucket != "company-logos" || cfg.CORSOrigins != "*" || cfg.LogLevel != "info" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.StorageEnabled() {
		t.Error("storage should be disabled without credentials")
	}
}

func TestFromEnv_Validation(t *testing.T) {
	cases := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"unknown driver", map[string]string{"STORE_DRIVER": "mongo"}, "unknown STORE_DRIVER"},
		{"postgres without url", map[string]string{"STORE_DRIVER": "postgres"}, "DATABASE_URL"},
		{"postgrest without key", map[string]string{"STORE_DRIVER": "postgrest", "SUPABASE_URL": "http://x"}, "SUPABASE_SERVICE_KEY"},
		{"bad workers", map[string]string{"RECONCILE_WORKERS": "zero"}, "RECONCILE_WORKERS"},
		{"negative workers", map[string]string{"RECONCILE_WORKERS": "-2"}, "RECONCILE_WORKERS"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := FromEnv(envOf(c.env))
			if err == nil || !strings.Contains(err.Error(), c.wantErr) {
				t.Errorf("err = %v, want mention of %q", err, c.wantErr)
			}
		})
	}
}

func TestFromEnv_Postgrest(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"STORE_DRIVER":         "postgrest",
		"SUPABASE_URL":         "https://example.supabase.co/",
		"SUPABASE_SERVICE_KEY": "key",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SupabaseURL != "https://example.supabase.co" {
		t.Errorf("SupabaseURL = %q, trailing slash should be trimmed", cfg.SupabaseURL)
	}
	if !cfg.StorageEnabled() {
		t.Error("storage should be enabled")
	}
}

func TestAbsoluteURL(t *testing.T) {
	base := "https://example.supabase.co"
	signed := "/object/upload/sign/company-logos/logos/a.png?token=t"
	cases := map[string]string{
		"https://cdn.example.com/u": "https://cdn.example.com/u",
		signed:                      base + "/storage/v1" + signed,
		signed[1:]:                  base + "/storage/v1" + signed,
	}
	for in, want := range cases {
		if got := absoluteURL(base, in); got != want {
			t.Errorf("absoluteURL(%q) = %q, want %q", in, got, want)
		}
	}
	if got := absoluteURL(base+"/", signed); got != base+"/storage/v1"+signed {
		t.Errorf("trailing slash: got %q", got)
	}
}

func TestLogoStorage_SignedUploadURL(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotAuth = r.URL.Path, r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"url":"/object/upload/sign/company-logos/logos/a.png?token=t"}`)
	}))
	defer srv.Close()

	s, err := NewLogoStorage(&Config{SupabaseURL: srv.URL, SupabaseKey: "k", StorageBucket: "company-logos"})
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.SignedUploadURL("logos/a.png")
	if err != nil {
		t.Fatal(err)
	}
	if want := srv.URL + "/storage/v1/object/upload/sign/company-logos/logos/a.png?token=t"; got != want {
		t.Errorf("url = %q, want %q", got, want)
	}
	if gotPath != "/storage/v1/object/upload/sign/company-logos/logos/a.png" {
		t.Errorf("signed at %q", gotPath)
	}
	if gotAuth != "Bearer k" {
		t.Errorf("Authorization = %q", gotAuth)
	}

	// The returned URL must reach the same storage API that signed it.
	if !strings.HasPrefix(got, srv.URL+storagePath+"/object/") {
		t.Errorf("url %q is outside the storage API", got)
	}
}
