package config

import (
	"fmt"
	"strings"

	supa "github.com/supabase-community/supabase-go"
)

// storagePath is where supabase-go mounts the Storage API under the project URL.
const storagePath = "/storage/v1"

// LogoStorage issues signed upload URLs for company logos in a Supabase
// Storage bucket.
type LogoStorage struct {
	client  *supa.Client
	baseURL string
	bucket  string
}

// NewLogoStorage returns nil when Supabase is not configured.
func NewLogoStorage(cfg *Config) (*LogoStorage, error) {
	if !cfg.StorageEnabled() {
		return nil, nil
	}
	client, err := supa.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, nil)
	if err != nil {
		return nil, fmt.Errorf("init supabase client: %w", err)
	}
	return &LogoStorage{client: client, baseURL: cfg.SupabaseURL, bucket: cfg.StorageBucket}, nil
}

// Bucket is the bucket uploads land in.
func (s *LogoStorage) Bucket() string { return s.bucket }

// SignedUploadURL returns an absolute URL the client can PUT the file to.
func (s *LogoStorage) SignedUploadURL(path string) (string, error) {
	resp, err := s.client.Storage.CreateSignedUploadUrl(s.bucket, path)
	if err != nil {
		return "", fmt.Errorf("create signed upload url for %s/%s: %w", s.bucket, path, err)
	}
	return absoluteURL(s.baseURL, resp.Url), nil
}

// Storage answers with a path relative to its own API root, /storage/v1.
func absoluteURL(base, u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return strings.TrimRight(base, "/") + storagePath + u
}
