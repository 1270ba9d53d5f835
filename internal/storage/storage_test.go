package storage

import (
	"strings"
	"testing"

	"github.com/timmy/calsnap/internal/config"
)

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"localhost:9000", "localhost:9000"},
		{"http://localhost:9000", "localhost:9000"},
		{"https://acc.r2.cloudflarestorage.com/bucket/", "acc.r2.cloudflarestorage.com"},
		{"  s3.amazonaws.com ", "s3.amazonaws.com"},
	}
	for _, tt := range tests {
		if got := normalizeEndpoint(tt.in); got != tt.want {
			t.Errorf("normalizeEndpoint(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDetectStorageType(t *testing.T) {
	tests := []struct {
		endpoint string
		want     StorageType
	}{
		{"https://acc.r2.cloudflarestorage.com", StorageTypeR2},
		{"s3.ap-northeast-2.amazonaws.com", StorageTypeS3},
		{"localhost:9000", StorageTypeS3Compatible},
	}
	for _, tt := range tests {
		if got := detectStorageType(tt.endpoint); got != tt.want {
			t.Errorf("detectStorageType(%q) = %q, want %q", tt.endpoint, got, tt.want)
		}
	}
}

func TestMealImageKey(t *testing.T) {
	a := MealImageKey("jpg")
	b := MealImageKey(".jpg")
	if !strings.HasPrefix(a, "meals/") || !strings.HasSuffix(a, ".jpg") {
		t.Errorf("MealImageKey(jpg) = %q", a)
	}
	if !strings.HasSuffix(b, ".jpg") || strings.HasSuffix(b, "..jpg") {
		t.Errorf("MealImageKey(.jpg) = %q", b)
	}
	if a == b {
		t.Error("MealImageKey returned the same key twice")
	}
	if got := MealImageKey(""); !strings.HasSuffix(got, ".bin") {
		t.Errorf("MealImageKey(\"\") = %q, want .bin suffix", got)
	}
}

func TestNewStorageURLs(t *testing.T) {
	tests := []struct {
		name      string
		publicURL string
		want      string
	}{
		{name: "proxied", want: "/api/v1/images/meals/a.jpg"},
		{name: "public", publicURL: "https://cdn.example.com/", want: "https://cdn.example.com/meals/a.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewStorage(&config.StorageConfig{
				Endpoint:  "localhost:9000",
				AccessKey: "minio",
				SecretKey: "minio123",
				Bucket:    "meals",
				PublicURL: tt.publicURL,
			}, "/api/v1/images/")
			if err != nil {
				t.Fatalf("NewStorage() error = %v", err)
			}
			if s.storeType != StorageTypeS3Compatible {
				t.Errorf("storeType = %q", s.storeType)
			}
			if got := s.GetURL("meals/a.jpg"); got != tt.want {
				t.Errorf("GetURL() = %q, want %q", got, tt.want)
			}
			if got := s.GetURL(""); got != "" {
				t.Errorf("GetURL(\"\") = %q, want empty", got)
			}
		})
	}
}

func TestNewStorageRequiresBucket(t *testing.T) {
	if _, err := NewStorage(&config.StorageConfig{Endpoint: "localhost:9000"}, ""); err == nil {
		t.Error("expected error for empty bucket")
	}
}
