package service

import (
	"context"
	"strings"
	"testing"

	"github.com/SlickbitTechnologies/ContractFlow/config"
)

func TestNewArchiveService(t *testing.T) {
	cfg := &config.ArchiveConfig{
		Endpoint:  "localhost:9000",
		AccessKey: "test",
		SecretKey: "test",
		Bucket:    "test",
		UseSSL:    false,
	}

	svc, err := NewArchiveService(cfg)
	// Client creation does not connect; the first operation does
	if err != nil {
		t.Logf("NewArchiveService returned error: %v", err)
	} else if svc == nil {
		t.Error("Expected non-nil service")
	}
}

func TestArchivePublicURL(t *testing.T) {
	tests := []struct {
		name       string
		useSSL     bool
		endpoint   string
		bucket     string
		objectName string
		expected   string
	}{
		{
			name:       "http url",
			useSSL:     false,
			endpoint:   "localhost:9000",
			bucket:     "contract-archive",
			objectName: "batch-1/acme.pdf",
			expected:   "http://localhost:9000/contract-archive/batch-1/acme.pdf",
		},
		{
			name:       "https url",
			useSSL:     true,
			endpoint:   "minio.example.com",
			bucket:     "contracts",
			objectName: "batch-2/globex.docx",
			expected:   "https://minio.example.com/contracts/batch-2/globex.docx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &ArchiveService{
				bucket: tt.bucket,
				config: &config.ArchiveConfig{
					Endpoint: tt.endpoint,
					UseSSL:   tt.useSSL,
				},
			}

			result := svc.PublicURL(tt.objectName)
			if result != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, result)
			}
		})
	}
}

func TestArchiveWithCancelledContext(t *testing.T) {
	cfg := &config.ArchiveConfig{
		Endpoint:   "localhost:9000",
		AccessKey:  "test",
		SecretKey:  "test",
		Bucket:     "test",
		UseSSL:     false,
		ExpireDays: 7,
	}

	svc, err := NewArchiveService(cfg)
	if err != nil {
		t.Skip("Could not create archive service")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := svc.Store(ctx, "test", strings.NewReader("test"), 4, "text/plain"); err == nil {
		t.Log("Store with cancelled context - error handling depends on client implementation")
	}
}
