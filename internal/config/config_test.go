package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("DATABASE_NAME", "deeds")
	t.Setenv("COLLECTION_NAME", "documents")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "test-project")
	t.Setenv("DOCUMENT_AI_PROCESSOR_ID", "abc123")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.OpenAIModel != "gpt-3.5-turbo" {
		t.Errorf("OpenAIModel = %q, want gpt-3.5-turbo", cfg.OpenAIModel)
	}
	if cfg.OCRProvider != OCRProviderDocumentAI {
		t.Errorf("OCRProvider = %q, want documentai", cfg.OCRProvider)
	}
	if cfg.ProcessInterval != 5*time.Second {
		t.Errorf("ProcessInterval = %v, want 5s", cfg.ProcessInterval)
	}
	if cfg.HTTPAddr != ":8000" {
		t.Errorf("HTTPAddr = %q, want :8000", cfg.HTTPAddr)
	}
	if cfg.GoogleCloudLocation != "us" {
		t.Errorf("GoogleCloudLocation = %q, want us", cfg.GoogleCloudLocation)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("MONGODB_URI", "")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "MONGODB_URI") {
		t.Fatalf("err = %v, want MONGODB_URI requirement", err)
	}
}

func TestLoadVisionProviderSkipsProcessorRequirement(t *testing.T) {
	setRequired(t)
	t.Setenv("OCR_PROVIDER", "vision")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")
	t.Setenv("DOCUMENT_AI_PROCESSOR_ID", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OCRProvider != OCRProviderVision {
		t.Errorf("OCRProvider = %q, want vision", cfg.OCRProvider)
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	setRequired(t)
	t.Setenv("OCR_PROVIDER", "tesseract")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "OCR_PROVIDER") {
		t.Fatalf("err = %v, want OCR_PROVIDER rejection", err)
	}
}

func TestLoadRejectsBadInterval(t *testing.T) {
	setRequired(t)
	t.Setenv("PROCESS_INTERVAL", "whenever")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "PROCESS_INTERVAL") {
		t.Fatalf("err = %v, want PROCESS_INTERVAL rejection", err)
	}
}
