package service

import (
	"errors"
	"testing"
)

func TestBusyStateSingleSlot(t *testing.T) {
	var b busyState

	if b.Current() != "" {
		t.Error("Expected idle state initially")
	}

	if err := b.begin(OpUploading); err != nil {
		t.Fatalf("Expected to claim idle slot, got %v", err)
	}
	if b.Current() != OpUploading {
		t.Errorf("Expected uploading, got %s", b.Current())
	}

	// Second trigger is rejected, not queued
	if err := b.begin(OpDeleting); !errors.Is(err, ErrBusy) {
		t.Errorf("Expected ErrBusy, got %v", err)
	}

	b.end()
	if b.Current() != "" {
		t.Error("Expected idle after end")
	}

	if err := b.begin(OpSaving); err != nil {
		t.Errorf("Expected to claim slot after release, got %v", err)
	}
}

func TestOperationMessages(t *testing.T) {
	tests := []struct {
		op       Operation
		expected string
	}{
		{OpUploading, "Uploading and processing..."},
		{OpSaving, "Saving contract..."},
		{OpDeleting, "Please wait, deleting the PDF..."},
		{Operation(""), ""},
	}

	for _, tt := range tests {
		if got := tt.op.Message(); got != tt.expected {
			t.Errorf("Message(%q): expected %q, got %q", tt.op, tt.expected, got)
		}
	}
}
