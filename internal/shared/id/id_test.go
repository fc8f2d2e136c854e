package id

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	if id1.String() == id2.String() {
		t.Error("Generated IDs should be unique")
	}
}

func TestGenerateString(t *testing.T) {
	gen := NewGenerator()

	id := gen.GenerateString()

	if len(id) != 26 {
		t.Errorf("ULID should be 26 characters, got %d", len(id))
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	gen := NewGenerator()

	for _, prefix := range []string{RequestPrefix, WorkflowPrefix} {
		id := gen.GenerateWithPrefix(prefix)
		if !strings.HasPrefix(id, prefix+"_") {
			t.Errorf("ID %q should start with %q", id, prefix+"_")
		}
	}
}

func TestTypedGenerators(t *testing.T) {
	req := NewRequestID()
	wf := NewWorkflowID()

	if !strings.HasPrefix(req.String(), "req_") {
		t.Errorf("request ID %q missing req_ prefix", req)
	}
	if !strings.HasPrefix(wf.String(), "wf_") {
		t.Errorf("workflow ID %q missing wf_ prefix", wf)
	}
}

func TestIsValid(t *testing.T) {
	gen := NewGenerator()

	if !IsValid(gen.GenerateString()) {
		t.Error("generated ULID should be valid")
	}
	if IsValid("not-a-ulid") {
		t.Error("garbage should not validate")
	}
}
