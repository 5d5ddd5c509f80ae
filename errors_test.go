package bmpscale

import (
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	err := fmt.Errorf("some error")
	if IsNotFound(err) {
		t.Log("plain error is wrongly recognized as not found")
		t.Fail()
	}

	err = NewError(FileNotFound, "no such file")
	if !IsNotFound(err) {
		t.Log("not found error is not recognized")
		t.Fail()
	}

	err = fmt.Errorf("wrapped: %w", err)
	if !IsNotFound(err) {
		t.Log("wrapped not found error is not recognized")
		t.Fail()
	}
}

func TestKindOf(t *testing.T) {
	if k := KindOf(nil); k != UnknownError {
		t.Errorf("expected unknown kind for nil, got %v", k)
	}

	err := NewError(TruncatedFile, "short read at %d", 12)
	if k := KindOf(err); k != TruncatedFile {
		t.Errorf("expected %v, got %v", TruncatedFile, k)
	}
	if IsBadSignature(err) {
		t.Errorf("truncated file wrongly recognized as bad signature")
	}
}
