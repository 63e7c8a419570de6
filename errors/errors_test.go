package errors

import "testing"

func TestSentinelWrapping(t *testing.T) {
	err := NewNotFoundError("template '%s' has no stored versions", "copywriter")
	if !IsNotFoundError(err) {
		t.Errorf("NewNotFoundError result should satisfy IsNotFoundError")
	}
	if IsInvalidRequestError(err) {
		t.Errorf("not-found error should not satisfy IsInvalidRequestError")
	}

	wrapped := Wrap(err, "loading template")
	if !IsNotFoundError(wrapped) {
		t.Errorf("wrapping must preserve the sentinel")
	}
}

func TestInvalidRequest(t *testing.T) {
	err := NewInvalidRequestError("top-level JSON value is %s, want array", "object")
	if !IsInvalidRequestError(err) {
		t.Errorf("NewInvalidRequestError result should satisfy IsInvalidRequestError")
	}
	if IsNotFoundError(err) {
		t.Errorf("invalid-request error should not satisfy IsNotFoundError")
	}
}

func TestNilErrors(t *testing.T) {
	if IsNotFoundError(nil) || IsInvalidRequestError(nil) {
		t.Errorf("nil error must not match any sentinel")
	}
}
