package workflow

import "testing"

func TestParseCallback_ActionOnly(t *testing.T) {
	cb := ParseCallback("wf:cancel")
	if cb == nil {
		t.Fatal("ParseCallback returned nil")
	}
	if cb.Action != ActionCancel || cb.Value != "" {
		t.Errorf("got %+v, want action=cancel value=empty", cb)
	}
	if !cb.IsCancel() {
		t.Error("IsCancel = false")
	}
}

func TestParseCallback_ActionAndValue(t *testing.T) {
	cb := ParseCallback("wf:select:abc-123")
	if cb == nil {
		t.Fatal("ParseCallback returned nil")
	}
	if !cb.IsSelect() || cb.SelectedID() != "abc-123" {
		t.Errorf("got %+v, want select abc-123", cb)
	}
}

func TestParseCallback_ValueKeepsColons(t *testing.T) {
	// UUIDs are safe, but any value with a colon must survive whole.
	cb := ParseCallback("wf:select:a:b:c")
	if cb.Value != "a:b:c" {
		t.Errorf("Value = %q, want a:b:c", cb.Value)
	}
}

func TestParseCallback_ForeignPrefix(t *testing.T) {
	if cb := ParseCallback("crops:page:2"); cb != nil {
		t.Errorf("ParseCallback on foreign prefix = %+v, want nil", cb)
	}
	if IsWorkflowCallback("crops:page:2") {
		t.Error("IsWorkflowCallback accepted a foreign prefix")
	}
}

func TestBuildCallback_RoundTrip(t *testing.T) {
	data := BuildCallback(ActionDate, DateYesterday)
	if data != "wf:date:yesterday" {
		t.Fatalf("BuildCallback = %q", data)
	}
	cb := ParseCallback(data)
	if !cb.IsDate() || cb.DateValue() != DateYesterday {
		t.Errorf("round trip lost data: %+v", cb)
	}
}

func TestBuildCallback_NoValue(t *testing.T) {
	if got := BuildCallback(ActionSkip); got != "wf:skip" {
		t.Errorf("BuildCallback = %q, want wf:skip", got)
	}
	if got := BuildCallback(ActionSkip, ""); got != "wf:skip" {
		t.Errorf("BuildCallback with empty value = %q, want wf:skip", got)
	}
}

func TestPageNumber(t *testing.T) {
	if n := ParseCallback("wf:page:3").PageNumber(); n != 3 {
		t.Errorf("PageNumber = %d, want 3", n)
	}
	if n := ParseCallback("wf:page:junk").PageNumber(); n != 0 {
		t.Errorf("PageNumber on junk = %d, want 0", n)
	}
	if n := ParseCallback("wf:select:3").PageNumber(); n != 0 {
		t.Errorf("PageNumber on select = %d, want 0", n)
	}
}
