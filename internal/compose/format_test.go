package compose

import (
	"strings"
	"testing"
)

func TestFormat_StripsEntryReferences(t *testing.T) {
	t.Parallel()

	got := Format("According to Knowledge Entry 3: the Mensa is in Building 8. Entry 1 also mentions it.")
	if strings.Contains(got, "Entry") {
		t.Errorf("entry references should be stripped, got %q", got)
	}
}

func TestFormat_BoldsSystemNamesAndEmails(t *testing.T) {
	t.Parallel()

	got := Format("Log in to TUMonline or write to servicedesk@tum.de for help.")
	if !strings.Contains(got, "**TUMonline**") {
		t.Errorf("system name should be bold, got %q", got)
	}
	if !strings.Contains(got, "**servicedesk@tum.de**") {
		t.Errorf("email should be bold, got %q", got)
	}
}

func TestFormat_BreaksNumberedLists(t *testing.T) {
	t.Parallel()

	got := Format("Do the following: 1. Open the portal 2. Sign in")
	if !strings.Contains(got, "\n\n1. ") || !strings.Contains(got, "\n\n2. ") {
		t.Errorf("numbered items should start on their own lines, got %q", got)
	}
}

func TestFormat_CollapsesBlankLines(t *testing.T) {
	t.Parallel()

	got := Format("First paragraph.\n\n\n\nSecond paragraph.")
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("runs of blank lines should collapse, got %q", got)
	}
}

func TestFormat_TrimsWhitespace(t *testing.T) {
	t.Parallel()

	if got := Format("  hello  \n"); got != "hello" {
		t.Errorf("Format = %q, want %q", got, "hello")
	}
}
