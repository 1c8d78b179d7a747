package session

import (
	"fmt"
	"testing"
	"time"
)

func newTestSession() *Session {
	now := time.Now()
	return &Session{
		ID:         "test",
		UserID:     "user-1",
		CreatedAt:  now,
		LastActive: now,
		maxHistory: 12,
	}
}

func TestSetRole(t *testing.T) {
	t.Parallel()

	s := newTestSession()

	if !s.SetRole("Student") {
		t.Error("valid role should be accepted")
	}
	if s.Context.Role != "student" {
		t.Errorf("role = %q, want student (lowercased)", s.Context.Role)
	}
	if s.SetRole("student") {
		t.Error("unchanged role should report false")
	}
	if s.SetRole("wizard") {
		t.Error("unknown role should be rejected")
	}
	if s.SetRole("") {
		t.Error("empty role should be rejected")
	}
	if s.Context.Role != "student" {
		t.Error("rejected updates must not clear the role")
	}
}

func TestSetCampus(t *testing.T) {
	t.Parallel()

	s := newTestSession()

	if !s.SetCampus("Heilbronn") {
		t.Error("valid campus should be accepted")
	}
	if s.SetCampus("Atlantis") {
		t.Error("unknown campus should be rejected")
	}
	if s.SetCampus("") {
		t.Error("empty campus should be rejected")
	}
	if s.Context.Campus != "Heilbronn" {
		t.Error("rejected updates must not clear the campus")
	}

	// Context is monotonic but updatable
	if !s.SetCampus("Garching") {
		t.Error("campus change should be accepted")
	}
	if s.Context.Campus != "Garching" {
		t.Errorf("campus = %q, want Garching", s.Context.Campus)
	}
}

func TestContextComplete(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	if s.Context.Complete() {
		t.Error("empty context should not be complete")
	}
	s.SetRole("student")
	if s.Context.Complete() {
		t.Error("role-only context should not be complete")
	}
	s.SetCampus("Munich")
	if !s.Context.Complete() {
		t.Error("role+campus context should be complete")
	}
}

func TestAppendExchange_HistoryCap(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	for i := 0; i < 10; i++ {
		s.AppendExchange(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	if len(s.History) != 12 {
		t.Fatalf("history length = %d, want 12", len(s.History))
	}
	// Oldest entries evicted first: history starts at exchange 4
	if s.History[0].Content != "q4" {
		t.Errorf("oldest entry = %q, want q4", s.History[0].Content)
	}
	if s.History[11].Content != "a9" {
		t.Errorf("newest entry = %q, want a9", s.History[11].Content)
	}
}

func TestRecentHistory(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	s.AppendExchange("q1", "a1")
	s.AppendExchange("q2", "a2")

	recent := s.RecentHistory(2)
	if len(recent) != 2 {
		t.Fatalf("got %d entries, want 2", len(recent))
	}
	if recent[0].Content != "q2" || recent[1].Content != "a2" {
		t.Errorf("recent = %q, %q", recent[0].Content, recent[1].Content)
	}

	if got := s.RecentHistory(100); len(got) != 4 {
		t.Errorf("oversized request should return all %d entries, got %d", 4, len(got))
	}
	if got := s.RecentHistory(0); got != nil {
		t.Error("zero request should return nil")
	}
}

func TestPendingProtocol(t *testing.T) {
	t.Parallel()

	s := newTestSession()

	if _, ok := s.TakePending(); ok {
		t.Error("fresh session should have no pending query")
	}

	s.SetPending("where is the mensa")
	query, ok := s.TakePending()
	if !ok || query != "where is the mensa" {
		t.Errorf("TakePending = %q, %v", query, ok)
	}

	// TakePending clears the state
	if _, ok := s.TakePending(); ok {
		t.Error("pending query should be cleared after TakePending")
	}
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	s.SetRole("employee")
	s.SetCampus("Munich")
	s.AppendExchange("q", "a")

	info := s.Snapshot()
	if info.SessionID != "test" || info.UserID != "user-1" {
		t.Errorf("snapshot identity = %s/%s", info.SessionID, info.UserID)
	}
	if info.Role != "employee" || info.Campus != "Munich" {
		t.Errorf("snapshot context = %s/%s", info.Role, info.Campus)
	}
	if info.HistoryCount != 2 {
		t.Errorf("snapshot history count = %d, want 2", info.HistoryCount)
	}
}

func TestIsValidRole(t *testing.T) {
	t.Parallel()

	for _, role := range []string{"student", "employee", "professor", "lecturer", "visitor", "phd", "postdoc", "Student"} {
		if !IsValidRole(role) {
			t.Errorf("IsValidRole(%q) should be true", role)
		}
	}
	if IsValidRole("wizard") || IsValidRole("") {
		t.Error("unknown roles should be invalid")
	}
}

func TestIsValidCampus(t *testing.T) {
	t.Parallel()

	for _, campus := range []string{"Munich", "Garching", "Heilbronn", "Weihenstephan"} {
		if !IsValidCampus(campus) {
			t.Errorf("IsValidCampus(%q) should be true", campus)
		}
	}
	if IsValidCampus("munich") {
		t.Error("campus names are canonical capitalized forms")
	}
}
