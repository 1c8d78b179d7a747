package clarify

import (
	"context"
	"errors"
	"testing"

	"github.com/tumchatbot/tum-chatbot-go/internal/genai"
	"github.com/tumchatbot/tum-chatbot-go/internal/session"
)

type stubClassifier struct {
	needs  bool
	called bool
}

func (s *stubClassifier) NeedsContext(context.Context, string) bool {
	s.called = true
	return s.needs
}

func TestNeedsInfo_BothKnownNeverAsks(t *testing.T) {
	t.Parallel()

	cl := &stubClassifier{needs: true}
	e := New(cl)
	uc := session.Context{Role: "student", Campus: "Garching"}

	if got := e.NeedsInfo(context.Background(), "where can I park?", uc); got != MissingNone {
		t.Errorf("NeedsInfo = %q, want none", got)
	}
	if cl.called {
		t.Error("classifier must not run when context is complete")
	}
}

func TestNeedsInfo_RoleKnownCampusOnlyForLocationQuestions(t *testing.T) {
	t.Parallel()

	e := New(&stubClassifier{needs: true})
	uc := session.Context{Role: "employee"}

	if got := e.NeedsInfo(context.Background(), "Where is the library?", uc); got != MissingCampus {
		t.Errorf("location question = %q, want campus", got)
	}
	if got := e.NeedsInfo(context.Background(), "How do I submit a travel request?", uc); got != MissingNone {
		t.Errorf("non-location question = %q, want none", got)
	}
}

func TestNeedsInfo_PersonalConversationSkipsClassifier(t *testing.T) {
	t.Parallel()

	cl := &stubClassifier{needs: true}
	e := New(cl)

	for _, query := range []string{"hi", "i am sad", "i miss my mom", "good morning"} {
		if got := e.NeedsInfo(context.Background(), query, session.Context{}); got != MissingNone {
			t.Errorf("NeedsInfo(%q) = %q, want none", query, got)
		}
	}
	if cl.called {
		t.Error("classifier must not run for personal conversation")
	}
}

func TestNeedsInfo_ClassifierDecidesMissingFields(t *testing.T) {
	t.Parallel()

	e := New(&stubClassifier{needs: true})

	if got := e.NeedsInfo(context.Background(), "how to get a laptop?", session.Context{}); got != MissingBoth {
		t.Errorf("empty context = %q, want both", got)
	}
	if got := e.NeedsInfo(context.Background(), "how to get a laptop?", session.Context{Campus: "Munich"}); got != MissingRole {
		t.Errorf("campus only = %q, want role", got)
	}
}

func TestNeedsInfo_ClassifierSaysNo(t *testing.T) {
	t.Parallel()

	e := New(&stubClassifier{needs: false})
	if got := e.NeedsInfo(context.Background(), "what is the eduroam setup procedure?", session.Context{}); got != MissingNone {
		t.Errorf("NeedsInfo = %q, want none when classifier declines", got)
	}
}

func TestNeedsInfo_NilClassifierNeverAsks(t *testing.T) {
	t.Parallel()

	e := New(nil)
	if got := e.NeedsInfo(context.Background(), "how to get a laptop?", session.Context{}); got != MissingNone {
		t.Errorf("NeedsInfo = %q, want none with static classifier", got)
	}
}

func TestIsPersonalConversation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query string
		want  bool
	}{
		{"hi", true},
		{"thank you so much", true},
		{"i feel tired", true},
		{"the weather is nice today", true},
		{"i need wifi", false},  // short first-person, but a service request
		{"i need a hug", true},  // short first-person, emotional
		{"how do I get reimbursed for travel expenses", false},
		{"wo ist der eduroam zugang", false},
	}
	for _, tt := range tests {
		if got := isPersonalConversation(tt.query); got != tt.want {
			t.Errorf("isPersonalConversation(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestMissingPrompt(t *testing.T) {
	t.Parallel()

	if MissingNone.Prompt() != "" {
		t.Error("none should have no prompt")
	}
	for _, m := range []Missing{MissingRole, MissingCampus, MissingBoth} {
		if m.Prompt() == "" {
			t.Errorf("%q should have a prompt", m)
		}
	}
}

type fakeOracle struct {
	resp string
	err  error
}

func (f *fakeOracle) Generate(_ context.Context, _ genai.Request) (string, error) {
	return f.resp, f.err
}

func (f *fakeOracle) Provider() genai.Provider { return genai.ProviderGemini }

func TestOracleClassifier(t *testing.T) {
	t.Parallel()

	if !NewOracleClassifier(&fakeOracle{resp: "YES"}).NeedsContext(context.Background(), "where to eat?") {
		t.Error("YES answer should need context")
	}
	if NewOracleClassifier(&fakeOracle{resp: "no"}).NeedsContext(context.Background(), "hi") {
		t.Error("NO answer should not need context")
	}
	// Oracle failure resolves to NO so users are never trapped waiting
	// for a clarification that cannot be evaluated.
	if NewOracleClassifier(&fakeOracle{err: errors.New("boom")}).NeedsContext(context.Background(), "where to eat?") {
		t.Error("oracle failure should resolve to no context needed")
	}
}
