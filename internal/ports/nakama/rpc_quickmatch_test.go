package nakama

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/heroiclabs/nakama-common/api"
)

type mockMatchLister struct {
	matches []*api.Match
	query   string
	created []string
}

func (m *mockMatchLister) MatchList(ctx context.Context, limit int, authoritative bool, label string, minSize, maxSize *int, query string) ([]*api.Match, error) {
	m.query = query
	return m.matches, nil
}

func (m *mockMatchLister) MatchCreate(ctx context.Context, module string, params map[string]interface{}) (string, error) {
	m.created = append(m.created, module)
	return "new-match", nil
}

func TestQuickMatchJoinsOpenLobby(t *testing.T) {
	nk := &mockMatchLister{matches: []*api.Match{{MatchId: "open-match"}}}
	out, err := quickMatch(context.Background(), noopLogger{}, nk)
	if err != nil {
		t.Fatalf("quickMatch: %v", err)
	}
	var resp QuickMatchResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.MatchID != "open-match" || resp.IsNew {
		t.Fatalf("resp = %+v", resp)
	}
	for _, part := range []string{"+label.game:marbles", "+label.phase:lobby", "+label.open:>=1"} {
		if !strings.Contains(nk.query, part) {
			t.Fatalf("query %q missing %q", nk.query, part)
		}
	}
	if len(nk.created) != 0 {
		t.Fatal("created a match while one was open")
	}
}

func TestQuickMatchCreatesWhenNoneOpen(t *testing.T) {
	nk := &mockMatchLister{}
	out, err := quickMatch(context.Background(), noopLogger{}, nk)
	if err != nil {
		t.Fatalf("quickMatch: %v", err)
	}
	var resp QuickMatchResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.MatchID != "new-match" || !resp.IsNew {
		t.Fatalf("resp = %+v", resp)
	}
	if len(nk.created) != 1 || nk.created[0] != MatchNameMarbles {
		t.Fatalf("created = %v", nk.created)
	}
}
