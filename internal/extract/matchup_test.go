package extract_test

import (
	"testing"

	"github.com/AC350144/ClutchCall/internal/extract"
	"github.com/AC350144/ClutchCall/pkg/models"
)

func TestExtractMatchup(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   models.Matchup
		wantOK bool
	}{
		{
			name:   "vs with trailing line",
			text:   "Lakers vs Celtics -5.5 @ -110",
			want:   models.Matchup{TeamA: "Lakers", TeamB: "Celtics", Game: "Lakers vs Celtics"},
			wantOK: true,
		},
		{
			name:   "at symbol",
			text:   "Warriors @ Nuggets",
			want:   models.Matchup{TeamA: "Warriors", TeamB: "Nuggets", Game: "Warriors vs Nuggets"},
			wantOK: true,
		},
		{
			name:   "at keyword",
			text:   "Lakers at Celtics",
			want:   models.Matchup{TeamA: "Lakers", TeamB: "Celtics", Game: "Lakers vs Celtics"},
			wantOK: true,
		},
		{
			name:   "v dot",
			text:   "Chiefs v. Eagles",
			want:   models.Matchup{TeamA: "Chiefs", TeamB: "Eagles", Game: "Chiefs vs Eagles"},
			wantOK: true,
		},
		{
			name:   "single team total",
			text:   "Lakers over 220",
			want:   models.Matchup{TeamA: "Lakers", TeamB: extract.UnknownTeam, Game: "Lakers"},
			wantOK: true,
		},
		{
			name:   "no matchup",
			text:   "Warriors ML @ +150",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extract.ExtractMatchup(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ExtractMatchup(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ExtractMatchup(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}
