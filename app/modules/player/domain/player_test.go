package playerdomain

import (
	"errors"
	"testing"

	"github.com/Black-And-White-Club/frolf-broadcast/app/shared"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
)

func par3Layout() Layout {
	l := Layout{}
	for h := 1; h <= HoleCount; h++ {
		l[h] = Hole{Number: h, Par: 3, Length: 90 + h}
	}
	return l
}

func newTestPlayer() *Player {
	return NewPlayer("p1", gofakeit.FirstName(), gofakeit.LastName(), Division{ID: "d1", Name: "Mixed Pro Open", ShortName: "MPO"}, par3Layout())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		throws, par int
		want        Classification
		color, clip string
	}{
		{1, 4, Ace, "#B300FF", "ace.mov"},
		{2, 5, Albatross, "#FF00C3", "albatross.mov"},
		{1, 5, Ace, "#B300FF", "ace.mov"},
		{2, 6, Albatross, "#FF00C3", "albatross.mov"},
		{1, 3, Eagle, "#F6C600", "eagle.mov"},
		{2, 3, Birdie, "#3FA531", "birdie.mov"},
		{3, 3, Par, "#7E8490", "par.mov"},
		{4, 3, Bogey, "#F2664B", "bogey.mov"},
		{5, 3, DoubleBogey, "#D8441E", "double_bogey.mov"},
		{6, 3, TripleBogey, "#B7320D", "triple_bogey.mov"},
		{7, 3, Ouch, "#8C1D00", "ouch.mov"},
		{12, 3, Ouch, "#8C1D00", "ouch.mov"},
	}

	for _, tt := range tests {
		got := Classify(tt.throws, tt.par)
		if got != tt.want {
			t.Fatalf("Classify(%d, %d) = %v, want %v", tt.throws, tt.par, got, tt.want)
		}
		if got.Color() != tt.color || got.Clip() != tt.clip {
			t.Fatalf("%v assets = (%s, %s), want (%s, %s)", got, got.Color(), got.Clip(), tt.color, tt.clip)
		}
	}
}

func TestIncreaseScore_ThreeHoles(t *testing.T) {
	p := newTestPlayer()

	for _, throws := range []int{3, 4, 3} {
		p.PendingThrows = throws
		if _, err := p.IncreaseScore(); err != nil {
			t.Fatalf("IncreaseScore: %v", err)
		}
	}

	if p.RoundScore != 1 || p.TotalScore != 1 {
		t.Fatalf("expected round=total=+1, got round=%d total=%d", p.RoundScore, p.TotalScore)
	}
	if p.ShownUpUntil != 3 {
		t.Fatalf("expected ShownUpUntil 3, got %d", p.ShownUpUntil)
	}
	if p.PendingThrows != 0 {
		t.Fatalf("pending throws should be cleared")
	}
	res, _ := p.Round.Get(2)
	if res.Classification() != Bogey {
		t.Fatalf("hole 2 should be a bogey, got %v", res.Classification())
	}
}

func TestIncreaseScore_UsesKnownResult(t *testing.T) {
	p := newTestPlayer()
	if _, err := p.ApplyRemote(1, 2); err != nil {
		t.Fatal(err)
	}

	res, err := p.IncreaseScore()
	if err != nil {
		t.Fatalf("IncreaseScore: %v", err)
	}
	if !res.Finished || res.Throws != 2 {
		t.Fatalf("unexpected committed result %+v", res)
	}
	if p.RoundScore != -1 {
		t.Fatalf("expected -1, got %d", p.RoundScore)
	}
}

func TestIncreaseScore_Errors(t *testing.T) {
	p := newTestPlayer()
	if _, err := p.IncreaseScore(); !errors.Is(err, ErrNoThrows) || !errors.Is(err, shared.ErrData) {
		t.Fatalf("expected ErrNoThrows, got %v", err)
	}
	if p.ShownUpUntil != 0 || len(p.Round.Results()) != 0 {
		t.Fatalf("failed call must not mutate")
	}

	p.ShownUpUntil = HoleCount
	if _, err := p.IncreaseScore(); !errors.Is(err, ErrRoundComplete) {
		t.Fatalf("expected ErrRoundComplete, got %v", err)
	}
}

func TestIncreaseRevertRoundTrip(t *testing.T) {
	for start := 0; start < HoleCount; start++ {
		p := newTestPlayer()
		p.SetPreviousRounds([]int{-4, 2})
		for h := 1; h <= start; h++ {
			p.PendingThrows = 2 + h%3
			if _, err := p.IncreaseScore(); err != nil {
				t.Fatalf("setup hole %d: %v", h, err)
			}
		}
		round, total, shown := p.RoundScore, p.TotalScore, p.ShownUpUntil

		n := HoleCount - start
		for i := 0; i < n; i++ {
			p.PendingThrows = 1 + i%5
			if _, err := p.IncreaseScore(); err != nil {
				t.Fatalf("start %d increase %d: %v", start, i, err)
			}
		}
		for i := 0; i < n; i++ {
			p.RevertHoleScore()
		}

		if p.RoundScore != round || p.TotalScore != total || p.ShownUpUntil != shown {
			t.Fatalf("start %d: got (%d, %d, %d), want (%d, %d, %d)",
				start, p.RoundScore, p.TotalScore, p.ShownUpUntil, round, total, shown)
		}
	}
}

func TestRevertHoleScore_NoOpAtZero(t *testing.T) {
	p := newTestPlayer()
	p.RevertHoleScore()
	if p.ShownUpUntil != 0 || p.RoundScore != 0 {
		t.Fatalf("revert at hole 0 must be a no-op")
	}
}

func TestResetScores(t *testing.T) {
	p := newTestPlayer()
	p.SetPreviousRounds([]int{-3, -1})
	for _, throws := range []int{2, 2, 4} {
		p.PendingThrows = throws
		if _, err := p.IncreaseScore(); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := p.ApplyRemote(7, 3); err != nil {
		t.Fatal(err)
	}

	p.ResetScores()

	if p.RoundScore != 0 || p.TotalScore != -4 || p.ShownUpUntil != 0 {
		t.Fatalf("unexpected reset state round=%d total=%d shown=%d", p.RoundScore, p.TotalScore, p.ShownUpUntil)
	}
	if _, ok := p.Round.Get(7); ok {
		t.Fatalf("unshown result should be discarded")
	}
	if _, ok := p.Round.Get(3); !ok {
		t.Fatalf("shown result should be kept for replay")
	}

	// Replaying the kept holes restores the same on-air score.
	for i := 0; i < 3; i++ {
		if _, err := p.IncreaseScore(); err != nil {
			t.Fatal(err)
		}
	}
	if p.RoundScore != -1 || p.TotalScore != -5 {
		t.Fatalf("replay mismatch round=%d total=%d", p.RoundScore, p.TotalScore)
	}
}

func TestApplyRemote(t *testing.T) {
	p := newTestPlayer()
	p.PendingThrows = 3
	if _, err := p.IncreaseScore(); err != nil {
		t.Fatal(err)
	}

	changed, err := p.ApplyRemote(1, 4)
	if err != nil || !changed {
		t.Fatalf("expected change, got %v %v", changed, err)
	}
	if p.RoundScore != 1 || p.TotalScore != 1 {
		t.Fatalf("on-air hole correction should move the score, got %d/%d", p.RoundScore, p.TotalScore)
	}

	changed, err = p.ApplyRemote(1, 4)
	if err != nil || changed {
		t.Fatalf("identical result should not change, got %v %v", changed, err)
	}

	changed, _ = p.ApplyRemote(5, 2)
	if !changed || p.RoundScore != 1 {
		t.Fatalf("unshown hole must not move the on-air score")
	}
	if got := p.Round.Score(); got != 0 {
		t.Fatalf("results score = %d, want 0", got)
	}

	if _, err := p.ApplyRemote(19, 3); !errors.Is(err, ErrInvalidHole) {
		t.Fatalf("expected ErrInvalidHole, got %v", err)
	}

	// Revert still restores exactly after a correction.
	p.RevertHoleScore()
	if p.RoundScore != 0 || p.TotalScore != 0 {
		t.Fatalf("revert after correction: %d/%d", p.RoundScore, p.TotalScore)
	}
}

func holes(results []HoleResult) []int {
	out := make([]int, len(results))
	for i, r := range results {
		if r.Blank {
			out[i] = 0
			continue
		}
		out[i] = r.Hole
	}
	return out
}

func TestLatestHoles(t *testing.T) {
	tests := []struct {
		name   string
		played []int
		start  int
		k      int
		want   []int
	}{
		{name: "pads when few holes", played: []int{1, 2}, start: 1, k: 4, want: []int{0, 0, 1, 2}},
		{name: "takes most recent", played: []int{1, 2, 3, 4, 5}, start: 1, k: 3, want: []int{3, 4, 5}},
		{name: "staggered start wraps", played: []int{14, 15, 16, 17, 18, 1, 2}, start: 14, k: 4, want: []int{17, 18, 1, 2}},
		{name: "staggered start before wrap", played: []int{5, 6, 7}, start: 5, k: 3, want: []int{5, 6, 7}},
		{name: "late holes sort first once the key wraps", played: []int{5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}, start: 5, k: 3, want: []int{12, 13, 14}},
		{name: "complete round uses hole order", played: []int{7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 1, 2, 3, 4, 5, 6}, start: 7, k: 3, want: []int{16, 17, 18}},
		{name: "nothing played", played: nil, start: 1, k: 2, want: []int{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlayer()
			for _, h := range tt.played {
				if _, err := p.ApplyRemote(h, 3); err != nil {
					t.Fatal(err)
				}
			}
			got := holes(p.Round.LatestHoles(tt.k, tt.start))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("LatestHoles mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	cases := map[int]string{0: "E", 3: "+3", -2: "-2"}
	for in, want := range cases {
		if got := FormatScore(in); got != want {
			t.Fatalf("FormatScore(%d) = %q, want %q", in, got, want)
		}
	}
	if FormatThru(18) != "F" || FormatThru(9) != "9" {
		t.Fatalf("unexpected FormatThru")
	}
}

func TestPlayerCommands(t *testing.T) {
	p := NewPlayer("p1", "Kristin", "Tattar", Division{ID: "f", Name: "FPO", ShortName: "FPO"}, par3Layout())
	p.PendingThrows = 2
	if _, err := p.IncreaseScore(); err != nil {
		t.Fatal(err)
	}

	cmds := p.Commands("T2")
	if len(cmds) != 6+3*HoleCount {
		t.Fatalf("expected %d commands, got %d", 6+3*HoleCount, len(cmds))
	}
	if cmds[0].Value != "Kristin" || cmds[2].Value != "-1" || cmds[4].Value != "1" || cmds[5].Value != "T2" {
		t.Fatalf("unexpected header commands: %+v", cmds[:6])
	}

	hole1 := p.HoleCommands(1)
	if hole1[0].Value != "2" || hole1[1].Value != Birdie.Color() {
		t.Fatalf("unexpected hole 1 commands: %+v", hole1)
	}
	hole2 := p.HoleCommands(2)
	if hole2[0].Value != "" || hole2[1].Value != BlankColor {
		t.Fatalf("unshown hole should be blank: %+v", hole2)
	}
}
