package investor

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchslap/pitchslap/internal/pitch"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestGenerateDealDeterministic(t *testing.T) {
	d := GenerateDeal(pitch.FixedChooser(0), testNow)

	assert.Equal(t, QualityGreat, d.Quality)
	assert.Equal(t, "B2B SaaS", d.Category)
	assert.Equal(t, "DataFlow", d.CompanyName)
	assert.Equal(t, "DataFlow is a project management platform that helps mid-market companies reduce project delays by 40%. "+
		"We have 500+ paying customers and $50K MRR growing 15% monthly. Our team includes ex-Google PM and ex-Salesforce engineer.", d.Pitch)
	assert.Equal(t, "$1M", d.Valuation)
	assert.Equal(t, "Serial entrepreneur with 2 exits", d.Founders)
	assert.Equal(t, "10% month-over-month growth", d.Traction)
	assert.Contains(t, d.ID, "deal_")
	assert.NotEmpty(t, d.GreenFlags)
	assert.Empty(t, d.RedFlags)

	uber := GenerateDeal(pitch.FixedChooser(2), testNow)
	assert.Equal(t, QualityTerrible, uber.Quality)
	assert.Equal(t, "Uber for X", uber.Category)
	assert.Equal(t, "QuickConnect", uber.CompanyName)
	assert.Contains(t, uber.Pitch, "the Uber for house cleaning")
}

func TestGenerateDealFillsEverySlot(t *testing.T) {
	for i := 0; i < 200; i++ {
		d := GenerateDeal(nil, testNow)
		assert.NotContains(t, d.Pitch, "{", d.Pitch)
		assert.NotEmpty(t, d.CompanyName)
	}
}

func TestOfferHidesAnswer(t *testing.T) {
	d := GenerateDeal(pitch.FixedChooser(0), testNow)
	o := d.Offer()
	assert.Equal(t, d.ID, o.ID)
	assert.Equal(t, d.Pitch, o.Pitch)
}

func TestEvaluate(t *testing.T) {
	great := Deal{CompanyName: "DataFlow", Quality: QualityGreat, Outcome: OutcomeSuccess, GreenFlags: []string{"Strong traction", "Experienced team"}}
	pivot := Deal{CompanyName: "ChatFlow", Quality: QualityMediocre, Outcome: OutcomePivot}
	winner := Deal{CompanyName: "Lucky", Quality: QualityMediocre, Outcome: OutcomeSuccess}
	terrible := Deal{CompanyName: "TokenVerse", Quality: QualityTerrible, Outcome: OutcomeFailure, RedFlags: []string{"Buzzword heavy"}}

	tests := []struct {
		name     string
		deal     Deal
		choice   Choice
		correct  bool
		points   int
		explains string
		reaction string
	}{
		{"invest great", great, ChoiceInvest, true, 15, "Excellent call! DataFlow became a major success. Strong traction, Experienced team.", "🎯"},
		{"pass terrible", terrible, ChoicePass, true, 5, "Smart pass! TokenVerse failed spectacularly. Buzzword heavy.", "🧠"},
		{"pass mediocre", pivot, ChoicePass, true, 10, "Good instincts! You correctly identified this as a mediocre opportunity.", "👍"},
		{"invest mediocre winner", winner, ChoiceInvest, true, 10, "Good instincts!", "👍"},
		{"invest terrible", terrible, ChoiceInvest, false, -10, "Ouch! TokenVerse was a complete disaster. Buzzword heavy.", "🤦"},
		{"pass great", great, ChoicePass, false, -5, "You missed a unicorn! DataFlow became a massive success.", "😱"},
		{"invest mediocre pivot", pivot, ChoiceInvest, false, -5, "Wrong call on this one. ChatFlow failed.", "📉"},
		{"pass mediocre winner", winner, ChoicePass, false, -5, "Wrong call on this one. Lucky succeeded.", "📉"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Evaluate(tt.deal, Decision{Choice: tt.choice, Confidence: 3})
			assert.Equal(t, tt.correct, r.Correct)
			assert.Equal(t, tt.points, r.Points)
			assert.Contains(t, r.Explanation, tt.explains)
			assert.Contains(t, r.VCReaction, tt.reaction)
			assert.Contains(t, r.ActualOutcome, tt.deal.CompanyName+" ")
		})
	}
}

func TestParseChoice(t *testing.T) {
	c, err := ParseChoice(" INVEST ")
	require.NoError(t, err)
	assert.Equal(t, ChoiceInvest, c)
	_, err = ParseChoice("maybe")
	require.Error(t, err)
}

func TestRankFor(t *testing.T) {
	assert.Equal(t, "Intern with Coffee", RankFor(100, 4).Name)
	assert.Equal(t, "Junior Associate", RankFor(30, 5).Name)
	assert.Equal(t, "Investment Analyst", RankFor(50, 20).Name)
	assert.Equal(t, "Junior Associate", RankFor(40, 100).Name, "accuracy gates promotion")
	assert.Equal(t, "Warren Buffett Jr.", RankFor(95, 300).Name)
	assert.Len(t, Ranks(), 11)
}

func TestRankProgress(t *testing.T) {
	current, next, progress := RankProgress(60, 3)
	assert.Equal(t, "Intern with Coffee", current.Name)
	assert.Equal(t, "Junior Associate", next.Name)
	assert.InDelta(t, 60.0, progress, 0.001)

	current, next, progress = RankProgress(99, 500)
	assert.Equal(t, current, next)
	assert.Equal(t, 100.0, progress)
}

func TestProfileRecord(t *testing.T) {
	p := NewProfile("player-1")
	p.Record(Result{Correct: true, Points: 15})
	p.Record(Result{Correct: true, Points: 5})
	p.Record(Result{Correct: false, Points: -10})

	assert.Equal(t, 3, p.TotalDeals)
	assert.Equal(t, 2, p.CorrectDecisions)
	assert.Equal(t, 67, p.Accuracy)
	assert.Equal(t, 10, p.TotalPoints)
	assert.Equal(t, 0, p.Streak)
	assert.Equal(t, 2, p.BestStreak)
	assert.Equal(t, "Intern with Coffee", p.Rank)

	for i := 0; i < 2; i++ {
		p.Record(Result{Correct: true, Points: 15})
	}
	assert.Equal(t, 80, p.Accuracy)
	assert.Equal(t, "Junior Associate", p.Rank)
	assert.Equal(t, 1, p.Level)
}

func TestGameRoundTrip(t *testing.T) {
	ctx := context.Background()
	var decided []Verdict
	game := NewGame(NewMemoryRepository(),
		WithChooser(pitch.FixedChooser(0)),
		WithClock(func() time.Time { return testNow }),
		WithDecisionHook(func(v Verdict) { decided = append(decided, v) }))

	d, err := game.Deal(ctx)
	require.NoError(t, err)

	v, err := game.Decide(ctx, "player-1", d.ID, Decision{Choice: ChoiceInvest, Confidence: 5})
	require.NoError(t, err)
	assert.True(t, v.Result.Correct)
	assert.Equal(t, 15, v.Profile.TotalPoints)
	assert.Equal(t, 1, v.Profile.Streak)
	require.Len(t, decided, 1)

	_, err = game.Decide(ctx, "player-1", d.ID, Decision{Choice: ChoicePass})
	require.ErrorIs(t, err, ErrDealNotFound, "deals are decided once")

	_, err = game.Decide(ctx, "player-1", "nope", Decision{Choice: "hold"})
	require.Error(t, err)

	profile, err := game.Profile(ctx, "player-1")
	require.NoError(t, err)
	assert.Equal(t, 1, profile.TotalDeals)

	fresh, err := game.Profile(ctx, "newcomer")
	require.NoError(t, err)
	assert.Equal(t, "Intern with Coffee", fresh.Rank)
	assert.Equal(t, "newcomer", fresh.PlayerID)
}

type failingProfileRepo struct {
	*MemoryRepository
	failSave bool
}

func (r *failingProfileRepo) SaveProfile(ctx context.Context, p Profile) error {
	if r.failSave {
		return errors.New("disk full")
	}
	return r.MemoryRepository.SaveProfile(ctx, p)
}

func TestDecideKeepsDealOpenWhenProfileSaveFails(t *testing.T) {
	ctx := context.Background()
	repo := &failingProfileRepo{MemoryRepository: NewMemoryRepository(), failSave: true}
	game := NewGame(repo, WithChooser(pitch.FixedChooser(0)), WithClock(func() time.Time { return testNow }))

	d, err := game.Deal(ctx)
	require.NoError(t, err)

	_, err = game.Decide(ctx, "player-1", d.ID, Decision{Choice: ChoiceInvest, Confidence: 5})
	require.ErrorContains(t, err, "disk full")

	profile, err := game.Profile(ctx, "player-1")
	require.NoError(t, err)
	assert.Zero(t, profile.TotalDeals)

	repo.failSave = false
	v, err := game.Decide(ctx, "player-1", d.ID, Decision{Choice: ChoiceInvest, Confidence: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, v.Profile.TotalDeals)
	assert.Equal(t, 1, v.Profile.Streak)
}

func TestOutcomeDescribe(t *testing.T) {
	for _, o := range []Outcome{OutcomeSuccess, OutcomeFailure, OutcomePivot, Outcome("mystery")} {
		assert.NotEmpty(t, o.Describe(), fmt.Sprint(o))
	}
}
