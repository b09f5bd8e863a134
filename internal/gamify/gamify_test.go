package gamify

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

func fixedClock() func() time.Time {
	t := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func TestRewardTable(t *testing.T) {
	expected := map[Action]int{
		ActionPitchSubmit: 10,
		ActionRoast:       15,
		ActionFixIt:       20,
		ActionScorecard:   25,
		ActionBranding:    25,
		ActionMeme:        30,
		ActionVoiceRoast:  35,
		ActionRegenerate:  5,
		ActionShareMeme:   10,
	}
	for action, xp := range expected {
		r, ok := RewardFor(action)
		require.True(t, ok, action)
		assert.Equal(t, xp, r.XP, action)
	}

	list := Rewards()
	require.Len(t, list, len(expected))
	assert.Equal(t, ActionRegenerate, list[0].Action)
	assert.Equal(t, ActionVoiceRoast, list[len(list)-1].Action)
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction(" Share_Meme ")
	require.NoError(t, err)
	assert.Equal(t, ActionShareMeme, a)

	_, err = ParseAction("tweet")
	require.Error(t, err)
}

func TestActionForMode(t *testing.T) {
	assert.Equal(t, ActionRoast, ActionForMode(pitch.ModeRoast))
	assert.Equal(t, ActionFixIt, ActionForMode(pitch.ModeFixIt))
	assert.Equal(t, ActionScorecard, ActionForMode(pitch.ModeScorecard))
	assert.Equal(t, ActionBranding, ActionForMode(pitch.ModeBranding))
	assert.Equal(t, ActionMeme, ActionForMode(pitch.ModeMeme))
}

func TestRankFor(t *testing.T) {
	tests := []struct {
		xp   int
		name string
	}{
		{0, "Pre-Seedling"},
		{49, "Pre-Seedling"},
		{50, "Idea Haver"},
		{299, "MVP Builder"},
		{1100, "Series A Hopeful"},
		{4999, "Exit Strategy"},
		{5000, "Pitch Slap Legend"},
		{99999, "Pitch Slap Legend"},
		{-10, "Pre-Seedling"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.xp), func(t *testing.T) {
			assert.Equal(t, tt.name, RankFor(tt.xp).Name)
		})
	}
	assert.Len(t, Ranks(), 12)
}

func TestXPToNextLevelAndProgress(t *testing.T) {
	needed, next := XPToNextLevel(120)
	assert.Equal(t, 30, needed)
	assert.Equal(t, "MVP Builder", next.Name)
	assert.InDelta(t, 70.0, LevelProgress(120), 0.001)

	needed, next = XPToNextLevel(6000)
	assert.Zero(t, needed)
	assert.Equal(t, "Pitch Slap Legend", next.Name)
	assert.Equal(t, 100.0, LevelProgress(6000))

	p := ProgressFor(0)
	assert.Equal(t, 50, p.Needed)
	assert.Zero(t, p.Progress)
}

func TestRandomAlias(t *testing.T) {
	assert.Equal(t, "DisruptiveFounder1", RandomAlias(pitch.FixedChooser(0)))
	assert.Equal(t, "DisruptiveFounder1", RandomAlias(pitch.ChooserFunc(func(int) int { return -4 })))
	assert.Regexp(t, `^[A-Z][a-z]+[A-Z][a-z]+\d{1,3}$`, RandomAlias(nil))
}

func TestNewProfile(t *testing.T) {
	now := fixedClock()()
	p := NewProfile("  ", pitch.FixedChooser(0), now)
	assert.Equal(t, "DisruptiveFounder1", p.Alias)
	assert.Equal(t, "Pre-Seedling", p.Rank)
	assert.Contains(t, p.ID, "user_")
	assert.Equal(t, now, p.JoinDate)

	named := NewProfile("Pitchy", nil, now)
	assert.Equal(t, "Pitchy", named.Alias)
	assert.NotEqual(t, p.ID, named.ID)
}

func TestServiceAward(t *testing.T) {
	ctx := context.Background()
	var hooked []Award
	svc := NewService(NewMemoryRepository(),
		WithClock(fixedClock()),
		WithChooser(pitch.FixedChooser(0)),
		WithAwardHook(func(a Award) { hooked = append(hooked, a) }))

	p, err := svc.Register(ctx, "")
	require.NoError(t, err)

	award, err := svc.Award(ctx, p.ID, ActionPitchSubmit, "Uber for dogs")
	require.NoError(t, err)
	assert.Equal(t, 10, award.Profile.XP)
	assert.False(t, award.LeveledUp)
	assert.Equal(t, "Uber for dogs", award.Profile.MostRoastedPitch)

	award, err = svc.Award(ctx, p.ID, ActionVoiceRoast, "")
	require.NoError(t, err)
	assert.Equal(t, 45, award.Profile.XP)
	assert.False(t, award.LeveledUp)

	award, err = svc.Award(ctx, p.ID, ActionFixIt, "")
	require.NoError(t, err)
	assert.Equal(t, 65, award.Profile.XP)
	assert.True(t, award.LeveledUp)
	assert.Equal(t, "Idea Haver", award.NewRank)
	assert.Equal(t, 1, award.Profile.Level)
	assert.Equal(t, 1, award.Profile.TotalPitches)
	assert.Equal(t, 1, award.Profile.TotalVoiceRoasts)
	assert.Equal(t, 1, award.Profile.TotalFixIts)

	assert.Len(t, hooked, 3)

	_, err = svc.Award(ctx, p.ID, Action("tweet"), "")
	require.Error(t, err)

	_, err = svc.Award(ctx, "missing", ActionRoast, "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestServiceAwardGeneration(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository(), WithClock(fixedClock()))
	p, err := svc.Register(ctx, "Founder")
	require.NoError(t, err)

	text := "We use AI to help small restaurants predict demand and cut food waste."
	resp := pitch.New(pitch.WithChooser(pitch.FixedChooser(0))).Generate(text, pitch.ModeMeme)
	awards, err := svc.AwardGeneration(ctx, p.ID, text, resp)
	require.NoError(t, err)
	require.Len(t, awards, 2)
	assert.Equal(t, 40, awards[1].Profile.XP)
	assert.Equal(t, 1, awards[1].Profile.TotalMemes)

	awards, err = svc.AwardGeneration(ctx, p.ID, "hi", pitch.Generate("hi", pitch.ModeRoast))
	require.NoError(t, err)
	assert.Empty(t, awards)

	awards, err = svc.AwardGeneration(ctx, p.ID, text, pitch.Response{Mode: pitch.ModeRoast, Error: "boom"})
	require.NoError(t, err)
	assert.Empty(t, awards)
}

type flakySaveRepo struct {
	*MemoryRepository
	saves    int
	failFrom int
}

func (r *flakySaveRepo) Save(ctx context.Context, p Profile) error {
	r.saves++
	if r.failFrom > 0 && r.saves >= r.failFrom {
		return errors.New("write failed")
	}
	return r.MemoryRepository.Save(ctx, p)
}

func TestServiceAwardGenerationSavesOnce(t *testing.T) {
	ctx := context.Background()
	repo := &flakySaveRepo{MemoryRepository: NewMemoryRepository()}
	var hooked []Award
	svc := NewService(repo, WithClock(fixedClock()), WithAwardHook(func(a Award) { hooked = append(hooked, a) }))
	p, err := svc.Register(ctx, "Founder")
	require.NoError(t, err)

	text := "We use AI to help small restaurants predict demand and cut food waste."
	resp := pitch.New(pitch.WithChooser(pitch.FixedChooser(0))).Generate(text, pitch.ModeRoast)

	repo.failFrom = repo.saves + 1
	awards, err := svc.AwardGeneration(ctx, p.ID, text, resp)
	require.ErrorContains(t, err, "write failed")
	assert.Empty(t, awards)
	assert.Empty(t, hooked)

	stored, err := svc.Profile(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.XP)
	assert.Zero(t, stored.TotalPitches)

	repo.failFrom = 0
	before := repo.saves
	awards, err = svc.AwardGeneration(ctx, p.ID, text, resp)
	require.NoError(t, err)
	require.Len(t, awards, 2)
	assert.Equal(t, 1, repo.saves-before)
	assert.Equal(t, 25, awards[1].Profile.XP)
	assert.Len(t, hooked, 2)
}

func TestServiceRename(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository(), WithChooser(pitch.FixedChooser(0)))
	p, err := svc.Register(ctx, "Old")
	require.NoError(t, err)

	renamed, err := svc.Rename(ctx, p.ID, "  New Name ")
	require.NoError(t, err)
	assert.Equal(t, "New Name", renamed.Alias)

	renamed, err = svc.Rename(ctx, p.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "DisruptiveFounder1", renamed.Alias)
}

func TestMemoryLeaderboard(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	base := fixedClock()()

	for i := 0; i < LeaderboardSize+5; i++ {
		require.NoError(t, repo.Save(ctx, Profile{
			ID:       fmt.Sprintf("p%03d", i),
			XP:       i * 10,
			JoinDate: base,
		}))
	}

	top, err := repo.Top(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "p104", top[0].ID)
	assert.Equal(t, "p102", top[2].ID)

	all, err := repo.Top(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, LeaderboardSize)

	pos, err := repo.Position(ctx, "p104")
	require.NoError(t, err)
	assert.Equal(t, 1, pos)

	pos, err = repo.Position(ctx, "p000")
	require.NoError(t, err)
	assert.Zero(t, pos, "players past the top 100 are unranked")
}

func TestCompareRankingTieBreak(t *testing.T) {
	early := Profile{ID: "b", XP: 10, JoinDate: time.Unix(100, 0)}
	late := Profile{ID: "a", XP: 10, JoinDate: time.Unix(200, 0)}
	assert.Negative(t, CompareRanking(early, late))
	assert.Positive(t, CompareRanking(Profile{XP: 5}, Profile{XP: 6}))
}

func TestPitchTitle(t *testing.T) {
	assert.Equal(t, "short pitch", pitchTitle("  short \n pitch "))
	long := pitchTitle(fmt.Sprintf("%070d", 0))
	assert.Equal(t, pitchTitleLength+1, len([]rune(long)))
}
