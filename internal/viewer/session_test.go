package viewer

import (
	"testing"
	"time"

	"github.com/playmatatu/pitchviz/internal/animation"
	"github.com/playmatatu/pitchviz/internal/catalog"
	"github.com/playmatatu/pitchviz/internal/pitch"
	"github.com/playmatatu/pitchviz/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeControls struct {
	teams    [][]string
	pitchers [][]string
	pitches  [][]PitchOption
	states   []Status
	errs     []error
}

func (f *fakeControls) SetTeamOptions(teams []string) {
	f.teams = append(f.teams, teams)
}

func (f *fakeControls) SetPitcherOptions(pitchers []string) {
	f.pitchers = append(f.pitchers, pitchers)
}

func (f *fakeControls) SetPitchOptions(o []PitchOption) {
	f.pitches = append(f.pitches, o)
}

func (f *fakeControls) ShowState(s Status) {
	f.states = append(f.states, s)
}

func (f *fakeControls) ShowError(err error) {
	f.errs = append(f.errs, err)
}

func (f *fakeControls) lastPitchers() []string     { return f.pitchers[len(f.pitchers)-1] }
func (f *fakeControls) lastPitches() []PitchOption { return f.pitches[len(f.pitches)-1] }
func (f *fakeControls) lastState() Status          { return f.states[len(f.states)-1] }

type fixture struct {
	session  *Session
	controls *fakeControls
	loop     *animation.Loop
	now      time.Time
	renders  int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loop, err := animation.NewLoop(60)
	require.NoError(t, err)

	f := &fixture{controls: &fakeControls{}, loop: loop, now: time.Unix(1700000000, 0)}
	clock := animation.NewStopwatch(func() time.Time { return f.now })
	renderer := scene.RendererFunc(func(*scene.Stage) error {
		f.renders++
		return nil
	})
	ctrl := animation.NewController(scene.NewStage(pitch.PlateY), loop, clock, renderer, animation.DefaultOptions())
	f.session = NewSession(f.controls, ctrl)
	return f
}

func (f *fixture) frame(seconds float64) {
	f.now = f.now.Add(time.Duration(seconds * float64(time.Second)))
	f.loop.Tick()
}

func rec(pitchType string, vy0 float64) pitch.Record {
	return pitch.Record{PitchType: pitchType, ReleasePosX: -1, ReleasePosZ: 6, ReleaseExtension: 5.5,
		VX0: 5, VY0: vy0, VZ0: -8, AY: 16}
}

func testCatalog() *catalog.Catalog {
	return catalog.FromEntries([]catalog.Entry{
		{Team: "T1", Pitcher: "P1", PitchID: "x", Record: rec(pitch.FourSeam, -130)},
		{Team: "Mets", Pitcher: "Senga", PitchID: "b2", Record: rec(pitch.Slider, -120)},
		{Team: "Mets", Pitcher: "Senga", PitchID: "a1", Record: rec(pitch.Changeup, -110)},
		{Team: "Mets", Pitcher: "Diaz", PitchID: "z", Record: rec(pitch.Sinker, -140)},
	})
}

func TestLoadPopulatesTeams(t *testing.T) {
	f := newFixture(t)
	f.session.Load(testCatalog())

	require.Len(t, f.controls.teams, 1)
	assert.Equal(t, []string{"Mets", "T1"}, f.controls.teams[0])
	assert.Empty(t, f.controls.lastPitchers())
	assert.Empty(t, f.controls.lastPitches())
	assert.Equal(t, "idle", f.controls.lastState().State)
}

func TestSinglePitchAutoStarts(t *testing.T) {
	f := newFixture(t)
	f.session.Load(testCatalog())

	require.NoError(t, f.session.Dispatch(Event{Type: TeamChange, Value: "T1"}))
	assert.Equal(t, []string{"P1"}, f.controls.lastPitchers())

	require.NoError(t, f.session.Dispatch(Event{Type: PitcherChange, Value: "P1"}))
	ctrl := f.session.Controller()
	assert.Equal(t, animation.Running, ctrl.State())

	pos, ok := ctrl.BallPosition()
	require.True(t, ok)
	assert.InDelta(t, -1.0, pos.X, 1e-9)
	assert.InDelta(t, pitch.PlateY+5.5, pos.Y, 1e-9)
	assert.InDelta(t, 6.0, pos.Z, 1e-9)

	st := f.session.Status()
	assert.Equal(t, "x", st.PitchID)
	assert.Equal(t, pitch.FourSeam, st.PitchType)
}

func TestPitcherChangeStartsLowestID(t *testing.T) {
	f := newFixture(t)
	f.session.Load(testCatalog())
	require.NoError(t, f.session.Dispatch(Event{Type: TeamChange, Value: "Mets"}))
	assert.Equal(t, []string{"Diaz", "Senga"}, f.controls.lastPitchers())

	require.NoError(t, f.session.Dispatch(Event{Type: PitcherChange, Value: "Senga"}))
	assert.Equal(t, "a1", f.session.Status().PitchID)

	opts := f.controls.lastPitches()
	require.Len(t, opts, 2)
	assert.Equal(t, "a1", opts[0].ID)
	assert.Equal(t, "a1 (Changeup)", opts[0].Label)
	assert.Equal(t, pitch.Slider, opts[1].PitchType)
}

func TestRepeatedLoadStartsOnce(t *testing.T) {
	f := newFixture(t)
	cat := testCatalog()
	f.session.Load(cat)
	f.session.Load(cat)
	f.session.Load(cat)

	require.NoError(t, f.session.Dispatch(Event{Type: TeamChange, Value: "T1"}))
	require.NoError(t, f.session.Dispatch(Event{Type: PitcherChange, Value: "P1"}))

	assert.Equal(t, 1, f.renders)
	assert.Equal(t, 1, f.loop.Pending())
	assert.Len(t, f.controls.pitchers, 4)
}

func TestLoadClearsSelection(t *testing.T) {
	f := newFixture(t)
	f.session.Load(testCatalog())
	require.NoError(t, f.session.Dispatch(Event{Type: TeamChange, Value: "T1"}))
	require.NoError(t, f.session.Dispatch(Event{Type: PitcherChange, Value: "P1"}))

	f.session.Load(testCatalog())
	st := f.session.Status()
	assert.Empty(t, st.Team)
	assert.Empty(t, st.Pitcher)
	assert.Equal(t, 0, f.loop.Pending())

	err := f.session.Dispatch(Event{Type: PitcherChange, Value: "P1"})
	assert.ErrorIs(t, err, ErrNoTeamSelected)
}

func TestTeamChangeClearsPitch(t *testing.T) {
	f := newFixture(t)
	f.session.Load(testCatalog())
	require.NoError(t, f.session.Dispatch(Event{Type: TeamChange, Value: "T1"}))
	require.NoError(t, f.session.Dispatch(Event{Type: PitcherChange, Value: "P1"}))
	require.Equal(t, pitch.FourSeam, f.session.Status().PitchType)

	require.NoError(t, f.session.Dispatch(Event{Type: TeamChange, Value: "Mets"}))
	st := f.session.Status()
	assert.Equal(t, "Mets", st.Team)
	assert.Empty(t, st.Pitcher)
	assert.Empty(t, st.PitchID)
	assert.Empty(t, st.PitchType)
	assert.Empty(t, f.controls.lastPitches())
}

func TestPitcherWithoutTeam(t *testing.T) {
	f := newFixture(t)
	f.session.Load(testCatalog())

	err := f.session.Dispatch(Event{Type: PitcherChange, Value: "P1"})
	require.ErrorIs(t, err, ErrNoTeamSelected)
	require.Len(t, f.controls.errs, 1)
	assert.Equal(t, animation.Idle, f.session.Controller().State())
}

func TestUnknownSelections(t *testing.T) {
	f := newFixture(t)
	f.session.Load(testCatalog())

	assert.ErrorIs(t, f.session.Dispatch(Event{Type: TeamChange, Value: "Nope"}), catalog.ErrTeamNotFound)
	require.NoError(t, f.session.Dispatch(Event{Type: TeamChange, Value: "Mets"}))
	assert.ErrorIs(t, f.session.Dispatch(Event{Type: PitcherChange, Value: "Nope"}), catalog.ErrPitcherNotFound)
	assert.ErrorIs(t, f.session.Dispatch(Event{Type: PitchChange, Value: "a1"}), ErrNoPitcher)
	assert.ErrorIs(t, f.session.Dispatch(Event{Type: "explode"}), ErrUnknownEvent)
}

func TestDispatchBeforeLoad(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.session.Dispatch(Event{Type: Replay}), ErrNoCatalog)
}

func TestPitchChangeAndReplay(t *testing.T) {
	f := newFixture(t)
	f.session.Load(testCatalog())
	require.NoError(t, f.session.Dispatch(Event{Type: TeamChange, Value: "Mets"}))
	require.NoError(t, f.session.Dispatch(Event{Type: PitcherChange, Value: "Senga"}))

	require.NoError(t, f.session.Dispatch(Event{Type: PitchChange, Value: "b2"}))
	assert.Equal(t, "b2", f.session.Status().PitchID)
	assert.Equal(t, pitch.Slider, f.session.Status().PitchType)

	f.frame(0.5)
	f.frame(0.01)
	assert.Equal(t, animation.Finished, f.session.Controller().State())

	require.NoError(t, f.session.Dispatch(Event{Type: Replay}))
	assert.Equal(t, animation.Running, f.session.Controller().State())
	assert.Equal(t, "b2", f.session.Status().PitchID)
	assert.InDelta(t, 0, f.session.Controller().Elapsed(), 1e-9)
}

func TestReplayWithoutSelection(t *testing.T) {
	f := newFixture(t)
	f.session.Load(testCatalog())
	assert.ErrorIs(t, f.session.Dispatch(Event{Type: Replay}), ErrNoTeamSelected)
}

func TestPauseAndTrailEvents(t *testing.T) {
	f := newFixture(t)
	f.session.Load(testCatalog())
	require.NoError(t, f.session.Dispatch(Event{Type: TeamChange, Value: "T1"}))
	require.NoError(t, f.session.Dispatch(Event{Type: PitcherChange, Value: "P1"}))

	require.NoError(t, f.session.Dispatch(Event{Type: Pause}))
	st := f.controls.lastState()
	assert.True(t, st.Paused)
	assert.Equal(t, "paused", st.State)

	require.NoError(t, f.session.Dispatch(Event{Type: TrailChange, Checked: true}))
	assert.True(t, f.controls.lastState().Trail)

	require.NoError(t, f.session.Dispatch(Event{Type: Pause}))
	assert.False(t, f.controls.lastState().Paused)
	assert.Equal(t, "running", f.controls.lastState().State)

	f.frame(0.1)
	ctrl := f.session.Controller()
	assert.Len(t, ctrl.TrailPositions(), 1)
}
