package screen

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/kandclay/ecs/component"
	"github.com/milk9111/kandclay/skeleton"
	"github.com/milk9111/kandclay/viewport"
)

type fakeScreen struct {
	name    string
	log     *[]string
	onUpd   func()
	showErr error
}

func (f *fakeScreen) record(s string) { *f.log = append(*f.log, f.name+":"+s) }

func (f *fakeScreen) Show() error { f.record("show"); return f.showErr }
func (f *fakeScreen) Update(float64) error {
	f.record("update")
	if f.onUpd != nil {
		f.onUpd()
	}
	return nil
}
func (f *fakeScreen) Draw(*ebiten.Image) {}
func (f *fakeScreen) Resize(w, h int)    { f.record("resize") }
func (f *fakeScreen) Pause()             { f.record("pause") }
func (f *fakeScreen) Resume()            { f.record("resume") }
func (f *fakeScreen) Hide()              { f.record("hide") }
func (f *fakeScreen) Dispose()           { f.record("dispose") }

func fakeFactories(log *[]string, hooks map[Type]func(m *Manager)) map[Type]Factory {
	out := map[Type]Factory{}
	for _, t := range []Type{Menu, Main, Settings} {
		out[t] = func(m *Manager) (Screen, error) {
			f := &fakeScreen{name: t.String(), log: log}
			if hook := hooks[t]; hook != nil {
				f.onUpd = func() { hook(m) }
			}
			return f, nil
		}
	}
	return out
}

func TestManagerSetScreenLifecycle(t *testing.T) {
	var calls []string
	m := NewManager(nil, fakeFactories(&calls, nil))

	if err := m.SetScreen(Menu); err != nil {
		t.Fatal(err)
	}
	m.Resize(800, 600)
	if err := m.SetScreen(Settings); err != nil {
		t.Fatal(err)
	}
	m.Pause()
	m.Resume()
	m.Dispose()

	want := []string{
		"menu:show",
		"menu:resize",
		"menu:hide", "menu:dispose",
		"settings:show", "settings:resize",
		"settings:pause", "settings:resume",
		"settings:hide", "settings:dispose",
	}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("calls =\n%v\nwant\n%v", calls, want)
	}
	if m.Current() != nil {
		t.Fatal("Dispose should drop the current screen")
	}
}

func TestManagerDefersRequestsToEndOfFrame(t *testing.T) {
	var calls []string
	m := NewManager(nil, fakeFactories(&calls, map[Type]func(*Manager){
		Menu: func(m *Manager) { m.Request(Main) },
	}))
	if err := m.SetScreen(Menu); err != nil {
		t.Fatal(err)
	}
	calls = nil

	if err := m.Update(1.0 / 60); err != nil {
		t.Fatal(err)
	}
	want := []string{"menu:update", "menu:hide", "menu:dispose", "main:show"}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	if m.CurrentType() != Main {
		t.Fatalf("current = %s, want main", m.CurrentType())
	}
}

func TestManagerErrors(t *testing.T) {
	m := NewManager(nil, map[Type]Factory{
		Menu: func(*Manager) (Screen, error) { return nil, errors.New("boom") },
	})
	if err := m.SetScreen(Menu); err == nil {
		t.Fatal("expected factory error")
	}
	if err := m.SetScreen(Settings); err == nil {
		t.Fatal("expected missing factory error")
	}
	if err := m.Reload(); err != nil {
		t.Fatalf("reload with no screen: %v", err)
	}
}

func TestManagerShowFailureLeavesNoScreen(t *testing.T) {
	var calls []string
	errShow := errors.New("bad asset")
	broken := true
	m := NewManager(nil, map[Type]Factory{
		Menu: func(*Manager) (Screen, error) { return &fakeScreen{name: "menu", log: &calls}, nil },
		Main: func(*Manager) (Screen, error) {
			f := &fakeScreen{name: "main", log: &calls}
			if broken {
				f.showErr = errShow
			}
			return f, nil
		},
	})
	if err := m.SetScreen(Menu); err != nil {
		t.Fatal(err)
	}
	calls = nil

	if err := m.SetScreen(Main); !errors.Is(err, errShow) {
		t.Fatalf("err = %v, want %v", err, errShow)
	}
	if m.Current() != nil {
		t.Fatal("a screen that failed to show must not become current")
	}
	if err := m.Update(1.0 / 60); err != nil {
		t.Fatal(err)
	}
	m.Draw(nil)
	want := []string{"menu:hide", "menu:dispose", "main:show", "main:dispose"}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}

	broken = false
	if err := m.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if m.Current() == nil || m.CurrentType() != Main {
		t.Fatalf("reload should retry main, current=%v type=%s", m.Current(), m.CurrentType())
	}
}

func TestManagerQuit(t *testing.T) {
	m := NewManager(nil, map[Type]Factory{})
	if m.Quitting() {
		t.Fatal("fresh manager should not quit")
	}
	s := &MenuScreen{Base: &Base{Manager: m}}
	s.handleAction("quit")
	if !m.Quitting() {
		t.Fatal("quit action should stop the game")
	}

	s.handleAction("settings")
	if m.pending == nil || *m.pending != Settings {
		t.Fatalf("pending = %v, want settings", m.pending)
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"", Menu, false},
		{"menu", Menu, false},
		{"Main", Main, false},
		{"animation", Main, false},
		{"settings", Settings, false},
		{"credits", Menu, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseType(tc.in)
			if (err != nil) != tc.wantErr || got != tc.want {
				t.Fatalf("ParseType(%q) = %v, %v", tc.in, got, err)
			}
		})
	}
}

func TestSkeletonPlacement(t *testing.T) {
	data := &skeleton.Data{X: -400, Y: -500, Width: 800, Height: 1000}
	vp := viewport.NewExtend(1600, 1600)
	vp.Update(1000, 1000, true)

	if got := SkeletonScale(nil, 0.5, 0.5, vp); got != 0 {
		t.Fatalf("nil data scale = %v", got)
	}
	if got := SkeletonScale(&skeleton.Data{}, 0.5, 0.5, vp); got != 0 {
		t.Fatalf("empty data scale = %v", got)
	}

	// 50% of 1600 is 800; the 1000-tall skeleton limits the scale to 0.8.
	tr := &component.Transform{ScaleX: 1, ScaleY: 1}
	SetSkeletonScale(tr, data, 0.5, 0.5, vp)
	if tr.ScaleX != 0.8 || tr.ScaleY != 0.8 {
		t.Fatalf("scale = %v, want 0.8", tr.ScaleX)
	}

	SetSkeletonScale(tr, nil, 0.5, 0.5, vp)
	if tr.ScaleX != 0.8 {
		t.Fatal("missing data must leave the scale alone")
	}

	SetSkeletonPosition(tr, data, 800, 800)
	if tr.X != 800 || tr.Y != 800 {
		t.Fatalf("centred position = (%v, %v), want (800, 800)", tr.X, tr.Y)
	}

	tl := &component.Transform{ScaleX: 0.5, ScaleY: 0.5}
	buttons := &skeleton.Data{X: 0, Y: -220, Width: 640, Height: 220}
	left, top := worldTopLeft(vp)
	SetSkeletonTopLeft(tl, buttons, left, top)
	if tl.X != 0 || tl.Y != 1600 {
		t.Fatalf("top-left position = (%v, %v), want (0, 1600)", tl.X, tl.Y)
	}
}

func TestScrub(t *testing.T) {
	tests := []struct {
		pos  int
		want float32
	}{
		{0, 0},
		{500, 1},
		{1000, 2},
		{2000, 2},
		{-5, 0},
	}
	for _, tc := range tests {
		if got := scrubTime(tc.pos, 1000, 2); got != tc.want {
			t.Errorf("scrubTime(%d) = %v, want %v", tc.pos, got, tc.want)
		}
	}
	if got := scrubPosition(0.5, 2, 1000); got != 250 {
		t.Errorf("scrubPosition = %d, want 250", got)
	}
	if got := scrubPosition(1, 0, 1000); got != 0 {
		t.Errorf("zero duration position = %d", got)
	}
}

func TestVolumeSlider(t *testing.T) {
	tests := []struct {
		v    float64
		step float64
		want int
	}{
		{1, 0.01, 100},
		{0.5, 0.01, 50},
		{0, 0.01, 0},
		{2, 0.01, 100},
		{0.5, 0.1, 5},
	}
	for _, tc := range tests {
		if got := volumeToSlider(tc.v, tc.step); got != tc.want {
			t.Errorf("volumeToSlider(%v, %v) = %d, want %d", tc.v, tc.step, got, tc.want)
		}
	}
	if got := sliderToVolume(25, 0.01); got != 0.25 {
		t.Errorf("sliderToVolume = %v, want 0.25", got)
	}
}
