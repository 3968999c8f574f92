package screen

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/kandclay/assets"
	"github.com/milk9111/kandclay/ecs"
	"github.com/milk9111/kandclay/ecs/component"
	"github.com/milk9111/kandclay/ecs/system"
	"github.com/milk9111/kandclay/prefs"
)

// testServices loads the embedded specs and skeletons without decoding any
// image, so screens can be built outside the game loop.
func testServices(t *testing.T) *Services {
	t.Helper()
	am := assets.NewManager()
	am.SetImageLoader(func(string) (*ebiten.Image, error) { return nil, nil })
	return &Services{Assets: am, Prefs: prefs.NewMemory()}
}

// animate advances every skeleton in w by dt seconds.
func animate(w *ecs.World, dt float64) {
	ecs.NewScheduler(system.NewSkeletonAnimationSystem()).Update(w, dt)
}

func nearTime(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func TestMenuIntroEnablesHover(t *testing.T) {
	s, err := NewMenuScreen(NewManager(testServices(t), nil))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Show(); err != nil {
		t.Fatal(err)
	}

	views := map[string]menuView{"main": s.main, "minimap": s.mini}
	for name, mv := range views {
		if mv.buttons.HoverEnabled {
			t.Fatalf("%s: hover enabled before the intro played", name)
		}
		if !mv.buttons.Enabled {
			t.Fatalf("%s: presses should be accepted during the intro", name)
		}
	}

	animate(s.World, 0.1)
	for name, mv := range views {
		if mv.buttons.HoverEnabled {
			t.Fatalf("%s: hover enabled mid-intro", name)
		}
	}

	animate(s.World, 10)
	for name, mv := range views {
		if !mv.buttons.HoverEnabled {
			t.Fatalf("%s: hover still disabled after the intro", name)
		}
	}
}

func TestMenuMinimapIsIndependent(t *testing.T) {
	s, err := NewMenuScreen(NewManager(testServices(t), nil))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Show(); err != nil {
		t.Fatal(err)
	}
	// A tall window makes the main world taller than the square minimap world.
	s.Resize(800, 1600)

	if s.main.entity == s.mini.entity || s.main.view.Skeleton == s.mini.view.Skeleton || s.main.view.State == s.mini.view.State {
		t.Fatal("minimap must own its skeleton and animation state")
	}
	if len(s.main.view.Viewports) != 1 || s.main.view.Viewports[0] != s.Viewport {
		t.Fatalf("main view drawn through %v", s.main.view.Viewports)
	}
	if len(s.mini.view.Viewports) != 1 || s.mini.view.Viewports[0] != s.minimap {
		t.Fatalf("minimap view drawn through %v", s.mini.view.Viewports)
	}

	b := s.spec.Buttons[0]
	if _, err := s.mini.view.State.SetAnimation(b.HoverTrack, b.HoverIn, false); err != nil {
		t.Fatal(err)
	}
	if e := s.main.view.State.Current(b.HoverTrack); e != nil {
		t.Fatalf("minimap hover leaked into the main menu: %s", e.Animation.Name)
	}

	sk := s.spec.Skeleton
	cases := []struct {
		name string
		mv   menuView
		want float32
	}{
		{"main", s.main, SkeletonScale(s.data, sk.WidthPct, sk.HeightPct, s.Viewport)},
		{"minimap", s.mini, SkeletonScale(s.data, sk.WidthPct, sk.HeightPct, s.minimap)},
	}
	if cases[0].want == cases[1].want {
		t.Fatalf("window should give the two viewports different scales, both %v", cases[0].want)
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr, ok := ecs.Get(s.World, c.mv.entity, component.TransformComponent.Kind())
			if !ok {
				t.Fatal("no transform")
			}
			if tr.ScaleX != c.want || tr.ScaleY != c.want {
				t.Fatalf("scale = %v, want %v", tr.ScaleX, c.want)
			}
		})
	}
}

func newTestAnimationScreen(t *testing.T) (*AnimationScreen, *Services) {
	t.Helper()
	services := testServices(t)
	s, err := NewAnimationScreen(NewManager(services, nil))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.spawn(); err != nil {
		t.Fatal(err)
	}
	s.Resize(800, 600)
	return s, services
}

func TestAnimationSetSpeed(t *testing.T) {
	tests := []struct {
		name  string
		speed float32
		want  float32
	}{
		{"double", 2, 2},
		{"triple", 3, 3},
		{"zero_ignored", 0, 1},
		{"negative_ignored", -1, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestAnimationScreen(t)
			s.setSpeed(tc.speed)
			if s.Speed() != tc.want || s.coinView.TimeScale != tc.want {
				t.Fatalf("speed = %v, time scale = %v, want %v", s.Speed(), s.coinView.TimeScale, tc.want)
			}
		})
	}
}

func TestAnimationSpeedButtonSetsSpeedOnCompletion(t *testing.T) {
	s, _ := newTestAnimationScreen(t)
	if err := system.PressButton(s.World, s.speedBtns, "3x"); err != nil {
		t.Fatal(err)
	}
	s.handleEvents()
	if s.Speed() != 1 {
		t.Fatalf("speed changed before the press finished: %v", s.Speed())
	}

	animate(s.World, 10)
	s.handleEvents()
	if s.Speed() != 3 || s.coinView.TimeScale != 3 {
		t.Fatalf("speed = %v, time scale = %v, want 3", s.Speed(), s.coinView.TimeScale)
	}
}

func TestAnimationToggleModeFoldsTrackTime(t *testing.T) {
	s, _ := newTestAnimationScreen(t)
	entry := s.coinView.State.Current(0)
	d := entry.Animation.Duration
	if d <= 0 {
		t.Fatalf("coin animation has no duration")
	}
	entry.TrackTime = 2.5 * d

	s.toggleMode()
	if !s.manual || !s.coinView.Paused {
		t.Fatalf("manual=%v paused=%v, want both", s.manual, s.coinView.Paused)
	}
	if !nearTime(entry.TrackTime, 0.5*d) {
		t.Fatalf("track time = %v, want %v", entry.TrackTime, 0.5*d)
	}

	s.scrub(scrubSteps / 4)
	if !nearTime(entry.TrackTime, 0.25*d) {
		t.Fatalf("scrubbed track time = %v, want %v", entry.TrackTime, 0.25*d)
	}

	s.toggleMode()
	if s.manual || s.coinView.Paused {
		t.Fatalf("manual=%v paused=%v, want automatic", s.manual, s.coinView.Paused)
	}
	s.scrub(scrubSteps)
	if !nearTime(entry.TrackTime, 0.25*d) {
		t.Fatal("scrubbing must be ignored in automatic mode")
	}
}

func TestAnimationToggleCoin(t *testing.T) {
	s, services := newTestAnimationScreen(t)
	d := s.coinView.State.Current(0).Animation.Duration

	tests := []struct {
		name       string
		wantYellow bool
	}{
		{"to_red", false},
		{"back_to_yellow", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			before := s.coinView.Skeleton
			s.coinView.State.Current(0).TrackTime = 0.3 * d

			if err := s.toggleCoin(); err != nil {
				t.Fatal(err)
			}
			if s.yellow != tc.wantYellow {
				t.Fatalf("yellow = %v, want %v", s.yellow, tc.wantYellow)
			}
			if got := services.Prefs.Bool(prefs.KeyCoinColor, !tc.wantYellow); got != tc.wantYellow {
				t.Fatalf("coin colour pref = %v, want %v", got, tc.wantYellow)
			}
			if s.coinView.Skeleton == before || s.coinView.Skeleton.Data != s.coinData {
				t.Fatal("coin skeleton was not rebuilt from the new data")
			}
			entry := s.coinView.State.Current(0)
			if entry == nil || entry.Animation.Name != s.spec.Coin.Animation || !entry.Loop {
				t.Fatalf("coin track = %+v", entry)
			}
			if !nearTime(entry.TrackTime, 0.3*d) {
				t.Fatalf("track time = %v, want %v", entry.TrackTime, 0.3*d)
			}

			tr, _ := ecs.Get(s.World, s.coin, component.TransformComponent.Kind())
			sk := s.coinView.Skeleton
			if sk.X != tr.X || sk.Y != tr.Y || sk.ScaleX != tr.ScaleX || sk.ScaleX == 1 {
				t.Fatalf("new coin at (%v, %v) scale %v, want (%v, %v) scale %v", sk.X, sk.Y, sk.ScaleX, tr.X, tr.Y, tr.ScaleX)
			}
		})
	}
}

func TestAnimationSwapSkinWraps(t *testing.T) {
	s, _ := newTestAnimationScreen(t)
	want := []string{"Accessible", "Saturated", "Accessible"}
	for i, name := range want {
		if err := s.swapSkin(); err != nil {
			t.Fatal(err)
		}
		if got := s.speedView.Skeleton.Skin; got == nil || got.Name != name {
			t.Fatalf("swap %d: skin = %v, want %s", i, got, name)
		}
		if s.spec.Skins[s.skin] != name {
			t.Fatalf("swap %d: index %d names %s", i, s.skin, s.spec.Skins[s.skin])
		}
	}
}
