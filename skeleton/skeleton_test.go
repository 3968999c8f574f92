package skeleton

import (
	"math"
	"strings"
	"testing"
)

const fixtureJSON = `{
  "skeleton": {"width": 200, "height": 100},
  "bones": [
    {"name": "root"},
    {"name": "arm", "parent": "root", "x": 100, "y": 50},
    {"name": "hand", "parent": "arm", "x": 10, "rotation": 90}
  ],
  "slots": [
    {"name": "bg-play", "bone": "arm", "attachment": "box"},
    {"name": "hand", "bone": "hand", "attachment": "box", "color": "ff000080", "blend": "additive"}
  ],
  "skins": [
    {"name": "default", "attachments": {
      "bg-play": {"box": {"width": 20, "height": 10}},
      "hand": {"box": {"width": 4, "height": 4}}
    }},
    {"name": "Accessible", "attachments": {
      "bg-play": {"box": {"width": 40, "height": 10}}
    }}
  ],
  "events": {"click": {"int": 1}},
  "animations": {
    "spin": {"bones": {"arm": {"rotate": [{"time": 0, "angle": 0}, {"time": 1, "angle": 90}]}}},
    "tilt": {"bones": {"arm": {"rotate": [{"time": 0, "angle": 30}]}}},
    "grow": {
      "bones": {"arm": {"scale": [{"time": 0}, {"time": 0.5, "x": 2, "y": 2}]}},
      "slots": {"bg-play": {"color": [{"time": 0, "color": "ffffffff"}, {"time": 0.5, "color": "ffffff00"}]}},
      "events": [{"time": 0.25, "name": "click"}]
    },
    "hide": {"slots": {"hand": {"attachment": [{"time": 0, "name": null}]}}}
  }
}`

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func nearTol(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func loadFixture(t *testing.T) *Data {
	t.Helper()
	d, err := ParseJSON("fixture", []byte(fixtureJSON), nil)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	return d
}

func TestParseJSON(t *testing.T) {
	d := loadFixture(t)
	if d.Width != 200 || d.Height != 100 {
		t.Fatalf("size = %vx%v", d.Width, d.Height)
	}
	if len(d.Bones) != 3 || d.FindBone("hand").Parent != d.FindBone("arm") {
		t.Fatalf("bone hierarchy not linked")
	}
	if d.DefaultSkin == nil || d.FindSkin("Accessible") == nil {
		t.Fatalf("skins missing")
	}
	if d.FindSlot("hand").Blend != BlendAdditive {
		t.Fatalf("blend mode not parsed")
	}
	cases := map[string]float32{"spin": 1, "tilt": 0, "grow": 0.5, "hide": 0}
	for name, dur := range cases {
		a := d.FindAnimation(name)
		if a == nil || !near(a.Duration, dur) {
			t.Fatalf("animation %s: %+v want duration %v", name, a, dur)
		}
	}
}

func TestParseJSONRejectsUnsupported(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"shear_timeline", `{"bones":[{"name":"root"}],"animations":{"a":{"bones":{"root":{"shear":[{"time":0}]}}}}}`, "shear"},
		{"mesh_attachment", `{"bones":[{"name":"root"}],"slots":[{"name":"s","bone":"root"}],"skins":[{"name":"default","attachments":{"s":{"m":{"type":"mesh"}}}}]}`, "mesh"},
		{"deform", `{"bones":[{"name":"root"}],"animations":{"a":{"deform":{"default":{}}}}}`, "deform"},
		{"ik", `{"bones":[{"name":"root"}],"ik":[{"name":"x"}]}`, "constraints"},
		{"unknown_parent", `{"bones":[{"name":"a","parent":"b"}]}`, "parent"},
		{"bad_json", `{`, "decode"},
		{"no_bones", `{}`, "no bones"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseJSON("bad", []byte(c.doc), nil)
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("err = %v, want mention of %q", err, c.want)
			}
		})
	}
}

func TestWorldTransformAndBounds(t *testing.T) {
	s := NewSkeleton(loadFixture(t))

	r := s.SlotBounds("bg-play")
	if !near(r.X, 90) || !near(r.Y, 45) || !near(r.W, 20) || !near(r.H, 10) {
		t.Fatalf("bg-play bounds = %+v", r)
	}
	if !r.Contains(95, 50) || r.Contains(89, 50) {
		t.Fatalf("hit test disagrees with bounds %+v", r)
	}
	if !s.SlotBounds("missing").Empty() {
		t.Fatalf("missing slot must give empty bounds")
	}

	hand := s.FindBone("hand")
	if !near(hand.World.X(), 110) || !near(hand.World.Y(), 50) || !near(hand.WorldRotation(), 90) {
		t.Fatalf("hand world = %v rot %v", hand.World, hand.WorldRotation())
	}

	s.SetPosition(10, 20)
	s.SetScale(2, 2)
	s.UpdateWorldTransform()
	r = s.SlotBounds("bg-play")
	if !near(r.X, 190) || !near(r.Y, 110) || !near(r.W, 40) || !near(r.H, 20) {
		t.Fatalf("scaled bounds = %+v", r)
	}
	if b := s.Bounds(); b.W < r.W {
		t.Fatalf("skeleton bounds %+v smaller than slot bounds %+v", b, r)
	}
}

func TestSetSkin(t *testing.T) {
	s := NewSkeleton(loadFixture(t))
	if err := s.SetSkin("Accessible"); err != nil {
		t.Fatal(err)
	}
	if got := s.SlotBounds("bg-play").W; !near(got, 40) {
		t.Fatalf("skin attachment not used, width %v", got)
	}
	if s.FindSlot("hand").Attachment() == nil {
		t.Fatalf("slot missing from skin must fall back to default skin")
	}
	if err := s.SetSkin("nope"); err == nil {
		t.Fatalf("expected error for unknown skin")
	}
	if err := s.SetAttachment("hand", ""); err != nil || s.FindSlot("hand").Attachment() != nil {
		t.Fatalf("clearing attachment failed: %v", err)
	}
	if err := s.SetAttachment("hand", "nope"); err == nil {
		t.Fatalf("expected error for unknown attachment")
	}
}

func TestCurves(t *testing.T) {
	cases := []struct {
		name string
		c    Curve
		p    float32
		want float32
	}{
		{"linear", Curve{Kind: CurveLinear}, 0.3, 0.3},
		{"stepped", Curve{Kind: CurveStepped}, 0.9, 0},
		{"bezier_straight", Curve{Kind: CurveBezier, CX1: 0.25, CY1: 0.25, CX2: 0.75, CY2: 0.75}, 0.4, 0.4},
		{"bezier_end", Curve{Kind: CurveBezier, CX1: 0.5, CY1: 0, CX2: 0.5, CY2: 1}, 1, 1},
		{"bezier_ease_in", Curve{Kind: CurveBezier, CX1: 0.9, CY1: 0, CX2: 1, CY2: 0.1}, 0.5, 0.05},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.c.Percent(c.p)
			if c.name == "bezier_ease_in" {
				if got > c.want {
					t.Fatalf("ease-in at 0.5 = %v, want below %v", got, c.want)
				}
				return
			}
			if math.Abs(float64(got-c.want)) > 0.01 {
				t.Fatalf("Percent(%v) = %v want %v", c.p, got, c.want)
			}
		})
	}
}

func TestParseJSONCurveFormats(t *testing.T) {
	const rotateKeys = `[{"time":0,"value":0,"curve":%s},{"time":1,"value":90}]`
	doc := func(version, prop, keys string) string {
		return `{"skeleton":{"spine":"` + version + `"},"bones":[{"name":"root"}],` +
			`"animations":{"a":{"bones":{"root":{"` + prop + `":` + keys + `}}}}}`
	}
	rotate := func(curve string) string { return strings.Replace(rotateKeys, "%s", curve, 1) }

	cases := []struct {
		name    string
		doc     string
		wantErr string
		check   func(t *testing.T, b *Bone)
	}{
		{
			name: "value_space_rotate",
			doc:  doc("4.1.24", "rotate", rotate(`[0.333,0,0.667,90]`)),
			check: func(t *testing.T, b *Bone) {
				if !nearTol(b.Rotation, 45, 0.5) {
					t.Fatalf("rotation = %v want 45", b.Rotation)
				}
			},
		},
		{
			name: "value_space_translate_two_channels",
			doc:  doc("4.0.64", "translate", `[{"time":0,"x":0,"y":0,"curve":[0.25,0,0.75,10,0.25,0,0.75,20]},{"time":1,"x":10,"y":20}]`),
			check: func(t *testing.T, b *Bone) {
				if !nearTol(b.X, 5, 0.1) || !nearTol(b.Y, 10, 0.1) {
					t.Fatalf("translate = (%v, %v) want (5, 10)", b.X, b.Y)
				}
			},
		},
		{
			name: "unit_square_array_before_4",
			doc:  doc("3.6.53", "rotate", rotate(`[0.25,0,0.75,1]`)),
			check: func(t *testing.T, b *Bone) {
				if !nearTol(b.Rotation, 45, 0.5) {
					t.Fatalf("rotation = %v want 45", b.Rotation)
				}
			},
		},
		{
			name:    "value_space_wrong_channel_count",
			doc:     doc("4.1.24", "rotate", rotate(`[0.25,0,0.75,45,0.25,0,0.75,90]`)),
			wantErr: "curve has 8 values",
		},
		{
			name:    "unit_square_wrong_length",
			doc:     doc("3.6.53", "rotate", rotate(`[0.25,0,0.75,1,0,0,1,1]`)),
			wantErr: "bad curve",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d, err := ParseJSON("curves", []byte(c.doc), nil)
			if c.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), c.wantErr) {
					t.Fatalf("err = %v, want mention of %q", err, c.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseJSON: %v", err)
			}
			s := NewSkeleton(d)
			d.FindAnimation("a").Apply(s, 0.5, false)
			c.check(t, s.FindBone("root"))
		})
	}
}

func TestValueSpaceCurveRotationStaysInRange(t *testing.T) {
	doc := `{"skeleton":{"spine":"4.1.24"},"bones":[{"name":"root"}],"animations":{"a":{"bones":{"root":{"rotate":[` +
		`{"time":0,"value":0,"curve":[0.333,0,0.667,90]},{"time":1,"value":90}]}}}}}`
	d, err := ParseJSON("curves", []byte(doc), nil)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	s := NewSkeleton(d)
	for _, tm := range []float32{0.1, 0.25, 0.5, 0.75, 0.9} {
		d.FindAnimation("a").Apply(s, tm, false)
		if r := s.FindBone("root").Rotation; r < 0 || r > 90 {
			t.Fatalf("rotation at %v = %v, outside the keyed range", tm, r)
		}
	}
}

func TestValueSpaceCurves(t *testing.T) {
	cases := []struct {
		version string
		want    bool
	}{
		{"4.1.24", true},
		{"4.0", true},
		{"3.8.99", false},
		{"", false},
		{"x.y", false},
	}
	for _, c := range cases {
		t.Run(c.version, func(t *testing.T) {
			if got := valueSpaceCurves(c.version); got != c.want {
				t.Fatalf("valueSpaceCurves(%q) = %v want %v", c.version, got, c.want)
			}
		})
	}
}

func TestAnimationApply(t *testing.T) {
	d := loadFixture(t)
	s := NewSkeleton(d)

	d.FindAnimation("spin").Apply(s, 0.5, false)
	if arm := s.FindBone("arm"); !near(arm.Rotation, 45) {
		t.Fatalf("arm rotation = %v", arm.Rotation)
	}
	d.FindAnimation("spin").Apply(s, 1.5, true)
	if arm := s.FindBone("arm"); !near(arm.Rotation, 45) {
		t.Fatalf("looped arm rotation = %v", arm.Rotation)
	}
	s.UpdateWorldTransform()
	hand := s.FindBone("hand")
	if !near(hand.World.X(), 100+10*float32(math.Sqrt2)/2) {
		t.Fatalf("hand world x = %v", hand.World.X())
	}

	d.FindAnimation("grow").Apply(s, 0.25, false)
	if arm := s.FindBone("arm"); !near(arm.ScaleX, 1.5) {
		t.Fatalf("arm scale = %v", arm.ScaleX)
	}
	if c := s.FindSlot("bg-play").Color; !near(c[3], 0.5) {
		t.Fatalf("bg-play alpha = %v", c[3])
	}

	if wrapDegrees(350) != -10 || wrapDegrees(-190) != 170 {
		t.Fatalf("wrapDegrees = %v %v", wrapDegrees(350), wrapDegrees(-190))
	}
}

func TestAnimationStateCallbacks(t *testing.T) {
	d := loadFixture(t)

	t.Run("one_shot_completes_once", func(t *testing.T) {
		st := NewAnimationState(d)
		var completes, events int
		st.AddListener(Listener{
			Complete: func(*TrackEntry) { completes++ },
			Event: func(_ *TrackEntry, ev Event) {
				if ev.Data.Name != "click" || ev.Int != 1 {
					t.Fatalf("unexpected event %+v", ev)
				}
				events++
			},
		})
		e, err := st.SetAnimation(0, "grow", false)
		if err != nil {
			t.Fatal(err)
		}
		st.Update(0.3)
		if completes != 0 || events != 1 || e.IsComplete() {
			t.Fatalf("after 0.3s completes=%d events=%d", completes, events)
		}
		st.Update(0.3)
		st.Update(0.3)
		if completes != 1 || events != 1 || !e.IsComplete() {
			t.Fatalf("after 0.9s completes=%d events=%d", completes, events)
		}
		if !near(e.AnimationTime(), 0.5) {
			t.Fatalf("one-shot must hold its last frame, time %v", e.AnimationTime())
		}
	})

	t.Run("loop_completes_each_pass", func(t *testing.T) {
		st := NewAnimationState(d)
		e, _ := st.SetAnimation(0, "spin", true)
		var completes int
		e.SetListener(Listener{Complete: func(*TrackEntry) { completes++ }})
		st.Update(0.6)
		st.Update(0.6)
		st.Update(0.6)
		st.Update(0.6)
		if completes != 2 {
			t.Fatalf("completes = %d want 2", completes)
		}
		if !near(e.AnimationTime(), 0.4) {
			t.Fatalf("animation time = %v", e.AnimationTime())
		}
	})

	t.Run("replace_fires_lifecycle_in_order", func(t *testing.T) {
		st := NewAnimationState(d)
		var got []string
		st.AddListener(Listener{
			Start:     func(e *TrackEntry) { got = append(got, "start:"+e.Animation.Name) },
			Interrupt: func(e *TrackEntry) { got = append(got, "interrupt:"+e.Animation.Name) },
			End:       func(e *TrackEntry) { got = append(got, "end:"+e.Animation.Name) },
			Dispose:   func(e *TrackEntry) { got = append(got, "dispose:"+e.Animation.Name) },
		})
		st.SetAnimation(2, "spin", false)
		st.SetAnimation(2, "grow", false)
		st.ClearTrack(2)
		want := "start:spin interrupt:spin end:spin dispose:spin start:grow end:grow dispose:grow"
		if strings.Join(got, " ") != want {
			t.Fatalf("got %v", got)
		}
		if st.Current(2) != nil || st.Current(7) != nil {
			t.Fatalf("tracks should be empty")
		}
	})

	t.Run("zero_duration_completes_on_first_update", func(t *testing.T) {
		st := NewAnimationState(d)
		s := NewSkeleton(d)
		var completes int
		e, _ := st.SetAnimation(0, "hide", false)
		e.SetListener(Listener{Complete: func(*TrackEntry) { completes++ }})
		st.Update(0)
		st.Update(0.1)
		st.Apply(s)
		if completes != 1 || !e.IsComplete() {
			t.Fatalf("completes = %d", completes)
		}
		if s.FindSlot("hand").Attachment() != nil {
			t.Fatalf("attachment timeline should clear the slot")
		}
	})

	t.Run("higher_track_wins", func(t *testing.T) {
		st := NewAnimationState(d)
		s := NewSkeleton(d)
		st.SetAnimation(0, "spin", true)
		st.SetAnimation(1, "tilt", false)
		st.Update(0.5)
		st.Apply(s)
		if r := s.FindBone("arm").Rotation; !near(r, 30) {
			t.Fatalf("arm rotation = %v want 30", r)
		}
	})

	t.Run("unknown_animation", func(t *testing.T) {
		st := NewAnimationState(d)
		if _, err := st.SetAnimation(0, "nope", false); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("scrub_track_time", func(t *testing.T) {
		st := NewAnimationState(d)
		s := NewSkeleton(d)
		e, _ := st.SetAnimation(0, "spin", true)
		e.TrackTime = 0.5
		st.Apply(s)
		if r := s.FindBone("arm").Rotation; !near(r, 45) {
			t.Fatalf("arm rotation = %v want 45", r)
		}
	})
}

func TestParseAtlas(t *testing.T) {
	legacy := `
kandclay.png
size: 256,128
format: RGBA8888
filter: Linear,Linear
repeat: none
box
  rotate: false
  xy: 2, 4
  size: 64, 32
  orig: 64, 32
  offset: 0, 0
  index: -1
dot
  rotate: true
  xy: 70, 2
  size: 16, 8
`
	compact := "page.png\nsize:64,64\npma:true\na\nbounds:0,0,8,8\noffsets:1,2,10,10\n"

	t.Run("legacy", func(t *testing.T) {
		a, err := ParseAtlas(strings.NewReader(legacy))
		if err != nil {
			t.Fatal(err)
		}
		if len(a.Pages) != 1 || a.Pages[0].Width != 256 || a.Pages[0].PMA {
			t.Fatalf("pages = %+v", a.Pages)
		}
		box := a.FindRegion("box")
		if box == nil || box.X != 2 || box.Y != 4 || box.W != 64 || box.H != 32 || box.Page != a.Pages[0] {
			t.Fatalf("box = %+v", box)
		}
		dot := a.FindRegion("dot")
		if dot == nil || !dot.Rotate || dot.OrigW != 16 || dot.OrigH != 8 {
			t.Fatalf("dot = %+v", dot)
		}
		uv := dot.UVs()
		if uv[cornerBL*2] != 70 || uv[cornerBL*2+1] != 2 || uv[cornerUR*2] != 78 || uv[cornerUR*2+1] != 18 {
			t.Fatalf("rotated uvs = %v", uv)
		}
		uv = box.UVs()
		if uv[cornerBL*2+1] != 36 || uv[cornerUL*2+1] != 4 {
			t.Fatalf("uvs = %v", uv)
		}
	})

	t.Run("compact", func(t *testing.T) {
		a, err := ParseAtlas(strings.NewReader(compact))
		if err != nil {
			t.Fatal(err)
		}
		r := a.FindRegion("a")
		if !a.Pages[0].PMA || r == nil || r.W != 8 || r.OrigW != 10 || r.OffsetY != 2 {
			t.Fatalf("region = %+v", r)
		}
	})

	t.Run("errors", func(t *testing.T) {
		if _, err := ParseAtlas(strings.NewReader("")); err == nil {
			t.Fatalf("empty atlas must fail")
		}
		if _, err := ParseAtlas(strings.NewReader("p.png\nr\nxy: a, b\n")); err == nil {
			t.Fatalf("bad xy must fail")
		}
	})
}

func TestRegionAttachmentFromAtlas(t *testing.T) {
	atlas, err := ParseAtlas(strings.NewReader("p.png\nsize: 64,64\nbox\n  xy: 0, 0\n  size: 8, 8\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseJSON("x", []byte(fixtureJSON), atlas); err != nil {
		t.Fatalf("ParseJSON with atlas: %v", err)
	}
	empty, _ := ParseAtlas(strings.NewReader("p.png\n"))
	if _, err := ParseJSON("x", []byte(fixtureJSON), empty); err == nil {
		t.Fatalf("expected missing region error")
	}
}
