package skeleton

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/milk9111/kandclay/common"
)

type jsonData struct {
	Skeleton struct {
		Spine  string  `json:"spine"`
		X      float32 `json:"x"`
		Y      float32 `json:"y"`
		Width  float32 `json:"width"`
		Height float32 `json:"height"`
	} `json:"skeleton"`
	Bones      []jsonBone               `json:"bones"`
	Slots      []jsonSlot               `json:"slots"`
	Skins      json.RawMessage          `json:"skins"`
	Events     map[string]jsonEventData `json:"events"`
	Animations map[string]jsonAnimation `json:"animations"`
	IK         json.RawMessage          `json:"ik"`
	Transform  json.RawMessage          `json:"transform"`
	Path       json.RawMessage          `json:"path"`
}

type jsonBone struct {
	Name     string   `json:"name"`
	Parent   string   `json:"parent"`
	Length   float32  `json:"length"`
	X        float32  `json:"x"`
	Y        float32  `json:"y"`
	Rotation float32  `json:"rotation"`
	ScaleX   *float32 `json:"scaleX"`
	ScaleY   *float32 `json:"scaleY"`
}

type jsonSlot struct {
	Name       string `json:"name"`
	Bone       string `json:"bone"`
	Color      string `json:"color"`
	Attachment string `json:"attachment"`
	Blend      string `json:"blend"`
}

type jsonSkin struct {
	Name        string                               `json:"name"`
	Attachments map[string]map[string]jsonAttachment `json:"attachments"`
}

type jsonAttachment struct {
	Type     string   `json:"type"`
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	X        float32  `json:"x"`
	Y        float32  `json:"y"`
	Rotation float32  `json:"rotation"`
	ScaleX   *float32 `json:"scaleX"`
	ScaleY   *float32 `json:"scaleY"`
	Width    float32  `json:"width"`
	Height   float32  `json:"height"`
	Color    string   `json:"color"`
}

type jsonEventData struct {
	Int    int     `json:"int"`
	Float  float32 `json:"float"`
	String string  `json:"string"`
}

type jsonAnimation struct {
	Bones  map[string]map[string][]jsonKey `json:"bones"`
	Slots  map[string]map[string][]jsonKey `json:"slots"`
	Events []jsonEventKey                  `json:"events"`

	IK        json.RawMessage `json:"ik"`
	Transform json.RawMessage `json:"transform"`
	Path      json.RawMessage `json:"path"`
	Deform    json.RawMessage `json:"deform"`
	DrawOrder json.RawMessage `json:"drawOrder"`
}

type jsonKey struct {
	Time  float32         `json:"time"`
	Angle *float32        `json:"angle"`
	Value *float32        `json:"value"`
	X     *float32        `json:"x"`
	Y     *float32        `json:"y"`
	Name  *string         `json:"name"`
	Color string          `json:"color"`
	Curve json.RawMessage `json:"curve"`
	C2    float32         `json:"c2"`
	C3    *float32        `json:"c3"`
	C4    *float32        `json:"c4"`
}

type jsonEventKey struct {
	Time   float32  `json:"time"`
	Name   string   `json:"name"`
	Int    *int     `json:"int"`
	Float  *float32 `json:"float"`
	String *string  `json:"string"`
}

// ParseJSON builds skeleton data from a Spine JSON export. Region
// attachments are resolved against atlas; a nil atlas leaves regions unset.
func ParseJSON(name string, raw []byte, atlas *Atlas) (*Data, error) {
	var doc jsonData
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrapf(err, "skeleton %s: decode json", name)
	}
	if hasContent(doc.IK) || hasContent(doc.Transform) || hasContent(doc.Path) {
		return nil, errors.Errorf("skeleton %s: constraints are not supported", name)
	}

	d := &Data{
		Name:   name,
		X:      doc.Skeleton.X,
		Y:      doc.Skeleton.Y,
		Width:  doc.Skeleton.Width,
		Height: doc.Skeleton.Height,
	}

	for i, jb := range doc.Bones {
		bd := &BoneData{
			Index:    i,
			Name:     jb.Name,
			Length:   jb.Length,
			X:        jb.X,
			Y:        jb.Y,
			Rotation: jb.Rotation,
			ScaleX:   orOne(jb.ScaleX),
			ScaleY:   orOne(jb.ScaleY),
		}
		if jb.Parent != "" {
			bd.Parent = d.FindBone(jb.Parent)
			if bd.Parent == nil {
				return nil, errors.Errorf("skeleton %s: bone %q: parent %q must be declared first", name, jb.Name, jb.Parent)
			}
		}
		d.Bones = append(d.Bones, bd)
	}
	if len(d.Bones) == 0 {
		return nil, errors.Errorf("skeleton %s: no bones", name)
	}

	for i, js := range doc.Slots {
		sd := &SlotData{Index: i, Name: js.Name, Attachment: js.Attachment, Color: common.White}
		if sd.Bone = d.FindBone(js.Bone); sd.Bone == nil {
			return nil, errors.Errorf("skeleton %s: slot %q: bone %q not found", name, js.Name, js.Bone)
		}
		var err error
		if js.Color != "" {
			if sd.Color, err = common.ParseHexColor(js.Color); err != nil {
				return nil, errors.Wrapf(err, "skeleton %s: slot %q", name, js.Name)
			}
		}
		if sd.Blend, err = parseBlendMode(js.Blend); err != nil {
			return nil, errors.Wrapf(err, "skeleton %s: slot %q", name, js.Name)
		}
		d.Slots = append(d.Slots, sd)
	}

	if err := parseSkins(d, doc.Skins, atlas); err != nil {
		return nil, errors.Wrapf(err, "skeleton %s", name)
	}

	for _, en := range sortedKeys(doc.Events) {
		je := doc.Events[en]
		d.Events = append(d.Events, &EventData{Name: en, Int: je.Int, Float: je.Float, String: je.String})
	}

	for _, an := range sortedKeys(doc.Animations) {
		a, err := parseAnimation(d, an, doc.Animations[an], valueSpaceCurves(doc.Skeleton.Spine))
		if err != nil {
			return nil, errors.Wrapf(err, "skeleton %s: animation %q", name, an)
		}
		d.Animations = append(d.Animations, a)
	}
	return d, nil
}

func parseSkins(d *Data, raw json.RawMessage, atlas *Atlas) error {
	if !hasContent(raw) {
		return nil
	}
	var skins []jsonSkin
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		// Older exports key skins by name.
		var byName map[string]map[string]map[string]jsonAttachment
		if err := json.Unmarshal(raw, &byName); err != nil {
			return errors.Wrap(err, "decode skins")
		}
		for _, n := range sortedKeys(byName) {
			skins = append(skins, jsonSkin{Name: n, Attachments: byName[n]})
		}
	} else if err := json.Unmarshal(raw, &skins); err != nil {
		return errors.Wrap(err, "decode skins")
	}

	for _, js := range skins {
		skin := NewSkin(js.Name)
		for slotName, atts := range js.Attachments {
			sd := d.FindSlot(slotName)
			if sd == nil {
				return errors.Errorf("skin %q: slot %q not found", js.Name, slotName)
			}
			for attName, ja := range atts {
				a, err := newRegionAttachment(attName, ja, atlas)
				if err != nil {
					return errors.Wrapf(err, "skin %q: slot %q", js.Name, slotName)
				}
				skin.SetAttachment(sd.Index, attName, a)
			}
		}
		d.Skins = append(d.Skins, skin)
		if js.Name == "default" {
			d.DefaultSkin = skin
		}
	}
	return nil
}

func newRegionAttachment(key string, ja jsonAttachment, atlas *Atlas) (*RegionAttachment, error) {
	if ja.Type != "" && ja.Type != "region" {
		return nil, errors.Errorf("attachment %q: type %q is not supported", key, ja.Type)
	}
	a := &RegionAttachment{
		Name:     key,
		Path:     key,
		X:        ja.X,
		Y:        ja.Y,
		Rotation: ja.Rotation,
		ScaleX:   orOne(ja.ScaleX),
		ScaleY:   orOne(ja.ScaleY),
		Width:    ja.Width,
		Height:   ja.Height,
		Color:    common.White,
	}
	if ja.Name != "" {
		a.Name, a.Path = ja.Name, ja.Name
	}
	if ja.Path != "" {
		a.Path = ja.Path
	}
	if ja.Color != "" {
		c, err := common.ParseHexColor(ja.Color)
		if err != nil {
			return nil, errors.Wrapf(err, "attachment %q", key)
		}
		a.Color = c
	}
	if atlas != nil {
		if a.Region = atlas.FindRegion(a.Path); a.Region == nil {
			return nil, errors.Errorf("attachment %q: region %q not in atlas", key, a.Path)
		}
	}
	a.UpdateOffset()
	return a, nil
}

func parseAnimation(d *Data, name string, ja jsonAnimation, valueSpace bool) (*Animation, error) {
	for kind, raw := range map[string]json.RawMessage{
		"ik": ja.IK, "transform": ja.Transform, "path": ja.Path, "deform": ja.Deform, "drawOrder": ja.DrawOrder,
	} {
		if hasContent(raw) {
			return nil, errors.Errorf("%s timelines are not supported", kind)
		}
	}

	var timelines []Timeline
	for _, boneName := range sortedKeys(ja.Bones) {
		bd := d.FindBone(boneName)
		if bd == nil {
			return nil, errors.Errorf("bone %q not found", boneName)
		}
		props := ja.Bones[boneName]
		for _, prop := range sortedKeys(props) {
			tl, err := boneTimeline(bd.Index, prop, props[prop], valueSpace)
			if err != nil {
				return nil, errors.Wrapf(err, "bone %q", boneName)
			}
			timelines = append(timelines, tl)
		}
	}

	for _, slotName := range sortedKeys(ja.Slots) {
		sd := d.FindSlot(slotName)
		if sd == nil {
			return nil, errors.Errorf("slot %q not found", slotName)
		}
		props := ja.Slots[slotName]
		for _, prop := range sortedKeys(props) {
			tl, err := slotTimeline(sd.Index, prop, props[prop], valueSpace)
			if err != nil {
				return nil, errors.Wrapf(err, "slot %q", slotName)
			}
			timelines = append(timelines, tl)
		}
	}

	if len(ja.Events) > 0 {
		et := &EventTimeline{}
		for _, k := range ja.Events {
			ed := d.FindEvent(k.Name)
			if ed == nil {
				return nil, errors.Errorf("event %q not found", k.Name)
			}
			ev := Event{Data: ed, Time: k.Time, Int: ed.Int, Float: ed.Float, String: ed.String}
			if k.Int != nil {
				ev.Int = *k.Int
			}
			if k.Float != nil {
				ev.Float = *k.Float
			}
			if k.String != nil {
				ev.String = *k.String
			}
			et.Events = append(et.Events, ev)
		}
		sort.SliceStable(et.Events, func(i, j int) bool { return et.Events[i].Time < et.Events[j].Time })
		timelines = append(timelines, et)
	}

	return NewAnimation(name, timelines), nil
}

func boneTimeline(bone int, prop string, keys []jsonKey, valueSpace bool) (Timeline, error) {
	switch prop {
	case "rotate":
		tl := &RotateTimeline{Bone: bone}
		values := make([][]float32, len(keys))
		for i, k := range keys {
			angle := orZero(k.Angle)
			if k.Value != nil {
				angle = *k.Value
			}
			tl.Angles = append(tl.Angles, angle)
			values[i] = []float32{angle}
		}
		if err := addKeys(&tl.keyframes, keys, values, valueSpace); err != nil {
			return nil, err
		}
		return tl, nil
	case "translate", "scale":
		def := float32(0)
		if prop == "scale" {
			def = 1
		}
		var k keyframes
		var vecs []mgl32.Vec2
		values := make([][]float32, len(keys))
		for i, key := range keys {
			v := mgl32.Vec2{orDefault(key.X, def), orDefault(key.Y, def)}
			vecs = append(vecs, v)
			values[i] = []float32{v.X(), v.Y()}
		}
		if err := addKeys(&k, keys, values, valueSpace); err != nil {
			return nil, err
		}
		if prop == "scale" {
			return &ScaleTimeline{keyframes: k, Bone: bone, Values: vecs}, nil
		}
		return &TranslateTimeline{keyframes: k, Bone: bone, Values: vecs}, nil
	}
	return nil, errors.Errorf("%s timelines are not supported", prop)
}

func slotTimeline(slot int, prop string, keys []jsonKey, valueSpace bool) (Timeline, error) {
	switch prop {
	case "attachment":
		tl := &AttachmentTimeline{Slot: slot}
		for _, k := range keys {
			name := ""
			if k.Name != nil {
				name = *k.Name
			}
			tl.add(k.Time, Curve{Kind: CurveStepped})
			tl.Names = append(tl.Names, name)
		}
		return tl, nil
	case "color", "rgba":
		tl := &ColorTimeline{Slot: slot}
		values := make([][]float32, len(keys))
		for i, k := range keys {
			col, err := common.ParseHexColor(k.Color)
			if err != nil {
				return nil, err
			}
			tl.Colors = append(tl.Colors, col)
			values[i] = col[:]
		}
		if err := addKeys(&tl.keyframes, keys, values, valueSpace); err != nil {
			return nil, err
		}
		return tl, nil
	}
	return nil, errors.Errorf("%s timelines are not supported", prop)
}

// addKeys appends every key with its curve resolved against the next key.
// values holds each key's channel values.
func addKeys(k *keyframes, keys []jsonKey, values [][]float32, valueSpace bool) error {
	for i, key := range keys {
		src, err := parseCurve(key, valueSpace)
		if err != nil {
			return err
		}
		curves := []Curve{src.shared}
		if i+1 < len(keys) {
			curves, err = src.resolve(key.Time, keys[i+1].Time, values[i], values[i+1])
			if err != nil {
				return errors.Wrapf(err, "key at %v", key.Time)
			}
		}
		k.add(key.Time, curves...)
	}
	return nil
}

// parseCurve reads the curve forms Spine exports: a name, a 3.8 style
// number with c2..c4, or an array. Arrays are unit-square controls before
// 4.0 and (time, value) controls per channel from 4.0 on.
func parseCurve(k jsonKey, valueSpace bool) (curveSource, error) {
	if !hasContent(k.Curve) {
		return curveSource{shared: Curve{Kind: CurveLinear}}, nil
	}
	var name string
	if err := json.Unmarshal(k.Curve, &name); err == nil {
		switch name {
		case "stepped":
			return curveSource{shared: Curve{Kind: CurveStepped}}, nil
		case "linear":
			return curveSource{shared: Curve{Kind: CurveLinear}}, nil
		}
		return curveSource{}, errors.Errorf("unknown curve %q", name)
	}
	var c1 float32
	if err := json.Unmarshal(k.Curve, &c1); err == nil {
		return curveSource{shared: Curve{Kind: CurveBezier, CX1: c1, CY1: k.C2, CX2: orOne(k.C3), CY2: orOne(k.C4)}}, nil
	}
	var cs []float32
	if err := json.Unmarshal(k.Curve, &cs); err != nil || len(cs) == 0 || len(cs)%4 != 0 {
		return curveSource{}, errors.Errorf("bad curve %s", string(k.Curve))
	}
	if valueSpace {
		return curveSource{valueSpace: cs}, nil
	}
	if len(cs) != 4 {
		return curveSource{}, errors.Errorf("bad curve %s", string(k.Curve))
	}
	return curveSource{shared: Curve{Kind: CurveBezier, CX1: cs[0], CY1: cs[1], CX2: cs[2], CY2: cs[3]}}, nil
}

// valueSpaceCurves reports whether an export version writes bezier arrays
// in (time, value) space.
func valueSpaceCurves(version string) bool {
	major, _, _ := strings.Cut(version, ".")
	n, err := strconv.Atoi(major)
	return err == nil && n >= 4
}

func hasContent(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && !bytes.Equal(t, []byte("null")) && !bytes.Equal(t, []byte("[]")) && !bytes.Equal(t, []byte("{}"))
}

func orOne(v *float32) float32 {
	return orDefault(v, 1)
}

func orZero(v *float32) float32 {
	return orDefault(v, 0)
}

func orDefault(v *float32, def float32) float32 {
	if v == nil {
		return def
	}
	return *v
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
