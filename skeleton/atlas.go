package skeleton

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
)

// AtlasPage is one texture of an atlas. Image is filled in by the asset
// loader; a nil Image skips drawing of every region on the page.
type AtlasPage struct {
	Name          string
	Width, Height int
	PMA           bool
	Image         *ebiten.Image
}

// AtlasRegion is a named rectangle on a page. W and H are the unrotated size.
type AtlasRegion struct {
	Name             string
	Page             *AtlasPage
	X, Y             int
	W, H             int
	OrigW, OrigH     int
	OffsetX, OffsetY int
	Rotate           bool
	Index            int
}

type Atlas struct {
	Pages   []*AtlasPage
	Regions []*AtlasRegion
}

func (a *Atlas) FindRegion(name string) *AtlasRegion {
	if a == nil {
		return nil
	}
	for _, r := range a.Regions {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// ParseAtlas reads a libGDX/Spine text atlas. Both the indented legacy
// layout and the compact "bounds:" layout are accepted.
func ParseAtlas(r io.Reader) (*Atlas, error) {
	atlas := &Atlas{}
	var (
		page        *AtlasPage
		region      *AtlasRegion
		expectPage  = true
		lineNo      int
		hasOrig     bool
		closeRegion = func() {
			if region != nil && !hasOrig {
				region.OrigW, region.OrigH = region.W, region.H
			}
		}
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			closeRegion()
			region = nil
			expectPage = true
			continue
		}

		key, value, isProp := strings.Cut(line, ":")
		if !isProp {
			closeRegion()
			if expectPage {
				page = &AtlasPage{Name: line}
				atlas.Pages = append(atlas.Pages, page)
				region = nil
				expectPage = false
				continue
			}
			region = &AtlasRegion{Name: line, Page: page, Index: -1}
			hasOrig = false
			atlas.Regions = append(atlas.Regions, region)
			continue
		}
		if page == nil {
			return nil, errors.Errorf("atlas line %d: property %q before any page", lineNo, key)
		}

		key = strings.TrimSpace(key)
		ints, err := parseInts(value)
		if region == nil {
			if err := applyPageProp(page, key, value, ints, err); err != nil {
				return nil, errors.Wrapf(err, "atlas line %d", lineNo)
			}
			continue
		}
		if key == "orig" || key == "offsets" {
			hasOrig = true
		}
		if err := applyRegionProp(region, key, value, ints, err); err != nil {
			return nil, errors.Wrapf(err, "atlas line %d", lineNo)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read atlas")
	}
	closeRegion()
	if len(atlas.Pages) == 0 {
		return nil, errors.New("atlas has no pages")
	}
	return atlas, nil
}

func applyPageProp(p *AtlasPage, key, value string, ints []int, intErr error) error {
	switch key {
	case "size":
		if intErr != nil || len(ints) != 2 {
			return errors.Errorf("bad page size %q", value)
		}
		p.Width, p.Height = ints[0], ints[1]
	case "pma":
		p.PMA = strings.TrimSpace(value) == "true"
	}
	// format, filter, repeat and scale do not affect ebiten drawing.
	return nil
}

func applyRegionProp(r *AtlasRegion, key, value string, ints []int, intErr error) error {
	need := func(n int) error {
		if intErr != nil || len(ints) != n {
			return errors.Errorf("region %s: bad %s %q", r.Name, key, value)
		}
		return nil
	}
	switch key {
	case "rotate":
		v := strings.TrimSpace(value)
		r.Rotate = v == "true" || v == "90"
	case "xy":
		if err := need(2); err != nil {
			return err
		}
		r.X, r.Y = ints[0], ints[1]
	case "size":
		if err := need(2); err != nil {
			return err
		}
		r.W, r.H = ints[0], ints[1]
	case "bounds":
		if err := need(4); err != nil {
			return err
		}
		r.X, r.Y, r.W, r.H = ints[0], ints[1], ints[2], ints[3]
	case "orig":
		if err := need(2); err != nil {
			return err
		}
		r.OrigW, r.OrigH = ints[0], ints[1]
	case "offset":
		if err := need(2); err != nil {
			return err
		}
		r.OffsetX, r.OffsetY = ints[0], ints[1]
	case "offsets":
		if err := need(4); err != nil {
			return err
		}
		r.OffsetX, r.OffsetY, r.OrigW, r.OrigH = ints[0], ints[1], ints[2], ints[3]
	case "index":
		if err := need(1); err != nil {
			return err
		}
		r.Index = ints[0]
	}
	return nil
}

func parseInts(value string) ([]int, error) {
	parts := strings.Split(value, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
