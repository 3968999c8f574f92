package assets

import (
	"bytes"
	"fmt"
	"log"
	"path"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/kandclay/skeleton"
)

// Manager caches decoded images, atlases and skeleton data by asset path.
type Manager struct {
	mu        sync.Mutex
	images    map[string]*ebiten.Image
	atlases   map[string]*skeleton.Atlas
	skeletons map[skeletonKey]*skeleton.Data

	loadFile  func(string) ([]byte, error)
	loadImage func(string) (*ebiten.Image, error)
	release   func(*ebiten.Image)
}

type skeletonKey struct {
	atlas, json string
}

func NewManager() *Manager {
	return &Manager{
		images:    make(map[string]*ebiten.Image),
		atlases:   make(map[string]*skeleton.Atlas),
		skeletons: make(map[skeletonKey]*skeleton.Data),
		loadFile:  LoadFile,
		loadImage: LoadImage,
		release:   deallocate,
	}
}

// SetImageLoader replaces how images are decoded. Tools that run without a
// graphics context use it to skip decoding pages and backgrounds.
func (m *Manager) SetImageLoader(load func(path string) (*ebiten.Image, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadImage = load
}

func deallocate(img *ebiten.Image) {
	if img != nil {
		img.Deallocate()
	}
}

func (m *Manager) Image(p string) (*ebiten.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.image(cleanAssetPath(p))
}

func (m *Manager) image(p string) (*ebiten.Image, error) {
	if img, ok := m.images[p]; ok {
		return img, nil
	}
	img, err := m.loadImage(p)
	if err != nil {
		return nil, fmt.Errorf("assets: image %s: %w", p, err)
	}
	m.images[p] = img
	return img, nil
}

// Atlas parses an atlas and loads its page images from the atlas directory.
func (m *Manager) Atlas(p string) (*skeleton.Atlas, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.atlas(cleanAssetPath(p))
}

func (m *Manager) atlas(p string) (*skeleton.Atlas, error) {
	if a, ok := m.atlases[p]; ok {
		return a, nil
	}
	b, err := m.loadFile(p)
	if err != nil {
		return nil, fmt.Errorf("assets: atlas %s: %w", p, err)
	}
	a, err := skeleton.ParseAtlas(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: atlas %s: %w", p, err)
	}
	for _, page := range a.Pages {
		img, err := m.image(path.Join(path.Dir(p), page.Name))
		if err != nil {
			return nil, err
		}
		page.Image = img
	}
	m.atlases[p] = a
	return a, nil
}

// Skeleton returns the skeleton data for a JSON export bound to an atlas.
func (m *Manager) Skeleton(atlasPath, jsonPath string) (*skeleton.Data, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := skeletonKey{atlas: cleanAssetPath(atlasPath), json: cleanAssetPath(jsonPath)}
	if d, ok := m.skeletons[key]; ok {
		return d, nil
	}
	a, err := m.atlas(key.atlas)
	if err != nil {
		return nil, err
	}
	raw, err := m.loadFile(key.json)
	if err != nil {
		return nil, fmt.Errorf("assets: skeleton %s: %w", key.json, err)
	}
	name := path.Base(key.json)
	d, err := skeleton.ParseJSON(name[:len(name)-len(path.Ext(name))], raw, a)
	if err != nil {
		return nil, fmt.Errorf("assets: skeleton %s: %w", key.json, err)
	}
	m.skeletons[key] = d
	return d, nil
}

// Invalidate drops every cached entry built from p, so the next request
// reloads it. It reports whether anything was dropped.
func (m *Manager) Invalidate(p string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	p = cleanAssetPath(p)
	dropped := false
	if img, ok := m.images[p]; ok {
		delete(m.images, p)
		m.release(img)
		dropped = true
	}
	for ap, a := range m.atlases {
		if ap == p || atlasUsesPage(ap, a, p) {
			delete(m.atlases, ap)
			dropped = true
		}
	}
	for k := range m.skeletons {
		if k.json == p || k.atlas == p || m.atlases[k.atlas] == nil {
			delete(m.skeletons, k)
			dropped = true
		}
	}
	if dropped {
		log.Printf("assets: invalidated %s", p)
	}
	return dropped
}

func atlasUsesPage(atlasPath string, a *skeleton.Atlas, p string) bool {
	for _, page := range a.Pages {
		if path.Join(path.Dir(atlasPath), page.Name) == p {
			return true
		}
	}
	return false
}

// Dispose releases every cached image and empties the caches.
func (m *Manager) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, img := range m.images {
		m.release(img)
	}
	clear(m.images)
	clear(m.atlases)
	clear(m.skeletons)
}
