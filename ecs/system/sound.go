package system

import (
	"fmt"
	"log"

	"github.com/milk9111/kandclay/ecs"
	"github.com/milk9111/kandclay/ecs/component"
)

// Player plays a loaded clip by name.
type Player interface {
	Play(name string) error
}

// SoundSystem serves SoundRequest entities and destroys them.
type SoundSystem struct {
	player Player
}

func NewSoundSystem(player Player) *SoundSystem {
	return &SoundSystem{player: player}
}

func (s *SoundSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.SoundRequestComponent.Kind(), func(e ecs.Entity, req *component.SoundRequest) {
		if s.player != nil {
			if err := s.player.Play(req.Name); err != nil {
				log.Printf("sound: %v", err)
			}
		}
		ecs.DestroyEntity(w, e)
	})
}

// RequestSound queues a clip for the SoundSystem to play this frame.
func RequestSound(w *ecs.World, name string) error {
	if name == "" {
		return fmt.Errorf("sound request: empty clip name")
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.SoundRequestComponent.Kind(), &component.SoundRequest{Name: name}); err != nil {
		ecs.DestroyEntity(w, e)
		return fmt.Errorf("sound request %s: %w", name, err)
	}
	return nil
}
