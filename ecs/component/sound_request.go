package component

// SoundRequest asks the sound system to play a named clip once. The entity
// carrying it is destroyed when the request is served.
type SoundRequest struct {
	Name string
}

var SoundRequestComponent = NewComponent[SoundRequest]()
