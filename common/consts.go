package common

const (
	// BaseWidth and BaseHeight are the world size every screen viewport starts from.
	BaseWidth  = 1600
	BaseHeight = 1600

	Title = "K and Clay"
)
