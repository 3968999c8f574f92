package prefs

import "fmt"

type HairColor int

const (
	Blonde HairColor = iota
	Brunette
	Redhead
)

var hairColorNames = [...]string{"BLONDE", "BRUNETTE", "REDHEAD"}

func (h HairColor) String() string {
	if h < 0 || int(h) >= len(hairColorNames) {
		return fmt.Sprintf("HairColor(%d)", int(h))
	}
	return hairColorNames[h]
}

// Next cycles BLONDE -> BRUNETTE -> REDHEAD -> BLONDE.
func (h HairColor) Next() HairColor {
	return HairColor((int(h) + 1) % len(hairColorNames))
}

func ParseHairColor(s string) (HairColor, error) {
	for i, n := range hairColorNames {
		if n == s {
			return HairColor(i), nil
		}
	}
	return Blonde, fmt.Errorf("prefs: unknown hair color %q", s)
}

type CharacterHeight int

const (
	Short CharacterHeight = iota
	Average
	Tall
)

var heightNames = [...]string{"SHORT", "AVERAGE", "TALL"}

func (c CharacterHeight) String() string {
	if c < 0 || int(c) >= len(heightNames) {
		return fmt.Sprintf("CharacterHeight(%d)", int(c))
	}
	return heightNames[c]
}

func (c CharacterHeight) Next() CharacterHeight {
	return CharacterHeight((int(c) + 1) % len(heightNames))
}

func ParseCharacterHeight(s string) (CharacterHeight, error) {
	for i, n := range heightNames {
		if n == s {
			return CharacterHeight(i), nil
		}
	}
	return Average, fmt.Errorf("prefs: unknown character height %q", s)
}
