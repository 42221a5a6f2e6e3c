package pokeapi

import (
	"regexp"
	"strconv"
)

// ListResponse is one page of the creature index.
type ListResponse struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []Entry `json:"results"`
}

// Entry is a single named creature in the index.
type Entry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

var trailingIDPattern = regexp.MustCompile(`/(\d+)/?$`)

// ID extracts the numeric id from the entry's resource URL.
// It returns false when the URL does not end in an id segment.
func (e Entry) ID() (int, bool) {
	m := trailingIDPattern.FindStringSubmatch(e.URL)
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return id, true
}

// Details is the subset of a creature record exposed by this service.
type Details struct {
	ID      int        `json:"id"`
	Name    string     `json:"name"`
	Height  int        `json:"height"`
	Weight  int        `json:"weight"`
	Types   []TypeSlot `json:"types"`
	Sprites Sprites    `json:"sprites"`
}

// TypeSlot ties an elemental type to its display position.
type TypeSlot struct {
	Slot int              `json:"slot"`
	Type NamedAPIResource `json:"type"`
}

// NamedAPIResource is PokeAPI's generic {name,url} reference.
type NamedAPIResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Sprites holds image URLs; any of them may be absent upstream.
type Sprites struct {
	FrontDefault     *string       `json:"front_default"`
	FrontShiny       *string       `json:"front_shiny"`
	FrontFemale      *string       `json:"front_female"`
	FrontShinyFemale *string       `json:"front_shiny_female"`
	BackDefault      *string       `json:"back_default"`
	BackShiny        *string       `json:"back_shiny"`
	BackFemale       *string       `json:"back_female"`
	BackShinyFemale  *string       `json:"back_shiny_female"`
	Other            *OtherSprites `json:"other,omitempty"`
}

// OtherSprites carries alternative artwork sets.
type OtherSprites struct {
	OfficialArtwork *OfficialArtwork `json:"official-artwork,omitempty"`
}

// OfficialArtwork is the high resolution artwork set.
type OfficialArtwork struct {
	FrontDefault *string `json:"front_default"`
	FrontShiny   *string `json:"front_shiny"`
}
