package core

import "fmt"

// InteractionKind tags the outcome of a material interaction
type InteractionKind int

const (
	Absorbed InteractionKind = iota
	Reflected
	Transmitted
)

func (k InteractionKind) String() string {
	switch k {
	case Absorbed:
		return "absorbed"
	case Reflected:
		return "reflected"
	case Transmitted:
		return "transmitted"
	}
	return fmt.Sprintf("InteractionKind(%d)", int(k))
}

// Interaction is the result of Material.Interact. Ray and Attenuation are
// only meaningful when Kind is Reflected or Transmitted.
type Interaction struct {
	Kind        InteractionKind
	Ray         Ray
	Attenuation Vec3
}

// Continues reports whether the light carries on after the interaction
func (i Interaction) Continues() bool {
	return i.Kind == Reflected || i.Kind == Transmitted
}

// Reflect returns a Reflected interaction
func Reflect(ray Ray, attenuation Vec3) Interaction {
	return Interaction{Kind: Reflected, Ray: ray, Attenuation: attenuation}
}

// Transmit returns a Transmitted interaction
func Transmit(ray Ray, attenuation Vec3) Interaction {
	return Interaction{Kind: Transmitted, Ray: ray, Attenuation: attenuation}
}

// Absorb returns an Absorbed interaction
func Absorb() Interaction {
	return Interaction{Kind: Absorbed}
}

// PhotonType tags how a photon reached the surface it is recorded on
type PhotonType int

const (
	// Direct photons hit their first surface straight from the light
	Direct PhotonType = iota
	// Indirect photons have bounced at least once
	Indirect
	// Shadow photons mark surfaces behind the first hit of a light path
	Shadow
)

func (t PhotonType) String() string {
	switch t {
	case Direct:
		return "direct"
	case Indirect:
		return "indirect"
	case Shadow:
		return "shadow"
	}
	return fmt.Sprintf("PhotonType(%d)", int(t))
}

// Photon is a ray carrying light of a given colour
type Photon struct {
	Ray    Ray
	Colour Vec3
	Type   PhotonType
}
