// Package symtab implements the symbol table shared by every frame of a
// scene program.
//
// The table is layered. The base layer holds every declared symbol and all
// persistent writes (set, setknobs, saved coordinate systems and materials
// bound by mesh ingestion). The overlay layer holds the animated knob values
// of the frame that is currently being rendered; overlay entries shadow the
// base layer until they are replaced by a later frame or cleared by an
// explicit write to the same knob.
package symtab

import (
	"fmt"

	"github.com/achilleasa/mdlanim/types"
)

// Kind identifies the type of a symbol. A symbol's kind never changes once
// it has been defined.
type Kind uint8

// The supported symbol kinds.
const (
	KindMaterial Kind = iota
	KindKnob
	KindCoordSystem
	KindLight
)

func (k Kind) String() string {
	switch k {
	case KindMaterial:
		return "material"
	case KindKnob:
		return "knob"
	case KindCoordSystem:
		return "coordinate system"
	case KindLight:
		return "light"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Reflectance holds the ambient, diffuse and specular coefficients of a
// single color channel.
type Reflectance struct {
	Ambient  float32
	Diffuse  float32
	Specular float32
}

// Scale all coefficients by s.
func (r Reflectance) Scale(s float32) Reflectance {
	return Reflectance{r.Ambient * s, r.Diffuse * s, r.Specular * s}
}

// Material describes the reflectance of a surface for each color channel.
type Material struct {
	Red   Reflectance
	Green Reflectance
	Blue  Reflectance
}

// Ambient returns the ambient coefficients as an RGB vector.
func (m Material) Ambient() types.Vec3 {
	return types.XYZ(m.Red.Ambient, m.Green.Ambient, m.Blue.Ambient)
}

// Diffuse returns the diffuse coefficients as an RGB vector.
func (m Material) Diffuse() types.Vec3 {
	return types.XYZ(m.Red.Diffuse, m.Green.Diffuse, m.Blue.Diffuse)
}

// Specular returns the specular coefficients as an RGB vector.
func (m Material) Specular() types.Vec3 {
	return types.XYZ(m.Red.Specular, m.Green.Specular, m.Blue.Specular)
}

// Scale returns a frame-resolved copy of the material with every coefficient
// multiplied by s.
func (m Material) Scale(s float32) Material {
	return Material{m.Red.Scale(s), m.Green.Scale(s), m.Blue.Scale(s)}
}

// MaterialFromRGB assembles a material from per-property RGB vectors. Each
// channel receives its ambient, diffuse and specular component in that order.
func MaterialFromRGB(ambient, diffuse, specular types.Vec3) Material {
	return Material{
		Red:   Reflectance{ambient[0], diffuse[0], specular[0]},
		Green: Reflectance{ambient[1], diffuse[1], specular[1]},
		Blue:  Reflectance{ambient[2], diffuse[2], specular[2]},
	}
}

// Light is a point light with a location and a color.
type Light struct {
	Location types.Vec3
	Color    types.Vec3
}

// Symbol is a tagged entry of the table. Exactly one of the value fields is
// meaningful depending on Kind.
type Symbol struct {
	Kind Kind

	Material    Material
	Knob        float64
	CoordSystem types.Mat4
	Light       Light
}
