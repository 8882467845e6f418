package mesh

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/achilleasa/mdlanim/asset"
	"github.com/achilleasa/mdlanim/log"
	"github.com/achilleasa/mdlanim/symtab"
	"github.com/achilleasa/mdlanim/types"
)

// Ambient, diffuse and specular reflectance of an mtl block. Properties that
// the block omits stay at zero.
type libMaterial struct {
	Ka types.Vec3
	Kd types.Vec3
	Ks types.Vec3
}

type wavefrontReader struct {
	logger log.Logger

	mesh    *Mesh
	symbols MaterialDefiner

	// Material library entries by name.
	library map[string]*libMaterial

	// Group receiving new faces.
	curGroup string

	// An error stack that provides additional error information when
	// obj files reference material libraries.
	errStack []string
}

// Read parses the wavefront file at path. Every material bound by a usemtl
// record is written into symbols.
func Read(path string, symbols MaterialDefiner) (*Mesh, error) {
	res, err := asset.NewResource(path, nil)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer res.Close()

	return ReadResource(res, symbols)
}

// ReadResource parses a wavefront mesh from an open resource. Material
// libraries are resolved relative to the resource path.
func ReadResource(res *asset.Resource, symbols MaterialDefiner) (*Mesh, error) {
	r := &wavefrontReader{
		logger:   log.New("wavefront mesh reader"),
		mesh:     newMesh(),
		symbols:  symbols,
		library:  make(map[string]*libMaterial),
		errStack: make([]string, 0),
	}

	r.logger.Infof(`parsing mesh from "%s"`, res.Path())
	start := time.Now()

	if err := r.parse(res); err != nil {
		return nil, err
	}

	r.logger.Infof(
		"parsed %d vertices and %d group(s) in %d ms",
		len(r.mesh.Vertices), len(r.mesh.GroupOrder), time.Since(start).Nanoseconds()/1e6,
	)
	return r.mesh, nil
}

func (r *wavefrontReader) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	stack := make([]string, len(r.errStack))
	copy(stack, r.errStack)
	return &ParseError{
		File:  file,
		Line:  line,
		Msg:   fmt.Sprintf(msgFormat, args...),
		Stack: stack,
	}
}

// Push a frame to the error stack.
func (r *wavefrontReader) pushFrame(msg string) {
	r.errStack = append([]string{msg}, r.errStack...)
}

// Pop a frame from the error stack.
func (r *wavefrontReader) popFrame() {
	r.errStack = r.errStack[1:]
}

// Start a new face list for group, discarding any faces previously recorded
// under the same name.
func (r *wavefrontReader) openGroup(group string) {
	if _, exists := r.mesh.Groups[group]; !exists {
		r.mesh.GroupOrder = append(r.mesh.GroupOrder, group)
	}
	r.mesh.Groups[group] = make([]Face, 0)
	r.curGroup = group
}

func (r *wavefrontReader) parse(res *asset.Resource) error {
	var lineNum int

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.mesh.Vertices = append(r.mesh.Vertices, v)
		case "g":
			group := DefaultGroup
			if len(lineTokens) > 1 {
				group = lineTokens[1]
			}
			r.openGroup(group)
		case "f":
			face, err := r.parseFace(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			if r.curGroup == "" {
				r.openGroup(DefaultGroup)
			}
			r.mesh.Groups[r.curGroup] = append(r.mesh.Groups[r.curGroup], face)
		case "mtllib":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "mtllib"; expected 1 argument; got %d`, len(lineTokens)-1)
			}

			r.pushFrame(fmt.Sprintf("referenced from %s:%d [mtllib]", res.Path(), lineNum))
			libRes, err := asset.NewResource(lineTokens[1], res)
			if err != nil {
				return &IOError{Path: lineTokens[1], Err: err}
			}
			err = r.parseMaterials(libRes)
			libRes.Close()
			if err != nil {
				return err
			}
			r.popFrame()
		case "usemtl":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "usemtl"; expected 1 argument; got %d`, len(lineTokens)-1)
			}

			matName := lineTokens[1]
			mat, exists := r.library[matName]
			if !exists {
				return r.emitError(res.Path(), lineNum, `undefined material with name "%s"`, matName)
			}

			if r.curGroup == "" {
				r.openGroup(DefaultGroup)
			}
			r.mesh.GroupMaterials[r.curGroup] = matName

			if err := r.symbols.DefineMaterial(matName, symtab.MaterialFromRGB(mat.Ka, mat.Kd, mat.Ks)); err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
		case "vt", "vp", "vn", "l", "o", "s", "d", "Tr":
			// Recognized but not needed for rendering.
		}
	}

	if err := scanner.Err(); err != nil {
		return &IOError{Path: res.Path(), Err: err}
	}
	return nil
}

// Parse a face record. Each argument is a vertex reference in one of the
// formats v, v/vt, v//vn or v/vt/vn; only the vertex index is kept. Indices
// start from 1 and may be negative to reference vertices from the end of the
// vertex list.
func (r *wavefrontReader) parseFace(lineTokens []string) (Face, error) {
	if len(lineTokens) < 4 {
		return nil, fmt.Errorf(`unsupported syntax for "f"; expected at least 3 arguments; got %d`, len(lineTokens)-1)
	}

	face := make(Face, 0, len(lineTokens)-1)
	for arg, token := range lineTokens[1:] {
		vToken := strings.SplitN(token, "/", 2)[0]
		if vToken == "" {
			return nil, fmt.Errorf("face argument %d does not include a vertex index", arg)
		}

		index, err := selectVertexIndex(vToken, len(r.mesh.Vertices))
		if err != nil {
			return nil, fmt.Errorf("could not parse vertex index for face argument %d: %s", arg, err.Error())
		}
		face = append(face, index)
	}
	return face, nil
}

// Parse a wavefront material library. Blocks start with "newmtl <name>";
// every following "<Tag> <x> <y> <z>" line up to the next block is a
// property of that material.
func (r *wavefrontReader) parseMaterials(res *asset.Resource) error {
	var lineNum int
	var curMaterial *libMaterial

	r.logger.Infof(`parsing material library "%s"`, res.Path())

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		if lineTokens[0] == "newmtl" {
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "newmtl"; expected 1 argument; got %d`, len(lineTokens)-1)
			}

			matName := lineTokens[1]
			if _, exists := r.library[matName]; exists {
				return r.emitError(res.Path(), lineNum, `material "%s" already defined`, matName)
			}
			curMaterial = &libMaterial{}
			r.library[matName] = curMaterial
			continue
		}

		if curMaterial == nil {
			return r.emitError(res.Path(), lineNum, `got "%s" without a "newmtl"`, lineTokens[0])
		}

		var target *types.Vec3
		switch lineTokens[0] {
		case "Ka":
			target = &curMaterial.Ka
		case "Kd":
			target = &curMaterial.Kd
		case "Ks":
			target = &curMaterial.Ks
		default:
			continue
		}

		v, err := parseVec3(lineTokens)
		if err != nil {
			return r.emitError(res.Path(), lineNum, "%s", err.Error())
		}
		*target = v
	}

	if err := scanner.Err(); err != nil {
		return &IOError{Path: res.Path(), Err: err}
	}
	return nil
}

// Convert a 1-based (or negative, end-relative) vertex reference into a
// 0-based offset into the vertex list.
func selectVertexIndex(indexToken string, vertexCount int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var offset int
	if index < 0 {
		offset = vertexCount + int(index)
	} else {
		offset = int(index - 1)
	}
	if offset < 0 || offset >= vertexCount {
		return -1, fmt.Errorf("index out of bounds")
	}
	return offset, nil
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) < 4 {
		return types.Vec3{}, fmt.Errorf(`unsupported syntax for "%s"; expected 3 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec3{}
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = float32(coord)
	}
	return v, nil
}
