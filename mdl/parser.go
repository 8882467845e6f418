package mdl

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/achilleasa/mdlanim/symtab"
	"github.com/achilleasa/mdlanim/types"
)

// SyntaxError reports a malformed statement.
type SyntaxError struct {
	File string
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("[%s: %d] syntax error: %s", e.File, e.Line, e.Msg)
	}
	return fmt.Sprintf("[line %d] syntax error: %s", e.Line, e.Msg)
}

// Program is a parsed scene program: its commands in source order and the
// symbols declared by them.
type Program struct {
	Commands []Command
	Symbols  *symtab.Table
}

type parser struct {
	file string
	line int
	prog *Program
}

// ParseFile parses the scene program stored in filename.
func ParseFile(filename string) (*Program, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parse(filename, f)
}

// Parse a scene program.
func Parse(r io.Reader) (*Program, error) {
	return parse("", r)
}

func parse(name string, r io.Reader) (*Program, error) {
	p := &parser{
		file: name,
		prog: &Program{
			Commands: make([]Command, 0),
			Symbols:  symtab.New(),
		},
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.line++
		tokens, err := tokenize(scanner.Text())
		if err != nil {
			return nil, p.errorf("%s", err.Error())
		}
		if len(tokens) == 0 {
			continue
		}
		if err = p.statement(tokens); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return p.prog, nil
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &SyntaxError{File: p.file, Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) emit(cmd Command) {
	p.prog.Commands = append(p.prog.Commands, cmd)
}

// Split a line into tokens. Double-quoted strings form a single token and
// comments starting with "//" or "#" run to the end of the line.
func tokenize(line string) ([]string, error) {
	tokens := make([]string, 0)
	for {
		line = strings.TrimLeft(line, " \t\r")
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") {
			return tokens, nil
		}

		if line[0] == '"' {
			end := strings.IndexByte(line[1:], '"')
			if end < 0 {
				return nil, fmt.Errorf("unterminated string")
			}
			tokens = append(tokens, line[1:end+1])
			line = line[end+2:]
			continue
		}

		end := strings.IndexAny(line, " \t\r")
		if end < 0 {
			end = len(line)
		}
		tokens = append(tokens, line[:end])
		line = line[end:]
	}
}

// isNumber accepts decimal literals only; spellings such as "inf" or "nan"
// that strconv also parses are valid identifiers.
func isNumber(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if (r < '0' || r > '9') && !strings.ContainsRune("+-.eE", r) {
			return false
		}
	}
	_, err := strconv.ParseFloat(tok, 64)
	return err == nil
}

// Split statement arguments into an optional leading identifier, a run of
// numbers and an optional trailing identifier.
func splitArgs(args []string) (lead string, nums []float64, trail string, err error) {
	if len(args) > 0 && !isNumber(args[0]) {
		lead, args = args[0], args[1:]
	}
	if len(args) > 0 && !isNumber(args[len(args)-1]) {
		trail, args = args[len(args)-1], args[:len(args)-1]
	}
	nums = make([]float64, len(args))
	for i, tok := range args {
		if !isNumber(tok) {
			return "", nil, "", fmt.Errorf("expected a number; got %q", tok)
		}
		nums[i], _ = strconv.ParseFloat(tok, 64)
	}
	return lead, nums, trail, nil
}

func vec3(nums []float64) types.Vec3 {
	return types.XYZ(float32(nums[0]), float32(nums[1]), float32(nums[2]))
}

func (p *parser) statement(tokens []string) error {
	op, args := tokens[0], tokens[1:]
	switch op {
	case "push":
		p.emit(Push{})
	case "pop":
		p.emit(Pop{})
	case "display":
		p.emit(Display{})
	case "save":
		if len(args) != 1 {
			return p.errorf(`unsupported syntax for "save"; expected 1 argument; got %d`, len(args))
		}
		p.emit(Save{File: args[0]})
	case "box", "sphere", "torus":
		return p.shape(op, args)
	case "line":
		return p.lineStatement(args)
	case "mesh":
		return p.meshStatement(args)
	case "move", "scale":
		lead, nums, knob, err := splitArgs(args)
		if err != nil {
			return p.errorf("%s", err.Error())
		}
		if lead != "" || len(nums) != 3 {
			return p.errorf(`unsupported syntax for "%s"; expected x y z [knob]`, op)
		}
		if err = p.declareKnob(knob); err != nil {
			return err
		}
		if op == "move" {
			p.emit(Move{Delta: vec3(nums), Knob: knob})
		} else {
			p.emit(Scale{Factor: vec3(nums), Knob: knob})
		}
	case "rotate":
		return p.rotateStatement(args)
	case "save_coord_system":
		if len(args) != 1 {
			return p.errorf(`unsupported syntax for "save_coord_system"; expected 1 argument; got %d`, len(args))
		}
		if err := p.prog.Symbols.DeclareCoordSystem(args[0]); err != nil {
			return p.errorf("%s", err.Error())
		}
		p.emit(SaveCoordSystem{Name: args[0]})
	case "set":
		if len(args) != 2 || !isNumber(args[1]) {
			return p.errorf(`unsupported syntax for "set"; expected knob value`)
		}
		if err := p.declareKnob(args[0]); err != nil {
			return err
		}
		v, _ := strconv.ParseFloat(args[1], 64)
		p.emit(Set{Knob: args[0], Value: v})
	case "setknobs":
		if len(args) != 1 || !isNumber(args[0]) {
			return p.errorf(`unsupported syntax for "setknobs"; expected 1 numeric argument`)
		}
		v, _ := strconv.ParseFloat(args[0], 64)
		p.emit(SetKnobs{Value: v})
	case "save_knobs":
		if len(args) != 1 {
			return p.errorf(`unsupported syntax for "save_knobs"; expected 1 argument; got %d`, len(args))
		}
		p.emit(SaveKnobs{Name: args[0]})
	case "constants":
		return p.constantsStatement(args)
	case "light":
		return p.lightStatement(args)
	case "frames":
		if len(args) != 1 {
			return p.errorf(`unsupported syntax for "frames"; expected 1 argument; got %d`, len(args))
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return p.errorf(`invalid frame count %q`, args[0])
		}
		p.emit(Frames{Count: n})
	case "basename":
		if len(args) != 1 {
			return p.errorf(`unsupported syntax for "basename"; expected 1 argument; got %d`, len(args))
		}
		p.emit(Basename{Name: args[0]})
	case "vary":
		return p.varyStatement(args)
	default:
		return p.errorf("unknown command %q", op)
	}
	return nil
}

func (p *parser) declareKnob(name string) error {
	if name == "" {
		return nil
	}
	if err := p.prog.Symbols.DeclareKnob(name); err != nil {
		return p.errorf("%s", err.Error())
	}
	return nil
}

func (p *parser) shape(op string, args []string) error {
	material, nums, cs, err := splitArgs(args)
	if err != nil {
		return p.errorf("%s", err.Error())
	}
	surface := Surface{Material: material, CoordSystem: cs}

	switch op {
	case "box":
		if len(nums) != 6 {
			return p.errorf(`unsupported syntax for "box"; expected 6 numeric arguments; got %d`, len(nums))
		}
		p.emit(Box{Surface: surface, Corner: vec3(nums), Width: float32(nums[3]), Height: float32(nums[4]), Depth: float32(nums[5])})
	case "sphere":
		if len(nums) != 4 {
			return p.errorf(`unsupported syntax for "sphere"; expected 4 numeric arguments; got %d`, len(nums))
		}
		p.emit(Sphere{Surface: surface, Center: vec3(nums), Radius: float32(nums[3])})
	case "torus":
		if len(nums) != 5 {
			return p.errorf(`unsupported syntax for "torus"; expected 5 numeric arguments; got %d`, len(nums))
		}
		p.emit(Torus{Surface: surface, Center: vec3(nums), R0: float32(nums[3]), R1: float32(nums[4])})
	}
	return nil
}

// line [material] x0 y0 z0 [cs0] x1 y1 z1 [cs1]
//
// Lines are drawn with a fixed color so the material is accepted but not
// used. Only the first coordinate system applies.
func (p *parser) lineStatement(args []string) error {
	var cs string
	nums := make([]float64, 0, 6)
	for idx, tok := range args {
		v, err := strconv.ParseFloat(tok, 64)
		if err == nil {
			nums = append(nums, v)
			continue
		}
		if idx == 0 {
			continue
		}
		if len(nums) == 3 && cs == "" {
			cs = tok
		}
	}
	if len(nums) != 6 {
		return p.errorf(`unsupported syntax for "line"; expected 6 numeric arguments; got %d`, len(nums))
	}
	p.emit(Line{P0: vec3(nums[:3]), P1: vec3(nums[3:]), CoordSystem: cs})
	return nil
}

// mesh [material] :file [cs]
func (p *parser) meshStatement(args []string) error {
	fileIdx := -1
	for idx, tok := range args {
		if strings.HasPrefix(tok, ":") {
			fileIdx = idx
			break
		}
	}

	var cmd Mesh
	switch {
	case fileIdx == -1 && len(args) >= 1 && len(args) <= 2:
		cmd.File = args[0]
		if len(args) == 2 {
			cmd.CoordSystem = args[1]
		}
	case fileIdx == 0 || fileIdx == 1:
		if fileIdx == 1 {
			cmd.Material = args[0]
		}
		cmd.File = strings.TrimPrefix(args[fileIdx], ":")
		rest := args[fileIdx+1:]
		if len(rest) > 1 {
			return p.errorf(`unsupported syntax for "mesh"; unexpected arguments after coordinate system`)
		}
		if len(rest) == 1 {
			cmd.CoordSystem = rest[0]
		}
	default:
		return p.errorf(`unsupported syntax for "mesh"; expected [material] :file [cs]`)
	}

	if cmd.File == "" {
		return p.errorf(`missing file name for "mesh"`)
	}
	p.emit(cmd)
	return nil
}

// rotate x|y|z degrees [knob]
func (p *parser) rotateStatement(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return p.errorf(`unsupported syntax for "rotate"; expected axis degrees [knob]`)
	}

	var axis Axis
	switch strings.ToLower(args[0]) {
	case "x":
		axis = AxisX
	case "y":
		axis = AxisY
	case "z":
		axis = AxisZ
	default:
		return p.errorf(`unknown rotation axis %q`, args[0])
	}

	deg, err := strconv.ParseFloat(args[1], 32)
	if err != nil {
		return p.errorf(`expected rotation angle; got %q`, args[1])
	}

	var knob string
	if len(args) == 3 {
		knob = args[2]
		if err = p.declareKnob(knob); err != nil {
			return err
		}
	}
	p.emit(Rotate{Axis: axis, Degrees: float32(deg), Knob: knob})
	return nil
}

// constants name kar kdr ksr kag kdg ksg kab kdb ksb [r g b]
func (p *parser) constantsStatement(args []string) error {
	name, nums, trail, err := splitArgs(args)
	if err != nil {
		return p.errorf("%s", err.Error())
	}
	if name == "" || trail != "" || (len(nums) != 9 && len(nums) != 12) {
		return p.errorf(`unsupported syntax for "constants"; expected name and 9 coefficients`)
	}

	f := func(i int) float32 { return float32(nums[i]) }
	m := symtab.Material{
		Red:   symtab.Reflectance{Ambient: f(0), Diffuse: f(1), Specular: f(2)},
		Green: symtab.Reflectance{Ambient: f(3), Diffuse: f(4), Specular: f(5)},
		Blue:  symtab.Reflectance{Ambient: f(6), Diffuse: f(7), Specular: f(8)},
	}
	if err = p.prog.Symbols.DefineMaterial(name, m); err != nil {
		return p.errorf("%s", err.Error())
	}
	return nil
}

// light name [x y z r g b]
func (p *parser) lightStatement(args []string) error {
	name, nums, trail, err := splitArgs(args)
	if err != nil {
		return p.errorf("%s", err.Error())
	}
	if name == "" || trail != "" || (len(nums) != 0 && len(nums) != 6) {
		return p.errorf(`unsupported syntax for "light"; expected name [x y z r g b]`)
	}

	if len(nums) == 6 {
		l := symtab.Light{Location: vec3(nums[:3]), Color: vec3(nums[3:])}
		if err = p.prog.Symbols.DefineLight(name, l); err != nil {
			return p.errorf("%s", err.Error())
		}
	}
	p.emit(Light{Name: name})
	return nil
}

// vary knob startFrame endFrame startValue endValue
func (p *parser) varyStatement(args []string) error {
	knob, nums, trail, err := splitArgs(args)
	if err != nil {
		return p.errorf("%s", err.Error())
	}
	if knob == "" || trail != "" || len(nums) != 4 {
		return p.errorf(`unsupported syntax for "vary"; expected knob start_frame end_frame start_value end_value`)
	}
	if nums[0] != math.Trunc(nums[0]) || nums[1] != math.Trunc(nums[1]) {
		return p.errorf(`invalid frame range %v-%v for "vary"; frame indices must be integers`, nums[0], nums[1])
	}

	// Materials are animated by scaling their coefficients.
	if sym, ok := p.prog.Symbols.Lookup(knob); !ok || sym.Kind != symtab.KindMaterial {
		if err = p.declareKnob(knob); err != nil {
			return err
		}
	}
	p.emit(Vary{
		Knob:       knob,
		StartFrame: int(nums[0]),
		EndFrame:   int(nums[1]),
		StartValue: nums[2],
		EndValue:   nums[3],
	})
	return nil
}
