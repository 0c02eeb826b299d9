package scenefile

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/kjalden/sdftrace/internal/color"
	"github.com/kjalden/sdftrace/internal/geom"
	"github.com/kjalden/sdftrace/internal/scene"
	"github.com/kjalden/sdftrace/internal/sdf"
	"github.com/kjalden/sdftrace/internal/view"
)

// DefaultFarPlane is used for every scene parsed from a file; the
// format has no command to override it.
const DefaultFarPlane = 1000.0

// ParseError is one line's worth of malformed input. Parse collects
// every line's error and keeps going, rather than failing the whole
// file on the first bad line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

type parseState struct {
	objects  []sdf.SDF
	lights   []scene.Light
	material color.Material
	view     view.Transform
	inBegin  bool
	beginAt  int
	vertices []geom.Vec3
	errors   []*ParseError
}

// Parse reads a scene description and returns the assembled Scene plus
// any per-line errors encountered; a non-empty error slice does not
// mean Scene is nil; Scene is built from every line that did parse.
func Parse(input string) (*scene.Scene, []*ParseError) {
	st := &parseState{
		material: color.Default(),
		view:     view.Ortho{Frame: geom.Identity()},
	}

	for _, line := range splitLines(input) {
		if len(line) == 0 {
			continue
		}
		st.dispatch(line)
	}
	if st.inBegin {
		st.errf(st.beginAt, "unterminated begin/end block")
	}

	return &scene.Scene{
		SDF:      foldUnion(st.objects),
		Lights:   st.lights,
		View:     st.view,
		FarPlane: DefaultFarPlane,
	}, st.errors
}

func foldUnion(objects []sdf.SDF) sdf.SDF {
	if len(objects) == 0 {
		return sdf.Empty{}
	}
	result := objects[0]
	for _, obj := range objects[1:] {
		result = &sdf.Union{A: result, B: obj}
	}
	return result
}

func (st *parseState) errf(line int, format string, args ...any) {
	st.errors = append(st.errors, &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)})
}

func (st *parseState) dispatch(line []Token) {
	cmd := line[0]
	args := line[1:]

	switch cmd.Literal {
	case "fov":
		nums, ok := st.floats(cmd.Line, args, 1)
		if !ok {
			return
		}
		st.view = view.Perspective{
			EyeFrame:   geom.Frame{Origin: geom.Zero(), I: geom.Right(), J: geom.Up(), K: geom.Backward()},
			Near:       1,
			FovDegrees: nums[0],
		}
	case "light":
		nums, ok := st.floats(cmd.Line, args, 6)
		if !ok {
			return
		}
		pos := geom.Vec3{X: nums[0], Y: nums[1], Z: nums[2]}
		st.lights = append(st.lights, scene.NewLight(pos, color.New(nums[3], nums[4], nums[5])))
	case "surface":
		nums, ok := st.floats(cmd.Line, args, 11)
		if !ok {
			return
		}
		st.material = color.Material{
			Diffuse:           color.New(nums[0], nums[1], nums[2]),
			Ambient:           color.New(nums[3], nums[4], nums[5]),
			Specular:          color.New(nums[6], nums[7], nums[8]),
			Phong:             nums[9],
			Reflectivity:      nums[10],
			Opacity:           1,
			IndexOfRefraction: 1,
		}
	case "sphere":
		nums, ok := st.floats(cmd.Line, args, 4)
		if !ok {
			return
		}
		center := geom.Vec3{X: nums[1], Y: nums[2], Z: nums[3]}
		shape := &sdf.Translate{
			SDF: &sdf.Shaded{SDF: &sdf.Sphere{Radius: nums[0]}, Mat: st.material},
			T:   center,
		}
		st.objects = append(st.objects, shape)
	case "background":
		nums, ok := st.floats(cmd.Line, args, 3)
		if !ok {
			return
		}
		mat := color.Material{
			Ambient:           color.New(nums[0], nums[1], nums[2]),
			Diffuse:           color.Black(),
			Specular:          color.Black(),
			Phong:             1,
			Reflectivity:      0,
			Opacity:           1,
			IndexOfRefraction: 1,
		}
		shape := &sdf.Negation{SDF: &sdf.Shaded{SDF: &sdf.Sphere{Radius: 100}, Mat: mat}}
		st.objects = append(st.objects, shape)
	case "begin":
		if st.inBegin {
			st.errf(cmd.Line, "nested begin")
			return
		}
		st.inBegin = true
		st.beginAt = cmd.Line
		st.vertices = nil
	case "vertex":
		if !st.inBegin {
			st.errf(cmd.Line, "vertex outside begin/end")
			return
		}
		nums, ok := st.floats(cmd.Line, args, 3)
		if !ok {
			return
		}
		st.vertices = append(st.vertices, geom.Vec3{X: nums[0], Y: nums[1], Z: nums[2]})
	case "end":
		if !st.inBegin {
			st.errf(cmd.Line, "end without begin")
			return
		}
		st.inBegin = false
		face := sdf.NewPolyFace(st.vertices)
		st.objects = append(st.objects, &sdf.Shaded{SDF: face, Mat: st.material})
	case "write":
		// Host-side concern; the core ignores the destination path.
	default:
		slog.Warn("unknown scene command", "cmd", cmd.Literal, "line", cmd.Line)
	}
}

// floats requires exactly n numeric tokens in args, recording a
// ParseError (and returning ok=false) otherwise.
func (st *parseState) floats(line int, args []Token, n int) ([]float64, bool) {
	if len(args) != n {
		st.errf(line, "expected %d argument(s), got %d", n, len(args))
		return nil, false
	}
	out := make([]float64, n)
	for i, tok := range args {
		if tok.Type != TokenNumber {
			st.errf(line, "expected number, got %q", tok.Literal)
			return nil, false
		}
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			st.errf(line, "invalid number %q: %v", tok.Literal, err)
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// splitLines tokenizes the whole input and groups tokens into lines,
// dropping blank lines. Comments and surrounding whitespace are already
// stripped by the lexer.
func splitLines(input string) [][]Token {
	lexer := NewLexer(input)
	var lines [][]Token
	var current []Token
	for {
		tok := lexer.NextToken()
		if tok.Type == TokenEOF {
			if len(current) > 0 {
				lines = append(lines, current)
			}
			return lines
		}
		if tok.Type == TokenNewline {
			if len(current) > 0 {
				lines = append(lines, current)
			}
			current = nil
			continue
		}
		current = append(current, tok)
	}
}

