package level

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrBadMatrix = errors.New("level: malformed matrix")

// Entry kinds found in a level file.
const (
	KindMesh   = "MESH"
	KindCamera = "CAMERA"
	KindLight  = "LIGHT"
)

// Entry is one block of a level file. Matrix is already in the renderer's
// right-handed Y-up frame.
type Entry struct {
	Kind   string
	Name   string
	Matrix mgl32.Mat4
	Line   int
}

type lineReader struct {
	sc   *bufio.Scanner
	line int
}

// next returns the next non-blank line, trimmed.
func (lr *lineReader) next() (string, bool) {
	for lr.sc.Scan() {
		lr.line++
		s := strings.TrimSpace(lr.sc.Text())
		if s != "" {
			return s, true
		}
	}
	return "", false
}

// ParseLevelFile reads MESH, CAMERA and LIGHT blocks. Lines that do not start
// a known block are passed to warnf, which may be nil.
func ParseLevelFile(r io.Reader, warnf func(format string, args ...any)) ([]Entry, error) {
	lr := &lineReader{sc: bufio.NewScanner(r)}
	var entries []Entry
	for {
		kind, ok := lr.next()
		if !ok {
			break
		}
		switch kind {
		case KindMesh, KindCamera, KindLight:
		default:
			if warnf != nil {
				warnf("line %d: skipping unknown entry %q", lr.line, kind)
			}
			continue
		}
		start := lr.line
		name, ok := lr.next()
		if !ok {
			return nil, fmt.Errorf("line %d: %s without a name", start, kind)
		}
		var rows [4]mgl32.Vec4
		for i := range rows {
			s, ok := lr.next()
			if !ok {
				return nil, fmt.Errorf("line %d: %w: %s %q ends after %d rows", lr.line, ErrBadMatrix, kind, name, i)
			}
			row, err := parseMatrixRow(s, i == 0, i == 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lr.line, err)
			}
			rows[i] = row
		}
		entries = append(entries, Entry{
			Kind:   kind,
			Name:   name,
			Matrix: ConvertBlenderMatrix(rows),
			Line:   start,
		})
	}
	if err := lr.sc.Err(); err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return entries, nil
}

// parseMatrixRow parses "(a, b, c, d)", with the "<Matrix 4x4" prefix on the
// first row and the closing ">" on the last.
func parseMatrixRow(s string, first, last bool) (mgl32.Vec4, error) {
	var row mgl32.Vec4
	if first {
		rest, ok := strings.CutPrefix(s, "<Matrix 4x4")
		if !ok {
			return row, fmt.Errorf("%w: missing <Matrix 4x4 header in %q", ErrBadMatrix, s)
		}
		s = strings.TrimSpace(rest)
	}
	if last {
		rest, ok := strings.CutSuffix(s, ">")
		if !ok {
			return row, fmt.Errorf("%w: missing closing > in %q", ErrBadMatrix, s)
		}
		s = strings.TrimSpace(rest)
	}
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return row, fmt.Errorf("%w: row %q is not parenthesised", ErrBadMatrix, s)
	}
	fields := strings.Split(s[1:len(s)-1], ",")
	if len(fields) != 4 {
		return row, fmt.Errorf("%w: row %q has %d values", ErrBadMatrix, s, len(fields))
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
		if err != nil {
			return row, fmt.Errorf("%w: %v", ErrBadMatrix, err)
		}
		row[i] = float32(v)
	}
	return row, nil
}

// zUpToYUp maps Blender axes (x, y, z) to (x, z, -y).
var zUpToYUp = mgl32.Mat4FromRows(
	mgl32.Vec4{1, 0, 0, 0},
	mgl32.Vec4{0, 0, 1, 0},
	mgl32.Vec4{0, -1, 0, 0},
	mgl32.Vec4{0, 0, 0, 1},
)

// ConvertBlenderMatrix turns Blender matrix_world rows (Z-up, translation in
// the last column) into a Y-up column-major matrix.
func ConvertBlenderMatrix(rows [4]mgl32.Vec4) mgl32.Mat4 {
	m := mgl32.Mat4FromRows(rows[0], rows[1], rows[2], rows[3])
	return zUpToYUp.Mul4(m).Mul4(zUpToYUp.Transpose())
}
