package level

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrBadModel = errors.New("level: malformed h2b model")

const (
	h2bMagic = "H2B\x00"

	// Upper bounds that reject corrupt headers before allocating.
	maxH2BVertices  = 1 << 24
	maxH2BIndices   = 1 << 26
	maxH2BMaterials = 1 << 16
	maxH2BMeshes    = 1 << 16
)

// Batch is an index range drawn with one material. The file stores one per
// material; drawing goes by Mesh instead.
type Batch struct {
	IndexCount  uint32
	IndexOffset uint32
}

// H2B is one decoded model file. Geometry is as stored: left-handed, Y-up.
type H2B struct {
	Version   uint32
	Vertices  []Vertex
	Indices   []uint32
	Materials []Material
	Batches   []Batch
	Meshes    []Mesh
}

type h2bHeader struct {
	Magic         [4]byte
	Version       uint32
	VertexCount   uint32
	IndexCount    uint32
	MaterialCount uint32
	MeshCount     uint32
}

func ParseH2B(r io.Reader) (*H2B, error) {
	br := bufio.NewReader(r)
	var h h2bHeader
	if err := binary.Read(br, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrBadModel, err)
	}
	if string(h.Magic[:]) != h2bMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrBadModel, h.Magic[:])
	}
	switch {
	case h.VertexCount > maxH2BVertices,
		h.IndexCount > maxH2BIndices,
		h.MaterialCount > maxH2BMaterials,
		h.MeshCount > maxH2BMeshes:
		return nil, fmt.Errorf("%w: implausible counts %d/%d/%d/%d", ErrBadModel,
			h.VertexCount, h.IndexCount, h.MaterialCount, h.MeshCount)
	}

	m := &H2B{
		Version:   h.Version,
		Vertices:  make([]Vertex, h.VertexCount),
		Indices:   make([]uint32, h.IndexCount),
		Materials: make([]Material, h.MaterialCount),
		Batches:   make([]Batch, h.MaterialCount),
		Meshes:    make([]Mesh, h.MeshCount),
	}
	if err := binary.Read(br, binary.LittleEndian, m.Vertices); err != nil {
		return nil, fmt.Errorf("%w: vertices: %v", ErrBadModel, err)
	}
	if err := binary.Read(br, binary.LittleEndian, m.Indices); err != nil {
		return nil, fmt.Errorf("%w: indices: %v", ErrBadModel, err)
	}
	for i := range m.Materials {
		if err := readMaterial(br, &m.Materials[i]); err != nil {
			return nil, fmt.Errorf("%w: material %d: %v", ErrBadModel, i, err)
		}
	}
	if err := binary.Read(br, binary.LittleEndian, m.Batches); err != nil {
		return nil, fmt.Errorf("%w: batches: %v", ErrBadModel, err)
	}
	for i := range m.Meshes {
		if err := readMesh(br, &m.Meshes[i]); err != nil {
			return nil, fmt.Errorf("%w: mesh %d: %v", ErrBadModel, i, err)
		}
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func readMaterial(br *bufio.Reader, mat *Material) error {
	if err := binary.Read(br, binary.LittleEndian, &mat.Attributes); err != nil {
		return err
	}
	fields := []*string{
		&mat.Name,
		&mat.Maps.Kd, &mat.Maps.Ks, &mat.Maps.Ka, &mat.Maps.Ke,
		&mat.Maps.Ns, &mat.Maps.D, &mat.Maps.Disp, &mat.Maps.Decal, &mat.Maps.Bump,
	}
	for _, f := range fields {
		s, err := readCString(br)
		if err != nil {
			return err
		}
		*f = s
	}
	return nil
}

func readMesh(br *bufio.Reader, mesh *Mesh) error {
	name, err := readCString(br)
	if err != nil {
		return err
	}
	var v [3]uint32
	if err := binary.Read(br, binary.LittleEndian, &v); err != nil {
		return err
	}
	*mesh = Mesh{Name: name, IndexCount: v[0], IndexOffset: v[1], MaterialIndex: v[2]}
	return nil
}

func readCString(br *bufio.Reader) (string, error) {
	s, err := br.ReadString(0)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return "", err
	}
	return strings.TrimSuffix(s, "\x00"), nil
}

func (m *H2B) validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a triangle list", ErrBadModel, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("%w: index %d refers to vertex %d of %d", ErrBadModel, i, idx, len(m.Vertices))
		}
	}
	for i, mesh := range m.Meshes {
		if uint64(mesh.IndexOffset)+uint64(mesh.IndexCount) > uint64(len(m.Indices)) {
			return fmt.Errorf("%w: mesh %d range exceeds %d indices", ErrBadModel, i, len(m.Indices))
		}
		if int(mesh.MaterialIndex) >= len(m.Materials) {
			return fmt.Errorf("%w: mesh %d uses material %d of %d", ErrBadModel, i, mesh.MaterialIndex, len(m.Materials))
		}
	}
	return nil
}

// ToRightHanded flips the model into the renderer's right-handed frame:
// Z of positions and normals is negated and every triangle's winding reversed.
func (m *H2B) ToRightHanded() {
	for i := range m.Vertices {
		m.Vertices[i].Pos[2] = -m.Vertices[i].Pos[2]
		m.Vertices[i].Normal[2] = -m.Vertices[i].Normal[2]
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		m.Indices[i+1], m.Indices[i+2] = m.Indices[i+2], m.Indices[i+1]
	}
}

// WriteTo encodes m in the H2B layout.
func (m *H2B) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	cw := &countingWriter{w: bw}
	put := func(v any) {
		if cw.err == nil {
			cw.err = binary.Write(cw, binary.LittleEndian, v)
		}
	}
	cstr := func(s string) {
		put([]byte(s))
		put(byte(0))
	}

	put([]byte(h2bMagic))
	put([]uint32{m.Version, uint32(len(m.Vertices)), uint32(len(m.Indices)), uint32(len(m.Materials)), uint32(len(m.Meshes))})
	put(m.Vertices)
	put(m.Indices)
	for _, mat := range m.Materials {
		put(mat.Attributes)
		for _, s := range []string{mat.Name, mat.Maps.Kd, mat.Maps.Ks, mat.Maps.Ka, mat.Maps.Ke,
			mat.Maps.Ns, mat.Maps.D, mat.Maps.Disp, mat.Maps.Decal, mat.Maps.Bump} {
			cstr(s)
		}
	}
	put(m.Batches)
	for _, mesh := range m.Meshes {
		cstr(mesh.Name)
		put([]uint32{mesh.IndexCount, mesh.IndexOffset, mesh.MaterialIndex})
	}
	if cw.err != nil {
		return cw.n, cw.err
	}
	return cw.n, bw.Flush()
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
