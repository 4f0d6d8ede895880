package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// ErrFormat is wrapped by every error caused by malformed mesh data
var ErrFormat = errors.New("malformed mesh file")

// Mesh is the triangle soup read from a mesh file
type Mesh struct {
	Vertices  []core.Vec3
	Triangles [][3]int
}

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format      string // "ascii", "binary_little_endian" or "binary_big_endian"
	VertexCount int
	FaceCount   int
	VertexProps []PLYProperty
	FaceProps   []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// LoadPLY loads a mesh from a kcply or PLY file
func LoadPLY(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	mesh, err := ParsePLY(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return mesh, nil
}

// ParsePLY reads a mesh. Two layouts are accepted: the short "kcply" text
// format (two element lines, then "x y z" vertices and "3 i j k" faces) and
// standard PLY in ascii or binary encoding. Polygons are fanned into triangles.
func ParsePLY(r io.Reader) (*Mesh, error) {
	reader := bufio.NewReader(r)

	magic, err := readLine(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: missing magic line", ErrFormat)
	}

	var header *PLYHeader
	switch magic {
	case "kcply":
		header, err = parseKCHeader(reader)
	case "ply":
		header, err = parsePLYHeader(reader)
	default:
		return nil, fmt.Errorf("%w: unknown magic %q", ErrFormat, magic)
	}
	if err != nil {
		return nil, err
	}

	var mesh *Mesh
	switch header.Format {
	case "ascii":
		mesh, err = readASCII(reader, header)
	case "binary_little_endian":
		mesh, err = readBinary(reader, header, binary.LittleEndian)
	case "binary_big_endian":
		mesh, err = readBinary(reader, header, binary.BigEndian)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrFormat, header.Format)
	}
	if err != nil {
		return nil, err
	}

	for i, tri := range mesh.Triangles {
		for _, index := range tri {
			if index < 0 || index >= len(mesh.Vertices) {
				return nil, fmt.Errorf("%w: face %d uses vertex %d of %d", ErrFormat, i, index, len(mesh.Vertices))
			}
		}
	}
	return mesh, nil
}

// readLine returns the next line without surrounding whitespace
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// parseKCHeader reads the two element lines of a kcply file
func parseKCHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{
		Format:      "ascii",
		VertexProps: []PLYProperty{{Name: "x", Type: "float"}, {Name: "y", Type: "float"}, {Name: "z", Type: "float"}},
		FaceProps:   []PLYProperty{{Name: "vertex_indices", IsList: true, ListType: "uchar", DataType: "int"}},
	}

	for _, want := range []string{"vertex", "face"} {
		line, err := readLine(reader)
		if err != nil {
			return nil, fmt.Errorf("%w: missing element %s line", ErrFormat, want)
		}
		parts := strings.Fields(line)
		if len(parts) != 3 || parts[0] != "element" || parts[1] != want {
			return nil, fmt.Errorf("%w: expected \"element %s N\", got %q", ErrFormat, want, line)
		}
		count, err := strconv.Atoi(parts[2])
		if err != nil || count < 0 {
			return nil, fmt.Errorf("%w: invalid element count %q", ErrFormat, parts[2])
		}
		if want == "vertex" {
			header.VertexCount = count
		} else {
			header.FaceCount = count
		}
	}
	return header, nil
}

// parsePLYHeader parses a standard PLY header up to end_header
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	var currentElement string

	for {
		line, err := readLine(reader)
		if err != nil {
			return nil, fmt.Errorf("%w: header has no end_header", ErrFormat)
		}
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 2 {
				return nil, fmt.Errorf("%w: invalid format line %q", ErrFormat, line)
			}
			header.Format = parts[1]
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: invalid element line %q", ErrFormat, line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: invalid element count %q", ErrFormat, parts[2])
			}
			currentElement = parts[1]
			switch currentElement {
			case "vertex":
				header.VertexCount = count
			case "face":
				header.FaceCount = count
			default:
				if count > 0 {
					return nil, fmt.Errorf("%w: unsupported element %q", ErrFormat, currentElement)
				}
			}
		case "property":
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			switch currentElement {
			case "vertex":
				header.VertexProps = append(header.VertexProps, prop)
			case "face":
				header.FaceProps = append(header.FaceProps, prop)
			}
		default:
			return nil, fmt.Errorf("%w: unexpected header line %q", ErrFormat, line)
		}
	}

	if header.VertexCount > 0 && (propertyIndex(header.VertexProps, "x") < 0 ||
		propertyIndex(header.VertexProps, "y") < 0 || propertyIndex(header.VertexProps, "z") < 0) {
		return nil, fmt.Errorf("%w: vertices have no x, y, z properties", ErrFormat)
	}
	return header, nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) >= 4 && parts[0] == "list" {
		return PLYProperty{IsList: true, ListType: parts[1], DataType: parts[2], Name: parts[3]}, nil
	}
	if len(parts) == 2 && parts[0] != "list" {
		return PLYProperty{Type: parts[0], Name: parts[1]}, nil
	}
	return PLYProperty{}, fmt.Errorf("%w: invalid property definition %q", ErrFormat, strings.Join(parts, " "))
}

func propertyIndex(props []PLYProperty, name string) int {
	for i, p := range props {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func isFaceIndexList(p PLYProperty) bool {
	return p.IsList && (p.Name == "vertex_indices" || p.Name == "vertex_index")
}

// fan splits a polygon into triangles sharing its first vertex
func fan(indices []int) ([][3]int, error) {
	if len(indices) < 3 {
		return nil, fmt.Errorf("%w: face with %d vertices", ErrFormat, len(indices))
	}
	triangles := make([][3]int, 0, len(indices)-2)
	for i := 1; i+1 < len(indices); i++ {
		triangles = append(triangles, [3]int{indices[0], indices[i], indices[i+1]})
	}
	return triangles, nil
}

// readASCII reads whitespace separated vertex and face lines
func readASCII(reader *bufio.Reader, header *PLYHeader) (*Mesh, error) {
	mesh := &Mesh{
		Vertices:  make([]core.Vec3, 0, header.VertexCount),
		Triangles: make([][3]int, 0, header.FaceCount),
	}
	xi, yi, zi := propertyIndex(header.VertexProps, "x"), propertyIndex(header.VertexProps, "y"), propertyIndex(header.VertexProps, "z")

	for i := 0; i < header.VertexCount; i++ {
		line, err := readLine(reader)
		if err != nil {
			return nil, fmt.Errorf("%w: file ends at vertex %d of %d", ErrFormat, i, header.VertexCount)
		}
		fields := strings.Fields(line)
		if len(fields) < len(header.VertexProps) {
			return nil, fmt.Errorf("%w: vertex %d has %d values", ErrFormat, i, len(fields))
		}
		var coords [3]float64
		for c, index := range [3]int{xi, yi, zi} {
			v, err := strconv.ParseFloat(fields[index], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: vertex %d: %v", ErrFormat, i, err)
			}
			coords[c] = v
		}
		mesh.Vertices = append(mesh.Vertices, core.NewVec3(coords[0], coords[1], coords[2]))
	}

	for i := 0; i < header.FaceCount; i++ {
		line, err := readLine(reader)
		if err != nil {
			return nil, fmt.Errorf("%w: file ends at face %d of %d", ErrFormat, i, header.FaceCount)
		}
		fields := strings.Fields(line)

		pos := 0
		for _, prop := range header.FaceProps {
			if !prop.IsList {
				pos++
				continue
			}
			if pos >= len(fields) {
				return nil, fmt.Errorf("%w: face %d is truncated", ErrFormat, i)
			}
			n, err := strconv.Atoi(fields[pos])
			if err != nil || n < 0 || pos+1+n > len(fields) {
				return nil, fmt.Errorf("%w: face %d has a bad vertex count", ErrFormat, i)
			}
			if isFaceIndexList(prop) {
				indices := make([]int, n)
				for k := range indices {
					if indices[k], err = strconv.Atoi(fields[pos+1+k]); err != nil {
						return nil, fmt.Errorf("%w: face %d: %v", ErrFormat, i, err)
					}
				}
				triangles, err := fan(indices)
				if err != nil {
					return nil, err
				}
				mesh.Triangles = append(mesh.Triangles, triangles...)
			}
			pos += 1 + n
		}
	}
	return mesh, nil
}

// readBinary reads packed vertex and face records in the given byte order
func readBinary(reader *bufio.Reader, header *PLYHeader, order binary.ByteOrder) (*Mesh, error) {
	mesh := &Mesh{
		Vertices:  make([]core.Vec3, 0, header.VertexCount),
		Triangles: make([][3]int, 0, header.FaceCount),
	}
	values := make([]float64, len(header.VertexProps))
	xi, yi, zi := propertyIndex(header.VertexProps, "x"), propertyIndex(header.VertexProps, "y"), propertyIndex(header.VertexProps, "z")

	for i := 0; i < header.VertexCount; i++ {
		for p, prop := range header.VertexProps {
			if prop.IsList {
				if _, err := readBinaryList(reader, order, prop); err != nil {
					return nil, fmt.Errorf("%w: vertex %d: %v", ErrFormat, i, err)
				}
				continue
			}
			v, err := readScalar(reader, order, prop.Type)
			if err != nil {
				return nil, fmt.Errorf("%w: vertex %d: %v", ErrFormat, i, err)
			}
			values[p] = v
		}
		mesh.Vertices = append(mesh.Vertices, core.NewVec3(values[xi], values[yi], values[zi]))
	}

	for i := 0; i < header.FaceCount; i++ {
		for _, prop := range header.FaceProps {
			if !prop.IsList {
				if _, err := readScalar(reader, order, prop.Type); err != nil {
					return nil, fmt.Errorf("%w: face %d: %v", ErrFormat, i, err)
				}
				continue
			}
			indices, err := readBinaryList(reader, order, prop)
			if err != nil {
				return nil, fmt.Errorf("%w: face %d: %v", ErrFormat, i, err)
			}
			if isFaceIndexList(prop) {
				triangles, err := fan(indices)
				if err != nil {
					return nil, err
				}
				mesh.Triangles = append(mesh.Triangles, triangles...)
			}
		}
	}
	return mesh, nil
}

func readBinaryList(reader *bufio.Reader, order binary.ByteOrder, prop PLYProperty) ([]int, error) {
	count, err := readScalar(reader, order, prop.ListType)
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("negative list length %v", count)
	}
	list := make([]int, int(count))
	for k := range list {
		v, err := readScalar(reader, order, prop.DataType)
		if err != nil {
			return nil, err
		}
		list[k] = int(v)
	}
	return list, nil
}

// readScalar reads one value of a PLY scalar type as float64
func readScalar(reader io.Reader, order binary.ByteOrder, typ string) (float64, error) {
	var buf [8]byte
	size := scalarSize(typ)
	if size == 0 {
		return 0, fmt.Errorf("unsupported property type %q", typ)
	}
	if _, err := io.ReadFull(reader, buf[:size]); err != nil {
		return 0, err
	}

	switch typ {
	case "char", "int8":
		return float64(int8(buf[0])), nil
	case "uchar", "uint8":
		return float64(buf[0]), nil
	case "short", "int16":
		return float64(int16(order.Uint16(buf[:2]))), nil
	case "ushort", "uint16":
		return float64(order.Uint16(buf[:2])), nil
	case "int", "int32":
		return float64(int32(order.Uint32(buf[:4]))), nil
	case "uint", "uint32":
		return float64(order.Uint32(buf[:4])), nil
	case "float", "float32":
		return float64(math.Float32frombits(order.Uint32(buf[:4]))), nil
	default:
		return math.Float64frombits(order.Uint64(buf[:8])), nil
	}
}

func scalarSize(typ string) int {
	switch typ {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	}
	return 0
}
