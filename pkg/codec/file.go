package codec

import (
	"encoding/binary"
	"errors"
)

// Container format errors.
var (
	ErrInvalidMagic       = errors.New("invalid mesh container magic: expected 'SCMC'")
	ErrUnsupportedVersion = errors.New("unsupported mesh container version")
	ErrTruncatedData      = errors.New("truncated mesh container data")
	ErrCorruptData        = errors.New("corrupt mesh container data")
)

const (
	containerMagic   = "SCMC"
	containerVersion = 1

	maxComponents = 4
)

// Encode serializes a codec mesh to the uncompressed binary container
// format. Layout is little-endian: header, face list, then per attribute its
// descriptor, value buffer, point map, and metadata entries.
func Encode(m *Mesh) []byte {
	size := 4 + 1 + 12 + 12*m.NumFaces()
	for id := 0; id < m.NumAttributes(); id++ {
		a := m.Attribute(id)
		size += 3 + 4 + len(a.buffer) + 4*len(a.pointMap) + 1
		if md := m.AttributeMetadata(id); md != nil {
			for key, value := range md.entries {
				size += 4 + len(key) + len(value)
			}
		}
	}

	out := make([]byte, 0, size)
	out = append(out, containerMagic...)
	out = append(out, containerVersion)
	out = binary.LittleEndian.AppendUint32(out, uint32(m.NumPoints()))
	out = binary.LittleEndian.AppendUint32(out, uint32(m.NumFaces()))
	out = binary.LittleEndian.AppendUint32(out, uint32(m.NumAttributes()))

	for f := 0; f < m.NumFaces(); f++ {
		face := m.Face(f)
		for c := 0; c < 3; c++ {
			out = binary.LittleEndian.AppendUint32(out, uint32(face[c]))
		}
	}

	for id := 0; id < m.NumAttributes(); id++ {
		a := m.Attribute(id)
		out = append(out, byte(a.attributeType), byte(a.dataType), byte(a.numComponents))
		out = binary.LittleEndian.AppendUint32(out, uint32(a.NumValues()))
		out = append(out, a.buffer...)
		for _, entry := range a.pointMap {
			out = binary.LittleEndian.AppendUint32(out, uint32(entry))
		}
		md := m.AttributeMetadata(id)
		if md == nil {
			out = append(out, 0)
			continue
		}
		out = append(out, byte(md.NumEntries()))
		for key, value := range md.entries {
			out = binary.LittleEndian.AppendUint16(out, uint16(len(key)))
			out = append(out, key...)
			out = binary.LittleEndian.AppendUint16(out, uint16(len(value)))
			out = append(out, value...)
		}
	}

	return out
}

// Decode parses a codec mesh from container bytes.
func Decode(data []byte) (*Mesh, error) {
	cur := &cursor{data: data}

	magic, err := cur.bytes(4)
	if err != nil {
		return nil, err
	}
	if string(magic) != containerMagic {
		return nil, ErrInvalidMagic
	}
	version, err := cur.byte()
	if err != nil {
		return nil, err
	}
	if version != containerVersion {
		return nil, ErrUnsupportedVersion
	}

	numPoints, err := cur.uint32()
	if err != nil {
		return nil, err
	}
	numFaces, err := cur.uint32()
	if err != nil {
		return nil, err
	}
	numAttributes, err := cur.uint32()
	if err != nil {
		return nil, err
	}

	m := NewMesh()
	m.SetNumPoints(int(numPoints))
	m.SetNumFaces(int(numFaces))
	for f := 0; f < int(numFaces); f++ {
		var face Face
		for c := 0; c < 3; c++ {
			p, err := cur.uint32()
			if err != nil {
				return nil, err
			}
			if p >= numPoints {
				return nil, ErrCorruptData
			}
			face[c] = int(p)
		}
		m.SetFace(f, face)
	}

	for i := 0; i < int(numAttributes); i++ {
		if err := decodeAttribute(m, cur, int(numPoints)); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func decodeAttribute(m *Mesh, cur *cursor, numPoints int) error {
	attrType, err := cur.byte()
	if err != nil {
		return err
	}
	dataType, err := cur.byte()
	if err != nil {
		return err
	}
	numComponents, err := cur.byte()
	if err != nil {
		return err
	}
	if AttributeType(attrType) > AttributeGeneric ||
		DataType(dataType).Size() == 0 ||
		numComponents == 0 || numComponents > maxComponents {
		return ErrCorruptData
	}

	numValues, err := cur.uint32()
	if err != nil {
		return err
	}
	byteStride := int(numComponents) * DataType(dataType).Size()
	buffer, err := cur.bytes(int(numValues) * byteStride)
	if err != nil {
		return err
	}

	a := NewPointAttribute(AttributeType(attrType), int(numComponents), DataType(dataType), byteStride)
	id := m.AddAttribute(a, int(numValues))
	copy(a.buffer, buffer)

	for p := 0; p < numPoints; p++ {
		entry, err := cur.uint32()
		if err != nil {
			return err
		}
		if numValues > 0 && entry >= numValues {
			return ErrCorruptData
		}
		a.pointMap[p] = int32(entry)
	}

	numMeta, err := cur.byte()
	if err != nil {
		return err
	}
	if numMeta == 0 {
		return nil
	}
	md := NewAttributeMetadata()
	for e := 0; e < int(numMeta); e++ {
		key, err := cur.shortString()
		if err != nil {
			return err
		}
		value, err := cur.shortString()
		if err != nil {
			return err
		}
		md.AddEntryString(key, value)
	}
	m.AddAttributeMetadata(id, md)
	return nil
}

// cursor is a bounds-checked reader over container bytes.
type cursor struct {
	data []byte
	off  int
}

func (c *cursor) bytes(n int) ([]byte, error) {
	if c.off+n > len(c.data) {
		return nil, ErrTruncatedData
	}
	b := c.data[c.off : c.off+n]
	c.off += n
	return b, nil
}

func (c *cursor) byte() (byte, error) {
	b, err := c.bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) uint32() (uint32, error) {
	b, err := c.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) uint16() (uint16, error) {
	b, err := c.bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) shortString() (string, error) {
	n, err := c.uint16()
	if err != nil {
		return "", err
	}
	b, err := c.bytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
