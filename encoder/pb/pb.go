// Package pb encodes maze layouts in protobuf wire format.
//
// Wire schema:
//
//	message Opening { uint32 row = 1; uint32 col = 2; uint32 direction = 3; }
//	message Maze {
//	  uint32 rows = 1;
//	  uint32 cols = 2;
//	  int64 seed = 3;
//	  string algorithm = 4;
//	  repeated uint32 cells = 5 [packed = true]; // row-major wall bitmask
//	  Opening entrance = 6;
//	  Opening exit = 7;
//	}
package pb

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-walker/maze"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	fieldRows      protowire.Number = 1
	fieldCols      protowire.Number = 2
	fieldSeed      protowire.Number = 3
	fieldAlgorithm protowire.Number = 4
	fieldCells     protowire.Number = 5
	fieldEntrance  protowire.Number = 6
	fieldExit      protowire.Number = 7

	fieldOpeningRow       protowire.Number = 1
	fieldOpeningCol       protowire.Number = 2
	fieldOpeningDirection protowire.Number = 3
)

// Wall bits of a packed cell.
const (
	northBit = 1 << iota
	southBit
	eastBit
	westBit
)

var (
	errInvalidProtobufMessage = errors.New("invalid protobuf message")
	errCellCountMismatch      = errors.New("cell count does not match dimensions")
)

// Protobuf encodes and decodes mazes.
type Protobuf struct{}

// MarshalMaze encodes a maze layout.
func (p *Protobuf) MarshalMaze(m *maze.Maze) ([]byte, error) {
	var b []byte
	b = protowire.AppendTag(b, fieldRows, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Rows()))
	b = protowire.AppendTag(b, fieldCols, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Cols()))
	b = protowire.AppendTag(b, fieldSeed, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Seed()))
	b = protowire.AppendTag(b, fieldAlgorithm, protowire.BytesType)
	b = protowire.AppendString(b, string(m.Algorithm()))

	var cells []byte
	for row := 0; row < m.Rows(); row++ {
		for col := 0; col < m.Cols(); col++ {
			c, err := m.CellAt(row, col)
			if err != nil {
				return nil, err
			}
			cells = protowire.AppendVarint(cells, cellBits(c))
		}
	}
	b = protowire.AppendTag(b, fieldCells, protowire.BytesType)
	b = protowire.AppendBytes(b, cells)

	if o, ok := m.Entrance(); ok {
		b = protowire.AppendTag(b, fieldEntrance, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalOpening(o))
	}
	if o, ok := m.Exit(); ok {
		b = protowire.AppendTag(b, fieldExit, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalOpening(o))
	}
	return b, nil
}

// UnmarshalMaze decodes a maze layout and checks its invariants.
func (p *Protobuf) UnmarshalMaze(b []byte) (*maze.Maze, error) {
	var (
		rows, cols int
		seed       int64
		algorithm  maze.Algorithm
		cells      []maze.Cell
		openings   []maze.Opening
		opts       []maze.Option
	)

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", errInvalidProtobufMessage, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldRows && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", errInvalidProtobufMessage, protowire.ParseError(n))
			}
			rows, b = int(v), b[n:]
		case num == fieldCols && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", errInvalidProtobufMessage, protowire.ParseError(n))
			}
			cols, b = int(v), b[n:]
		case num == fieldSeed && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", errInvalidProtobufMessage, protowire.ParseError(n))
			}
			seed, b = int64(v), b[n:]
		case num == fieldAlgorithm && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", errInvalidProtobufMessage, protowire.ParseError(n))
			}
			algorithm, b = maze.Algorithm(v), b[n:]
		case num == fieldCells && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", errInvalidProtobufMessage, protowire.ParseError(n))
			}
			decoded, err := unmarshalCells(v)
			if err != nil {
				return nil, err
			}
			cells, b = append(cells, decoded...), b[n:]
		case (num == fieldEntrance || num == fieldExit) && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", errInvalidProtobufMessage, protowire.ParseError(n))
			}
			o, err := unmarshalOpening(v)
			if err != nil {
				return nil, err
			}
			if num == fieldEntrance {
				opts = append(opts, maze.WithEntrance(o.Pos, o.Direction))
			} else {
				opts = append(opts, maze.WithExit(o.Pos, o.Direction))
			}
			openings, b = append(openings, o), b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", errInvalidProtobufMessage, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	// Bound each side first; rows*cols can overflow.
	if rows > 0 && cols > 0 && (rows > len(cells) || cols > len(cells) || len(cells) != rows*cols) {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", errCellCountMismatch, len(cells), rows, cols)
	}
	grid, err := maze.NewGrid(rows, cols)
	if err != nil {
		return nil, err
	}

	for _, o := range openings {
		if err := grid.OpenBoundary(o.Pos, o.Direction); err != nil {
			return nil, err
		}
	}
	for i, c := range cells {
		if err := grid.Set(i/cols, i%cols, c); err != nil {
			return nil, err
		}
	}

	if algorithm != "" {
		opts = append(opts, maze.WithAlgorithm(algorithm))
	}
	return maze.FromGrid(grid, seed, opts...)
}

func cellBits(c maze.Cell) uint64 {
	var bits uint64
	if c.NorthWall {
		bits |= northBit
	}
	if c.SouthWall {
		bits |= southBit
	}
	if c.EastWall {
		bits |= eastBit
	}
	if c.WestWall {
		bits |= westBit
	}
	return bits
}

func unmarshalCells(b []byte) ([]maze.Cell, error) {
	var cells []maze.Cell
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", errInvalidProtobufMessage, protowire.ParseError(n))
		}
		cells = append(cells, maze.Cell{
			NorthWall: v&northBit != 0,
			SouthWall: v&southBit != 0,
			EastWall:  v&eastBit != 0,
			WestWall:  v&westBit != 0,
		})
		b = b[n:]
	}
	return cells, nil
}

func marshalOpening(o maze.Opening) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldOpeningRow, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(o.Pos.Row))
	b = protowire.AppendTag(b, fieldOpeningCol, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(o.Pos.Col))
	b = protowire.AppendTag(b, fieldOpeningDirection, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(o.Direction))
	return b
}

func unmarshalOpening(b []byte) (maze.Opening, error) {
	var o maze.Opening
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return o, fmt.Errorf("%w: %v", errInvalidProtobufMessage, protowire.ParseError(n))
		}
		b = b[n:]

		if typ != protowire.VarintType {
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return o, fmt.Errorf("%w: %v", errInvalidProtobufMessage, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}

		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return o, fmt.Errorf("%w: %v", errInvalidProtobufMessage, protowire.ParseError(n))
		}
		b = b[n:]

		switch num {
		case fieldOpeningRow:
			o.Pos.Row = int(v)
		case fieldOpeningCol:
			o.Pos.Col = int(v)
		case fieldOpeningDirection:
			if v > uint64(maze.West) {
				return o, fmt.Errorf("%w: direction %d", errInvalidProtobufMessage, v)
			}
			o.Direction = maze.Direction(v)
		}
	}
	return o, nil
}
