package navgrid

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrCorruptRLE is returned when decoded runs do not exactly cover the grid.
var ErrCorruptRLE = errors.New("navgrid: corrupt run-length data")

// EncodeMsgpack writes the width, the height and then (count, value) runs of
// equal consecutive cells in row-major order.
func (g *Grid[T]) EncodeMsgpack(encoder *msgpack.Encoder) error {
	if err := encoder.EncodeUint16(g.W); err != nil {
		return err
	}
	if err := encoder.EncodeUint16(g.H); err != nil {
		return err
	}
	if len(g.data) == 0 {
		return nil
	}

	runValue := g.data[0]
	runCount := uint32(0)
	for _, value := range g.data {
		if value == runValue {
			runCount++
			continue
		}
		if err := encodeRun(encoder, runCount, runValue); err != nil {
			return err
		}
		runValue = value
		runCount = 1
	}
	return encodeRun(encoder, runCount, runValue)
}

func encodeRun[T any](encoder *msgpack.Encoder, count uint32, value T) error {
	if err := encoder.EncodeUint32(count); err != nil {
		return err
	}
	return encoder.Encode(value)
}

// DecodeMsgpack replaces the grid with the encoded one.
func (g *Grid[T]) DecodeMsgpack(decoder *msgpack.Decoder) error {
	width, err := decoder.DecodeUint16()
	if err != nil {
		return err
	}
	height, err := decoder.DecodeUint16()
	if err != nil {
		return err
	}
	g.Resize(width, height)

	total := len(g.data)
	for filled := 0; filled < total; {
		count, err := decoder.DecodeUint32()
		if err != nil {
			return err
		}
		if count == 0 || int(count) > total-filled {
			return fmt.Errorf("run of %d at cell %d of %d: %w", count, filled, total, ErrCorruptRLE)
		}
		var value T
		if err := decoder.Decode(&value); err != nil {
			return err
		}
		for index := filled; index < filled+int(count); index++ {
			g.data[index] = value
		}
		filled += int(count)
	}
	return nil
}

// Marshal encodes the grid with its run-length msgpack encoding.
func Marshal[T comparable](g *Grid[T]) ([]byte, error) {
	return msgpack.Marshal(g)
}

// Unmarshal decodes a grid produced by Marshal.
func Unmarshal[T comparable](data []byte) (*Grid[T], error) {
	grid := &Grid[T]{}
	if err := msgpack.Unmarshal(data, grid); err != nil {
		return nil, fmt.Errorf("decode grid: %w", err)
	}
	return grid, nil
}
