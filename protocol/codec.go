package protocol

import (
	"errors"
	"fmt"
	"math"

	"example.com/arena/geom"
	"example.com/arena/world"

	"google.golang.org/protobuf/encoding/protowire"
)

var (
	ErrUnknownMessage = errors.New("unknown message")
	ErrMalformed      = errors.New("malformed message")
)

// Payload field numbers.
const (
	fieldWeapon    protowire.Number = 1
	fieldObstacles protowire.Number = 2

	fieldX  protowire.Number = 1
	fieldY  protowire.Number = 2
	fieldHP protowire.Number = 3

	fieldAngle protowire.Number = 1

	fieldAmount    protowire.Number = 1
	fieldHitWeapon protowire.Number = 2

	fieldRectX protowire.Number = 1
	fieldRectY protowire.Number = 2
	fieldRectW protowire.Number = 3
	fieldRectH protowire.Number = 4
)

// Encode wraps msg in an envelope holding a single length-delimited field
// numbered by the message tag.
func Encode(msg Message) ([]byte, error) {
	var payload []byte
	switch m := msg.(type) {
	case Ready:
		payload = appendWeaponObstacles(nil, m.Weapon, m.Obstacles)
	case Rematch:
		payload = appendWeaponObstacles(nil, m.Weapon, m.Obstacles)
	case RematchAccept:
		payload = appendWeaponObstacles(nil, m.Weapon, m.Obstacles)
	case Pos:
		payload = appendDouble(payload, fieldX, m.X)
		payload = appendDouble(payload, fieldY, m.Y)
		payload = appendVarint(payload, fieldHP, int64(m.HP))
	case Fire:
		payload = appendDouble(payload, fieldAngle, m.Angle)
	case Hit:
		payload = appendVarint(payload, fieldAmount, int64(m.Amount))
		payload = appendVarint(payload, fieldHitWeapon, int64(m.Weapon))
	case GameOver, ReturnToMenu:
	default:
		return nil, fmt.Errorf("encode %T: %w", msg, ErrUnknownMessage)
	}

	b := protowire.AppendTag(nil, protowire.Number(msg.Tag()), protowire.BytesType)
	return protowire.AppendBytes(b, payload), nil
}

// Decode reads the first envelope field with a known tag. Unknown fields are
// skipped; an envelope without a known tag yields ErrUnknownMessage.
func Decode(b []byte) (Message, error) {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, malformed(n)
		}
		b = b[n:]

		tag := Tag(num)
		if typ != protowire.BytesType || tag < TagReady || tag > TagReturnToMenu {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, malformed(n)
			}
			b = b[n:]
			continue
		}

		payload, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, malformed(n)
		}
		return decodePayload(tag, payload)
	}
	return nil, ErrUnknownMessage
}

func decodePayload(tag Tag, payload []byte) (Message, error) {
	switch tag {
	case TagReady:
		w, obs, err := consumeWeaponObstacles(payload)
		return Ready{Weapon: w, Obstacles: obs}, err
	case TagRematch:
		w, obs, err := consumeWeaponObstacles(payload)
		return Rematch{Weapon: w, Obstacles: obs}, err
	case TagRematchAccept:
		w, obs, err := consumeWeaponObstacles(payload)
		return RematchAccept{Weapon: w, Obstacles: obs}, err
	case TagPos:
		var m Pos
		err := consumeFields(payload, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
			switch {
			case num == fieldX && typ == protowire.Fixed64Type:
				return consumeDouble(b, &m.X)
			case num == fieldY && typ == protowire.Fixed64Type:
				return consumeDouble(b, &m.Y)
			case num == fieldHP && typ == protowire.VarintType:
				return consumeInt(b, &m.HP)
			}
			return skip(num, typ, b)
		})
		return m, err
	case TagFire:
		var m Fire
		err := consumeFields(payload, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
			if num == fieldAngle && typ == protowire.Fixed64Type {
				return consumeDouble(b, &m.Angle)
			}
			return skip(num, typ, b)
		})
		return m, err
	case TagHit:
		var m Hit
		err := consumeFields(payload, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
			switch {
			case num == fieldAmount && typ == protowire.VarintType:
				return consumeInt(b, &m.Amount)
			case num == fieldHitWeapon && typ == protowire.VarintType:
				var w int
				n, err := consumeInt(b, &w)
				m.Weapon = world.Weapon(w)
				return n, err
			}
			return skip(num, typ, b)
		})
		return m, err
	case TagGameOver:
		return GameOver{}, nil
	case TagReturnToMenu:
		return ReturnToMenu{}, nil
	}
	return nil, ErrUnknownMessage
}

func appendWeaponObstacles(b []byte, w world.Weapon, obstacles []geom.Rect) []byte {
	b = appendVarint(b, fieldWeapon, int64(w))
	for _, r := range obstacles {
		var rect []byte
		rect = appendDouble(rect, fieldRectX, r.X)
		rect = appendDouble(rect, fieldRectY, r.Y)
		rect = appendDouble(rect, fieldRectW, r.W)
		rect = appendDouble(rect, fieldRectH, r.H)
		b = protowire.AppendTag(b, fieldObstacles, protowire.BytesType)
		b = protowire.AppendBytes(b, rect)
	}
	return b
}

func consumeWeaponObstacles(payload []byte) (world.Weapon, []geom.Rect, error) {
	var (
		weapon    int
		obstacles []geom.Rect
	)
	err := consumeFields(payload, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldWeapon && typ == protowire.VarintType:
			return consumeInt(b, &weapon)
		case num == fieldObstacles && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, malformed(n)
			}
			r, err := consumeRect(v)
			if err != nil {
				return n, err
			}
			obstacles = append(obstacles, r)
			return n, nil
		}
		return skip(num, typ, b)
	})
	return world.Weapon(weapon), obstacles, err
}

func consumeRect(payload []byte) (geom.Rect, error) {
	var r geom.Rect
	err := consumeFields(payload, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if typ == protowire.Fixed64Type {
			switch num {
			case fieldRectX:
				return consumeDouble(b, &r.X)
			case fieldRectY:
				return consumeDouble(b, &r.Y)
			case fieldRectW:
				return consumeDouble(b, &r.W)
			case fieldRectH:
				return consumeDouble(b, &r.H)
			}
		}
		return skip(num, typ, b)
	})
	return r, err
}

// consumeFields walks a payload, handing each field body to fn. fn returns
// the number of bytes it consumed.
func consumeFields(b []byte, fn func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return malformed(n)
		}
		b = b[n:]
		n, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

func skip(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return n, malformed(n)
	}
	return n, nil
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

func appendVarint(b []byte, num protowire.Number, v int64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeZigZag(v))
}

func consumeDouble(b []byte, out *float64) (int, error) {
	v, n := protowire.ConsumeFixed64(b)
	if n < 0 {
		return n, malformed(n)
	}
	*out = math.Float64frombits(v)
	return n, nil
}

func consumeInt(b []byte, out *int) (int, error) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return n, malformed(n)
	}
	*out = int(protowire.DecodeZigZag(v))
	return n, nil
}

func malformed(n int) error {
	return fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
}
