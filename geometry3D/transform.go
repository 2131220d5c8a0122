package geometry3D

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
	AxisZ Axis = "z"
)

var ErrUnknownAxis = errors.New("unknown rotation axis")

func (a Axis) String() string {
	return string(a)
}

// ParseAxis accepts x, y or z in either case
func ParseAxis(label string) (Axis, error) {
	switch label {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return "", fmt.Errorf("%w: [%s]", ErrUnknownAxis, label)
}

// Scale returns a copy of vertices with every coordinate multiplied by c
func Scale(vertices []r3.Vec, c float64) (scaled []r3.Vec) {
	scaled = make([]r3.Vec, len(vertices))
	for i, v := range vertices {
		scaled[i] = r3.Scale(c, v)
	}
	return
}

// Rotate returns a copy of vertices rotated right-handedly about a primary
// axis by degrees.
func Rotate(vertices []r3.Vec, axis Axis, degrees float64) (rotated []r3.Vec, err error) {
	var (
		dir r3.Vec
	)
	switch axis {
	case AxisX:
		dir = r3.Vec{X: 1}
	case AxisY:
		dir = r3.Vec{Y: 1}
	case AxisZ:
		dir = r3.Vec{Z: 1}
	default:
		return nil, fmt.Errorf("%w: [%s]", ErrUnknownAxis, axis)
	}
	rot := r3.NewRotation(degrees*math.Pi/180, dir)
	rotated = make([]r3.Vec, len(vertices))
	for i, v := range vertices {
		rotated[i] = rot.Rotate(v)
	}
	return
}
