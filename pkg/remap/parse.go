package remap

import (
	"fmt"
	"strings"
)

func ParseScaling(s string) (Scaling, error) {
	switch strings.ToLower(s) {
	case "", "linear":
		return Linear, nil
	case "log":
		return Log, nil
	}
	return 0, fmt.Errorf("%w: unknown scaling %q", ErrInvalidParameters, s)
}

func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(s) {
	case "nearest":
		return Nearest, nil
	case "", "bilinear", "linear":
		return Bilinear, nil
	case "bicubic", "cubic":
		return Bicubic, nil
	}
	return 0, fmt.Errorf("%w: unknown interpolation %q", ErrInvalidParameters, s)
}

func ParseBorder(s string) (BorderPolicy, error) {
	switch strings.ToLower(s) {
	case "", "constant", "fill":
		return BorderConstant, nil
	case "transparent":
		return BorderTransparent, nil
	}
	return 0, fmt.Errorf("%w: unknown border policy %q", ErrInvalidParameters, s)
}
