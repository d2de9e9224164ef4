package pixel

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// ParseColor accepts "#rgb", "#rrggbb", "#rrggbbaa" or comma separated
// channel values such as "10,20,30".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{0, 0, 0}, nil
	}
	if strings.HasPrefix(s, "#") {
		h := s[1:]
		if len(h) == 3 {
			h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
		}
		if len(h) != 6 && len(h) != 8 {
			return nil, fmt.Errorf("pixel: invalid color %q", s)
		}
		b, err := hex.DecodeString(h)
		if err != nil {
			return nil, fmt.Errorf("pixel: invalid color %q: %w", s, err)
		}
		return Color(b), nil
	}

	parts := strings.Split(s, ",")
	if len(parts) > MaxChannels {
		return nil, fmt.Errorf("pixel: color %q has more than %d channels", s, MaxChannels)
	}
	c := make(Color, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("pixel: invalid color %q: %w", s, err)
		}
		c[i] = uint8(v)
	}

	return c, nil
}
