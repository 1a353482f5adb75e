package fixedlength

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Float is a float64 that uses as many decimal places as the field width
// allows.
type Float float64

func (f Float) MarshalFixedWidth(width int) (data []byte, err error) {
	var l, p int

	if f > 0 {
		l = int(math.Log10(float64(f))) + 2
	} else if f < 0 {
		l = int(math.Log10(math.Abs(float64(f)))) + 3
	}
	// Values below one still need a leading zero and the point.
	if f < 0 && l < 3 {
		l = 3
	} else if l < 2 {
		l = 2
	}

	if l-1 > width {
		return nil, errors.Errorf("fixedlength: float %v longer than field width %d", float64(f), width)
	}

	p = width - l
	if p < 0 {
		p = 0
	}

	s := strconv.FormatFloat(float64(f), 'f', p, 64)
	return []byte(s), nil
}

// Digits is an integer written zero-padded to the full field width, the way
// numeric columns of most fixed-length formats are laid out. Negative values
// keep the sign in the first position.
type Digits int64

func (d Digits) MarshalFixedWidth(width int) ([]byte, error) {
	s := strconv.FormatInt(int64(d), 10)
	sign := ""
	if d < 0 {
		sign, s = "-", s[1:]
	}
	pad := width - len(sign) - len(s)
	if pad < 0 {
		return nil, errors.Errorf("fixedlength: integer %d longer than field width %d", int64(d), width)
	}
	return []byte(sign + strings.Repeat("0", pad) + s), nil
}
