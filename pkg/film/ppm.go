package film

import (
	"bufio"
	"fmt"
	"io"
	"math"
)

const invGamma = 1.0 / 2.2

// WritePPM writes f as a binary PPM (P6): header "P6\n<w> <h>\n255\n"
// followed by width*height*3 bytes in row-major, top-to-bottom order, with
// gamma encoding x -> clamp(255*x^(1/2.2), 0, 255).
func WritePPM(w io.Writer, f *Film) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", f.width, f.height); err != nil {
		return fmt.Errorf("film: writing PPM header: %w", err)
	}

	row := make([]byte, f.width*3)
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			c := f.Pixel(x, y)
			row[x*3+0] = gammaByte(c.R)
			row[x*3+1] = gammaByte(c.G)
			row[x*3+2] = gammaByte(c.B)
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("film: writing PPM row %d: %w", y, err)
		}
	}
	return bw.Flush()
}

func gammaByte(x float32) byte {
	if x <= 0 {
		return 0
	}
	v := 255 * math.Pow(float64(x), invGamma)
	if v >= 255 {
		return 255
	}
	return byte(v)
}
