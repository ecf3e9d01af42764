package random

import "io"

type reader struct {
	r Random
}

// NewReader adapts a Random into an io.Reader so byte-oriented generators
// (such as UUIDs) draw from the same source
func NewReader(r Random) io.Reader {
	return &reader{r: r}
}

func (rd *reader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(rd.r.Intn(256))
	}
	return len(p), nil
}
