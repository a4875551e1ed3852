package client

import (
	"io"
	"math"
)

// progressReader reports how much of a body of known size the transport has consumed.
// The caller reports 0% before the first read.
type progressReader struct {
	r        io.Reader
	total    int64
	loaded   int64
	last     int
	progress ProgressFunc
}

func newProgressReader(r io.Reader, total int64, fn ProgressFunc) *progressReader {
	return &progressReader{r: r, total: total, last: 0, progress: fn}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.loaded += int64(n)
		p.report()
	}
	if err == io.EOF {
		p.loaded = p.total
		p.report()
	}
	return n, err
}

func (p *progressReader) report() {
	pct := Percent(p.loaded, p.total)
	if pct == p.last {
		return
	}
	p.last = pct
	p.progress(pct)
}

// Percent returns round(loaded*100/total), clamped to [0, 100]. An empty body counts as done.
func Percent(loaded, total int64) int {
	if total <= 0 {
		return 100
	}
	pct := int(math.Round(float64(loaded) * 100 / float64(total)))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
