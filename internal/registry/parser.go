package registry

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/insynpulse/internal/domain/models"
	"github.com/guttosm/insynpulse/internal/logger"
)

const (
	maxLineSize    = 4 * 1024 * 1024
	parseChunkSize = 512
	byteOrderMark  = rune(0xFEFF)
)

// Stats summarizes one parsed response.
type Stats struct {
	Lines   int // non-blank data lines read
	Valid   int // transactions handed to the caller
	Dropped int // lines rejected because quantity or price did not parse
}

// Parser reads export responses: a header line followed by data lines.
type Parser struct {
	lang    Language
	headers HeaderTable
	log     zerolog.Logger
	workers int
}

// Option configures a Parser.
type Option func(*Parser)

// WithHeaders replaces DefaultHeaders.
func WithHeaders(t HeaderTable) Option {
	return func(p *Parser) {
		if t != nil {
			p.headers = t
		}
	}
}

// WithLogger sets where conversion warnings go.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Parser) { p.log = l }
}

// WithWorkers sets how many goroutines Parse converts lines with.
// Values below 2 keep Parse sequential.
func WithWorkers(n int) Option {
	return func(p *Parser) {
		if n < 1 {
			n = 1
		}
		p.workers = n
	}
}

// NewParser returns a parser for exports in the given language.
func NewParser(lang Language, opts ...Option) *Parser {
	p := &Parser{
		lang:    lang,
		headers: DefaultHeaders,
		log:     logger.For("registry"),
		workers: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Language returns the export language the parser expects.
func (p *Parser) Language() Language { return p.lang }

// Each streams the valid transactions of r to fn in input order.
//
// A missing or empty header yields no transactions and no error. Only read
// errors, context cancellation and errors returned by fn stop the stream.
func (p *Parser) Each(ctx context.Context, r io.Reader, fn func(models.Transaction) error) (Stats, error) {
	var st Stats
	sc := newScanner(r)

	m, err := p.readHeader(sc)
	if err != nil || m == nil {
		return st, err
	}

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		st.Lines++

		t := m.Convert(line)
		if !t.Valid() {
			st.Dropped++
			continue
		}
		st.Valid++
		if err := fn(t); err != nil {
			return st, err
		}
	}
	if err := sc.Err(); err != nil {
		return st, fmt.Errorf("read line %d: %w", st.Lines+1, err)
	}
	return st, nil
}

// Parse collects the valid transactions of r in input order. With more than
// one worker, lines are read first and then converted concurrently.
func (p *Parser) Parse(ctx context.Context, r io.Reader) ([]models.Transaction, Stats, error) {
	if p.workers > 1 {
		return p.parseConcurrent(ctx, r)
	}

	var out []models.Transaction
	st, err := p.Each(ctx, r, func(t models.Transaction) error {
		out = append(out, t)
		return nil
	})
	if err != nil {
		return nil, st, err
	}
	return out, st, nil
}

func (p *Parser) parseConcurrent(ctx context.Context, r io.Reader) ([]models.Transaction, Stats, error) {
	var st Stats
	sc := newScanner(r)

	m, err := p.readHeader(sc)
	if err != nil || m == nil {
		return nil, st, err
	}

	var lines []string
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, st, err
		}
		if line := sc.Text(); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, st, fmt.Errorf("read line %d: %w", len(lines)+1, err)
	}

	cols := m.Columns()
	slots := make([]models.Transaction, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for lo := 0; lo < len(lines); lo += parseChunkSize {
		lo := lo
		hi := min(lo+parseChunkSize, len(lines))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				slots[i] = cols.Convert(SplitLine(lines[i], cols.Len()), &p.log)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, st, err
	}

	out := make([]models.Transaction, 0, len(slots))
	for _, t := range slots {
		st.Lines++
		if !t.Valid() {
			st.Dropped++
			continue
		}
		st.Valid++
		out = append(out, t)
	}
	return out, st, nil
}

// readHeader consumes the header line. A nil mapper means the response
// carries no data.
func (p *Parser) readHeader(sc *bufio.Scanner) (*Mapper, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		return nil, nil
	}
	header := strings.TrimPrefix(sc.Text(), string(byteOrderMark))
	if strings.TrimSpace(header) == "" {
		return nil, nil
	}

	m := NewMapper(p.lang, p.headers, &p.log)
	if m.Initialize(header) == 0 {
		return nil, nil
	}
	p.log.Debug().
		Int("columns", m.Columns().Len()).
		Int("mapped", m.Columns().Mapped()).
		Str("language", p.lang.String()).
		Msg("export header resolved")
	return m, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return sc
}
