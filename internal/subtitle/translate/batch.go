package translate

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// ErrIncomplete means a line could not be translated even after recovery.
var ErrIncomplete = errors.New("translation incomplete")

// span is a half-open [start, end) range of line indices awaiting translation.
type span struct {
	start, end int
}

// TranslateAll translates every line, preserving order and count. Lines are
// cut into windows of at most batchSize and each window goes through
// bisection recovery: a batch whose reply fails or comes back with the wrong
// line count is split in half and both halves retried. At single-line
// granularity a failed batch falls back to the engine's one-line path, which
// is authoritative. Results land in absolute slots so no reordering can
// happen. A single line that still fails aborts the whole run with its
// index; partial subtitle files are worse than no subtitle file.
func TranslateAll(ctx context.Context, engine Engine, lines []string, batchSize int, opts Options, progress func(float64)) ([]string, error) {
	if batchSize <= 0 {
		batchSize = 60
	}

	out := make([]string, len(lines))
	filled := make([]bool, len(lines))
	done := 0

	report := func() {
		if progress != nil && len(lines) > 0 {
			progress(float64(done) / float64(len(lines)))
		}
	}

	totalWindows := (len(lines) + batchSize - 1) / batchSize
	log.Printf("[translate] %s: translating %d lines in %d windows of up to %d",
		engine.Name(), len(lines), totalWindows, batchSize)

	for w := 0; w < len(lines); w += batchSize {
		windowEnd := w + batchSize
		if windowEnd > len(lines) {
			windowEnd = len(lines)
		}

		stack := []span{{start: w, end: windowEnd}}
		for len(stack) > 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			n := cur.end - cur.start

			translated, err := engine.TranslateBatch(ctx, lines[cur.start:cur.end], opts)
			if err == nil && len(translated) == n {
				for i, t := range translated {
					out[cur.start+i] = t
					filled[cur.start+i] = true
				}
				done += n
				report()
				continue
			}

			if err != nil {
				log.Printf("[translate] batch [%d,%d) failed: %v", cur.start, cur.end, err)
			} else {
				log.Printf("[translate] batch [%d,%d) returned %d lines for %d inputs",
					cur.start, cur.end, len(translated), n)
			}

			if n == 1 {
				single, err := engine.TranslateSingle(ctx, lines[cur.start], opts)
				if err != nil {
					return nil, fmt.Errorf("translate line %d: %w", cur.start, err)
				}
				out[cur.start] = single
				filled[cur.start] = true
				done++
				report()
				continue
			}

			// Left half retried first; writes go to absolute slots either way
			mid := cur.start + n/2
			stack = append(stack, span{start: mid, end: cur.end})
			stack = append(stack, span{start: cur.start, end: mid})
		}
	}

	for i := range filled {
		if !filled[i] {
			return nil, fmt.Errorf("%w: line %d left untranslated", ErrIncomplete, i)
		}
	}
	return out, nil
}
