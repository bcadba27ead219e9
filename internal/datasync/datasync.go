// Package datasync copies card collections between card stores, such as the YAML file and MySQL.
package datasync

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/google/uuid"

	"github.com/at-ishikawa/flashcards/internal/card"
)

// Result tracks counts for one sync run.
type Result struct {
	New     int
	Updated int
	Skipped int
	Invalid int
}

// Options controls sync behavior.
type Options struct {
	DryRun         bool
	UpdateExisting bool
}

// Syncer merges the cards of one store into another.
type Syncer struct {
	from   card.Store
	to     card.Store
	writer io.Writer
}

func NewSyncer(from, to card.Store, writer io.Writer) *Syncer {
	return &Syncer{
		from:   from,
		to:     to,
		writer: writer,
	}
}

// Sync copies every valid source card into the destination. Cards present only in
// the destination are kept, and cards present in both are replaced only with UpdateExisting.
// The destination is written once, at the end, unless DryRun is set.
func (s *Syncer) Sync(ctx context.Context, opts Options) (*Result, error) {
	source, err := s.from.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("from.Load() > %w", err)
	}
	destination, err := s.to.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("to.Load() > %w", err)
	}

	positions := make(map[uuid.UUID]int, len(destination))
	for i, c := range destination {
		positions[c.ID] = i
	}

	var result Result
	merged := slices.Clone(destination)
	for _, c := range source {
		if err := c.Validate(); err != nil {
			fmt.Fprintf(s.writer, "  [WARN]  %q (%s): %v\n", c.Front, c.ID, err)
			result.Invalid++
			continue
		}

		i, ok := positions[c.ID]
		if !ok {
			fmt.Fprintf(s.writer, "  [NEW]  %q (%s)\n", c.Front, c.ID)
			positions[c.ID] = len(merged)
			merged = append(merged, c)
			result.New++
			continue
		}
		if !opts.UpdateExisting {
			fmt.Fprintf(s.writer, "  [SKIP]  %q (%s)\n", c.Front, c.ID)
			result.Skipped++
			continue
		}
		fmt.Fprintf(s.writer, "  [UPDATE]  %q (%s)\n", c.Front, c.ID)
		merged[i] = c
		result.Updated++
	}

	if opts.DryRun || result.New+result.Updated == 0 {
		return &result, nil
	}
	if err := s.to.Save(ctx, merged); err != nil {
		return nil, fmt.Errorf("to.Save() > %w", err)
	}
	return &result, nil
}

// Write prints the summary of a sync run.
func (r Result) Write(w io.Writer) {
	fmt.Fprintf(w, "new: %d, updated: %d, skipped: %d, invalid: %d\n", r.New, r.Updated, r.Skipped, r.Invalid)
}
