// Package export drives the per-track and per-clip export workflows over a
// scripting session. Both workflows mutate remote mute and selection state
// across many commands; track export restores it unconditionally on every
// exit path, and individual item failures never abort a run.
package export

import (
	"context"

	"audx/internal/script"
)

// session is the slice of the scripting facade the workflows need.
// *script.Session satisfies it.
type session interface {
	Tracks(ctx context.Context) ([]script.TrackInfo, error)
	Clips(ctx context.Context) ([]script.ClipInfo, error)
	SelectAll(ctx context.Context) error
	SelectNone(ctx context.Context) error
	SelectTracks(ctx context.Context, track, count int, mode string) error
	SelectTime(ctx context.Context, start, end float64, relativeTo string) error
	SetTrackAudio(ctx context.Context, o script.TrackAudio) error
	SetTrackStatus(ctx context.Context, o script.TrackStatus) error
	NewStereoTrack(ctx context.Context) error
	RemoveTracks(ctx context.Context) error
	Copy(ctx context.Context) error
	Paste(ctx context.Context) error
	Delete(ctx context.Context) error
	ExportAudio(ctx context.Context, filename string, numChannels int) error
}

var _ session = (*script.Session)(nil)

// Report is the outcome of one export run. Total counts the items that
// qualified for export; Skipped counts the ones filtered out beforehand.
type Report struct {
	Exported int
	Total    int
	Skipped  int
}

// Nothing reports whether the run found no eligible items at all.
func (r Report) Nothing() bool {
	return r.Total == 0
}

// muteOnly selects the 1-track range and mutes or unmutes it. The grammar
// mutates only the current selection, so every track mutation is a
// select-then-set pair.
func muteOnly(ctx context.Context, s session, track int, mute bool) error {
	if err := s.SelectTracks(ctx, track, 1, "Set"); err != nil {
		return err
	}
	return s.SetTrackAudio(ctx, script.TrackAudio{Mute: script.Bool(mute)})
}
