package script

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrProtocol means a response did not parse as the expected structured
// document. The wrapped message carries the raw text for diagnosis.
var ErrProtocol = errors.New("unexpected response from audacity")

// TrackInfo describes one timeline track. Index is 0-based and dense,
// matching the remote ordering at the moment of the query; any command that
// adds or removes tracks invalidates it.
type TrackInfo struct {
	Index int
	Name  string
	Mute  bool
	Solo  bool
}

// ClipInfo describes one audio clip. Track is the owning track index, or -1
// when the document carried no track reference. Start and End are seconds.
type ClipInfo struct {
	Name  string
	Track int
	Start float64
	End   float64
}

// flag accepts the 0/1 numbers mod-script-pipe emits for booleans, plus
// literal true/false for robustness.
type flag bool

func (f *flag) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "0", "false":
		*f = false
	case "1", "true":
		*f = true
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("flag value %s", data)
		}
		*f = n != 0
	}
	return nil
}

// Tracks queries and parses the project's track listing.
func (s *Session) Tracks(ctx context.Context) ([]TrackInfo, error) {
	raw, err := s.GetInfo(ctx, "Tracks")
	if err != nil {
		return nil, err
	}
	return parseTracks(raw)
}

func parseTracks(raw string) ([]TrackInfo, error) {
	var doc []struct {
		Name string `json:"name"`
		Mute flag   `json:"mute"`
		Solo flag   `json:"solo"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: track info: %v (raw: %q)", ErrProtocol, err, raw)
	}

	tracks := make([]TrackInfo, len(doc))
	for i, t := range doc {
		tracks[i] = TrackInfo{
			Index: i,
			Name:  t.Name,
			Mute:  bool(t.Mute),
			Solo:  bool(t.Solo),
		}
	}
	return tracks, nil
}

// Clips queries and parses the project's clip listing.
func (s *Session) Clips(ctx context.Context) ([]ClipInfo, error) {
	raw, err := s.GetInfo(ctx, "Clips")
	if err != nil {
		return nil, err
	}
	return parseClips(raw)
}

func parseClips(raw string) ([]ClipInfo, error) {
	var doc []struct {
		Name  string   `json:"name"`
		Track *int     `json:"track"`
		Start *float64 `json:"start"`
		End   *float64 `json:"end"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: clip info: %v (raw: %q)", ErrProtocol, err, raw)
	}

	clips := make([]ClipInfo, len(doc))
	for i, c := range doc {
		info := ClipInfo{Name: c.Name, Track: -1, Start: -1, End: -1}
		if c.Track != nil {
			info.Track = *c.Track
		}
		if c.Start != nil {
			info.Start = *c.Start
		}
		if c.End != nil {
			info.End = *c.End
		}
		clips[i] = info
	}
	return clips, nil
}
