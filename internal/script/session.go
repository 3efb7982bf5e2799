package script

import (
	"context"
)

// Doer executes one serialized command and returns the response body.
// *pipe.Conn satisfies it.
type Doer interface {
	Do(ctx context.Context, command string) (string, error)
}

// Session is a typed facade over the scripting grammar. Methods serialize
// exactly the parameters they are given and delegate to the underlying
// connection; no retries happen at this layer.
type Session struct {
	conn Doer
}

// NewSession wraps a connection.
func NewSession(conn Doer) *Session {
	return &Session{conn: conn}
}

// Raw sends an already-formed command line.
func (s *Session) Raw(ctx context.Context, command string) (string, error) {
	return s.conn.Do(ctx, command)
}

func (s *Session) run(ctx context.Context, c *Command) error {
	_, err := s.conn.Do(ctx, c.Text())
	return err
}

// Project file I/O.

// NewProject creates a new empty project window.
func (s *Session) NewProject(ctx context.Context) error {
	return s.run(ctx, NewCommand("New"))
}

// OpenProject opens an .aup3 project file.
func (s *Session) OpenProject(ctx context.Context, filename string, addToHistory bool) error {
	return s.run(ctx, NewCommand("OpenProject2").
		Str("Filename", filename).
		Bool("AddToHistory", addToHistory))
}

// SaveProject saves the current project.
func (s *Session) SaveProject(ctx context.Context, filename string, addToHistory, compress bool) error {
	return s.run(ctx, NewCommand("SaveProject2").
		Str("Filename", filename).
		Bool("AddToHistory", addToHistory).
		Bool("Compress", compress))
}

// ImportAudio imports an audio file into the project.
func (s *Session) ImportAudio(ctx context.Context, filename string) error {
	return s.run(ctx, NewCommand("Import2").Str("Filename", filename))
}

// ExportAudio exports the current selection to a file. numChannels is 1 for
// mono, 2 for stereo.
func (s *Session) ExportAudio(ctx context.Context, filename string, numChannels int) error {
	return s.run(ctx, NewCommand("Export2").
		Path("Filename", filename).
		Int("NumChannels", numChannels))
}

// Selection.

// SelectAll selects all audio in the project.
func (s *Session) SelectAll(ctx context.Context) error {
	return s.run(ctx, NewCommand("SelectAll"))
}

// SelectNone clears the current selection.
func (s *Session) SelectNone(ctx context.Context) error {
	return s.run(ctx, NewCommand("SelectNone"))
}

// SelectTime selects a time range in seconds. relativeTo is a grammar token
// such as ProjectStart or Selection.
func (s *Session) SelectTime(ctx context.Context, start, end float64, relativeTo string) error {
	return s.run(ctx, NewCommand("SelectTime").
		Float("Start", start).
		Float("End", end).
		Raw("RelativeTo", relativeTo))
}

// SelectTracks selects count tracks starting at the 0-based track index.
// mode is Set, Add or Remove.
func (s *Session) SelectTracks(ctx context.Context, track, count int, mode string) error {
	return s.run(ctx, NewCommand("SelectTracks").
		Int("Track", track).
		Int("TrackCount", count).
		Raw("Mode", mode))
}

// FrequencyRange is the optional spectral selection band.
type FrequencyRange struct {
	High *float64
	Low  *float64
}

// SelectFrequencies sets the spectral selection range.
func (s *Session) SelectFrequencies(ctx context.Context, r FrequencyRange) error {
	return s.run(ctx, NewCommand("SelectFrequencies").
		OptFloat("High", r.High).
		OptFloat("Low", r.Low))
}

// Track properties. The grammar mutates the current selection, so callers
// select the target track range first.

// TrackStatus holds the optional SetTrackStatus parameters.
type TrackStatus struct {
	Name     *string
	Selected *bool
	Focused  *bool
}

// SetTrackStatus sets name, selection and focus of the selected track.
func (s *Session) SetTrackStatus(ctx context.Context, o TrackStatus) error {
	return s.run(ctx, NewCommand("SetTrackStatus").
		OptStr("Name", o.Name).
		OptBool("Selected", o.Selected).
		OptBool("Focused", o.Focused))
}

// TrackAudio holds the optional SetTrackAudio parameters.
type TrackAudio struct {
	Mute *bool
	Solo *bool
	Gain *float64
	Pan  *float64
}

// SetTrackAudio sets mute, solo, gain and pan of the selected track.
func (s *Session) SetTrackAudio(ctx context.Context, o TrackAudio) error {
	return s.run(ctx, NewCommand("SetTrackAudio").
		OptBool("Mute", o.Mute).
		OptBool("Solo", o.Solo).
		OptFloat("Gain", o.Gain).
		OptFloat("Pan", o.Pan))
}

// TrackVisuals holds the optional SetTrackVisuals parameters.
type TrackVisuals struct {
	Height      *int
	Display     *string // Waveform, Spectrogram, Multi-view
	Scale       *string // Linear, dB
	Color       *string // Color0..Color3
	VZoom       *string // Reset, Times2, HalfWave
	VZoomHigh   *float64
	VZoomLow    *float64
	SpecPrefs   *bool
	SpectralSel *bool
	Scheme      *string
}

// SetTrackVisuals sets display properties of the selected track.
func (s *Session) SetTrackVisuals(ctx context.Context, o TrackVisuals) error {
	return s.run(ctx, NewCommand("SetTrackVisuals").
		OptInt("Height", o.Height).
		OptRaw("Display", o.Display).
		OptRaw("Scale", o.Scale).
		OptRaw("Color", o.Color).
		OptRaw("VZoom", o.VZoom).
		OptFloat("VZoomHigh", o.VZoomHigh).
		OptFloat("VZoomLow", o.VZoomLow).
		OptBool("SpecPrefs", o.SpecPrefs).
		OptBool("SpectralSel", o.SpectralSel).
		OptStr("Scheme", o.Scheme))
}

// TrackSettings holds the optional parameters of the legacy SetTrack verb.
type TrackSettings struct {
	Name     *string
	Selected *bool
	Focused  *bool
	Mute     *bool
	Solo     *bool
	Gain     *float64
	Pan      *float64
	Height   *int
	Display  *string
	Scale    *string
	Color    *string
}

// SetTrack sets multiple track properties at once. Prefer the specific
// SetTrack* verbs.
func (s *Session) SetTrack(ctx context.Context, o TrackSettings) error {
	return s.run(ctx, NewCommand("SetTrack").
		OptStr("Name", o.Name).
		OptBool("Selected", o.Selected).
		OptBool("Focused", o.Focused).
		OptBool("Mute", o.Mute).
		OptBool("Solo", o.Solo).
		OptFloat("Gain", o.Gain).
		OptFloat("Pan", o.Pan).
		OptInt("Height", o.Height).
		OptRaw("Display", o.Display).
		OptRaw("Scale", o.Scale).
		OptRaw("Color", o.Color))
}

// Clip, label, envelope and project mutation.

// ClipSettings holds the optional SetClip parameters. At addresses the clip
// by a time position inside it.
type ClipSettings struct {
	At    *float64
	Color *string
	Start *float64
}

// SetClip modifies the clip at a given time position.
func (s *Session) SetClip(ctx context.Context, o ClipSettings) error {
	return s.run(ctx, NewCommand("SetClip").
		OptFloat("At", o.At).
		OptRaw("Color", o.Color).
		OptFloat("Start", o.Start))
}

// EnvelopeSettings holds the optional SetEnvelope parameters.
type EnvelopeSettings struct {
	Time   *float64
	Value  *float64
	Delete *bool
}

// SetEnvelope edits an envelope point, or deletes the whole envelope.
func (s *Session) SetEnvelope(ctx context.Context, o EnvelopeSettings) error {
	return s.run(ctx, NewCommand("SetEnvelope").
		OptFloat("Time", o.Time).
		OptFloat("Value", o.Value).
		OptBool("Delete", o.Delete))
}

// LabelSettings holds the optional SetLabel parameters for one label.
type LabelSettings struct {
	Text     *string
	Start    *float64
	End      *float64
	Selected *bool
}

// SetLabel modifies the label with the given 0-based index.
func (s *Session) SetLabel(ctx context.Context, label int, o LabelSettings) error {
	return s.run(ctx, NewCommand("SetLabel").
		Int("Label", label).
		OptStr("Text", o.Text).
		OptFloat("Start", o.Start).
		OptFloat("End", o.End).
		OptBool("Selected", o.Selected))
}

// ProjectSettings holds the optional SetProject parameters.
type ProjectSettings struct {
	Name   *string
	Rate   *float64
	X      *int
	Y      *int
	Width  *int
	Height *int
}

// SetProject sets project window properties.
func (s *Session) SetProject(ctx context.Context, o ProjectSettings) error {
	return s.run(ctx, NewCommand("SetProject").
		OptStr("Name", o.Name).
		OptFloat("Rate", o.Rate).
		OptInt("X", o.X).
		OptInt("Y", o.Y).
		OptInt("Width", o.Width).
		OptInt("Height", o.Height))
}

// Preferences.

// GetPreference reads a single preference value.
func (s *Session) GetPreference(ctx context.Context, name string) (string, error) {
	return s.conn.Do(ctx, NewCommand("GetPreference").Str("Name", name).Text())
}

// SetPreference writes a single preference value. reload forces a
// preference reload, which is slow but sometimes necessary.
func (s *Session) SetPreference(ctx context.Context, name, value string, reload bool) error {
	return s.run(ctx, NewCommand("SetPreference").
		Str("Name", name).
		Str("Value", value).
		Bool("Reload", reload))
}

// Basic effects, applied to the current selection.

// NormalizeSettings holds the Normalize effect parameters.
type NormalizeSettings struct {
	PeakLevel         float64
	ApplyGain         bool
	RemoveDCOffset    bool
	StereoIndependent bool
}

// Normalize normalizes the selected audio.
func (s *Session) Normalize(ctx context.Context, o NormalizeSettings) error {
	return s.run(ctx, NewCommand("Normalize").
		Float("PeakLevel", o.PeakLevel).
		Bool("ApplyGain", o.ApplyGain).
		Bool("RemoveDcOffset", o.RemoveDCOffset).
		Bool("StereoIndependent", o.StereoIndependent))
}

// Amplify amplifies the selection by the given ratio (1.0 = no change).
func (s *Session) Amplify(ctx context.Context, ratio float64) error {
	return s.run(ctx, NewCommand("Amplify").Float("Ratio", ratio))
}

// FadeIn applies a linear fade-in to the selection.
func (s *Session) FadeIn(ctx context.Context) error {
	return s.run(ctx, NewCommand("FadeIn"))
}

// FadeOut applies a linear fade-out to the selection.
func (s *Session) FadeOut(ctx context.Context) error {
	return s.run(ctx, NewCommand("FadeOut"))
}

// Reverse reverses the selected audio.
func (s *Session) Reverse(ctx context.Context) error {
	return s.run(ctx, NewCommand("Reverse"))
}

// Invert flips the selected waveform.
func (s *Session) Invert(ctx context.Context) error {
	return s.run(ctx, NewCommand("Invert"))
}

// Advanced effects.

// CompressorSettings holds the Compressor effect parameters.
type CompressorSettings struct {
	Threshold   float64 // dB
	NoiseFloor  float64 // dB
	Ratio       float64
	AttackTime  float64 // seconds
	ReleaseTime float64 // seconds
	Normalize   bool
}

// Compressor applies dynamic range compression to the selection.
func (s *Session) Compressor(ctx context.Context, o CompressorSettings) error {
	return s.run(ctx, NewCommand("Compressor").
		Float("Threshold", o.Threshold).
		Float("NoiseFloor", o.NoiseFloor).
		Float("Ratio", o.Ratio).
		Float("AttackTime", o.AttackTime).
		Float("ReleaseTime", o.ReleaseTime).
		Bool("Normalize", o.Normalize))
}

// NoiseReduction applies noise reduction. Requires a previously captured
// noise profile.
func (s *Session) NoiseReduction(ctx context.Context) error {
	return s.run(ctx, NewCommand("NoiseReduction"))
}

// ReverbSettings holds the Reverb effect parameters.
type ReverbSettings struct {
	RoomSize     float64 // percent
	Delay        float64 // ms
	Reverberance float64 // percent
	HfDamping    float64 // percent
	WetGain      float64 // dB
	DryGain      float64 // dB
}

// Reverb applies reverb to the selection.
func (s *Session) Reverb(ctx context.Context, o ReverbSettings) error {
	return s.run(ctx, NewCommand("Reverb").
		Float("RoomSize", o.RoomSize).
		Float("Delay", o.Delay).
		Float("Reverberance", o.Reverberance).
		Float("HfDamping", o.HfDamping).
		Float("WetGain", o.WetGain).
		Float("DryGain", o.DryGain))
}

// Track creation and removal.

// NewMonoTrack appends a new mono audio track.
func (s *Session) NewMonoTrack(ctx context.Context) error {
	return s.run(ctx, NewCommand("NewMonoTrack"))
}

// NewStereoTrack appends a new stereo audio track.
func (s *Session) NewStereoTrack(ctx context.Context) error {
	return s.run(ctx, NewCommand("NewStereoTrack"))
}

// NewLabelTrack appends a new label track.
func (s *Session) NewLabelTrack(ctx context.Context) error {
	return s.run(ctx, NewCommand("NewLabelTrack"))
}

// RemoveTracks removes the selected tracks.
func (s *Session) RemoveTracks(ctx context.Context) error {
	return s.run(ctx, NewCommand("RemoveTracks"))
}

// Clipboard edit operations.

// Copy copies the selection to the clipboard.
func (s *Session) Copy(ctx context.Context) error {
	return s.run(ctx, NewCommand("Copy"))
}

// Cut cuts the selection to the clipboard.
func (s *Session) Cut(ctx context.Context) error {
	return s.run(ctx, NewCommand("Cut"))
}

// Paste pastes clipboard audio at the selection.
func (s *Session) Paste(ctx context.Context) error {
	return s.run(ctx, NewCommand("Paste"))
}

// Delete deletes the selected audio.
func (s *Session) Delete(ctx context.Context) error {
	return s.run(ctx, NewCommand("Delete"))
}

// Duplicate duplicates the selected audio.
func (s *Session) Duplicate(ctx context.Context) error {
	return s.run(ctx, NewCommand("Duplicate"))
}

// Split splits the selected audio at the cursor.
func (s *Session) Split(ctx context.Context) error {
	return s.run(ctx, NewCommand("Split"))
}

// MixAndRender mixes the selected tracks down to a single track.
func (s *Session) MixAndRender(ctx context.Context) error {
	return s.run(ctx, NewCommand("MixAndRender"))
}

// MixAndRenderToNewTrack mixes to a new track, preserving the originals.
func (s *Session) MixAndRenderToNewTrack(ctx context.Context) error {
	return s.run(ctx, NewCommand("MixAndRenderToNewTrack"))
}

// Transport.

// Play starts playback.
func (s *Session) Play(ctx context.Context) error {
	return s.run(ctx, NewCommand("Play"))
}

// Stop stops playback or recording.
func (s *Session) Stop(ctx context.Context) error {
	return s.run(ctx, NewCommand("Stop"))
}

// Pause pauses playback or recording.
func (s *Session) Pause(ctx context.Context) error {
	return s.run(ctx, NewCommand("Pause"))
}

// Record starts recording with the first-choice device.
func (s *Session) Record(ctx context.Context) error {
	return s.run(ctx, NewCommand("Record1stChoice"))
}

// Analysis and utility.

// GetInfo returns the raw structured document for an info type such as
// Tracks, Clips or Commands. Tracks and Clips parse it for you.
func (s *Session) GetInfo(ctx context.Context, infoType string) (string, error) {
	return s.conn.Do(ctx, NewCommand("GetInfo").Raw("Type", infoType).Text())
}

// PlotSpectrum opens the spectrum analyzer.
func (s *Session) PlotSpectrum(ctx context.Context) error {
	return s.run(ctx, NewCommand("PlotSpectrum"))
}

// ContrastAnalyser opens the contrast analyzer.
func (s *Session) ContrastAnalyser(ctx context.Context) error {
	return s.run(ctx, NewCommand("ContrastAnalyser"))
}

// Help returns help text for a command.
func (s *Session) Help(ctx context.Context, command string) (string, error) {
	return s.conn.Do(ctx, NewCommand("Help").Raw("Command", command).Text())
}

// ScreenshotSettings holds the Screenshot parameters.
type ScreenshotSettings struct {
	Path        string
	CaptureWhat string // Window, Fullscreen, …
	Background  string // None, Blue, White
}

// Screenshot captures a screenshot of the Audacity window.
func (s *Session) Screenshot(ctx context.Context, o ScreenshotSettings) error {
	return s.run(ctx, NewCommand("Screenshot").
		Path("Path", o.Path).
		Raw("CaptureWhat", o.CaptureWhat).
		Raw("Background", o.Background))
}
