package ui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/wayper/internal/display"
)

type assignCall struct {
	path string
	id   int
}

type stubApplier struct {
	mu    sync.Mutex
	calls []assignCall
	err   error
}

func (a *stubApplier) Assign(_ context.Context, path string, id int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, assignCall{path, id})
	return a.err
}

type stubDetector struct {
	refreshes int
	connected map[int]bool
}

func (d *stubDetector) Refresh(context.Context) error {
	d.refreshes++
	return nil
}

func (d *stubDetector) Lookup(id int) (display.Display, bool) {
	if d.connected[id] {
		return display.Display{ID: id}, true
	}
	return display.Display{}, false
}

func newTestSlideshow(applier Applier, cfg SlideshowConfig) *Slideshow {
	m := NewSlideshow(applier, cfg)
	m.intN = func(int) int { return 0 }
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSlideshowNextApplies(t *testing.T) {
	applier := &stubApplier{}
	var saved []assignCall
	m := newTestSlideshow(applier, SlideshowConfig{
		DisplayID: 1,
		Interval:  time.Millisecond,
		Images:    []string{"/walls/a.png", "/walls/b.png"},
		OnApplied: func(id int, path string) { saved = append(saved, assignCall{path, id}) },
	})

	_, cmd := m.Update(key("n"))
	require.NotNil(t, cmd)
	assert.True(t, m.applying)

	msg := cmd()
	require.IsType(t, slideAppliedMsg{}, msg)
	assert.Equal(t, []assignCall{{"/walls/a.png", 1}}, applier.calls)

	_, tick := m.Update(msg)
	require.NotNil(t, tick)
	assert.False(t, m.applying)
	assert.Equal(t, "/walls/a.png", m.current)
	assert.Equal(t, 1, m.applied)
	assert.Equal(t, []assignCall{{"/walls/a.png", 1}}, saved)

	// the scheduled tick carries the current sequence and triggers the next slide
	tickMsg := tick()
	require.Equal(t, slideTickMsg{seq: m.seq}, tickMsg)
	_, cmd = m.Update(tickMsg)
	require.NotNil(t, cmd)

	cmd()
	require.Len(t, applier.calls, 2)
	assert.Equal(t, "/walls/b.png", applier.calls[1].path, "same image is not repeated")
}

func TestSlideshowStaleTickIgnored(t *testing.T) {
	m := newTestSlideshow(&stubApplier{}, SlideshowConfig{Images: []string{"/walls/a.png"}})
	m.seq = 5

	_, cmd := m.Update(slideTickMsg{seq: 4})
	assert.Nil(t, cmd)
}

func TestSlideshowPause(t *testing.T) {
	m := newTestSlideshow(&stubApplier{}, SlideshowConfig{Images: []string{"/walls/a.png"}, Interval: time.Millisecond})

	_, cmd := m.Update(key(" "))
	assert.Nil(t, cmd)
	assert.True(t, m.paused)

	_, cmd = m.Update(slideTickMsg{seq: m.seq})
	assert.Nil(t, cmd, "ticks are ignored while paused")

	_, cmd = m.Update(slideAppliedMsg{path: "/walls/a.png"})
	assert.Nil(t, cmd, "no reschedule while paused")

	_, cmd = m.Update(key("p"))
	assert.False(t, m.paused)
	assert.NotNil(t, cmd)
}

func TestSlideshowApplyError(t *testing.T) {
	applier := &stubApplier{err: errors.New("hyprpaper not running")}
	m := newTestSlideshow(applier, SlideshowConfig{Images: []string{"/walls/a.png"}, Interval: time.Millisecond})

	_, cmd := m.Update(key("n"))
	_, next := m.Update(cmd())

	assert.NotNil(t, next, "slideshow keeps going after a failure")
	assert.EqualError(t, m.lastErr, "hyprpaper not running")
	assert.Empty(t, m.current)
	assert.Zero(t, m.applied)
	assert.Contains(t, m.View(), "hyprpaper not running")
}

func TestSlideshowEmptyLibrary(t *testing.T) {
	m := newTestSlideshow(&stubApplier{}, SlideshowConfig{})

	_, cmd := m.Update(key("n"))
	assert.Nil(t, cmd)
	assert.Error(t, m.lastErr)
}

func TestSlideshowHotplug(t *testing.T) {
	tests := []struct {
		name      string
		connected map[int]bool
		wantCalls int
		wantErr   bool
	}{
		{name: "display present", connected: map[int]bool{2: true}, wantCalls: 1},
		{name: "display unplugged", connected: map[int]bool{0: true}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			applier := &stubApplier{}
			det := &stubDetector{connected: tt.connected}
			m := newTestSlideshow(applier, SlideshowConfig{
				DisplayID: 2,
				Images:    []string{"/walls/a.png"},
				Detector:  det,
			})

			_, cmd := m.Update(key("n"))
			msg := cmd().(slideAppliedMsg)

			assert.Equal(t, 1, det.refreshes)
			assert.Len(t, applier.calls, tt.wantCalls)
			assert.Equal(t, tt.wantErr, msg.err != nil)
		})
	}
}

func TestSlideshowLibraryUpdates(t *testing.T) {
	updates := make(chan []string, 1)
	m := newTestSlideshow(&stubApplier{}, SlideshowConfig{Images: []string{"/walls/a.png"}, Updates: updates})
	m.current = "/walls/a.png"

	updates <- []string{"/walls/x.png", "/walls/y.png"}
	msg := m.waitLibrary()()
	_, cmd := m.Update(msg)
	assert.Equal(t, []string{"/walls/x.png", "/walls/y.png"}, m.images)
	assert.NotNil(t, cmd, "keeps listening")

	close(updates)
	_, cmd = m.Update(m.waitLibrary()())
	assert.Nil(t, cmd)
	assert.Len(t, m.images, 2)
}

func TestSlideshowQuit(t *testing.T) {
	m := newTestSlideshow(&stubApplier{}, SlideshowConfig{})
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestSlideshowWithBase(t *testing.T) {
	base := NewBaseUI(context.Background(), DefaultShutdownConfig())
	m := newTestSlideshow(&stubApplier{}, SlideshowConfig{Images: []string{"/walls/a.png"}})
	m.SetBase(base)

	m.Update(slideAppliedMsg{path: "/walls/a.png"})
	logs := base.GetLogs()
	require.NotEmpty(t, logs)
	assert.Contains(t, logs[len(logs)-1].Message, "a.png")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, base.IsShuttingDown())
	assert.Error(t, base.Context().Err())
	assert.NoError(t, m.OnShutdown())
}

func TestSlideshowView(t *testing.T) {
	m := newTestSlideshow(&stubApplier{}, SlideshowConfig{DisplayID: 1, Images: []string{"/walls/a.png"}, Interval: time.Minute})
	view := m.View()
	for _, want := range []string{"SLIDESHOW", "Running", "none yet", "1 image(s)", "1m0s", "[space]"} {
		assert.Contains(t, view, want)
	}

	m.paused = true
	assert.Contains(t, m.View(), "Paused")
}

func TestSlideshowStartsWhenLibraryFillsUp(t *testing.T) {
	applier := &stubApplier{}
	m := newTestSlideshow(applier, SlideshowConfig{Updates: make(chan []string)})

	_, cmd := m.Update(libraryUpdateMsg{images: []string{"/walls/new.png"}, ok: true})
	require.NotNil(t, cmd)
	assert.True(t, m.applying)
}
