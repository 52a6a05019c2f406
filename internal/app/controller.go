// Package app orchestrates the dictation pipeline: hold a hotkey to
// record, release to transcribe, clean up, and insert the text into the
// application that had focus when recording began.
package app

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jxucoder/openmumble/frontapp"
	"github.com/jxucoder/openmumble/insert"
)

// State is the controller's pipeline state.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateTranscribing
	StateCleaning
)

func (s State) String() string {
	switch s {
	case StateRecording:
		return "recording"
	case StateTranscribing:
		return "transcribing"
	case StateCleaning:
		return "cleaning"
	default:
		return "idle"
	}
}

// Recorder captures microphone audio.
type Recorder interface {
	Start() error
	Stop() ([]float32, error)
}

// Transcriber converts captured samples to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []float32, language string) (string, error)
}

// Cleaner rewrites a raw transcript into polished text.
type Cleaner interface {
	Process(ctx context.Context, text string) (string, error)
}

// Inserter delivers text into the target application.
type Inserter interface {
	Insert(text string, targetPID int, targetBundleID string) *insert.Report
}

// AppTracker reports and reactivates the frontmost application.
type AppTracker interface {
	Frontmost() (frontapp.App, error)
	Activate(pid int) error
}

// Notifier surfaces pipeline progress and errors to the user.
type Notifier interface {
	Info(message string)
	Error(message string)
}

// Config holds controller behavior settings.
type Config struct {
	Language       string
	CleanupEnabled bool
}

// insertSettleDelay gives the reactivated target time to accept
// keyboard focus before events are posted at it.
const insertSettleDelay = 200 * time.Millisecond

// session tracks one press-to-release dictation. Exactly one session
// exists at a time; every path back to Idle discards it.
type session struct {
	id           string
	samples      []float32
	raw          string
	targetPID    int
	targetBundle string
	startedAt    time.Time
}

type message interface{}

type pressMsg struct{}
type releaseMsg struct{}

type transcribedMsg struct {
	id   string
	text string
	err  error
}

type cleanedMsg struct {
	id   string
	text string
	err  error
}

// Controller runs the dictation state machine. All session state is
// owned by a single loop goroutine; platform-affine work (activation,
// insertion) happens on that goroutine. Transcription and cleanup are
// the only asynchronous calls, and at most one is outstanding.
type Controller struct {
	rec   Recorder
	stt   Transcriber
	clean Cleaner
	eng   Inserter
	apps  AppTracker
	notes Notifier
	cfg   Config

	msgs   chan message
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	state     State
	sess      *session
	lastError string

	sleep func(time.Duration)
}

// New creates a Controller. clean may be nil to disable cleanup.
func New(rec Recorder, stt Transcriber, clean Cleaner, eng Inserter, apps AppTracker, notes Notifier, cfg Config) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		rec:    rec,
		stt:    stt,
		clean:  clean,
		eng:    eng,
		apps:   apps,
		notes:  notes,
		cfg:    cfg,
		msgs:   make(chan message, 16),
		ctx:    ctx,
		cancel: cancel,
		sleep:  time.Sleep,
	}
}

// Start launches the controller loop.
func (c *Controller) Start() {
	c.wg.Add(1)
	go c.loop()
}

// Close cancels any outstanding work and stops the loop.
func (c *Controller) Close() {
	c.cancel()
	c.wg.Wait()
}

// Press signals a hotkey press edge.
func (c *Controller) Press() { c.post(pressMsg{}) }

// Release signals a hotkey release edge.
func (c *Controller) Release() { c.post(releaseMsg{}) }

// State returns the current pipeline state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastError returns the most recent session error. It is cleared by
// the next successful session.
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

func (c *Controller) post(m message) {
	select {
	case c.msgs <- m:
	case <-c.ctx.Done():
	}
}

func (c *Controller) loop() {
	defer c.wg.Done()
	for {
		select {
		case <-c.ctx.Done():
			return
		case m := <-c.msgs:
			c.handle(m)
		}
	}
}

func (c *Controller) handle(m message) {
	switch m := m.(type) {
	case pressMsg:
		c.handlePress()
	case releaseMsg:
		c.handleRelease()
	case transcribedMsg:
		c.handleTranscribed(m)
	case cleanedMsg:
		c.handleCleaned(m)
	}
}

func (c *Controller) handlePress() {
	if c.State() != StateIdle {
		slog.Debug("press ignored", "state", c.State())
		return
	}

	sess := &session{id: uuid.NewString(), startedAt: time.Now()}
	if app, err := c.apps.Frontmost(); err == nil {
		sess.targetPID = app.PID
		sess.targetBundle = app.BundleID
	} else {
		slog.Debug("frontmost app unavailable", "error", err)
	}

	if err := c.rec.Start(); err != nil {
		slog.Error("start capture", "error", err)
		c.fail("microphone unavailable: " + err.Error())
		c.reset()
		return
	}

	c.mu.Lock()
	c.sess = sess
	c.state = StateRecording
	c.mu.Unlock()
	slog.Info("recording started", "session", sess.id, "target", sess.targetBundle)
}

func (c *Controller) handleRelease() {
	if c.State() != StateRecording {
		slog.Debug("release ignored", "state", c.State())
		return
	}

	samples, err := c.rec.Stop()
	if err != nil {
		slog.Error("stop capture", "error", err)
		c.fail("capture failed: " + err.Error())
		c.reset()
		return
	}
	if len(samples) == 0 {
		slog.Debug("empty capture, session discarded")
		c.reset()
		return
	}

	c.mu.Lock()
	sess := c.sess
	sess.samples = samples
	c.state = StateTranscribing
	c.mu.Unlock()

	slog.Info("transcribing", "session", sess.id, "samples", len(samples))
	go func(id string, audio []float32) {
		text, err := c.stt.Transcribe(c.ctx, audio, c.cfg.Language)
		c.post(transcribedMsg{id: id, text: text, err: err})
	}(sess.id, samples)
}

func (c *Controller) handleTranscribed(m transcribedMsg) {
	sess := c.currentSession(StateTranscribing, m.id)
	if sess == nil {
		return
	}

	if m.err != nil {
		slog.Error("transcription", "error", m.err)
		c.fail("transcription failed: " + m.err.Error())
		c.reset()
		return
	}
	text := strings.TrimSpace(m.text)
	if text == "" {
		slog.Debug("no speech detected, session discarded")
		c.reset()
		return
	}

	c.mu.Lock()
	sess.raw = text
	c.mu.Unlock()

	if !c.cfg.CleanupEnabled || c.clean == nil {
		c.finish(sess, text)
		return
	}

	c.mu.Lock()
	c.state = StateCleaning
	c.mu.Unlock()
	go func(id, raw string) {
		cleaned, err := c.clean.Process(c.ctx, raw)
		c.post(cleanedMsg{id: id, text: cleaned, err: err})
	}(sess.id, text)
}

func (c *Controller) handleCleaned(m cleanedMsg) {
	sess := c.currentSession(StateCleaning, m.id)
	if sess == nil {
		return
	}

	text := m.text
	if m.err != nil {
		// Cleanup is best-effort: fall back to the raw transcript.
		slog.Warn("cleanup failed, using raw transcript", "error", m.err)
		text = sess.raw
	}
	c.finish(sess, text)
}

// finish reactivates the original target and inserts the final text.
// It always returns the controller to Idle.
func (c *Controller) finish(sess *session, text string) {
	if sess.targetPID > 0 {
		if err := c.apps.Activate(sess.targetPID); err != nil {
			slog.Warn("reactivate target", "pid", sess.targetPID, "error", err)
		}
		c.sleep(insertSettleDelay)
	}

	rep := c.eng.Insert(text, sess.targetPID, sess.targetBundle)
	if rep.OK {
		slog.Info("inserted",
			"session", sess.id,
			"strategy", rep.Strategy,
			"chars", len(text),
			"elapsed", time.Since(sess.startedAt))
		c.mu.Lock()
		c.lastError = ""
		c.mu.Unlock()
	} else {
		slog.Error("insertion exhausted", "session", sess.id, "trail", rep.Trail())
		c.fail("could not insert text into " + rep.BundleID)
	}
	c.reset()
}

// currentSession returns the live session when the controller is in
// want and the message belongs to it, or nil for stale messages.
func (c *Controller) currentSession(want State, id string) *session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != want || c.sess == nil || c.sess.id != id {
		slog.Debug("stale pipeline message dropped", "state", c.state, "id", id)
		return nil
	}
	return c.sess
}

func (c *Controller) fail(msg string) {
	c.mu.Lock()
	c.lastError = msg
	c.mu.Unlock()
	if c.notes != nil {
		c.notes.Error(msg)
	}
}

// reset discards the session and returns to Idle. Runs on every path
// out of a session so target identity never leaks into the next one.
func (c *Controller) reset() {
	c.mu.Lock()
	c.sess = nil
	c.state = StateIdle
	c.mu.Unlock()
}
