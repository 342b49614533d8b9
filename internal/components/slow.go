package components

import (
	"bytes"
	"errors"
	"html/template"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// SlowLoadingText is shown until the delay has elapsed
	SlowLoadingText = "Chargement du composant lent..."
	// SlowLoadedText is shown once the delay has elapsed
	SlowLoadedText = "⏱️ Composant lent affiché après 3 secondes."

	DefaultSlowDelay = 3 * time.Second
)

var (
	ErrAlreadyMounted = errors.New("component already mounted")
	ErrUnmounted      = errors.New("component was unmounted")
)

var slowTemplate = template.Must(template.New("slow").Parse(
	`<div class="slow" data-component="slow" data-id="{{.ID}}" style="border: 1px solid red; padding: 1rem">` +
		`<p>{{.Text}}</p></div>`))

// Slow simulates a component that takes a while to become ready. It renders
// SlowLoadingText from the moment it exists and flips to SlowLoadedText once
// its timer fires. Unmounting stops the timer, after which it never flips.
type Slow struct {
	ID uuid.UUID

	delay time.Duration
	clock Clock

	mu        sync.Mutex
	visible   bool
	mounted   bool
	unmounted bool
	timer     Stopper
	revealed  chan struct{}
}

// SlowOption configures a Slow component
type SlowOption func(*Slow)

// WithDelay overrides the reveal delay. Non-positive values are ignored.
func WithDelay(d time.Duration) SlowOption {
	return func(s *Slow) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithClock sets the timer source
func WithClock(c Clock) SlowOption {
	return func(s *Slow) {
		if c != nil {
			s.clock = c
		}
	}
}

// NewSlow creates an unmounted Slow component
func NewSlow(opts ...SlowOption) *Slow {
	s := &Slow{
		ID:       uuid.New(),
		delay:    DefaultSlowDelay,
		clock:    RealClock,
		revealed: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSlowFactory returns a Factory building Slow components with opts.
// Props are ignored.
func NewSlowFactory(opts ...SlowOption) Factory {
	return func(Props) (Component, error) {
		return NewSlow(opts...), nil
	}
}

func (s *Slow) Name() string { return "Slow" }

// Delay returns the configured reveal delay
func (s *Slow) Delay() time.Duration { return s.delay }

// Mount arms the reveal timer.
func (s *Slow) Mount() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unmounted {
		return ErrUnmounted
	}
	if s.mounted {
		return ErrAlreadyMounted
	}
	s.mounted = true
	s.timer = s.clock.AfterFunc(s.delay, s.reveal)
	return nil
}

// Unmount stops the reveal timer. It reports whether the timer was still
// pending, i.e. the component was torn down while loading.
func (s *Slow) Unmount() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unmounted {
		return false
	}
	s.unmounted = true
	if s.timer == nil {
		return false
	}
	return s.timer.Stop() && !s.visible
}

func (s *Slow) reveal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unmounted || s.visible {
		return
	}
	s.visible = true
	close(s.revealed)
}

// Visible reports whether the loaded text is showing
func (s *Slow) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Revealed is closed when the component becomes visible. It stays open
// forever if the component is unmounted first.
func (s *Slow) Revealed() <-chan struct{} {
	return s.revealed
}

// Text returns the text for the current state
func (s *Slow) Text() string {
	if s.Visible() {
		return SlowLoadedText
	}
	return SlowLoadingText
}

// Render returns the bordered block for the current state
func (s *Slow) Render() (template.HTML, error) {
	var buf bytes.Buffer
	err := slowTemplate.Execute(&buf, struct {
		ID   string
		Text string
	}{
		ID:   s.ID.String(),
		Text: s.Text(),
	})
	if err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
