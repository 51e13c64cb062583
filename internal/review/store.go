// Package review holds the review-state synchronization core: the shared
// state store, the services that mutate field state and chat through the
// backend gateway, and the share-link helpers.
package review

import "sync"

// State is the cross-cutting UI state of one review session. It carries
// flags and the current progress number only, never field content; field
// content is always re-fetched through the gateway so the store cannot
// become a second source of truth.
type State struct {
	Progress        int
	SelectedField   string
	SuggestionField string
	ChatOpen        bool
	HideComplete    bool
	Changed         bool
}

// Store is the process-wide state container. It is constructed once at
// startup and passed by reference to the services and the UI; there is no
// package-level instance.
//
// Writes replace exactly one slot and never fail. Subscribers are notified
// synchronously after the slot is replaced; a reader in a later callback
// must re-read rather than cache a value across turns.
type Store struct {
	mu         sync.RWMutex
	state      State
	secretPass string
	subs       map[int]func(State)
	nextSub    int
}

// NewStore creates a store with the fixed share-link passphrase. The
// passphrase never changes for the lifetime of the process.
func NewStore(secretPass string) *Store {
	return &Store{secretPass: secretPass, subs: make(map[int]func(State))}
}

// SecretPass returns the share-link key material.
func (s *Store) SecretPass() string { return s.secretPass }

// Snapshot returns a copy of the whole state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) Progress() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Progress
}

func (s *Store) SelectedField() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.SelectedField
}

func (s *Store) SuggestionField() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.SuggestionField
}

func (s *Store) ChatOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ChatOpen
}

func (s *Store) HideComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.HideComplete
}

func (s *Store) Changed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Changed
}

// SetProgress replaces the progress slot. ProgressService is the sole
// writer of this slot.
func (s *Store) SetProgress(percent int) {
	s.write(func(st *State) { st.Progress = percent })
}

// SelectField replaces the selected-field slot. Empty id clears it.
func (s *Store) SelectField(id string) {
	s.write(func(st *State) { st.SelectedField = id })
}

// SetSuggestionField replaces the suggestion-target slot.
func (s *Store) SetSuggestionField(id string) {
	s.write(func(st *State) { st.SuggestionField = id })
}

func (s *Store) SetChatOpen(open bool) {
	s.write(func(st *State) { st.ChatOpen = open })
}

func (s *Store) SetHideComplete(hide bool) {
	s.write(func(st *State) { st.HideComplete = hide })
}

func (s *Store) SetChanged(changed bool) {
	s.write(func(st *State) { st.Changed = changed })
}

// Subscribe registers a callback invoked after every write. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) write(mutate func(*State)) {
	s.mu.Lock()
	mutate(&s.state)
	snapshot := s.state
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}
