// Package episodes holds the state behind the episodes screen: the paged
// episode list and the currently selected video.
//
// The screen never mutates state directly. It subscribes for snapshots and
// requests changes through OnPlaySelected and LoadMore.
package episodes

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"portal/internal/media"
	"portal/internal/paging"
	"portal/internal/provider"
)

// State is a snapshot of the screen state.
// PlayVideo is blank when nothing is playing, otherwise the VideoURL of the
// selected episode.
type State struct {
	Episodes  paging.Snapshot[media.Episode]
	PlayVideo string
}

// Playing reports whether a video is selected.
func (s State) Playing() bool {
	return strings.TrimSpace(s.PlayVideo) != ""
}

// ViewModel owns the screen state.
type ViewModel struct {
	pager *paging.Pager[media.Episode]

	// notifyMu keeps snapshots reaching listeners in the order they were taken.
	notifyMu sync.Mutex

	mu        sync.Mutex
	playVideo string
	listeners map[int]func(State)
	nextID    int
}

// NewViewModel creates a view model backed by p.
func NewViewModel(p provider.Provider) *ViewModel {
	fetch := func(ctx context.Context, page int) ([]media.Episode, bool, error) {
		pg, err := p.Episodes(ctx, page)
		if err != nil {
			return nil, false, err
		}
		return pg.Episodes, pg.HasNext, nil
	}

	return &ViewModel{
		pager:     paging.New(fetch),
		listeners: make(map[int]func(State)),
	}
}

// State returns the current snapshot.
func (vm *ViewModel) State() State {
	vm.mu.Lock()
	play := vm.playVideo
	vm.mu.Unlock()

	return State{Episodes: vm.pager.Snapshot(), PlayVideo: play}
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned function removes the subscription.
func (vm *ViewModel) Subscribe(fn func(State)) (unsubscribe func()) {
	vm.mu.Lock()
	id := vm.nextID
	vm.nextID++
	vm.listeners[id] = fn
	vm.mu.Unlock()

	return func() {
		vm.mu.Lock()
		delete(vm.listeners, id)
		vm.mu.Unlock()
	}
}

// OnPlaySelected sets the selected video. "" returns to idle. Selecting the
// value that is already selected changes nothing and notifies nobody.
func (vm *ViewModel) OnPlaySelected(url string) {
	vm.mu.Lock()
	if vm.playVideo == url {
		vm.mu.Unlock()
		return
	}
	vm.playVideo = url
	vm.mu.Unlock()

	if url == "" {
		logrus.Debug("playback cleared")
	} else {
		logrus.WithField("url", url).Info("playback selected")
	}
	vm.notify()
}

// LoadMore fetches the next page of episodes. Calls while a page is in
// flight, or after the last page, do nothing.
func (vm *ViewModel) LoadMore(ctx context.Context) error {
	err := vm.pager.Load(ctx, vm.notify)
	if err != nil {
		logrus.WithError(err).Warn("loading episodes")
	}
	return err
}

// notify delivers the current state to every listener. Listeners run with
// notifyMu held and must not call back into the view model.
func (vm *ViewModel) notify() {
	vm.notifyMu.Lock()
	defer vm.notifyMu.Unlock()

	state := vm.State()

	vm.mu.Lock()
	listeners := make([]func(State), 0, len(vm.listeners))
	for _, fn := range vm.listeners {
		listeners = append(listeners, fn)
	}
	vm.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}
