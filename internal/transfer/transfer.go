// Package transfer tracks DCC file transfers for the file-transfer panel.
// The Manager holds state only; byte movement happens outside the UI loop and
// reports progress back through the Manager's mutators.
package transfer

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/parley-irc/parley/internal/irc"
	"github.com/parley-irc/parley/internal/logger"
)

// Direction distinguishes sends from receives.
type Direction int

const (
	Receive Direction = iota
	Send
)

// String returns a short arrow label used in the panel.
func (d Direction) String() string {
	if d == Send {
		return "↑"
	}
	return "↓"
}

// Status is the lifecycle state of a transfer.
type Status int

const (
	PendingApproval Status = iota // waiting for the user to accept
	Queued                        // accepted, waiting to start
	Active
	Completed
	Failed
	Cancelled
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case PendingApproval:
		return "pending"
	case Queued:
		return "queued"
	case Active:
		return "active"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Transfer is one tracked file transfer.
type Transfer struct {
	ID          uuid.UUID
	Server      irc.Server
	Peer        irc.Nick
	Filename    string
	Direction   Direction
	Status      Status
	Size        int64
	Transferred int64
	StartedAt   time.Time
	Error       string
}

// Progress returns completion in [0, 1].
func (t Transfer) Progress() float64 {
	if t.Size <= 0 {
		return 0
	}
	p := float64(t.Transferred) / float64(t.Size)
	if p > 1 {
		p = 1
	}
	return p
}

// Done reports whether the transfer reached a terminal state.
func (t Transfer) Done() bool {
	return t.Status == Completed || t.Status == Failed || t.Status == Cancelled
}

// Manager tracks all transfers for the session. It is owned by the root model
// and borrowed mutably by the FileTransfers buffer for one update at a time.
type Manager struct {
	transfers map[uuid.UUID]*Transfer
	order     []uuid.UUID // insertion order for stable display

	downloadDir string
	autoAccept  bool
}

// NewManager creates an empty transfer manager.
func NewManager(downloadDir string, autoAccept bool) *Manager {
	return &Manager{
		transfers:   make(map[uuid.UUID]*Transfer),
		downloadDir: downloadDir,
		autoAccept:  autoAccept,
	}
}

// DownloadDir returns the directory incoming files are written to.
func (m *Manager) DownloadDir() string {
	return m.downloadDir
}

// Add registers a new transfer and returns its ID. Incoming transfers start
// pending unless auto-accept is configured; outgoing transfers start queued.
func (m *Manager) Add(t Transfer) uuid.UUID {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.StartedAt.IsZero() {
		t.StartedAt = time.Now()
	}
	if t.Direction == Receive && !m.autoAccept {
		t.Status = PendingApproval
	} else {
		t.Status = Queued
	}

	m.transfers[t.ID] = &t
	m.order = append(m.order, t.ID)
	logger.Info("Transfer: added %s %s from %s (%d bytes)", t.Direction, t.Filename, t.Peer, t.Size)
	return t.ID
}

// Get returns a transfer by ID.
func (m *Manager) Get(id uuid.UUID) (Transfer, bool) {
	if t, ok := m.transfers[id]; ok {
		return *t, true
	}
	return Transfer{}, false
}

// List returns all transfers in insertion order, finished ones last.
func (m *Manager) List() []Transfer {
	list := make([]Transfer, 0, len(m.order))
	for _, id := range m.order {
		list = append(list, *m.transfers[id])
	}
	sort.SliceStable(list, func(i, j int) bool {
		return !list[i].Done() && list[j].Done()
	})
	return list
}

// Len returns the number of tracked transfers.
func (m *Manager) Len() int {
	return len(m.order)
}

// Approve accepts a pending transfer. Returns false if the transfer is
// missing or not pending.
func (m *Manager) Approve(id uuid.UUID) bool {
	t, ok := m.transfers[id]
	if !ok || t.Status != PendingApproval {
		return false
	}
	t.Status = Queued
	logger.Info("Transfer: approved %s", t.Filename)
	return true
}

// Cancel cancels a transfer that has not finished. Returns false if the
// transfer is missing or already done.
func (m *Manager) Cancel(id uuid.UUID) bool {
	t, ok := m.transfers[id]
	if !ok || t.Done() {
		return false
	}
	t.Status = Cancelled
	logger.Info("Transfer: cancelled %s", t.Filename)
	return true
}

// SetProgress records transferred bytes and moves queued transfers to active.
func (m *Manager) SetProgress(id uuid.UUID, transferred int64) {
	t, ok := m.transfers[id]
	if !ok || t.Done() {
		return
	}
	if t.Status == Queued {
		t.Status = Active
	}
	t.Transferred = transferred
	if t.Size > 0 && t.Transferred >= t.Size {
		t.Status = Completed
	}
}

// Fail marks a transfer as failed with a reason.
func (m *Manager) Fail(id uuid.UUID, reason string) {
	t, ok := m.transfers[id]
	if !ok || t.Done() {
		return
	}
	t.Status = Failed
	t.Error = reason
	logger.Warn("Transfer: %s failed: %s", t.Filename, reason)
}

// ClearFinished drops completed, failed, and cancelled transfers.
// Returns how many were removed.
func (m *Manager) ClearFinished() int {
	kept := m.order[:0]
	removed := 0
	for _, id := range m.order {
		if m.transfers[id].Done() {
			delete(m.transfers, id)
			removed++
		} else {
			kept = append(kept, id)
		}
	}
	m.order = kept
	return removed
}
