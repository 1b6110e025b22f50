package buffer

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/parley-irc/parley/internal/theme"
	"github.com/parley-irc/parley/internal/transfer"
)

// FileTransfers is the buffer listing DCC transfers with per-row actions.
// The transfer manager stays with the caller and is lent in per call, like
// history and connection state.
type FileTransfers struct {
	selected int
	width    int
	height   int
	focused  bool
}

// fileTransfersMessage is the transfer list's local message union.
type fileTransfersMessage interface{ fileTransfersMessage() }

type (
	fileTransfersMove    struct{ delta int }
	fileTransfersApprove struct{}
	fileTransfersCancel  struct{}
	fileTransfersClear   struct{}
)

func (fileTransfersMove) fileTransfersMessage()    {}
func (fileTransfersApprove) fileTransfersMessage() {}
func (fileTransfersCancel) fileTransfersMessage()  {}
func (fileTransfersClear) fileTransfersMessage()   {}

// NewFileTransfers creates the transfer list buffer.
func NewFileTransfers() *FileTransfers {
	return &FileTransfers{}
}

func (f *FileTransfers) setSize(width, height int) {
	f.width = width
	f.height = height
}

func (f *FileTransfers) setFocused(focused bool) {
	f.focused = focused
}

func (f *FileTransfers) reset() {
	f.selected = 0
}

func (f *FileTransfers) update(msg fileTransfersMessage, transfers *transfer.Manager) tea.Cmd {
	switch msg := msg.(type) {
	case fileTransfersMove:
		f.selected += msg.delta
		if f.selected < 0 {
			f.selected = 0
		}
		if n := transfers.Len(); f.selected >= n && n > 0 {
			f.selected = n - 1
		}
	case fileTransfersApprove:
		if t, ok := f.selectedTransfer(transfers); ok {
			transfers.Approve(t.ID)
		}
	case fileTransfersCancel:
		if t, ok := f.selectedTransfer(transfers); ok {
			transfers.Cancel(t.ID)
		}
	case fileTransfersClear:
		transfers.ClearFinished()
		f.selected = 0
	}
	return nil
}

func (f *FileTransfers) selectedTransfer(transfers *transfer.Manager) (transfer.Transfer, bool) {
	list := transfers.List()
	if f.selected >= len(list) {
		return transfer.Transfer{}, false
	}
	return list[f.selected], true
}

// view renders one row per transfer with direction, peer, and progress.
func (f *FileTransfers) view(transfers *transfer.Manager, th theme.Theme) string {
	list := transfers.List()

	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Primary)).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Text))
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.TextInverse)).
		Background(lipgloss.Color(th.GetBgSelected()))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.TextMuted))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Error))

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("File Transfers"))
	if len(list) == 0 {
		sb.WriteString("\n" + mutedStyle.Render("No transfers"))
		return sb.String()
	}

	for i, t := range list {
		sb.WriteString("\n")
		row := fmt.Sprintf("%s %s %s  %s", t.Direction, t.Peer, t.Filename, f.describe(t))
		switch {
		case f.focused && i == f.selected:
			sb.WriteString(selectedStyle.Render(row))
		case t.Status == transfer.Failed:
			sb.WriteString(errorStyle.Render(row))
		case t.Done():
			sb.WriteString(mutedStyle.Render(row))
		default:
			sb.WriteString(rowStyle.Render(row))
		}
	}

	sb.WriteString("\n\n" + mutedStyle.Render("enter approve · x cancel · c clear finished"))
	return sb.String()
}

func (f *FileTransfers) describe(t transfer.Transfer) string {
	switch t.Status {
	case transfer.PendingApproval:
		return fmt.Sprintf("awaiting approval (%s)", humanize.Bytes(uint64(t.Size)))
	case transfer.Queued:
		return "queued"
	case transfer.Active:
		return fmt.Sprintf("%.0f%% of %s", t.Progress()*100, humanize.Bytes(uint64(t.Size)))
	case transfer.Completed:
		return fmt.Sprintf("done (%s)", humanize.Bytes(uint64(t.Size)))
	case transfer.Failed:
		return "failed: " + t.Error
	case transfer.Cancelled:
		return "cancelled"
	}
	return ""
}
