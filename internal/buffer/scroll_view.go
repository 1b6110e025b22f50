package buffer

import (
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
)

// scrollView wraps a viewport over rendered history and reports when the
// reader scrolls back to the oldest loaded record.
type scrollView struct {
	vp     viewport.Model
	width  int
	height int
}

// scroll view messages.
type (
	scrollToTop    struct{}
	scrollToBottom struct{}
	scrollRaw      struct{ msg tea.Msg }
)

type scrollMsg interface{ scrollMsg() }

func (scrollToTop) scrollMsg()    {}
func (scrollToBottom) scrollMsg() {}
func (scrollRaw) scrollMsg()      {}

func newScrollView() scrollView {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	return scrollView{vp: vp}
}

func (s *scrollView) setSize(width, height int) {
	s.width = width
	s.height = height
	s.vp.SetWidth(width)
	s.vp.SetHeight(height)
}

// update applies a scroll message. The returned bool reports whether the
// viewport reached the top as a result, which is the cue to load older
// history.
func (s *scrollView) update(msg scrollMsg) (tea.Cmd, bool) {
	switch m := msg.(type) {
	case scrollToTop:
		s.vp.GotoTop()
		return nil, true
	case scrollToBottom:
		s.vp.GotoBottom()
		return nil, false
	case scrollRaw:
		wasAtTop := s.vp.ScrollPercent() <= 0
		var cmd tea.Cmd
		s.vp, cmd = s.vp.Update(m.msg)
		atTop := s.vp.ScrollPercent() <= 0
		return cmd, atTop && !wasAtTop
	}
	return nil, false
}

// scrollToStart returns a task that scrolls to the oldest record when applied.
func (s *scrollView) scrollToStart() tea.Cmd {
	return func() tea.Msg { return scrollToTop{} }
}

// scrollToEnd returns a task that scrolls to the newest record when applied.
func (s *scrollView) scrollToEnd() tea.Cmd {
	return func() tea.Msg { return scrollToBottom{} }
}

// view renders content into the viewport without mutating stored state.
func (s *scrollView) view(content string) string {
	vp := s.vp
	vp.SetContent(content)
	return vp.View()
}
