package buffer

import (
	tea "charm.land/bubbletea/v2"

	"github.com/parley-irc/parley/internal/keys"
)

// Tasks started by a component resolve to that component's internal
// messages, which need re-tagging before the next Update can route them.
// asScrollMsg and asInputMsg classify a resolved result; the tag helpers
// below wrap a whole task for a specific variant slot.

func asScrollMsg(m tea.Msg) scrollMsg {
	if sm, ok := m.(scrollMsg); ok {
		return sm
	}
	return scrollRaw{msg: m}
}

func asInputMsg(m tea.Msg) inputMsg {
	if im, ok := m.(inputMsg); ok {
		return im
	}
	return inputRaw{msg: m}
}

func tagChannelScroll(cmd tea.Cmd) tea.Cmd {
	return wrapCmd(cmd, func(m tea.Msg) tea.Msg { return channelMsg{msg: channelScroll{msg: asScrollMsg(m)}} })
}

func tagChannelInput(cmd tea.Cmd) tea.Cmd {
	return wrapCmd(cmd, func(m tea.Msg) tea.Msg { return channelMsg{msg: channelInput{msg: asInputMsg(m)}} })
}

func tagServerScroll(cmd tea.Cmd) tea.Cmd {
	return wrapCmd(cmd, func(m tea.Msg) tea.Msg { return serverMsg{msg: serverScroll{msg: asScrollMsg(m)}} })
}

func tagServerInput(cmd tea.Cmd) tea.Cmd {
	return wrapCmd(cmd, func(m tea.Msg) tea.Msg { return serverMsg{msg: serverInput{msg: asInputMsg(m)}} })
}

func tagQueryScroll(cmd tea.Cmd) tea.Cmd {
	return wrapCmd(cmd, func(m tea.Msg) tea.Msg { return queryMsg{msg: queryScroll{msg: asScrollMsg(m)}} })
}

func tagQueryInput(cmd tea.Cmd) tea.Cmd {
	return wrapCmd(cmd, func(m tea.Msg) tea.Msg { return queryMsg{msg: queryInput{msg: asInputMsg(m)}} })
}

func tagLogsScroll(cmd tea.Cmd) tea.Cmd {
	return wrapCmd(cmd, func(m tea.Msg) tea.Msg { return logsMsg{msg: logsScroll{msg: asScrollMsg(m)}} })
}

// tagChannel re-tags a task by the slot its originating message addressed.
func tagChannel(in channelMessage, cmd tea.Cmd) tea.Cmd {
	if _, ok := in.(channelScroll); ok {
		return tagChannelScroll(cmd)
	}
	return tagChannelInput(cmd)
}

func tagServer(in serverMessage, cmd tea.Cmd) tea.Cmd {
	if _, ok := in.(serverScroll); ok {
		return tagServerScroll(cmd)
	}
	return tagServerInput(cmd)
}

func tagQuery(in queryMessage, cmd tea.Cmd) tea.Cmd {
	if _, ok := in.(queryScroll); ok {
		return tagQueryScroll(cmd)
	}
	return tagQueryInput(cmd)
}

// KeyMessage translates a key press into a message for the active variant.
// Keys the variant has no use for report false and stay with the caller.
func (b *Buffer) KeyMessage(key tea.KeyPressMsg) (Message, bool) {
	switch b.kind {
	case KindChannel:
		return b.channelKey(key)
	case KindServer:
		return b.bufferKey(key, func(m inputMsg) Message { return serverMsg{msg: serverInput{msg: m}} },
			func(m scrollMsg) Message { return serverMsg{msg: serverScroll{msg: m}} })
	case KindQuery:
		return b.bufferKey(key, func(m inputMsg) Message { return queryMsg{msg: queryInput{msg: m}} },
			func(m scrollMsg) Message { return queryMsg{msg: queryScroll{msg: m}} })
	case KindFileTransfers:
		return b.fileTransfersKey(key)
	case KindLogs:
		switch key.String() {
		case keys.Up, keys.Down, keys.PgUp, keys.PgDown:
			return logsMsg{msg: logsScroll{msg: scrollRaw{msg: key}}}, true
		}
		return nil, false
	}
	return nil, false
}

// channelKey routes keys between the composer, the nicklist, and the
// member action menu.
func (b *Buffer) channelKey(key tea.KeyPressMsg) (Message, bool) {
	c := b.channel

	if c.menu.open {
		switch key.String() {
		case keys.Up:
			return channelMsg{msg: channelUserContext{msg: userContextMove{delta: -1}}}, true
		case keys.Down:
			return channelMsg{msg: channelUserContext{msg: userContextMove{delta: 1}}}, true
		case keys.Enter:
			return channelMsg{msg: channelUserContext{msg: userContextPick{}}}, true
		case keys.Escape:
			return channelMsg{msg: channelUserContext{msg: userContextClose{}}}, true
		}
		return nil, false
	}

	if c.nicklistFocused {
		switch key.String() {
		case keys.Up:
			return channelMsg{msg: channelNicklistMove{delta: -1}}, true
		case keys.Down:
			return channelMsg{msg: channelNicklistMove{delta: 1}}, true
		case keys.Enter:
			return channelMsg{msg: channelNicklistPick{}}, true
		case keys.Escape, keys.CtrlY:
			return channelMsg{msg: channelNicklistToggle{}}, true
		}
		return nil, false
	}

	switch key.String() {
	case keys.CtrlY:
		return channelMsg{msg: channelNicklistToggle{}}, true
	case keys.PgUp, keys.PgDown:
		return channelMsg{msg: channelScroll{msg: scrollRaw{msg: key}}}, true
	case keys.CtrlUp:
		return channelMsg{msg: channelScroll{msg: scrollToTop{}}}, true
	case keys.CtrlDown:
		return channelMsg{msg: channelScroll{msg: scrollToBottom{}}}, true
	case keys.Enter:
		return channelMsg{msg: channelInput{msg: inputSubmit{}}}, true
	case keys.Escape:
		return nil, false
	}
	return channelMsg{msg: channelInput{msg: inputKey{key: key}}}, true
}

// bufferKey is the shared routing for composer-plus-scrollback variants.
func (b *Buffer) bufferKey(key tea.KeyPressMsg, input func(inputMsg) Message, scroll func(scrollMsg) Message) (Message, bool) {
	switch key.String() {
	case keys.PgUp, keys.PgDown:
		return scroll(scrollRaw{msg: key}), true
	case keys.CtrlUp:
		return scroll(scrollToTop{}), true
	case keys.CtrlDown:
		return scroll(scrollToBottom{}), true
	case keys.Enter:
		return input(inputSubmit{}), true
	case keys.Escape:
		return nil, false
	}
	return input(inputKey{key: key}), true
}

func (b *Buffer) fileTransfersKey(key tea.KeyPressMsg) (Message, bool) {
	switch key.String() {
	case keys.Up:
		return fileTransfersMsg{msg: fileTransfersMove{delta: -1}}, true
	case keys.Down:
		return fileTransfersMsg{msg: fileTransfersMove{delta: 1}}, true
	case keys.Enter:
		return fileTransfersMsg{msg: fileTransfersApprove{}}, true
	case "x":
		return fileTransfersMsg{msg: fileTransfersCancel{}}, true
	case "c":
		return fileTransfersMsg{msg: fileTransfersClear{}}, true
	}
	return nil, false
}

// MouseMessage translates a wheel event into a scroll message for variants
// with scrollback.
func (b *Buffer) MouseMessage(msg tea.MouseWheelMsg) (Message, bool) {
	switch b.kind {
	case KindChannel:
		return channelMsg{msg: channelScroll{msg: scrollRaw{msg: msg}}}, true
	case KindServer:
		return serverMsg{msg: serverScroll{msg: scrollRaw{msg: msg}}}, true
	case KindQuery:
		return queryMsg{msg: queryScroll{msg: scrollRaw{msg: msg}}}, true
	case KindLogs:
		return logsMsg{msg: logsScroll{msg: scrollRaw{msg: msg}}}, true
	}
	return nil, false
}

// Forward wraps a component-internal message, such as a cursor blink, for
// the active variant's composer.
func (b *Buffer) Forward(msg tea.Msg) (Message, bool) {
	switch b.kind {
	case KindChannel:
		return channelMsg{msg: channelInput{msg: inputRaw{msg: msg}}}, true
	case KindServer:
		return serverMsg{msg: serverInput{msg: inputRaw{msg: msg}}}, true
	case KindQuery:
		return queryMsg{msg: queryInput{msg: inputRaw{msg: msg}}}, true
	}
	return nil, false
}
