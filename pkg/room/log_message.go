package room

import (
	"colorclash-server/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages keeps the most recent game log messages for clients that join later
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessages(messages []*playable.LogMessage) {
	m := append(d.logMessages, messages...)
	if count := len(m); count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}

// LogMessages returns a copy of the retained log messages
func (d *Dealer) LogMessages() []*playable.LogMessage {
	done := make(chan []*playable.LogMessage, 1)
	d.execInRunLoop <- func() {
		done <- append([]*playable.LogMessage(nil), d.logMessages...)
	}

	select {
	case messages := <-done:
		return messages
	case <-d.close:
		return nil
	}
}
