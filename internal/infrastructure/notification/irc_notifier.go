// Package notification delivers build status messages to external sinks.
package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/bensternthal/basket/internal/domain/pipeline"
	"github.com/bensternthal/basket/internal/pkg/logger"

	irc "github.com/thoj/go-ircevent"
)

const defaultIRCPort = "6667"

// IRCNotifier posts one-shot build status messages to an IRC channel.
// It connects, joins, delivers and quits; build notification has no use
// for a persistent connection.
type IRCNotifier struct {
	server    string
	channel   string
	nick      string
	useNotice bool
	logger    logger.Logger
}

// NewIRCNotifier creates a notifier for a channel given in server#channel
// form, e.g. irc.mozilla.org#newsletter.
func NewIRCNotifier(target, nick string, useNotice bool, logger logger.Logger) (pipeline.Notifier, error) {
	server, channel, ok := strings.Cut(target, "#")
	if !ok || server == "" || channel == "" {
		return nil, fmt.Errorf("invalid irc target %q: expected server#channel", target)
	}

	if !strings.Contains(server, ":") {
		server += ":" + defaultIRCPort
	}
	if nick == "" {
		nick = "basket-ci"
	}

	return &IRCNotifier{
		server:    server,
		channel:   "#" + channel,
		nick:      nick,
		useNotice: useNotice,
		logger:    logger,
	}, nil
}

// Notify connects to the server, delivers the message to the channel and
// disconnects. It returns once the server connection is closed or ctx ends.
func (n *IRCNotifier) Notify(ctx context.Context, message string) error {
	conn := irc.IRC(n.nick, n.nick)
	conn.QuitMessage = ""

	// 001 is the welcome reply; the server accepts commands from here on.
	conn.AddCallback("001", func(*irc.Event) {
		conn.Join(n.channel)
		if n.useNotice {
			conn.Notice(n.channel, message)
		} else {
			conn.Privmsg(n.channel, message)
		}
		conn.Quit()
	})

	if err := conn.Connect(n.server); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", n.server, err)
	}

	done := make(chan struct{})
	go func() {
		conn.Loop()
		close(done)
	}()

	select {
	case <-done:
		n.logger.Info("Delivered IRC notification to ", n.channel)
		return nil
	case <-ctx.Done():
		conn.Disconnect()
		<-done
		return fmt.Errorf("irc notification aborted: %w", ctx.Err())
	}
}
