//go:build unit
// +build unit

package notification

import (
	"testing"

	"github.com/bensternthal/basket/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIRCNotifier_ParsesTarget(t *testing.T) {
	log := testutil.SetupTestLogger(t)

	n, err := NewIRCNotifier("irc.mozilla.org#newsletter", "", true, log)
	require.NoError(t, err)

	notifier, ok := n.(*IRCNotifier)
	require.True(t, ok)
	assert.Equal(t, "irc.mozilla.org:6667", notifier.server)
	assert.Equal(t, "#newsletter", notifier.channel)
	assert.Equal(t, "basket-ci", notifier.nick)
	assert.True(t, notifier.useNotice)
}

func TestNewIRCNotifier_KeepsExplicitPort(t *testing.T) {
	log := testutil.SetupTestLogger(t)

	n, err := NewIRCNotifier("irc.libera.chat:6697#basket", "basketbot", false, log)
	require.NoError(t, err)

	notifier := n.(*IRCNotifier)
	assert.Equal(t, "irc.libera.chat:6697", notifier.server)
	assert.Equal(t, "#basket", notifier.channel)
	assert.Equal(t, "basketbot", notifier.nick)
}

func TestNewIRCNotifier_RejectsBadTargets(t *testing.T) {
	log := testutil.SetupTestLogger(t)

	for _, target := range []string{"", "irc.mozilla.org", "#newsletter", "irc.mozilla.org#"} {
		_, err := NewIRCNotifier(target, "", true, log)
		assert.Error(t, err, "target %q should be rejected", target)
	}
}
