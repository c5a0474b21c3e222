//go:build !windows

package autostart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommand(t *testing.T) {
	assert.Equal(t, "/usr/bin/notion-presence run", NewManagerFor("/usr/bin/notion-presence", "").Command())
	assert.Equal(t, `"/Applications/Notion Presence/np" run`, NewManagerFor("/Applications/Notion Presence/np", "").Command())
}

func TestLaunchAgentPlist(t *testing.T) {
	plist := launchAgentPlist("/Applications/A&B/np", []string{"run"})

	assert.Contains(t, plist, "<string>com.notionpresence.agent</string>")
	assert.Contains(t, plist, "\t\t<string>/Applications/A&amp;B/np</string>\n\t\t<string>run</string>\n")
	assert.Contains(t, plist, "<key>RunAtLoad</key>\n\t<true/>")
}
