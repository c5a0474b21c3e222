//go:build !windows

package discord

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
)

// socketDirs lists the directories the desktop client may place its socket in
func socketDirs() []string {
	var dirs []string
	for _, env := range []string{"XDG_RUNTIME_DIR", "TMPDIR", "TMP", "TEMP"} {
		if dir := os.Getenv(env); dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return append(dirs, "/tmp")
}

func defaultDial(ctx context.Context) (net.Conn, error) {
	var d net.Dialer
	for _, dir := range socketDirs() {
		for i := 0; i < maxPipes; i++ {
			path := filepath.Join(dir, fmt.Sprintf("%s%d", pipePrefix, i))
			conn, err := d.DialContext(ctx, "unix", path)
			if err == nil {
				return conn, nil
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
		}
	}
	return nil, ErrNoSocket
}
