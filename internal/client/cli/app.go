package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gamekeeper/internal/client/client"
	"github.com/dmitrijs2005/gamekeeper/internal/client/config"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config *config.Config
	api    client.Client
	reader *bufio.Reader
	out    io.Writer

	mu       sync.Mutex
	userName string
	Mode     Mode
}

func NewApp(c *config.Config) (*App, error) {
	if c.ServerURL == "" {
		return nil, errors.New("server URL is not configured")
	}

	api := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if c.Token != "" {
		api.SetToken(c.Token)
	}

	return &App{config: c, api: api, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		fmt.Fprintf(a.out, "Switched to %s mode\n", mode)
	}
}

func (a *App) setUser(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userName = name
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.userName
	if a.Mode != "" {
		if s != "" {
			s += " "
		}
		s += string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) isLoggedIn() bool {
	return a.api.Token() != ""
}

// Run resumes a session from the configured token, if any, and then serves
// the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "GameKeeper CLI (type 'help' for commands)")

	if a.isLoggedIn() {
		if err := a.Verify(ctx); err != nil {
			fmt.Fprintln(a.out, "Stored token rejected:", err)
			a.api.SetToken("")
		}
	}

	go a.StartHeartbeat(ctx, a.config.HeartbeatInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

// StartHeartbeat keeps the player on the online list while logged in and
// tracks server reachability. A rejected token ends the session.
func (a *App) StartHeartbeat(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.beat(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) beat(ctx context.Context) {
	if !a.isLoggedIn() {
		return
	}

	err := a.api.Heartbeat(ctx)
	switch {
	case err == nil:
		a.setMode(ModeOnline)
	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ModeOffline)
	case errors.Is(err, client.ErrUnauthorized):
		a.api.SetToken("")
		a.setUser("")
		fmt.Fprintln(a.out, "Session expired, please log in again")
	}
}
