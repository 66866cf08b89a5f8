package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gamekeeper/internal/client/client"
	"github.com/dmitrijs2005/gamekeeper/internal/client/config"
)

type fakeClient struct {
	mu    sync.Mutex
	token string
	calls []string

	player   *client.Player
	data     *client.SaveData
	created  *client.SaveData
	online   []client.OnlinePlayer
	saved    json.RawMessage
	gotUser  string
	gotEmail string
	gotPass  string
	gotName  string
	gotClass string

	err          error
	heartbeatErr error
}

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) Register(_ context.Context, username, email string, password []byte) (*client.Player, error) {
	f.record("register")
	f.gotUser, f.gotEmail, f.gotPass = username, email, string(password)
	if f.err != nil {
		return nil, f.err
	}
	f.SetToken("tok")
	return f.player, nil
}

func (f *fakeClient) Login(_ context.Context, username string, password []byte) (*client.Player, error) {
	f.record("login")
	f.gotUser, f.gotPass = username, string(password)
	if f.err != nil {
		return nil, f.err
	}
	f.SetToken("tok")
	return f.player, nil
}

func (f *fakeClient) Logout(context.Context) error {
	f.record("logout")
	return f.err
}

func (f *fakeClient) Verify(context.Context) (*client.Player, error) {
	f.record("verify")
	if f.err != nil {
		return nil, f.err
	}
	return f.player, nil
}

func (f *fakeClient) GetData(context.Context) (*client.SaveData, error) {
	f.record("data")
	return f.data, f.err
}

func (f *fakeClient) SaveData(_ context.Context, data json.RawMessage) error {
	f.record("save")
	f.saved = data
	return f.err
}

func (f *fakeClient) CreateCharacter(_ context.Context, name, class string) (*client.SaveData, error) {
	f.record("character")
	f.gotName, f.gotClass = name, class
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

func (f *fakeClient) Online(context.Context) ([]client.OnlinePlayer, error) {
	f.record("online")
	return f.online, f.err
}

func (f *fakeClient) Heartbeat(context.Context) error {
	f.record("heartbeat")
	return f.heartbeatErr
}

func (f *fakeClient) Health(context.Context) error {
	f.record("health")
	return f.err
}

func (f *fakeClient) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeClient) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func newTestApp(fc *fakeClient, input string) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &App{
		config: &config.Config{},
		api:    fc,
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    out,
	}, out
}

// stubInputs replaces the prompt helpers with canned answers served in order.
func stubInputs(t *testing.T, answers []string, password []byte) {
	t.Helper()
	origST, origGP, origML := getSimpleText, getPassword, getMultiline

	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		s := answers[i]
		i++
		return s, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return append([]byte(nil), password...), nil }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		s := answers[i]
		i++
		return s, nil
	}

	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline = origST, origGP, origML
	})
}
