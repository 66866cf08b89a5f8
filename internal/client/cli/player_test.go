package cli

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/gamekeeper/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestData_NoCharacter(t *testing.T) {
	a, out := newTestApp(&fakeClient{}, "")

	require.NoError(t, a.Data(context.Background()))
	assert.Contains(t, out.String(), "No character yet")
}

func TestData_Prints(t *testing.T) {
	at := time.Now()
	fc := &fakeClient{data: &client.SaveData{
		Name: "Hero", Class: "Courier", Level: 3, Health: 80, MaxHealth: 100,
		Gold: 12, Inventory: json.RawMessage(`["rope"]`), UpdatedAt: &at,
	}}
	a, out := newTestApp(fc, "")

	require.NoError(t, a.Data(context.Background()))
	s := out.String()
	assert.Contains(t, s, "Hero (Courier)")
	assert.Contains(t, s, "80/100")
	assert.Contains(t, s, `["rope"]`)
	assert.Contains(t, s, "Weapon:")
	assert.Contains(t, s, "null")
}

func TestSave(t *testing.T) {
	fc := &fakeClient{}
	a, out := newTestApp(fc, "")
	stubInputs(t, []string{`{"name":"Hero","gold":5}`}, nil)

	require.NoError(t, a.Save(context.Background()))
	assert.JSONEq(t, `{"name":"Hero","gold":5}`, string(fc.saved))
	assert.Contains(t, out.String(), "Saved")
}

func TestSave_InvalidJSON(t *testing.T) {
	fc := &fakeClient{}
	a, _ := newTestApp(fc, "")
	stubInputs(t, []string{`{"name":`}, nil)

	require.Error(t, a.Save(context.Background()))
	assert.Empty(t, fc.Calls())
}

func TestCharacter(t *testing.T) {
	fc := &fakeClient{created: &client.SaveData{Name: "Hero", Class: "Courier", Level: 1}}
	a, out := newTestApp(fc, "")
	stubInputs(t, []string{"Hero", "Courier"}, nil)

	require.NoError(t, a.Character(context.Background()))
	assert.Equal(t, "Hero", fc.gotName)
	assert.Equal(t, "Courier", fc.gotClass)
	assert.Contains(t, out.String(), "Created Hero the Courier (level 1)")
}

func TestOnline(t *testing.T) {
	name := "Hero"
	fc := &fakeClient{online: []client.OnlinePlayer{
		{Username: "alice", CharacterName: &name, Level: 4, LastSeen: time.Now()},
		{Username: "bob", LastSeen: time.Now()},
	}}
	a, out := newTestApp(fc, "")

	require.NoError(t, a.Online(context.Background()))
	s := out.String()
	assert.Contains(t, s, "2 player(s) online")
	assert.Contains(t, s, "alice")
	assert.Contains(t, s, "Hero")
	assert.Contains(t, s, "bob")
}

func TestHeartbeat(t *testing.T) {
	fc := &fakeClient{}
	a, out := newTestApp(fc, "")

	require.NoError(t, a.Heartbeat(context.Background()))
	assert.Equal(t, ModeOnline, a.Mode)
	assert.Contains(t, out.String(), "OK")

	fc.heartbeatErr = client.ErrUnavailable
	require.ErrorIs(t, a.Heartbeat(context.Background()), client.ErrUnavailable)
}
