package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"
)

func (a *App) Data(ctx context.Context) error {
	d, err := a.api.GetData(ctx)
	if err != nil {
		return err
	}
	if d == nil {
		fmt.Fprintln(a.out, "No character yet. Use 'character' to create one.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Name:\t%s (%s)\n", d.Name, d.Class)
	fmt.Fprintf(w, "Level:\t%d (xp %d)\n", d.Level, d.Experience)
	fmt.Fprintf(w, "Health:\t%d/%d\n", d.Health, d.MaxHealth)
	fmt.Fprintf(w, "Sanity:\t%d/%d\n", d.Sanity, d.MaxSanity)
	fmt.Fprintf(w, "Gold:\t%d (bank %d)\n", d.Gold, d.BankGold)
	fmt.Fprintf(w, "Turns:\t%d\n", d.Turns)
	fmt.Fprintf(w, "Deliveries:\t%d (rank %d, streak %d)\n", d.DeliveriesCompleted, d.DeliveryRank, d.DeliveryStreak)
	fmt.Fprintf(w, "Inventory:\t%s\n", rawOrNull(d.Inventory))
	fmt.Fprintf(w, "Weapon:\t%s\n", rawOrNull(d.Weapon))
	fmt.Fprintf(w, "Armor:\t%s\n", rawOrNull(d.Armor))
	fmt.Fprintf(w, "Package:\t%s\n", rawOrNull(d.CurrentPackage))
	if d.UpdatedAt != nil {
		fmt.Fprintf(w, "Saved:\t%s\n", d.UpdatedAt.Local().Format(time.RFC3339))
	}
	return w.Flush()
}

func rawOrNull(r json.RawMessage) string {
	if len(r) == 0 {
		return "null"
	}
	return string(r)
}

// Save reads a JSON save document from the terminal and stores it as the
// complete save.
func (a *App) Save(ctx context.Context) error {
	text, err := getMultiline(a.reader, "Paste save JSON", a.out)
	if err != nil {
		return err
	}

	if !json.Valid([]byte(text)) {
		return errors.New("input is not valid JSON")
	}

	if err := a.api.SaveData(ctx, json.RawMessage(text)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Saved")
	return nil
}

func (a *App) Character(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Character name", a.out)
	if err != nil {
		return err
	}

	class, err := getSimpleText(a.reader, "Class", a.out)
	if err != nil {
		return err
	}

	d, err := a.api.CreateCharacter(ctx, name, class)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created %s the %s (level %d)\n", d.Name, d.Class, d.Level)
	return nil
}

func (a *App) Online(ctx context.Context) error {
	players, err := a.api.Online(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%d player(s) online\n", len(players))
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, p := range players {
		name := "-"
		if p.CharacterName != nil {
			name = *p.CharacterName
		}
		fmt.Fprintf(w, "%s\t%s\tlvl %d\t%s\n", p.Username, name, p.Level, p.LastSeen.Local().Format("15:04:05"))
	}
	return w.Flush()
}

func (a *App) Heartbeat(ctx context.Context) error {
	if err := a.api.Heartbeat(ctx); err != nil {
		return err
	}
	a.setMode(ModeOnline)
	fmt.Fprintln(a.out, "OK")
	return nil
}
