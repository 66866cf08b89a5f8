package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Verify(ctx context.Context) error
	Data(ctx context.Context) error
	Save(ctx context.Context) error
	Character(ctx context.Context) error
	Online(ctx context.Context) error
	Heartbeat(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a
// until EOF, "exit" or "quit". Command errors are printed and the loop
// carries on.
//
//	Not logged in:
//	  - register, login
//
//	Logged in:
//	  - verify         check the session token
//	  - data           show the saved character
//	  - save           replace the save with a JSON document
//	  - character      create a character with starting values
//	  - online         list players seen in the last few minutes
//	  - heartbeat      refresh own presence now
//	  - logout
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gk %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		var cmdErr error
		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: verify, data, save, character, online, heartbeat, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "verify":
			cmdErr = a.Verify(ctx)

		case "data":
			cmdErr = a.Data(ctx)

		case "save":
			cmdErr = a.Save(ctx)

		case "character":
			cmdErr = a.Character(ctx)

		case "online":
			cmdErr = a.Online(ctx)

		case "heartbeat":
			cmdErr = a.Heartbeat(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
