// The sdfsh command runs an interactive shell for loading and
// rendering scene description files.
package main

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ergochat/readline"
	sdftrace "github.com/kjalden/sdftrace"
	"github.com/kjalden/sdftrace/internal/scenefile"
	"github.com/kjalden/sdftrace/internal/sdf"
)

type Command struct {
	// Symbol is the canonical name of the command.
	// It should include the leading ":".
	Symbol       string
	Aliases      []string
	ExpectedArgs []string // For generating help.
	HelpText     string
	Run          func(*State) error
}

type State struct {
	args     []string
	commands []*Command

	scene  *sdftrace.Scene
	errs   []*scenefile.ParseError
	width  int
	height int
}

// errQuit is a signal to the main loop to quit.
var errQuit = errors.New("quit")

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:       "sdf> ",
		HistoryFile:  readlineHistoryFilePath(),
		HistoryLimit: 10000,
	})
	if err != nil {
		log.Fatalf("readline init error: %v", err)
	}

	state := &State{width: 800, height: 600}

	var commands []*Command
	commandLookup := make(map[string]*Command)

	registerCommand := func(command *Command) {
		mustAddToLookup := func(symbol string) {
			if commandLookup[symbol] != nil {
				log.Fatalf("duplicate command: %v vs %v", command, commandLookup[symbol])
			}
			commandLookup[symbol] = command
		}
		commands = append(commands, command)
		mustAddToLookup(command.Symbol)
		for _, alias := range command.Aliases {
			mustAddToLookup(alias)
		}
	}

	registerCommand(&Command{
		Symbol:       ":load",
		Aliases:      []string{":l"},
		ExpectedArgs: []string{"<filename>"},
		HelpText:     "Load a scene file",
		Run: func(st *State) error {
			if len(st.args) < 1 {
				return errors.New("usage: :load <filename>")
			}
			text, err := os.ReadFile(st.args[0])
			if err != nil {
				return err
			}
			sc, errs := scenefile.Parse(string(text))
			st.scene = sc
			st.errs = errs
			for _, e := range errs {
				fmt.Printf("  parse warning: %v\n", e)
			}
			fmt.Printf("loaded %s\n", st.args[0])
			return nil
		},
	})
	registerCommand(&Command{
		Symbol:   ":stats",
		Aliases:  []string{":st"},
		HelpText: "Print a summary of the loaded scene",
		Run: func(st *State) error {
			if st.scene == nil {
				return errors.New("no scene loaded; use :load or :canned")
			}
			fmt.Printf("shapes: %d\n", sdf.ShapeCount(st.scene.SDF))
			fmt.Printf("lights: %d\n", len(st.scene.Lights))
			fmt.Printf("parse warnings: %d\n", len(st.errs))
			fmt.Printf("far plane: %v\n", st.scene.FarPlane)
			return nil
		},
	})
	registerCommand(&Command{
		Symbol:   ":canned",
		Aliases:  []string{":c"},
		HelpText: "Load the built-in example scene",
		Run: func(st *State) error {
			st.scene = sdftrace.ExampleScene1()
			st.errs = nil
			fmt.Printf("loaded canned scene\n")
			return nil
		},
	})
	registerCommand(&Command{
		Symbol:       ":size",
		ExpectedArgs: []string{"<width>", "<height>"},
		HelpText:     "Set the output image size",
		Run: func(st *State) error {
			if len(st.args) < 2 {
				return errors.New("usage: :size <width> <height>")
			}
			var w, h int
			if _, err := fmt.Sscanf(st.args[0], "%d", &w); err != nil {
				return err
			}
			if _, err := fmt.Sscanf(st.args[1], "%d", &h); err != nil {
				return err
			}
			st.width, st.height = w, h
			return nil
		},
	})
	registerCommand(&Command{
		Symbol:       ":render",
		Aliases:      []string{":r"},
		ExpectedArgs: []string{"<filename>"},
		HelpText:     "Render the loaded scene to a png, one second of work at a time",
		Run: func(st *State) error {
			if st.scene == nil {
				return errors.New("no scene loaded; use :load or :canned")
			}
			if len(st.args) < 1 {
				return errors.New("usage: :render <filename>")
			}
			sink := sdftrace.NewImageSink(st.width, st.height)
			clock := sdftrace.SystemClock{}
			rng := sdftrace.MathRandEntropy{}
			x, y := 0, 0
			for {
				var done bool
				x, y, done = sdftrace.RenderBudgeted(st.scene, sink, st.width, st.height, rng, clock, time.Second, x, y)
				if done {
					fmt.Printf("  ...rendered through row %d/%d\n", st.height, st.height)
					break
				}
				fmt.Printf("  ...rendered through row %d/%d\n", y, st.height)
			}
			f, err := os.Create(st.args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			if err := png.Encode(f, sink.Img); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", st.args[0])
			return nil
		},
	})
	registerCommand(&Command{
		Symbol:   ":help",
		Aliases:  []string{":h"},
		HelpText: "Prints this help text",
		Run:      showHelp,
	})
	registerCommand(&Command{
		Symbol:   ":quit",
		Aliases:  []string{":q"},
		HelpText: "Exit the shell",
		Run: func(st *State) error {
			return errQuit
		},
	})

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return
			}
			log.Fatalf("readline error: %v", err)
		}
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if line[0] != ':' {
			fmt.Printf("not a command (scene files are loaded with :load); try :help\n")
			continue
		}
		args := parseCommandArgs(line)
		if len(args) == 0 {
			log.Fatalf("bug in command parser: %q", line)
		}
		cmd := commandLookup[args[0]]
		if cmd == nil {
			fmt.Printf("Unknown command: %v\n", args[0])
			continue
		}
		state.args = args[1:]
		state.commands = commands
		err = cmd.Run(state)
		if errors.Is(err, errQuit) {
			return
		}
		if err != nil {
			fmt.Printf("command error: %v\n", err)
		}
	}
}

func showHelp(st *State) error {
	usageHelp := make([]string, len(st.commands))
	maxLen := 0
	for i, command := range st.commands {
		parts := []string{command.Symbol}
		parts = append(parts, command.Aliases...)
		parts = append(parts, command.ExpectedArgs...)
		usageHelp[i] = strings.Join(parts, " ")
		maxLen = max(maxLen, len(usageHelp[i]))
	}
	fmt.Printf("Commands:\n")
	for i, command := range st.commands {
		fmt.Printf("  %-*s : %s\n", maxLen, usageHelp[i], command.HelpText)
	}
	return nil
}

func readlineHistoryFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("user home dir error: %v\n", err)
		return ""
	}
	return filepath.Join(home, ".sdfsh_history")
}

func parseCommandArgs(line string) []string {
	var args []string
	var start int
	for i := range line {
		curr := line[i]
		if strings.IndexByte(" \t\n\r", curr) != -1 {
			if start < i {
				args = append(args, line[start:i])
			}
			start = i + 1
		}
	}
	if start < len(line) {
		args = append(args, line[start:])
	}
	return args
}
