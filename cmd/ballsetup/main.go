// ballsetup edits the ball list read by zawa at startup and on reset.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/thirdlf03/zawa/internal/session"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `ballsetup - edit the zawa ball list

Usage:
  ballsetup [-f file] <command> [args]

Commands:
  list                       Show the entries in order
  add <name> [priority]      Append a ball (priority defaults to 1)
  remove <name>              Drop every ball with this name
  clear                      Empty the list

The file is YAML unless its name ends in .json.

Examples:
  ballsetup add alice 3
  ballsetup -f balls.json list`)
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("ballsetup", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	file := fs.String("f", "balls.yaml", "Ball list file")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() < 1 {
		return errUsage
	}

	command, rest := fs.Arg(0), fs.Args()[1:]
	switch command {
	case "list", "ls":
		return cmdList(*file, out)
	case "add":
		return cmdAdd(*file, rest, out)
	case "remove", "rm":
		return cmdRemove(*file, rest, out)
	case "clear":
		return cmdClear(*file, out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func cmdList(file string, out io.Writer) error {
	entries, err := session.Load(file)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "(no balls)")
		return nil
	}
	for i, e := range entries {
		fmt.Fprintf(out, "%3d  %-20s priority %d\n", i, e.Name, e.Priority)
	}
	return nil
}

func cmdAdd(file string, args []string, out io.Writer) error {
	if len(args) < 1 || args[0] == "" {
		return errUsage
	}
	priority := session.DefaultPriority
	if len(args) > 1 {
		p, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("priority %q is not an integer", args[1])
		}
		priority = p
	}

	entries, err := session.Load(file)
	if err != nil {
		return err
	}
	entries = append(entries, session.Entry{Name: args[0], Priority: priority})
	if err := session.Save(file, entries); err != nil {
		return err
	}
	fmt.Fprintf(out, "added %s (priority %d), %d balls\n", args[0], priority, len(entries))
	return nil
}

func cmdRemove(file string, args []string, out io.Writer) error {
	if len(args) < 1 {
		return errUsage
	}
	entries, err := session.Load(file)
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.Name != args[0] {
			kept = append(kept, e)
		}
	}
	removed := len(entries) - len(kept)
	if removed == 0 {
		return fmt.Errorf("no ball named %s", args[0])
	}
	if err := session.Save(file, kept); err != nil {
		return err
	}
	fmt.Fprintf(out, "removed %d, %d balls\n", removed, len(kept))
	return nil
}

func cmdClear(file string, out io.Writer) error {
	if err := session.Save(file, []session.Entry{}); err != nil {
		return err
	}
	fmt.Fprintln(out, "cleared")
	return nil
}
