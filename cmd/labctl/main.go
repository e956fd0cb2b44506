// labctl is a line-oriented client for the lab-desk API.  It offers the
// mobile views (login, menu, catalog types, order events) and the web
// admin and public pages as screens driven by short commands.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/iliyamo/lab-desk/internal/config"
	"github.com/iliyamo/lab-desk/internal/labapi"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "labctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out io.Writer) error {
	flagSet := pflag.NewFlagSet("labctl", pflag.ContinueOnError)
	flagSet.SetOutput(out)
	configPath := flagSet.String("config", config.DefaultClientConfigPath(), "path to the YAML profile")
	server := flagSet.String("server", "", "API origin, overrides base_url")
	timeout := flagSet.Duration("timeout", 0, "request timeout per command, overrides timeout")
	email := flagSet.String("email", "", "pre-fill the login email")
	noColor := flagSet.Bool("no-color", false, "disable styled output")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printUsage(out, flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printUsage(out, flagSet)
		return nil
	}

	cfg, err := config.LoadClientConfig(*configPath)
	if err != nil {
		return err
	}
	if *server != "" {
		cfg.BaseURL = *server
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}
	if *email != "" {
		cfg.Email = *email
	}
	if *noColor {
		cfg.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client := labapi.New(cfg.BaseURL, cfg.Timeout, labapi.NewSession())
	return newREPL(client, cfg, out).run(in)
}

func printUsage(out io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(out, "Usage: labctl [flags]\n\nFlags:\n%s\n", flagSet.FlagUsages())
	fmt.Fprint(out, helpText)
}
