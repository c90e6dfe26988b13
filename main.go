package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/florisys/field.report/internal/version"
)

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	var err error
	switch command {
	case "plots":
		err = handlePlots(args)
	case "beds":
		err = handleBeds(args)
	case "minimap":
		err = handleMinimap(args)
	case "rover-report":
		err = handleRoverReport(args)
	case "rover-collect":
		err = handleRoverCollect(args)
	case "settings":
		err = handleSettings(args)
	case "version":
		fmt.Printf("field-report version %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "field-report %s: %v\n", command, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`field-report - CLI companion for the field.report dashboard

Usage: field-report <command> [options]

Commands:
  plots         List, add or remove survey plots
  beds          List beds on a plot or show one bed
  minimap       Render a bed footprint to a PNG mini-map
  rover-report  Generate a mock rover telemetry HTML report
  rover-collect Trigger a rover data collection run for a bed
  settings      Read or write dashboard settings
  version       Show field-report version
  help          Show this help message

Run 'field-report <command> -h' for command options.`)
}
