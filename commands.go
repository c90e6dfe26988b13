package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/florisys/field.report/internal/bedview"
	"github.com/florisys/field.report/internal/remote"
	"github.com/florisys/field.report/internal/rover"
	"github.com/florisys/field.report/internal/settings"
	"github.com/florisys/field.report/internal/timeutil"
	"github.com/florisys/field.report/internal/units"
)

const defaultSettingsDB = "field_report.db"

func newRemoteClient(settingsPath string) (*remote.Client, error) {
	store, err := settings.Open(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	defer store.Close()
	return remote.NewClient(store.DashboardBaseURL(), nil), nil
}

func handlePlots(args []string) error {
	fs := flag.NewFlagSet("plots", flag.ExitOnError)
	settingsPath := fs.String("settings", defaultSettingsDB, "settings database path")
	add := fs.String("add", "", "upload an image file as a new plot")
	remove := fs.String("remove", "", "delete the plot with this id")
	fs.Parse(args)

	client, err := newRemoteClient(*settingsPath)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch {
	case *add != "":
		f, err := os.Open(*add)
		if err != nil {
			return err
		}
		defer f.Close()
		created, err := client.AddPlot(ctx, filepath.Base(*add), f)
		if err != nil {
			return err
		}
		fmt.Printf("created plot %s (%s)\n", created.ID, created.Name)
		return nil
	case *remove != "":
		if err := client.DeletePlot(ctx, *remove); err != nil {
			return err
		}
		fmt.Printf("removed plot %s\n", *remove)
		return nil
	default:
		plots, err := client.ListPlots(ctx)
		if err != nil {
			return err
		}
		if len(plots) == 0 {
			fmt.Println("no plots")
			return nil
		}
		for _, p := range plots {
			fmt.Printf("%-36s  %s\n", p.ID, p.Name)
		}
		return nil
	}
}

func handleBeds(args []string) error {
	fs := flag.NewFlagSet("beds", flag.ExitOnError)
	settingsPath := fs.String("settings", defaultSettingsDB, "settings database path")
	plotID := fs.String("plot", "", "plot id (required)")
	bedID := fs.String("bed", "", "show one bed with its spatial maps")
	upload := fs.String("upload", "", "attach a scan file to the bed as a spatial map")
	fs.Parse(args)

	if *plotID == "" {
		return fmt.Errorf("-plot is required")
	}
	client, err := newRemoteClient(*settingsPath)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *upload != "" {
		if *bedID == "" {
			return fmt.Errorf("-bed is required with -upload")
		}
		f, err := os.Open(*upload)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := client.UploadSpatialMap(ctx, *plotID, *bedID, filepath.Base(*upload), f); err != nil {
			return err
		}
		fmt.Printf("attached %s to bed %s\n", filepath.Base(*upload), *bedID)
		return nil
	}

	if *bedID != "" {
		bed, err := client.GetBed(ctx, *plotID, *bedID)
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s  (%d vertices)\n", bed.ID, bed.Name, len(bed.Ring()))
		for _, m := range bed.SpatialMaps {
			fmt.Printf("  map %s  %s  %s\n", m.ID, m.CaptureDate.Format("2006-01-02"), m.OriginalFilename)
		}
		return nil
	}

	beds, err := client.ListBeds(ctx, *plotID)
	if err != nil {
		return err
	}
	if len(beds) == 0 {
		fmt.Println("no beds")
		return nil
	}
	for _, b := range beds {
		fmt.Printf("%-36s  %s\n", b.ID, b.Name)
	}
	return nil
}

func handleMinimap(args []string) error {
	fs := flag.NewFlagSet("minimap", flag.ExitOnError)
	settingsPath := fs.String("settings", defaultSettingsDB, "settings database path")
	plotID := fs.String("plot", "", "plot id (required)")
	bedID := fs.String("bed", "", "bed id (required)")
	out := fs.String("out", "bed.png", "output PNG path")
	fs.Parse(args)

	if *plotID == "" || *bedID == "" {
		return fmt.Errorf("-plot and -bed are required")
	}
	client, err := newRemoteClient(*settingsPath)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	bed, err := client.GetBed(ctx, *plotID, *bedID)
	if err != nil {
		return err
	}
	opts := bedview.Options{
		Title:     bed.Name,
		ShowLabel: true,
		XLabel:    "Longitude",
		YLabel:    "Latitude",
	}
	if err := bedview.SavePNG(*out, bed.Ring(), opts); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", *out)
	return nil
}

func handleRoverReport(args []string) error {
	fs := flag.NewFlagSet("rover-report", flag.ExitOnError)
	samples := fs.Int("samples", 120, "number of telemetry samples to simulate")
	interval := fs.Duration("interval", time.Second, "simulated sampling interval")
	seed := fs.Uint64("seed", uint64(time.Now().UnixNano()), "simulator seed")
	speedUnits := fs.String("units", units.MPS, "speed units (mps, mph, kph)")
	out := fs.String("out", "rover-report.html", "output HTML path")
	fs.Parse(args)

	if !units.IsValid(*speedUnits) {
		return fmt.Errorf("invalid units %q, valid: %s", *speedUnits, strings.Join(units.ValidUnits, ", "))
	}

	clock := timeutil.NewMockClock(time.Now())
	sim := rover.NewSimulator(clock, *seed)
	monitor := rover.NewMonitor(nil, *samples)
	for i := 0; i < *samples; i++ {
		clock.Advance(*interval)
		monitor.Record(sim.Next())
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := rover.WriteReport(f, monitor.Snapshot(), *speedUnits); err != nil {
		return err
	}
	fmt.Printf("wrote %s (run %s)\n", *out, sim.RunID())
	return nil
}

func handleRoverCollect(args []string) error {
	fs := flag.NewFlagSet("rover-collect", flag.ExitOnError)
	settingsPath := fs.String("settings", defaultSettingsDB, "settings database path")
	plotID := fs.String("plot", "", "plot id (required)")
	bedID := fs.String("bed", "", "bed id (required)")
	fs.Parse(args)

	if *plotID == "" || *bedID == "" {
		return fmt.Errorf("-plot and -bed are required")
	}
	client, err := newRemoteClient(*settingsPath)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	monitor := rover.NewMonitor(client, 0)
	if err := monitor.Collect(ctx, *plotID, *bedID); err != nil {
		return err
	}
	fmt.Printf("collection started for bed %s\n", *bedID)
	return nil
}

func handleSettings(args []string) error {
	fs := flag.NewFlagSet("settings", flag.ExitOnError)
	settingsPath := fs.String("settings", defaultSettingsDB, "settings database path")
	fs.Parse(args)

	store, err := settings.Open(*settingsPath)
	if err != nil {
		return err
	}
	defer store.Close()

	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Printf("%s = %s\n", settings.KeyDashboardBaseURL, store.DashboardBaseURL())
		fmt.Printf("%s = %s\n", settings.KeyRoverBaseURL, store.RoverBaseURL())
		return nil
	}
	switch rest[0] {
	case "get":
		if len(rest) != 2 {
			return fmt.Errorf("usage: settings get <key>")
		}
		v, err := store.Get(rest[1])
		if err != nil {
			return err
		}
		fmt.Println(v)
		return nil
	case "set":
		if len(rest) != 3 {
			return fmt.Errorf("usage: settings set <key> <value>")
		}
		return store.Set(rest[1], rest[2])
	case "reset":
		return store.ResetDefaults()
	default:
		return fmt.Errorf("unknown settings action %q", rest[0])
	}
}
