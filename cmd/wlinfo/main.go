// wlinfo prints the globals, outputs, and seats of the running
// compositor. With --watch, it keeps running and reports outputs and
// seats as they change.
package main

import (
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"slices"
	"text/tabwriter"

	wl "deedles.dev/wlui/client"
	"deedles.dev/wlui/config"
	"deedles.dev/wlui/event"
	"deedles.dev/wlui/eventloop"
	"deedles.dev/wlui/internal/debug"
	"github.com/spf13/cobra"
)

type options struct {
	config string
	watch  bool
}

func main() {
	var opts options

	cmd := &cobra.Command{
		Use:          "wlinfo",
		Short:        "Show what the Wayland compositor offers",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "config file (default is wlui.toml)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "report outputs and seats as they change")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(w io.Writer, opts options) error {
	cfg, err := config.Load(opts.config)
	if err != nil {
		return err
	}
	if err := debug.SetLevel(cfg.Logging.Level); err != nil {
		debug.Logger.Warn("bad log level", "level", cfg.Logging.Level, "err", err)
	}

	display, err := wl.DialDisplay()
	if err != nil {
		return fmt.Errorf("dial display: %w", err)
	}
	defer display.Close()
	display.Error = func(err wl.ProtocolError) {
		debug.Logger.Error("protocol error", "err", err)
	}

	registry := display.GetRegistry()

	settings, err := cfg.Settings()
	if err != nil {
		return err
	}
	loop, err := eventloop.New[os.Signal](display, settings.Loop)
	if err != nil {
		return err
	}

	printGlobals(w, registry.Globals())
	state := loop.State()
	printOutputs(w, state.Outputs())
	printSeats(w, state.Seats())

	if !opts.watch {
		return nil
	}
	return watch(w, loop)
}

func watch(w io.Writer, loop *eventloop.Loop[os.Signal]) error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt)
	defer signal.Stop(signals)

	proxy := loop.Proxy()
	go func() {
		for sig := range signals {
			if proxy.Send(sig) != nil {
				return
			}
		}
	}()

	code := loop.Run(func(ev eventloop.Event, state *eventloop.State, flow *eventloop.ControlFlow) {
		switch ev := ev.(type) {
		case eventloop.NewEvents:
			if ev.Cause.Kind == eventloop.Init {
				*flow = eventloop.Wait
			}
		case eventloop.UserEvent[os.Signal]:
			*flow = eventloop.ExitWithCode(0)
		case eventloop.ProtocolEvent:
			printEvent(w, ev.Event)
		}
	})
	if code != 0 {
		return fmt.Errorf("connection lost (%v)", code)
	}
	return nil
}

func printGlobals(w io.Writer, globals map[uint32]wl.Interface) {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "NAME\tINTERFACE\tVERSION")
	for _, name := range slices.Sorted(maps.Keys(globals)) {
		inter := globals[name]
		fmt.Fprintf(tw, "%v\t%v\t%v\n", name, inter.Name, inter.Version)
	}
}

func printOutputs(w io.Writer, outputs []*eventloop.Output) {
	for _, out := range outputs {
		fmt.Fprintf(w, "output %v: %v\n", out.Name, describeOutput(out.Info))
	}
}

func describeOutput(info event.OutputInfo) string {
	name := info.Name
	if name == "" {
		name = info.Make + " " + info.Model
	}
	return fmt.Sprintf(
		"%q %vx%v@%.2fHz at %v,%v, scale %v, %vx%vmm",
		name,
		info.Width,
		info.Height,
		float64(info.Refresh)/1000,
		info.X,
		info.Y,
		info.Scale,
		info.PhysicalWidth,
		info.PhysicalHeight,
	)
}

func printSeats(w io.Writer, seats []*eventloop.Seat) {
	for _, seat := range seats {
		var caps []string
		if seat.Keyboard != nil {
			caps = append(caps, "keyboard")
		}
		if seat.Pointer != nil {
			caps = append(caps, "pointer")
		}
		fmt.Fprintf(w, "seat %v: %v\n", seat.Name, caps)
	}
}

func printEvent(w io.Writer, ev event.Event) {
	switch ev := ev.(type) {
	case event.Output:
		switch ev.Kind {
		case event.OutputNew:
			fmt.Fprintf(w, "output %v added: %v\n", ev.Output, describeOutput(ev.Info))
		case event.OutputUpdate:
			fmt.Fprintf(w, "output %v changed: %v\n", ev.Output, describeOutput(ev.Info))
		case event.OutputRemove:
			fmt.Fprintf(w, "output %v removed\n", ev.Output)
		}

	case event.Seat:
		switch ev.Kind {
		case event.SeatNew:
			fmt.Fprintf(w, "seat %v added\n", ev.Seat)
		case event.SeatRemove:
			fmt.Fprintf(w, "seat %v removed\n", ev.Seat)
		case event.CapabilityNew:
			fmt.Fprintf(w, "seat %v gained %v\n", ev.Seat, capabilityName(ev.Capability))
		case event.CapabilityRemove:
			fmt.Fprintf(w, "seat %v lost %v\n", ev.Seat, capabilityName(ev.Capability))
		}
	}
}

func capabilityName(c event.Capability) string {
	switch c {
	case event.CapabilityKeyboard:
		return "keyboard"
	case event.CapabilityPointer:
		return "pointer"
	case event.CapabilityTouch:
		return "touch"
	}
	return fmt.Sprintf("capability %d", int(c))
}
