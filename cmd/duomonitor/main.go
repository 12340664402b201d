// Command duomonitor is a debug host for the CPU core: it wires a CPU, a
// bus and an APU together, loads a raw binary at a base address, and
// either runs it to completion or drops into an interactive
// register-dump REPL (SPEC_FULL.md §2, §6 — the CLI surface is
// explicitly outside the core's own scope, grounded on the
// oisee-z80-optimizer cobra command style). --sink=oto attaches a real
// audiosink.OtoSink per pulse channel so the oto/v3 backend is exercised
// end to end instead of only being constructible.
package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zotley-labs/duocore/apu"
	"github.com/zotley-labs/duocore/audiosink"
	"github.com/zotley-labs/duocore/bus"
	"github.com/zotley-labs/duocore/cpu"
	"github.com/zotley-labs/duocore/register"
)

// notionalClockHz is the nominal CPU clock used only to convert reported
// instruction cycles into 256 Hz frame-sequencer ticks; spec.md §1 scopes
// out cycle accuracy against wall-clock time, so this is a pacing ratio,
// not a timing guarantee.
const notionalClockHz = 4_194_304
const cyclesPerFrameTick = notionalClockHz / 256

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "duomonitor",
		Short: "Run or inspect a Z80/LR35902 program image",
	}
	root.AddCommand(newRunCmd(), newRegsCmd())
	return root
}

// buildMachine wires a CPU and bus together and attaches an APU at its
// fixed window (apu.Base) so the loaded image can drive sound.
// sinkKind selects the APU's audio backend: "none" runs the APU headless,
// "oto" attaches a real audiosink.OtoSink per pulse channel so the oto/v3
// integration is actually exercised end to end (SPEC_FULL.md §2). The
// returned cleanup func releases any backend resources and must be
// called once the caller is done with the machine.
func buildMachine(variant string, image []byte, loadAt uint16, sinkKind string) (*cpu.CPU, *bus.Bus, *apu.APU, func(), error) {
	v, err := parseVariant(variant)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	b := bus.New()
	// RAM fills the address space below and above the APU's register
	// window; image bytes that fall inside the window are dropped.
	low := bus.NewRam(0x0000, int(apu.Base))
	high := bus.NewRam(apu.Base+apu.WindowSize, 0x10000-int(apu.Base)-apu.WindowSize)
	for _, ram := range []*bus.Ram{low, high} {
		if err := b.Register(ram, ram.FirstAddress(), ram.LastAddress()); err != nil {
			return nil, nil, nil, nil, err
		}
	}
	for i, by := range image {
		b.Write8(loadAt+uint16(i), by)
	}

	a, cleanup, err := buildAPU(sinkKind)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := b.Register(a, a.FirstAddress(), a.LastAddress()); err != nil {
		cleanup()
		return nil, nil, nil, nil, err
	}

	regs := register.New(v, rand.New(rand.NewSource(1)))
	c := cpu.New(v, b, regs)
	c.SetPC(loadAt)
	return c, b, a, cleanup, nil
}

// buildAPU constructs the APU for the requested sink backend. "none"
// (the default) runs both pulse channels against apu.NullSink so the
// register window still decodes writes without opening an audio device.
func buildAPU(sinkKind string) (*apu.APU, func(), error) {
	switch sinkKind {
	case "", "none":
		return apu.New(nil, nil), func() {}, nil
	case "oto":
		ctx, err := audiosink.NewContext(44100)
		if err != nil {
			return nil, nil, fmt.Errorf("duomonitor: opening audio context: %w", err)
		}
		pulse1 := audiosink.NewOtoSink(ctx)
		pulse2 := audiosink.NewOtoSink(ctx)
		cleanup := func() {
			pulse1.Close()
			pulse2.Close()
		}
		return apu.New(pulse1, pulse2), cleanup, nil
	default:
		return nil, nil, fmt.Errorf("duomonitor: unknown sink %q (want none or oto)", sinkKind)
	}
}

func parseVariant(s string) (register.Variant, error) {
	switch s {
	case "z80":
		return register.Z80, nil
	case "gb", "lr35902":
		return register.LR35902, nil
	default:
		return 0, fmt.Errorf("duomonitor: unknown variant %q (want z80 or gb)", s)
	}
}

func newRunCmd() *cobra.Command {
	var variant string
	var loadAt uint16
	var maxSteps int
	var sink string

	cmd := &cobra.Command{
		Use:   "run <image>",
		Short: "Load a binary image and step the CPU until it halts or errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			c, _, a, cleanup, err := buildMachine(variant, image, loadAt, sink)
			if err != nil {
				return err
			}
			defer cleanup()

			cyclesAcc := 0
			for i := 0; i < maxSteps && c.Running() && !c.Halted; i++ {
				cycles, err := c.Step()
				if err != nil {
					return err
				}
				cyclesAcc += cycles
				for cyclesAcc >= cyclesPerFrameTick {
					a.Clock256Hz()
					cyclesAcc -= cyclesPerFrameTick
				}
			}
			printRegs(c)
			return nil
		},
	}
	cmd.Flags().StringVar(&variant, "variant", "z80", "CPU variant: z80 or gb")
	cmd.Flags().Uint16Var(&loadAt, "load-at", 0x0100, "address to load the image at")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 1_000_000, "stop after this many instructions even if still running")
	cmd.Flags().StringVar(&sink, "sink", "none", "audio sink backend: none or oto")
	return cmd
}

func newRegsCmd() *cobra.Command {
	var variant string
	var loadAt uint16
	var sink string

	cmd := &cobra.Command{
		Use:   "regs <image>",
		Short: "Load an image and drop into an interactive single-step register monitor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			c, _, a, cleanup, err := buildMachine(variant, image, loadAt, sink)
			if err != nil {
				return err
			}
			defer cleanup()
			return runMonitorREPL(c, a)
		},
	}
	cmd.Flags().StringVar(&variant, "variant", "z80", "CPU variant: z80 or gb")
	cmd.Flags().Uint16Var(&loadAt, "load-at", 0x0100, "address to load the image at")
	cmd.Flags().StringVar(&sink, "sink", "none", "audio sink backend: none or oto")
	return cmd
}

// runMonitorREPL puts stdin in raw mode so a single keystroke drives one
// Step, without waiting on a newline — grounded on the teacher's
// terminal_host.go use of term.MakeRaw/Restore for its own MMIO console.
// 'q' quits, any other key single-steps.
func runMonitorREPL(c *cpu.CPU, a *apu.APU) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("duomonitor: failed to set raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	printRegs(c)
	cyclesAcc := 0
	buf := make([]byte, 1)
	for c.Running() && !c.Halted {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return err
		}
		if buf[0] == 'q' {
			return nil
		}
		cycles, err := c.Step()
		if err != nil {
			term.Restore(fd, oldState)
			fmt.Fprintln(os.Stderr, err)
			return nil
		}
		cyclesAcc += cycles
		for cyclesAcc >= cyclesPerFrameTick {
			a.Clock256Hz()
			cyclesAcc -= cyclesPerFrameTick
		}
		printRegs(c)
	}
	return nil
}

func printRegs(c *cpu.CPU) {
	r := c.Regs
	fmt.Fprintf(os.Stdout, "\rPC=%04X SP=%04X AF=%04X BC=%04X DE=%04X HL=%04X  Z=%v N=%v H=%v C=%v\r\n",
		r.PC, r.SP, r.AF(), r.BC(), r.DE(), r.HL(),
		r.Zero().Read(), r.Subtract().Read(), r.HalfCarry().Read(), r.Carry().Read())
}
