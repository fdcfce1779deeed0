// Command mipspipe assembles and runs a MIPS-I source file through the
// five-stage pipeline engine.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mipspipe/applog"
	"mipspipe/assemble"
	"mipspipe/config"
	"mipspipe/isa"
	"mipspipe/mem"
	"mipspipe/pipeline"
	"mipspipe/regfile"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mipspipe",
		Short: "MIPS-I assembler and pipelined interpreter",
	}

	var debug bool
	var configPath string
	var maxCycles uint64

	runCmd := &cobra.Command{
		Use:   "run <source-file>",
		Short: "Assemble and run a MIPS-I source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], configPath, debug, maxCycles)
		},
	}
	runCmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable per-cycle trace logging")
	runCmd.Flags().StringVar(&configPath, "config", "", "path to a mipspipe.toml config file (default: the platform config path, if present)")
	runCmd.Flags().Uint64Var(&maxCycles, "max-cycles", 0, "override the configured cycle limit (0 = use config)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or scaffold the mipspipe config file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file to the platform config path",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.DefaultConfig().Save(); err != nil {
				return err
			}
			fmt.Printf("wrote default config to %s\n", config.GetConfigPath())
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd, configCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(path, configPath string, debug bool, maxCyclesOverride uint64) error {
	if configPath == "" {
		configPath = config.GetConfigPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if debug {
		cfg.Logging.Verbose = true
	}

	logger, err := applog.New(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	source, err := os.ReadFile(path) // #nosec G304 -- user-supplied source path is the whole point of the CLI
	if err != nil {
		return fmt.Errorf("mipspipe: cannot read %s: %w", path, err)
	}

	sc := isa.NewSyscallHandler(os.Stdout, bufio.NewReader(os.Stdin), cfg.Execution.StdinMaxRead)
	reg, err := isa.Build(sc)
	if err != nil {
		logger.Fatalf("mipspipe: %v", err)
	}

	memory := mem.New(cfg.Memory.TextSize, cfg.Memory.DataSize)
	if err := assemble.Assemble(string(source), reg, memory); err != nil {
		fmt.Fprintf(os.Stderr, "mipspipe: %s: %v\n", path, err)
		os.Exit(1)
	}

	regs := regfile.New()
	engine := pipeline.New(regs, memory, reg)
	engine.MaxCycles = cfg.Execution.MaxCycles
	if maxCyclesOverride > 0 {
		engine.MaxCycles = maxCyclesOverride
	}
	if debug {
		engine.Trace = func(fetchPC uint32, mnemonic string, cycles, instructions, nops uint64) {
			logger.Debugf("pc=0x%08x instr=%s cycles=%d instructions=%d nops=%d", fetchPC, mnemonic, cycles, instructions, nops)
		}
	}

	if err := engine.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "mipspipe: %s: %v\n", path, err)
		os.Exit(1)
	}

	logger.Infof("cycles=%d instructions=%d nops=%d", engine.Cycles, engine.Instructions, engine.NOPs)
	return nil
}
