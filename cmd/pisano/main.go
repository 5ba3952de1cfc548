package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arthur-stammet/Pisano-Visualizer/internal/audio"
	"github.com/arthur-stammet/Pisano-Visualizer/internal/config"
	"github.com/arthur-stammet/Pisano-Visualizer/internal/export"
	"github.com/arthur-stammet/Pisano-Visualizer/internal/gui"
	"github.com/arthur-stammet/Pisano-Visualizer/internal/pisano"
	"github.com/arthur-stammet/Pisano-Visualizer/internal/score"
	"github.com/arthur-stammet/Pisano-Visualizer/internal/tui"
	"github.com/arthur-stammet/Pisano-Visualizer/internal/viz"
)

var (
	configFile string
	outDir     string
	modulus    int
	verbose    bool
	annotate   bool
	tempo      int
	loopPlay   bool

	log zerolog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pisano",
		Short: "interactive Pisano period visualizer",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).With().Timestamp().Logger()
		},
		Run: func(cmd *cobra.Command, args []string) {
			gui.Run(loadConfig(cmd), log)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&outDir, "out", "", "output base directory")
	rootCmd.PersistentFlags().IntVarP(&modulus, "modulus", "m", 0, "starting modulus")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "terminal front end",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(loadConfig(cmd))
		},
	}

	seqCmd := &cobra.Command{
		Use:   "seq [modulus]",
		Short: "print one period and its figures",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSeq,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [modulus]",
		Short: "plot one period in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlot,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [modulus]",
		Short: "power spectrum of one period",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnalyze,
	}

	exportCmd := &cobra.Command{
		Use:   "export [modulus]",
		Short: "write svg, score and text artifacts",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().BoolVar(&annotate, "annotate", false, "annotate the score with positions and sections")

	playCmd := &cobra.Command{
		Use:   "play [modulus]",
		Short: "play one period as a melody",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlay,
	}
	playCmd.Flags().IntVar(&tempo, "tempo", 0, "notes per minute")
	playCmd.Flags().BoolVar(&loopPlay, "loop", false, "repeat until interrupted")

	rootCmd.AddCommand(tuiCmd, seqCmd, plotCmd, analyzeCmd, exportCmd, playCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file if given and layers the changed
// flags on top.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			log.Error().Err(err).Str("path", configFile).Msg("config load failed, using defaults")
		} else {
			cfg = loaded
		}
	}
	if cmd.Flags().Changed("out") || cmd.Root().PersistentFlags().Changed("out") {
		cfg.Dirs.Base = outDir
	}
	if modulus > 0 {
		cfg.Modulus = modulus
	}
	return cfg
}

// resolveInfo picks the modulus from the positional argument, the
// flags or the config, in that order, and computes its period.
func resolveInfo(cmd *cobra.Command, args []string) (pisano.Info, error) {
	cfg := loadConfig(cmd)
	m := cfg.Modulus
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return pisano.Info{}, fmt.Errorf("bad modulus %q: %w", args[0], err)
		}
		m = v
	}
	return pisano.Summary(m)
}

func runSeq(cmd *cobra.Command, args []string) error {
	info, err := resolveInfo(cmd, args)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "modulus\t%d\n", info.Modulus)
	fmt.Fprintf(w, "period\t%d\n", info.Period)
	fmt.Fprintf(w, "sections\t%d\n", info.Sections)
	fmt.Fprintf(w, "mirrored\t%v\n", info.Mirrored)
	fmt.Fprintf(w, "time sig\t%d/4\n", score.TimeSignature(info.Period))
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	for i, v := range info.Seq {
		if i > 0 {
			fmt.Print(" ")
		}
		fmt.Print(v)
	}
	fmt.Println()
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	info, err := resolveInfo(cmd, args)
	if err != nil {
		return err
	}

	fmt.Println(info.Title())
	fmt.Println(info.Subtitle())
	fmt.Println()
	fmt.Println(viz.Bars(info.Seq, 100, 8))

	data := make([]float64, len(info.Seq))
	for i, v := range info.Seq {
		data[i] = float64(v)
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("fibonacci mod %d", info.Modulus)),
	)
	fmt.Println()
	fmt.Println(graph)
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	info, err := resolveInfo(cmd, args)
	if err != nil {
		return err
	}

	spectrum := pisano.Spectrum(info.Seq)
	if len(spectrum) == 0 {
		return fmt.Errorf("period of %d is too short to analyze", info.Modulus)
	}

	fmt.Printf("%s  period %d, %d sections\n\n", info.Title(), info.Period, info.Sections)
	graph := asciigraph.Plot(spectrum,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum"),
	)
	fmt.Println(graph)

	// The section count shows up as the dominant harmonic.
	peak := 0
	for k, p := range spectrum {
		if p > spectrum[peak] {
			peak = k
		}
	}
	fmt.Printf("\ndominant harmonic: %d cycles per period\n", peak+1)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	info, err := resolveInfo(cmd, args)
	if err != nil {
		return err
	}

	exp := export.New(loadConfig(cmd).Dirs)

	path, err := exp.SaveSVG(info)
	if err != nil {
		return err
	}
	log.Info().Str("path", path).Msg("saved image")

	if annotate {
		dir := loadConfig(cmd).Dirs.ScoresDir()
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		path = filepath.Join(dir, fmt.Sprintf("Pisano Melody %d.ly", info.Modulus))
		if err := os.WriteFile(path, []byte(score.Generate(info, true)), 0644); err != nil {
			return err
		}
	} else {
		path, err = exp.SaveScore(info)
		if err != nil {
			return err
		}
	}
	log.Info().Str("path", path).Msg("saved score")

	path, err = exp.SaveText(info)
	if err != nil {
		return err
	}
	log.Info().Str("path", path).Msg("saved text")
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	info, err := resolveInfo(cmd, args)
	if err != nil {
		return err
	}

	cfg := loadConfig(cmd)
	if tempo > 0 {
		cfg.Audio.Tempo = tempo
	}

	player := audio.NewPlayer(cfg.Audio.Tempo)
	player.SetSequence(info.Seq, info.Modulus)
	player.SetLoop(loopPlay)
	if err := player.Start(); err != nil {
		return err
	}
	defer player.Stop()

	log.Info().Int("modulus", info.Modulus).Int("period", info.Period).
		Int("tempo", cfg.Audio.Tempo).Bool("loop", loopPlay).Msg("playing")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case <-player.Done():
		// Let the delay tail ring out before closing the stream.
		time.Sleep(300 * time.Millisecond)
	case <-sig:
	}
	return nil
}
