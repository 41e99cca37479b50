package main

import (
	"fmt"
	"strings"

	"xrplay/internal/engine"
	"xrplay/internal/scripts"
	"xrplay/internal/sim"
	"xrplay/internal/words"
	"xrplay/internal/world"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run <scene> <scenario>",
	Short: "Play a scenario against a scene",
	Long: `Loads the scene, starts it in play mode and runs every scenario step,
one frame after each action. Exits non-zero when an expectation fails.`,
	Args: cobra.ExactArgs(2),
	RunE: runScenario,
}

var checkCmd = &cobra.Command{
	Use:   "check <scene>",
	Short: "Load a scene and print its objects, scripts and word slots",
	Args:  cobra.ExactArgs(1),
	RunE:  checkScene,
}

var scriptsCmd = &cobra.Command{
	Use:   "scripts",
	Short: "List registered scripts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range engine.GetRegisteredScripts() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

var watchWords bool

var wordsCmd = &cobra.Command{
	Use:   "words <file>",
	Short: "Load a dictionary file, optionally reloading it on change",
	Args:  cobra.ExactArgs(1),
	RunE:  loadWords,
}

func init() {
	wordsCmd.Flags().BoolVarP(&watchWords, "watch", "w", false, "keep running and reload on change")
}

func runScenario(cmd *cobra.Command, args []string) error {
	w := world.New("main")
	if err := w.LoadScene(args[0]); err != nil {
		return err
	}
	sc, err := sim.LoadScenario(args[1])
	if err != nil {
		return err
	}

	if path := cfg.Dictionary.Path; path != "" {
		dict, err := words.LoadDictionary(path)
		if err != nil {
			return err
		}
		n := sim.ShareDictionary(w, dict)
		logger.Info("shared dictionary", zap.String("path", path), zap.Int("words", dict.Len()), zap.Int("containers", n))

		if cfg.Dictionary.Watch {
			watcher, err := words.Watch(dict, path, logger)
			if err != nil {
				return fmt.Errorf("watch dictionary: %w", err)
			}
			defer watcher.Close()
		}
	}

	runner := sim.NewRunner(w, sim.Options{
		FixedStep: cfg.Simulation.FixedStep,
		MaxFrames: cfg.Simulation.MaxFrames,
	})
	report, err := runner.Run(cmd.Context(), sc)
	if report != nil {
		report.WriteText(cmd.OutOrStdout())
	}
	return err
}

func checkScene(cmd *cobra.Command, args []string) error {
	w := world.New("check")
	if err := w.LoadScene(args[0]); err != nil {
		return err
	}
	w.Start()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "scene %s: %d objects, %d trigger volumes\n",
		w.Scene.Name, len(w.Scene.GameObjects), len(w.Triggers.Objects()))
	for _, g := range w.Scene.GameObjects {
		var names []string
		for _, c := range g.Components() {
			if name, _, ok := engine.SerializeScript(c); ok {
				names = append(names, name)
			} else {
				names = append(names, strings.TrimPrefix(fmt.Sprintf("%T", c), "*components."))
			}
		}
		indent := strings.Repeat("  ", depth(g))
		fmt.Fprintf(out, "%s%s [uid %d] %s\n", indent, g.Name, g.UID, strings.Join(names, ", "))
	}

	for _, g := range w.Scene.GameObjects {
		wc := engine.GetComponent[*scripts.WordContainer](g)
		if wc == nil {
			continue
		}
		var order []string
		for _, s := range wc.Slots() {
			order = append(order, s.GetGameObject().Name)
		}
		fmt.Fprintf(out, "word container %s: slots %s; %d words\n", g.Name, strings.Join(order, " < "), wc.Dictionary().Len())
	}
	return nil
}

func depth(g *engine.GameObject) int {
	d := 0
	for p := g.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

func loadWords(cmd *cobra.Command, args []string) error {
	path := args[0]
	dict, err := words.LoadDictionary(path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d words: %s\n", dict.Len(), strings.Join(dict.Words(), " "))
	if !watchWords {
		return nil
	}

	watcher, err := words.Watch(dict, path, logger)
	if err != nil {
		return fmt.Errorf("watch dictionary: %w", err)
	}
	defer watcher.Close()

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-watcher.Reloaded:
			fmt.Fprintf(out, "reloaded: %d words\n", n)
		case err := <-watcher.Errors:
			logger.Warn("dictionary reload failed", zap.Error(err))
		}
	}
}
