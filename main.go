package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/KaiqueGovani/legotris/pkg/engine"
	"github.com/KaiqueGovani/legotris/pkg/scores"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging to "+debugPath)
	seed := flag.Int64("seed", 0, "piece sequence seed (0 picks one from the clock)")
	scoreBackend := flag.String("scores", "file", "high score storage: file or memory")
	flag.Parse()

	EnableDebugLogging(*debug)
	defer closeDebugLog()
	DebugLogf("legotris start debug=%v seed=%d scores=%s", *debug, *seed, *scoreBackend)

	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if !tty {
		fmt.Fprintln(os.Stderr, "legotris: non-interactive terminals are not supported")
		os.Exit(1)
	}

	loadEmbeddedEnv()
	model, err := buildModel(*seed, *scoreBackend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "legotris: %v\n", err)
		os.Exit(2)
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		DebugLogf("program error: %v", err)
		os.Exit(1)
	}
}

func buildModel(seed int64, scoreBackend string) (Model, error) {
	opts := modelOptions{remote: scoreRemoteFromEnv()}

	path, err := configPath()
	if err != nil {
		DebugLogf("config dir unavailable: %v", err)
	}
	opts.configPath = path
	opts.config = defaultConfig()
	if path != "" {
		if opts.config, err = loadConfig(path); err != nil {
			DebugLogf("config load error: %v", err)
		}
	}

	switch scoreBackend {
	case "memory":
		opts.store = scores.NewMemoryStore()
	case "file":
		scorePath, err := scores.DefaultPath(appName)
		if err != nil {
			DebugLogf("score file unavailable, keeping scores in memory: %v", err)
			opts.store = scores.NewMemoryStore()
		} else {
			opts.store = scores.NewFileStore(scorePath)
		}
	default:
		return Model{}, fmt.Errorf("unknown -scores backend %q", scoreBackend)
	}

	if seed != 0 {
		opts.sessionOptions = append(opts.sessionOptions, engine.WithSeed(seed))
	}

	ctx, sampleRate, err := initAudioContext(opts.config.MusicFile)
	if err != nil {
		DebugLogf("audio context init error: %v", err)
	}
	opts.sound = NewSoundEngine(ctx, sampleRate, opts.config.Sound)
	opts.sound.SetVolume(volumeFromPercent(opts.config.Volume))
	opts.music = NewMusicPlayer(ctx, opts.config.MusicFile, volumeFromPercent(opts.config.Volume))
	return NewModel(opts), nil
}
