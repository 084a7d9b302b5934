package phase

import "runtime"

// Config collects the run configuration, decoded from TOML. Window
// geometry is given either as a window count or a per-window marker width;
// NumWindows wins when both are set.
type Config struct {
	NumWindows  int `toml:"num_windows"`
	WindowWidth int `toml:"window_width"`

	NumThreads int `toml:"num_threads"`

	SwapOnTie    bool   `toml:"swap_on_tie"`
	BreakAtStart bool   `toml:"break_at_window_start"`
	Strict       bool   `toml:"strict"`
	MemoryLimit  uint64 `toml:"memory_limit"`

	PanelFile     string `toml:"panel_file"`
	PanelNumHaps  int    `toml:"panel_num_haps"`
	PanelNumSnps  int    `toml:"panel_num_snps"`
	TargetFile    string `toml:"target_file"`
	TargetNumInds int    `toml:"target_num_inds"`
	TargetNumSnps int    `toml:"target_num_snps"`
	SnpMapFile    string `toml:"snp_map_file"`

	OutDir string `toml:"output_dir"`

	Debug bool `toml:"debug"`
}

// PhaseParams holds the validated, derived run parameters.
type PhaseParams struct {
	numHaps    int
	numMarkers int
	numSamples int
	numTyped   int
	numWindows int
	numThreads int

	swapOnTie    bool
	breakAtStart bool
	strict       bool
}

func InitPhaseParams(config *Config, numHaps, numMarkers, numSamples, numTyped int) (*PhaseParams, error) {
	numWindows := config.NumWindows
	if numWindows == 0 {
		if config.WindowWidth <= 0 {
			return nil, &ConfigError{Msg: "window width must be positive"}
		}
		numWindows = (numTyped + config.WindowWidth - 1) / config.WindowWidth
	}
	if numWindows <= 0 {
		return nil, &ConfigError{Msg: "window count must be positive"}
	}
	if numTyped < numWindows {
		return nil, &ConfigError{Msg: "more windows than typed markers"}
	}

	numThreads := config.NumThreads
	if numThreads == 0 {
		numThreads = runtime.NumCPU()
	}
	if numThreads < 0 {
		return nil, &ConfigError{Msg: "thread count must be positive"}
	}

	return &PhaseParams{
		numHaps:      numHaps,
		numMarkers:   numMarkers,
		numSamples:   numSamples,
		numTyped:     numTyped,
		numWindows:   numWindows,
		numThreads:   numThreads,
		swapOnTie:    config.SwapOnTie,
		breakAtStart: config.BreakAtStart,
		strict:       config.Strict,
	}, nil
}

func (pp *PhaseParams) NumHaps() int {
	return pp.numHaps
}

func (pp *PhaseParams) NumMarkers() int {
	return pp.numMarkers
}

func (pp *PhaseParams) NumSamples() int {
	return pp.numSamples
}

func (pp *PhaseParams) NumTyped() int {
	return pp.numTyped
}

func (pp *PhaseParams) NumWindows() int {
	return pp.numWindows
}

func (pp *PhaseParams) NumThreads() int {
	return pp.numThreads
}

func (pp *PhaseParams) Strict() bool {
	return pp.strict
}
