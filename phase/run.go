package phase

import (
	"sync"
	"sync/atomic"
	"time"

	"go.dedis.ch/onet/v3/log"

	"github.com/hhcho/winphase/panel"
)

// Result collects the outputs of one phasing run.
type Result struct {
	Params  *PhaseParams
	Windows []Window
	Pools   []*WindowPool
	Mosaics []*Mosaic
	Failed  []bool
	Imputed *panel.GenotypeMatrix
}

func validateAlignment(t *panel.Target, numMarkers int) error {
	seen := make([]bool, numMarkers)
	prev := -1
	for j, ref := range t.TypedToRef() {
		if ref < 0 || ref >= numMarkers {
			return &AlignmentError{TypedIndex: j, RefIndex: ref, Msg: "outside reference panel"}
		}
		if seen[ref] {
			return &AlignmentError{TypedIndex: j, RefIndex: ref, Msg: "duplicate reference marker"}
		}
		if ref < prev {
			return &AlignmentError{TypedIndex: j, RefIndex: ref, Msg: "reference markers not ascending"}
		}
		seen[ref] = true
		prev = ref
	}
	return nil
}

// Run phases and imputes every sample of the target against the panel.
// Config, alignment and panel errors abort the run with no output. In
// strict mode a sample failure is fatal too; otherwise the sample is
// flagged in Failed and excluded from both outputs.
func Run(config *Config, p *panel.Panel, t *panel.Target) (*Result, error) {
	start := time.Now()

	params, err := InitPhaseParams(config, p.NumHaps(), p.NumMarkers(), t.NumSamples(), t.NumTyped())
	if err != nil {
		return nil, err
	}
	if err := validateAlignment(t, p.NumMarkers()); err != nil {
		return nil, err
	}

	wins, err := PartitionWindows(params.numTyped, params.numWindows)
	if err != nil {
		return nil, err
	}

	pools, err := BuildWindowPools(p, t.TypedToRef(), wins, params.numThreads)
	if err != nil {
		return nil, err
	}
	log.LLvl1(time.Now().Format(time.StampMilli), "compressed", params.numHaps, "haplotypes into",
		UniqueCounts(pools), "unique sequences over", len(wins), "windows,", time.Since(start))

	gramStart := time.Now()
	work := prepareWindows(pools, t, params.numThreads)
	log.LLvl1(time.Now().Format(time.StampMilli), "per-window Gram precompute done,", time.Since(gramStart))

	ph := &phaser{pnl: p, tgt: t, pools: pools, work: work, params: params}

	mosaics := make([]*Mosaic, params.numSamples)
	failed := make([]bool, params.numSamples)
	sampleErrs := make([]error, params.numSamples)
	var aborted int32

	phaseStart := time.Now()
	nproc := params.numThreads
	jobChannels := make([]chan int, nproc)
	for i := range jobChannels {
		jobChannels[i] = make(chan int, 32)
	}

	// Dispatcher
	go func() {
		for i := 0; i < params.numSamples; i++ {
			jobChannels[i%nproc] <- i
		}
		for _, c := range jobChannels {
			close(c)
		}
	}()

	// Workers
	var workerGroup sync.WaitGroup
	for thread := 0; thread < nproc; thread++ {
		workerGroup.Add(1)
		go func(thread int) {
			defer workerGroup.Done()
			for i := range jobChannels[thread] {
				if atomic.LoadInt32(&aborted) != 0 {
					continue
				}
				ms, err := ph.phaseSample(i)
				if err != nil {
					sampleErrs[i] = err
					failed[i] = true
					if params.strict {
						atomic.StoreInt32(&aborted, 1)
					} else {
						log.Error("excluding sample from output:", err)
					}
					continue
				}
				mosaics[i] = ms
			}
		}(thread)
	}
	workerGroup.Wait()

	if params.strict {
		for _, err := range sampleErrs {
			if err != nil {
				return nil, err
			}
		}
	}
	log.LLvl1(time.Now().Format(time.StampMilli), "phased", params.numSamples, "samples,", time.Since(phaseStart))

	imputeStart := time.Now()
	imputed, err := Impute(p, mosaics, params.numThreads)
	if err != nil {
		return nil, err
	}
	log.LLvl1(time.Now().Format(time.StampMilli), "imputed", params.numSamples, "x", params.numMarkers,
		"genotypes,", time.Since(imputeStart))
	log.LLvl1(time.Now().Format(time.StampMilli), "total run time:", time.Since(start))

	return &Result{
		Params:  params,
		Windows: wins,
		Pools:   pools,
		Mosaics: mosaics,
		Failed:  failed,
		Imputed: imputed,
	}, nil
}
