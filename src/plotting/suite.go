package plotting

import (
	"fmt"

	"github.com/avandyck/roomeval/src/dataset"
)

// Suite is an ordered list of plots rendered into one output directory.
type Suite struct {
	OutDir string
	// ContinueOnError logs and skips plots that fail their configuration
	// checks instead of aborting the run. Write failures always abort.
	ContinueOnError bool
	Plots           []Config
}

// RenderSuite renders every plot in the suite and returns the written paths
// in order. A plot without its own OutDir inherits the suite's.
func RenderSuite(ds *dataset.Dataset, s Suite) ([]string, error) {
	var paths []string
	for i, cfg := range s.Plots {
		if cfg.OutDir == "" {
			cfg.OutDir = s.OutDir
		}
		p, err := Render(ds, cfg)
		if err != nil {
			if s.ContinueOnError {
				dataset.Warnf("plot %d (%s): %v", i, cfg.Kind, err)
				continue
			}
			return paths, fmt.Errorf("plot %d (%s): %w", i, cfg.Kind, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}
