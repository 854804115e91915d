package cli

import (
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/autobrr/go-pngchunks/internal/png"
)

type parsed struct {
	name    string
	carrier *png.Carrier
	err     error
}

// parseFiles parses every file on a pool of jobs workers. Results keep the
// order of names.
func parseFiles(names []string, jobs int, log *zap.Logger) ([]parsed, error) {
	pool, err := ants.NewPool(jobs)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	results := make([]parsed, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		i, name := i, name
		results[i].name = name
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			results[i].carrier, results[i].err = parseFile(name, log)
		})
		if err != nil {
			wg.Done()
			results[i].err = err
		}
	}
	wg.Wait()
	return results, nil
}

func parseFile(name string, log *zap.Logger) (*png.Carrier, error) {
	ref, err := png.NewOSFile(name)
	if err != nil {
		return nil, err
	}
	c, err := png.Open(ref)
	if err != nil {
		return nil, err
	}
	log.Debug("parsed file",
		zap.String("file", name),
		zap.Int("size", c.Size()),
		zap.Int("chunks", len(c.Chunks())),
	)
	return c, nil
}

func closeAll(results []parsed) {
	for _, r := range results {
		if r.carrier != nil {
			r.carrier.Close()
		}
	}
}
