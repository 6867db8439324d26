package match

import (
	"runtime"
	"sync"

	"github.com/cognicore/annot/pkg/annot/corpus"
)

// AnnotateAll annotates every document in the slice, sharding the work
// across workers. The entity set is read-only during a pass and each
// worker owns a fixed stride of indices, so there is no shared mutable
// state and results land at their original positions: output order never
// depends on scheduling. workers <= 0 uses one worker per CPU.
func (m *Matcher) AnnotateAll(docs []corpus.Document, workers int) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(docs) {
		workers = len(docs)
	}
	if workers <= 1 {
		for i := range docs {
			m.Annotate(&docs[i])
		}
		return
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < len(docs); i += workers {
				m.Annotate(&docs[i])
			}
		}(w)
	}
	wg.Wait()
}
