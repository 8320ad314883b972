package pipeline

import (
	"context"
	"sync"

	"github.com/PatrickWeller/panelpal/internal/transcript"
)

// GeneResult is the tagged outcome of one gene's transcript resolution.
// Either Genes or Err is set; a set Err means the gene is skipped, never
// that the run fails.
type GeneResult struct {
	Seq   int
	Gene  string
	Genes []transcript.GeneData
	Err   error
}

// resolveAll resolves every gene and feeds results to fn in gene-list
// order. With req.Workers <= 1 resolution is strictly sequential, one
// request in flight at a time; larger values fan out across a bounded
// worker pool while preserving per-gene failure isolation.
func (p *Pipeline) resolveAll(ctx context.Context, genes []string, req Request, fn func(GeneResult) error) error {
	if req.Workers <= 1 {
		for i, gene := range genes {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := p.resolver.Resolve(ctx, gene, req.GenomeBuild)
			if err := fn(GeneResult{Seq: i, Gene: gene, Genes: data, Err: err}); err != nil {
				return err
			}
		}
		return nil
	}

	items := make(chan GeneResult, req.Workers)
	go func() {
		defer close(items)
		for i, gene := range genes {
			select {
			case items <- GeneResult{Seq: i, Gene: gene}:
			case <-ctx.Done():
				return
			}
		}
	}()

	results := make(chan GeneResult, 2*req.Workers)
	var wg sync.WaitGroup
	wg.Add(req.Workers)
	for range req.Workers {
		go func() {
			defer wg.Done()
			for item := range items {
				item.Genes, item.Err = p.resolver.Resolve(ctx, item.Gene, req.GenomeBuild)
				results <- item
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	return orderedCollect(results, fn)
}

// orderedCollect calls fn for each result in sequence order, buffering
// out-of-order results until the next expected sequence number arrives.
func orderedCollect(results <-chan GeneResult, fn func(GeneResult) error) error {
	pending := make(map[int]GeneResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}
