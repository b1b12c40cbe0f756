package unravel

import "pcb-tracer/internal/section"

// DefaultMaxIterations bounds the solver when the caller doesn't supply its
// own budget (SPEC_FULL §4.4 "Termination").
const DefaultMaxIterations = 2000

// Solver is the Unravel Solver: a best-first (here, FIFO-with-dedup) search
// over UnravelCandidate states rooted at an UnravelSection. It exposes a
// single Step, matching the stepwise, cooperative execution model the Mesh
// Builder also uses (SPEC_FULL §5).
type Solver struct {
	sec   *section.UnravelSection
	model *CapacityModel

	queue           []*Candidate
	visitedHash     map[string]bool
	visitedFullHash map[string]bool

	originalCandidate      *Candidate
	bestCandidate          *Candidate
	lastProcessedCandidate *Candidate

	iterations    int
	maxIterations int
	done          bool
}

// NewSolver builds a solver whose initial candidate is the section's
// unmodified baseline. maxIterations <= 0 selects DefaultMaxIterations.
func NewSolver(sec *section.UnravelSection, model *CapacityModel, maxIterations int) *Solver {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	initial := NewInitialCandidate(sec, model)
	return &Solver{
		sec:                    sec,
		model:                  model,
		queue:                  []*Candidate{initial},
		visitedHash:            map[string]bool{initial.Hash: true},
		visitedFullHash:        map[string]bool{initial.FullHash: true},
		originalCandidate:      initial,
		bestCandidate:          initial,
		lastProcessedCandidate: initial,
		maxIterations:          maxIterations,
	}
}

// Done reports whether the queue is empty or the iteration budget is spent.
func (s *Solver) Done() bool {
	return s.done || len(s.queue) == 0 || s.iterations >= s.maxIterations
}

// Step performs one unit of work: pop the head candidate, record it, expand
// its issues into operations, and enqueue every undiscovered neighbor
// (SPEC_FULL §4.4 "Stepwise search loop"). A no-op once Done.
func (s *Solver) Step() {
	if s.Done() {
		s.done = true
		return
	}
	s.iterations++

	cur := s.queue[0]
	s.queue = s.queue[1:]
	s.lastProcessedCandidate = cur
	// Equal F is broken in favor of fewer remaining issues: logProbability
	// clips low-congestion cells to zero, so F alone cannot tell a resolved
	// candidate from an unresolved one.
	if cur.F < s.bestCandidate.F ||
		(cur.F == s.bestCandidate.F && len(cur.Issues) < len(s.bestCandidate.Issues)) {
		s.bestCandidate = cur
	}

	for _, issue := range cur.Issues {
		for _, op := range OperationsForIssue(s.sec, issue) {
			child := cur.expand(s.sec, op, s.model)
			if s.visitedHash[child.Hash] || s.visitedFullHash[child.FullHash] {
				continue
			}
			s.visitedHash[child.Hash] = true
			s.visitedFullHash[child.FullHash] = true
			s.queue = append(s.queue, child)
		}
	}
}

// Run steps to completion and returns the best candidate found.
func (s *Solver) Run() *Candidate {
	for !s.Done() {
		s.Step()
	}
	return s.bestCandidate
}

func (s *Solver) OriginalCandidate() *Candidate      { return s.originalCandidate }
func (s *Solver) BestCandidate() *Candidate          { return s.bestCandidate }
func (s *Solver) LastProcessedCandidate() *Candidate { return s.lastProcessedCandidate }
func (s *Solver) Iterations() int                    { return s.iterations }
