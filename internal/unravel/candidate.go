package unravel

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"pcb-tracer/internal/section"
)

// Candidate is one search state: a modification overlay plus its derived
// issues and cost (SPEC_FULL §3 "UnravelCandidate").
type Candidate struct {
	Modifications Modifications
	Issues        []Issue

	G, H, F float64

	OperationsPerformed int

	Hash     string
	FullHash string
}

// NewInitialCandidate is the solver's starting state: an empty modification
// map, issues and cost evaluated against the unmodified section.
func NewInitialCandidate(sec *section.UnravelSection, model *CapacityModel) *Candidate {
	return evaluate(sec, Modifications{}, 0, model)
}

// expand builds the child candidate reached by applying op to c.
func (c *Candidate) expand(sec *section.UnravelSection, op Operation, model *CapacityModel) *Candidate {
	next := Apply(sec, c.Modifications, op)
	return evaluate(sec, next, c.OperationsPerformed+1, model)
}

func evaluate(sec *section.UnravelSection, mods Modifications, opsPerformed int, model *CapacityModel) *Candidate {
	issues := GetIssuesInSection(sec, mods)
	g := computeG(sec, issues, model)
	return &Candidate{
		Modifications:       mods,
		Issues:               issues,
		G:                    g,
		H:                    0,
		F:                    g,
		OperationsPerformed:  opsPerformed,
		Hash:                 candidateHash(mods),
		FullHash:             candidateFullHash(sec, mods),
	}
}

// candidateHash hashes the (sorted) modification entries — cheap, catches
// exact duplicate search paths (SPEC_FULL §4.4 "Deduplication").
func candidateHash(mods Modifications) string {
	ids := make([]string, 0, len(mods))
	for id := range mods {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	h := sha256.New()
	for _, idStr := range ids {
		ov := mods[section.SegmentPointID(idStr)]
		fmt.Fprintf(h, "%s|", idStr)
		if ov.X != nil {
			fmt.Fprintf(h, "x=%.9g,", *ov.X)
		}
		if ov.Y != nil {
			fmt.Fprintf(h, "y=%.9g,", *ov.Y)
		}
		if ov.Z != nil {
			fmt.Fprintf(h, "z=%d,", *ov.Z)
		}
		h.Write([]byte(";"))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// candidateFullHash hashes the fully-resolved point state for every point
// in the section — catches semantically equivalent states reached by
// different operation histories.
func candidateFullHash(sec *section.UnravelSection, mods Modifications) string {
	ids := make([]string, 0, len(sec.SegmentPointMap))
	for id := range sec.SegmentPointMap {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	h := sha256.New()
	for _, idStr := range ids {
		id := section.SegmentPointID(idStr)
		x, y, z := Resolve(sec, mods, id)
		fmt.Fprintf(h, "%s|%.9g,%.9g,%d;", idStr, x, y, z)
	}
	return hex.EncodeToString(h.Sum(nil))
}
