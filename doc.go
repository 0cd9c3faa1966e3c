// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package scram implements the indexed fault-tree engine of a probabilistic
safety analyzer: the integer-indexed, normalized Boolean graph together with
the transformations that convert an arbitrary user-level fault-tree formula
into a canonical alternating AND/OR graph suitable for minimal-cut-set
extraction, plus the probability calculation over that graph (rare-event,
MCUB, and exact via a binary decision diagram).

Basics

A fault tree is a rooted Boolean formula over named events: basic events
(atomic failures with an independent probability), house events (fixed
Boolean constants), and gates (Boolean connectives). Every event and gate is
assigned a dense positive integer index by an EventIndex; the index's sign
carries negation (index i denotes the entity, -i denotes its complement).

The pipeline, in order, is: build an indexed Graph from a set of Formulas
(Build), normalize it to contain only positive AND/OR gates (Normalize),
fold house events and constant sub-results (PropagateConstants), push all
negation down onto literals (PropagateComplements), merge adjacent same-kind
gates until the graph strictly alternates AND/OR (Coalesce), detect modules
whose basic-event footprint is disjoint from the rest of the graph
(DetectModules), then hand the result to a reduced ordered BDD builder for
exact probability and to a MOCUS extractor for minimal cut sets.

Analyze ties the whole pipeline together. Everything upstream of it (XML
parsing, the user-facing model, report rendering, diagrams, CLI argument
handling, Monte Carlo uncertainty sampling) is a collaborator outside this
package's scope; see the Formula, Settings, and Result types for the
boundary contract.

Use of build tags

Building with the build tag `debug` unlocks pass-by-pass tracing (pass start
and end with the gate count) through the standard log package. Without the
tag the tracing is compiled out entirely and costs nothing at runtime.
*/
package scram
