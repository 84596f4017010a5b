/*
Package pipeline implements the composable execution model of the engine.

Two compositions exist:

  - Sequential: an ordered list of steps executed in declaration order,
    stopping at the first stage failure (no rollback).
  - Loop: a bounded repetition of a stage sequence with an exit predicate
    evaluated after each full iteration.

A Loop may be embedded as a step of a Sequential, which is how the test
generation workflow wraps its refinement cycle. The Registry maps workflow
names to pipelines and is read-only after startup.
*/
package pipeline
