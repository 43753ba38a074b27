// Package shoot implements the shooting method as a bisection over a
// scalar model parameter.
//
// Each bisection integrates one trajectory at the bracket midpoint and
// compares its final x with a target. The evaluation is assumed monotonic
// over the bracket; [Slope] states which way. The assumption is never
// checked: a non-monotonic evaluation converges to an arbitrary point.
package shoot
