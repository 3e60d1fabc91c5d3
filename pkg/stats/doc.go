/*
Package stats implements the estimators of the Monte Carlo simulation: the mean
squared end-to-end distance <R_N^2> with its standard error, and the exponent
p = 2*nu in <R_N^2> ~ N^p with asymmetric error bounds.

Samples are accumulated in a streaming Accumulator that never stores the
individual values and can be merged, so that parallel workers can each keep
their own and reduce them at the end.

For unweighted walks (random, self-avoiding) the estimator is the arithmetic
mean of the squared distances s_i. For biased walks each sample carries an
importance weight w_i and the estimator is

	<R_N^2> = sum(w_i * s_i) / sum(w_i)

In both cases the standard error is the population standard deviation of the
accumulated values (s_i, or w_i * s_i for biased walks) divided by sqrt(n).
For biased walks this is an approximation, not a rigorous weighted variance.

Every computation that would produce NaN or Inf (no samples, log of a
non-positive number, N <= 1) returns an error instead.
*/
package stats
