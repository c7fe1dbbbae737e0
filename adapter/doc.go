/*
Package adapter drives estimators written against raw gonum matrices with
labeled frames, and returns labeled results.

An estimator is any Go value, normally a pointer to a struct. Adapt inspects
its exported methods once per type and classifies each one by calling
convention:

  - XYConvention: Method(X, y, ...) where X is a matrix and y a target
  - XConvention: Method(X, ...) where X is a matrix
  - Unclassified: everything else, delegated without conversion

Classified methods receive the raw values of the frame passed as X (and of
the series passed as y). Their matrix and vector results are rebuilt into a
*frame.Frame or *frame.Series carrying the row index and column labels of X.
A result whose shape disagrees with those labels is reported as a
*errors.ShapeMismatchError instead of being mislabeled.

	proxy := adapter.Adapt(preprocessing.NewStandardScalerDefault())
	scaled, err := proxy.FitTransform(X, nil)

Column-selecting estimators (those implementing both model.Transformer and
model.SupportQuerier) can opt in to column restoration, which relabels
transform results with the input columns picked by the current support mask:

	reg := adapter.NewRegistry()
	feature_selection.Register(reg)
	proxy := reg.Adapt(feature_selection.NewSelectKBest(2))

A Registry also persists an adapted estimator as a Snapshot and rebuilds it
in a fixed order: instantiate and adapt the base kind, reapply the overlay,
restore parameters.
*/
package adapter
