// Package log defines standard attribute keys for adaptation and estimator operations.
//
// Using these keys keeps log records consistent across the proxy, the
// registry and the bundled estimators. Keys follow a hierarchical naming
// convention (e.g., "model.name", "data.samples").

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of the wrapped estimator.
	// Examples: "*preprocessing.StandardScaler", "SelectKBest"
	ModelNameKey = "model.name"

	// EstimatorKindKey is the registry name an estimator was registered under.
	EstimatorKindKey = "estimator.kind"

	// SnapshotIDKey is the ID of a persisted snapshot.
	SnapshotIDKey = "snapshot.id"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "fit_transform", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component is logging.
	// Examples: "adapter", "adapter.registry", "feature_selection"
	ComponentKey = "ml.component"

	// ConventionKey records the calling convention a method was classified as.
	ConventionKey = "adapter.convention"

	// MethodsKey records the number of wrapped methods on a proxy.
	MethodsKey = "adapter.methods"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"

	// SelectedKey indicates the number of columns retained by a support mask.
	SelectedKey = "data.selected"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// R2ScoreKey records R² coefficient of determination for regression.
	R2ScoreKey = "metrics.r2_score"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// SuggestionKey provides helpful suggestions for resolving issues.
	SuggestionKey = "error.suggestion"
)

// Hyperparameters and Configuration
const (
	// HyperParamsKey contains estimator hyperparameters as a structured object.
	HyperParamsKey = "model.hyperparams"
)

// Standard attribute values.
const (
	OperationFit          = "fit"
	OperationPredict      = "predict"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationScore        = "score"
	OperationPersist      = "persist"
	OperationReconstruct  = "reconstruct"

	ErrorNotFitted     = "NOT_FITTED"
	ErrorShapeMismatch = "SHAPE_MISMATCH"
	ErrorIntrospection = "INTROSPECTION"
	ErrorEmptyData     = "EMPTY_DATA"
)
