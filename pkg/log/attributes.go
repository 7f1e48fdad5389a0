// Package log defines standard attribute keys for explainability operations.
//
// Using these keys consistently enables structured analysis of attribution
// runs: which explainer ran, over how many inputs, with how many perturbed
// samples, and how long each stage took.

package log

// Explainer and operation context.
const (
	// ExplainerKey identifies the attribution method.
	// Examples: "Lime"
	ExplainerKey = "explainer.name"

	// OperationKey specifies the pipeline operation being performed.
	// Standard values: "explain", "segment", "perturb", "predict",
	// "surrogate_fit", "broadcast"
	OperationKey = "xai.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "lime", "linear"
	ComponentKey = "xai.component"
)

// Data shape and sampling characteristics.
const (
	// InputsKey is the number of inputs being explained in the call.
	InputsKey = "data.inputs"

	// ClassesKey is the number of classes in the label selectors.
	ClassesKey = "data.classes"

	// FeaturesKey is the number of interpretable features for one input.
	FeaturesKey = "explain.features"

	// NbSamplesKey is the number of perturbed samples drawn per input.
	NbSamplesKey = "explain.nb_samples"

	// BatchSizeKey is the number of inputs processed per chunk.
	BatchSizeKey = "explain.batch_size"

	// KernelWidthKey is the similarity kernel width in use.
	KernelWidthKey = "explain.kernel_width"
)

// Performance metrics.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)
