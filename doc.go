// Package xaigo provides a model-explainability toolkit for Go, producing
// per-input attribution maps for black-box classifiers.
//
// xaigo is built on perturbation-based surrogate modeling (the LIME
// method of Ribeiro et al.): the inputs are segmented into interpretable
// groups, stochastically perturbed, re-scored through the black-box model,
// and a weighted linear surrogate is fit locally around each input. The
// surrogate coefficients, broadcast back to the input resolution, are the
// explanation.
//
// # Quick Start
//
// Explaining a classifier over a batch of images:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/xaigo/lime"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    // model is any batched predict function (batch -> batch x classes)
//	    explainer, err := lime.New(model,
//	        lime.WithNbSamples(150),
//	        lime.WithKernelWidth(45.0),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // labels is a one-hot (N x L) selector of the class to attribute
//	    explanations, err := explainer.Explain(inputs, labels)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Println("attribution map:", mat.Formatted(explanations[0]))
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - lime: the LIME explainer (segmentation, perturbation, similarity
//     kernels, oracle querying, coefficient broadcasting)
//   - linear: weighted ridge regression, the default interpretable surrogate
//   - metrics: fidelity metrics for surrogate models
//   - core/tensor: flat-slice image and grouping-grid types
//   - core/model: core interfaces and base types
//   - core/parallel: parallel processing utilities
//   - pkg/errors: structured errors and the advisory warning channel
//   - pkg/log: structured logging for explainability operations
//
// # Pluggability
//
// Every stage of the pipeline is swappable at construction time:
//
//	explainer, err := lime.New(model,
//	    lime.WithSegmenter(lime.NewKMeansSegmenter(64)),
//	    lime.WithDistanceMode(lime.DistanceCosine),
//	    lime.WithInterpretableModel(linear.NewRidge(linear.WithAlpha(1.0))),
//	)
//
// # License
//
// xaigo is released under the MIT License.
package xaigo
