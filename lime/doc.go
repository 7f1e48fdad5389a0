// Package lime implements the LIME attribution method: explaining a
// black-box classifier's prediction for an input by fitting an
// interpretable surrogate model on stochastic perturbations of that input.
//
// Ref. Ribeiro & al., "Why Should I Trust You?": Explaining the Predictions
// of Any Classifier. https://arxiv.org/abs/1602.04938
//
// The pipeline per input is: segment the input into interpretable features
// (superpixels), draw binary perturbation samples over those features,
// synthesize perturbed inputs by substituting a reference value at excluded
// locations, re-score the perturbed inputs through the black-box model,
// weight each perturbed sample by its similarity to the original, fit a
// weighted linear surrogate, and broadcast the surrogate coefficients back
// to the input resolution.
//
// Note that the quality of an explanation relies strongly on the choice of
// the interpretable model, the similarity kernel and the segmenter. In
// particular the kernel width must evolve with the input size: on large
// inputs the default width computes similarities close to zero and the
// surrogate will not train.
package lime
