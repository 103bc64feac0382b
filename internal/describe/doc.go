// Package describe turns an image file into a short natural-language
// description using an OpenAI-compatible vision model.
//
// [Encode] loads a file into an [EncodedImage]; a [Client] sends it as a
// data URL in a single chat completion request bounded by a fixed timeout.
// Failures are returned as [*ReadError] or [*DescribeError]; nothing is
// retried here.
package describe
