// Command lingopipe generates, aligns, and cleans dialogue timestamp
// documents for language-learning videos.
package main
