// Package llm provides the generative-text criteria extraction strategy.
// It is optional: when disabled, unconfigured, or failing, extraction
// degrades transparently to the rule-based strategy in internal/extract.
package llm
