// Package pattern implements the line-compaction engine.
//
// The engine mines recurring line shapes out of unstructured text in five
// stages:
//
//  1. Classification - each whitespace-delimited token is matched against a
//     small set of lexical shapes (hex, bracketed hex, HH:MM:SS, long numbers)
//  2. Length bucketing - lines are grouped by token count
//  3. Column profiling - per bucket, every column gets a frequency table and
//     the Shannon entropy of its display forms
//  4. Template building - columns above the bucket's adaptive entropy cutoff
//     (or holding inherently variable tokens) become positional placeholders
//  5. Merging - templates of equal width whose literal tokens overlap by at
//     least the similarity threshold are greedily coalesced
//
// Basic usage:
//
//	report := pattern.Compact(lines)
//
// Or, with tuning:
//
//	miner := pattern.New(
//	    pattern.WithSimilarity(0.7),
//	    pattern.WithLogger(logger),
//	)
//	groups := miner.Mine(lines)
//	fmt.Println(pattern.Render(groups))
//
// A Miner holds no state between calls; every Mine call starts from scratch.
package pattern
