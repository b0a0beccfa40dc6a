/*
Package ngram provides a statistical n-gram language model: it learns the
conditional frequencies of a token given the preceding tokens from a
tokenized corpus, then samples from the smoothed distribution to generate
new token sequences.

The model is a pure in-memory structure. Training accumulates counts across
calls, generation walks a sliding context window with Laplace add-k
smoothing, and the whole count table round-trips through a Snapshot for
persistence. Stores for snapshots (atomic JSON files, SQLite) live in the
companion store package.

For a complete usage example, see the README.md file.
*/
package ngram
