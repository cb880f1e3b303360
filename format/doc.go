// Package format declares the closed sets of input kinds, concrete decoders and
// compression wrappers understood by geddes, and resolves them from filenames.
package format
