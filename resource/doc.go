// Package resource holds the input model of a generation run: named, typed
// resource entries keyed case-insensitively, and the small static type DAG
// used to decide how each entry is exposed.
package resource
