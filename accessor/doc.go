// Package accessor turns a set of resource entries into the ordered list of
// accessor declarations a target language emitter renders.
//
// # Pipeline
//
//  1. Sanitize converts a raw key into a candidate identifier, asking the
//     target language's Oracle whether the result is legal.
//  2. Resolve runs one collision pass over all keys and builds the NameTable.
//  3. Classify decides the retrieval method and declared type per entry.
//  4. FormatComment escapes and bounds documentation text.
//  5. Build combines the above into a Result.
//
// # Design Decisions
//
//   - Collisions are symmetric: every key involved in a collision is rejected.
//   - Keys are visited in canonical order and an identifier that collided once
//     stays unusable, so results never depend on input enumeration order.
//   - Every structure is local to one call. Concurrent runs need nothing
//     shared, and nothing here is safe to share between goroutines.
package accessor
