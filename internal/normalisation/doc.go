// Package normalisation removes invalid null fields from JSON trees.
//
// Some Lottie export and compression tools write the spatial tangents of
// position keyframes ("to" and "ti") as null instead of [0,0,0]. Several
// players crash when they meet such a keyframe. A Normaliser walks a tree from
// package jsontree and rebuilds it, handling every object field whose key is
// one of the configured target keys and whose value is null:
//
//   - with the Delete policy (the default) the field is omitted. Lottie allows
//     both tangents to be absent.
//   - with the Replace policy the null is replaced by a fixed value, usually the
//     zero vector.
//
// Everything else is copied as is. Arrays keep their length and order, null
// array elements included, and objects keep the order of their remaining keys.
//
// A Normaliser never modifies the tree it is given and holds no mutable state,
// so one instance may be shared between goroutines working on separate trees.
//
// Usage:
//
//	n := normalisation.New(
//	    normalisation.WithTargetKeys("to", "ti"),
//	    normalisation.WithPolicy(normalisation.Delete{}),
//	)
//	fixed, stats := n.NormaliseWithStats(tree)
package normalisation
